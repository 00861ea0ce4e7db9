package di

import (
	"fmt"
	"net/http"
	"time"

	"portal-automation/internal/adapter/httpapi"
	"portal-automation/internal/application/port/output"
	"portal-automation/internal/infrastructure/browser/rodsession"
	"portal-automation/internal/infrastructure/logger"
	"portal-automation/internal/usecase/runner"
)

type Config struct {
	LogLevel       string
	Development    bool
	RequestTimeout time.Duration

	Browser rodsession.Config
	Runner  runner.Config
}

type Container struct {
	Logger       output.LoggerPort
	Registration *runner.Registration
	Payment      *runner.Payment
	Router       http.Handler
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewZapAdapter(cfg.LogLevel, cfg.Development)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	sessions := &runner.Factory{Cfg: cfg.Browser, Log: log}
	registration := runner.NewRegistration(sessions, cfg.Runner, log)
	payment := runner.NewPayment(sessions, cfg.Runner, log)

	router := httpapi.NewRouter(registration, log, cfg.RequestTimeout)

	return &Container{
		Logger:       log,
		Registration: registration,
		Payment:      payment,
		Router:       router,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		_ = c.Logger.Close()
	}
}
