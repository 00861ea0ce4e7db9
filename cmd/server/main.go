package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portal-automation/internal/di"
	"portal-automation/internal/infrastructure/browser/rodsession"
	"portal-automation/internal/infrastructure/env"
	"portal-automation/internal/usecase/runner"
)

func main() {
	envService := env.NewEnvService()

	browserCfg := rodsession.DefaultConfig()
	browserCfg.Headless = envService.GetBool("BROWSER_HEADLESS", true)
	browserCfg.UserAgent = envService.Get("BROWSER_USER_AGENT")
	browserCfg.SlowMotion = envService.GetDuration("BROWSER_SLOW_MOTION", browserCfg.SlowMotion)
	browserCfg.ScreenshotDir = envService.GetDefault("SCREENSHOT_DIR", browserCfg.ScreenshotDir)

	runnerCfg := runner.DefaultConfig()
	runnerCfg.PortalURL = envService.MustGet("PORTAL_URL")
	runnerCfg.PaymentURL = envService.Get("PAYMENT_URL")
	runnerCfg.Delays.AfterNavigate = envService.GetDuration("DELAY_AFTER_NAVIGATE", runnerCfg.Delays.AfterNavigate)
	runnerCfg.Delays.AfterFill = envService.GetDuration("DELAY_AFTER_FILL", runnerCfg.Delays.AfterFill)
	runnerCfg.Delays.AfterSubmit = envService.GetDuration("DELAY_AFTER_SUBMIT", runnerCfg.Delays.AfterSubmit)
	runnerCfg.Delays.BetweenActions = envService.GetDuration("DELAY_BETWEEN_ACTIONS", runnerCfg.Delays.BetweenActions)
	runnerCfg.Timeouts.BookingForm = envService.GetDuration("TIMEOUT_BOOKING_FORM", runnerCfg.Timeouts.BookingForm)
	runnerCfg.Timeouts.Results = envService.GetDuration("TIMEOUT_RESULTS", runnerCfg.Timeouts.Results)
	runnerCfg.Poll.Attempts = envService.GetInt("ORDER_POLL_ATTEMPTS", runnerCfg.Poll.Attempts)
	runnerCfg.Poll.Interval = envService.GetDuration("ORDER_POLL_INTERVAL", runnerCfg.Poll.Interval)

	container, err := di.NewContainer(di.Config{
		LogLevel:       envService.GetDefault("LOG_LEVEL", "info"),
		Development:    envService.GetBool("LOG_DEV", false),
		RequestTimeout: envService.GetDuration("REQUEST_TIMEOUT", 5*time.Minute),
		Browser:        browserCfg,
		Runner:         runnerCfg,
	})
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer container.Close()

	addr := ":" + envService.GetDefault("PORT", "8080")
	server := &http.Server{
		Addr:              addr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		container.Logger.Info("HTTP server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	container.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("shutdown failed", "error", err)
	}
}
