// Package runner holds the two automation pipelines: digital-transformation
// registration and electronic payment. Each run owns exactly one browser
// session, torn down on every exit path.
package runner

import (
	"context"
	"time"

	"portal-automation/internal/application/port/output"
	"portal-automation/internal/infrastructure/browser/rodsession"
	"portal-automation/internal/usecase/extract"
	"portal-automation/internal/usecase/fill"
	"portal-automation/internal/usecase/sequence"
)

// Sessions produces one browser session per run.
type Sessions interface {
	Begin(ctx context.Context) (*rodsession.Session, error)
}

// Factory is the production Sessions implementation.
type Factory struct {
	Cfg rodsession.Config
	Log output.LoggerPort
}

func (f *Factory) Begin(ctx context.Context) (*rodsession.Session, error) {
	return rodsession.Begin(ctx, f.Cfg, f.Log)
}

// StageTimeouts bounds each stage wait. The non-critical ones are short
// probes (a missing registration link just means the account exists); the
// critical ones are generous because the portal renders slowly under load.
type StageTimeouts struct {
	RegisterLink time.Duration
	LoginForm    time.Duration
	SectionLink  time.Duration
	BookingForm  time.Duration
	PaymentForm  time.Duration
	Results      time.Duration
}

type Config struct {
	PortalURL  string
	PaymentURL string

	// PaymentEntity and PaymentService label the payment result record when
	// the confirmation text does not carry them.
	PaymentEntity  string
	PaymentService string

	NameOrder   fill.NameOrderPolicy
	Delays      sequence.Delays
	SubmitProbe time.Duration
	Timeouts    StageTimeouts
	Poll        extract.PollConfig
}

func DefaultConfig() Config {
	return Config{
		PaymentEntity:  "التحول الرقمي",
		PaymentService: "تسجيل كورس",
		NameOrder:      fill.ArabicFirst,
		Delays:         sequence.DefaultDelays(),
		SubmitProbe:    2 * time.Second,
		Timeouts: StageTimeouts{
			RegisterLink: 5 * time.Second,
			LoginForm:    5 * time.Second,
			SectionLink:  10 * time.Second,
			BookingForm:  20 * time.Second,
			PaymentForm:  20 * time.Second,
			Results:      60 * time.Second,
		},
		Poll: extract.DefaultPollConfig(),
	}
}
