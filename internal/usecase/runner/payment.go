package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/google/uuid"

	"portal-automation/internal/application/port/output"
	"portal-automation/internal/domain/autoerr"
	"portal-automation/internal/domain/entity"
	"portal-automation/internal/usecase/extract"
	"portal-automation/internal/usecase/fill"
	"portal-automation/internal/usecase/sequence"
)

// Payment drives the electronic payment workflow: payment form, provider
// hand-off, then order-number extraction from the confirmation text. It is
// invoked as a library call, not over HTTP.
type Payment struct {
	sessions Sessions
	cfg      Config
	log      output.LoggerPort
}

func NewPayment(sessions Sessions, cfg Config, log output.LoggerPort) *Payment {
	return &Payment{sessions: sessions, cfg: cfg, log: log}
}

func (p *Payment) Run(ctx context.Context, req entity.AutomationRequest) (result *entity.PaymentResult, err error) {
	runID := req.RequestID
	if runID == "" {
		runID = uuid.NewString()
	}
	log := p.log.WithField("runId", runID)
	log.Info("payment run started", "studentId", req.StudentID)

	sess, err := p.sessions.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			sess.CaptureFailure(runID)
		}
		sess.Close()
	}()

	page := sess.Page()
	machine := sequence.NewMachine(log)
	engine := fill.NewEngine(log, p.cfg.NameOrder)

	if err = machine.Advance(entity.StageNavigating); err != nil {
		return nil, err
	}
	if err = page.Navigate(p.cfg.PaymentURL); err != nil {
		machine.Fail(err)
		return nil, fmt.Errorf("navigate to payment provider: %w", err)
	}
	if werr := page.WaitLoad(); werr != nil {
		log.Warn("payment page load wait failed, continuing", "error", werr)
	}
	sequence.Pause(ctx, p.cfg.Delays.AfterNavigate)

	if err = p.payForm(ctx, page, machine, engine, req, log); err != nil {
		machine.Fail(err)
		return nil, err
	}

	if err = machine.Advance(entity.StageExtracting); err != nil {
		return nil, err
	}
	reject := []string{req.NationalID, req.Phone}
	number, rawText, found := extract.PollOrderNumber(ctx, page, p.cfg.Poll, reject, log)

	result = &entity.PaymentResult{
		OrderNumber:        number,
		Entity:             p.cfg.PaymentEntity,
		ServiceType:        p.cfg.PaymentService,
		Status:             "submitted",
		RawText:            rawText,
		OrderNumberMissing: !found,
	}

	if err = machine.Advance(entity.StageDone); err != nil {
		return nil, err
	}
	log.Info("payment run complete", "orderNumber", number, "orderNumberMissing", !found)
	return result, nil
}

// payForm fills and submits the payment form. The form itself is critical;
// the provider hand-off after submission is not directly observable, so the
// run moves straight to polling for the confirmation text.
func (p *Payment) payForm(ctx context.Context, page *rod.Page, machine *sequence.Machine, engine *fill.Engine, req entity.AutomationRequest, log output.LoggerPort) error {
	if err := machine.Advance(entity.StageBooking); err != nil {
		return err
	}

	if _, _, err := sequence.WaitVisible(page, sequence.StageSpec{
		Name:     "payment_form",
		Selector: "form",
		Timeout:  p.cfg.Timeouts.PaymentForm,
		Critical: true,
	}); err != nil {
		return err
	}

	filled, err := engine.Fill(page, req, "")
	if err != nil {
		return fmt.Errorf("payment form: %w", err)
	}
	log.Info("payment form filled", "controls", filled)

	fillDropdowns(ctx, page, engine, req, p.cfg.Delays, log)
	sequence.Pause(ctx, p.cfg.Delays.AfterFill)

	if err := machine.Advance(entity.StageSubmitting); err != nil {
		return err
	}
	strategy, serr := sequence.Submit(page, p.cfg.SubmitProbe, log)
	if errors.Is(serr, autoerr.ErrSubmissionExhausted) {
		log.Warn("payment submission fallback chain exhausted, proceeding best-effort")
	} else {
		log.Debug("payment form submitted", "strategy", strategy)
	}
	sequence.Pause(ctx, p.cfg.Delays.AfterSubmit)
	return nil
}
