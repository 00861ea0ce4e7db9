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

// Link texts on the live portal, as bare pattern bodies; the sequencer
// wraps them into case-insensitive js regexes when probing the page. The
// registration link is probed, not required: when it is absent the
// throwaway account already exists and the run falls through to login.
const (
	registerLinkPattern = `تسجيل جديد|انشاء حساب|إنشاء حساب|حساب جديد|sign ?up|register|create account`
	sectionLinkPattern  = `التحول الرقمي|digital transformation`
)

// Registration drives the digital-transformation course registration
// workflow end to end and scrapes the confirmation table.
type Registration struct {
	sessions Sessions
	cfg      Config
	log      output.LoggerPort
}

func NewRegistration(sessions Sessions, cfg Config, log output.LoggerPort) *Registration {
	return &Registration{sessions: sessions, cfg: cfg, log: log}
}

func (r *Registration) Run(ctx context.Context, req entity.AutomationRequest) (result *entity.RegistrationResult, err error) {
	runID := req.RequestID
	if runID == "" {
		runID = uuid.NewString()
	}
	log := r.log.WithField("runId", runID)
	log.Info("registration run started", "studentId", req.StudentID)

	sess, err := r.sessions.Begin(ctx)
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
	engine := fill.NewEngine(log, r.cfg.NameOrder)
	password := fill.GeneratePassword()

	if err = page.Navigate(r.cfg.PortalURL); err != nil {
		machine.Fail(err)
		return nil, fmt.Errorf("navigate to portal: %w", err)
	}
	if werr := page.WaitLoad(); werr != nil {
		log.Warn("portal load wait failed, continuing", "error", werr)
	}
	sequence.Pause(ctx, r.cfg.Delays.AfterNavigate)

	if err = r.register(ctx, page, machine, engine, req, password, log); err != nil {
		machine.Fail(err)
		return nil, err
	}
	if err = r.login(ctx, page, machine, engine, req, password, log); err != nil {
		machine.Fail(err)
		return nil, err
	}
	if err = r.openSection(ctx, page, machine, log); err != nil {
		machine.Fail(err)
		return nil, err
	}
	if err = r.book(ctx, page, machine, engine, req, password, log); err != nil {
		machine.Fail(err)
		return nil, err
	}

	if err = machine.Advance(entity.StageExtracting); err != nil {
		return nil, err
	}
	result, err = extract.FromTable(page, r.cfg.Timeouts.Results, log)
	if err != nil {
		machine.Fail(err)
		return nil, err
	}

	if err = machine.Advance(entity.StageDone); err != nil {
		return nil, err
	}
	log.Info("registration run complete", "serial", result.Serial, "status", result.Status)
	return result, nil
}

// register creates the throwaway portal account. The whole stage is
// optional: no registration link means the account is already there.
func (r *Registration) register(ctx context.Context, page *rod.Page, machine *sequence.Machine, engine *fill.Engine, req entity.AutomationRequest, password string, log output.LoggerPort) error {
	if err := machine.Advance(entity.StageRegistering); err != nil {
		return err
	}

	found, err := sequence.ClickStage(page, sequence.StageSpec{
		Name:     "register_link",
		Selector: "a, button",
		Regex:    registerLinkPattern,
		Timeout:  r.cfg.Timeouts.RegisterLink,
	}, log)
	if err != nil {
		return err
	}
	if !found {
		log.Info("registration link absent, skipping to login")
		return nil
	}
	sequence.Pause(ctx, r.cfg.Delays.BetweenActions)

	filled, err := engine.Fill(page, req, password)
	if err != nil {
		return fmt.Errorf("registration form: %w", err)
	}
	log.Info("registration form filled", "controls", filled)
	sequence.Pause(ctx, r.cfg.Delays.AfterFill)

	r.submit(page, "registration", log)
	sequence.Pause(ctx, r.cfg.Delays.AfterSubmit)
	return nil
}

// login signs in with the run's credential. Also optional: the portal keeps
// the session alive right after registration on some deployments.
func (r *Registration) login(ctx context.Context, page *rod.Page, machine *sequence.Machine, engine *fill.Engine, req entity.AutomationRequest, password string, log output.LoggerPort) error {
	if err := machine.Advance(entity.StageLoggingIn); err != nil {
		return err
	}

	_, found, err := sequence.WaitVisible(page, sequence.StageSpec{
		Name:     "login_form",
		Selector: `input[type="password"]`,
		Timeout:  r.cfg.Timeouts.LoginForm,
	})
	if err != nil {
		return err
	}
	if !found {
		log.Info("no login form present, already signed in")
		return nil
	}

	filled, err := engine.Fill(page, req, password)
	if err != nil {
		return fmt.Errorf("login form: %w", err)
	}
	log.Info("login form filled", "controls", filled)
	sequence.Pause(ctx, r.cfg.Delays.AfterFill)

	r.submit(page, "login", log)
	sequence.Pause(ctx, r.cfg.Delays.AfterSubmit)
	return nil
}

func (r *Registration) openSection(ctx context.Context, page *rod.Page, machine *sequence.Machine, log output.LoggerPort) error {
	if err := machine.Advance(entity.StageNavigating); err != nil {
		return err
	}

	found, err := sequence.ClickStage(page, sequence.StageSpec{
		Name:     "section_link",
		Selector: "a",
		Regex:    sectionLinkPattern,
		Timeout:  r.cfg.Timeouts.SectionLink,
	}, log)
	if err != nil {
		return err
	}
	if found {
		sequence.Pause(ctx, r.cfg.Delays.AfterNavigate)
	} else {
		log.Info("section link absent, assuming booking form is on this page")
	}
	return nil
}

// book fills the course booking form. This stage is critical: without the
// form there is nothing to submit.
func (r *Registration) book(ctx context.Context, page *rod.Page, machine *sequence.Machine, engine *fill.Engine, req entity.AutomationRequest, password string, log output.LoggerPort) error {
	if err := machine.Advance(entity.StageBooking); err != nil {
		return err
	}

	if _, _, err := sequence.WaitVisible(page, sequence.StageSpec{
		Name:     "booking_form",
		Selector: "form",
		Timeout:  r.cfg.Timeouts.BookingForm,
		Critical: true,
	}); err != nil {
		return err
	}

	filled, err := engine.Fill(page, req, password)
	if err != nil {
		return fmt.Errorf("booking form: %w", err)
	}
	log.Info("booking form filled", "controls", filled)

	fillDropdowns(ctx, page, engine, req, r.cfg.Delays, log)
	sequence.Pause(ctx, r.cfg.Delays.AfterFill)

	if err := machine.Advance(entity.StageSubmitting); err != nil {
		return err
	}
	r.submit(page, "booking", log)
	sequence.Pause(ctx, r.cfg.Delays.AfterSubmit)
	return nil
}

// submit runs the fallback chain; exhaustion is absorbed, the portal
// auto-advances some forms without an explicit click.
func (r *Registration) submit(page *rod.Page, stage string, log output.LoggerPort) {
	strategy, err := sequence.Submit(page, r.cfg.SubmitProbe, log)
	if errors.Is(err, autoerr.ErrSubmissionExhausted) {
		log.Warn("submission fallback chain exhausted, proceeding best-effort", "stage", stage)
		return
	}
	log.Debug("stage submitted", "stage", stage, "strategy", strategy)
}
