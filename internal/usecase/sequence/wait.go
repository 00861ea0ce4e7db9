package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"portal-automation/internal/application/port/output"
	"portal-automation/internal/domain/autoerr"
)

// StageSpec describes the element that defines one stage and how long to
// wait for it. A non-critical stage that times out is skipped; a critical
// one fails the run.
type StageSpec struct {
	Name     string
	Selector string
	// Regex, when set, matches the element's visible text in addition to
	// Selector (keyword-matched links and buttons). Bare pattern body; it
	// is wrapped into a case-insensitive js regex before use.
	Regex    string
	Timeout  time.Duration
	Critical bool
}

// WaitVisible waits for the stage-defining element. It reports whether the
// element appeared; a timeout is an error only for critical stages.
func WaitVisible(page *rod.Page, spec StageSpec) (*rod.Element, bool, error) {
	var el *rod.Element
	var err error

	scoped := page.Timeout(spec.Timeout)
	if spec.Regex != "" {
		el, err = scoped.ElementR(spec.Selector, jsRegex(spec.Regex))
	} else {
		el, err = scoped.Element(spec.Selector)
	}
	if err == nil {
		err = el.WaitVisible()
	}

	if err != nil {
		if spec.Critical {
			return nil, false, &autoerr.StageTimeoutError{
				Stage:    spec.Name,
				Selector: spec.Selector,
				Timeout:  spec.Timeout,
				Err:      err,
			}
		}
		return nil, false, nil
	}
	return el, true, nil
}

// ClickStage waits for the stage element and clicks it. Skipped non-critical
// stages report found=false with no error. A found element whose click fails
// still reports found=true: absent and unclickable are different situations
// and callers log them differently.
func ClickStage(page *rod.Page, spec StageSpec, log output.LoggerPort) (bool, error) {
	el, found, err := WaitVisible(page, spec)
	if err != nil || !found {
		return found, err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		if spec.Critical {
			return true, fmt.Errorf("stage %q click on %q failed: %w", spec.Name, spec.Selector, err)
		}
		log.Warn("stage element present but click failed, continuing", "stage", spec.Name, "error", err)
		return true, nil
	}
	return true, nil
}

// Delays are the fixed pauses between actions that give the portal's
// client-side rendering time to settle. All of them come from configuration.
type Delays struct {
	AfterNavigate  time.Duration
	AfterFill      time.Duration
	AfterSubmit    time.Duration
	BetweenActions time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		AfterNavigate:  1500 * time.Millisecond,
		AfterFill:      500 * time.Millisecond,
		AfterSubmit:    2 * time.Second,
		BetweenActions: 300 * time.Millisecond,
	}
}

// Pause sleeps for d unless ctx is cancelled first.
func Pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
