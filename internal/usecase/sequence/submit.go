package sequence

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"portal-automation/internal/application/port/output"
	"portal-automation/internal/domain/autoerr"
)

// Strategy names the fallback step that performed a submission.
type Strategy string

const (
	SubmitByKeyword Strategy = "keyword_button"
	SubmitByType    Strategy = "submit_control"
	SubmitByEnter   Strategy = "enter_key"
)

// Button texts the portal uses across its stages, Arabic first since that is
// what the live site renders.
var submitKeywords = []string{
	"تسجيل", "حفظ", "إرسال", "ارسال", "تأكيد", "التالي", "دفع", "متابعة",
	"submit", "save", "send", "register", "confirm", "next", "pay", "continue", "book",
}

var submitPattern = buildKeywordPattern(submitKeywords)

// buildKeywordPattern returns a bare alternation usable both as a Go regexp
// body and inside a js regex literal.
func buildKeywordPattern(keywords []string) string {
	escaped := make([]string, len(keywords))
	for i, kw := range keywords {
		escaped[i] = regexp.QuoteMeta(kw)
	}
	return strings.Join(escaped, "|")
}

// jsRegex wraps a pattern for rod's ElementR, which takes a js regex
// literal, not a Go regexp.
func jsRegex(pattern string) string {
	return "/" + pattern + "/i"
}

// Submit runs the fallback chain: a button matched by multilingual text, then
// any [type=submit] control, then an Enter keypress into the page body. The
// chain stops at the first strategy whose target exists and accepts a click.
// When every strategy fails it returns ErrSubmissionExhausted; callers log it
// and proceed, since some pages auto-advance without an explicit click.
func Submit(page *rod.Page, probe time.Duration, log output.LoggerPort) (Strategy, error) {
	if el, err := page.Timeout(probe).ElementR("button, a, input", jsRegex(submitPattern)); err == nil {
		if isVisible(el) && click(el) == nil {
			log.Debug("submitted", "strategy", SubmitByKeyword)
			return SubmitByKeyword, nil
		}
	}

	if el, err := page.Timeout(probe).Element(`[type="submit"]`); err == nil {
		if isVisible(el) && click(el) == nil {
			log.Debug("submitted", "strategy", SubmitByType)
			return SubmitByType, nil
		}
	}

	if el, err := page.Timeout(probe).Element("body"); err == nil {
		if el.Input("\r") == nil {
			log.Debug("submitted", "strategy", SubmitByEnter)
			return SubmitByEnter, nil
		}
	}

	return "", autoerr.ErrSubmissionExhausted
}

func click(el *rod.Element) error {
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func isVisible(el *rod.Element) bool {
	ok, err := el.Visible()
	return err == nil && ok
}
