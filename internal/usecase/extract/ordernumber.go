package extract

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"portal-automation/internal/application/port/output"
	"portal-automation/internal/pagetext"
	"portal-automation/internal/usecase/sequence"
)

// Ordered most specific first; the bare long-digit fallback only runs when
// neither labeled pattern matched anywhere in the page text.
var orderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`رقم الطلب\s*[:：]?\s*(\d{4,})`),
	regexp.MustCompile(`(?:ال)?رقم المرجعي\s*[:：]?\s*(\d{4,})`),
	regexp.MustCompile(`\b(\d{8,})\b`),
}

// FindOrderNumber scans text against the ordered patterns and returns the
// first candidate that is not an echo of an input value. The reject list
// holds the student's national ID and phone; a "match" equal to or contained
// in one of those is the form echoing its input back, not an order number.
func FindOrderNumber(text string, reject []string) (string, bool) {
	for _, pat := range orderPatterns {
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			candidate := m[len(m)-1]
			if isEcho(candidate, reject) {
				continue
			}
			return candidate, true
		}
	}
	return "", false
}

func isEcho(candidate string, reject []string) bool {
	for _, r := range reject {
		if r == "" {
			continue
		}
		if candidate == r || strings.Contains(r, candidate) || strings.Contains(candidate, r) {
			return true
		}
	}
	return false
}

// PollConfig bounds the order-number polling loop.
type PollConfig struct {
	Attempts int
	Interval time.Duration
}

func DefaultPollConfig() PollConfig {
	return PollConfig{Attempts: 5, Interval: 3 * time.Second}
}

// PollOrderNumber flattens the page HTML and scans it, up to cfg.Attempts
// times. No match is not a failure: the caller returns a result with an
// empty, flagged order number (documented partial success).
func PollOrderNumber(ctx context.Context, page *rod.Page, cfg PollConfig, reject []string, log output.LoggerPort) (number, rawText string, found bool) {
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		html, err := page.HTML()
		if err != nil {
			log.Warn("page HTML read failed during order-number poll", "attempt", attempt, "error", err)
		} else {
			rawText = pagetext.Flatten(html)
			if num, ok := FindOrderNumber(rawText, reject); ok {
				return num, rawText, true
			}
		}

		if attempt < cfg.Attempts {
			sequence.Pause(ctx, cfg.Interval)
		}
		if ctx.Err() != nil {
			break
		}
	}

	log.Warn("order number never appeared, returning empty", "attempts", cfg.Attempts)
	return "", rawText, false
}
