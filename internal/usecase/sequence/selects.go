package sequence

import (
	"fmt"
	"strings"

	"github.com/go-rod/rod"

	"portal-automation/internal/application/port/output"
)

// Category is the semantic kind of a booking-form dropdown.
type Category string

const (
	CategoryTrainingType Category = "training_type"
	CategoryExamLanguage Category = "exam_language"
	CategoryCollege      Category = "college"
	CategoryUniversity   Category = "university"
	CategoryUnknown      Category = "unknown"
)

var categoryKeywords = map[Category][]string{
	CategoryTrainingType: {"نوع التدريب", "نوع التحول", "training", "نوع"},
	CategoryExamLanguage: {"لغة", "اللغة", "language"},
	CategoryCollege:      {"كلية", "الكلية", "college", "faculty"},
	CategoryUniversity:   {"جامعة", "الجامعة", "university"},
}

// classifyOrder fixes the match order: unambiguous labels (college,
// university, language) ahead of the generic "نوع" that training type
// falls back to.
var classifyOrder = []Category{CategoryCollege, CategoryUniversity, CategoryExamLanguage, CategoryTrainingType}

// Classify maps a dropdown's surrounding text to a category.
func Classify(contextText string) Category {
	lower := strings.ToLower(contextText)
	for _, cat := range classifyOrder {
		if containsAnyFold(lower, categoryKeywords[cat]) {
			return cat
		}
	}
	return CategoryUnknown
}

func containsAnyFold(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// ContextText gathers the text surrounding a select control that Classify
// matches against: its own attributes plus the enclosing element's label
// text. Every read is attempt-with-default.
func ContextText(sel *rod.Element) string {
	var parts []string
	for _, name := range []string{"name", "id", "aria-label"} {
		if v, err := sel.Attribute(name); err == nil && v != nil {
			parts = append(parts, *v)
		}
	}
	if parent, err := sel.Parent(); err == nil {
		if txt, err := parent.Text(); err == nil {
			parts = append(parts, txt)
		}
	}
	return strings.Join(parts, " ")
}

// ChooseOption selects the option whose text matches optionText, falling
// back to positional index 1 (the first non-placeholder option) when label
// matching throws against the portal's markup.
func ChooseOption(sel *rod.Element, optionText string, log output.LoggerPort) error {
	if optionText != "" {
		err := sel.Select([]string{optionText}, true, rod.SelectorTypeRegex)
		if err == nil {
			return nil
		}
		log.Warn("dropdown label match failed, falling back to index", "option", optionText, "error", err)
	}

	_, err := sel.Eval(`(i) => {
		this.selectedIndex = i;
		this.dispatchEvent(new Event("change", { bubbles: true }));
	}`, 1)
	if err != nil {
		return fmt.Errorf("dropdown fallback selection failed: %w", err)
	}
	return nil
}
