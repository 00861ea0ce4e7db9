package fill

import "strings"

// Keyword tables for heuristic role matching over name/placeholder text.
// The portal mixes Arabic and English markup, so every table carries both.
// Read-only; safe to share across concurrent runs.
var (
	emailKeywords = []string{"email", "e-mail", "بريد"}

	phoneKeywords = []string{"phone", "mobile", "tel", "هاتف", "محمول", "جوال", "موبايل"}

	nationalIDKeywords = []string{"national", "nid", "قومي", "هوية"}

	nameKeywords = []string{"name", "اسم"}

	arabicNameKeywords  = []string{"عربي", "العربية", "arabic"}
	englishNameKeywords = []string{"english", "انجليزي", "إنجليزي"}
)

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
