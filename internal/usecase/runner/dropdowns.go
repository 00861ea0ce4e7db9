package runner

import (
	"context"

	"github.com/go-rod/rod"

	"portal-automation/internal/application/port/output"
	"portal-automation/internal/domain/entity"
	"portal-automation/internal/usecase/fill"
	"portal-automation/internal/usecase/sequence"
)

// fillDropdowns classifies every visible select by its surrounding text and
// picks the matching option. Dropdowns the request has no value for (college,
// university) fall back to positional index selection inside ChooseOption.
// Best-effort throughout: a dropdown that resists both strategies is logged
// and left alone.
func fillDropdowns(ctx context.Context, page *rod.Page, engine *fill.Engine, req entity.AutomationRequest, delays sequence.Delays, log output.LoggerPort) {
	selects, err := engine.Selects(page)
	if err != nil {
		log.Warn("select enumeration failed", "error", err)
		return
	}

	for _, sel := range selects {
		category := sequence.Classify(sequence.ContextText(sel))

		var option string
		switch category {
		case sequence.CategoryTrainingType:
			option = req.TransformationType
		case sequence.CategoryExamLanguage:
			option = req.ExamLanguage
		}
		// college/university: no request value, index fallback only

		if err := sequence.ChooseOption(sel, option, log); err != nil {
			log.Warn("dropdown selection failed, leaving default", "category", category, "error", err)
			continue
		}
		log.Debug("dropdown selected", "category", category, "option", option)
		sequence.Pause(ctx, delays.BetweenActions)
	}
}
