package fill

import (
	"fmt"
	"strings"

	"github.com/go-rod/rod"

	"portal-automation/internal/application/port/output"
	"portal-automation/internal/domain/autoerr"
	"portal-automation/internal/domain/entity"
)

// Controls the engine scans by default. Hidden inputs carry CSRF tokens and
// similar machinery the portal manages itself.
const defaultSelector = `input:not([type="hidden"]), textarea`

// Engine discovers the visible form controls on a page and fills the ones
// whose role it can infer. Individual control failures are logged and
// skipped; the target site's markup is not under our control.
type Engine struct {
	Policy NameOrderPolicy
	log    output.LoggerPort
}

func NewEngine(log output.LoggerPort, policy NameOrderPolicy) *Engine {
	return &Engine{Policy: policy, log: log}
}

// Field pairs a live control handle with the attributes scraped from it.
// Valid only until the page navigates.
type Field struct {
	El    *rod.Element
	Attrs entity.Attributes
}

// Discover enumerates the visible controls matching selector (the default
// input/textarea set when empty) in DOM order. A control whose attributes
// cannot be read is still returned, with empty attributes.
func (e *Engine) Discover(page *rod.Page, selector string) ([]Field, error) {
	if selector == "" {
		selector = defaultSelector
	}

	els, err := page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("enumerate controls %q: %w", selector, err)
	}

	fields := make([]Field, 0, len(els))
	for _, el := range els {
		if !visible(el) {
			continue
		}
		fields = append(fields, Field{
			El: el,
			Attrs: entity.Attributes{
				Type:        attr(el, "type"),
				Name:        attr(el, "name"),
				Placeholder: attr(el, "placeholder"),
			},
		})
	}
	return fields, nil
}

// Selects enumerates the visible select dropdowns; the sequencer populates
// them by label context, which is stage knowledge the engine does not have.
func (e *Engine) Selects(page *rod.Page) ([]*rod.Element, error) {
	els, err := page.Elements("select")
	if err != nil {
		return nil, fmt.Errorf("enumerate selects: %w", err)
	}
	out := make([]*rod.Element, 0, len(els))
	for _, el := range els {
		if visible(el) {
			out = append(out, el)
		}
	}
	return out, nil
}

// Fill runs one discover-plan-apply pass over the page and reports how many
// controls received a value.
func (e *Engine) Fill(page *rod.Page, req entity.AutomationRequest, password string) (int, error) {
	fields, err := e.Discover(page, "")
	if err != nil {
		return 0, err
	}

	attrs := make([]entity.Attributes, len(fields))
	for i, f := range fields {
		attrs[i] = f.Attrs
	}

	filled := 0
	for _, as := range Plan(attrs, req, password, e.Policy) {
		f := fields[as.Index]
		if err := writeValue(f.El, as.Value); err != nil {
			ferr := &autoerr.FieldFillError{Field: describe(f.Attrs), Err: err}
			e.log.Warn("control fill failed, continuing scan", "field", ferr.Field, "role", as.Role, "error", err)
			continue
		}
		e.log.Debug("control filled", "field", describe(f.Attrs), "role", as.Role)
		filled++
	}

	return filled, nil
}

func describe(a entity.Attributes) string {
	switch {
	case a.Name != "":
		return a.Name
	case a.Placeholder != "":
		return a.Placeholder
	case a.Type != "":
		return "type=" + a.Type
	}
	return "unnamed control"
}

func writeValue(el *rod.Element, value string) error {
	// Clear any prefilled text first; a failed select is fine, the control
	// may simply be empty.
	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}
	return el.Input(value)
}

// attr is the attempt-with-default read used for every attribute access. A
// stale handle or detached node yields "" instead of aborting the scan.
func attr(el *rod.Element, name string) string {
	v, err := el.Attribute(name)
	if err != nil || v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func visible(el *rod.Element) bool {
	ok, err := el.Visible()
	return err == nil && ok
}
