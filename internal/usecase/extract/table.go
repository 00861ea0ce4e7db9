// Package extract scrapes the terminal confirmation surface: a results table
// for the registration workflow, free text with an embedded order number for
// the payment workflow.
package extract

import (
	"strings"
	"time"

	"github.com/go-rod/rod"

	"portal-automation/internal/application/port/output"
	"portal-automation/internal/domain/autoerr"
	"portal-automation/internal/domain/entity"
)

// Fixed column order of the portal's confirmation table.
const (
	colSerial = iota
	colMaskedName
	colGeneratedCode
	colStatus
)

// FromTable waits for the results table, takes its last row (most recent
// entry) and splits the cells positionally. A table that never appears or
// has no data rows is a hard failure: NoResultsError, no partial result.
func FromTable(page *rod.Page, timeout time.Duration, log output.LoggerPort) (*entity.RegistrationResult, error) {
	table, err := page.Timeout(timeout).Element("table")
	if err != nil {
		return nil, &autoerr.NoResultsError{Reason: "results table never appeared"}
	}

	rows, err := table.Elements("tr")
	if err != nil {
		return nil, &autoerr.NoResultsError{Reason: "results table rows unreadable"}
	}

	var last *rod.Element
	for _, row := range rows {
		cells, err := row.Elements("td")
		if err != nil || len(cells) == 0 {
			continue // header or separator row
		}
		last = row
	}
	if last == nil {
		return nil, &autoerr.NoResultsError{Reason: "results table has zero rows"}
	}

	cells, err := last.Elements("td")
	if err != nil {
		return nil, &autoerr.NoResultsError{Reason: "confirmation row cells unreadable"}
	}

	texts := make([]string, 0, len(cells))
	for _, cell := range cells {
		txt, err := cell.Text()
		if err != nil {
			log.Warn("cell text read failed", "error", err)
			txt = ""
		}
		texts = append(texts, txt)
	}

	return ResultFromCells(texts)
}

// ResultFromCells maps a row's cell texts to the result record by fixed
// column order. Missing trailing columns become empty fields; an entirely
// empty row is no result at all.
func ResultFromCells(cells []string) (*entity.RegistrationResult, error) {
	get := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	res := &entity.RegistrationResult{
		Serial:        get(colSerial),
		MaskedName:    get(colMaskedName),
		GeneratedCode: get(colGeneratedCode),
		Status:        get(colStatus),
	}
	if res.Serial == "" && res.MaskedName == "" && res.GeneratedCode == "" && res.Status == "" {
		return nil, &autoerr.NoResultsError{Reason: "confirmation row is empty"}
	}
	return res, nil
}
