// Package sequence drives the browser through the fixed stage list: waits
// bounded by per-stage timeouts, a multi-strategy submission fallback chain,
// and label-matched dropdown selection.
package sequence

import (
	"fmt"

	"portal-automation/internal/application/port/output"
	"portal-automation/internal/domain/entity"
)

// Machine tracks the run's position in the stage list. Transitions are
// strictly forward; Failed is reachable from any non-terminal stage.
type Machine struct {
	current entity.Stage
	log     output.LoggerPort
}

func NewMachine(log output.LoggerPort) *Machine {
	return &Machine{current: entity.StageIdle, log: log}
}

func (m *Machine) Current() entity.Stage { return m.current }

// Advance moves to a later stage. Backward or out-of-terminal transitions
// are programming errors and are rejected.
func (m *Machine) Advance(to entity.Stage) error {
	if m.current.Terminal() {
		return fmt.Errorf("cannot advance from terminal stage %s", m.current)
	}
	if to != entity.StageFailed && to <= m.current {
		return fmt.Errorf("cannot advance backward from %s to %s", m.current, to)
	}
	m.log.Debug("stage transition", "from", m.current.String(), "to", to.String())
	m.current = to
	return nil
}

// Fail moves to the Failed terminal stage, recording the cause.
func (m *Machine) Fail(cause error) {
	if m.current.Terminal() {
		return
	}
	m.log.Warn("stage machine failed", "at", m.current.String(), "cause", cause)
	m.current = entity.StageFailed
}
