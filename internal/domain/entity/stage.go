package entity

// Stage is the sequencer's position in the fixed navigation sequence.
// Progression is strictly forward; Done and Failed are terminal.
type Stage int

const (
	StageIdle Stage = iota
	StageRegistering
	StageLoggingIn
	StageNavigating
	StageBooking
	StageSubmitting
	StageExtracting
	StageDone
	StageFailed
)

var stageNames = map[Stage]string{
	StageIdle:        "idle",
	StageRegistering: "registering",
	StageLoggingIn:   "logging_in",
	StageNavigating:  "navigating",
	StageBooking:     "booking",
	StageSubmitting:  "submitting",
	StageExtracting:  "extracting",
	StageDone:        "done",
	StageFailed:      "failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transition is allowed from s.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}
