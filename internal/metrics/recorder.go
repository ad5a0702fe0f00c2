package metrics

import "time"

// Outcome enumerates generation results for counters.
type Outcome string

const (
	OutcomeWritten   Outcome = "written"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeFailed    Outcome = "failed"
	OutcomeCanceled  Outcome = "canceled"
)

// Recorder defines observability hooks for configuration generation.
type Recorder interface {
	ObserveGenerationDuration(d time.Duration)
	IncGeneration(outcome Outcome)
	SetValidationIssues(n int)
	SetLintMissingPages(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveGenerationDuration(time.Duration) {}
func (NoopRecorder) IncGeneration(Outcome)                   {}
func (NoopRecorder) SetValidationIssues(int)                 {}
func (NoopRecorder) SetLintMissingPages(int)                 {}
