package models

import "errors"

// ErrEmptyQuestion is returned by the orchestrator before any collaborator
// is contacted.
var ErrEmptyQuestion = errors.New("question cannot be empty")

// PlanningError means the planning call failed outright or returned content
// that could not be parsed into a QueryPlan. It aborts the run; there is no
// retry.
type PlanningError struct {
	Err error
}

func (e *PlanningError) Error() string { return "query planning failed: " + e.Err.Error() }
func (e *PlanningError) Unwrap() error { return e.Err }

// SynthesisError means the synthesis call failed outright or returned
// content that could not be parsed into an AnalystInsight. It aborts a run;
// a dashboard refresh degrades only the narrative brief.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string { return "insight synthesis failed: " + e.Err.Error() }
func (e *SynthesisError) Unwrap() error { return e.Err }
