package coverage

import "errors"

var (
	// ErrNoEvidence indicates the profile produced no evidence spans.
	ErrNoEvidence = errors.New("coverage: profile has no evidence")

	// ErrNoRequirements indicates the job has no requirements to analyze.
	ErrNoRequirements = errors.New("coverage: job has no requirements")
)
