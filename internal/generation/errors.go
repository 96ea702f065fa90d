package generation

import "errors"

// ErrNoCoveredRequirements indicates the coverage map has no covered
// requirements, so there is no evidence to generate from.
var ErrNoCoveredRequirements = errors.New("generation: no covered requirements, cannot generate bullets without evidence")
