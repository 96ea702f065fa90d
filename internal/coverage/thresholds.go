// Package coverage computes which job requirements a candidate profile
// covers, using semantic similarity between requirements and evidence.
//
// Embeddings beat keywords here: "Python expertise" matches "Led Python
// development", and "cloud experience" matches AWS or GCP bullets. The
// resulting coverage map drives bullet generation, gap analysis, and
// verification downstream.
package coverage

// Thresholds control when a requirement counts as covered. Tuned values;
// adjustable per industry.
type Thresholds struct {
	// MustHaveCovered is the minimum best-match similarity for a must-have
	// requirement to count as covered.
	MustHaveCovered float64
	// NiceToHaveCovered is the minimum best-match similarity for a
	// nice-to-have requirement to count as covered.
	NiceToHaveCovered float64
	// WeakMatch is the floor below which evidence is considered unrelated
	// noise and excluded from match lists.
	WeakMatch float64
	// StrongMatch marks near-exact matches.
	StrongMatch float64
	// AmbiguityWindow scales coverage confidence: scores within this distance
	// of the threshold are ambiguous.
	AmbiguityWindow float64
}

// DefaultThresholds returns the standard threshold set. Must-haves need
// strong evidence to count as covered; nice-to-haves get more slack.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MustHaveCovered:   0.75,
		NiceToHaveCovered: 0.65,
		WeakMatch:         0.50,
		StrongMatch:       0.85,
		AmbiguityWindow:   0.15,
	}
}

// ForPriority returns the coverage threshold for a requirement priority.
// Unknown priorities get the nice-to-have threshold.
func (t Thresholds) ForPriority(priority string) float64 {
	if priority == "must_have" {
		return t.MustHaveCovered
	}
	return t.NiceToHaveCovered
}
