package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents one tailoring run: a single job-profile analysis with its
// stored artifacts.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	JobID       string     `json:"job_id"`
	ProfileID   string     `json:"profile_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
