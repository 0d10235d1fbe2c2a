package domain

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusSucceeded JobStatus = "SUCCEEDED"
	JobStatusFailed    JobStatus = "FAILED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

// Terminal reports whether the job has finished in some way.
func (s JobStatus) Terminal() bool {
	return s == JobStatusSucceeded || s == JobStatusFailed || s == JobStatusCancelled
}

// TrainingJob is owned by the training coordinator. At most one job is
// RUNNING system-wide; overlapping starts are rejected, not queued.
type TrainingJob struct {
	ID                 uuid.UUID  `json:"id"`
	Status             JobStatus  `json:"status"`
	DatasetRef         string     `json:"dataset_ref"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	FinishedAt         *time.Time `json:"finished_at,omitempty"`
	ProducedArtifactID *uuid.UUID `json:"produced_artifact_id,omitempty"`
	LastError          string     `json:"last_error,omitempty"`
}
