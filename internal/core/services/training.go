package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
	ports "github.com/TheRealHZL/MentalHealth-sub001/internal/core/ports/output"
)

// TrainingDoneFunc is invoked exactly once per job when it reaches a terminal
// status. ref and model are non-nil only for SUCCEEDED jobs. The coordinator
// does not accept another job until the callback has returned.
type TrainingDoneFunc func(job domain.TrainingJob, ref *domain.ArtifactRef, model *domain.IntentModel)

// TrainingCoordinator runs training as a single background unit of work so
// the inference path is never blocked. Jobs are serialized: one RUNNING job
// system-wide, overlapping starts fail fast.
type TrainingCoordinator struct {
	store   ports.ModelStore
	trainer ports.Trainer

	mu      sync.Mutex
	jobs    map[uuid.UUID]*domain.TrainingJob
	running bool
}

func NewTrainingCoordinator(store ports.ModelStore, trainer ports.Trainer) *TrainingCoordinator {
	return &TrainingCoordinator{
		store:   store,
		trainer: trainer,
		jobs:    make(map[uuid.UUID]*domain.TrainingJob),
	}
}

// Start registers a PENDING job and launches it in the background. Returns
// domain.ErrTrainingAlreadyRunning while another job is in flight. The ctx
// governs the job's lifetime; cancelling it requests cooperative cancellation.
func (c *TrainingCoordinator) Start(ctx context.Context, datasetRef string, onDone TrainingDoneFunc) (uuid.UUID, error) {
	if datasetRef == "" {
		return uuid.Nil, domain.ErrEmptyDatasetRef
	}

	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return uuid.Nil, domain.ErrTrainingAlreadyRunning
	}

	job := &domain.TrainingJob{
		ID:         uuid.New(),
		Status:     domain.JobStatusPending,
		DatasetRef: datasetRef,
	}
	c.jobs[job.ID] = job
	c.running = true
	c.mu.Unlock()

	go c.run(ctx, job.ID, onDone)

	return job.ID, nil
}

// Job returns a snapshot of the job record or domain.ErrJobNotFound.
func (c *TrainingCoordinator) Job(id uuid.UUID) (*domain.TrainingJob, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	job, ok := c.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	cp := *job
	return &cp, nil
}

// Running reports whether a job is currently in flight.
func (c *TrainingCoordinator) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *TrainingCoordinator) run(ctx context.Context, jobID uuid.UUID, onDone TrainingDoneFunc) {
	now := time.Now()
	c.update(jobID, func(j *domain.TrainingJob) {
		j.Status = domain.JobStatusRunning
		j.StartedAt = &now
	})

	model, err := c.trainer.Train(ctx, c.datasetRef(jobID))

	var ref *domain.ArtifactRef
	switch {
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		// Cancellation is cooperative; whatever partial result the trainer
		// produced at its last checkpoint is discarded, never promoted.
		c.finish(jobID, domain.JobStatusCancelled, "training cancelled")
		model = nil

	case err != nil:
		c.finish(jobID, domain.JobStatusFailed, err.Error())
		model = nil

	default:
		ref, err = c.promote(ctx, model)
		if err != nil {
			c.finish(jobID, domain.JobStatusFailed, fmt.Sprintf("persist artifact: %v", err))
			model = nil
			break
		}
		model.Version = ref.Version
		c.update(jobID, func(j *domain.TrainingJob) {
			j.ProducedArtifactID = &ref.ID
		})
		c.finish(jobID, domain.JobStatusSucceeded, "")
	}

	job, _ := c.Job(jobID)
	log.WithFields(log.Fields{
		"job_id":      jobID,
		"status":      job.Status,
		"dataset_ref": job.DatasetRef,
	}).Info("training job finished")

	if onDone != nil {
		onDone(*job, ref, model)
	}

	// The running slot frees only after onDone has returned, so a stale
	// completion callback can never interleave with a newly accepted job.
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
}

func (c *TrainingCoordinator) promote(ctx context.Context, model *domain.IntentModel) (*domain.ArtifactRef, error) {
	data, err := json.Marshal(model)
	if err != nil {
		return nil, err
	}
	return c.store.Write(ctx, domain.ArtifactFormatIntentsJSON, data)
}

func (c *TrainingCoordinator) datasetRef(jobID uuid.UUID) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if job, ok := c.jobs[jobID]; ok {
		return job.DatasetRef
	}
	return ""
}

func (c *TrainingCoordinator) update(jobID uuid.UUID, fn func(*domain.TrainingJob)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if job, ok := c.jobs[jobID]; ok {
		fn(job)
	}
}

func (c *TrainingCoordinator) finish(jobID uuid.UUID, status domain.JobStatus, lastErr string) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if job, ok := c.jobs[jobID]; ok {
		job.Status = status
		job.FinishedAt = &now
		job.LastError = lastErr
	}
}
