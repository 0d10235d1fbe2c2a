package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
	ports "github.com/TheRealHZL/MentalHealth-sub001/internal/core/ports/output"
)

const feedbackTimeout = 5 * time.Second

// Engine owns the model lifecycle state machine:
//
//	UNINITIALIZED → LOADING → READY | DEGRADED → TRAINING → READY
//	any non-terminal → SHUTTING_DOWN
//
// It is the single entry point the rest of the application talks to. Model
// unavailability never takes the process down: every load failure is absorbed
// into DEGRADED and surfaced to callers as a typed error.
//
// The active session is published through an atomic pointer so predict calls
// take a consistent snapshot and a post-training swap never exposes a
// partially constructed session.
type Engine struct {
	store    ports.ModelStore
	loader   *Loader
	coord    *TrainingCoordinator
	feedback ports.FeedbackSink

	rootCtx    context.Context
	rootCancel context.CancelFunc

	mu      sync.Mutex
	state   domain.EngineState
	lastErr error
	initCh  chan struct{} // non-nil while a load attempt is in flight

	session atomic.Pointer[Session]
}

func NewEngine(store ports.ModelStore, loader *Loader, coord *TrainingCoordinator, feedback ports.FeedbackSink) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		store:      store,
		loader:     loader,
		coord:      coord,
		feedback:   feedback,
		rootCtx:    ctx,
		rootCancel: cancel,
		state:      domain.EngineStateUninitialized,
	}
}

// Initialize attempts to load the latest artifact from the store. Idempotent:
// once the engine reaches READY or DEGRADED, further calls return the current
// state without another load attempt. Concurrent callers during LOADING wait
// for the single in-flight attempt to settle. Failures do not propagate; they
// park the engine in DEGRADED so the host keeps serving non-AI functionality.
func (e *Engine) Initialize(ctx context.Context) domain.EngineState {
	e.mu.Lock()
	switch e.state {
	case domain.EngineStateUninitialized:
		ch := make(chan struct{})
		e.initCh = ch
		e.state = domain.EngineStateLoading
		e.mu.Unlock()
		e.loadLatest(ctx)
		return e.State()

	case domain.EngineStateLoading:
		ch := e.initCh
		e.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
		}
		return e.State()

	default:
		state := e.state
		e.mu.Unlock()
		return state
	}
}

func (e *Engine) loadLatest(ctx context.Context) {
	var sess *Session

	ref, err := e.store.GetLatestRef(ctx)
	if err == nil {
		sess, err = e.loader.Load(ctx, ref)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == domain.EngineStateShuttingDown {
		if sess != nil {
			_ = sess.Close()
		}
	} else if err != nil {
		e.state = domain.EngineStateDegraded
		e.lastErr = err
		log.WithError(err).Warn("model load failed; engine degraded until training produces an artifact")
	} else {
		e.session.Store(sess)
		e.state = domain.EngineStateReady
		e.lastErr = nil
		log.WithField("model_version", sess.Artifact().Version).Info("model loaded")
	}

	if e.initCh != nil {
		close(e.initCh)
		e.initCh = nil
	}
}

// State returns the current engine state.
func (e *Engine) State() domain.EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Predict serves one inference call against the current session snapshot.
// DEGRADED fails fast with domain.ErrModelUnavailable instead of blocking or
// crashing; TRAINING keeps serving the previous model.
func (e *Engine) Predict(ctx context.Context, req domain.InferenceRequest) (*domain.InferenceResult, error) {
	if req.Input == "" {
		return nil, domain.ErrEmptyInput
	}

	switch e.State() {
	case domain.EngineStateUninitialized, domain.EngineStateLoading:
		return nil, domain.ErrEngineNotReady
	case domain.EngineStateShuttingDown:
		return nil, domain.ErrEngineShuttingDown
	case domain.EngineStateDegraded:
		return nil, domain.ErrModelUnavailable
	}

	for {
		sess := e.session.Load()
		if sess == nil {
			return nil, domain.ErrModelUnavailable
		}

		res, err := sess.Predict(req)
		if errors.Is(err, domain.ErrSessionClosed) {
			// Lost the race against a swap or shutdown. A changed pointer
			// means a fresh session was published; retry against that one.
			// An unchanged pointer means the engine is going away.
			if cur := e.session.Load(); cur != sess {
				continue
			}
			return nil, domain.ErrModelUnavailable
		}
		return res, err
	}
}

// StartTraining launches a background training job. At most one job runs at a
// time; overlapping requests get domain.ErrTrainingAlreadyRunning. The state
// moves to TRAINING as an advisory flag only — inference continues against
// the previous artifact for the whole run.
func (e *Engine) StartTraining(ctx context.Context, datasetRef string) (uuid.UUID, error) {
	switch e.State() {
	case domain.EngineStateUninitialized, domain.EngineStateLoading:
		return uuid.Nil, domain.ErrEngineNotReady
	case domain.EngineStateShuttingDown:
		return uuid.Nil, domain.ErrEngineShuttingDown
	}

	jobID, err := e.coord.Start(e.rootCtx, datasetRef, e.onTrainingDone)
	if err != nil {
		return uuid.Nil, err
	}

	// A fast job may already have reached its completion callback; flipping
	// to TRAINING then would wedge the state with nothing running. The
	// coordinator holds the running slot until onTrainingDone returns, so
	// checking it under e.mu closes the window either way.
	e.mu.Lock()
	if (e.state == domain.EngineStateReady || e.state == domain.EngineStateDegraded) && e.coord.Running() {
		e.state = domain.EngineStateTraining
	}
	e.mu.Unlock()

	log.WithFields(log.Fields{"job_id": jobID, "dataset_ref": datasetRef}).Info("training started")
	return jobID, nil
}

// onTrainingDone promotes a successful job's model into a fresh session. The
// swap is total: all predicts after the swap see the new session, in-flight
// calls finish against the old one before it is released.
func (e *Engine) onTrainingDone(job domain.TrainingJob, ref *domain.ArtifactRef, model *domain.IntentModel) {
	if job.Status == domain.JobStatusSucceeded && ref != nil && model != nil {
		e.mu.Lock()
		shuttingDown := e.state == domain.EngineStateShuttingDown
		e.mu.Unlock()

		if shuttingDown {
			log.WithField("job_id", job.ID).Info("training finished during shutdown; artifact persisted but not promoted")
		} else {
			next := NewSession(ref.ModelArtifact, model)
			if old := e.session.Swap(next); old != nil {
				go func() {
					if err := old.Close(); err != nil {
						log.WithError(err).Warn("previous session release failed")
					}
				}()
			}
			log.WithField("model_version", ref.Version).Info("new model promoted")
		}
	}

	e.mu.Lock()
	if e.state == domain.EngineStateTraining {
		if e.session.Load() != nil {
			e.state = domain.EngineStateReady
			e.lastErr = nil
		} else {
			e.state = domain.EngineStateDegraded
		}
	}
	e.mu.Unlock()
}

// GetJobStatus returns a snapshot of the training job record.
func (e *Engine) GetJobStatus(id uuid.UUID) (*domain.TrainingJob, error) {
	return e.coord.Job(id)
}

// RecordFeedback forwards prediction feedback to the sink. Fire-and-forget:
// sink failures are logged, never surfaced to the caller.
func (e *Engine) RecordFeedback(predictionID uuid.UUID, feedback string) {
	if e.feedback == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), feedbackTimeout)
		defer cancel()
		if err := e.feedback.Record(ctx, predictionID, feedback); err != nil {
			log.WithError(err).WithField("prediction_id", predictionID).Warn("feedback record failed")
		}
	}()
}

// Snapshot exposes the engine half of the health report.
func (e *Engine) Snapshot() domain.HealthSnapshot {
	e.mu.Lock()
	state := e.state
	lastErr := e.lastErr
	e.mu.Unlock()

	snap := domain.HealthSnapshot{EngineState: state}
	if sess := e.session.Load(); sess != nil {
		snap.ModelLoaded = true
		snap.ModelVersion = sess.Artifact().Version
	}
	if lastErr != nil {
		snap.LastError = lastErr.Error()
	}
	return snap
}

// Shutdown moves the engine into its terminal state, requests cooperative
// cancellation of any running training job and releases the active session.
// It never returns an error; release failures are logged. Cancellation of a
// running job completes asynchronously in the coordinator.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	if e.state == domain.EngineStateShuttingDown {
		e.mu.Unlock()
		return
	}
	e.state = domain.EngineStateShuttingDown
	e.mu.Unlock()

	e.rootCancel()

	if old := e.session.Swap(nil); old != nil {
		if err := old.Close(); err != nil {
			log.WithError(err).Warn("inference session release failed")
		}
	}

	log.Info("engine shut down")
}
