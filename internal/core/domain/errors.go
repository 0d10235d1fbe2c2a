package domain

import "errors"

// ============================================================================
// Model Store / Loader Errors
// ============================================================================

var (
	ErrArtifactNotFound = errors.New("no model artifact found in store")
	ErrCorruptArtifact  = errors.New("model artifact checksum mismatch")
	ErrLoadTimeout      = errors.New("model load timed out")
)

// ============================================================================
// Engine Errors
// ============================================================================

var (
	ErrModelUnavailable   = errors.New("no model loaded; start training to produce one")
	ErrEngineNotReady     = errors.New("engine is not initialized")
	ErrEngineShuttingDown = errors.New("engine is shutting down")
	ErrSessionClosed      = errors.New("inference session is closed")
)

// Validation errors
var (
	ErrEmptyInput      = errors.New("inference input is required")
	ErrEmptyDatasetRef = errors.New("training dataset reference is required")
)

// ============================================================================
// Training Errors
// ============================================================================

var (
	ErrTrainingAlreadyRunning = errors.New("a training job is already running")
	ErrJobNotFound            = errors.New("training job not found")
	ErrEmptyDataset           = errors.New("training dataset contains no usable examples")
)
