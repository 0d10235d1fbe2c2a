package domain

import (
	"time"

	"github.com/google/uuid"
)

type EngineState string

const (
	EngineStateUninitialized EngineState = "UNINITIALIZED"
	EngineStateLoading       EngineState = "LOADING"
	EngineStateReady         EngineState = "READY"
	EngineStateDegraded      EngineState = "DEGRADED"
	EngineStateTraining      EngineState = "TRAINING"
	EngineStateShuttingDown  EngineState = "SHUTTING_DOWN"
)

// Servable reports whether predict calls are accepted in this state.
// TRAINING is advisory: inference keeps running against the previous model.
func (s EngineState) Servable() bool {
	return s == EngineStateReady || s == EngineStateTraining
}

// InferenceRequest carries one input through the engine. No persistent
// identity; created and discarded per call.
type InferenceRequest struct {
	Input   string            `json:"input"`
	Context map[string]string `json:"context,omitempty"`
}

type InferenceResult struct {
	PredictionID uuid.UUID     `json:"prediction_id"`
	Output       string        `json:"output"`
	Intent       string        `json:"intent"`
	Confidence   float64       `json:"confidence"`
	ModelVersion string        `json:"model_version"`
	Latency      time.Duration `json:"latency_ns"`
}

// HealthSnapshot is derived on demand and never persisted.
type HealthSnapshot struct {
	EngineState  EngineState `json:"engine_state"`
	ModelLoaded  bool        `json:"model_loaded"`
	ModelVersion string      `json:"model_version,omitempty"`
	DatabaseOK   bool        `json:"database_ok"`
	LastError    string      `json:"last_error,omitempty"`
}
