package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
)

type predictRequest struct {
	Input   string            `json:"input" binding:"required"`
	Context map[string]string `json:"context"`
}

type startTrainingRequest struct {
	DatasetRef string `json:"dataset_ref" binding:"required"`
}

type feedbackRequest struct {
	PredictionID string `json:"prediction_id" binding:"required"`
	Feedback     string `json:"feedback" binding:"required"`
}

func (h *Handler) Predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "input is required"})
		return
	}

	result, err := h.engine.Predict(c.Request.Context(), domain.InferenceRequest{
		Input:   req.Input,
		Context: req.Context,
	})
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) StartTraining(c *gin.Context) {
	var req startTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dataset_ref is required"})
		return
	}

	jobID, err := h.engine.StartTraining(c.Request.Context(), req.DatasetRef)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"job_id": jobID})
}

func (h *Handler) GetTrainingJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	job, err := h.engine.GetJobStatus(id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// RecordFeedback always answers 202: the sink is fire-and-forget and its
// failures stay in the logs.
func (h *Handler) RecordFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prediction_id and feedback are required"})
		return
	}

	predictionID, err := uuid.Parse(req.PredictionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prediction_id"})
		return
	}

	h.engine.RecordFeedback(predictionID, req.Feedback)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// Healthz reports the composed engine + database health. DEGRADED is 503 for
// the AI feature but carries the full snapshot so operators can tell
// "feature unavailable" apart from "system down".
func (h *Handler) Healthz(c *gin.Context) {
	snap := h.healthSvc.Report(c.Request.Context())

	status := http.StatusOK
	if !snap.EngineState.Servable() || !snap.DatabaseOK {
		status = http.StatusServiceUnavailable
	}
	if status != http.StatusOK {
		log.WithFields(log.Fields{
			"engine_state": snap.EngineState,
			"database_ok":  snap.DatabaseOK,
		}).Debug("health check not ready")
	}

	c.JSON(status, snap)
}
