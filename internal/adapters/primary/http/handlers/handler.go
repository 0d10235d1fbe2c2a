package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/services"
)

type Handler struct {
	engine    *services.Engine
	healthSvc *services.HealthService
}

func New(engine *services.Engine, healthSvc *services.HealthService) *Handler {
	return &Handler{
		engine:    engine,
		healthSvc: healthSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/predict", h.Predict)
	r.POST("/training", h.StartTraining)
	r.GET("/training/:id", h.GetTrainingJob)
	r.POST("/feedback", h.RecordFeedback)
}
