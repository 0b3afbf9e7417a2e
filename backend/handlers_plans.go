package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"travelplanner/backend/planner"
)

// server holds the dependencies shared by every handler.
type server struct {
	store   Store
	planner *planner.Service
	log     *zap.Logger
}

// generateRequest is a planning request plus the caller's model API key.
type generateRequest struct {
	planner.PlanningRequest
	APIKey string `json:"apiKey"`
}

// POST /api/plans/generate
func (s *server) generatePlan(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := s.planner.Generate(c.Request.Context(), req.PlanningRequest, req.APIKey)
	switch {
	case errors.Is(err, planner.ErrMissingCredential):
		c.JSON(http.StatusBadRequest, gin.H{"error": "apiKey is required"})
		return
	case errors.Is(err, planner.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		s.log.Error("generate plan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate plan"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// POST /api/plans
func (s *server) createPlan(c *gin.Context) {
	var plan planner.TravelPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	record := PlanRecord{
		ID:         uuid.NewString(),
		UserID:     c.GetString(userIDKey),
		TravelPlan: plan,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreatePlan(c.Request.Context(), &record); err != nil {
		s.log.Error("save plan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save plan"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// GET /api/plans
func (s *server) listPlans(c *gin.Context) {
	plans, err := s.store.ListPlans(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		s.log.Error("list plans", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plans"})
		return
	}

	c.JSON(http.StatusOK, plans)
}

// GET /api/plans/:id
func (s *server) getPlan(c *gin.Context) {
	plan, err := s.store.GetPlan(c.Request.Context(), c.GetString(userIDKey), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	if err != nil {
		s.log.Error("get plan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plan"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// PUT /api/plans/:id
func (s *server) updatePlan(c *gin.Context) {
	// 只更新前端有傳的欄位
	var update planUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := update.fields()
	set["updated_at"] = time.Now().UTC()

	plan, err := s.store.UpdatePlan(c.Request.Context(), c.GetString(userIDKey), c.Param("id"), set)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	if err != nil {
		s.log.Error("update plan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DELETE /api/plans/:id
func (s *server) deletePlan(c *gin.Context) {
	err := s.store.DeletePlan(c.Request.Context(), c.GetString(userIDKey), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	if err != nil {
		s.log.Error("delete plan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully"})
}
