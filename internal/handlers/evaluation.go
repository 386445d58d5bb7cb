package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abdulrahmanisme/leadup-backend/internal/evaluation"
	"github.com/abdulrahmanisme/leadup-backend/internal/middleware"
	"github.com/abdulrahmanisme/leadup-backend/internal/services"
)

type EvaluationHandler struct {
	evalService services.EvaluationService
}

func NewEvaluationHandler(evalService services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evalService: evalService}
}

// Evaluate scores one reflection. A generation-endpoint outage is not an
// error here: the fallback result still comes back with success=true. Only
// bad input, missing credentials, and a failed score write are errors.
func (eh *EvaluationHandler) Evaluate(c *gin.Context) {
	var req struct {
		ReflectionID string `json:"reflection_id"`
		Principle    string `json:"principle"`
		Question     string `json:"question"`
		Response     string `json:"response"`
		UserID       string `json:"user_id"`
		Detailed     bool   `json:"detailed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reflectionID, err := uuid.Parse(req.ReflectionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required field: reflection_id"})
		return
	}

	userID, _ := uuid.Parse(req.UserID)
	if userID == uuid.Nil {
		if authUser, ok := middleware.UserID(c); ok {
			userID = authUser
		}
	}

	result, err := eh.evalService.Evaluate(c.Request.Context(), services.EvaluateInput{
		ReflectionID: reflectionID,
		Principle:    req.Principle,
		Question:     req.Question,
		Response:     req.Response,
		UserID:       userID,
		Detailed:     req.Detailed,
	})
	if err != nil {
		var invalidErr *services.InvalidRequestError
		if errors.As(err, &invalidErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidErr.Error()})
			return
		}
		if errors.Is(err, evaluation.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "AI service not configured"})
			return
		}
		var persistErr *services.PersistenceError
		if errors.As(err, &persistErr) {
			// Losing a computed score silently is unacceptable; hand the
			// result back alongside the error for manual recovery.
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":      persistErr.Error(),
				"evaluation": persistErr.Result,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "evaluation": result})
}
