package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abdulrahmanisme/leadup-backend/internal/middleware"
	"github.com/abdulrahmanisme/leadup-backend/internal/services"
)

type ReflectionHandler struct {
	reflectionService services.ReflectionService
}

func NewReflectionHandler(reflectionService services.ReflectionService) *ReflectionHandler {
	return &ReflectionHandler{reflectionService: reflectionService}
}

func (rh *ReflectionHandler) Submit(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Reflections []services.ReflectionEntry `json:"reflections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	submitted, err := rh.reflectionService.Submit(c.Request.Context(), userID, req.Reflections)
	if err != nil {
		var invalidErr *services.InvalidRequestError
		if errors.As(err, &invalidErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit reflections"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "reflections": submitted})
}

func (rh *ReflectionHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reflections, err := rh.reflectionService.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reflections"})
		return
	}
	c.JSON(http.StatusOK, reflections)
}

func (rh *ReflectionHandler) OverrideScores(c *gin.Context) {
	reflectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reflection id"})
		return
	}

	var req struct {
		EffortScore  float64 `json:"effort_score"`
		QualityScore float64 `json:"quality_score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := rh.reflectionService.OverrideScores(c.Request.Context(), reflectionID, req.EffortScore, req.QualityScore)
	if err != nil {
		if errors.Is(err, services.ErrScoreOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reflection not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to override scores"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reflection": updated})
}
