package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/services"
)

const defaultLeaderboardLimit = 20

type LeaderboardHandler struct {
	log                *logger.Logger
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(log *logger.Logger, leaderboardService services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		log:                log.With("handler", "LeaderboardHandler"),
		leaderboardService: leaderboardService,
	}
}

func (lh *LeaderboardHandler) Top(c *gin.Context) {
	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	entries, err := lh.leaderboardService.Top(c.Request.Context(), limit)
	if err != nil {
		lh.log.Error("Leaderboard aggregation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
