package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/middleware"
	"github.com/abdulrahmanisme/leadup-backend/internal/services"
)

type SubmissionHandler struct {
	log                *logger.Logger
	submissionService  services.SubmissionService
	leaderboardService services.LeaderboardService
}

func NewSubmissionHandler(log *logger.Logger, submissionService services.SubmissionService, leaderboardService services.LeaderboardService) *SubmissionHandler {
	return &SubmissionHandler{
		log:                log.With("handler", "SubmissionHandler"),
		submissionService:  submissionService,
		leaderboardService: leaderboardService,
	}
}

func (sh *SubmissionHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	submission, err := sh.submissionService.Create(c.Request.Context(), userID, req.Title, req.Description)
	if err != nil {
		var invalidErr *services.InvalidRequestError
		if errors.As(err, &invalidErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create submission"})
		return
	}
	c.JSON(http.StatusCreated, submission)
}

func (sh *SubmissionHandler) UploadProof(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
		return
	}

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proof file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read proof file"})
		return
	}
	defer file.Close()

	submission, err := sh.submissionService.AttachProof(c.Request.Context(), userID, submissionID, fileHeader.Filename, file)
	if err != nil {
		sh.log.Error("Proof upload failed", "submission_id", submissionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store proof"})
		return
	}
	c.JSON(http.StatusOK, submission)
}

func (sh *SubmissionHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	submissions, err := sh.submissionService.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch submissions"})
		return
	}
	c.JSON(http.StatusOK, submissions)
}

func (sh *SubmissionHandler) ListPending(c *gin.Context) {
	submissions, err := sh.submissionService.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch submissions"})
		return
	}
	c.JSON(http.StatusOK, submissions)
}

func (sh *SubmissionHandler) Review(c *gin.Context) {
	reviewerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
		return
	}

	var req struct {
		Status string `json:"status"`
		Points int    `json:"points"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := sh.submissionService.Review(c.Request.Context(), reviewerID, submissionID, req.Status, req.Points); err != nil {
		var invalidErr *services.InvalidRequestError
		if errors.As(err, &invalidErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to review submission"})
		return
	}

	// Approved points change the rankings.
	sh.leaderboardService.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}
