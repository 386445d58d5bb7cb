package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/middleware"
	"github.com/abdulrahmanisme/leadup-backend/internal/services"
)

type EventHandler struct {
	log          *logger.Logger
	eventService services.EventService
}

func NewEventHandler(log *logger.Logger, eventService services.EventService) *EventHandler {
	return &EventHandler{
		log:          log.With("handler", "EventHandler"),
		eventService: eventService,
	}
}

func (eh *EventHandler) List(c *gin.Context) {
	var (
		events interface{}
		err    error
	)
	if c.Query("upcoming") == "true" {
		events, err = eh.eventService.ListUpcoming(c.Request.Context())
	} else {
		events, err = eh.eventService.List(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (eh *EventHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Location    string    `json:"location"`
		StartsAt    time.Time `json:"starts_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	event, err := eh.eventService.Create(c.Request.Context(), userID, req.Title, req.Description, req.Location, req.StartsAt)
	if err != nil {
		var invalidErr *services.InvalidRequestError
		if errors.As(err, &invalidErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event"})
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (eh *EventHandler) CheckIn(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	attendance, err := eh.eventService.CheckIn(c.Request.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyCheckedIn) {
			c.JSON(http.StatusConflict, gin.H{"error": "already checked in"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check in"})
		return
	}
	c.JSON(http.StatusCreated, attendance)
}

func (eh *EventHandler) Attendance(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	attendance, err := eh.eventService.Attendance(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch attendance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": attendance})
}
