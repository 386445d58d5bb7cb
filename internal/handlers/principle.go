package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/repos"
)

type PrincipleHandler struct {
	log           *logger.Logger
	principleRepo repos.PrincipleRepo
}

func NewPrincipleHandler(log *logger.Logger, principleRepo repos.PrincipleRepo) *PrincipleHandler {
	return &PrincipleHandler{
		log:           log.With("handler", "PrincipleHandler"),
		principleRepo: principleRepo,
	}
}

func (ph *PrincipleHandler) List(c *gin.Context) {
	principles, err := ph.principleRepo.List(c.Request.Context(), nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch principles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"principles": principles})
}
