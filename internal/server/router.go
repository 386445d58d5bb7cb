package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/abdulrahmanisme/leadup-backend/internal/handlers"
	"github.com/abdulrahmanisme/leadup-backend/internal/middleware"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

type RouterConfig struct {
	ServiceName        string
	AuthMiddleware     *middleware.AuthMiddleware
	RoleMiddleware     *middleware.RoleMiddleware
	EvaluationHandler  *handlers.EvaluationHandler
	ReflectionHandler  *handlers.ReflectionHandler
	SubmissionHandler  *handlers.SubmissionHandler
	LeaderboardHandler *handlers.LeaderboardHandler
	EventHandler       *handlers.EventHandler
	PrincipleHandler   *handlers.PrincipleHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Requested-With"},
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.GET("/principles", cfg.PrincipleHandler.List)
		api.GET("/leaderboard", cfg.LeaderboardHandler.Top)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Reflections + evaluation
	protected.POST("/reflections", cfg.ReflectionHandler.Submit)
	protected.GET("/reflections", cfg.ReflectionHandler.ListMine)
	protected.POST("/reflections/evaluate", cfg.EvaluationHandler.Evaluate)
	// Submissions
	protected.POST("/submissions", cfg.SubmissionHandler.Create)
	protected.GET("/submissions", cfg.SubmissionHandler.ListMine)
	protected.POST("/submissions/:id/proof", cfg.SubmissionHandler.UploadProof)
	// Events
	protected.GET("/events", cfg.EventHandler.List)
	protected.POST("/events/:id/checkin", cfg.EventHandler.CheckIn)

	// ===============
	// || Admin     ||
	// ===============
	admin := protected.Group("/admin")
	admin.Use(cfg.RoleMiddleware.RequireRole(types.RoleAdmin))
	admin.GET("/submissions", cfg.SubmissionHandler.ListPending)
	admin.POST("/submissions/:id/review", cfg.SubmissionHandler.Review)
	admin.POST("/reflections/:id/scores", cfg.ReflectionHandler.OverrideScores)
	admin.POST("/events", cfg.EventHandler.Create)
	admin.GET("/events/:id/attendance", cfg.EventHandler.Attendance)

	return router
}
