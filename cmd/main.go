package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/abdulrahmanisme/leadup-backend/internal/db"
	"github.com/abdulrahmanisme/leadup-backend/internal/evaluation"
	"github.com/abdulrahmanisme/leadup-backend/internal/handlers"
	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/middleware"
	"github.com/abdulrahmanisme/leadup-backend/internal/observability"
	"github.com/abdulrahmanisme/leadup-backend/internal/repos"
	"github.com/abdulrahmanisme/leadup-backend/internal/server"
	"github.com/abdulrahmanisme/leadup-backend/internal/services"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
	"github.com/abdulrahmanisme/leadup-backend/internal/utils"
)

const serviceName = "leadup-backend"

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecret := utils.GetEnv("JWT_SECRET", "defaultsecret", log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)

	// Tracing
	ctx := context.Background()
	if stop := observability.Init(ctx, log, observability.Config{
		ServiceName: serviceName,
		Environment: utils.GetEnv("APP_ENV", "development", log),
	}); stop != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := stop(shutdownCtx); err != nil {
				log.Warn("Tracer shutdown failed", "error", err)
			}
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis (optional cache, leaderboard falls back to recomputing)
	var rdb *goredis.Client
	if redisAddr != "" {
		rdb = goredis.NewClient(&goredis.Options{Addr: redisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable, leaderboard caching disabled", "error", err)
			rdb = nil
		}
	}

	// Repos
	log.Info("Setting up Repos from main...")
	profileRepo := repos.NewProfileRepo(thePG, log)
	principleRepo := repos.NewPrincipleRepo(thePG, log)
	reflectionRepo := repos.NewReflectionRepo(thePG, log)
	submissionRepo := repos.NewSubmissionRepo(thePG, log)
	eventRepo := repos.NewEventRepo(thePG, log)
	attendanceRepo := repos.NewAttendanceRepo(thePG, log)
	userRoleRepo := repos.NewUserRoleRepo(thePG, log)
	evalLogRepo := repos.NewEvaluationLogRepo(thePG, log)

	seedPrinciples(ctx, log, principleRepo)

	// Services
	log.Info("Setting up Services from main...")
	geminiClient, err := evaluation.NewGeminiClient(log)
	if err != nil {
		if errors.Is(err, evaluation.ErrNotConfigured) {
			// Evaluation requests report the misconfiguration per call.
			log.Warn("GEMINI_API_KEY not set, evaluation endpoint will reject requests")
		} else {
			log.Error("Could not init Gemini client", "error", err)
			os.Exit(1)
		}
	}
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Warn("Could not init BucketService", "error", err)
	}
	evalService := services.NewEvaluationService(thePG, log, geminiClient, reflectionRepo, evalLogRepo)
	reflectionService := services.NewReflectionService(thePG, log, reflectionRepo, evalService)
	submissionService := services.NewSubmissionService(thePG, log, submissionRepo, bucketService)
	leaderboardService := services.NewLeaderboardService(thePG, log, rdb, profileRepo, reflectionRepo, submissionRepo)
	eventService := services.NewEventService(thePG, log, eventRepo, attendanceRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	evaluationHandler := handlers.NewEvaluationHandler(evalService)
	reflectionHandler := handlers.NewReflectionHandler(reflectionService)
	submissionHandler := handlers.NewSubmissionHandler(log, submissionService, leaderboardService)
	leaderboardHandler := handlers.NewLeaderboardHandler(log, leaderboardService)
	eventHandler := handlers.NewEventHandler(log, eventService)
	principleHandler := handlers.NewPrincipleHandler(log, principleRepo)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, jwtSecret)
	roleMiddleware := middleware.NewRoleMiddleware(log, userRoleRepo)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:        serviceName,
		AuthMiddleware:     authMiddleware,
		RoleMiddleware:     roleMiddleware,
		EvaluationHandler:  evaluationHandler,
		ReflectionHandler:  reflectionHandler,
		SubmissionHandler:  submissionHandler,
		LeaderboardHandler: leaderboardHandler,
		EventHandler:       eventHandler,
		PrincipleHandler:   principleHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}

func seedPrinciples(ctx context.Context, log *logger.Logger, principleRepo repos.PrincipleRepo) {
	seed := []*types.Principle{
		{ID: uuid.New(), Name: "Ownership", Description: "Take responsibility for outcomes, not just tasks.", DisplayOrder: 1},
		{ID: uuid.New(), Name: "Collaboration", Description: "Multiply the team's impact by working openly with others.", DisplayOrder: 2},
		{ID: uuid.New(), Name: "Integrity", Description: "Do the right thing when nobody is watching.", DisplayOrder: 3},
		{ID: uuid.New(), Name: "Excellence", Description: "Hold a high bar and raise it over time.", DisplayOrder: 4},
		{ID: uuid.New(), Name: "Service", Description: "Lead by serving the community around you.", DisplayOrder: 5},
	}
	if err := principleRepo.Seed(ctx, nil, seed); err != nil {
		log.Warn("Principle seeding failed", "error", err)
	}
}
