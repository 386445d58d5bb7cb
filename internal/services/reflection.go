package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abdulrahmanisme/leadup-backend/internal/evaluation"
	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/repos"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

type ReflectionEntry struct {
	Principle string `json:"principle"`
	Question  string `json:"question"`
	Response  string `json:"response"`
}

type SubmittedReflection struct {
	Reflection *types.Reflection  `json:"reflection"`
	Evaluation *evaluation.Result `json:"evaluation,omitempty"`
}

// ErrScoreOutOfRange rejects manual scores outside [0,10].
var ErrScoreOutOfRange = errors.New("scores must be within [0,10]")

type ReflectionService interface {
	Submit(ctx context.Context, userID uuid.UUID, entries []ReflectionEntry) ([]SubmittedReflection, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*types.Reflection, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Reflection, error)
	OverrideScores(ctx context.Context, id uuid.UUID, effort, quality float64) (*types.Reflection, error)
}

type reflectionService struct {
	db             *gorm.DB
	log            *logger.Logger
	reflectionRepo repos.ReflectionRepo
	evalService    EvaluationService
}

func NewReflectionService(db *gorm.DB, log *logger.Logger, reflectionRepo repos.ReflectionRepo, evalService EvaluationService) ReflectionService {
	serviceLog := log.With("service", "ReflectionService")
	return &reflectionService{
		db:             db,
		log:            serviceLog,
		reflectionRepo: reflectionRepo,
		evalService:    evalService,
	}
}

// Submit stores the answers first, then scores each one. A failed scoring
// run leaves the reflection unevaluated rather than discarding it; a later
// manual or re-run evaluation can fill the scores in.
func (rs *reflectionService) Submit(ctx context.Context, userID uuid.UUID, entries []ReflectionEntry) ([]SubmittedReflection, error) {
	if userID == uuid.Nil {
		return nil, &InvalidRequestError{Field: "user_id"}
	}
	if len(entries) == 0 {
		return nil, &InvalidRequestError{Field: "reflections"}
	}
	for _, entry := range entries {
		if strings.TrimSpace(entry.Principle) == "" {
			return nil, &InvalidRequestError{Field: "principle"}
		}
		if strings.TrimSpace(entry.Question) == "" {
			return nil, &InvalidRequestError{Field: "question"}
		}
		if strings.TrimSpace(entry.Response) == "" {
			return nil, &InvalidRequestError{Field: "response"}
		}
	}

	records := make([]*types.Reflection, 0, len(entries))
	for _, entry := range entries {
		records = append(records, &types.Reflection{
			ID:        uuid.New(),
			UserID:    userID,
			Principle: entry.Principle,
			Question:  entry.Question,
			Response:  entry.Response,
		})
	}
	created, err := rs.reflectionRepo.Create(ctx, nil, records)
	if err != nil {
		return nil, err
	}

	results := make([]SubmittedReflection, 0, len(created))
	for _, record := range created {
		submitted := SubmittedReflection{Reflection: record}
		evalResult, evalErr := rs.evalService.Evaluate(ctx, EvaluateInput{
			ReflectionID: record.ID,
			Principle:    record.Principle,
			Question:     record.Question,
			Response:     record.Response,
			UserID:       userID,
		})
		if evalErr != nil {
			rs.log.Warn("Reflection stored but evaluation could not complete",
				"reflection_id", record.ID,
				"error", evalErr,
			)
		} else {
			submitted.Evaluation = evalResult
			effort := evalResult.EffortScore
			quality := evalResult.QualityScore
			record.EffortScore = &effort
			record.QualityScore = &quality
		}
		results = append(results, submitted)
	}
	return results, nil
}

func (rs *reflectionService) ListMine(ctx context.Context, userID uuid.UUID) ([]*types.Reflection, error) {
	return rs.reflectionRepo.ListByUser(ctx, nil, userID)
}

func (rs *reflectionService) Get(ctx context.Context, id uuid.UUID) (*types.Reflection, error) {
	return rs.reflectionRepo.GetByID(ctx, nil, id)
}

// OverrideScores replaces a reflection's scores by hand, typically after an
// admin reviews a fallback-scored entry. Last write wins, same as the
// automated pipeline.
func (rs *reflectionService) OverrideScores(ctx context.Context, id uuid.UUID, effort, quality float64) (*types.Reflection, error) {
	if effort < 0 || effort > 10 || quality < 0 || quality > 10 {
		return nil, ErrScoreOutOfRange
	}

	record, err := rs.reflectionRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if err := rs.reflectionRepo.UpdateScores(ctx, nil, id, effort, quality); err != nil {
		return nil, err
	}
	record.EffortScore = &effort
	record.QualityScore = &quality
	return record, nil
}
