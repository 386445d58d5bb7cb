package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/abdulrahmanisme/leadup-backend/internal/evaluation"
	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/repos"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

type InvalidRequestError struct {
	Field string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// PersistenceError means the scores were computed but could not be written.
// The computed result rides along so the caller can still surface it for
// manual recovery.
type PersistenceError struct {
	Err    error
	Result *evaluation.Result
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save evaluation scores: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type EvaluateInput struct {
	ReflectionID uuid.UUID
	Principle    string
	Question     string
	Response     string
	UserID       uuid.UUID
	Detailed     bool
}

type EvaluationService interface {
	Evaluate(ctx context.Context, in EvaluateInput) (*evaluation.Result, error)
}

type evaluationService struct {
	db             *gorm.DB
	log            *logger.Logger
	client         evaluation.Client
	reflectionRepo repos.ReflectionRepo
	evalLogRepo    repos.EvaluationLogRepo
}

func NewEvaluationService(db *gorm.DB, log *logger.Logger, client evaluation.Client, reflectionRepo repos.ReflectionRepo, evalLogRepo repos.EvaluationLogRepo) EvaluationService {
	serviceLog := log.With("service", "EvaluationService")
	return &evaluationService{
		db:             db,
		log:            serviceLog,
		client:         client,
		reflectionRepo: reflectionRepo,
		evalLogRepo:    evalLogRepo,
	}
}

// Evaluate runs the full scoring pipeline for one reflection. Evaluation
// failures (endpoint down, unusable reply) are absorbed by the heuristic
// fallback and never surface as errors; only invalid input, a missing
// credential, and a failed score write do.
func (es *evaluationService) Evaluate(ctx context.Context, in EvaluateInput) (*evaluation.Result, error) {
	if err := validateEvaluateInput(in); err != nil {
		return nil, err
	}
	if es.client == nil {
		return nil, evaluation.ErrNotConfigured
	}

	req := evaluation.Request{
		Principle: in.Principle,
		Question:  in.Question,
		Response:  in.Response,
		Detailed:  in.Detailed,
	}
	prompt := evaluation.BuildPrompt(req)

	start := time.Now()
	var (
		result   *evaluation.Result
		raw      string
		fellBack bool
		evalErr  error
	)

	raw, evalErr = es.client.Generate(ctx, prompt)
	if evalErr == nil {
		result, evalErr = evaluation.ParseEvaluation(raw, in.Detailed)
	}
	if evalErr != nil {
		es.log.Warn("Evaluation failed, using heuristic fallback",
			"reflection_id", in.ReflectionID,
			"error", evalErr.Error(),
		)
		result = evaluation.Fallback(req, evalErr)
		fellBack = true
	}

	es.writeLog(ctx, in, prompt, raw, result, fellBack, evalErr, time.Since(start))

	if err := es.reflectionRepo.UpdateScores(ctx, nil, in.ReflectionID, result.EffortScore, result.QualityScore); err != nil {
		es.log.Error("Failed to persist evaluation scores",
			"reflection_id", in.ReflectionID,
			"error", err,
		)
		return nil, &PersistenceError{Err: err, Result: result}
	}

	return result, nil
}

func validateEvaluateInput(in EvaluateInput) error {
	if in.ReflectionID == uuid.Nil {
		return &InvalidRequestError{Field: "reflection_id"}
	}
	if strings.TrimSpace(in.Principle) == "" {
		return &InvalidRequestError{Field: "principle"}
	}
	if strings.TrimSpace(in.Question) == "" {
		return &InvalidRequestError{Field: "question"}
	}
	if strings.TrimSpace(in.Response) == "" {
		return &InvalidRequestError{Field: "response"}
	}
	if in.UserID == uuid.Nil {
		return &InvalidRequestError{Field: "user_id"}
	}
	return nil
}

// writeLog records the pipeline run for auditing. Best effort: a failed
// audit write never changes the evaluation outcome.
func (es *evaluationService) writeLog(ctx context.Context, in EvaluateInput, prompt, raw string, result *evaluation.Result, fellBack bool, evalErr error, elapsed time.Duration) {
	if es.evalLogRepo == nil {
		return
	}

	errText := ""
	if evalErr != nil {
		errText = evalErr.Error()
	}
	model := ""
	if es.client != nil {
		model = es.client.Model()
	}
	suggestions, _ := json.Marshal(result.Suggestions)

	entry := &types.EvaluationLog{
		ReflectionID: in.ReflectionID,
		UserID:       in.UserID,
		ModelName:    model,
		Prompt:       prompt,
		RawResponse:  raw,
		EffortScore:  result.EffortScore,
		QualityScore: result.QualityScore,
		Fallback:     fellBack,
		Error:        errText,
		Suggestions:  datatypes.JSON(suggestions),
		DurationMS:   elapsed.Milliseconds(),
	}
	if err := es.evalLogRepo.Create(ctx, nil, entry); err != nil {
		es.log.Warn("Failed to write evaluation log", "reflection_id", in.ReflectionID, "error", err)
	}
}
