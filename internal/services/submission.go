package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/repos"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

type SubmissionService interface {
	Create(ctx context.Context, userID uuid.UUID, title, description string) (*types.Submission, error)
	AttachProof(ctx context.Context, userID, submissionID uuid.UUID, filename string, file io.Reader) (*types.Submission, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*types.Submission, error)
	ListPending(ctx context.Context) ([]*types.Submission, error)
	Review(ctx context.Context, reviewerID, submissionID uuid.UUID, status string, points int) error
}

type submissionService struct {
	db             *gorm.DB
	log            *logger.Logger
	submissionRepo repos.SubmissionRepo
	bucketService  BucketService
}

func NewSubmissionService(db *gorm.DB, log *logger.Logger, submissionRepo repos.SubmissionRepo, bucketService BucketService) SubmissionService {
	serviceLog := log.With("service", "SubmissionService")
	return &submissionService{
		db:             db,
		log:            serviceLog,
		submissionRepo: submissionRepo,
		bucketService:  bucketService,
	}
}

func (ss *submissionService) Create(ctx context.Context, userID uuid.UUID, title, description string) (*types.Submission, error) {
	if userID == uuid.Nil {
		return nil, &InvalidRequestError{Field: "user_id"}
	}
	if strings.TrimSpace(title) == "" {
		return nil, &InvalidRequestError{Field: "title"}
	}

	created, err := ss.submissionRepo.Create(ctx, nil, []*types.Submission{{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      types.SubmissionStatusPending,
	}})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (ss *submissionService) AttachProof(ctx context.Context, userID, submissionID uuid.UUID, filename string, file io.Reader) (*types.Submission, error) {
	submission, err := ss.submissionRepo.GetByID(ctx, nil, submissionID)
	if err != nil {
		return nil, err
	}
	if submission.UserID != userID {
		return nil, fmt.Errorf("submission %s does not belong to user", submissionID)
	}
	if ss.bucketService == nil {
		return nil, fmt.Errorf("proof storage not configured")
	}

	key := fmt.Sprintf("proofs/%s/%s%s", userID, submissionID, path.Ext(filename))
	if err := ss.bucketService.UploadFile(ctx, key, file); err != nil {
		return nil, err
	}
	proofURL := ss.bucketService.GetPublicURL(key)
	if err := ss.submissionRepo.SetProof(ctx, nil, submissionID, key, proofURL); err != nil {
		return nil, err
	}

	submission.ProofKey = key
	submission.ProofURL = proofURL
	return submission, nil
}

func (ss *submissionService) ListMine(ctx context.Context, userID uuid.UUID) ([]*types.Submission, error) {
	return ss.submissionRepo.ListByUser(ctx, nil, userID)
}

func (ss *submissionService) ListPending(ctx context.Context) ([]*types.Submission, error) {
	return ss.submissionRepo.ListByStatus(ctx, nil, types.SubmissionStatusPending)
}

func (ss *submissionService) Review(ctx context.Context, reviewerID, submissionID uuid.UUID, status string, points int) error {
	if status != types.SubmissionStatusApproved && status != types.SubmissionStatusRejected {
		return &InvalidRequestError{Field: "status"}
	}
	if points < 0 {
		return &InvalidRequestError{Field: "points"}
	}
	return ss.submissionRepo.Review(ctx, nil, submissionID, status, points, reviewerID)
}
