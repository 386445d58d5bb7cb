package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/abdulrahmanisme/leadup-backend/internal/repos/testutil"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

func seedSubmission(t *testing.T, userID uuid.UUID) *types.Submission {
	t.Helper()
	return &types.Submission{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       "Organized campus cleanup drive",
		Description: "Led 30 volunteers across three buildings.",
		Status:      types.SubmissionStatusPending,
	}
}

func TestSubmissionRepo_ReviewTransitions(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewSubmissionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.Submission{seedSubmission(t, uuid.New())})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := created[0].ID
	reviewerID := uuid.New()

	if err := repo.Review(ctx, tx, id, types.SubmissionStatusApproved, 15, reviewerID); err != nil {
		t.Fatalf("Review: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != types.SubmissionStatusApproved {
		t.Fatalf("status: got %q, want approved", got.Status)
	}
	if got.Points != 15 {
		t.Fatalf("points: got %d, want 15", got.Points)
	}
	if got.ReviewedBy == nil || *got.ReviewedBy != reviewerID {
		t.Fatalf("reviewed_by: got %v, want %s", got.ReviewedBy, reviewerID)
	}
}

func TestSubmissionRepo_SetProof(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewSubmissionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.Submission{seedSubmission(t, uuid.New())})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := created[0].ID

	if err := repo.SetProof(ctx, tx, id, "proofs/u/abc.png", "https://cdn.example.com/proofs/u/abc.png"); err != nil {
		t.Fatalf("SetProof: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ProofKey != "proofs/u/abc.png" {
		t.Fatalf("proof key: got %q", got.ProofKey)
	}
	if got.ProofURL == "" {
		t.Fatal("proof url not persisted")
	}
}

func TestSubmissionRepo_ListByStatus(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewSubmissionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	userID := uuid.New()
	created, err := repo.Create(ctx, tx, []*types.Submission{
		seedSubmission(t, userID),
		seedSubmission(t, userID),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Review(ctx, tx, created[0].ID, types.SubmissionStatusRejected, 0, uuid.New()); err != nil {
		t.Fatalf("Review: %v", err)
	}

	pending, err := repo.ListByStatus(ctx, tx, types.SubmissionStatusPending)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	for _, s := range pending {
		if s.Status != types.SubmissionStatusPending {
			t.Fatalf("submission %s has status %q in pending listing", s.ID, s.Status)
		}
	}
	if len(pending) == 0 {
		t.Fatal("expected at least one pending submission")
	}
}
