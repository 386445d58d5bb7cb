package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/abdulrahmanisme/leadup-backend/internal/repos/testutil"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

func seedReflection(t *testing.T, userID uuid.UUID, principle string) *types.Reflection {
	t.Helper()
	return &types.Reflection{
		ID:        uuid.New(),
		UserID:    userID,
		Principle: principle,
		Question:  "What did you take ownership of this week?",
		Response:  "I coordinated the venue booking after the original fell through.",
	}
}

func TestReflectionRepo_CreateAndGet(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewReflectionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	userID := uuid.New()
	created, err := repo.Create(ctx, tx, []*types.Reflection{seedReflection(t, userID, "Ownership")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 created reflection, got %d", len(created))
	}

	got, err := repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.UserID != userID {
		t.Fatalf("user id mismatch: got %s want %s", got.UserID, userID)
	}
	if got.EffortScore != nil || got.QualityScore != nil {
		t.Fatalf("new reflection should be unscored, got effort=%v quality=%v", got.EffortScore, got.QualityScore)
	}
}

func TestReflectionRepo_UpdateScoresLastWriteWins(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewReflectionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.Reflection{seedReflection(t, uuid.New(), "Integrity")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := created[0].ID

	if err := repo.UpdateScores(ctx, tx, id, 6, 5); err != nil {
		t.Fatalf("first UpdateScores: %v", err)
	}
	if err := repo.UpdateScores(ctx, tx, id, 8, 7); err != nil {
		t.Fatalf("second UpdateScores: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.EffortScore == nil || *got.EffortScore != 8 {
		t.Fatalf("effort score: got %v, want 8", got.EffortScore)
	}
	if got.QualityScore == nil || *got.QualityScore != 7 {
		t.Fatalf("quality score: got %v, want 7", got.QualityScore)
	}
}

func TestReflectionRepo_ListByUserNewestFirst(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewReflectionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	userID := uuid.New()
	batch := []*types.Reflection{
		seedReflection(t, userID, "Ownership"),
		seedReflection(t, userID, "Service"),
	}
	if _, err := repo.Create(ctx, tx, batch); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, tx, []*types.Reflection{seedReflection(t, uuid.New(), "Ownership")}); err != nil {
		t.Fatalf("Create other user: %v", err)
	}

	mine, err := repo.ListByUser(ctx, tx, userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 reflections for user, got %d", len(mine))
	}
	for _, r := range mine {
		if r.UserID != userID {
			t.Fatalf("reflection %s belongs to %s, not the queried user", r.ID, r.UserID)
		}
	}
}
