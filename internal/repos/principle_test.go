package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/abdulrahmanisme/leadup-backend/internal/repos/testutil"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

func TestPrincipleRepo_SeedIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewPrincipleRepo(db, testutil.Logger(t))
	ctx := context.Background()

	seed := func() []*types.Principle {
		return []*types.Principle{
			{ID: uuid.New(), Name: "Ownership", DisplayOrder: 1},
			{ID: uuid.New(), Name: "Service", DisplayOrder: 2},
		}
	}

	if err := repo.Seed(ctx, tx, seed()); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := repo.Seed(ctx, tx, seed()); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	principles, err := repo.List(ctx, tx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	seen := map[string]int{}
	for _, p := range principles {
		seen[p.Name]++
	}
	if seen["Ownership"] != 1 || seen["Service"] != 1 {
		t.Fatalf("seeding duplicated principles: %v", seen)
	}
}

func TestPrincipleRepo_GetByName(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewPrincipleRepo(db, testutil.Logger(t))
	ctx := context.Background()

	if err := repo.Seed(ctx, tx, []*types.Principle{
		{ID: uuid.New(), Name: "Integrity", Description: "Do the right thing.", DisplayOrder: 3},
	}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	got, err := repo.GetByName(ctx, tx, "Integrity")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if got.Description == "" {
		t.Fatal("description not persisted")
	}

	if _, err := repo.GetByName(ctx, tx, "NoSuchPrinciple"); err == nil {
		t.Fatal("expected error for unknown principle")
	}
}
