package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

type fakeProfileRepo struct {
	profiles []*types.Profile
}

func (f *fakeProfileRepo) Create(ctx context.Context, tx *gorm.DB, profiles []*types.Profile) ([]*types.Profile, error) {
	f.profiles = append(f.profiles, profiles...)
	return profiles, nil
}

func (f *fakeProfileRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Profile, error) {
	return f.profiles, nil
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Profile, error) {
	return f.profiles[0], nil
}

func (f *fakeProfileRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Profile, error) {
	return f.profiles, nil
}

type fakeSubmissionRepo struct {
	byUser map[uuid.UUID][]*types.Submission
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, tx *gorm.DB, submissions []*types.Submission) ([]*types.Submission, error) {
	return submissions, nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Submission, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubmissionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Submission, error) {
	return f.byUser[userID], nil
}

func (f *fakeSubmissionRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Submission, error) {
	return nil, nil
}

func (f *fakeSubmissionRepo) SetProof(ctx context.Context, tx *gorm.DB, id uuid.UUID, proofKey, proofURL string) error {
	return nil
}

func (f *fakeSubmissionRepo) Review(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, points int, reviewerID uuid.UUID) error {
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func TestLeaderboard_RanksByTotalScore(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	alice := &types.Profile{ID: uuid.New(), FullName: "Alice", Cohort: "2026"}
	bob := &types.Profile{ID: uuid.New(), FullName: "Bob", Cohort: "2026"}

	reflections := newFakeReflectionRepo()
	reflections.byUser = map[uuid.UUID][]*types.Reflection{
		alice.ID: {
			{ID: uuid.New(), UserID: alice.ID, EffortScore: floatPtr(8), QualityScore: floatPtr(7)},
			{ID: uuid.New(), UserID: alice.ID, EffortScore: floatPtr(6), QualityScore: floatPtr(5)},
			// Unscored entries stay out of the averages.
			{ID: uuid.New(), UserID: alice.ID},
		},
		bob.ID: {
			{ID: uuid.New(), UserID: bob.ID, EffortScore: floatPtr(4), QualityScore: floatPtr(4)},
		},
	}

	submissions := &fakeSubmissionRepo{byUser: map[uuid.UUID][]*types.Submission{
		bob.ID: {
			{ID: uuid.New(), UserID: bob.ID, Status: types.SubmissionStatusApproved, Points: 20},
			{ID: uuid.New(), UserID: bob.ID, Status: types.SubmissionStatusPending, Points: 99},
		},
	}}

	svc := NewLeaderboardService(nil, log, nil, &fakeProfileRepo{profiles: []*types.Profile{alice, bob}}, reflections, submissions)

	entries, err := svc.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// Bob: avg 4+4 plus 20 approved points = 28. Alice: avg 7+6 = 13.
	if entries[0].FullName != "Bob" {
		t.Fatalf("expected Bob first, got %q", entries[0].FullName)
	}
	if entries[0].SubmissionPoints != 20 {
		t.Fatalf("pending submissions must not count: got %d points", entries[0].SubmissionPoints)
	}
	if entries[1].ReflectionCount != 2 {
		t.Fatalf("unscored reflections must not count: got %d", entries[1].ReflectionCount)
	}
	if entries[1].AvgEffort != 7 || entries[1].AvgQuality != 6 {
		t.Fatalf("averages: got effort=%v quality=%v", entries[1].AvgEffort, entries[1].AvgQuality)
	}
}

func TestLeaderboard_LimitTruncates(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	profiles := &fakeProfileRepo{}
	for i := 0; i < 5; i++ {
		profiles.profiles = append(profiles.profiles, &types.Profile{ID: uuid.New(), FullName: "User"})
	}

	svc := NewLeaderboardService(nil, log, nil, profiles, newFakeReflectionRepo(), &fakeSubmissionRepo{})

	entries, err := svc.Top(context.Background(), 3)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(entries))
	}
}
