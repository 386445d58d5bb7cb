package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/repos"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

const (
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = 60 * time.Second
	aggregationFanout   = 8
)

type LeaderboardEntry struct {
	UserID           uuid.UUID `json:"user_id"`
	FullName         string    `json:"full_name"`
	Cohort           string    `json:"cohort"`
	AvgEffort        float64   `json:"avg_effort"`
	AvgQuality       float64   `json:"avg_quality"`
	ReflectionCount  int       `json:"reflection_count"`
	SubmissionPoints int       `json:"submission_points"`
	TotalScore       float64   `json:"total_score"`
}

type LeaderboardService interface {
	Top(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	Invalidate(ctx context.Context)
}

type leaderboardService struct {
	db             *gorm.DB
	log            *logger.Logger
	rdb            *goredis.Client
	profileRepo    repos.ProfileRepo
	reflectionRepo repos.ReflectionRepo
	submissionRepo repos.SubmissionRepo
}

func NewLeaderboardService(db *gorm.DB, log *logger.Logger, rdb *goredis.Client, profileRepo repos.ProfileRepo, reflectionRepo repos.ReflectionRepo, submissionRepo repos.SubmissionRepo) LeaderboardService {
	serviceLog := log.With("service", "LeaderboardService")
	return &leaderboardService{
		db:             db,
		log:            serviceLog,
		rdb:            rdb,
		profileRepo:    profileRepo,
		reflectionRepo: reflectionRepo,
		submissionRepo: submissionRepo,
	}
}

// Top returns the ranked entries, serving from the redis cache when one is
// configured and warm. Ranking is a plain average-and-sort; no weighting.
func (ls *leaderboardService) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	if cached := ls.readCache(ctx); cached != nil {
		if len(cached) > limit {
			cached = cached[:limit]
		}
		return cached, nil
	}

	entries, err := ls.aggregate(ctx)
	if err != nil {
		return nil, err
	}
	ls.writeCache(ctx, entries)

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (ls *leaderboardService) Invalidate(ctx context.Context) {
	if ls.rdb == nil {
		return
	}
	if err := ls.rdb.Del(ctx, leaderboardCacheKey).Err(); err != nil {
		ls.log.Warn("Failed to invalidate leaderboard cache", "error", err)
	}
}

func (ls *leaderboardService) aggregate(ctx context.Context) ([]LeaderboardEntry, error) {
	profiles, err := ls.profileRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	entries := make([]LeaderboardEntry, 0, len(profiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(aggregationFanout)
	for _, profile := range profiles {
		g.Go(func() error {
			entry, err := ls.aggregateUser(gctx, profile)
			if err != nil {
				return err
			}
			mu.Lock()
			entries = append(entries, entry)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		return entries[i].FullName < entries[j].FullName
	})
	return entries, nil
}

func (ls *leaderboardService) aggregateUser(ctx context.Context, profile *types.Profile) (LeaderboardEntry, error) {
	entry := LeaderboardEntry{
		UserID:   profile.ID,
		FullName: profile.FullName,
		Cohort:   profile.Cohort,
	}

	reflections, err := ls.reflectionRepo.ListByUser(ctx, nil, profile.ID)
	if err != nil {
		return entry, err
	}
	var effortSum, qualitySum float64
	var scored int
	for _, r := range reflections {
		if r.EffortScore == nil || r.QualityScore == nil {
			continue
		}
		effortSum += *r.EffortScore
		qualitySum += *r.QualityScore
		scored++
	}
	entry.ReflectionCount = scored
	if scored > 0 {
		entry.AvgEffort = effortSum / float64(scored)
		entry.AvgQuality = qualitySum / float64(scored)
	}

	submissions, err := ls.submissionRepo.ListByUser(ctx, nil, profile.ID)
	if err != nil {
		return entry, err
	}
	for _, s := range submissions {
		if s.Status == types.SubmissionStatusApproved {
			entry.SubmissionPoints += s.Points
		}
	}

	entry.TotalScore = entry.AvgEffort + entry.AvgQuality + float64(entry.SubmissionPoints)
	return entry, nil
}

func (ls *leaderboardService) readCache(ctx context.Context) []LeaderboardEntry {
	if ls.rdb == nil {
		return nil
	}
	raw, err := ls.rdb.Get(ctx, leaderboardCacheKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			ls.log.Warn("Leaderboard cache read failed", "error", err)
		}
		return nil
	}
	var entries []LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		ls.log.Warn("Leaderboard cache entry corrupt, recomputing", "error", err)
		return nil
	}
	return entries
}

func (ls *leaderboardService) writeCache(ctx context.Context, entries []LeaderboardEntry) {
	if ls.rdb == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := ls.rdb.Set(ctx, leaderboardCacheKey, raw, leaderboardCacheTTL).Err(); err != nil {
		ls.log.Warn("Leaderboard cache write failed", "error", err)
	}
}
