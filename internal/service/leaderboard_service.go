package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coinvault/internal/cache"
	"coinvault/internal/model"
	"coinvault/internal/repository"
)

const (
	// DefaultLeaderboardLimit is used when the client sends no usable limit.
	DefaultLeaderboardLimit = 25
	// MaxLeaderboardLimit caps how many entries a single request may fetch.
	MaxLeaderboardLimit = 100

	leaderboardCachePrefix = "leaderboard:"
	leaderboardCacheTTL    = 30 * time.Second
)

// LeaderboardService exposes the ranked read-only view over profiles.
type LeaderboardService interface {
	Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

type leaderboardService struct {
	profileRepo repository.ProfileRepository
	cache       *cache.Client
}

// NewLeaderboardService builds a LeaderboardService with repository and cache.
func NewLeaderboardService(profileRepo repository.ProfileRepository, cache *cache.Client) LeaderboardService {
	return &leaderboardService{profileRepo: profileRepo, cache: cache}
}

// Top returns up to limit entries ordered by coins descending, ties broken
// by most recent update. The limit is clamped to [1, MaxLeaderboardLimit].
func (s *leaderboardService) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	limit = ClampLimit(limit)

	key := fmt.Sprintf("%s%d", leaderboardCachePrefix, limit)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.LeaderboardEntry
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.profileRepo.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}

	if payload, err := json.Marshal(entries); err == nil {
		_ = s.cache.Set(ctx, key, payload, leaderboardCacheTTL)
	}
	return entries, nil
}

// ClampLimit normalizes a requested limit into [1, MaxLeaderboardLimit].
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLeaderboardLimit {
		return MaxLeaderboardLimit
	}
	return limit
}
