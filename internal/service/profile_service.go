package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"coinvault/internal/cache"
	apperrors "coinvault/internal/errors"
	"coinvault/internal/model"
	"coinvault/internal/repository"
)

// ProfileService reads and replaces a user's profile snapshot.
type ProfileService interface {
	Snapshot(ctx context.Context, user *model.User) (model.Snapshot, error)
	// Sync overwrites the stored snapshot. Coins are coerced and clamped to
	// >= 0; upgrades/stats replace the previous snapshots entirely.
	Sync(ctx context.Context, user *model.User, coins, upgrades, stats json.RawMessage) (model.Snapshot, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	cache       *cache.Client
}

// NewProfileService builds a ProfileService with repository and cache.
func NewProfileService(profileRepo repository.ProfileRepository, cache *cache.Client) ProfileService {
	return &profileService{profileRepo: profileRepo, cache: cache}
}

func (s *profileService) Snapshot(ctx context.Context, user *model.User) (model.Snapshot, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("load profile: %w", err)
	}
	return profile.ToSnapshot(user.Nickname), nil
}

func (s *profileService) Sync(ctx context.Context, user *model.User, coins, upgrades, stats json.RawMessage) (model.Snapshot, error) {
	upgradesJSON, err := normalizeSnapshot(upgrades)
	if err != nil {
		return model.Snapshot{}, apperrors.ErrInvalidPayload
	}
	statsJSON, err := normalizeSnapshot(stats)
	if err != nil {
		return model.Snapshot{}, apperrors.ErrInvalidPayload
	}

	profile, err := s.profileRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("load profile: %w", err)
	}

	profile.Coins = CoerceCoins(coins)
	profile.UpgradesSnapshot = upgradesJSON
	profile.StatsSnapshot = statsJSON

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return model.Snapshot{}, fmt.Errorf("save profile: %w", err)
	}

	// Stored coins changed, so cached leaderboard pages are stale.
	_ = s.cache.DeleteByPrefix(ctx, leaderboardCachePrefix)

	return profile.ToSnapshot(user.Nickname), nil
}

// CoerceCoins turns an arbitrary JSON value into a non-negative coin count.
// Numbers are truncated to integers, numeric strings are parsed, and
// anything else (including negatives) becomes 0. Bad input is not an error.
func CoerceCoins(raw json.RawMessage) int64 {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return clampCoins(int64(n))
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return clampCoins(int64(parsed))
		}
	}
	return 0
}

func clampCoins(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// normalizeSnapshot validates a raw snapshot payload and returns its stored
// text form. Absent or falsy payloads (null, 0, "", false, empty array)
// become the empty object.
func normalizeSnapshot(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "{}", nil
	}

	var value interface{}
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return "", apperrors.ErrInvalidPayload
	}
	if isFalsy(value) {
		return "{}", nil
	}
	return trimmed, nil
}

func isFalsy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	case []interface{}:
		return len(v) == 0
	case map[string]interface{}:
		return len(v) == 0
	}
	return false
}
