package repository

import (
	"context"

	"gorm.io/gorm"

	"coinvault/internal/model"
)

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uint) (*model.Profile, error)
	Save(ctx context.Context, profile *model.Profile) error
	Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uint) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// Top returns the highest-coin profiles joined with their owners, coins
// descending and ties broken by most recent update.
func (r *profileRepository) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	err := r.db.WithContext(ctx).
		Table("profiles").
		Select("users.nickname AS nickname, profiles.coins AS coins, profiles.updated_at AS updated_at").
		Joins("JOIN users ON users.id = profiles.user_id").
		Order("profiles.coins DESC, profiles.updated_at DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
