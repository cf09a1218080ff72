package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "coinvault/internal/errors"
	"coinvault/internal/model"
)

// MockProfileRepository is a mock implementation of ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uint) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LeaderboardEntry), args.Error(1)
}

func TestCoerceCoins(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int64
	}{
		{name: "positive integer", raw: `100`, expected: 100},
		{name: "negative clamps to zero", raw: `-5`, expected: 0},
		{name: "non-numeric string", raw: `"not a number"`, expected: 0},
		{name: "numeric string", raw: `"42"`, expected: 42},
		{name: "float truncates", raw: `12.9`, expected: 12},
		{name: "negative float", raw: `-0.5`, expected: 0},
		{name: "null", raw: `null`, expected: 0},
		{name: "absent", raw: ``, expected: 0},
		{name: "object", raw: `{"a":1}`, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CoerceCoins(json.RawMessage(tt.raw)))
		})
	}
}

func TestProfileService_Sync(t *testing.T) {
	user := &model.User{ID: 1, Nickname: "alice"}

	tests := []struct {
		name          string
		coins         string
		upgrades      string
		stats         string
		expectedCoins int64
		expectedError error
	}{
		{
			name:          "replaces snapshots and clamps negative coins",
			coins:         `-10`,
			upgrades:      `{"speed":2,"magnet":1}`,
			stats:         `{"runs":17}`,
			expectedCoins: 0,
		},
		{
			name:          "stores valid coins",
			coins:         `250`,
			upgrades:      `{}`,
			stats:         `{}`,
			expectedCoins: 250,
		},
		{
			name:          "missing payloads become empty objects",
			coins:         `5`,
			upgrades:      ``,
			stats:         `null`,
			expectedCoins: 5,
		},
		{
			name:          "undecodable upgrades payload",
			coins:         `5`,
			upgrades:      `{broken`,
			stats:         `{}`,
			expectedError: apperrors.ErrInvalidPayload,
		},
		{
			name:          "undecodable stats payload",
			coins:         `5`,
			upgrades:      `{}`,
			stats:         `[1,`,
			expectedError: apperrors.ErrInvalidPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProfileRepository)
			stored := &model.Profile{
				ID:               1,
				UserID:           user.ID,
				Coins:            99,
				UpgradesSnapshot: `{"old":true}`,
				StatsSnapshot:    `{"old":true}`,
				UpdatedAt:        time.Now(),
			}
			if tt.expectedError == nil {
				mockRepo.On("FindByUserID", mock.Anything, user.ID).Return(stored, nil)
				mockRepo.On("Save", mock.Anything, stored).Return(nil)
			}

			svc := NewProfileService(mockRepo, nil)
			snapshot, err := svc.Sync(context.Background(), user,
				json.RawMessage(tt.coins), json.RawMessage(tt.upgrades), json.RawMessage(tt.stats))

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCoins, stored.Coins)
				assert.Equal(t, "alice", snapshot.Nickname)
				assert.Equal(t, tt.expectedCoins, snapshot.Coins)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProfileService_Sync_FalsyPayloadsBecomeEmptyObjects(t *testing.T) {
	user := &model.User{ID: 1, Nickname: "alice"}

	tests := []struct {
		name     string
		upgrades string
		stats    string
	}{
		{name: "null", upgrades: `null`, stats: `null`},
		{name: "zero", upgrades: `0`, stats: `0`},
		{name: "empty string", upgrades: `""`, stats: `""`},
		{name: "false", upgrades: `false`, stats: `false`},
		{name: "empty array", upgrades: `[]`, stats: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := &model.Profile{ID: 1, UserID: user.ID, UpgradesSnapshot: `{"old":true}`, StatsSnapshot: `{"old":true}`}
			mockRepo := new(MockProfileRepository)
			mockRepo.On("FindByUserID", mock.Anything, user.ID).Return(stored, nil)
			mockRepo.On("Save", mock.Anything, stored).Return(nil)

			svc := NewProfileService(mockRepo, nil)
			snapshot, err := svc.Sync(context.Background(), user,
				json.RawMessage(`1`), json.RawMessage(tt.upgrades), json.RawMessage(tt.stats))

			assert.NoError(t, err)
			assert.Equal(t, "{}", stored.UpgradesSnapshot)
			assert.Equal(t, "{}", stored.StatsSnapshot)
			assert.JSONEq(t, `{}`, string(snapshot.Upgrades))
			assert.JSONEq(t, `{}`, string(snapshot.Stats))
		})
	}
}

func TestProfileService_SyncThenSnapshotRoundtrip(t *testing.T) {
	user := &model.User{ID: 1, Nickname: "alice"}
	upgrades := `{"speed":3,"shield":1}`
	stats := `{"runs":5,"best":1200}`

	stored := &model.Profile{ID: 1, UserID: user.ID, UpgradesSnapshot: "{}", StatsSnapshot: "{}"}
	mockRepo := new(MockProfileRepository)
	mockRepo.On("FindByUserID", mock.Anything, user.ID).Return(stored, nil)
	mockRepo.On("Save", mock.Anything, stored).Return(nil)

	svc := NewProfileService(mockRepo, nil)

	_, err := svc.Sync(context.Background(), user,
		json.RawMessage(`77`), json.RawMessage(upgrades), json.RawMessage(stats))
	assert.NoError(t, err)

	snapshot, err := svc.Snapshot(context.Background(), user)
	assert.NoError(t, err)
	assert.JSONEq(t, upgrades, string(snapshot.Upgrades))
	assert.JSONEq(t, stats, string(snapshot.Stats))
	assert.Equal(t, int64(77), snapshot.Coins)
}

func TestProfileService_Snapshot_EmptyStoredSnapshots(t *testing.T) {
	user := &model.User{ID: 2, Nickname: "bob"}
	stored := &model.Profile{ID: 2, UserID: user.ID}

	mockRepo := new(MockProfileRepository)
	mockRepo.On("FindByUserID", mock.Anything, user.ID).Return(stored, nil)

	svc := NewProfileService(mockRepo, nil)
	snapshot, err := svc.Snapshot(context.Background(), user)

	assert.NoError(t, err)
	assert.JSONEq(t, `{}`, string(snapshot.Upgrades))
	assert.JSONEq(t, `{}`, string(snapshot.Stats))
	assert.Nil(t, snapshot.UpdatedAt)
}
