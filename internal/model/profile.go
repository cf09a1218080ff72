package model

import (
	"encoding/json"
	"time"
)

// Profile is the mutable game-state snapshot owned 1:1 by a User.
// Upgrades and stats are stored as opaque JSON text and replaced wholesale
// on every sync.
type Profile struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Coins            int64     `json:"coins" gorm:"not null;default:0"`
	UpgradesSnapshot string    `json:"-" gorm:"type:text"`
	StatsSnapshot    string    `json:"-" gorm:"type:text"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Snapshot is the wire representation of a profile returned to clients.
type Snapshot struct {
	Nickname  string          `json:"nickname"`
	Coins     int64           `json:"coins"`
	Upgrades  json.RawMessage `json:"upgrades"`
	Stats     json.RawMessage `json:"stats"`
	UpdatedAt *time.Time      `json:"updatedAt"`
}

// ToSnapshot builds the wire shape for a profile. Empty stored snapshots
// surface as empty JSON objects.
func (p *Profile) ToSnapshot(nickname string) Snapshot {
	s := Snapshot{
		Nickname: nickname,
		Coins:    p.Coins,
		Upgrades: rawOrEmpty(p.UpgradesSnapshot),
		Stats:    rawOrEmpty(p.StatsSnapshot),
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		s.UpdatedAt = &t
	}
	return s
}

func rawOrEmpty(s string) json.RawMessage {
	if s == "" {
		return json.RawMessage("{}")
	}
	return json.RawMessage(s)
}
