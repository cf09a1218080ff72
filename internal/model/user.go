package model

import "time"

// User represents a registered player.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	// Binary collation keeps nickname lookups and the unique index
	// case-sensitive ("Alice" and "alice" are different players).
	Nickname     string    `json:"nickname" gorm:"uniqueIndex;size:40;not null;collate:utf8mb4_bin"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
