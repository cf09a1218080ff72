package model

import "time"

// LeaderboardEntry is a single ranked row of the global leaderboard.
type LeaderboardEntry struct {
	Nickname  string     `json:"nickname"`
	Coins     int64      `json:"coins"`
	UpdatedAt *time.Time `json:"updatedAt"`
}
