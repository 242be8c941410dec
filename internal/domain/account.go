package domain

import (
	"math"
	"time"
)

// StartingCoins is granted to every account on first access.
const StartingCoins = 100

// UserAccount is the ledger record for one user. Accounts are keyed by the
// opaque user identifier the chat collaborator hands us.
type UserAccount struct {
	Coins       int64                    `json:"coins"`
	Level       int                      `json:"level"`
	XP          int64                    `json:"xp"`
	DailyTasks  map[string]*TaskProgress `json:"daily_tasks"`
	LastDaily   string                   `json:"last_daily,omitempty"` // YYYY-MM-DD of last task reset
	Job         string                   `json:"job,omitempty"`
	LastWork    *time.Time               `json:"last_work,omitempty"`
	TotalEarned int64                    `json:"total_earned"`
	TotalSpent  int64                    `json:"total_spent"`
	GamesPlayed int64                    `json:"games_played"`
	GamesWon    int64                    `json:"games_won"`
	Streak      int64                    `json:"streak"`
	Achievements []string                `json:"achievements"`
	CreatedAt   time.Time                `json:"created_at"`
}

// NewUserAccount returns a fresh account with the starting grant applied.
func NewUserAccount(now time.Time) *UserAccount {
	return &UserAccount{
		Coins:        StartingCoins,
		Level:        1,
		DailyTasks:   make(map[string]*TaskProgress),
		TotalEarned:  StartingCoins,
		Achievements: []string{},
		CreatedAt:    now,
	}
}

// LevelForXP derives the level from accumulated XP:
// level = floor(sqrt(xp/100)) + 1.
func LevelForXP(xp int64) int {
	if xp <= 0 {
		return 1
	}
	return int(math.Sqrt(float64(xp)/100.0)) + 1
}

// TaskProgress is a user's state for one daily task within the current
// reset period.
type TaskProgress struct {
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
	Claimed   bool `json:"claimed"`
}
