package service

import (
	"context"
	"errors"
	"sort"

	"gamecoins_bot/internal/domain"
)

// Leaderboard categories.
const (
	RankByCoins       = "coins"
	RankByLevel       = "level"
	RankByTotalEarned = "total_earned"
	RankByGamesWon    = "games_won"
)

var ErrUnknownCategory = errors.New("unknown leaderboard category")

// LeaderboardEntry is one row of a ranking, 1-based.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Value  int64  `json:"value"`
	Level  int    `json:"level"`
	Coins  int64  `json:"coins"`
}

func rankValue(acc *domain.UserAccount, category string) (int64, bool) {
	switch category {
	case RankByCoins:
		return acc.Coins, true
	case RankByLevel:
		return int64(acc.Level), true
	case RankByTotalEarned:
		return acc.TotalEarned, true
	case RankByGamesWon:
		return acc.GamesWon, true
	}
	return 0, false
}

// Leaderboard sorts all accounts descending by the category. Ties break by
// user id so the ordering is stable across calls (Go maps have no document
// order to preserve).
func (e *EconomyService) Leaderboard(ctx context.Context, category string, limit int) ([]LeaderboardEntry, error) {
	if _, ok := rankValue(&domain.UserAccount{}, category); !ok {
		return nil, ErrUnknownCategory
	}
	if limit <= 0 {
		limit = 10
	}

	var entries []LeaderboardEntry
	err := e.view(ctx, func(doc *domain.Document) error {
		entries = make([]LeaderboardEntry, 0, len(doc.Economy.Users))
		for id, acc := range doc.Economy.Users {
			v, _ := rankValue(acc, category)
			entries = append(entries, LeaderboardEntry{
				UserID: id,
				Value:  v,
				Level:  acc.Level,
				Coins:  acc.Coins,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].UserID < entries[j].UserID
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// UserRank returns the user's 1-based position in a category, or ok=false
// if the user has no account yet.
func (e *EconomyService) UserRank(ctx context.Context, userID, category string) (int, bool, error) {
	// Rank over the full population; fine at single-guild scale.
	entries, err := e.Leaderboard(ctx, category, 1<<30)
	if err != nil {
		return 0, false, err
	}
	for _, entry := range entries {
		if entry.UserID == userID {
			return entry.Rank, true, nil
		}
	}
	return 0, false, nil
}
