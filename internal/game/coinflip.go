// Package game holds the minigame engines. Engines are pure: they draw from
// an injected rand source and compute payouts, but never touch the ledger.
// Bet debiting and settlement happen in the service layer.
package game

import "math/rand/v2"

// Coin faces.
const (
	CoinHeads = "heads"
	CoinTails = "tails"
)

// ValidCoinChoice reports whether choice names a coin face.
func ValidCoinChoice(choice string) bool {
	return choice == CoinHeads || choice == CoinTails
}

// CoinflipGame is a single coin flip. Exact match pays 2x the bet.
type CoinflipGame struct {
	Choice string `json:"choice"`
	Result string `json:"result"`
	Won    bool   `json:"won"`
}

// NewCoinflipGame creates a coinflip for the given face.
func NewCoinflipGame(choice string) *CoinflipGame {
	return &CoinflipGame{Choice: choice}
}

// Flip draws the face and decides the outcome.
func (g *CoinflipGame) Flip(rng *rand.Rand) string {
	if rng.IntN(2) == 0 {
		g.Result = CoinHeads
	} else {
		g.Result = CoinTails
	}
	g.Won = g.Choice == g.Result
	return g.Result
}

// WinAmount returns the gross payout for a given bet.
func (g *CoinflipGame) WinAmount(bet int64) int64 {
	if !g.Won {
		return 0
	}
	return bet * 2
}

// ToDetails returns game details for logging and responses.
func (g *CoinflipGame) ToDetails() map[string]interface{} {
	return map[string]interface{}{
		"choice": g.Choice,
		"result": g.Result,
	}
}
