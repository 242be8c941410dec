package game

import "math/rand/v2"

const (
	DiceSides    = 6
	DiceMinGuess = 1
	DiceMaxGuess = 6

	// Exact single-number guess on a d6 pays 6x: a fair-odds bet.
	DiceMultiplier = 6
)

// DiceGame is a single d6 roll against an exact guess.
type DiceGame struct {
	Guess  int  `json:"guess"`
	Result int  `json:"result"`
	Won    bool `json:"won"`
}

// NewDiceGame creates a dice game for the given guess (1-6).
func NewDiceGame(guess int) *DiceGame {
	return &DiceGame{Guess: guess}
}

// Roll draws the die and decides the outcome.
func (g *DiceGame) Roll(rng *rand.Rand) int {
	g.Result = rng.IntN(DiceSides) + 1
	g.Won = g.Result == g.Guess
	return g.Result
}

// WinAmount returns the gross payout for a given bet.
func (g *DiceGame) WinAmount(bet int64) int64 {
	if !g.Won {
		return 0
	}
	return bet * DiceMultiplier
}

// ToDetails returns game details for logging and responses.
func (g *DiceGame) ToDetails() map[string]interface{} {
	return map[string]interface{}{
		"guess":  g.Guess,
		"result": g.Result,
	}
}
