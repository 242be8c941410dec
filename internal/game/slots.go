package game

import "math/rand/v2"

// SlotSymbols is the 6-symbol reel alphabet. Order matters only for draws.
var SlotSymbols = []string{"🍒", "🍋", "🍊", "🍇", "⭐", "💎"}

// Three-of-a-kind multipliers by symbol; any pair pays 1.5x.
const (
	SlotsTripleDiamond = 10.0
	SlotsTripleStar    = 5.0
	SlotsTripleOther   = 3.0
	SlotsPair          = 1.5
)

// SlotsGame is one pull of a three-reel slot machine.
type SlotsGame struct {
	Reels      [3]string `json:"reels"`
	Multiplier float64   `json:"multiplier"`
	Won        bool      `json:"won"`
}

// NewSlotsGame creates a slots game.
func NewSlotsGame() *SlotsGame {
	return &SlotsGame{}
}

// Spin draws three independent symbols and computes the multiplier.
func (g *SlotsGame) Spin(rng *rand.Rand) [3]string {
	for i := range g.Reels {
		g.Reels[i] = SlotSymbols[rng.IntN(len(SlotSymbols))]
	}
	g.score()
	return g.Reels
}

func (g *SlotsGame) score() {
	switch {
	case g.Reels[0] == g.Reels[1] && g.Reels[1] == g.Reels[2]:
		switch g.Reels[0] {
		case "💎":
			g.Multiplier = SlotsTripleDiamond
		case "⭐":
			g.Multiplier = SlotsTripleStar
		default:
			g.Multiplier = SlotsTripleOther
		}
	case g.Reels[0] == g.Reels[1] || g.Reels[1] == g.Reels[2] || g.Reels[0] == g.Reels[2]:
		g.Multiplier = SlotsPair
	default:
		g.Multiplier = 0
	}

	g.Won = g.Multiplier > 0
}

// WinAmount returns the gross payout: the multiplier applied to the
// original bet, truncated.
func (g *SlotsGame) WinAmount(bet int64) int64 {
	if !g.Won {
		return 0
	}
	return int64(float64(bet) * g.Multiplier)
}

// ToDetails returns game details for logging and responses.
func (g *SlotsGame) ToDetails() map[string]interface{} {
	return map[string]interface{}{
		"reels":      g.Reels,
		"multiplier": g.Multiplier,
	}
}
