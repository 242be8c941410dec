package game

import "math/rand/v2"

// RouletteBetType enumerates the supported bet kinds.
type RouletteBetType string

const (
	RouletteBetNumber  RouletteBetType = "number"
	RouletteBetColor   RouletteBetType = "color"
	RouletteBetEvenOdd RouletteBetType = "even_odd"
	RouletteBetHighLow RouletteBetType = "high_low"
)

// Wheel colors.
const (
	RouletteRed   = "red"
	RouletteBlack = "black"
	RouletteGreen = "green"
)

// rouletteRed is the fixed red partition of a European wheel; 0 is green and
// everything else in 1-36 is black.
var rouletteRed = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// RouletteColor returns the color of a pocket.
func RouletteColor(n int) string {
	switch {
	case n == 0:
		return RouletteGreen
	case rouletteRed[n]:
		return RouletteRed
	default:
		return RouletteBlack
	}
}

// ValidRouletteBet reports whether the type/value pair names a supported
// bet. Number values are validated by the caller (0-36).
func ValidRouletteBet(betType RouletteBetType, value string) bool {
	switch betType {
	case RouletteBetNumber:
		return true
	case RouletteBetColor:
		return value == RouletteRed || value == RouletteBlack
	case RouletteBetEvenOdd:
		return value == "even" || value == "odd"
	case RouletteBetHighLow:
		return value == "high" || value == "low"
	}
	return false
}

// RouletteGame is one spin of a single-zero European wheel resolving one
// pending bet.
type RouletteGame struct {
	BetType RouletteBetType `json:"bet_type"`
	Value   string          `json:"value"`
	Number  int             `json:"number,omitempty"` // for number bets

	WinningNumber int    `json:"winning_number"`
	WinningColor  string `json:"winning_color"`
	Won           bool   `json:"won"`
}

// NewRouletteGame creates a spin for the given pending bet.
func NewRouletteGame(betType RouletteBetType, value string, number int) *RouletteGame {
	return &RouletteGame{BetType: betType, Value: value, Number: number}
}

// Spin draws the winning pocket and decides the outcome. Zero loses every
// outside bet.
func (g *RouletteGame) Spin(rng *rand.Rand) int {
	g.WinningNumber = rng.IntN(37)
	g.WinningColor = RouletteColor(g.WinningNumber)

	switch g.BetType {
	case RouletteBetNumber:
		g.Won = g.Number == g.WinningNumber
	case RouletteBetColor:
		g.Won = g.WinningNumber != 0 && g.Value == g.WinningColor
	case RouletteBetEvenOdd:
		if g.WinningNumber != 0 {
			even := g.WinningNumber%2 == 0
			g.Won = (g.Value == "even" && even) || (g.Value == "odd" && !even)
		}
	case RouletteBetHighLow:
		if g.WinningNumber != 0 {
			low := g.WinningNumber >= 1 && g.WinningNumber <= 18
			g.Won = (g.Value == "low" && low) || (g.Value == "high" && !low)
		}
	}
	return g.WinningNumber
}

// WinAmount returns the gross payout: straight-up numbers pay 35:1 (36x
// including the stake), everything else pays even money (2x).
func (g *RouletteGame) WinAmount(bet int64) int64 {
	if !g.Won {
		return 0
	}
	if g.BetType == RouletteBetNumber {
		return bet * 36
	}
	return bet * 2
}

// ToDetails returns game details for logging and responses.
func (g *RouletteGame) ToDetails() map[string]interface{} {
	return map[string]interface{}{
		"bet_type":       g.BetType,
		"value":          g.Value,
		"number":         g.Number,
		"winning_number": g.WinningNumber,
		"winning_color":  g.WinningColor,
	}
}
