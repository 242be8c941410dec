package service

import (
	"context"
	"errors"
	"fmt"

	"gamecoins_bot/internal/domain"
	"gamecoins_bot/internal/game"
	"gamecoins_bot/internal/logger"
	"gamecoins_bot/internal/metrics"
)

var (
	ErrUnknownGame = errors.New("unknown game")
	ErrInvalidBet  = errors.New("invalid bet")
)

// BetLimits is the static per-game bet range.
type BetLimits struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Game names as they appear in the bet table and in metrics labels.
const (
	GameCoinflip  = "coinflip"
	GameDice      = "dice"
	GameSlots     = "slots"
	GameBlackjack = "blackjack"
	GameRoulette  = "roulette"
)

// betTable is the per-game stake range. Checked, together with the player's
// balance, before any RNG draw.
var betTable = map[string]BetLimits{
	GameCoinflip:  {Min: 10, Max: 500},
	GameDice:      {Min: 20, Max: 300},
	GameSlots:     {Min: 50, Max: 1000},
	GameBlackjack: {Min: 30, Max: 800},
	GameRoulette:  {Min: 25, Max: 600},
}

// BetLimitsFor returns the stake range for a game.
func BetLimitsFor(name string) (BetLimits, bool) {
	l, ok := betTable[name]
	return l, ok
}

// BetTable returns the whole bet-limits table, for the limits endpoint.
func BetTable() map[string]BetLimits {
	out := make(map[string]BetLimits, len(betTable))
	for k, v := range betTable {
		out[k] = v
	}
	return out
}

func validateBet(gameName string, bet int64) error {
	limits, ok := betTable[gameName]
	if !ok {
		return ErrUnknownGame
	}
	if bet < limits.Min || bet > limits.Max {
		return fmt.Errorf("%w: %s takes %d-%d coins", ErrInvalidBet, gameName, limits.Min, limits.Max)
	}
	return nil
}

// GameService runs the single-shot minigames: coinflip, dice, slots. The
// stake is debited before the RNG draw, so an interrupted resolution can
// never hand out an unpaid-for win.
type GameService struct {
	eco *EconomyService
}

// NewGameService creates the minigame service over the ledger.
func NewGameService(eco *EconomyService) *GameService {
	return &GameService{eco: eco}
}

// GameOutcome is the settled result of a single-shot game.
type GameOutcome struct {
	Won        bool                   `json:"won"`
	WinAmount  int64                  `json:"win_amount"`
	NewBalance int64                  `json:"new_balance"`
	Details    map[string]interface{} `json:"details"`
}

// settle applies one resolved game inside the caller's update closure:
// credits the gross payout, bumps stats and the minigame daily task.
func (s *GameService) settle(doc *domain.Document, userID string, won bool, winAmount int64) int64 {
	if winAmount > 0 {
		s.eco.credit(doc, userID, winAmount)
	}
	s.eco.applyGameResult(doc, userID, won)
	return doc.Economy.Users[userID].Coins
}

// PlayCoinflip flips the coin; an exact call pays 2x.
func (s *GameService) PlayCoinflip(ctx context.Context, userID string, bet int64, choice string) (*GameOutcome, error) {
	if err := validateBet(GameCoinflip, bet); err != nil {
		return nil, err
	}
	if !game.ValidCoinChoice(choice) {
		return nil, fmt.Errorf("%w: choice must be %s or %s", ErrInvalidBet, game.CoinHeads, game.CoinTails)
	}

	var out GameOutcome
	err := s.eco.update(ctx, func(doc *domain.Document) error {
		if err := s.eco.debit(doc, userID, bet); err != nil {
			return err
		}

		g := game.NewCoinflipGame(choice)
		g.Flip(s.eco.rng)

		out = GameOutcome{
			Won:       g.Won,
			WinAmount: g.WinAmount(bet),
			Details:   g.ToDetails(),
		}
		out.NewBalance = s.settle(doc, userID, g.Won, out.WinAmount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordGame(GameCoinflip, userID, bet, &out)
	return &out, nil
}

// PlayDice rolls a d6; an exact guess pays 6x.
func (s *GameService) PlayDice(ctx context.Context, userID string, bet int64, guess int) (*GameOutcome, error) {
	if err := validateBet(GameDice, bet); err != nil {
		return nil, err
	}
	if guess < game.DiceMinGuess || guess > game.DiceMaxGuess {
		return nil, fmt.Errorf("%w: guess must be 1-6", ErrInvalidBet)
	}

	var out GameOutcome
	err := s.eco.update(ctx, func(doc *domain.Document) error {
		if err := s.eco.debit(doc, userID, bet); err != nil {
			return err
		}

		g := game.NewDiceGame(guess)
		g.Roll(s.eco.rng)

		out = GameOutcome{
			Won:       g.Won,
			WinAmount: g.WinAmount(bet),
			Details:   g.ToDetails(),
		}
		out.NewBalance = s.settle(doc, userID, g.Won, out.WinAmount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordGame(GameDice, userID, bet, &out)
	return &out, nil
}

// PlaySlots pulls the three-reel machine.
func (s *GameService) PlaySlots(ctx context.Context, userID string, bet int64) (*GameOutcome, error) {
	if err := validateBet(GameSlots, bet); err != nil {
		return nil, err
	}

	var out GameOutcome
	err := s.eco.update(ctx, func(doc *domain.Document) error {
		if err := s.eco.debit(doc, userID, bet); err != nil {
			return err
		}

		g := game.NewSlotsGame()
		g.Spin(s.eco.rng)

		out = GameOutcome{
			Won:       g.Won,
			WinAmount: g.WinAmount(bet),
			Details:   g.ToDetails(),
		}
		out.NewBalance = s.settle(doc, userID, g.Won, out.WinAmount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordGame(GameSlots, userID, bet, &out)
	return &out, nil
}

func (s *GameService) recordGame(name, userID string, bet int64, out *GameOutcome) {
	result := "lose"
	if out.Won {
		result = "win"
	}
	metrics.GamesTotal.WithLabelValues(name, result).Inc()
	logger.Debug("game resolved", "game", name, "user", userID, "bet", bet, "won", out.Won, "payout", out.WinAmount)
}
