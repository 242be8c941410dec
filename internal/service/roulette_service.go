package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gamecoins_bot/internal/domain"
	"gamecoins_bot/internal/game"
	"gamecoins_bot/internal/logger"
	"gamecoins_bot/internal/metrics"
)

var (
	ErrBetPending = errors.New("roulette bet already placed")
	ErrNoBet      = errors.New("no roulette bet placed")
)

// rouletteIdleTimeout is how long an unspun bet survives. Placing a bet
// reserves nothing, so an abandoned bet is simply dropped.
const rouletteIdleTimeout = 5 * time.Minute

// PendingBet is a placed but not yet spun roulette bet. Coins move only at
// spin time.
type PendingBet struct {
	Bet      int64                `json:"bet"`
	BetType  game.RouletteBetType `json:"bet_type"`
	Value    string               `json:"value,omitempty"`
	Number   int                  `json:"number,omitempty"`
	PlacedAt time.Time            `json:"placed_at"`
}

// RouletteService holds one pending bet per user and resolves it on spin.
// Debit and settlement happen inside a single ledger update so a crash
// between them cannot strand the stake.
type RouletteService struct {
	eco *EconomyService

	mu   sync.RWMutex
	bets map[string]*PendingBet

	stop chan struct{}
}

// NewRouletteService creates the service and starts the stale-bet sweeper.
func NewRouletteService(eco *EconomyService) *RouletteService {
	s := &RouletteService{
		eco:  eco,
		bets: make(map[string]*PendingBet),
		stop: make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

// Close stops the stale-bet sweeper.
func (s *RouletteService) Close() {
	close(s.stop)
}

func (s *RouletteService) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep(s.eco.now())
		case <-s.stop:
			return
		}
	}
}

func (s *RouletteService) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, b := range s.bets {
		if now.Sub(b.PlacedAt) > rouletteIdleTimeout {
			delete(s.bets, userID)
			logger.Info("roulette bet expired", "user", userID, "bet", b.Bet)
		}
	}
}

// PlaceBet registers a bet for the next spin. The stake is only checked
// here; it is debited when the wheel actually spins.
func (s *RouletteService) PlaceBet(ctx context.Context, userID string, bet int64, betType game.RouletteBetType, value string, number int) (*PendingBet, error) {
	if err := validateBet(GameRoulette, bet); err != nil {
		return nil, err
	}
	if !game.ValidRouletteBet(betType, value) {
		return nil, fmt.Errorf("%w: unsupported roulette bet %q/%q", ErrInvalidBet, betType, value)
	}
	if betType == game.RouletteBetNumber && (number < 0 || number > 36) {
		return nil, fmt.Errorf("%w: roulette number must be 0-36", ErrInvalidBet)
	}

	acc, err := s.eco.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if acc.Coins < bet {
		return nil, ErrInsufficientFunds
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bets[userID]; ok {
		return nil, ErrBetPending
	}
	b := &PendingBet{
		Bet:      bet,
		BetType:  betType,
		Value:    value,
		Number:   number,
		PlacedAt: s.eco.now(),
	}
	s.bets[userID] = b
	return b, nil
}

// SpinResult is the settled outcome of a roulette spin.
type SpinResult struct {
	WinningNumber int    `json:"winning_number"`
	WinningColor  string `json:"winning_color"`
	Won           bool   `json:"won"`
	WinAmount     int64  `json:"win_amount"`
	NewBalance    int64  `json:"new_balance"`

	Details map[string]interface{} `json:"details"`
}

// Spin resolves the user's pending bet: debit, draw, settle, all in one
// ledger update.
func (s *RouletteService) Spin(ctx context.Context, userID string) (*SpinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bets[userID]
	if !ok {
		return nil, ErrNoBet
	}

	var out SpinResult
	err := s.eco.update(ctx, func(doc *domain.Document) error {
		if err := s.eco.debit(doc, userID, b.Bet); err != nil {
			return err
		}

		g := game.NewRouletteGame(b.BetType, b.Value, b.Number)
		g.Spin(s.eco.rng)

		win := g.WinAmount(b.Bet)
		if win > 0 {
			s.eco.credit(doc, userID, win)
		}
		s.eco.applyGameResult(doc, userID, g.Won)

		out = SpinResult{
			WinningNumber: g.WinningNumber,
			WinningColor:  g.WinningColor,
			Won:           g.Won,
			WinAmount:     win,
			NewBalance:    doc.Economy.Users[userID].Coins,
			Details:       g.ToDetails(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	delete(s.bets, userID)

	result := "lose"
	if out.Won {
		result = "win"
	}
	metrics.GamesTotal.WithLabelValues(GameRoulette, result).Inc()
	logger.Debug("roulette spun", "user", userID, "number", out.WinningNumber, "won", out.Won)
	return &out, nil
}

// PendingFor returns the user's currently placed bet, if any.
func (s *RouletteService) PendingFor(userID string) (*PendingBet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bets[userID]
	return b, ok
}
