package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"gamecoins_bot/internal/domain"
	"gamecoins_bot/internal/game"
	"gamecoins_bot/internal/logger"
	"gamecoins_bot/internal/metrics"
)

var (
	ErrHandInProgress = errors.New("blackjack hand already in progress")
	ErrNoActiveHand   = errors.New("no active blackjack hand")
)

// blackjackIdleTimeout is how long an untouched hand survives before the
// sweeper forfeits it. The stake is not refunded.
const blackjackIdleTimeout = 5 * time.Minute

// BlackjackService keeps one live hand per user in memory. Coins move only
// through the ledger: the stake (and every double, split and insurance
// surcharge) is debited before the cards move, and payouts are credited in
// the same update that ends the hand.
type BlackjackService struct {
	eco *EconomyService

	mu    sync.RWMutex
	hands map[string]*game.BlackjackGame

	stop chan struct{}
}

// NewBlackjackService creates the service and starts the idle-hand sweeper.
func NewBlackjackService(eco *EconomyService) *BlackjackService {
	s := &BlackjackService{
		eco:   eco,
		hands: make(map[string]*game.BlackjackGame),
		stop:  make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

// Close stops the idle sweeper.
func (s *BlackjackService) Close() {
	close(s.stop)
}

func (s *BlackjackService) sweepLoop() {
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

// sweep forfeits hands idle past the timeout. A forfeited hand counts as a
// loss and its stake stays out of the player's balance.
func (s *BlackjackService) sweep(now time.Time) {
	s.mu.Lock()
	var expired []string
	for userID, g := range s.hands {
		if now.Sub(g.LastAction) > blackjackIdleTimeout {
			expired = append(expired, userID)
			delete(s.hands, userID)
		}
	}
	s.mu.Unlock()

	for _, userID := range expired {
		err := s.eco.update(context.Background(), func(doc *domain.Document) error {
			s.eco.applyGameResult(doc, userID, false)
			return nil
		})
		if err != nil {
			logger.Error("blackjack sweep failed", "user", userID, "error", err)
			continue
		}
		metrics.GamesTotal.WithLabelValues(GameBlackjack, "forfeit").Inc()
		logger.Info("blackjack hand forfeited", "user", userID)
	}
}

// BlackjackState is the hand as shown to the player. The dealer's hole card
// stays hidden until the hand is over.
type BlackjackState struct {
	Bet         int64            `json:"bet"`
	Player      []game.Card      `json:"player"`
	PlayerValue int              `json:"player_value"`
	Dealer      []game.Card      `json:"dealer"`
	DealerValue int              `json:"dealer_value,omitempty"`
	Over        bool             `json:"over"`
	Outcome     game.BlackjackOutcome `json:"outcome,omitempty"`
	Won         bool             `json:"won"`

	Payout          int64 `json:"payout"`
	InsurancePayout int64 `json:"insurance_payout,omitempty"`

	CanDouble        bool  `json:"can_double"`
	CanSplit         bool  `json:"can_split"`
	InsuranceOffered bool  `json:"insurance_offered"`
	InsuranceBet     int64 `json:"insurance_bet,omitempty"`

	NewBalance int64 `json:"new_balance,omitempty"`
}

func stateOf(g *game.BlackjackGame) *BlackjackState {
	st := &BlackjackState{
		Bet:         g.Bet,
		Player:      g.Player,
		PlayerValue: game.HandValue(g.Player),
		Over:        g.Over,
		Outcome:     g.Outcome,
		Won:         g.Won(),

		Payout:          g.Payout,
		InsurancePayout: g.InsurancePayout,

		CanDouble:        g.CanDouble,
		CanSplit:         g.CanSplit,
		InsuranceOffered: g.InsuranceOffered,
		InsuranceBet:     g.InsuranceBet,
	}
	if g.Over {
		st.Dealer = g.Dealer
		st.DealerValue = game.HandValue(g.Dealer)
	} else {
		st.Dealer = []game.Card{g.Upcard()}
	}
	return st
}

// Start debits the stake and deals a fresh hand. Naturals settle immediately
// and no session is kept for them.
func (s *BlackjackService) Start(ctx context.Context, userID string, bet int64) (*BlackjackState, error) {
	if err := validateBet(GameBlackjack, bet); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hands[userID]; ok {
		return nil, ErrHandInProgress
	}

	var g *game.BlackjackGame
	var st *BlackjackState
	err := s.eco.update(ctx, func(doc *domain.Document) error {
		if err := s.eco.debit(doc, userID, bet); err != nil {
			return err
		}
		g = game.NewBlackjackGame(bet, s.eco.rng, s.eco.now())
		st = stateOf(g)
		if g.Over {
			st.NewBalance = s.settleLocked(doc, userID, g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !g.Over {
		s.hands[userID] = g
	}
	logger.Debug("blackjack hand dealt", "user", userID, "bet", bet, "over", g.Over)
	return st, nil
}

// settleLocked credits the payouts and records the result inside the
// caller's update closure.
func (s *BlackjackService) settleLocked(doc *domain.Document, userID string, g *game.BlackjackGame) int64 {
	total := g.Payout + g.InsurancePayout
	if total > 0 {
		s.eco.credit(doc, userID, total)
	}
	s.eco.applyGameResult(doc, userID, g.Won())

	result := "lose"
	if g.Won() {
		result = "win"
	}
	metrics.GamesTotal.WithLabelValues(GameBlackjack, result).Inc()
	return doc.Economy.Users[userID].Coins
}

// act runs one player action. surcharge is debited before the action runs;
// if the action itself is illegal the debit is discarded with the document.
func (s *BlackjackService) act(ctx context.Context, userID string, surcharge func(g *game.BlackjackGame) int64, action func(g *game.BlackjackGame, now time.Time) error) (*BlackjackState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.hands[userID]
	if !ok {
		return nil, ErrNoActiveHand
	}

	var st *BlackjackState
	err := s.eco.update(ctx, func(doc *domain.Document) error {
		if surcharge != nil {
			if cost := surcharge(g); cost > 0 {
				if err := s.eco.debit(doc, userID, cost); err != nil {
					return err
				}
			}
		}
		if err := action(g, s.eco.now()); err != nil {
			return err
		}
		st = stateOf(g)
		if g.Over {
			st.NewBalance = s.settleLocked(doc, userID, g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if g.Over {
		delete(s.hands, userID)
	}
	return st, nil
}

// Hit deals one more card to the player.
func (s *BlackjackService) Hit(ctx context.Context, userID string) (*BlackjackState, error) {
	return s.act(ctx, userID, nil, func(g *game.BlackjackGame, now time.Time) error {
		return g.Hit(now)
	})
}

// Stand ends the player's turn and resolves the hand.
func (s *BlackjackService) Stand(ctx context.Context, userID string) (*BlackjackState, error) {
	return s.act(ctx, userID, nil, func(g *game.BlackjackGame, now time.Time) error {
		return g.Stand(now)
	})
}

// Double debits a second stake, deals one card and resolves.
func (s *BlackjackService) Double(ctx context.Context, userID string) (*BlackjackState, error) {
	return s.act(ctx, userID,
		func(g *game.BlackjackGame) int64 {
			if !g.CanDouble {
				return 0
			}
			return g.Bet
		},
		func(g *game.BlackjackGame, now time.Time) error {
			return g.Double(now)
		})
}

// Split debits a second stake and deals one extra card into the hand.
func (s *BlackjackService) Split(ctx context.Context, userID string) (*BlackjackState, error) {
	return s.act(ctx, userID,
		func(g *game.BlackjackGame) int64 {
			if !g.CanSplit {
				return 0
			}
			return g.Bet
		},
		func(g *game.BlackjackGame, now time.Time) error {
			return g.Split(now)
		})
}

// Insurance takes the side bet against a dealer natural.
func (s *BlackjackService) Insurance(ctx context.Context, userID string) (*BlackjackState, error) {
	return s.act(ctx, userID,
		func(g *game.BlackjackGame) int64 {
			if !g.InsuranceOffered {
				return 0
			}
			return g.InsuranceCost()
		},
		func(g *game.BlackjackGame, now time.Time) error {
			_, err := g.Insurance(now)
			return err
		})
}

// State returns the player's live hand without advancing it.
func (s *BlackjackService) State(userID string) (*BlackjackState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.hands[userID]
	if !ok {
		return nil, ErrNoActiveHand
	}
	return stateOf(g), nil
}
