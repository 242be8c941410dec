package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"gamecoins_bot/internal/domain"
	"gamecoins_bot/internal/logger"
	"gamecoins_bot/internal/metrics"
	"gamecoins_bot/internal/store"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrSelfTransfer      = errors.New("cannot transfer to yourself")
)

// EconomyService is the ledger core. Every coin mutation in the process goes
// through it, and its mutex serializes each load-mutate-save cycle against
// the shared document, so concurrent commands cannot lose writes to each
// other.
type EconomyService struct {
	gw  store.Gateway
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewEconomyService creates the ledger over the given gateway. The rand
// source feeds payroll variance and every minigame; tests pass a seeded one.
func NewEconomyService(gw store.Gateway, rng *rand.Rand) *EconomyService {
	return &EconomyService{
		gw:  gw,
		rng: rng,
		now: time.Now,
	}
}

// updateAttempts bounds version-conflict retries against a gateway shared
// with another process.
const updateAttempts = 3

// update runs one serialized read-modify-write cycle. fn mutates the
// document in place; returning an error abandons the write. A version
// conflict from the gateway reloads and reruns fn, so fn must be safe to
// run again on a fresh document.
func (e *EconomyService) update(ctx context.Context, fn func(doc *domain.Document) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var err error
	for attempt := 0; attempt < updateAttempts; attempt++ {
		var doc *domain.Document
		doc, err = e.gw.Load(ctx)
		if err != nil {
			return err
		}
		if err = fn(doc); err != nil {
			return err
		}
		err = e.gw.Save(ctx, doc)
		if !errors.Is(err, store.ErrVersionConflict) {
			return err
		}
		logger.Warn("document version conflict, retrying", "attempt", attempt+1)
	}
	return err
}

// view runs fn over a loaded document without writing it back. Reads still
// serialize on the mutex so they never observe a half-applied update.
func (e *EconomyService) view(ctx context.Context, fn func(doc *domain.Document) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, err := e.gw.Load(ctx)
	if err != nil {
		return err
	}
	return fn(doc)
}

// account returns the user's ledger record, creating it with the starting
// grant on first access. Callers hold the lock via update.
func (e *EconomyService) account(doc *domain.Document, userID string) *domain.UserAccount {
	acc, ok := doc.Economy.Users[userID]
	if !ok {
		acc = domain.NewUserAccount(e.now())
		doc.Economy.Users[userID] = acc
	}
	return acc
}

// GetAccount returns a snapshot of the user's account, creating it if this
// is the user's first interaction.
func (e *EconomyService) GetAccount(ctx context.Context, userID string) (*domain.UserAccount, error) {
	var snap domain.UserAccount
	err := e.update(ctx, func(doc *domain.Document) error {
		acc := e.account(doc, userID)
		e.resetDailyTasks(acc)
		snap = *acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// credit adds coins under the lock: balance and lifetime earnings go up, XP
// accrues at 1 per 10 coins, and a level-up pays new_level*50 bonus coins.
// The bonus is folded into the same balance but grants no further XP.
func (e *EconomyService) credit(doc *domain.Document, userID string, amount int64) int64 {
	acc := e.account(doc, userID)
	acc.Coins += amount
	acc.TotalEarned += amount
	acc.XP += amount / 10

	if newLevel := domain.LevelForXP(acc.XP); newLevel > acc.Level {
		acc.Level = newLevel
		bonus := int64(newLevel) * 50
		acc.Coins += bonus
		acc.TotalEarned += bonus
	}
	return acc.Coins
}

// debit removes coins under the lock, refusing to overdraw.
func (e *EconomyService) debit(doc *domain.Document, userID string, amount int64) error {
	acc := e.account(doc, userID)
	if acc.Coins < amount {
		return ErrInsufficientFunds
	}
	acc.Coins -= amount
	acc.TotalSpent += amount
	return nil
}

// Credit adds coins to a user and returns the new balance.
func (e *EconomyService) Credit(ctx context.Context, userID string, amount int64, reason string) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	var balance int64
	err := e.update(ctx, func(doc *domain.Document) error {
		balance = e.credit(doc, userID, amount)
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.CoinsCredited.Add(float64(amount))
	logger.Debug("coins credited", "user", userID, "amount", amount, "reason", reason, "balance", balance)
	return balance, nil
}

// Debit removes coins from a user. Insufficient funds is a normal negative
// result; nothing is mutated in that case.
func (e *EconomyService) Debit(ctx context.Context, userID string, amount int64, reason string) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	var balance int64
	err := e.update(ctx, func(doc *domain.Document) error {
		if err := e.debit(doc, userID, amount); err != nil {
			return err
		}
		balance = doc.Economy.Users[userID].Coins
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.CoinsDebited.Add(float64(amount))
	logger.Debug("coins debited", "user", userID, "amount", amount, "reason", reason, "balance", balance)
	return balance, nil
}

// Transfer moves coins between users in one atomic cycle. The receiving
// side is a regular credit, XP included.
func (e *EconomyService) Transfer(ctx context.Context, fromUser, toUser string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if fromUser == toUser {
		return ErrSelfTransfer
	}

	err := e.update(ctx, func(doc *domain.Document) error {
		if err := e.debit(doc, fromUser, amount); err != nil {
			return err
		}
		e.credit(doc, toUser, amount)
		return nil
	})
	if err != nil {
		return err
	}

	metrics.TransfersTotal.Inc()
	logger.Info("coins transferred", "from", fromUser, "to", toUser, "amount", amount)
	return nil
}

// SetBalance pins a user's balance to an exact value. Owner-only surface;
// lifetime counters are left alone.
func (e *EconomyService) SetBalance(ctx context.Context, userID string, amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	return e.update(ctx, func(doc *domain.Document) error {
		e.account(doc, userID).Coins = amount
		return nil
	})
}

// applyGameResult updates the aggregate minigame stats, the streak, the
// play_minigames daily task, and the global counter. Called exactly once
// per resolved game, under the lock.
func (e *EconomyService) applyGameResult(doc *domain.Document, userID string, won bool) {
	acc := e.account(doc, userID)
	acc.GamesPlayed++
	if won {
		acc.GamesWon++
		acc.Streak++
	} else {
		acc.Streak = 0
	}
	doc.Economy.GlobalStats.TotalGamesPlayed++

	e.resetDailyTasks(acc)
	e.advanceTask(acc, domain.TaskPlayMinigames, 1)
}
