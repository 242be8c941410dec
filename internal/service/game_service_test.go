package service

import (
	"context"
	"errors"
	"testing"

	"gamecoins_bot/internal/game"
)

func TestBetValidation(t *testing.T) {
	games := NewGameService(mustEconomy(t))
	ctx := context.Background()

	if _, err := games.PlayCoinflip(ctx, "u1", 5, game.CoinHeads); !errors.Is(err, ErrInvalidBet) {
		t.Errorf("under-min bet err = %v, want ErrInvalidBet", err)
	}
	if _, err := games.PlayCoinflip(ctx, "u1", 501, game.CoinHeads); !errors.Is(err, ErrInvalidBet) {
		t.Errorf("over-max bet err = %v, want ErrInvalidBet", err)
	}
	if _, err := games.PlayCoinflip(ctx, "u1", 50, "edge"); !errors.Is(err, ErrInvalidBet) {
		t.Errorf("bad choice err = %v, want ErrInvalidBet", err)
	}
	if _, err := games.PlayDice(ctx, "u1", 50, 7); !errors.Is(err, ErrInvalidBet) {
		t.Errorf("bad guess err = %v, want ErrInvalidBet", err)
	}
	if err := validateBet("poker", 100); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("unknown game err = %v", err)
	}
}

func mustEconomy(t *testing.T) *EconomyService {
	t.Helper()
	eco, _ := newTestEconomy()
	return eco
}

func TestBetDebitedBeforeResolution(t *testing.T) {
	eco, _ := newTestEconomy()
	games := NewGameService(eco)
	ctx := context.Background()

	// Fresh account holds 100; a 200-coin bet inside limits must be
	// rejected on funds with nothing mutated.
	if _, err := games.PlayCoinflip(ctx, "u1", 200, game.CoinHeads); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	acc, _ := eco.GetAccount(ctx, "u1")
	if acc.Coins != 100 || acc.GamesPlayed != 0 {
		t.Errorf("rejected bet mutated account: coins=%d games=%d", acc.Coins, acc.GamesPlayed)
	}
}

func TestCoinflipSettlement(t *testing.T) {
	eco, _ := newTestEconomy()
	games := NewGameService(eco)
	ctx := context.Background()

	out, err := games.PlayCoinflip(ctx, "u1", 50, game.CoinHeads)
	if err != nil {
		t.Fatalf("play: %v", err)
	}

	want := int64(100 - 50 + out.WinAmount)
	if out.NewBalance != want {
		t.Errorf("balance = %d, want %d", out.NewBalance, want)
	}
	if out.Won != (out.WinAmount == 100) {
		t.Errorf("won=%v win_amount=%d inconsistent", out.Won, out.WinAmount)
	}

	acc, _ := eco.GetAccount(ctx, "u1")
	if acc.GamesPlayed != 1 {
		t.Errorf("games played = %d, want 1", acc.GamesPlayed)
	}
	if out.Won && acc.GamesWon != 1 {
		t.Errorf("games won = %d", acc.GamesWon)
	}
}

func TestGamesFeedMinigameTask(t *testing.T) {
	eco, _ := newTestEconomy()
	games := NewGameService(eco)
	ctx := context.Background()

	eco.SetBalance(ctx, "u1", 10000)
	for i := 0; i < 3; i++ {
		if _, err := games.PlaySlots(ctx, "u1", 50); err != nil {
			t.Fatalf("slots %d: %v", i, err)
		}
	}

	tasks, _ := eco.DailyTasks(ctx, "u1")
	for _, st := range tasks {
		if st.Task.ID == "play_minigames" && st.Progress != 3 {
			t.Errorf("minigame task progress = %d, want 3", st.Progress)
		}
	}

	acc, _ := eco.GetAccount(ctx, "u1")
	if acc.GamesPlayed != 3 {
		t.Errorf("games played = %d, want 3", acc.GamesPlayed)
	}
}

func TestDiceSettlement(t *testing.T) {
	eco, _ := newTestEconomy()
	games := NewGameService(eco)
	ctx := context.Background()

	eco.SetBalance(ctx, "u1", 1000)
	out, err := games.PlayDice(ctx, "u1", 30, 4)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	want := int64(1000 - 30 + out.WinAmount)
	if out.NewBalance != want {
		t.Errorf("balance = %d, want %d", out.NewBalance, want)
	}
	if out.Won && out.WinAmount != 30*game.DiceMultiplier {
		t.Errorf("win amount = %d", out.WinAmount)
	}
}
