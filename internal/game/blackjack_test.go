package game

import (
	"math/rand/v2"
	"testing"
	"time"
)

func card(rank string) Card { return Card{Rank: rank, Suit: "♠"} }

func testNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestHandValue(t *testing.T) {
	cases := []struct {
		ranks []string
		want  int
	}{
		{[]string{"2", "3"}, 5},
		{[]string{"J", "Q"}, 20},
		{[]string{"A", "K"}, 21},
		{[]string{"A", "A"}, 12},
		{[]string{"A", "A", "9"}, 21},
		{[]string{"A", "K", "5"}, 16},
		{[]string{"10", "9", "5"}, 24},
	}
	for _, tc := range cases {
		hand := make([]Card, len(tc.ranks))
		for i, r := range tc.ranks {
			hand[i] = card(r)
		}
		if got := HandValue(hand); got != tc.want {
			t.Errorf("HandValue(%v) = %d, want %d", tc.ranks, got, tc.want)
		}
	}
}

// fixedGame builds a hand mid-play with a known shoe. Cards are drawn from
// the end of the shoe slice.
func fixedGame(bet int64, player, dealer []string, shoe []string) *BlackjackGame {
	g := &BlackjackGame{Bet: bet, CreatedAt: testNow(), LastAction: testNow()}
	for _, r := range player {
		g.Player = append(g.Player, card(r))
	}
	for _, r := range dealer {
		g.Dealer = append(g.Dealer, card(r))
	}
	for _, r := range shoe {
		g.shoe = append(g.shoe, card(r))
	}
	return g
}

func TestStandPlayerWins(t *testing.T) {
	g := fixedGame(100, []string{"10", "9"}, []string{"10", "7"}, nil)
	if err := g.Stand(testNow()); err != nil {
		t.Fatalf("stand: %v", err)
	}
	if !g.Over || g.Outcome != OutcomePlayerWins {
		t.Fatalf("outcome = %v, want player_wins", g.Outcome)
	}
	if g.Payout != 200 {
		t.Errorf("payout = %d, want 200", g.Payout)
	}
	if !g.Won() {
		t.Error("player win not counted as won")
	}
}

func TestStandPushReturnsStake(t *testing.T) {
	g := fixedGame(100, []string{"10", "8"}, []string{"10", "8"}, nil)
	if err := g.Stand(testNow()); err != nil {
		t.Fatalf("stand: %v", err)
	}
	if g.Outcome != OutcomePush {
		t.Fatalf("outcome = %v, want push", g.Outcome)
	}
	if g.Payout != 100 {
		t.Errorf("push payout = %d, want 100", g.Payout)
	}
	if g.Won() {
		t.Error("push must count as a loss for stats")
	}
}

func TestDealerHitsBelowSeventeen(t *testing.T) {
	// Dealer sits at 16 and must draw the 5 off the top of the shoe.
	g := fixedGame(100, []string{"10", "9"}, []string{"10", "6"}, []string{"5"})
	if err := g.Stand(testNow()); err != nil {
		t.Fatalf("stand: %v", err)
	}
	if len(g.Dealer) != 3 {
		t.Fatalf("dealer drew %d cards, want 3", len(g.Dealer))
	}
	if v := HandValue(g.Dealer); v != 21 {
		t.Fatalf("dealer value = %d, want 21", v)
	}
	if g.Outcome != OutcomeDealerWins {
		t.Errorf("outcome = %v, want dealer_wins", g.Outcome)
	}
}

func TestDealerStandsOnSeventeen(t *testing.T) {
	g := fixedGame(100, []string{"10", "8"}, []string{"10", "7"}, []string{"5"})
	if err := g.Stand(testNow()); err != nil {
		t.Fatalf("stand: %v", err)
	}
	if len(g.Dealer) != 2 {
		t.Fatalf("dealer drew on 17: %d cards", len(g.Dealer))
	}
}

func TestDealerBustPaysDouble(t *testing.T) {
	g := fixedGame(50, []string{"10", "8"}, []string{"10", "6"}, []string{"10"})
	if err := g.Stand(testNow()); err != nil {
		t.Fatalf("stand: %v", err)
	}
	if g.Outcome != OutcomeDealerBust {
		t.Fatalf("outcome = %v, want dealer_bust", g.Outcome)
	}
	if g.Payout != 100 {
		t.Errorf("payout = %d, want 100", g.Payout)
	}
}

func TestHitBustEndsHand(t *testing.T) {
	g := fixedGame(100, []string{"10", "9"}, []string{"10", "7"}, []string{"5"})
	if err := g.Hit(testNow()); err != nil {
		t.Fatalf("hit: %v", err)
	}
	if !g.Over || g.Outcome != OutcomePlayerBust {
		t.Fatalf("outcome = %v, want player_bust", g.Outcome)
	}
	if g.Payout != 0 {
		t.Errorf("bust payout = %d, want 0", g.Payout)
	}
	if err := g.Hit(testNow()); err != ErrHandOver {
		t.Errorf("hit after bust: %v, want ErrHandOver", err)
	}
}

func TestDoubleDealsOneCardAndResolves(t *testing.T) {
	// Player 5+6=11, doubles into a 10 for 21; dealer holds 18.
	g := fixedGame(100, []string{"5", "6"}, []string{"10", "8"}, []string{"10"})
	g.CanDouble = true
	if err := g.Double(testNow()); err != nil {
		t.Fatalf("double: %v", err)
	}
	if g.Bet != 200 {
		t.Errorf("bet after double = %d, want 200", g.Bet)
	}
	if len(g.Player) != 3 {
		t.Errorf("player has %d cards, want 3", len(g.Player))
	}
	if g.Outcome != OutcomePlayerWins || g.Payout != 400 {
		t.Errorf("outcome = %v payout = %d, want player_wins 400", g.Outcome, g.Payout)
	}
}

func TestDoubleRejectedAfterHit(t *testing.T) {
	g := fixedGame(100, []string{"2", "3"}, []string{"10", "8"}, []string{"2", "2"})
	g.CanDouble = true
	if err := g.Hit(testNow()); err != nil {
		t.Fatalf("hit: %v", err)
	}
	if err := g.Double(testNow()); err != ErrCannotDouble {
		t.Errorf("double after hit: %v, want ErrCannotDouble", err)
	}
}

func TestSplitDoublesStakeOnPair(t *testing.T) {
	g := fixedGame(100, []string{"8", "8"}, []string{"10", "7"}, []string{"4"})
	g.CanSplit = true
	g.CanDouble = true
	if err := g.Split(testNow()); err != nil {
		t.Fatalf("split: %v", err)
	}
	if g.Bet != 200 {
		t.Errorf("bet after split = %d, want 200", g.Bet)
	}
	if len(g.Player) != 3 {
		t.Errorf("player has %d cards, want 3", len(g.Player))
	}
	if g.HasSplit != true || g.CanSplit {
		t.Error("split flags not updated")
	}
	if err := g.Split(testNow()); err != ErrCannotSplit {
		t.Errorf("second split: %v, want ErrCannotSplit", err)
	}
}

func TestInsurancePaysOnDealerNatural(t *testing.T) {
	// Dealer shows an ace up (Dealer[1]) over a hidden K: a natural.
	g := fixedGame(100, []string{"10", "9"}, []string{"K", "A"}, nil)
	g.InsuranceOffered = true

	cost, err := g.Insurance(testNow())
	if err != nil {
		t.Fatalf("insurance: %v", err)
	}
	if cost != 50 {
		t.Errorf("insurance cost = %d, want 50", cost)
	}

	if err := g.Stand(testNow()); err != nil {
		t.Fatalf("stand: %v", err)
	}
	if g.Outcome != OutcomeDealerBlackjack {
		t.Fatalf("outcome = %v, want dealer_blackjack", g.Outcome)
	}
	if g.Payout != 0 {
		t.Errorf("main payout = %d, want 0", g.Payout)
	}
	if g.InsurancePayout != 150 {
		t.Errorf("insurance payout = %d, want 150", g.InsurancePayout)
	}
}

func TestInsuranceLostWhenNoNatural(t *testing.T) {
	g := fixedGame(100, []string{"10", "9"}, []string{"7", "A"}, nil)
	g.InsuranceOffered = true
	if _, err := g.Insurance(testNow()); err != nil {
		t.Fatalf("insurance: %v", err)
	}
	if err := g.Stand(testNow()); err != nil {
		t.Fatalf("stand: %v", err)
	}
	if g.InsurancePayout != 0 {
		t.Errorf("insurance payout = %d, want 0", g.InsurancePayout)
	}
}

// TestDealInvariants runs many seeded deals and checks the settlement rules
// that hold for every hand regardless of the shuffle.
func TestDealInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		bet := int64(100)
		g := NewBlackjackGame(bet, rng, testNow())

		if !g.Over {
			if err := g.Stand(testNow()); err != nil {
				t.Fatalf("stand: %v", err)
			}
		}

		switch g.Outcome {
		case OutcomeBlackjack:
			if g.Payout != bet*5/2 {
				t.Fatalf("natural payout = %d, want %d", g.Payout, bet*5/2)
			}
		case OutcomePush:
			if g.Payout != bet {
				t.Fatalf("push payout = %d, want %d", g.Payout, bet)
			}
		case OutcomePlayerWins, OutcomeDealerBust:
			if g.Payout != g.Bet*2 {
				t.Fatalf("win payout = %d, want %d", g.Payout, g.Bet*2)
			}
		case OutcomePlayerBust, OutcomeDealerWins, OutcomeDealerBlackjack:
			if g.Payout != 0 {
				t.Fatalf("loss payout = %d, want 0", g.Payout)
			}
		default:
			t.Fatalf("hand %d not resolved: %v", i, g.Outcome)
		}

		if pv := HandValue(g.Player); pv <= 21 && g.Outcome != OutcomeDealerBlackjack && g.Outcome != OutcomeBlackjack && g.Outcome != OutcomePush {
			if dv := HandValue(g.Dealer); dv < 17 {
				t.Fatalf("dealer stopped below 17 at %d", dv)
			}
		}
	}
}
