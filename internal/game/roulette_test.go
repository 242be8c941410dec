package game

import (
	"math/rand/v2"
	"testing"
)

func TestRouletteColor(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, RouletteGreen},
		{1, RouletteRed},
		{2, RouletteBlack},
		{7, RouletteRed},
		{10, RouletteBlack},
		{19, RouletteRed},
		{36, RouletteRed},
		{35, RouletteBlack},
	}
	for _, tc := range cases {
		if got := RouletteColor(tc.n); got != tc.want {
			t.Errorf("RouletteColor(%d) = %s, want %s", tc.n, got, tc.want)
		}
	}
}

func TestValidRouletteBet(t *testing.T) {
	valid := []struct {
		bt    RouletteBetType
		value string
	}{
		{RouletteBetNumber, ""},
		{RouletteBetColor, "red"},
		{RouletteBetColor, "black"},
		{RouletteBetEvenOdd, "even"},
		{RouletteBetEvenOdd, "odd"},
		{RouletteBetHighLow, "high"},
		{RouletteBetHighLow, "low"},
	}
	for _, tc := range valid {
		if !ValidRouletteBet(tc.bt, tc.value) {
			t.Errorf("ValidRouletteBet(%s, %s) = false", tc.bt, tc.value)
		}
	}

	invalid := []struct {
		bt    RouletteBetType
		value string
	}{
		{RouletteBetColor, "green"},
		{RouletteBetEvenOdd, "both"},
		{RouletteBetHighLow, "middle"},
		{"corner", "1"},
	}
	for _, tc := range invalid {
		if ValidRouletteBet(tc.bt, tc.value) {
			t.Errorf("ValidRouletteBet(%s, %s) = true", tc.bt, tc.value)
		}
	}
}

func TestRoulettePayouts(t *testing.T) {
	number := NewRouletteGame(RouletteBetNumber, "", 7)
	number.WinningNumber = 7
	number.Won = true
	if got := number.WinAmount(10); got != 360 {
		t.Errorf("number payout = %d, want 360", got)
	}

	color := NewRouletteGame(RouletteBetColor, "red", 0)
	color.Won = true
	if got := color.WinAmount(25); got != 50 {
		t.Errorf("color payout = %d, want 50", got)
	}

	lost := NewRouletteGame(RouletteBetColor, "red", 0)
	if got := lost.WinAmount(25); got != 0 {
		t.Errorf("losing payout = %d, want 0", got)
	}
}

// TestSpinConsistency draws seeded spins and checks the outcome against the
// wheel rules for every bet type. Zero must lose every outside bet.
func TestSpinConsistency(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))

	for i := 0; i < 2000; i++ {
		g := NewRouletteGame(RouletteBetColor, "red", 0)
		n := g.Spin(rng)
		if n < 0 || n > 36 {
			t.Fatalf("pocket out of range: %d", n)
		}
		if n == 0 && g.Won {
			t.Fatal("zero paid a color bet")
		}
		if g.Won != (n != 0 && RouletteColor(n) == RouletteRed) {
			t.Fatalf("color outcome inconsistent for %d", n)
		}

		even := NewRouletteGame(RouletteBetEvenOdd, "even", 0)
		n = even.Spin(rng)
		if even.Won != (n != 0 && n%2 == 0) {
			t.Fatalf("even outcome inconsistent for %d", n)
		}

		low := NewRouletteGame(RouletteBetHighLow, "low", 0)
		n = low.Spin(rng)
		if low.Won != (n >= 1 && n <= 18) {
			t.Fatalf("low outcome inconsistent for %d", n)
		}

		straight := NewRouletteGame(RouletteBetNumber, "", 17)
		n = straight.Spin(rng)
		if straight.Won != (n == 17) {
			t.Fatalf("number outcome inconsistent for %d", n)
		}
	}
}
