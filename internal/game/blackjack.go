package game

import (
	"errors"
	"math/rand/v2"
	"time"
)

// Card is a single playing card. Rank is "A", "2".."10", "J", "Q", "K".
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

var (
	cardSuits = []string{"♠", "♥", "♦", "♣"}
	cardRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
)

// HandValue scores a blackjack hand: face cards are 10, aces are 11 with
// soft reduction to 1 while the total busts and an ace remains.
func HandValue(hand []Card) int {
	value := 0
	aces := 0
	for _, c := range hand {
		switch c.Rank {
		case "J", "Q", "K":
			value += 10
		case "A":
			aces++
			value += 11
		case "10":
			value += 10
		default:
			value += int(c.Rank[0] - '0')
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

// BlackjackOutcome is the terminal result of a hand.
type BlackjackOutcome string

const (
	OutcomeBlackjack       BlackjackOutcome = "blackjack"
	OutcomeDealerBlackjack BlackjackOutcome = "dealer_blackjack"
	OutcomePlayerBust      BlackjackOutcome = "player_bust"
	OutcomeDealerBust      BlackjackOutcome = "dealer_bust"
	OutcomePlayerWins      BlackjackOutcome = "player_wins"
	OutcomeDealerWins      BlackjackOutcome = "dealer_wins"
	OutcomePush            BlackjackOutcome = "push"
)

var (
	ErrHandOver       = errors.New("hand already resolved")
	ErrCannotDouble   = errors.New("double not available")
	ErrCannotSplit    = errors.New("split not available")
	ErrNoInsurance    = errors.New("insurance not available")
)

// BlackjackGame is one live hand against the dealer. The shoe is a single
// 52-card deck shuffled once at deal time. The game never touches the
// ledger: Bet doubling and insurance cost are debited by the caller before
// the corresponding action method runs.
type BlackjackGame struct {
	Bet    int64  `json:"bet"`
	Player []Card `json:"player"`
	Dealer []Card `json:"dealer"`

	Over    bool             `json:"over"`
	Outcome BlackjackOutcome `json:"outcome,omitempty"`

	// Gross amounts owed to the player at resolution. Stake was already
	// taken, so a push yields Payout == Bet.
	Payout          int64 `json:"payout"`
	InsurancePayout int64 `json:"insurance_payout"`

	CanDouble        bool  `json:"can_double"`
	CanSplit         bool  `json:"can_split"`
	HasSplit         bool  `json:"has_split"`
	InsuranceOffered bool  `json:"insurance_offered"`
	InsuranceBet     int64 `json:"insurance_bet"`

	CreatedAt  time.Time `json:"created_at"`
	LastAction time.Time `json:"last_action"`

	shoe []Card
}

// NewBlackjackGame shuffles a fresh shoe, deals the opening hands, and
// resolves naturals immediately. If the dealer's up-card is an ace the
// dealer's own natural stays hidden until the hand resolves, giving the
// player the insurance window.
func NewBlackjackGame(bet int64, rng *rand.Rand, now time.Time) *BlackjackGame {
	shoe := make([]Card, 0, 52)
	for _, s := range cardSuits {
		for _, r := range cardRanks {
			shoe = append(shoe, Card{Rank: r, Suit: s})
		}
	}
	rng.Shuffle(len(shoe), func(i, j int) {
		shoe[i], shoe[j] = shoe[j], shoe[i]
	})

	g := &BlackjackGame{
		Bet:        bet,
		shoe:       shoe,
		CreatedAt:  now,
		LastAction: now,
	}
	g.Player = []Card{g.draw(), g.draw()}
	g.Dealer = []Card{g.draw(), g.draw()}

	g.CanDouble = true
	g.CanSplit = g.Player[0].Rank == g.Player[1].Rank
	g.InsuranceOffered = g.Upcard().Rank == "A"

	playerNatural := HandValue(g.Player) == 21
	dealerNatural := HandValue(g.Dealer) == 21

	switch {
	case playerNatural && dealerNatural:
		g.finish(OutcomePush, bet)
	case playerNatural:
		// Natural pays 3:2.
		g.finish(OutcomeBlackjack, bet*5/2)
	case dealerNatural && !g.InsuranceOffered:
		// Ten-value up-card: the natural is face up, hand ends at once.
		g.finish(OutcomeDealerBlackjack, 0)
	}
	return g
}

// Upcard is the dealer card shown to the player.
func (g *BlackjackGame) Upcard() Card {
	return g.Dealer[1]
}

func (g *BlackjackGame) draw() Card {
	c := g.shoe[len(g.shoe)-1]
	g.shoe = g.shoe[:len(g.shoe)-1]
	return c
}

func (g *BlackjackGame) finish(outcome BlackjackOutcome, payout int64) {
	g.Over = true
	g.Outcome = outcome
	g.Payout = payout
	g.CanDouble = false
	g.CanSplit = false
	g.InsuranceOffered = false
}

// Won reports whether the hand counts as a win for the player's stats.
// Pushes count as losses, matching the rest of the minigames.
func (g *BlackjackGame) Won() bool {
	switch g.Outcome {
	case OutcomeBlackjack, OutcomeDealerBust, OutcomePlayerWins:
		return true
	}
	return false
}

// Hit deals one card to the player. Busting resolves the hand immediately;
// the dealer does not draw against a busted player.
func (g *BlackjackGame) Hit(now time.Time) error {
	if g.Over {
		return ErrHandOver
	}
	g.LastAction = now
	g.CanDouble = false
	g.CanSplit = false
	g.InsuranceOffered = false

	g.Player = append(g.Player, g.draw())
	if HandValue(g.Player) > 21 {
		g.resolve()
	}
	return nil
}

// Stand ends the player's turn and plays out the dealer.
func (g *BlackjackGame) Stand(now time.Time) error {
	if g.Over {
		return ErrHandOver
	}
	g.LastAction = now
	g.resolve()
	return nil
}

// Double doubles the stake, deals exactly one card, and forces resolution.
// The caller has already debited the extra stake.
func (g *BlackjackGame) Double(now time.Time) error {
	if g.Over {
		return ErrHandOver
	}
	if !g.CanDouble || len(g.Player) != 2 {
		return ErrCannotDouble
	}
	g.LastAction = now
	g.Bet *= 2
	g.CanDouble = false
	g.CanSplit = false
	g.InsuranceOffered = false

	g.Player = append(g.Player, g.draw())
	g.resolve()
	return nil
}

// Split doubles the stake and deals one extra card into the same hand. This
// is deliberately not a two-hand fork; the simplified rule ships as-is.
// The caller has already debited the extra stake.
func (g *BlackjackGame) Split(now time.Time) error {
	if g.Over {
		return ErrHandOver
	}
	if !g.CanSplit || g.HasSplit || len(g.Player) != 2 {
		return ErrCannotSplit
	}
	g.LastAction = now
	g.HasSplit = true
	g.CanSplit = false
	g.CanDouble = false
	g.Bet *= 2

	g.Player = append(g.Player, g.draw())
	if HandValue(g.Player) > 21 {
		g.resolve()
	}
	return nil
}

// Insurance takes the side bet of half the original stake. The caller has
// already debited cost. It pays 2:1 at resolution if the dealer holds a
// natural.
func (g *BlackjackGame) Insurance(now time.Time) (cost int64, err error) {
	if g.Over {
		return 0, ErrHandOver
	}
	if !g.InsuranceOffered || g.InsuranceBet > 0 {
		return 0, ErrNoInsurance
	}
	g.LastAction = now
	g.InsuranceBet = g.Bet / 2
	g.InsuranceOffered = false
	return g.InsuranceBet, nil
}

// InsuranceCost is what taking insurance would debit right now.
func (g *BlackjackGame) InsuranceCost() int64 {
	return g.Bet / 2
}

func (g *BlackjackGame) resolve() {
	playerValue := HandValue(g.Player)

	if playerValue > 21 {
		g.settleInsurance()
		g.finish(OutcomePlayerBust, 0)
		return
	}

	dealerNatural := HandValue(g.Dealer) == 21 && len(g.Dealer) == 2
	if dealerNatural {
		g.settleInsurance()
		g.finish(OutcomeDealerBlackjack, 0)
		return
	}

	// Dealer hits below 17, stands on any 17.
	for HandValue(g.Dealer) < 17 {
		g.Dealer = append(g.Dealer, g.draw())
	}
	dealerValue := HandValue(g.Dealer)

	switch {
	case dealerValue > 21:
		g.finish(OutcomeDealerBust, g.Bet*2)
	case playerValue > dealerValue:
		g.finish(OutcomePlayerWins, g.Bet*2)
	case playerValue == dealerValue:
		g.finish(OutcomePush, g.Bet)
	default:
		g.finish(OutcomeDealerWins, 0)
	}
}

func (g *BlackjackGame) settleInsurance() {
	if g.InsuranceBet > 0 && HandValue(g.Dealer) == 21 && len(g.Dealer) == 2 {
		g.InsurancePayout = g.InsuranceBet * 3
	}
}

// ToDetails returns game details for logging and responses.
func (g *BlackjackGame) ToDetails() map[string]interface{} {
	return map[string]interface{}{
		"player":       g.Player,
		"dealer":       g.Dealer,
		"player_value": HandValue(g.Player),
		"dealer_value": HandValue(g.Dealer),
		"outcome":      g.Outcome,
		"bet":          g.Bet,
	}
}
