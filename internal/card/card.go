package card

import "fmt"

// --- Enums ---

type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in deck-construction order.
var Suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	default:
		return "Unknown"
	}
}

// Symbol returns the single-glyph suit marker used in compact displays.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank in ascending value order.
var Ranks = [13]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r > Ace && r < Jack {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// RankValue maps a rank to its comparison and scoring value, A=1 through K=13.
// Unknown ranks are worth 0.
func RankValue(r Rank) int {
	if r < Ace || r > King {
		return 0
	}
	return int(r)
}

// --- Card ---

// Card is an immutable playing card. Two cards are the same card when both
// suit and rank match, so Card values compare with ==.
type Card struct {
	Suit Suit
	Rank Rank
}

// New returns the card with the given suit and rank.
func New(s Suit, r Rank) Card {
	return Card{Suit: s, Rank: r}
}

// Value returns the card's numeric value. Suit never contributes.
func (c Card) Value() int {
	return RankValue(c.Rank)
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// DisplayString returns the long form used in event details, e.g. "10 of Spades".
func (c Card) DisplayString() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 on a tie.
// Only the numeric value is compared.
func Compare(a, b Card) int {
	switch {
	case a.Value() > b.Value():
		return 1
	case a.Value() < b.Value():
		return -1
	default:
		return 0
	}
}

// Sum returns the total value of the given cards.
func Sum(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Value()
	}
	return total
}
