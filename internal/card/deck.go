package card

import (
	"math/rand"
	"time"
)

// DeckSize is the number of unique cards in a full deck.
const DeckSize = len(Suits) * len(Ranks)

// Ordered returns all 52 cards, suit-major, unshuffled.
func Ordered() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, New(s, r))
		}
	}
	return deck
}

// NewDeck returns a freshly shuffled 52-card deck. The top of the deck is the
// last element. A nil r uses a time-seeded source.
func NewDeck(r *rand.Rand) []Card {
	deck := Ordered()
	Shuffle(r, deck)
	return deck
}

// Shuffle permutes s in place with Fisher–Yates: for i from the last index
// down to 1, swap s[i] with s[j] for a uniform j in [0, i].
func Shuffle[T any](r *rand.Rand, s []T) {
	if r == nil {
		r = NewRand(0)
	}
	for i := len(s) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// NewRand returns a random source for seed, or a time-seeded one when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
