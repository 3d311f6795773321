package bot

import (
	"math/rand"
	"sort"

	"github.com/peterkuimelis/quizcards/internal/card"
)

// Strategy chooses which card the AI discards this round. opponentLast is the
// human's discard for the same round; nil falls back to the middle tier.
// The caller removes the returned card from the hand.
type Strategy interface {
	ChooseDiscard(hand []card.Card, opponentLast *card.Card) (card.Card, bool)
}

// Tiered is the fixed probabilistic heuristic keyed on the opponent's last
// discard value. It does not learn.
type Tiered struct {
	Tuning Tuning
	Rand   *rand.Rand
}

// NewTiered returns a Tiered strategy with DefaultTuning drawing from r.
func NewTiered(r *rand.Rand) *Tiered {
	if r == nil {
		r = card.NewRand(0)
	}
	return &Tiered{Tuning: DefaultTuning, Rand: r}
}

// ChooseDiscard implements Strategy.
func (b *Tiered) ChooseDiscard(hand []card.Card, opponentLast *card.Card) (card.Card, bool) {
	if len(hand) == 0 {
		return card.Card{}, false
	}

	sorted := SortedByValue(hand)

	oppValue, known := 0, opponentLast != nil
	if known {
		oppValue = card.RankValue(opponentLast.Rank)
	}

	pick := b.Tuning.PickFor(oppValue, known, b.Rand.Float64())
	return sorted[IndexFor(pick, len(sorted))], true
}

// SortedByValue returns a copy of hand in ascending value order. Equal values
// keep their hand order.
func SortedByValue(hand []card.Card) []card.Card {
	sorted := make([]card.Card, len(hand))
	copy(sorted, hand)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value() < sorted[j].Value()
	})
	return sorted
}

// IndexFor returns the sorted-hand index for a pick: 0, n/2 or n-1.
func IndexFor(p Pick, n int) int {
	switch p {
	case PickSmallest:
		return 0
	case PickLargest:
		return n - 1
	default:
		return n / 2
	}
}
