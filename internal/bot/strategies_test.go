package bot

import (
	"math"
	"math/rand"
	"testing"

	"github.com/peterkuimelis/quizcards/internal/card"
)

func fiveCardHand() []card.Card {
	// Deliberately unsorted; sorted values are 2, 4, 7, 9, 12.
	return []card.Card{
		card.New(card.Hearts, card.Nine),
		card.New(card.Clubs, card.Two),
		card.New(card.Spades, card.Queen),
		card.New(card.Diamonds, card.Seven),
		card.New(card.Clubs, card.Four),
	}
}

func TestPickForBands(t *testing.T) {
	tests := []struct {
		name  string
		opp   int
		known bool
		r     float64
		want  Pick
	}{
		{"low opp, r=0", 3, true, 0.0, PickMiddle},
		{"low opp, r=0.69", 4, true, 0.69, PickMiddle},
		{"low opp, r=0.70", 4, true, 0.70, PickLargest},
		{"low opp, r=0.749", 1, true, 0.749, PickLargest},
		{"low opp, r=0.75", 1, true, 0.75, PickSmallest},
		{"high opp, r=0.1", 9, true, 0.1, PickSmallest},
		{"high opp, r=0.72", 13, true, 0.72, PickLargest},
		{"high opp, r=0.9", 11, true, 0.9, PickMiddle},
		{"mid opp 5, r=0.2", 5, true, 0.2, PickSmallest},
		{"mid opp 8, r=0.5", 8, true, 0.5, PickMiddle},
		{"mid opp 6, r=0.8", 6, true, 0.8, PickLargest},
		{"unknown opp, r=0.1", 0, false, 0.1, PickSmallest},
		{"unknown opp, r=0.5", 0, false, 0.5, PickMiddle},
		{"unknown opp, r=0.99", 0, false, 0.99, PickLargest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultTuning.PickFor(tt.opp, tt.known, tt.r); got != tt.want {
				t.Errorf("PickFor(%d, %v, %v) = %s, want %s", tt.opp, tt.known, tt.r, got, tt.want)
			}
		})
	}
}

func TestIndexFor(t *testing.T) {
	if IndexFor(PickSmallest, 5) != 0 || IndexFor(PickMiddle, 5) != 2 || IndexFor(PickLargest, 5) != 4 {
		t.Error("unexpected indices for a 5-card hand")
	}
	if IndexFor(PickMiddle, 4) != 2 {
		t.Error("middle of 4 should be index 2")
	}
	if IndexFor(PickMiddle, 1) != 0 || IndexFor(PickLargest, 1) != 0 {
		t.Error("single-card hand should always pick index 0")
	}
}

func TestSortedByValueDoesNotMutate(t *testing.T) {
	hand := fiveCardHand()
	sorted := SortedByValue(hand)
	if hand[0] != card.New(card.Hearts, card.Nine) {
		t.Error("SortedByValue mutated the input")
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Value() > sorted[i].Value() {
			t.Fatalf("not sorted: %v", sorted)
		}
	}
}

// TestLowOpponentFavorsMiddle: opponent discarded a 3, so about 70% of
// choices should be the middle card.
func TestLowOpponentFavorsMiddle(t *testing.T) {
	b := NewTiered(rand.New(rand.NewSource(2024)))
	hand := fiveCardHand()
	opp := card.New(card.Spades, card.Three)
	middle := card.New(card.Diamonds, card.Seven)

	const trials = 10000
	hits := 0
	for i := 0; i < trials; i++ {
		c, ok := b.ChooseDiscard(hand, &opp)
		if !ok {
			t.Fatal("ChooseDiscard returned no card")
		}
		if c == middle {
			hits++
		}
	}
	ratio := float64(hits) / trials
	if math.Abs(ratio-0.70) > 0.03 {
		t.Errorf("middle chosen %.3f of the time, want 0.70±0.03", ratio)
	}
}

func TestHighOpponentFavorsSmallest(t *testing.T) {
	b := NewTiered(rand.New(rand.NewSource(99)))
	hand := fiveCardHand()
	opp := card.New(card.Hearts, card.King)
	smallest := card.New(card.Clubs, card.Two)

	const trials = 10000
	hits := 0
	for i := 0; i < trials; i++ {
		if c, _ := b.ChooseDiscard(hand, &opp); c == smallest {
			hits++
		}
	}
	ratio := float64(hits) / trials
	if math.Abs(ratio-0.70) > 0.03 {
		t.Errorf("smallest chosen %.3f of the time, want 0.70±0.03", ratio)
	}
}

func TestUnknownOpponentSplitsEvenly(t *testing.T) {
	b := NewTiered(rand.New(rand.NewSource(5)))
	hand := fiveCardHand()
	sorted := SortedByValue(hand)

	const trials = 9000
	counts := map[card.Card]int{}
	for i := 0; i < trials; i++ {
		c, _ := b.ChooseDiscard(hand, nil)
		counts[c]++
	}
	for _, c := range []card.Card{sorted[0], sorted[2], sorted[4]} {
		ratio := float64(counts[c]) / trials
		if math.Abs(ratio-1.0/3) > 0.03 {
			t.Errorf("%s chosen %.3f of the time, want about 1/3", c, ratio)
		}
	}
	if counts[sorted[1]] != 0 || counts[sorted[3]] != 0 {
		t.Error("only smallest, middle and largest may be chosen")
	}
}

func TestChooseDiscardEmptyHand(t *testing.T) {
	b := NewTiered(rand.New(rand.NewSource(1)))
	if _, ok := b.ChooseDiscard(nil, nil); ok {
		t.Error("empty hand should yield no card")
	}
}
