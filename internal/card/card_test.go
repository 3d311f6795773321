package card

import (
	"math/rand"
	"testing"
)

func TestRankValue(t *testing.T) {
	for i, r := range Ranks {
		if got := RankValue(r); got != i+1 {
			t.Errorf("RankValue(%s) = %d, want %d", r, got, i+1)
		}
	}
	if got := RankValue(Rank(0)); got != 0 {
		t.Errorf("RankValue(0) = %d, want 0", got)
	}
	if got := RankValue(Rank(14)); got != 0 {
		t.Errorf("RankValue(14) = %d, want 0", got)
	}
}

func TestRankString(t *testing.T) {
	cases := map[Rank]string{Ace: "A", Two: "2", Ten: "10", Jack: "J", Queen: "Q", King: "K"}
	for r, want := range cases {
		if got := r.String(); got != want {
			t.Errorf("Rank(%d).String() = %q, want %q", int(r), got, want)
		}
	}
	if got := New(Spades, Ten).DisplayString(); got != "10 of Spades" {
		t.Errorf("DisplayString = %q", got)
	}
}

// TestNewDeckIntegrity: every shuffle yields 52 unique cards.
func TestNewDeckIntegrity(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		deck := NewDeck(r)
		if len(deck) != DeckSize {
			t.Fatalf("trial %d: deck has %d cards, want %d", trial, len(deck), DeckSize)
		}
		seen := make(map[Card]bool, DeckSize)
		for _, c := range deck {
			if seen[c] {
				t.Fatalf("trial %d: duplicate card %s", trial, c)
			}
			if c.Value() < 1 || c.Value() > 13 {
				t.Fatalf("trial %d: card %s has value %d", trial, c, c.Value())
			}
			seen[c] = true
		}
	}
}

// TestShuffleUniformity runs a chi-square test on the final position of a few
// cards across many shuffles.
func TestShuffleUniformity(t *testing.T) {
	const perCell = 400
	trials := DeckSize * perCell
	r := rand.New(rand.NewSource(42))
	tracked := []Card{New(Clubs, Ace), New(Hearts, Seven), New(Spades, King)}

	counts := make([][]int, len(tracked))
	for i := range counts {
		counts[i] = make([]int, DeckSize)
	}

	for trial := 0; trial < trials; trial++ {
		deck := NewDeck(r)
		for pos, c := range deck {
			for i, tc := range tracked {
				if c == tc {
					counts[i][pos]++
				}
			}
		}
	}

	// df = 51; P(chi2 > 100) is well below 1e-4.
	const limit = 100.0
	for i, tc := range tracked {
		chi2 := 0.0
		for _, n := range counts[i] {
			d := float64(n - perCell)
			chi2 += d * d / perCell
		}
		if chi2 > limit {
			t.Errorf("%s: chi-square %.1f exceeds %.1f", tc, chi2, limit)
		}
	}
}

func TestShuffleGeneric(t *testing.T) {
	s := []string{"a", "b", "c", "d", "e"}
	Shuffle(rand.New(rand.NewSource(1)), s)
	seen := map[string]bool{}
	for _, v := range s {
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Errorf("shuffle lost elements: %v", s)
	}

	var empty []int
	Shuffle(rand.New(rand.NewSource(1)), empty)
}

// TestCompareTotalOrder: antisymmetric, reflexive and suit-blind.
func TestCompareTotalOrder(t *testing.T) {
	all := Ordered()
	for _, a := range all {
		if Compare(a, a) != 0 {
			t.Fatalf("Compare(%s, %s) != 0", a, a)
		}
		for _, b := range all {
			if Compare(a, b) != -Compare(b, a) {
				t.Fatalf("Compare not antisymmetric for %s, %s", a, b)
			}
			if a.Rank == b.Rank && Compare(a, b) != 0 {
				t.Fatalf("same rank %s and %s should tie", a, b)
			}
		}
	}
	if Compare(New(Clubs, King), New(Spades, Queen)) != 1 {
		t.Error("K should beat Q")
	}
	if Compare(New(Spades, Ace), New(Clubs, Two)) != -1 {
		t.Error("A is the lowest card")
	}
}

func TestSum(t *testing.T) {
	hand := []Card{New(Clubs, Ace), New(Hearts, Ten), New(Spades, King)}
	if got := Sum(hand); got != 24 {
		t.Errorf("Sum = %d, want 24", got)
	}
	if Sum(nil) != 0 {
		t.Error("Sum(nil) should be 0")
	}
}
