package game

import (
	"github.com/google/uuid"
	"github.com/peterkuimelis/quizcards/internal/card"
	"github.com/peterkuimelis/quizcards/internal/quiz"
	"github.com/shopspring/decimal"
)

// Player represents one side's entire state.
type Player struct {
	Name        string
	Hand        []card.Card
	Score       int // rounds won
	Multiplier  decimal.Decimal
	IsAI        bool
	LastDiscard *card.Card
}

func NewPlayer(name string, isAI bool) *Player {
	return &Player{
		Name:       name,
		Multiplier: decimal.NewFromInt(1),
		IsAI:       isAI,
	}
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// Draw pops up to n cards from the top (end) of pile into the hand and
// returns the cards actually drawn. A short pile yields fewer cards.
func (p *Player) Draw(pile *[]card.Card, n int) []card.Card {
	var drawn []card.Card
	for i := 0; i < n && len(*pile) > 0; i++ {
		top := (*pile)[len(*pile)-1]
		*pile = (*pile)[:len(*pile)-1]
		p.Hand = append(p.Hand, top)
		drawn = append(drawn, top)
	}
	return drawn
}

// Discard removes the first card equal to c. Returns false if the hand
// holds no such card.
func (p *Player) Discard(c card.Card) bool {
	for i, h := range p.Hand {
		if h == c {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// Holds reports whether c is in the hand.
func (p *Player) Holds(c card.Card) bool {
	for _, h := range p.Hand {
		if h == c {
			return true
		}
	}
	return false
}

func (p *Player) IncrementScore() {
	p.Score++
}

// HandValue is the sum of the hand's card values.
func (p *Player) HandValue() int {
	return card.Sum(p.Hand)
}

// LowestCard returns the lowest-valued card and its index. On ties the
// earliest card in the hand wins.
func (p *Player) LowestCard() (card.Card, int, bool) {
	if len(p.Hand) == 0 {
		return card.Card{}, -1, false
	}
	low := 0
	for i := 1; i < len(p.Hand); i++ {
		if p.Hand[i].Value() < p.Hand[low].Value() {
			low = i
		}
	}
	return p.Hand[low], low, true
}

// FinalScore is hand value times multiplier.
func (p *Player) FinalScore() decimal.Decimal {
	return decimal.NewFromInt(int64(p.HandValue())).Mul(p.Multiplier)
}

// GameState holds the complete state of one game.
type GameState struct {
	ID             string
	Round          int
	Phase          Phase
	MaxRound       int
	Players        [2]*Player
	DrawPile       []card.Card  // top is last element (pop from end)
	Rewards        []RewardCard // eligibility scans from the front
	Question       *quiz.Question
	Pending        *Gate
	DiscardEnabled bool
	LastRound      *RoundResult
	Final          *FinalResult
}

// NewGameState builds a state in the initial phase. deck and rewards are
// taken as given.
func NewGameState(deck []card.Card, rewards []RewardCard, maxRound int) *GameState {
	if maxRound <= 0 {
		maxRound = DefaultMaxRound
	}
	return &GameState{
		ID:       uuid.NewString(),
		Phase:    PhaseInitial,
		MaxRound: maxRound,
		Players: [2]*Player{
			NewPlayer("You", false),
			NewPlayer("AI", true),
		},
		DrawPile: deck,
		Rewards:  rewards,
	}
}

// Opponent returns the other seat.
func (gs *GameState) Opponent(seat int) int {
	return 1 - seat
}

func (gs *GameState) HumanPlayer() *Player {
	return gs.Players[Human]
}

func (gs *GameState) AIPlayer() *Player {
	return gs.Players[AI]
}

// DrawCount returns the number of cards left in the draw pile.
func (gs *GameState) DrawCount() int {
	return len(gs.DrawPile)
}
