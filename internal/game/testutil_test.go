package game

import (
	"context"
	"testing"

	"github.com/peterkuimelis/quizcards/internal/card"
	"github.com/peterkuimelis/quizcards/internal/log"
	"github.com/peterkuimelis/quizcards/internal/quiz"
)

// ScriptedController is a Controller that follows predefined discards and
// quiz answers. Used in tests to deterministically drive the game.
type ScriptedController struct {
	t        *testing.T
	discards []int
	pos      int
	answers  []bool
	ansPos   int

	// Returned from ChooseDiscard once the script runs out, when set.
	exhausted error

	renders []renderCall
	events  []log.GameEvent
	gates   []Gate
}

type renderCall struct {
	name   string
	hand   []card.Card
	hidden bool
}

func NewScriptedController(t *testing.T) *ScriptedController {
	return &ScriptedController{t: t}
}

func (sc *ScriptedController) AddDiscard(idx ...int) *ScriptedController {
	sc.discards = append(sc.discards, idx...)
	return sc
}

func (sc *ScriptedController) AddAnswer(correct ...bool) *ScriptedController {
	sc.answers = append(sc.answers, correct...)
	return sc
}

func (sc *ScriptedController) ChooseDiscard(ctx context.Context, state *GameState) (int, error) {
	if sc.pos >= len(sc.discards) {
		if sc.exhausted != nil {
			return 0, sc.exhausted
		}
		return 0, nil
	}
	idx := sc.discards[sc.pos]
	sc.pos++
	return idx, nil
}

func (sc *ScriptedController) ResolveQuiz(ctx context.Context, state *GameState, gate Gate) (bool, error) {
	sc.gates = append(sc.gates, gate)
	if sc.ansPos >= len(sc.answers) {
		return true, nil
	}
	a := sc.answers[sc.ansPos]
	sc.ansPos++
	return a, nil
}

func (sc *ScriptedController) RenderHand(ctx context.Context, p *Player, hidden bool) error {
	hand := append([]card.Card(nil), p.Hand...)
	sc.renders = append(sc.renders, renderCall{name: p.Name, hand: hand, hidden: hidden})
	return nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.events = append(sc.events, event)
	return nil
}

// scriptedStrategy discards the named cards in order when held, otherwise the
// first card in hand.
type scriptedStrategy struct {
	picks []card.Card
	seen  []*card.Card
}

func (s *scriptedStrategy) ChooseDiscard(hand []card.Card, opponentLast *card.Card) (card.Card, bool) {
	s.seen = append(s.seen, opponentLast)
	if len(hand) == 0 {
		return card.Card{}, false
	}
	if len(s.picks) > 0 {
		want := s.picks[0]
		s.picks = s.picks[1:]
		for _, c := range hand {
			if c == want {
				return c, true
			}
		}
	}
	return hand[0], true
}

// emptyStrategy never finds a card to play.
type emptyStrategy struct{}

func (emptyStrategy) ChooseDiscard(hand []card.Card, opponentLast *card.Card) (card.Card, bool) {
	return card.Card{}, false
}

// fixedQuestions always returns the same question.
type fixedQuestions struct{ q quiz.Question }

func (f fixedQuestions) Next() quiz.Question { return f.q }

var testQuestion = quiz.Question{
	Text:          "What does a trial do?",
	Choices:       []string{"Gate a reward", "Nothing"},
	CorrectAnswer: 0,
	Explanation:   "Trials gate rewards.",
}

// stacked builds a draw pile where the first listed card is drawn first.
func stacked(cards ...card.Card) []card.Card {
	pile := make([]card.Card, len(cards))
	for i, c := range cards {
		pile[len(cards)-1-i] = c
	}
	return pile
}

func mk(s card.Suit, r card.Rank) card.Card {
	return card.New(s, r)
}

func rewardsOf(kinds ...RewardKind) []RewardCard {
	out := make([]RewardCard, len(kinds))
	for i, k := range kinds {
		out[i] = RewardCard{ID: i + 1, Kind: k}
	}
	return out
}

// newTestGame builds and starts a game over a stacked deck. Hands are dealt
// four to the human, four to the AI, then one each per round.
func newTestGame(t *testing.T, deck []card.Card, rewards []RewardCard, ai *scriptedStrategy) (*Game, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	if ai == nil {
		ai = &scriptedStrategy{}
	}
	g := New(Config{
		Seed:      1,
		Deck:      deck,
		Rewards:   rewards,
		Strategy:  ai,
		Questions: fixedQuestions{testQuestion},
		Logger:    logger,
	})
	if err := g.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return g, logger
}

// handIndex returns the index of want in the human hand.
func handIndex(t *testing.T, g *Game, want card.Card) int {
	t.Helper()
	for i, h := range g.State.HumanPlayer().Hand {
		if h == want {
			return i
		}
	}
	t.Fatalf("%s not in human hand %v", want, g.State.HumanPlayer().Hand)
	return -1
}

// assertMultiplier compares a multiplier against a decimal string.
func assertMultiplier(t *testing.T, p *Player, want string) {
	t.Helper()
	if p.Multiplier.String() != want {
		t.Errorf("%s multiplier = %s, want %s", p.Name, p.Multiplier, want)
	}
}

// runToCompletion runs a seeded game with a scripted human to the end.
func runToCompletion(t *testing.T, seed int64, human *ScriptedController) (*Game, *FinalResult) {
	t.Helper()
	g := New(Config{Seed: seed})
	res, err := NewRunner(g, human).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return g, res
}
