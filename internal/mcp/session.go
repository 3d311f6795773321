package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/peterkuimelis/quizcards/internal/card"
	"github.com/peterkuimelis/quizcards/internal/game"
	"github.com/peterkuimelis/quizcards/internal/log"
	quiznet "github.com/peterkuimelis/quizcards/internal/net"
	"github.com/peterkuimelis/quizcards/internal/quiz"
)

// DecisionType identifies what the game is waiting for.
type DecisionType string

const (
	DecisionChooseDiscard DecisionType = "choose_discard"
	DecisionAnswerQuiz    DecisionType = "answer_quiz"
	DecisionGameOver      DecisionType = "game_over"
)

var (
	errNoGame   = errors.New("no game is running, use start_game first")
	errNoQuiz   = errors.New("no quiz is pending")
	errGameOver = errors.New("the game is over, use start_game to play again")
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events     []quiznet.EventView     `json:"events"`
	Hands      []quiznet.HandView      `json:"hands,omitempty"`
	State      *quiznet.StateView      `json:"state,omitempty"`
	QuizResult *quiznet.QuizResultView `json:"quiz_result,omitempty"`
	Pending    *PendingView            `json:"pending,omitempty"`
	GameOver   bool                    `json:"game_over"`
	Final      *quiznet.FinalView      `json:"final,omitempty"`
}

// PendingView is the decision the game is waiting for, as presented in the
// tool response JSON.
type PendingView struct {
	Type DecisionType       `json:"type"`
	Hand []quiznet.CardView `json:"hand,omitempty"`
	Quiz *quiznet.QuizView  `json:"quiz,omitempty"`
}

// GameSession holds the game played by the MCP client in the human seat.
// One game is active at a time; start_game and reset_game replace it.
type GameSession struct {
	rng  *rand.Rand
	bank *quiz.Bank

	mu     sync.Mutex
	game   *game.Game
	events []quiznet.EventView
	hands  map[string]quiznet.HandView
}

// NewGameSession creates a session drawing questions from questions, or the
// default bank when none are given. A zero seed makes every game different.
func NewGameSession(questions []quiz.Question, seed int64) *GameSession {
	if len(questions) == 0 {
		questions = quiz.Default()
	}
	rng := card.NewRand(seed)
	return &GameSession{
		rng:   rng,
		bank:  quiz.NewBank(questions, rng),
		hands: make(map[string]quiznet.HandView),
	}
}

// Start deals a new game, abandoning any game in progress.
func (s *GameSession) Start(ctx context.Context) (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = nil
	if s.game != nil && !s.game.Over() {
		s.game.Abandon(ctx)
	}
	s.hands = make(map[string]quiznet.HandView)

	g := game.New(game.Config{
		Rand:      s.rng,
		Questions: s.bank,
		Logger:    log.NewMemoryLogger(),
	})
	g.AddObserver(NewMCPObserver(s))
	s.game = g
	if err := g.Start(ctx); err != nil {
		return nil, fmt.Errorf("start game: %w", err)
	}
	return s.response(), nil
}

// Discard plays the card at index of the human hand.
func (s *GameSession) Discard(ctx context.Context, index int) (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.active(); err != nil {
		return nil, err
	}
	if _, err := s.game.Discard(ctx, index); err != nil {
		return nil, err
	}
	return s.response(), nil
}

// Answer answers the pending quiz with the choice at index.
func (s *GameSession) Answer(ctx context.Context, choice int) (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.active(); err != nil {
		return nil, err
	}
	pending := s.game.State.Pending
	if pending == nil {
		return nil, errNoQuiz
	}
	gate := *pending
	if choice < 0 || choice >= len(gate.Question.Choices) {
		return nil, fmt.Errorf("%w: choice %d, must be 0-%d", game.ErrInvalidSelection, choice, len(gate.Question.Choices)-1)
	}

	correct := gate.Question.IsCorrect(choice)
	if _, err := s.game.ResolveGate(ctx, gate.ID, correct); err != nil {
		return nil, err
	}
	resp := s.response()
	resp.QuizResult = quiznet.NewQuizResultView(gate, correct)
	return resp, nil
}

// Snapshot returns the current state and the events since the last call.
func (s *GameSession) Snapshot() (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game == nil {
		return nil, errNoGame
	}
	return s.response(), nil
}

func (s *GameSession) active() error {
	if s.game == nil {
		return errNoGame
	}
	if s.game.Over() {
		return errGameOver
	}
	return nil
}

// response drains buffered events and describes the pending decision. Must
// be called with mu held.
func (s *GameSession) response() *ToolResponse {
	gs := s.game.State
	resp := &ToolResponse{
		Events: s.events,
		State:  quiznet.BuildStateView(gs),
	}
	s.events = nil
	if resp.Events == nil {
		resp.Events = []quiznet.EventView{}
	}
	for _, name := range []string{"You", "AI"} {
		if hv, ok := s.hands[name]; ok {
			resp.Hands = append(resp.Hands, hv)
		}
	}

	switch {
	case gs.Phase == game.PhaseEnded:
		resp.GameOver = true
		resp.Final = quiznet.NewFinalView(gs)
		resp.Pending = &PendingView{Type: DecisionGameOver}
	case gs.Pending != nil:
		resp.Pending = &PendingView{Type: DecisionAnswerQuiz, Quiz: quiznet.NewQuizView(*gs.Pending)}
	case gs.DiscardEnabled:
		resp.Pending = &PendingView{Type: DecisionChooseDiscard, Hand: quiznet.CardViews(gs.HumanPlayer().Hand)}
	}
	return resp
}

// appendEvent and setHand are called by the observer while a game method
// runs under mu.
func (s *GameSession) appendEvent(ev quiznet.EventView) {
	s.events = append(s.events, ev)
}

func (s *GameSession) setHand(hv *quiznet.HandView) {
	s.hands[hv.Player] = *hv
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
