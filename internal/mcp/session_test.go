package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/peterkuimelis/quizcards/internal/game"
	"github.com/peterkuimelis/quizcards/internal/quiz"
)

// playOut discards the first card and answers the first choice until the
// game ends.
func playOut(t *testing.T, s *GameSession, resp *ToolResponse) *ToolResponse {
	t.Helper()
	ctx := context.Background()
	for i := 0; !resp.GameOver; i++ {
		if i > 20 {
			t.Fatal("game did not end")
		}
		var err error
		switch resp.Pending.Type {
		case DecisionChooseDiscard:
			resp, err = s.Discard(ctx, 0)
		case DecisionAnswerQuiz:
			resp, err = s.Answer(ctx, 0)
		default:
			t.Fatalf("unexpected pending %q", resp.Pending.Type)
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	return resp
}

func TestSessionPlaysToEnd(t *testing.T) {
	s := NewGameSession(nil, 42)
	resp, err := s.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Pending == nil || resp.Pending.Type != DecisionChooseDiscard {
		t.Fatalf("first decision = %+v", resp.Pending)
	}
	if len(resp.Pending.Hand) != 5 {
		t.Errorf("hand = %d cards, want 5", len(resp.Pending.Hand))
	}
	if resp.State.Opponent.Hand != nil {
		t.Error("AI hand leaked before game over")
	}
	for _, hv := range resp.Hands {
		if hv.Player == "AI" && !hv.Hidden {
			t.Error("AI hand rendered face up before game over")
		}
	}

	final := playOut(t, s, resp)
	if final.Final == nil || final.Final.Message == "" {
		t.Fatalf("game over without final view: %+v", final)
	}
	if final.Pending == nil || final.Pending.Type != DecisionGameOver {
		t.Errorf("pending after end = %+v", final.Pending)
	}

	if _, err := s.Discard(context.Background(), 0); !errors.Is(err, errGameOver) {
		t.Errorf("discard after end = %v", err)
	}
}

func TestSessionAnswerReportsResult(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 30; seed++ {
		s := NewGameSession(nil, seed)
		resp, err := s.Start(ctx)
		if err != nil {
			t.Fatal(err)
		}
		resp, err = s.Discard(ctx, 0)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Pending == nil || resp.Pending.Type != DecisionAnswerQuiz {
			continue
		}
		quiz := resp.Pending.Quiz
		if quiz.GateID == "" || len(quiz.Choices) == 0 {
			t.Fatalf("quiz view incomplete: %+v", quiz)
		}
		if _, err := s.Answer(ctx, len(quiz.Choices)); !errors.Is(err, game.ErrInvalidSelection) {
			t.Errorf("out of range answer = %v", err)
		}
		resp, err = s.Answer(ctx, 0)
		if err != nil {
			t.Fatal(err)
		}
		if resp.QuizResult == nil || resp.QuizResult.Feedback == "" {
			t.Errorf("answer without quiz result: %+v", resp.QuizResult)
		}
		if resp.Pending != nil && resp.Pending.Type == DecisionAnswerQuiz {
			t.Error("quiz still pending after answer")
		}
		return
	}
	t.Skip("no seed opened a quiz in round one")
}

func TestSessionEmptyQuestionsUseDefaultBank(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 30; seed++ {
		s := NewGameSession([]quiz.Question{}, seed)
		resp, err := s.Start(ctx)
		if err != nil {
			t.Fatal(err)
		}
		for !resp.GameOver {
			if resp.Pending.Type == DecisionAnswerQuiz {
				q := resp.Pending.Quiz
				if q.Question == "" || len(q.Choices) == 0 {
					t.Fatalf("seed %d: quiz without a question: %+v", seed, q)
				}
				if _, err := s.Answer(ctx, 0); err != nil {
					t.Fatalf("seed %d: answer: %v", seed, err)
				}
				return
			}
			if resp, err = s.Discard(ctx, 0); err != nil {
				t.Fatalf("seed %d: discard: %v", seed, err)
			}
		}
	}
	t.Fatal("no quiz asked in thirty games")
}

func TestSessionRejectsOutOfTurn(t *testing.T) {
	ctx := context.Background()
	s := NewGameSession(nil, 5)
	if _, err := s.Snapshot(); !errors.Is(err, errNoGame) {
		t.Errorf("snapshot before start = %v", err)
	}
	if _, err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Discard(ctx, 99); !errors.Is(err, game.ErrInvalidSelection) {
		t.Errorf("discard 99 = %v", err)
	}
	if _, err := s.Answer(ctx, 0); !errors.Is(err, errNoQuiz) {
		t.Errorf("answer without quiz = %v", err)
	}

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if snap.State.Round != 1 || snap.State.You.HandCount != 5 {
		t.Errorf("rejected calls changed the game: round %d hand %d", snap.State.Round, snap.State.You.HandCount)
	}
}

func TestSessionResetAbandonsGame(t *testing.T) {
	ctx := context.Background()
	s := NewGameSession(nil, 9)
	first, err := s.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if second.State.GameID == first.State.GameID {
		t.Error("reset should deal a new game")
	}
	if len(second.Events) == 0 || second.Events[0].Type != "Reset" {
		t.Errorf("first event after reset = %+v", second.Events)
	}
}

func TestSnapshotDrainsEvents(t *testing.T) {
	s := NewGameSession(nil, 3)
	if _, err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	snap, err := s.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Events) != 0 {
		t.Errorf("events not drained: %d left", len(snap.Events))
	}
	data, _ := json.Marshal(snap)
	var raw map[string]any
	json.Unmarshal(data, &raw)
	if _, ok := raw["events"].([]any); !ok {
		t.Errorf("events should marshal as an empty list, got %v", raw["events"])
	}
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (*mcp.CallToolResult, *ToolResponse) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.IsError {
		return result, nil
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content = %T", result.Content[0])
	}
	var resp ToolResponse
	if err := json.Unmarshal([]byte(text.Text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return result, &resp
}

func TestToolHandlers(t *testing.T) {
	activeSession = nil
	SetSeed(17)
	t.Cleanup(func() {
		activeSession = nil
		SetSeed(0)
	})

	if res, _ := callTool(t, handleDiscardCard, map[string]any{"index": float64(0)}); !res.IsError {
		t.Error("discard before start_game should fail")
	}

	_, resp := callTool(t, handleStartGame, nil)
	if resp == nil || resp.Pending.Type != DecisionChooseDiscard {
		t.Fatalf("start_game = %+v", resp)
	}

	if res, _ := callTool(t, handleDiscardCard, map[string]any{"index": float64(42)}); !res.IsError {
		t.Error("out of range discard should fail")
	}

	_, resp = callTool(t, handleDiscardCard, map[string]any{"index": float64(0)})
	if resp == nil || resp.State.LastRound == nil {
		t.Fatalf("discard_card = %+v", resp)
	}

	_, state := callTool(t, handleGetGameState, nil)
	if state == nil || state.State.GameID != resp.State.GameID {
		t.Errorf("get_game_state = %+v", state)
	}

	_, reset := callTool(t, handleResetGame, nil)
	if reset == nil || reset.State.GameID == resp.State.GameID {
		t.Errorf("reset_game should deal a new game: %+v", reset)
	}
}
