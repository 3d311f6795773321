package net

import (
	"github.com/peterkuimelis/quizcards/internal/card"
	"github.com/peterkuimelis/quizcards/internal/game"
	"github.com/peterkuimelis/quizcards/internal/log"
)

// CardViews converts a hand for display.
func CardViews(cards []card.Card) []CardView {
	views := make([]CardView, 0, len(cards))
	for i, c := range cards {
		views = append(views, CardView{
			Index:   i,
			Name:    c.String(),
			Display: c.DisplayString(),
			Suit:    c.Suit.String(),
			Rank:    c.Rank.String(),
			Value:   c.Value(),
		})
	}
	return views
}

// NewHandView builds the "hand" payload. A hidden hand only shows its size.
func NewHandView(p *game.Player, hidden bool) *HandView {
	hv := &HandView{Player: p.Name, Count: p.HandCount(), Hidden: hidden}
	if !hidden {
		hv.Cards = CardViews(p.Hand)
	}
	return hv
}

func playerView(p *game.Player, hidden bool) PlayerView {
	pv := PlayerView{
		Name:       p.Name,
		HandCount:  p.HandCount(),
		Score:      p.Score,
		Multiplier: p.Multiplier.String(),
	}
	if !hidden {
		pv.Hand = CardViews(p.Hand)
	}
	if p.LastDiscard != nil {
		pv.LastDiscard = p.LastDiscard.String()
	}
	return pv
}

// BuildStateView creates a StateView from the human's perspective. The AI
// hand is only included once the game has ended.
func BuildStateView(state *game.GameState) *StateView {
	sv := &StateView{
		GameID:         state.ID,
		Round:          state.Round,
		MaxRound:       state.MaxRound,
		Phase:          state.Phase.String(),
		DrawCount:      state.DrawCount(),
		RewardCount:    len(state.Rewards),
		DiscardEnabled: state.DiscardEnabled,
		You:            playerView(state.HumanPlayer(), false),
		Opponent:       playerView(state.AIPlayer(), state.Phase != game.PhaseEnded),
	}
	if lr := state.LastRound; lr != nil {
		sv.LastRound = &RoundView{
			Round:        lr.Round,
			YourCard:     lr.HumanCard.String(),
			OpponentCard: lr.AICard.String(),
			Result:       lr.Text,
		}
	}
	if state.Pending != nil {
		sv.Quiz = NewQuizView(*state.Pending)
	}
	return sv
}

// NewQuizView builds the "quiz" payload for an open gate.
func NewQuizView(gate game.Gate) *QuizView {
	return &QuizView{
		GateID:      gate.ID,
		Prompt:      gate.Prompt,
		Reward:      gate.Reward.Description(),
		RewardKind:  gate.Reward.Kind.String(),
		Beneficiary: log.PlayerName(gate.Beneficiary),
		FavorAI:     gate.FavorAI,
		Question:    gate.Question.Text,
		Choices:     append([]string(nil), gate.Question.Choices...),
	}
}

// NewQuizResultView reports the answer against gate.
func NewQuizResultView(gate game.Gate, correct bool) *QuizResultView {
	return &QuizResultView{
		Correct:       correct,
		CorrectChoice: gate.Question.CorrectChoice(),
		Explanation:   gate.Question.Explanation,
		Granted:       gate.Grants(correct),
		Feedback:      gate.Feedback(correct),
	}
}

// NewFinalView builds the "game_over" payload.
func NewFinalView(state *game.GameState) *FinalView {
	f := state.Final
	if f == nil {
		return nil
	}
	return &FinalView{
		Winner:  log.PlayerName(f.Winner),
		Message: f.Message,
		You:     scoreView(f.Human),
		AI:      scoreView(f.AI),
		AIHand:  CardViews(state.AIPlayer().Hand),
	}
}

func scoreView(s game.Score) ScoreView {
	return ScoreView{
		Raw:        s.Raw,
		Multiplier: s.Multiplier.String(),
		Final:      s.Final.String(),
	}
}

// NewEventView converts a logged event for the wire.
func NewEventView(event log.GameEvent) *EventView {
	return &EventView{
		Seq:     event.Seq,
		Round:   event.Round,
		Phase:   event.Phase,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	}
}
