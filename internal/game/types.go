package game

import (
	"github.com/peterkuimelis/quizcards/internal/card"
	"github.com/peterkuimelis/quizcards/internal/quiz"
	"github.com/shopspring/decimal"
)

// --- Enums ---

type Phase int

const (
	PhaseInitial Phase = iota
	PhaseDrawing
	PhasePlaying
	PhaseComparing
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseDrawing:
		return "drawing"
	case PhasePlaying:
		return "playing"
	case PhaseComparing:
		return "comparing"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Seats. Players[Human] is the person, Players[AI] the computer opponent.
const (
	Human    = 0
	AI       = 1
	NoWinner = -1
)

const (
	InitialHandSize = 4
	DefaultMaxRound = 2
	MinDrawPile     = 2 // fewer cards than this left after a round ends the game
	MaxAddCardHand  = 4 // AddCard is only usable below this hand size
)

type Outcome int

const (
	OutcomeTie Outcome = iota
	OutcomeHumanWins
	OutcomeAIWins
)

// Text is the round-result line shown to the human.
func (o Outcome) Text() string {
	switch o {
	case OutcomeHumanWins:
		return "You win!"
	case OutcomeAIWins:
		return "You lose!"
	default:
		return "Tie!"
	}
}

// Winner returns the winning seat, or NoWinner on a tie.
func (o Outcome) Winner() int {
	switch o {
	case OutcomeHumanWins:
		return Human
	case OutcomeAIWins:
		return AI
	default:
		return NoWinner
	}
}

// RoundResult describes one comparison. Gate is nil when no reward card was
// usable by the beneficiary.
type RoundResult struct {
	Round     int
	HumanCard card.Card
	AICard    card.Card
	Outcome   Outcome
	Text      string
	Gate      *Gate
}

// Gate is a pending reward decision waiting on the quiz. FavorAI is true when
// a wrong answer hands Reward to the AI.
type Gate struct {
	ID          string
	Reward      RewardCard
	Beneficiary int
	FavorAI     bool
	Question    quiz.Question
	Prompt      string
}

// GateResult reports how a gate resolved.
type GateResult struct {
	GateID      string
	Correct     bool
	Granted     bool
	Reward      RewardCard
	Beneficiary int
	Feedback    string
}

// Score is one side's end-of-game tally.
type Score struct {
	Raw        int
	Multiplier decimal.Decimal
	Final      decimal.Decimal
}

// FinalResult is produced on entering the ended phase.
type FinalResult struct {
	Human   Score
	AI      Score
	Winner  int // Human, AI or NoWinner
	Message string
}
