package net

// Message types for the JSON protocol over TCP and WebSocket.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "hand"
	Hand *HandView `json:"hand,omitempty"`

	// For "choose_discard"
	State *StateView `json:"state,omitempty"`

	// For "quiz"
	Quiz *QuizView `json:"quiz,omitempty"`

	// For "quiz_result"
	QuizResult *QuizResultView `json:"quiz_result,omitempty"`

	// For "game_over"
	Final *FinalView `json:"final,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

const (
	MsgNotify        = "notify"
	MsgHand          = "hand"
	MsgChooseDiscard = "choose_discard"
	MsgQuiz          = "quiz"
	MsgQuizResult    = "quiz_result"
	MsgGameOver      = "game_over"
	MsgError         = "error"
)

// EventView is a simplified game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Round   int    `json:"round"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// CardView describes one playing card.
type CardView struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`    // "10♠"
	Display string `json:"display"` // "10 of Spades"
	Suit    string `json:"suit"`
	Rank    string `json:"rank"`
	Value   int    `json:"value"`
}

// HandView is one player's hand. Hidden hands carry only the count.
type HandView struct {
	Player string     `json:"player"`
	Count  int        `json:"count"`
	Hidden bool       `json:"hidden,omitempty"`
	Cards  []CardView `json:"cards,omitempty"`
}

// PlayerView is one side of the table.
type PlayerView struct {
	Name        string     `json:"name"`
	HandCount   int        `json:"hand_count"`
	Hand        []CardView `json:"hand,omitempty"` // omitted for the hidden AI hand
	Score       int        `json:"score"`
	Multiplier  string     `json:"multiplier"`
	LastDiscard string     `json:"last_discard,omitempty"`
}

// RoundView is the last comparison.
type RoundView struct {
	Round        int    `json:"round"`
	YourCard     string `json:"your_card"`
	OpponentCard string `json:"opponent_card"`
	Result       string `json:"result"`
}

// StateView is the game state from the human's perspective.
type StateView struct {
	GameID         string     `json:"game_id"`
	Round          int        `json:"round"`
	MaxRound       int        `json:"max_round"`
	Phase          string     `json:"phase"`
	DrawCount      int        `json:"draw_count"`
	RewardCount    int        `json:"reward_count"`
	DiscardEnabled bool       `json:"discard_enabled"`
	You            PlayerView `json:"you"`
	Opponent       PlayerView `json:"opponent"`
	LastRound      *RoundView `json:"last_round,omitempty"`
	Quiz           *QuizView  `json:"quiz,omitempty"`
}

// QuizView is an open reward gate.
type QuizView struct {
	GateID      string   `json:"gate_id"`
	Prompt      string   `json:"prompt"`
	Reward      string   `json:"reward"`
	RewardKind  string   `json:"reward_kind"`
	Beneficiary string   `json:"beneficiary"`
	FavorAI     bool     `json:"favor_ai"`
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
}

// QuizResultView reports the answer and what it did to the reward.
type QuizResultView struct {
	Correct       bool   `json:"correct"`
	CorrectChoice string `json:"correct_choice"`
	Explanation   string `json:"explanation,omitempty"`
	Granted       bool   `json:"granted"`
	Feedback      string `json:"feedback"`
}

// ScoreView is one side's final tally. Decimals are sent as strings.
type ScoreView struct {
	Raw        int    `json:"raw"`
	Multiplier string `json:"multiplier"`
	Final      string `json:"final"`
}

// FinalView is sent with "game_over". The AI hand is revealed.
type FinalView struct {
	Winner  string     `json:"winner"` // "You", "AI" or "-" on a tie
	Message string     `json:"message"`
	You     ScoreView  `json:"you"`
	AI      ScoreView  `json:"ai"`
	AIHand  []CardView `json:"ai_hand"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "discard": index into the current hand
	Index int `json:"index,omitempty"`

	// For "answer": index into the quiz choices
	Choice int `json:"choice,omitempty"`
}

const (
	MsgDiscard = "discard"
	MsgAnswer  = "answer"
	MsgReset   = "reset"    // abandon the current game and deal a new one
	MsgNewGame = "new_game" // play again after game_over
	MsgQuit    = "quit"
)
