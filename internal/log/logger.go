package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Drain returns the buffered events and clears the buffer. Sequence numbers
// keep increasing across drains.
func (l *MemoryLogger) Drain() []GameEvent {
	events := l.events
	l.events = nil
	return events
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// PlayerName returns "You" or "AI" for display.
func PlayerName(p int) string {
	switch p {
	case 0:
		return "You"
	case 1:
		return "AI"
	default:
		return "-"
	}
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 10 chars for alignment
	for len(phase) < 10 {
		phase += " "
	}
	return fmt.Sprintf("R%-2d %s| %s", e.Round, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewPhaseChangeEvent(round int, phase string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  NoPlayer,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewRoundEvent(round int, phase string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  NoPlayer,
		Type:    EventNewRound,
		Details: fmt.Sprintf("=== Round %d ===", round),
	}
}

func NewShuffleEvent(phase string, what string, count int) GameEvent {
	return GameEvent{
		Phase:   phase,
		Player:  NoPlayer,
		Type:    EventShuffle,
		Details: fmt.Sprintf("Shuffled %s (%d cards)", what, count),
	}
}

// NewDrawEvent builds a draw event. Hidden draws omit the card.
func NewDrawEvent(round int, phase string, player int, cardName string, hidden bool) GameEvent {
	e := GameEvent{
		Round:  round,
		Phase:  phase,
		Player: player,
		Type:   EventDraw,
	}
	if hidden {
		e.Details = fmt.Sprintf("%s draws a card", PlayerName(player))
		return e
	}
	e.Card = cardName
	e.Details = fmt.Sprintf("%s draws %s", PlayerName(player), cardName)
	return e
}

func NewDiscardEvent(round int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s", PlayerName(player), cardName),
	}
}

// NewRoundResultEvent records a comparison. winner is the winning seat or
// NoPlayer on a tie.
func NewRoundResultEvent(round int, phase string, winner int, humanCard, aiCard, text string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  winner,
		Type:    EventRoundResult,
		Details: fmt.Sprintf("%s vs %s: %s", humanCard, aiCard, text),
	}
}

func NewRewardOfferedEvent(round int, phase string, player int, reward string, favorAI bool) GameEvent {
	stake := "answer correctly to gain"
	if favorAI {
		stake = "answer wrong and AI gains"
	}
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventRewardOffered,
		Card:    reward,
		Details: fmt.Sprintf("Trial: %s [%s]", stake, reward),
	}
}

func NewRewardGrantedEvent(round int, phase string, player int, reward string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventRewardGranted,
		Card:    reward,
		Details: fmt.Sprintf("%s gains reward: %s", PlayerName(player), reward),
	}
}

func NewRewardDeniedEvent(round int, phase string, player int, reward string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventRewardDenied,
		Card:    reward,
		Details: fmt.Sprintf("%s does not gain reward: %s", PlayerName(player), reward),
	}
}

func NewNoRewardEvent(round int, phase string, player int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventNoReward,
		Details: fmt.Sprintf("No reward card is usable by %s", PlayerName(player)),
	}
}

func NewMultiplierChangeEvent(round int, phase string, player int, from, to string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventMultiplierChange,
		Details: fmt.Sprintf("%s multiplier: %s → %s", PlayerName(player), from, to),
	}
}

func NewForcedDiscardEvent(round int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventForcedDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s is forced to discard %s", PlayerName(player), cardName),
	}
}

func NewGameOverEvent(round int, phase string, winner int, message string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  winner,
		Type:    EventGameOver,
		Details: message,
	}
}

func NewResetEvent(round int, phase string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  NoPlayer,
		Type:    EventReset,
		Details: "Game reset",
	}
}
