package game

import "errors"

var (
	// ErrInvalidSelection: the chosen card is not in the human's hand. Nothing changed; re-prompt.
	ErrInvalidSelection = errors.New("selected card is not in hand")

	// ErrDiscardDisabled: a discard arrived while no discard is expected.
	ErrDiscardDisabled = errors.New("discard is not enabled")

	// ErrWrongPhase: the operation is not valid in the current phase.
	ErrWrongPhase = errors.New("operation not valid in current phase")

	// ErrEmptyHand: the AI has nothing to discard.
	ErrEmptyHand = errors.New("hand is empty")

	// ErrStaleGate: the gate ID does not match the pending gate of this game.
	ErrStaleGate = errors.New("stale or unknown reward gate")

	// ErrMissingLastDiscard: a discard-based reward was applied before any discard.
	ErrMissingLastDiscard = errors.New("player has no last discard")

	// ErrReset is returned by a Controller when the human asked for a new game.
	ErrReset = errors.New("game reset requested")
)
