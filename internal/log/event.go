package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewRound
	EventShuffle
	EventDraw
	EventDiscard
	EventRoundResult
	EventRewardOffered
	EventRewardGranted
	EventRewardDenied
	EventNoReward
	EventMultiplierChange
	EventForcedDiscard
	EventGameOver
	EventReset
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewRound:
		return "NewRound"
	case EventShuffle:
		return "Shuffle"
	case EventDraw:
		return "Draw"
	case EventDiscard:
		return "Discard"
	case EventRoundResult:
		return "RoundResult"
	case EventRewardOffered:
		return "RewardOffered"
	case EventRewardGranted:
		return "RewardGranted"
	case EventRewardDenied:
		return "RewardDenied"
	case EventNoReward:
		return "NoReward"
	case EventMultiplierChange:
		return "MultiplierChange"
	case EventForcedDiscard:
		return "ForcedDiscard"
	case EventGameOver:
		return "GameOver"
	case EventReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// NoPlayer marks events that belong to neither seat.
const NoPlayer = -1

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // current round (0 before the first round)
	Phase   string    // current phase name (e.g. "playing")
	Player  int       // acting seat (0 human, 1 AI) or NoPlayer
	Type    EventType // event type
	Card    string    // card or reward description (if applicable)
	Details string    // human-readable detail string
}
