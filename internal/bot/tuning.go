package bot

// Pick names a position in the AI's hand sorted by ascending value.
type Pick int

const (
	PickSmallest Pick = iota
	PickMiddle
	PickLargest
)

func (p Pick) String() string {
	switch p {
	case PickSmallest:
		return "smallest"
	case PickMiddle:
		return "middle"
	case PickLargest:
		return "largest"
	default:
		return "unknown"
	}
}

// Band selects Pick for every draw r < Upto not claimed by an earlier band.
type Band struct {
	Upto float64
	Pick Pick
}

// Tuning holds the thresholds and cumulative probability bands of the
// discard heuristic. Bands are scanned in order; the last band should reach 1.
type Tuning struct {
	LowBelow  int // opponent discard value strictly below this is "low"
	HighAbove int // opponent discard value strictly above this is "high"

	Low  []Band
	High []Band
	Mid  []Band
}

// DefaultTuning: answer a low card with the middle card, a high card with the
// smallest, and split evenly otherwise.
var DefaultTuning = Tuning{
	LowBelow:  5,
	HighAbove: 8,
	Low: []Band{
		{Upto: 0.70, Pick: PickMiddle},
		{Upto: 0.75, Pick: PickLargest},
		{Upto: 1.00, Pick: PickSmallest},
	},
	High: []Band{
		{Upto: 0.70, Pick: PickSmallest},
		{Upto: 0.75, Pick: PickLargest},
		{Upto: 1.00, Pick: PickMiddle},
	},
	Mid: []Band{
		{Upto: 0.33, Pick: PickSmallest},
		{Upto: 0.67, Pick: PickMiddle},
		{Upto: 1.00, Pick: PickLargest},
	},
}

// BandsFor returns the band table for an opponent discard value. With no
// known discard the mid table applies.
func (t Tuning) BandsFor(oppValue int, known bool) []Band {
	switch {
	case !known:
		return t.Mid
	case oppValue < t.LowBelow:
		return t.Low
	case oppValue > t.HighAbove:
		return t.High
	default:
		return t.Mid
	}
}

// PickFor maps a uniform draw r in [0,1) to a hand position.
func (t Tuning) PickFor(oppValue int, known bool, r float64) Pick {
	bands := t.BandsFor(oppValue, known)
	for _, b := range bands {
		if r < b.Upto {
			return b.Pick
		}
	}
	if len(bands) == 0 {
		return PickMiddle
	}
	return bands[len(bands)-1].Pick
}
