package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/peterkuimelis/quizcards/internal/card"
	"github.com/peterkuimelis/quizcards/internal/log"
	"github.com/shopspring/decimal"
)

type RewardKind int

const (
	RewardRatePlus2 RewardKind = iota
	RewardAddCard
	RewardForceDiscard
	RewardTradeDiscard
	RewardHalveOpponentRate
)

// RewardKinds lists every kind in deck construction order.
var RewardKinds = []RewardKind{
	RewardRatePlus2,
	RewardAddCard,
	RewardForceDiscard,
	RewardTradeDiscard,
	RewardHalveOpponentRate,
}

func (k RewardKind) String() string {
	switch k {
	case RewardRatePlus2:
		return "RatePlus2"
	case RewardAddCard:
		return "AddCard"
	case RewardForceDiscard:
		return "ForceDiscard"
	case RewardTradeDiscard:
		return "TradeDiscard"
	case RewardHalveOpponentRate:
		return "HalveOpponentRate"
	default:
		return "Unknown"
	}
}

// RewardCard is one card of the reward deck. ID is unique within a deck.
type RewardCard struct {
	ID   int
	Kind RewardKind
}

func (rc RewardCard) Description() string {
	return rc.Kind.Description()
}

func (rc RewardCard) String() string {
	return fmt.Sprintf("#%d %s", rc.ID, rc.Kind.Description())
}

// rewardRule is one row of the reward dispatch table. canUse is evaluated
// against the beneficiary seat; apply mutates through the Game so hand and
// multiplier changes are logged and rendered.
type rewardRule struct {
	description string
	count       int
	canUse      func(gs *GameState, seat int) bool
	apply       func(ctx context.Context, g *Game, seat int) error
}

var rewardRules = map[RewardKind]rewardRule{
	RewardRatePlus2: {
		description: "Multiplier +2",
		count:       5,
		canUse:      func(*GameState, int) bool { return true },
		apply:       applyRatePlus2,
	},
	RewardAddCard: {
		description: "Draw one more card (hand may not exceed 4)",
		count:       2,
		canUse: func(gs *GameState, seat int) bool {
			return gs.Players[seat].HandCount() < MaxAddCardHand
		},
		apply: applyAddCard,
	},
	RewardForceDiscard: {
		description: "Opponent discards their lowest card",
		count:       2,
		canUse: func(gs *GameState, seat int) bool {
			return gs.Players[gs.Opponent(seat)].HandCount() > 0
		},
		apply: applyForceDiscard,
	},
	RewardTradeDiscard: {
		description: "Add half of your last discard to your multiplier",
		count:       2,
		canUse: func(gs *GameState, seat int) bool {
			return gs.Players[seat].HandCount() > 0
		},
		apply: applyTradeDiscard,
	},
	RewardHalveOpponentRate: {
		description: "Halve the opponent's multiplier",
		count:       2,
		canUse:      func(*GameState, int) bool { return true },
		apply:       applyHalveOpponentRate,
	},
}

func (k RewardKind) Description() string {
	if r, ok := rewardRules[k]; ok {
		return r.description
	}
	return "Unknown reward"
}

// Count is how many copies of the kind a fresh deck holds.
func (k RewardKind) Count() int {
	return rewardRules[k].count
}

// OrderedRewardDeck builds the 13-card reward deck in kind order.
func OrderedRewardDeck() []RewardCard {
	var deck []RewardCard
	id := 1
	for _, k := range RewardKinds {
		for i := 0; i < k.Count(); i++ {
			deck = append(deck, RewardCard{ID: id, Kind: k})
			id++
		}
	}
	return deck
}

// NewRewardDeck returns a shuffled reward deck.
func NewRewardDeck(r *rand.Rand) []RewardCard {
	deck := OrderedRewardDeck()
	card.Shuffle(r, deck)
	return deck
}

// CanUse reports whether rc would be usable by seat right now.
func (g *Game) CanUse(seat int, rc RewardCard) bool {
	rule, ok := rewardRules[rc.Kind]
	if !ok {
		return false
	}
	return rule.canUse(g.State, seat)
}

// EligibleReward returns the first card in the reward deck usable by seat.
func (g *Game) EligibleReward(seat int) (int, RewardCard, bool) {
	for i, rc := range g.State.Rewards {
		if g.CanUse(seat, rc) {
			return i, rc, true
		}
	}
	return -1, RewardCard{}, false
}

// ApplyReward runs rc's effect for seat. It does not touch the reward deck.
func (g *Game) ApplyReward(ctx context.Context, seat int, rc RewardCard) error {
	rule, ok := rewardRules[rc.Kind]
	if !ok {
		return fmt.Errorf("unknown reward kind %d", rc.Kind)
	}
	return rule.apply(ctx, g, seat)
}

// consumeReward removes the card with the given ID from the reward deck.
func (g *Game) consumeReward(id int) bool {
	deck := g.State.Rewards
	for i, rc := range deck {
		if rc.ID == id {
			g.State.Rewards = append(deck[:i], deck[i+1:]...)
			return true
		}
	}
	return false
}

// --- Effects ---

func applyRatePlus2(ctx context.Context, g *Game, seat int) error {
	p := g.State.Players[seat]
	g.setMultiplier(ctx, seat, p.Multiplier.Add(decimal.NewFromInt(2)))
	return nil
}

func applyAddCard(ctx context.Context, g *Game, seat int) error {
	g.drawOne(ctx, seat)
	return nil
}

func applyForceDiscard(ctx context.Context, g *Game, seat int) error {
	opp := g.State.Opponent(seat)
	p := g.State.Players[opp]
	low, idx, ok := p.LowestCard()
	if !ok {
		return nil
	}
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	// forced discards are public, even from the AI hand
	g.log(ctx, log.NewForcedDiscardEvent(g.State.Round, g.State.Phase.String(), opp, low.String()))
	g.render(ctx, opp)
	return nil
}

func applyTradeDiscard(ctx context.Context, g *Game, seat int) error {
	p := g.State.Players[seat]
	if p.LastDiscard == nil {
		return ErrMissingLastDiscard
	}
	half := decimal.NewFromInt(int64(p.LastDiscard.Value())).Mul(decimal.New(5, -1))
	g.setMultiplier(ctx, seat, p.Multiplier.Add(half))
	return nil
}

// applyHalveOpponentRate rounds to one decimal place: round(m*5)/10.
func applyHalveOpponentRate(ctx context.Context, g *Game, seat int) error {
	opp := g.State.Opponent(seat)
	m := g.State.Players[opp].Multiplier
	g.setMultiplier(ctx, opp, m.Mul(decimal.NewFromInt(5)).Round(0).Div(decimal.NewFromInt(10)))
	return nil
}
