package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/peterkuimelis/quizcards/internal/bot"
	"github.com/peterkuimelis/quizcards/internal/card"
	"github.com/peterkuimelis/quizcards/internal/log"
	"github.com/peterkuimelis/quizcards/internal/quiz"
	"github.com/shopspring/decimal"
)

// Observer receives every logged event and every hand change. Hidden is true
// for the AI hand until the game ends.
type Observer interface {
	RenderHand(ctx context.Context, p *Player, hidden bool) error
	Notify(ctx context.Context, event log.GameEvent) error
}

const (
	humanGatePrompt = "If you pass the trial, you gain:"
	aiGatePrompt    = "If you fail the trial, your opponent gains:"
)

// Config holds configuration for creating a new game.
type Config struct {
	Rand      *rand.Rand   // shared source for deck, rewards, AI and questions (nil: seeded from Seed)
	Seed      int64        // RNG seed (0 for random)
	Deck      []card.Card  // preset draw pile, top is last (nil: fresh shuffled deck)
	Rewards   []RewardCard // preset reward deck (nil: fresh shuffled deck)
	Strategy  bot.Strategy
	Questions quiz.Provider
	Logger    log.EventLogger
	MaxRound  int // 0 = DefaultMaxRound
}

// Game is the card game state machine. It never blocks: the human's discard
// and quiz outcome are fed in through Discard and ResolveGate.
type Game struct {
	State     *GameState
	Logger    log.EventLogger
	observers []Observer
	strategy  bot.Strategy
	questions quiz.Provider
}

// New creates a game in the initial phase.
func New(cfg Config) *Game {
	rng := cfg.Rand
	if rng == nil {
		rng = card.NewRand(cfg.Seed)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	var deck []card.Card
	shuffledDeck := cfg.Deck == nil
	if shuffledDeck {
		deck = card.NewDeck(rng)
	} else {
		deck = append([]card.Card(nil), cfg.Deck...)
	}
	var rewards []RewardCard
	shuffledRewards := cfg.Rewards == nil
	if shuffledRewards {
		rewards = NewRewardDeck(rng)
	} else {
		rewards = append([]RewardCard(nil), cfg.Rewards...)
	}

	strategy := cfg.Strategy
	if strategy == nil {
		strategy = bot.NewTiered(rng)
	}
	questions := cfg.Questions
	if questions == nil {
		questions = quiz.NewBank(quiz.Default(), rng)
	}

	g := &Game{
		State:     NewGameState(deck, rewards, cfg.MaxRound),
		Logger:    logger,
		strategy:  strategy,
		questions: questions,
	}
	phase := g.State.Phase.String()
	if shuffledDeck {
		logger.Log(log.NewShuffleEvent(phase, "draw pile", len(deck)))
	}
	if shuffledRewards {
		logger.Log(log.NewShuffleEvent(phase, "reward deck", len(rewards)))
	}
	return g
}

// ID returns the game's unique identifier.
func (g *Game) ID() string {
	return g.State.ID
}

// AddObserver registers o for events and hand renders.
func (g *Game) AddObserver(o Observer) {
	g.observers = append(g.observers, o)
}

// Start deals the opening hands and begins round 1.
func (g *Game) Start(ctx context.Context) error {
	gs := g.State
	if gs.Phase != PhaseInitial {
		return fmt.Errorf("start: %w (phase %s)", ErrWrongPhase, gs.Phase)
	}

	g.setPhase(ctx, PhaseDrawing)
	for _, seat := range []int{Human, AI} {
		for i := 0; i < InitialHandSize; i++ {
			g.drawOne(ctx, seat)
		}
	}

	g.setPhase(ctx, PhasePlaying)
	g.beginRound(ctx)
	return nil
}

// Discard plays the human card at handIndex, lets the AI answer, compares
// the two and opens a reward gate when a reward card is usable. When no gate
// opens the game advances immediately.
func (g *Game) Discard(ctx context.Context, handIndex int) (*RoundResult, error) {
	gs := g.State
	if err := g.checkDiscard(); err != nil {
		return nil, err
	}
	human := gs.HumanPlayer()
	if handIndex < 0 || handIndex >= human.HandCount() {
		return nil, fmt.Errorf("%w: index %d, hand has %d cards", ErrInvalidSelection, handIndex, human.HandCount())
	}
	return g.discard(ctx, human.Hand[handIndex])
}

// DiscardCard is Discard by card identity.
func (g *Game) DiscardCard(ctx context.Context, c card.Card) (*RoundResult, error) {
	if err := g.checkDiscard(); err != nil {
		return nil, err
	}
	if !g.State.HumanPlayer().Holds(c) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSelection, c)
	}
	return g.discard(ctx, c)
}

func (g *Game) checkDiscard() error {
	gs := g.State
	if !gs.DiscardEnabled || gs.Phase != PhasePlaying {
		return fmt.Errorf("%w (phase %s)", ErrDiscardDisabled, gs.Phase)
	}
	return nil
}

func (g *Game) discard(ctx context.Context, hc card.Card) (*RoundResult, error) {
	gs := g.State
	human, ai := gs.HumanPlayer(), gs.AIPlayer()

	// The AI answers the human's card for this round. Nothing is mutated
	// until it has chosen.
	played := hc
	ac, ok := g.strategy.ChooseDiscard(ai.Hand, &played)
	if !ok || !ai.Holds(ac) {
		return nil, fmt.Errorf("ai discard: %w", ErrEmptyHand)
	}

	gs.DiscardEnabled = false
	human.Discard(hc)
	human.LastDiscard = &played
	g.log(ctx, log.NewDiscardEvent(gs.Round, gs.Phase.String(), Human, hc.String()))
	g.render(ctx, Human)

	ai.Discard(ac)
	aiPlayed := ac
	ai.LastDiscard = &aiPlayed
	g.log(ctx, log.NewDiscardEvent(gs.Round, gs.Phase.String(), AI, ac.String()))
	g.render(ctx, AI)

	g.setPhase(ctx, PhaseComparing)
	result := &RoundResult{
		Round:     gs.Round,
		HumanCard: hc,
		AICard:    ac,
	}
	switch card.Compare(hc, ac) {
	case 1:
		result.Outcome = OutcomeHumanWins
		human.IncrementScore()
	case -1:
		result.Outcome = OutcomeAIWins
		ai.IncrementScore()
	default:
		result.Outcome = OutcomeTie
	}
	result.Text = result.Outcome.Text()
	gs.LastRound = result
	g.log(ctx, log.NewRoundResultEvent(gs.Round, gs.Phase.String(), result.Outcome.Winner(), hc.String(), ac.String(), result.Text))

	result.Gate = g.openGate(ctx, result.Outcome)
	if result.Gate == nil {
		g.continueGame(ctx)
	}
	return result, nil
}

// openGate picks the reward for the round. A human win offers the reward to
// the human on a correct answer; an AI win or a tie hands it to the AI on a
// wrong answer.
func (g *Game) openGate(ctx context.Context, outcome Outcome) *Gate {
	gs := g.State
	beneficiary := AI
	if outcome == OutcomeHumanWins {
		beneficiary = Human
	}
	_, rc, ok := g.EligibleReward(beneficiary)
	if !ok {
		g.log(ctx, log.NewNoRewardEvent(gs.Round, gs.Phase.String(), beneficiary))
		return nil
	}

	q := g.questions.Next()
	gate := &Gate{
		ID:          uuid.NewString(),
		Reward:      rc,
		Beneficiary: beneficiary,
		FavorAI:     beneficiary == AI,
		Question:    q,
		Prompt:      humanGatePrompt,
	}
	if gate.FavorAI {
		gate.Prompt = aiGatePrompt
	}
	gs.Question = &q
	gs.Pending = gate
	g.log(ctx, log.NewRewardOfferedEvent(gs.Round, gs.Phase.String(), beneficiary, rc.Description(), gate.FavorAI))
	return gate
}

// ResolveGate feeds the quiz outcome for the pending gate. The reward is
// granted when correct differs from the gate's FavorAI polarity. Stale or
// unknown gate IDs are rejected without side effects.
func (g *Game) ResolveGate(ctx context.Context, gateID string, correct bool) (*GateResult, error) {
	gs := g.State
	gate := gs.Pending
	if gate == nil || gate.ID != gateID {
		return nil, fmt.Errorf("%w: %q", ErrStaleGate, gateID)
	}
	gs.Pending = nil
	gs.Question = nil

	res := &GateResult{
		GateID:      gate.ID,
		Correct:     correct,
		Granted:     gate.Grants(correct),
		Reward:      gate.Reward,
		Beneficiary: gate.Beneficiary,
		Feedback:    gate.Feedback(correct),
	}

	if res.Granted {
		g.consumeReward(gate.Reward.ID)
		g.log(ctx, log.NewRewardGrantedEvent(gs.Round, gs.Phase.String(), gate.Beneficiary, gate.Reward.Description()))
		if err := g.ApplyReward(ctx, gate.Beneficiary, gate.Reward); err != nil {
			g.continueGame(ctx)
			return res, fmt.Errorf("apply %s: %w", gate.Reward.Kind, err)
		}
	} else {
		g.log(ctx, log.NewRewardDeniedEvent(gs.Round, gs.Phase.String(), gate.Beneficiary, gate.Reward.Description()))
	}

	g.continueGame(ctx)
	return res, nil
}

// Grants reports whether an answer with the given correctness hands out the
// reward: a correct answer on a human gate, a wrong one on an AI gate.
func (gate Gate) Grants(correct bool) bool {
	return correct != gate.FavorAI
}

// Feedback is the line shown to the human once the gate resolves.
func (gate Gate) Feedback(correct bool) string {
	granted := gate.Grants(correct)
	switch {
	case gate.FavorAI && granted:
		return "Your opponent gains: " + gate.Reward.Description()
	case gate.FavorAI:
		return "Your opponent gains nothing."
	case granted:
		return "You gained: " + gate.Reward.Description()
	default:
		return "You gain nothing."
	}
}

// Abandon marks the game as discarded by a reset. Any later Discard or
// ResolveGate on it is rejected.
func (g *Game) Abandon(ctx context.Context) {
	gs := g.State
	gs.Pending = nil
	gs.Question = nil
	gs.DiscardEnabled = false
	g.log(ctx, log.NewResetEvent(gs.Round, gs.Phase.String()))
}

// Result returns the final result, or nil before the game has ended.
func (g *Game) Result() *FinalResult {
	return g.State.Final
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.State.Phase == PhaseEnded
}

// --- Round flow ---

func (g *Game) beginRound(ctx context.Context) {
	gs := g.State
	gs.Round++
	if gs.Round > gs.MaxRound {
		g.end(ctx)
		return
	}
	g.log(ctx, log.NewRoundEvent(gs.Round, gs.Phase.String()))
	g.drawOne(ctx, Human)
	g.drawOne(ctx, AI)
	gs.DiscardEnabled = true
}

// continueGame ends the game when the draw pile cannot feed another round or
// the human has nothing left to play, and otherwise starts the next round.
func (g *Game) continueGame(ctx context.Context) {
	gs := g.State
	g.setPhase(ctx, PhasePlaying)
	if gs.DrawCount() < MinDrawPile || gs.HumanPlayer().HandCount() == 0 {
		g.end(ctx)
		return
	}
	g.beginRound(ctx)
}

func (g *Game) end(ctx context.Context) {
	gs := g.State
	gs.DiscardEnabled = false
	gs.Pending = nil
	gs.Question = nil
	g.setPhase(ctx, PhaseEnded)

	final := &FinalResult{
		Human: scoreOf(gs.HumanPlayer()),
		AI:    scoreOf(gs.AIPlayer()),
	}
	switch final.Human.Final.Cmp(final.AI.Final) {
	case 1:
		final.Winner = Human
	case -1:
		final.Winner = AI
	default:
		final.Winner = NoWinner
	}
	final.Message = finalMessage(final)
	gs.Final = final

	g.log(ctx, log.NewGameOverEvent(gs.Round, gs.Phase.String(), final.Winner, final.Message))
	// Reveal both hands.
	g.render(ctx, Human)
	g.render(ctx, AI)
}

func scoreOf(p *Player) Score {
	return Score{
		Raw:        p.HandValue(),
		Multiplier: p.Multiplier,
		Final:      p.FinalScore(),
	}
}

func finalMessage(f *FinalResult) string {
	var head string
	switch f.Winner {
	case Human:
		head = "Game over, you win!"
	case AI:
		head = "Game over, you lose."
	default:
		head = "Game over, it's a tie."
	}
	return fmt.Sprintf("%s Your hand totals %d with multiplier %s for a final score of %s. The AI scored %d x %s = %s.",
		head, f.Human.Raw, f.Human.Multiplier, f.Human.Final, f.AI.Raw, f.AI.Multiplier, f.AI.Final)
}

// --- Mutation helpers ---

func (g *Game) drawOne(ctx context.Context, seat int) {
	gs := g.State
	p := gs.Players[seat]
	drawn := p.Draw(&gs.DrawPile, 1)
	if len(drawn) == 0 {
		return
	}
	g.log(ctx, log.NewDrawEvent(gs.Round, gs.Phase.String(), seat, drawn[0].String(), seat == AI))
	g.render(ctx, seat)
}

func (g *Game) setMultiplier(ctx context.Context, seat int, m decimal.Decimal) {
	gs := g.State
	p := gs.Players[seat]
	from := p.Multiplier
	p.Multiplier = m
	g.log(ctx, log.NewMultiplierChangeEvent(gs.Round, gs.Phase.String(), seat, from.String(), m.String()))
}

func (g *Game) setPhase(ctx context.Context, p Phase) {
	if g.State.Phase == p {
		return
	}
	g.State.Phase = p
	g.log(ctx, log.NewPhaseChangeEvent(g.State.Round, p.String()))
}

// render pushes a hand to every observer. The AI hand stays hidden until the
// game has ended.
func (g *Game) render(ctx context.Context, seat int) {
	p := g.State.Players[seat]
	hidden := seat == AI && g.State.Phase != PhaseEnded
	for _, o := range g.observers {
		_ = o.RenderHand(ctx, p, hidden)
	}
}

func (g *Game) log(ctx context.Context, event log.GameEvent) {
	g.Logger.Log(event)
	// Notify observers (ignore errors for notifications)
	for _, o := range g.observers {
		_ = o.Notify(ctx, event)
	}
}
