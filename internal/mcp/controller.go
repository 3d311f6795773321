package mcp

import (
	"context"

	"github.com/peterkuimelis/quizcards/internal/game"
	"github.com/peterkuimelis/quizcards/internal/log"
	"github.com/peterkuimelis/quizcards/internal/net"
)

// MCPObserver implements game.Observer by buffering what a terminal player
// would have seen, so each tool call can return it in one response.
type MCPObserver struct {
	session *GameSession
}

// NewMCPObserver creates an observer feeding the given session.
func NewMCPObserver(session *GameSession) *MCPObserver {
	return &MCPObserver{session: session}
}

// RenderHand implements game.Observer. Only the latest view of each hand is
// kept.
func (o *MCPObserver) RenderHand(ctx context.Context, p *game.Player, hidden bool) error {
	o.session.setHand(net.NewHandView(p, hidden))
	return nil
}

// Notify implements game.Observer.
func (o *MCPObserver) Notify(ctx context.Context, event log.GameEvent) error {
	if event.Type == log.EventPhaseChange {
		return nil
	}
	o.session.appendEvent(*net.NewEventView(event))
	return nil
}
