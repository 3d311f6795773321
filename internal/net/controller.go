package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/peterkuimelis/quizcards/internal/game"
	"github.com/peterkuimelis/quizcards/internal/log"
)

// NetworkController implements game.Controller over a stream connection.
// The same controller serves every game played on the connection so the
// decoder's buffered input is never lost.
type NetworkController struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	mu   sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn) *NetworkController {
	return &NetworkController{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held. A cancelled ctx
// unblocks the read through the connection's read deadline.
func (nc *NetworkController) recv(ctx context.Context) (ClientMessage, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = nc.conn.SetReadDeadline(time.Now())
	})
	defer func() {
		if !stop() {
			_ = nc.conn.SetReadDeadline(time.Time{})
		}
	}()

	var msg ClientMessage
	if err := nc.dec.Decode(&msg); err != nil {
		if ctx.Err() != nil {
			return msg, ctx.Err()
		}
		return msg, err
	}
	return msg, nil
}

// recvOneOf reads until a message of one of the given types arrives. A reset
// request always wins.
func (nc *NetworkController) recvOneOf(ctx context.Context, types ...string) (ClientMessage, error) {
	for {
		msg, err := nc.recv(ctx)
		if err != nil {
			return msg, err
		}
		if msg.Type == MsgReset {
			return msg, game.ErrReset
		}
		for _, t := range types {
			if msg.Type == t {
				return msg, nil
			}
		}
		if err := nc.send(ServerMessage{Type: MsgError, Error: fmt.Sprintf("unexpected %q message", msg.Type)}); err != nil {
			return msg, err
		}
	}
}

// ChooseDiscard implements game.Controller.
func (nc *NetworkController) ChooseDiscard(ctx context.Context, state *game.GameState) (int, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:  MsgChooseDiscard,
		State: BuildStateView(state),
	}
	if err := nc.send(msg); err != nil {
		return 0, fmt.Errorf("send choose_discard: %w", err)
	}

	resp, err := nc.recvOneOf(ctx, MsgDiscard)
	if err != nil {
		return 0, fmt.Errorf("recv discard: %w", err)
	}
	return resp.Index, nil
}

// ResolveQuiz implements game.Controller. The client answers with a choice
// index; the result and explanation are sent back before returning.
func (nc *NetworkController) ResolveQuiz(ctx context.Context, state *game.GameState, gate game.Gate) (bool, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	if err := nc.send(ServerMessage{Type: MsgQuiz, Quiz: NewQuizView(gate)}); err != nil {
		return false, fmt.Errorf("send quiz: %w", err)
	}

	resp, err := nc.recvOneOf(ctx, MsgAnswer)
	if err != nil {
		return false, fmt.Errorf("recv answer: %w", err)
	}

	correct := gate.Question.IsCorrect(resp.Choice)
	if err := nc.send(ServerMessage{Type: MsgQuizResult, QuizResult: NewQuizResultView(gate, correct)}); err != nil {
		return correct, fmt.Errorf("send quiz_result: %w", err)
	}
	return correct, nil
}

// RenderHand implements game.Observer.
func (nc *NetworkController) RenderHand(ctx context.Context, p *game.Player, hidden bool) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgHand, Hand: NewHandView(p, hidden)})
}

// Notify implements game.Observer.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgNotify, Event: NewEventView(event)})
}

// SendGameOver sends a game_over message to the client.
func (nc *NetworkController) SendGameOver(state *game.GameState) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgGameOver, Final: NewFinalView(state), State: BuildStateView(state)})
}

// AwaitPlayAgain blocks after game_over until the client asks for another
// game (true) or quits (false).
func (nc *NetworkController) AwaitPlayAgain(ctx context.Context) (bool, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg, err := nc.recvOneOf(ctx, MsgNewGame, MsgQuit)
	if errors.Is(err, game.ErrReset) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return msg.Type == MsgNewGame, nil
}
