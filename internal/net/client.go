package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// errQuit ends the REPL without an error.
var errQuit = errors.New("quit")

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn   net.Conn
	in     *bufio.Reader
	out    io.Writer
	gameID string
}

func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// Connect connects to a server and runs the REPL.
func Connect(ctx context.Context, addr string, in io.Reader, out io.Writer) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	fmt.Fprintln(out, "Connected! Dealing...")
	return NewClient(conn, in, out).RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively until the
// player quits or the server closes the connection.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			if disconnected(err) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		reply, err := c.handle(msg)
		if errors.Is(err, errQuit) {
			if reply != nil {
				_ = enc.Encode(reply)
			}
			return nil
		}
		if err != nil {
			return err
		}
		if reply != nil {
			if err := enc.Encode(reply); err != nil {
				return fmt.Errorf("send %s: %w", reply.Type, err)
			}
		}
	}
}

// handle renders one server message and returns the reply to send, if any.
func (c *Client) handle(msg ServerMessage) (*ClientMessage, error) {
	switch msg.Type {
	case MsgNotify:
		c.renderEvent(msg.Event)

	case MsgHand:
		c.renderHand(msg.Hand)

	case MsgChooseDiscard:
		c.renderState(msg.State)
		n := 0
		if msg.State != nil {
			n = msg.State.You.HandCount
		}
		fmt.Fprintf(c.out, "Discard which card? (1-%d, r = new game, q = quit)\n", n)
		line, err := c.readLine()
		for err == nil {
			switch line {
			case "q", "quit":
				return nil, errQuit
			case "r", "reset":
				return &ClientMessage{Type: MsgReset}, nil
			}
			if idx, ok := parseIndex(line, n); ok {
				return &ClientMessage{Type: MsgDiscard, Index: idx}, nil
			}
			fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", n)
			line, err = c.readLine()
		}
		return nil, errQuit

	case MsgQuiz:
		if msg.Quiz == nil {
			return nil, nil
		}
		c.renderQuiz(msg.Quiz)
		n := len(msg.Quiz.Choices)
		for {
			line, err := c.readLine()
			if err != nil {
				return nil, errQuit
			}
			if idx, ok := parseIndex(line, n); ok {
				return &ClientMessage{Type: MsgAnswer, Choice: idx}, nil
			}
			fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", n)
		}

	case MsgQuizResult:
		c.renderQuizResult(msg.QuizResult)

	case MsgGameOver:
		c.renderFinal(msg.Final)
		fmt.Fprint(c.out, "Play again? (y/n): ")
		for {
			line, err := c.readLine()
			if err != nil {
				return &ClientMessage{Type: MsgQuit}, errQuit
			}
			switch strings.ToLower(line) {
			case "y", "yes":
				return &ClientMessage{Type: MsgNewGame}, nil
			case "n", "no":
				return &ClientMessage{Type: MsgQuit}, errQuit
			}
			fmt.Fprint(c.out, "Enter y or n: ")
		}

	case MsgError:
		fmt.Fprintf(c.out, "Server: %s\n", msg.Error)
	}
	return nil, nil
}

func (c *Client) readLine() (string, error) {
	fmt.Fprint(c.out, "> ")
	line, err := c.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

// parseIndex turns a 1-based answer into a 0-based index.
func parseIndex(line string, count int) (int, bool) {
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > count {
		return 0, false
	}
	return n - 1, true
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil || ev.Type == "PhaseChange" {
		return
	}
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 10 {
		phase += " "
	}
	fmt.Fprintf(c.out, "R%-2d %s| %s\n", ev.Round, phase, ev.Details)
}

func (c *Client) renderHand(hv *HandView) {
	if hv == nil || hv.Player == "You" {
		// the human hand is shown with each discard prompt
		return
	}
	if hv.Hidden {
		return
	}
	fmt.Fprintf(c.out, "AI hand: %s\n", joinCards(hv.Cards, false))
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	if sv.GameID != c.gameID {
		c.gameID = sv.GameID
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "═══════════════ NEW GAME ═══════════════")
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")
	opp := sv.Opponent
	fmt.Fprintf(c.out, "║  AI     Hand: %d  Wins: %d  Multiplier: x%s\n", opp.HandCount, opp.Score, opp.Multiplier)
	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")
	you := sv.You
	fmt.Fprintf(c.out, "║  YOU    Hand: %d  Wins: %d  Multiplier: x%s\n", you.HandCount, you.Score, you.Multiplier)
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")
	fmt.Fprintf(c.out, "Round %d/%d | Draw pile: %d | Rewards left: %d\n", sv.Round, sv.MaxRound, sv.DrawCount, sv.RewardCount)

	if lr := sv.LastRound; lr != nil {
		fmt.Fprintf(c.out, "Last round: %s vs %s, %s\n", lr.YourCard, lr.OpponentCard, lr.Result)
	}
	fmt.Fprintf(c.out, "\nHand: %s\n", joinCards(you.Hand, true))
}

func joinCards(cards []CardView, numbered bool) string {
	parts := make([]string, 0, len(cards))
	for _, cv := range cards {
		if numbered {
			parts = append(parts, fmt.Sprintf("[%d] %s", cv.Index+1, cv.Name))
		} else {
			parts = append(parts, cv.Name)
		}
	}
	return strings.Join(parts, "  ")
}

func (c *Client) renderQuiz(qv *QuizView) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "─── The trial begins! ───")
	fmt.Fprintf(c.out, "%s %s\n\n", qv.Prompt, qv.Reward)
	fmt.Fprintln(c.out, qv.Question)
	for i, choice := range qv.Choices {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, choice)
	}
}

func (c *Client) renderQuizResult(rv *QuizResultView) {
	if rv == nil {
		return
	}
	if rv.Correct {
		fmt.Fprintln(c.out, "Correct!")
	} else {
		fmt.Fprintf(c.out, "Wrong! The answer was: %s\n", rv.CorrectChoice)
	}
	if rv.Explanation != "" {
		fmt.Fprintln(c.out, rv.Explanation)
	}
	fmt.Fprintln(c.out, rv.Feedback)
}

func (c *Client) renderFinal(fv *FinalView) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "═══════════════════════════════════")
	fmt.Fprintln(c.out, "          GAME OVER")
	fmt.Fprintln(c.out, "═══════════════════════════════════")
	if fv != nil {
		fmt.Fprintf(c.out, "You: %d x %s = %s\n", fv.You.Raw, fv.You.Multiplier, fv.You.Final)
		fmt.Fprintf(c.out, "AI:  %d x %s = %s  (%s)\n", fv.AI.Raw, fv.AI.Multiplier, fv.AI.Final, joinCards(fv.AIHand, false))
		fmt.Fprintln(c.out, fv.Message)
	}
	fmt.Fprintln(c.out, "═══════════════════════════════════")
}
