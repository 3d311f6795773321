package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/peterkuimelis/quizcards/internal/card"
	"github.com/peterkuimelis/quizcards/internal/game"
	"github.com/peterkuimelis/quizcards/internal/log"
	"github.com/peterkuimelis/quizcards/internal/quiz"
)

// Session plays games with one connected client until it quits or leaves.
type Session struct {
	Questions []quiz.Question // empty: embedded default bank
	Seed      int64           // 0 for random
	Log       io.Writer       // server-side event log (nil: memory only)
}

func (s *Session) logger() log.EventLogger {
	if s.Log != nil {
		return log.NewTextLogger(s.Log)
	}
	return log.NewMemoryLogger()
}

// Serve runs games over conn. A reset deals a fresh game immediately; after
// game_over the client picks between another game and quitting. A client
// that disconnects ends the session without error.
func (s *Session) Serve(ctx context.Context, conn net.Conn) error {
	rng := card.NewRand(s.Seed)
	questions := s.Questions
	if len(questions) == 0 {
		questions = quiz.Default()
	}
	bank := quiz.NewBank(questions, rng)
	nc := NewNetworkController(conn)

	for {
		g := game.New(game.Config{
			Rand:      rng,
			Questions: bank,
			Logger:    s.logger(),
		})
		_, err := game.NewRunner(g, nc).Run(ctx)
		switch {
		case errors.Is(err, game.ErrReset):
			continue
		case disconnected(err):
			return nil
		case err != nil:
			return fmt.Errorf("game %s: %w", g.ID(), err)
		}

		if err := nc.SendGameOver(g.State); err != nil {
			if disconnected(err) {
				return nil
			}
			return fmt.Errorf("send game_over: %w", err)
		}
		again, err := nc.AwaitPlayAgain(ctx)
		if disconnected(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// disconnected reports whether err means the peer went away.
func disconnected(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed)
}

// Server hosts one Session per TCP client.
type Server struct {
	Addr    string
	Session Session
	Out     io.Writer // status lines (nil: stdout)
}

func (s *Server) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}

// Run listens on Addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	fmt.Fprintf(s.out(), "Listening for players on %s\n", ln.Addr())
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer ln.Close()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		fmt.Fprintf(s.out(), "Player connected from %s\n", conn.RemoteAddr())
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			sess := s.Session
			if err := sess.Serve(ctx, conn); err != nil && ctx.Err() == nil {
				fmt.Fprintf(s.out(), "Session %s: %v\n", conn.RemoteAddr(), err)
			}
			fmt.Fprintf(s.out(), "Player %s left\n", conn.RemoteAddr())
		}()
	}
}

// PlayLocal runs a session in-process and plays it from the terminal.
func PlayLocal(ctx context.Context, sess *Session, in io.Reader, out io.Writer) error {
	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		errCh <- sess.Serve(ctx, serverConn)
	}()

	client := NewClient(clientConn, in, out)
	if err := client.RunREPL(ctx); err != nil {
		return err
	}
	clientConn.Close()
	return <-errCh
}
