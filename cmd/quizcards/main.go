package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	quiznet "github.com/peterkuimelis/quizcards/internal/net"
	"github.com/peterkuimelis/quizcards/internal/quiz"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "play":
		runPlay(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "join":
		runJoin(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  quizcards play  [--seed N] [--questions FILE]")
	fmt.Println("  quizcards serve [--port P] [--seed N] [--questions FILE] [--log]")
	fmt.Println("  quizcards join  [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play against the AI in this terminal")
	fmt.Println("  serve   Host games for remote terminal players")
	fmt.Println("  join    Connect to a game server and play")
}

func loadQuestions(path string) []quiz.Question {
	questions, err := quiz.LoadOrDefault(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return questions
}

func runPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	seed := fs.Int64("seed", 0, "random seed (0 for random)")
	questionsFile := fs.String("questions", "", "path to a questions YAML file (default: built-in bank)")
	fs.Parse(args)

	sess := &quiznet.Session{
		Questions: loadQuestions(*questionsFile),
		Seed:      *seed,
	}
	if err := quiznet.PlayLocal(context.Background(), sess, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.String("port", "9000", "TCP port to listen on")
	seed := fs.Int64("seed", 0, "random seed (0 for random)")
	questionsFile := fs.String("questions", "", "path to a questions YAML file (default: built-in bank)")
	logEvents := fs.Bool("log", false, "print every game event")
	fs.Parse(args)

	srv := &quiznet.Server{
		Addr: ":" + *port,
		Session: quiznet.Session{
			Questions: loadQuestions(*questionsFile),
			Seed:      *seed,
		},
	}
	if *logEvents {
		srv.Session.Log = os.Stdout
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runJoin(args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)

	if err := quiznet.Connect(context.Background(), *addr, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
