package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	quizmcp "github.com/peterkuimelis/quizcards/internal/mcp"
	"github.com/peterkuimelis/quizcards/internal/quiz"
)

func main() {
	questionsFile := flag.String("questions", "", "path to a questions YAML file (default: built-in bank)")
	seed := flag.Int64("seed", 0, "random seed (0 for random)")
	flag.Parse()

	questions, err := quiz.LoadOrDefault(*questionsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	quizmcp.SetQuestions(questions)
	quizmcp.SetSeed(*seed)

	s := server.NewMCPServer("quizcards", "1.0.0")
	quizmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
