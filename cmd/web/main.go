package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/quizcards/internal/quiz"
	"github.com/peterkuimelis/quizcards/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	questionsFile := flag.String("questions", "", "path to a questions YAML file (default: built-in bank)")
	seed := flag.Int64("seed", 0, "random seed (0 for random)")
	flag.Parse()

	questions, err := quiz.LoadOrDefault(*questionsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv := web.NewServer(web.Config{Questions: questions, Seed: *seed})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("quizcards web UI listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
