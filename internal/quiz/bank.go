package quiz

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"

	"github.com/peterkuimelis/quizcards/internal/card"
	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultBank []byte

// Provider hands out the next trial question. Implementations are stateful
// sequences; the game treats each question as opaque.
type Provider interface {
	Next() Question
}

// BankFile represents the top-level YAML structure.
type BankFile struct {
	Questions []Question `yaml:"questions"`
}

// Parse decodes and validates a YAML question bank.
func Parse(data []byte) ([]Question, error) {
	var bf BankFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parse question YAML: %w", err)
	}
	if len(bf.Questions) == 0 {
		return nil, errors.New("question bank is empty")
	}
	for i, q := range bf.Questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return bf.Questions, nil
}

// Load reads a YAML question bank from path.
func Load(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Default returns the embedded question bank.
func Default() []Question {
	qs, err := Parse(defaultBank)
	if err != nil {
		panic(fmt.Sprintf("embedded question bank: %v", err))
	}
	return qs
}

// LoadOrDefault loads path, or the embedded bank when path is empty.
func LoadOrDefault(path string) ([]Question, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Bank is a cycling Provider. Choices of every question are shuffled once at
// construction and the correct index is remapped to follow its text.
type Bank struct {
	mu        sync.Mutex
	questions []Question
	next      int
}

// NewBank builds a bank from questions using r for the choice shuffle.
func NewBank(questions []Question, r *rand.Rand) *Bank {
	b := &Bank{questions: make([]Question, 0, len(questions))}
	for _, q := range questions {
		b.questions = append(b.questions, shuffleChoices(q, r))
	}
	return b
}

func shuffleChoices(q Question, r *rand.Rand) Question {
	c := q.clone()
	correct := c.CorrectAnswer
	order := make([]int, len(c.Choices))
	for i := range order {
		order[i] = i
	}
	card.Shuffle(r, order)

	choices := make([]string, len(order))
	for newIdx, oldIdx := range order {
		choices[newIdx] = q.Choices[oldIdx]
		if oldIdx == correct {
			c.CorrectAnswer = newIdx
		}
	}
	c.Choices = choices
	return c
}

// Next implements Provider. It returns a copy and wraps around at the end.
func (b *Bank) Next() Question {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.questions) == 0 {
		return Question{}
	}
	q := b.questions[b.next]
	b.next = (b.next + 1) % len(b.questions)
	return q.clone()
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.questions)
}
