package quiz

import (
	"errors"
	"fmt"
)

// Question is one multiple-choice trial question.
type Question struct {
	Text          string   `yaml:"text" json:"text"`
	Choices       []string `yaml:"choices" json:"choices"`
	CorrectAnswer int      `yaml:"answer" json:"correct_answer"`
	Explanation   string   `yaml:"explanation" json:"explanation"`
}

// IsCorrect reports whether choice is the correct answer index.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.CorrectAnswer
}

// CorrectChoice returns the text of the correct answer.
func (q Question) CorrectChoice() string {
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Choices) {
		return ""
	}
	return q.Choices[q.CorrectAnswer]
}

// Validate checks that the question is answerable.
func (q Question) Validate() error {
	if q.Text == "" {
		return errors.New("question text is empty")
	}
	if len(q.Choices) < 2 {
		return fmt.Errorf("question %q has %d choices, need at least 2", q.Text, len(q.Choices))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Choices) {
		return fmt.Errorf("question %q: answer %d out of range 0-%d", q.Text, q.CorrectAnswer, len(q.Choices)-1)
	}
	return nil
}

// clone returns a deep copy so shuffling choices never touches the source.
func (q Question) clone() Question {
	c := q
	c.Choices = append([]string(nil), q.Choices...)
	return c
}
