package quiz

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultBankIsValid(t *testing.T) {
	qs := Default()
	if len(qs) < 5 {
		t.Fatalf("default bank has %d questions, want at least 5", len(qs))
	}
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			t.Errorf("question %d: %v", i, err)
		}
	}
}

func TestParseRejectsBadBanks(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "questions: []\n", "empty"},
		{"answer out of range", "questions:\n  - text: q\n    choices: [a, b]\n    answer: 2\n", "out of range"},
		{"one choice", "questions:\n  - text: q\n    choices: [a]\n    answer: 0\n", "at least 2"},
		{"no text", "questions:\n  - choices: [a, b]\n    answer: 0\n", "text is empty"},
		{"bad yaml", "questions: [", "parse question YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	data := "questions:\n  - text: \"2+2?\"\n    choices: [\"3\", \"4\"]\n    answer: 1\n    explanation: arithmetic\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	qs, err := LoadOrDefault(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 1 || qs[0].CorrectChoice() != "4" || qs[0].Explanation != "arithmetic" {
		t.Errorf("unexpected bank: %+v", qs)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestBankShuffleKeepsCorrectAnswer: after the choice shuffle the correct
// index still points at the same text.
func TestBankShuffleKeepsCorrectAnswer(t *testing.T) {
	src := Default()
	bank := NewBank(src, rand.New(rand.NewSource(3)))
	for i := 0; i < len(src); i++ {
		q := bank.Next()
		if q.CorrectChoice() != src[i].CorrectChoice() {
			t.Errorf("question %d: correct choice %q, want %q", i, q.CorrectChoice(), src[i].CorrectChoice())
		}
		if len(q.Choices) != len(src[i].Choices) {
			t.Errorf("question %d lost choices", i)
		}
	}
	if src[0].CorrectAnswer != 0 {
		t.Error("NewBank must not mutate the source questions")
	}
}

func TestBankCycles(t *testing.T) {
	src := []Question{
		{Text: "one", Choices: []string{"a", "b"}},
		{Text: "two", Choices: []string{"a", "b"}},
	}
	bank := NewBank(src, rand.New(rand.NewSource(1)))
	var got []string
	for i := 0; i < 5; i++ {
		got = append(got, bank.Next().Text)
	}
	want := "one two one two one"
	if strings.Join(got, " ") != want {
		t.Errorf("sequence %v, want %s", got, want)
	}
	if bank.Len() != 2 {
		t.Errorf("Len = %d", bank.Len())
	}
}

func TestNextReturnsCopy(t *testing.T) {
	bank := NewBank([]Question{{Text: "q", Choices: []string{"a", "b"}}}, rand.New(rand.NewSource(1)))
	q := bank.Next()
	q.Choices[0] = "mutated"
	if bank.Next().Choices[0] == "mutated" {
		t.Error("Next must return an independent copy")
	}
}

func TestIsCorrect(t *testing.T) {
	q := Question{Text: "q", Choices: []string{"a", "b", "c"}, CorrectAnswer: 2}
	if !q.IsCorrect(2) || q.IsCorrect(0) || q.IsCorrect(-1) {
		t.Error("IsCorrect mismatch")
	}
}

func TestEmptyBankNext(t *testing.T) {
	bank := NewBank(nil, nil)
	if q := bank.Next(); q.Text != "" {
		t.Errorf("empty bank returned %+v", q)
	}
}
