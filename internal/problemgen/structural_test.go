package problemgen

import (
	"strings"
	"testing"
)

func validQuestion() *Question {
	return &Question{
		Text:        "Simplify sqrt(50).",
		Options:     []string{"5sqrt(2)", "25sqrt(2)", "2sqrt(5)", "10"},
		Answer:      "5sqrt(2)",
		Explanation: "sqrt(50) = sqrt(25 x 2) = 5sqrt(2).",
		Topic:       "Surds",
		Origin:      OriginAI,
	}
}

func TestStructural_ValidQuestion(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validQuestion()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Question)
		want   string
	}{
		{"empty question", func(q *Question) { q.Text = "  " }, "question is empty"},
		{"long question", func(q *Question) { q.Text = strings.Repeat("x", 2001) }, "2000"},
		{"one option", func(q *Question) { q.Options = q.Options[:1] }, "at least 2 options"},
		{"blank option", func(q *Question) { q.Options[3] = "" }, "blank"},
		{"empty answer", func(q *Question) { q.Answer = "" }, "answer is empty"},
		{"empty explanation", func(q *Question) { q.Explanation = "" }, "explanation is empty"},
		{"long explanation", func(q *Question) { q.Explanation = strings.Repeat("x", 4001) }, "4000"},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := v.Validate(q)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if err.Validator != "structural" {
				t.Errorf("expected validator %q, got %q", "structural", err.Validator)
			}
			if !strings.Contains(err.Message, tt.want) {
				t.Errorf("message %q does not mention %q", err.Message, tt.want)
			}
		})
	}
}

func TestAnswerInOptions(t *testing.T) {
	v := &AnswerInOptionsValidator{}
	q := validQuestion()
	if err := v.Validate(q); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	q.Answer = "5 sqrt(2)"
	err := v.Validate(q)
	if err == nil {
		t.Fatal("expected error when answer drifts from option text")
	}
	if err.Validator != "answer-in-options" {
		t.Errorf("unexpected validator %q", err.Validator)
	}
}
