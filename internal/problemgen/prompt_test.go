package problemgen

import (
	"strings"
	"testing"
)

func TestBuildQuestionPrompt(t *testing.T) {
	msg := buildQuestionPrompt("Surds", Hard, "None")

	for _, want := range []string{
		`on the topic: "Surds"`,
		"Hard difficulty",
		"Edexcel IAL",
		"full text of the correct option",
		"No LaTeX symbols like '$'",
		"Already asked on this topic:\nNone",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildBatchPrompt(t *testing.T) {
	msg := buildBatchPrompt("Quadratics", Medium, 5, "1. Solve x^2 = 4")
	if !strings.Contains(msg, "exactly 5 different Medium difficulty") {
		t.Errorf("missing count and difficulty:\n%s", msg)
	}
	if !strings.Contains(msg, "1. Solve x^2 = 4") {
		t.Errorf("missing prior questions:\n%s", msg)
	}
}

func TestBuildElaborationPrompt(t *testing.T) {
	msg := buildElaborationPrompt(validQuestion())
	if !strings.Contains(msg, `"Simplify sqrt(50)."`) || !strings.Contains(msg, `Correct answer: "5sqrt(2)"`) {
		t.Errorf("unexpected prompt:\n%s", msg)
	}
}

func TestBuildMockPaperPrompt(t *testing.T) {
	msg := buildMockPaperPrompt("Jan 2024 - Pure Math 1")
	if !strings.Contains(msg, `"Jan 2024 - Pure Math 1"`) {
		t.Errorf("missing paper title:\n%s", msg)
	}
}

func TestHistory_PerTopicAndCapped(t *testing.T) {
	h := newHistory(2)
	h.add("Surds", "a", "b", "c")
	h.add("Index Laws", "z")

	if got := h.prompt("Surds"); got != "1. b\n2. c" {
		t.Fatalf("unexpected surds history %q", got)
	}
	if got := h.prompt("Index Laws"); got != "1. z" {
		t.Fatalf("unexpected index laws history %q", got)
	}
	if got := h.prompt("Factorising"); got != "None" {
		t.Fatalf("expected None for unseen topic, got %q", got)
	}
}

func TestHistory_RepeatMovesToEnd(t *testing.T) {
	h := newHistory(3)
	h.add("Surds", "Simplify sqrt(8)", "Rationalise 1/sqrt(2)")
	h.add("Surds", "simplify  SQRT(8)")

	if got := h.prompt("Surds"); got != "1. Rationalise 1/sqrt(2)\n2. simplify  SQRT(8)" {
		t.Fatalf("unexpected history %q", got)
	}
}
