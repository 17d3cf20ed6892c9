package problemgen

import (
	"fmt"
	"strings"
)

// Question is one multiple-choice assessment item.
type Question struct {
	// Text is the question prompt shown to the learner.
	Text string `json:"question"`

	// Options are the answer choices in display order. At least 2.
	Options []string `json:"options"`

	// Answer is the literal text of the correct option, not an index.
	// Grading compares the chosen option text against it byte for byte.
	Answer string `json:"answer"`

	// Explanation is a worked solution shown after grading.
	Explanation string `json:"explanation"`

	// Topic is the curriculum topic the question was generated for.
	Topic string `json:"topic"`

	// Origin records where the question came from.
	Origin Origin `json:"origin"`
}

// Origin marks a question as AI-generated or from a static bank.
type Origin string

const (
	OriginAI     Origin = "ai"
	OriginStatic Origin = "static"
)

// Clone returns a deep copy of q.
func (q *Question) Clone() *Question {
	if q == nil {
		return nil
	}
	c := *q
	if q.Options != nil {
		c.Options = append([]string(nil), q.Options...)
	}
	return &c
}

// Difficulty is the requested difficulty level.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Difficulties lists every level in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty accepts a level name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want Easy, Medium or Hard)", s)
}

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool {
	for _, lvl := range Difficulties {
		if lvl == d {
			return true
		}
	}
	return false
}

// Next cycles Easy → Medium → Hard → Easy.
func (d Difficulty) Next() Difficulty {
	for i, lvl := range Difficulties {
		if lvl == d {
			return Difficulties[(i+1)%len(Difficulties)]
		}
	}
	return Medium
}

// PaperQuestion is one numbered question in a generated mock paper.
type PaperQuestion struct {
	Number int         `json:"number"`
	Text   string      `json:"text"`
	Marks  int         `json:"marks"`
	Parts  []PaperPart `json:"parts"`
}

// PaperPart is a labelled sub-part such as "(a)".
type PaperPart struct {
	Label string `json:"label"`
	Text  string `json:"text"`
	Marks int    `json:"marks"`
}

// TotalMarks sums the marks of every question in a paper.
func TotalMarks(paper []PaperQuestion) int {
	total := 0
	for _, q := range paper {
		total += q.Marks
	}
	return total
}
