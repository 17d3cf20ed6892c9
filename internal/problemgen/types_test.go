package problemgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  $x^2$ + **3**  ", "x^2 + 3"},
		{"plain", "plain"},
		{"$$$***", ""},
		{"\n\t5 * 4\n", "5  4"},
	}
	for _, tt := range tests {
		got := Sanitize(tt.in)
		assert.Equal(t, tt.want, got, "Sanitize(%q)", tt.in)
		assert.NotContains(t, got, "$")
		assert.NotContains(t, got, "*")
		assert.Equal(t, strings.TrimSpace(got), got)
	}
}

func TestQuestionSanitized(t *testing.T) {
	q := Question{
		Text:        " Solve $2x = 4$ ",
		Options:     []string{"*x = 2*", " x = 4"},
		Answer:      "*x = 2*",
		Explanation: "Divide by **2**. ",
		Topic:       " Linear ",
	}
	s := q.Sanitized()

	assert.Equal(t, "Solve 2x = 4", s.Text)
	assert.Equal(t, []string{"x = 2", "x = 4"}, s.Options)
	assert.Equal(t, "x = 2", s.Answer)
	assert.Equal(t, "Divide by 2.", s.Explanation)
	assert.Equal(t, "Linear", s.Topic)
	assert.True(t, CheckAnswer(s.Options[0], &s), "sanitizing keeps answer and option in step")
	assert.Equal(t, "*x = 2*", q.Options[0], "original must not be modified")
}

func TestPaperQuestionSanitized(t *testing.T) {
	p := PaperQuestion{
		Number: 1,
		Text:   " **Question** ",
		Marks:  6,
		Parts:  []PaperPart{{Label: "(a)", Text: "Find $f'(x)$", Marks: 2}},
	}
	s := p.Sanitized()
	assert.Equal(t, "Question", s.Text)
	assert.Equal(t, "Find f'(x)", s.Parts[0].Text)
	assert.Equal(t, "Find $f'(x)$", p.Parts[0].Text)
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" hard ")
	require.NoError(t, err)
	assert.Equal(t, Hard, d)

	_, err = ParseDifficulty("brutal")
	assert.Error(t, err)
}

func TestDifficultyNext(t *testing.T) {
	assert.Equal(t, Medium, Easy.Next())
	assert.Equal(t, Hard, Medium.Next())
	assert.Equal(t, Easy, Hard.Next())
	assert.Equal(t, Medium, Difficulty("").Next())
	assert.True(t, Medium.Valid())
	assert.False(t, Difficulty("medium").Valid())
}

func TestQuestionClone(t *testing.T) {
	q := validQuestion()
	c := q.Clone()
	c.Options[0] = "changed"
	assert.Equal(t, "5sqrt(2)", q.Options[0])
	assert.Nil(t, (*Question)(nil).Clone())
}

func TestTotalMarks(t *testing.T) {
	assert.Equal(t, 11, TotalMarks([]PaperQuestion{{Marks: 5}, {Marks: 6}}))
	assert.Equal(t, 0, TotalMarks(nil))
}
