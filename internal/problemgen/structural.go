package problemgen

import "strings"

const (
	maxQuestionLen    = 2000
	maxExplanationLen = 4000
)

// StructuralValidator checks that required fields are present and within
// length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}
	switch {
	case strings.TrimSpace(q.Text) == "":
		return fail("question is empty")
	case len(q.Text) > maxQuestionLen:
		return fail("question exceeds 2000 characters")
	case len(q.Options) < 2:
		return fail("at least 2 options are required")
	case strings.TrimSpace(q.Answer) == "":
		return fail("answer is empty")
	case strings.TrimSpace(q.Explanation) == "":
		return fail("explanation is empty")
	case len(q.Explanation) > maxExplanationLen:
		return fail("explanation exceeds 4000 characters")
	}
	for _, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return fail("options must not be blank")
		}
	}
	return nil
}

// AnswerInOptionsValidator rejects questions whose answer is not exactly
// one of the options. Such questions can never be graded correct.
type AnswerInOptionsValidator struct{}

func (v *AnswerInOptionsValidator) Name() string { return "answer-in-options" }

func (v *AnswerInOptionsValidator) Validate(q *Question) *ValidationError {
	if AnswerIndex(q) < 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "answer does not match any option",
		}
	}
	return nil
}
