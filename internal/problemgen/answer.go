package problemgen

// CheckAnswer reports whether selected is the correct option for q.
// Comparison is exact text equality against q.Answer; no trimming or case
// folding is applied, so a model answer that drifts from its own option
// text is always graded wrong.
func CheckAnswer(selected string, q *Question) bool {
	if q == nil {
		return false
	}
	return selected == q.Answer
}

// AnswerIndex returns the index of the option equal to q.Answer, or -1.
func AnswerIndex(q *Question) int {
	if q == nil {
		return -1
	}
	for i, o := range q.Options {
		if o == q.Answer {
			return i
		}
	}
	return -1
}
