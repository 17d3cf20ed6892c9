// Package mistakes is the learner's ledger of wrong and unanswered
// responses. Records are immutable once appended and are removed only by
// explicit deletion.
package mistakes

import (
	"time"

	"github.com/google/uuid"
)

// Unanswered stands in for the learner's answer when a question was graded
// without a choice being made.
const Unanswered = "(unanswered)"

// DateLayout is the human-readable date stored on each record.
const DateLayout = "2 Jan 2006"

// Mistake is one recorded wrong or unanswered response.
type Mistake struct {
	ID            string `json:"id"`
	Topic         string `json:"topic"`
	Date          string `json:"date"`
	Question      string `json:"question"`
	YourAnswer    string `json:"yourAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

// Unanswered reports whether the record is for a question with no choice.
func (m Mistake) Unanswered() bool {
	return m.YourAnswer == Unanswered
}

// NewID returns a time-ordered unique identifier.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
