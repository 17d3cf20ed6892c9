package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/eliteprep/internal/curriculum"
	"github.com/abhisek/eliteprep/internal/problemgen"
)

// Mode is the active sub-flow.
type Mode string

const (
	ModeTopic Mode = "topic"
	ModePaper Mode = "paper"
	ModeExam  Mode = "exam"
)

// Feedback is the grading outcome of a practice question.
type Feedback string

const (
	FeedbackNone    Feedback = ""
	FeedbackCorrect Feedback = "correct"
	FeedbackWrong   Feedback = "wrong"
)

// snapshotVersion is bumped whenever the stored layout changes.
const snapshotVersion = 1

// Flow is the mode-specific part of a snapshot: one of *PracticeFlow,
// *ExamFlow or *PaperFlow.
type Flow interface {
	Mode() Mode
	clone() Flow
	validate() error
}

// PracticeFlow is single-question topic practice.
type PracticeFlow struct {
	Question    *problemgen.Question `json:"question"`
	Selected    *string              `json:"selected"`
	Feedback    Feedback             `json:"feedback"`
	Elaboration string               `json:"elaboration"`
}

func (*PracticeFlow) Mode() Mode { return ModeTopic }

// Graded reports whether the current question has been graded.
func (p *PracticeFlow) Graded() bool { return p.Feedback != FeedbackNone }

func (p *PracticeFlow) clone() Flow {
	c := *p
	c.Question = p.Question.Clone()
	c.Selected = cloneString(p.Selected)
	return &c
}

func (p *PracticeFlow) validate() error {
	switch p.Feedback {
	case FeedbackNone, FeedbackCorrect, FeedbackWrong:
	default:
		return fmt.Errorf("unknown feedback %q", p.Feedback)
	}
	if p.Question == nil && (p.Selected != nil || p.Graded() || p.Elaboration != "") {
		return errors.New("answer state without a question")
	}
	return nil
}

// ExamFlow is a timed multi-question exam. Answers has one slot per
// question, nil meaning unanswered. Remaining is the countdown in whole
// seconds and Index is the question on display.
type ExamFlow struct {
	Topic     string                `json:"topic"`
	Questions []problemgen.Question `json:"questions"`
	Answers   []*string             `json:"answers"`
	Remaining int                   `json:"remaining"`
	Submitted bool                  `json:"submitted"`
	Index     int                   `json:"index"`
}

func (*ExamFlow) Mode() Mode { return ModeExam }

// Loaded reports whether the question batch has arrived.
func (e *ExamFlow) Loaded() bool { return len(e.Questions) > 0 }

// InProgress reports whether the exam is loaded and not yet submitted.
func (e *ExamFlow) InProgress() bool { return e.Loaded() && !e.Submitted }

// Current returns the question at Index, or nil before the batch loads.
func (e *ExamFlow) Current() *problemgen.Question {
	if !e.Loaded() {
		return nil
	}
	return &e.Questions[e.Index]
}

// Score counts answer slots that exactly match their question's answer.
func (e *ExamFlow) Score() int {
	score := 0
	for i := range e.Questions {
		if i < len(e.Answers) && e.Answers[i] != nil && problemgen.CheckAnswer(*e.Answers[i], &e.Questions[i]) {
			score++
		}
	}
	return score
}

// Answered counts filled answer slots.
func (e *ExamFlow) Answered() int {
	n := 0
	for _, a := range e.Answers {
		if a != nil {
			n++
		}
	}
	return n
}

func (e *ExamFlow) clone() Flow {
	c := *e
	if e.Questions != nil {
		c.Questions = make([]problemgen.Question, len(e.Questions))
		for i := range e.Questions {
			c.Questions[i] = *e.Questions[i].Clone()
		}
	}
	if e.Answers != nil {
		c.Answers = make([]*string, len(e.Answers))
		for i, a := range e.Answers {
			c.Answers[i] = cloneString(a)
		}
	}
	return &c
}

func (e *ExamFlow) validate() error {
	if len(e.Answers) != len(e.Questions) {
		return fmt.Errorf("%d answer slots for %d questions", len(e.Answers), len(e.Questions))
	}
	if e.Index < 0 || (len(e.Questions) == 0 && e.Index != 0) || (len(e.Questions) > 0 && e.Index >= len(e.Questions)) {
		return fmt.Errorf("question index %d out of range", e.Index)
	}
	if e.Remaining < 0 {
		return fmt.Errorf("negative remaining time %d", e.Remaining)
	}
	if e.Submitted && len(e.Questions) == 0 {
		return errors.New("submitted exam without questions")
	}
	return nil
}

// PaperFlow is mock-paper browsing and generation.
type PaperFlow struct {
	Selected *curriculum.PastPaper      `json:"selected"`
	Content  []problemgen.PaperQuestion `json:"content"`
}

func (*PaperFlow) Mode() Mode { return ModePaper }

func (p *PaperFlow) clone() Flow {
	c := *p
	if p.Selected != nil {
		sel := *p.Selected
		c.Selected = &sel
	}
	if p.Content != nil {
		c.Content = make([]problemgen.PaperQuestion, len(p.Content))
		for i, q := range p.Content {
			c.Content[i] = q
			if q.Parts != nil {
				c.Content[i].Parts = append([]problemgen.PaperPart(nil), q.Parts...)
			}
		}
	}
	return &c
}

func (p *PaperFlow) validate() error {
	if p.Selected == nil && len(p.Content) > 0 {
		return errors.New("paper content without a selected paper")
	}
	return nil
}

// Snapshot is the complete, serializable state of one session.
type Snapshot struct {
	Difficulty problemgen.Difficulty
	Flow       Flow
}

// NewSnapshot returns the state of a session that has just started.
func NewSnapshot() Snapshot {
	return Snapshot{Difficulty: problemgen.Medium, Flow: &PracticeFlow{}}
}

// Mode returns the active sub-flow.
func (s Snapshot) Mode() Mode {
	if s.Flow == nil {
		return ModeTopic
	}
	return s.Flow.Mode()
}

// IsEmpty reports whether the snapshot holds nothing worth resuming.
func (s Snapshot) IsEmpty() bool {
	switch f := s.Flow.(type) {
	case *PracticeFlow:
		return f.Question == nil
	case *ExamFlow:
		return !f.Loaded()
	case *PaperFlow:
		return f.Selected == nil
	}
	return true
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	if s.Flow != nil {
		s.Flow = s.Flow.clone()
	}
	return s
}

type envelope struct {
	Version    int                   `json:"version"`
	Mode       Mode                  `json:"mode"`
	Difficulty problemgen.Difficulty `json:"difficulty"`
	Flow       json.RawMessage       `json:"flow"`
}

// MarshalJSON writes the snapshot with a mode discriminator.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	if s.Flow == nil {
		return nil, errors.New("snapshot has no flow")
	}
	flow, err := json.Marshal(s.Flow)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{
		Version:    snapshotVersion,
		Mode:       s.Flow.Mode(),
		Difficulty: s.Difficulty,
		Flow:       flow,
	})
}

// UnmarshalJSON restores a snapshot and checks its invariants.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.Version != snapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", env.Version)
	}
	if !env.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", env.Difficulty)
	}

	var flow Flow
	switch env.Mode {
	case ModeTopic:
		flow = &PracticeFlow{}
	case ModeExam:
		flow = &ExamFlow{}
	case ModePaper:
		flow = &PaperFlow{}
	default:
		return fmt.Errorf("unknown mode %q", env.Mode)
	}
	if len(env.Flow) == 0 {
		return errors.New("missing flow")
	}
	if err := json.Unmarshal(env.Flow, flow); err != nil {
		return fmt.Errorf("decode %s flow: %w", env.Mode, err)
	}
	if err := flow.validate(); err != nil {
		return err
	}

	s.Difficulty = env.Difficulty
	s.Flow = flow
	return nil
}

// Encode serializes s for the key/value store.
func Encode(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// Decode restores a stored snapshot. Any failure is a
// *CorruptSnapshotError.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, &CorruptSnapshotError{Err: err}
	}
	return s, nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
