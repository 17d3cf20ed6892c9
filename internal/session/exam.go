package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/eliteprep/internal/mistakes"
	"github.com/abhisek/eliteprep/internal/problemgen"
)

const (
	triggerManual  = "manual"
	triggerTimeout = "timeout"
)

// StartExam switches to exam mode and fetches a batch of questions on the
// current topic. Any earlier exam is discarded.
func (m *Machine) StartExam(ctx context.Context) error {
	m.mu.Lock()
	if m.resumePending {
		m.mu.Unlock()
		return ErrResumePending
	}
	if m.loading.Exam {
		m.mu.Unlock()
		return ErrBusy
	}
	m.invalidateLocked()
	topic := m.topicLocked()
	m.snap.Flow = &ExamFlow{Topic: topic}
	m.loading.Exam = true
	m.persistLocked(ctx)
	job := m.jobLocked()
	size := m.cfg.ExamSize
	m.mu.Unlock()
	m.notify()

	cctx, cancel := callContext(ctx, job.flowCtx)
	defer cancel()
	qs, err := m.gen.Batch(cctx, job.topic, job.difficulty, size)
	if err == nil && len(qs) == 0 {
		err = errors.New("empty question batch")
	}

	defer m.notify()
	m.mu.Lock()
	defer m.mu.Unlock()

	if job.epoch != m.epoch {
		return ErrStale
	}
	m.loading.Exam = false
	if err != nil {
		m.log.Warn("exam batch fetch failed", "topic", job.topic, "difficulty", job.difficulty, "error", err)
		return fmt.Errorf("fetch exam: %w", err)
	}

	ef := m.snap.Flow.(*ExamFlow)
	ef.Questions = qs
	ef.Answers = make([]*string, len(qs))
	ef.Remaining = int(m.cfg.ExamDuration / time.Second)
	ef.Index = 0
	ef.Submitted = false
	m.startTimerLocked()
	m.persistLocked(ctx)
	return nil
}

// RecordExamAnswer fills the answer slot of question index, which must be
// the question on display. An answer aimed at a question the learner has
// already navigated away from returns ErrStale and changes nothing.
// Changing an answer before submission is allowed.
func (m *Machine) RecordExamAnswer(ctx context.Context, index int, option string) error {
	defer m.notify()
	m.mu.Lock()
	defer m.mu.Unlock()

	ef, err := m.examLocked()
	if err != nil {
		return err
	}
	if !ef.InProgress() {
		return ErrNoExam
	}
	if index != ef.Index {
		return ErrStale
	}
	ef.Answers[index] = &option
	m.persistLocked(ctx)
	return nil
}

// NavigateExam moves the displayed question by delta, clamped to the
// batch. Unanswered questions may be skipped and submitted exams reviewed.
func (m *Machine) NavigateExam(ctx context.Context, delta int) error {
	defer m.notify()
	m.mu.Lock()
	defer m.mu.Unlock()

	ef, err := m.examLocked()
	if err != nil {
		return err
	}
	if !ef.Loaded() {
		return ErrNoExam
	}
	next := min(max(ef.Index+delta, 0), len(ef.Questions)-1)
	if next == ef.Index {
		return nil
	}
	ef.Index = next
	m.persistLocked(ctx)
	return nil
}

// SubmitExam grades the exam. Submitting twice has no further effect.
func (m *Machine) SubmitExam(ctx context.Context) error {
	defer m.notify()
	m.mu.Lock()
	defer m.mu.Unlock()

	ef, err := m.examLocked()
	if err != nil {
		return err
	}
	if !ef.Loaded() {
		return ErrNoExam
	}
	m.submitExamLocked(ctx, triggerManual)
	return nil
}

func (m *Machine) examLocked() (*ExamFlow, error) {
	if err := m.checkModeLocked(ModeExam); err != nil {
		return nil, err
	}
	return m.snap.Flow.(*ExamFlow), nil
}

// submitExamLocked grades every slot: a match completes the question's
// topic, anything else (including an empty slot) becomes one mistake.
func (m *Machine) submitExamLocked(ctx context.Context, trigger string) {
	m.stopTimerLocked()
	ef, ok := m.snap.Flow.(*ExamFlow)
	if !ok || !ef.InProgress() {
		return
	}
	ef.Submitted = true

	base := m.newID()
	for i := range ef.Questions {
		q := &ef.Questions[i]
		ans := ef.Answers[i]
		if ans != nil && problemgen.CheckAnswer(*ans, q) {
			m.completeLocked(ctx, q.Topic)
			continue
		}
		yours := mistakes.Unanswered
		if ans != nil {
			yours = *ans
		}
		m.recordLocked(ctx, m.newMistake(fmt.Sprintf("%s-%d", base, i), q, yours), "exam")
	}

	m.metrics.ExamSubmitted(trigger)
	m.log.Info("exam submitted", "topic", ef.Topic, "score", ef.Score(), "of", len(ef.Questions), "trigger", trigger)
	m.persistLocked(ctx)
}

func (m *Machine) startTimerLocked() {
	m.stopTimerLocked()
	m.timerGen++
	gen := m.timerGen
	m.timer = startCountdown(m.cfg.TickInterval, func() { m.tick(gen) })
}

func (m *Machine) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// tick advances the exam countdown by one second and submits the exam
// when it reaches zero. Ticks from a stopped countdown are ignored.
func (m *Machine) tick(gen uint64) {
	defer m.notify()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer == nil || gen != m.timerGen {
		return
	}
	ef, ok := m.snap.Flow.(*ExamFlow)
	if !ok || !ef.InProgress() {
		m.stopTimerLocked()
		return
	}

	ctx := context.Background()
	if ef.Remaining > 0 {
		ef.Remaining--
	}
	if ef.Remaining == 0 {
		m.submitExamLocked(ctx, triggerTimeout)
		return
	}
	m.persistLocked(ctx)
}
