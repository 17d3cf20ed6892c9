// Package session is the quiz and exam state machine. A Machine owns one
// learner session: topic practice, timed exams and mock papers. Every
// state change is written through to the key/value store so the session
// can be resumed after the program exits.
package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abhisek/eliteprep/internal/logger"
	"github.com/abhisek/eliteprep/internal/metrics"
	"github.com/abhisek/eliteprep/internal/mistakes"
	"github.com/abhisek/eliteprep/internal/problemgen"
	"github.com/abhisek/eliteprep/internal/store"
)

// Generator produces content for the session.
type Generator interface {
	Question(ctx context.Context, topic string, difficulty problemgen.Difficulty) (*problemgen.Question, error)
	Batch(ctx context.Context, topic string, difficulty problemgen.Difficulty, n int) ([]problemgen.Question, error)
	Elaborate(ctx context.Context, q *problemgen.Question) (string, error)
	MockPaper(ctx context.Context, title string) ([]problemgen.PaperQuestion, error)
}

// MistakeRecorder receives a record for every wrong or unanswered grading.
type MistakeRecorder interface {
	Append(ctx context.Context, m mistakes.Mistake) error
}

// TopicCompleter is told about every correct grading.
type TopicCompleter interface {
	Complete(ctx context.Context, topic string) error
}

// Config holds the quiz constants.
type Config struct {
	DefaultTopic string
	ExamSize     int
	ExamDuration time.Duration
	TickInterval time.Duration
}

// DefaultConfig returns the standard quiz settings.
func DefaultConfig() Config {
	return Config{
		DefaultTopic: "Algebraic Expressions",
		ExamSize:     5,
		ExamDuration: 600 * time.Second,
		TickInterval: time.Second,
	}
}

// Deps are the collaborators of a Machine. Log, Metrics, Now and NewID
// are optional.
type Deps struct {
	Generator Generator
	Store     store.KV
	Mistakes  MistakeRecorder
	Topics    TopicCompleter
	Log       *logger.Logger
	Metrics   *metrics.Metrics
	Now       func() time.Time
	NewID     func() string
}

// Loading reports which generation requests are in flight.
type Loading struct {
	Question    bool
	Exam        bool
	Elaboration bool
	Paper       bool
}

// Any reports whether any request is in flight.
func (l Loading) Any() bool {
	return l.Question || l.Exam || l.Elaboration || l.Paper
}

// Machine is the session state machine. All methods are safe for
// concurrent use. Intents that call the generator block until it returns
// and must not be called while holding a lock the OnChange callback needs.
type Machine struct {
	cfg      Config
	gen      Generator
	kv       store.KV
	mistakes MistakeRecorder
	topics   TopicCompleter
	log      *logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
	newID    func() string

	mu            sync.Mutex
	snap          Snapshot
	initialTopic  string
	resumePending bool
	loading       Loading

	// epoch changes whenever the current flow is abandoned. Generation
	// results carrying an older epoch are discarded.
	epoch      uint64
	flowCtx    context.Context
	flowCancel context.CancelFunc

	timer    *countdown
	timerGen uint64

	onChange atomic.Pointer[func()]
}

// New creates a Machine in its initial state. Call Start to load any
// saved session.
func New(cfg Config, deps Deps) *Machine {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = mistakes.NewID
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.ExamSize <= 0 {
		cfg.ExamSize = DefaultConfig().ExamSize
	}
	if cfg.DefaultTopic == "" {
		cfg.DefaultTopic = DefaultConfig().DefaultTopic
	}

	m := &Machine{
		cfg:      cfg,
		gen:      deps.Generator,
		kv:       deps.Store,
		mistakes: deps.Mistakes,
		topics:   deps.Topics,
		log:      deps.Log,
		metrics:  deps.Metrics,
		now:      deps.Now,
		newID:    deps.NewID,
		snap:     NewSnapshot(),
	}
	m.flowCtx, m.flowCancel = context.WithCancel(context.Background())
	return m
}

// OnChange registers f to be called after every state change. f runs
// without the machine's lock held, possibly on the countdown goroutine.
func (m *Machine) OnChange(f func()) {
	m.onChange.Store(&f)
}

func (m *Machine) notify() {
	if f := m.onChange.Load(); f != nil && *f != nil {
		(*f)()
	}
}

// Start activates the machine. A non-empty saved session puts it into the
// resume prompt; otherwise a first practice question is fetched for
// initialTopic, or the default topic when it is empty.
//
// Start is the blocking form of Open followed by RequestNextQuestion, for
// callers without an event loop. The arena uses Open so that it can pick
// the first intent (practice, exam or papers) itself.
func (m *Machine) Start(ctx context.Context, initialTopic string) error {
	m.mu.Lock()
	if m.openLocked(ctx, initialTopic) {
		m.mu.Unlock()
		m.notify()
		return nil
	}
	job := m.beginQuestionLocked(ctx)
	m.mu.Unlock()
	m.notify()
	return m.runQuestion(ctx, job)
}

// Open activates the machine like Start but never fetches. It reports
// whether the resume prompt is pending; when it is not, the machine holds
// an empty practice flow and waits for the caller's first intent.
func (m *Machine) Open(ctx context.Context, initialTopic string) bool {
	m.mu.Lock()
	pending := m.openLocked(ctx, initialTopic)
	m.mu.Unlock()
	m.notify()
	return pending
}

func (m *Machine) openLocked(ctx context.Context, initialTopic string) bool {
	m.invalidateLocked()
	m.initialTopic = initialTopic
	m.snap = NewSnapshot()
	m.resumePending = false

	if saved, ok := m.loadLocked(ctx); ok && !saved.IsEmpty() {
		m.resumePending = true
	}
	return m.resumePending
}

// SetInitialTopic changes the topic used for practice. While a saved
// session is unresolved it only records the topic; in practice mode it
// fetches a fresh question on the new topic.
func (m *Machine) SetInitialTopic(ctx context.Context, topic string) error {
	m.mu.Lock()
	m.initialTopic = topic
	if m.resumePending || m.snap.Mode() != ModeTopic {
		m.mu.Unlock()
		return nil
	}
	job := m.beginQuestionLocked(ctx)
	m.mu.Unlock()
	m.notify()
	return m.runQuestion(ctx, job)
}

// SelectDifficulty changes the difficulty. In practice mode the current
// question is dropped and a new one fetched at the new level.
func (m *Machine) SelectDifficulty(ctx context.Context, d problemgen.Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %q", ErrBadDifficulty, d)
	}

	m.mu.Lock()
	if m.resumePending {
		m.mu.Unlock()
		return ErrResumePending
	}
	m.snap.Difficulty = d
	if m.snap.Mode() != ModeTopic {
		m.persistLocked(ctx)
		m.mu.Unlock()
		m.notify()
		return nil
	}
	job := m.beginQuestionLocked(ctx)
	m.mu.Unlock()
	m.notify()
	return m.runQuestion(ctx, job)
}

// RequestNextQuestion replaces the practice question with a new one.
func (m *Machine) RequestNextQuestion(ctx context.Context) error {
	m.mu.Lock()
	if err := m.checkModeLocked(ModeTopic); err != nil {
		m.mu.Unlock()
		return err
	}
	if m.loading.Question {
		m.mu.Unlock()
		return ErrBusy
	}
	job := m.beginQuestionLocked(ctx)
	m.mu.Unlock()
	m.notify()
	return m.runQuestion(ctx, job)
}

// BackToPractice leaves the exam or paper flow and fetches a practice
// question. It is a no-op in practice mode.
func (m *Machine) BackToPractice(ctx context.Context) error {
	m.mu.Lock()
	if m.resumePending {
		m.mu.Unlock()
		return ErrResumePending
	}
	if m.snap.Mode() == ModeTopic {
		m.mu.Unlock()
		return nil
	}
	m.invalidateLocked()
	m.snap.Flow = &PracticeFlow{}
	job := m.beginQuestionLocked(ctx)
	m.mu.Unlock()
	m.notify()
	return m.runQuestion(ctx, job)
}

// SubmitAnswer grades option against the practice question. A question
// is graded at most once.
func (m *Machine) SubmitAnswer(ctx context.Context, option string) error {
	defer m.notify()
	m.mu.Lock()
	defer m.mu.Unlock()

	pf, err := m.gradablePracticeLocked()
	if err != nil {
		return err
	}
	m.gradeLocked(ctx, pf, &option)
	return nil
}

// RevealAnswer grades the practice question without a choice, recording
// it as unanswered.
func (m *Machine) RevealAnswer(ctx context.Context) error {
	defer m.notify()
	m.mu.Lock()
	defer m.mu.Unlock()

	pf, err := m.gradablePracticeLocked()
	if err != nil {
		return err
	}
	m.gradeLocked(ctx, pf, nil)
	return nil
}

func (m *Machine) gradablePracticeLocked() (*PracticeFlow, error) {
	if err := m.checkModeLocked(ModeTopic); err != nil {
		return nil, err
	}
	pf := m.snap.Flow.(*PracticeFlow)
	if pf.Question == nil || m.loading.Question {
		return nil, ErrNoQuestion
	}
	if pf.Graded() {
		return nil, ErrAlreadyGraded
	}
	return pf, nil
}

func (m *Machine) gradeLocked(ctx context.Context, pf *PracticeFlow, choice *string) {
	q := pf.Question
	pf.Selected = cloneString(choice)

	if choice != nil && problemgen.CheckAnswer(*choice, q) {
		pf.Feedback = FeedbackCorrect
		m.completeLocked(ctx, q.Topic)
	} else {
		pf.Feedback = FeedbackWrong
		yours := mistakes.Unanswered
		if choice != nil {
			yours = *choice
		}
		m.recordLocked(ctx, m.newMistake(m.newID(), q, yours), "practice")
	}
	m.persistLocked(ctx)
}

// RequestElaboration fetches a step-by-step explanation of the graded
// practice question. Each question is elaborated at most once.
func (m *Machine) RequestElaboration(ctx context.Context) error {
	m.mu.Lock()
	if err := m.checkModeLocked(ModeTopic); err != nil {
		m.mu.Unlock()
		return err
	}
	pf := m.snap.Flow.(*PracticeFlow)
	switch {
	case pf.Question == nil:
		m.mu.Unlock()
		return ErrNoQuestion
	case !pf.Graded():
		m.mu.Unlock()
		return ErrNotGraded
	case pf.Elaboration != "":
		m.mu.Unlock()
		return ErrElaborated
	case m.loading.Elaboration:
		m.mu.Unlock()
		return ErrBusy
	}
	m.loading.Elaboration = true
	job := m.jobLocked()
	q := pf.Question.Clone()
	m.mu.Unlock()
	m.notify()

	cctx, cancel := callContext(ctx, job.flowCtx)
	defer cancel()
	text, err := m.gen.Elaborate(cctx, q)

	defer m.notify()
	m.mu.Lock()
	defer m.mu.Unlock()

	if job.epoch != m.epoch {
		return ErrStale
	}
	m.loading.Elaboration = false
	if err != nil {
		m.log.Warn("elaboration failed", "topic", q.Topic, "error", err)
		return fmt.Errorf("elaborate: %w", err)
	}
	m.snap.Flow.(*PracticeFlow).Elaboration = text
	m.persistLocked(ctx)
	return nil
}

// ResumeSession restores the saved session verbatim. An unreadable
// snapshot is discarded and a fresh practice session is started instead.
func (m *Machine) ResumeSession(ctx context.Context) error {
	m.mu.Lock()
	if !m.resumePending {
		m.mu.Unlock()
		return ErrNothingToResume
	}
	m.invalidateLocked()
	m.resumePending = false

	saved, ok := m.loadLocked(ctx)
	if !ok {
		m.snap = NewSnapshot()
		job := m.beginQuestionLocked(ctx)
		m.mu.Unlock()
		m.notify()
		return m.runQuestion(ctx, job)
	}

	m.snap = saved
	if ef, isExam := saved.Flow.(*ExamFlow); isExam && ef.InProgress() {
		if ef.Remaining <= 0 {
			m.submitExamLocked(ctx, "timeout")
		} else {
			m.startTimerLocked()
		}
	}
	m.mu.Unlock()
	m.notify()
	return nil
}

// StartFresh discards the saved session and resets the current flow,
// keeping mode and difficulty. In practice mode a new question is fetched.
func (m *Machine) StartFresh(ctx context.Context) error {
	m.mu.Lock()
	m.invalidateLocked()
	m.resumePending = false
	m.removeLocked(ctx)

	mode := m.snap.Mode()
	m.snap = Snapshot{Difficulty: m.snap.Difficulty, Flow: emptyFlow(mode)}
	if mode != ModeTopic {
		m.persistLocked(ctx)
		m.mu.Unlock()
		m.notify()
		return nil
	}
	job := m.beginQuestionLocked(ctx)
	m.mu.Unlock()
	m.notify()
	return m.runQuestion(ctx, job)
}

// ReturnToHub ends the session: the saved snapshot is removed and the
// machine returns to its initial state without fetching.
func (m *Machine) ReturnToHub(ctx context.Context) {
	m.mu.Lock()
	m.invalidateLocked()
	m.resumePending = false
	m.snap = NewSnapshot()
	m.removeLocked(ctx)
	m.mu.Unlock()
	m.notify()
}

// Leave suspends the session: the countdown stops and in-flight requests
// are abandoned, but the saved snapshot is kept for a later resume.
func (m *Machine) Leave() {
	m.mu.Lock()
	m.invalidateLocked()
	m.mu.Unlock()
	m.notify()
}

// View returns a deep copy of the current state.
func (m *Machine) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return View{
		Snapshot:      m.snap.Clone(),
		ResumePending: m.resumePending,
		Loading:       m.loading,
		Topic:         m.topicLocked(),
	}
}

// fetchJob carries what a generation call needs once the lock is
// released.
type fetchJob struct {
	epoch      uint64
	flowCtx    context.Context
	topic      string
	difficulty problemgen.Difficulty
}

func (m *Machine) jobLocked() fetchJob {
	return fetchJob{
		epoch:      m.epoch,
		flowCtx:    m.flowCtx,
		topic:      m.topicLocked(),
		difficulty: m.snap.Difficulty,
	}
}

// beginQuestionLocked clears the practice flow and marks a question
// fetch in flight. Any earlier fetch or elaboration is abandoned.
func (m *Machine) beginQuestionLocked(ctx context.Context) fetchJob {
	m.invalidateLocked()
	m.snap.Flow = &PracticeFlow{}
	m.loading.Question = true
	m.persistLocked(ctx)
	return m.jobLocked()
}

func (m *Machine) runQuestion(ctx context.Context, job fetchJob) error {
	cctx, cancel := callContext(ctx, job.flowCtx)
	defer cancel()
	q, err := m.gen.Question(cctx, job.topic, job.difficulty)

	defer m.notify()
	m.mu.Lock()
	defer m.mu.Unlock()

	if job.epoch != m.epoch {
		return ErrStale
	}
	m.loading.Question = false
	if err != nil {
		m.log.Warn("question fetch failed", "topic", job.topic, "difficulty", job.difficulty, "error", err)
		return fmt.Errorf("fetch question: %w", err)
	}
	m.snap.Flow.(*PracticeFlow).Question = q
	m.persistLocked(ctx)
	return nil
}

func (m *Machine) topicLocked() string {
	if m.initialTopic != "" {
		return m.initialTopic
	}
	return m.cfg.DefaultTopic
}

func (m *Machine) checkModeLocked(want Mode) error {
	if m.resumePending {
		return ErrResumePending
	}
	if m.snap.Mode() != want {
		return ErrWrongMode
	}
	return nil
}

// invalidateLocked abandons the current flow's in-flight work: pending
// generation results become stale and the countdown stops.
func (m *Machine) invalidateLocked() {
	m.epoch++
	m.flowCancel()
	m.flowCtx, m.flowCancel = context.WithCancel(context.Background())
	m.loading = Loading{}
	m.stopTimerLocked()
}

func (m *Machine) newMistake(id string, q *problemgen.Question, yours string) mistakes.Mistake {
	return mistakes.Mistake{
		ID:            id,
		Topic:         q.Topic,
		Date:          mistakes.FormatDate(m.now()),
		Question:      q.Text,
		YourAnswer:    yours,
		CorrectAnswer: q.Answer,
		Explanation:   q.Explanation,
	}
}

func (m *Machine) recordLocked(ctx context.Context, mk mistakes.Mistake, source string) {
	if err := m.mistakes.Append(ctx, mk); err != nil {
		m.log.Error("failed to record mistake", "topic", mk.Topic, "id", mk.ID, "error", err)
		return
	}
	m.metrics.MistakeRecorded(source)
}

func (m *Machine) completeLocked(ctx context.Context, topic string) {
	if err := m.topics.Complete(ctx, topic); err != nil {
		m.log.Error("failed to mark topic complete", "topic", topic, "error", err)
	}
}

// loadLocked reads the saved snapshot. Missing, unreadable and corrupt
// snapshots all report false; corrupt ones are removed.
func (m *Machine) loadLocked(ctx context.Context) (Snapshot, bool) {
	data, found, err := m.kv.Get(ctx, store.KeySession)
	if err != nil {
		m.log.Error("failed to read saved session", "key", store.KeySession, "error", err)
		return Snapshot{}, false
	}
	if !found {
		return Snapshot{}, false
	}
	snap, err := Decode(data)
	if err != nil {
		m.log.Warn("discarding corrupt saved session", "key", store.KeySession, "error", err)
		m.removeLocked(ctx)
		return Snapshot{}, false
	}
	return snap, true
}

func (m *Machine) persistLocked(ctx context.Context) {
	data, err := Encode(m.snap)
	if err != nil {
		m.log.Error("failed to encode session", "error", err)
		return
	}
	if err := m.kv.Set(ctx, store.KeySession, data); err != nil {
		m.log.Error("failed to persist session", "key", store.KeySession, "error", err)
	}
}

func (m *Machine) removeLocked(ctx context.Context) {
	if err := m.kv.Remove(ctx, store.KeySession); err != nil {
		m.log.Error("failed to clear saved session", "key", store.KeySession, "error", err)
	}
}

// callContext returns a context cancelled when either ctx or flow is.
func callContext(ctx, flow context.Context) (context.Context, context.CancelFunc) {
	cctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(flow, cancel)
	return cctx, func() {
		stop()
		cancel()
	}
}

func emptyFlow(mode Mode) Flow {
	switch mode {
	case ModeExam:
		return &ExamFlow{}
	case ModePaper:
		return &PaperFlow{}
	}
	return &PracticeFlow{}
}
