// Package arena is the practice, exam and mock-paper screen. It renders
// the session machine's view and forwards key presses to it as intents.
package arena

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/eliteprep/internal/curriculum"
	"github.com/abhisek/eliteprep/internal/problemgen"
	"github.com/abhisek/eliteprep/internal/router"
	"github.com/abhisek/eliteprep/internal/screen"
	"github.com/abhisek/eliteprep/internal/screens/summary"
	"github.com/abhisek/eliteprep/internal/session"
	"github.com/abhisek/eliteprep/internal/ui/components"
	"github.com/abhisek/eliteprep/internal/ui/layout"
	"github.com/abhisek/eliteprep/internal/ui/theme"
)

// Entry is the flow the learner picked before entering the arena. It is
// ignored when a saved session is resumed.
type Entry int

const (
	EntryPractice Entry = iota
	EntryExam
	EntryPapers
)

// ArenaScreen implements screen.Screen for an active session.
type ArenaScreen struct {
	machine *session.Machine
	entry   Entry
	topic   string

	view       session.View
	opened     bool
	choice     components.MultiChoice
	choiceFor  string
	search     components.TextInput
	topicInput components.TextInput
	editTopic  bool
	paperIdx   int
	scroll     int
	spinner    spinner.Model
	errMsg     string
	examQueue  *intentQueue

	// examRunning remembers whether the last view had an exam in
	// progress, so a submission (manual or timed) opens the report once.
	examRunning bool
}

var _ screen.Screen = (*ArenaScreen)(nil)
var _ screen.KeyHintProvider = (*ArenaScreen)(nil)
var _ screen.Closer = (*ArenaScreen)(nil)
var _ screen.EscapeHandler = (*ArenaScreen)(nil)

// New creates an arena over machine. topic may be empty to use the
// configured default.
func New(machine *session.Machine, entry Entry, topic string) *ArenaScreen {
	return &ArenaScreen{
		machine:    machine,
		entry:      entry,
		topic:      topic,
		search:     components.NewTextInput("Search:", "year, season or title", 40),
		topicInput: components.NewTextInput("Topic:", "e.g. Completing the Square", 60),
		examQueue:  newIntentQueue(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(theme.Clock),
		),
	}
}

func (a *ArenaScreen) Init() tea.Cmd {
	m, topic := a.machine, a.topic
	return tea.Batch(
		func() tea.Msg {
			return openedMsg{ResumePending: m.Open(context.Background(), topic)}
		},
		a.spinner.Tick,
	)
}

func (a *ArenaScreen) Title() string {
	switch {
	case !a.opened:
		return "Arena"
	case a.view.ResumePending:
		return "Saved Session"
	}
	switch a.view.Mode() {
	case session.ModeExam:
		return "Mock Exam"
	case session.ModePaper:
		return "Past Papers"
	default:
		return "Practice"
	}
}

// Close suspends the session; the saved snapshot stays for a later resume.
func (a *ArenaScreen) Close() {
	a.machine.Leave()
}

// HandlesEscape reports whether Esc closes something inside the arena
// rather than leaving it.
func (a *ArenaScreen) HandlesEscape() bool {
	if a.editTopic {
		return true
	}
	pf := a.view.Paper()
	return pf != nil && pf.Selected != nil
}

func (a *ArenaScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case openedMsg:
		a.opened = true
		cmd := a.refresh()
		if msg.ResumePending {
			return a, cmd
		}
		return a, tea.Batch(cmd, a.enter())

	case intentDoneMsg:
		if msg.Err != nil && !errors.Is(msg.Err, session.ErrStale) {
			a.errMsg = msg.Err.Error()
		}
		return a, a.refresh()

	case ChangedMsg:
		return a, a.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyPressMsg:
		return a, a.handleKey(msg)
	}

	if a.searching() {
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

// enter issues the intent for the flow picked in the hub.
func (a *ArenaScreen) enter() tea.Cmd {
	switch a.entry {
	case EntryExam:
		return a.do(a.machine.StartExam)
	case EntryPapers:
		return tea.Batch(a.do(a.machine.EnterPapers), a.search.Init())
	default:
		return a.do(a.machine.RequestNextQuestion)
	}
}

// do runs an intent off the update loop.
func (a *ArenaScreen) do(intent func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return intentDoneMsg{Err: intent(context.Background())}
	}
}

// doInOrder runs an intent after every intent queued before it. Exam
// answers, navigation and submission go through here so that a pick is
// never applied after a later key press.
func (a *ArenaScreen) doInOrder(intent func(context.Context) error) tea.Cmd {
	q := a.examQueue
	t := q.ticket()
	return func() tea.Msg {
		return intentDoneMsg{Err: q.run(context.Background(), t, intent)}
	}
}

// refresh re-reads the machine and rebuilds widgets that depend on it.
func (a *ArenaScreen) refresh() tea.Cmd {
	a.view = a.machine.View()

	var cmd tea.Cmd
	ex := a.view.Exam()
	if ex != nil && ex.Submitted && a.examRunning {
		report := summary.New(ex)
		cmd = func() tea.Msg { return router.PushScreenMsg{Screen: report} }
	}
	a.examRunning = ex != nil && ex.InProgress()

	a.syncChoice()
	return cmd
}

func (a *ArenaScreen) syncChoice() {
	var (
		q      *problemgen.Question
		key    string
		chosen *string
	)
	if a.view.ResumePending {
		a.choice, a.choiceFor = components.MultiChoice{}, ""
		return
	}
	switch a.view.Mode() {
	case session.ModeTopic:
		if pf := a.view.Practice(); pf != nil && pf.Question != nil {
			q, chosen = pf.Question, pf.Selected
			key = "topic|" + q.Text
		}
	case session.ModeExam:
		if ex := a.view.Exam(); ex != nil && ex.Loaded() {
			q, chosen = ex.Current(), ex.Answers[ex.Index]
			key = "exam|" + q.Text
		}
	}
	if q == nil {
		a.choice, a.choiceFor = components.MultiChoice{}, ""
		return
	}
	reveal := false
	if pf := a.view.Practice(); pf != nil {
		reveal = pf.Graded()
	} else if ex := a.view.Exam(); ex != nil {
		reveal = ex.Submitted
	}
	if key != a.choiceFor || (a.choice.Locked && !reveal) {
		a.choice = components.NewMultiChoice(q.Options)
		a.choiceFor = key
	}
	a.choice.Chosen = optionIndex(q.Options, chosen)
	if reveal {
		a.choice = a.choice.Reveal(problemgen.AnswerIndex(q), a.choice.Chosen)
	}
}

func optionIndex(options []string, chosen *string) int {
	if chosen == nil {
		return -1
	}
	for i, o := range options {
		if o == *chosen {
			return i
		}
	}
	return -1
}

func (a *ArenaScreen) searching() bool {
	if a.view.ResumePending {
		return false
	}
	pf := a.view.Paper()
	return pf != nil && pf.Selected == nil
}

func (a *ArenaScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	a.errMsg = ""
	key := msg.String()

	if !a.opened {
		return nil
	}

	if a.view.ResumePending {
		switch key {
		case "r":
			return a.do(a.machine.ResumeSession)
		case "f":
			return a.do(a.machine.StartFresh)
		}
		return nil
	}

	if a.editTopic {
		return a.handleTopicKey(msg)
	}

	switch a.view.Mode() {
	case session.ModeExam:
		return a.handleExamKey(msg)
	case session.ModePaper:
		return a.handlePaperKey(msg)
	default:
		return a.handlePracticeKey(msg)
	}
}

func (a *ArenaScreen) handleTopicKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.editTopic = false
		return nil
	case "enter":
		topic := a.topicInput.Take()
		a.editTopic = false
		if topic == "" {
			return nil
		}
		if ref, ok := curriculum.FindTopic(topic); ok {
			topic = ref.Topic
		}
		a.topic = topic
		return a.do(func(ctx context.Context) error {
			return a.machine.SetInitialTopic(ctx, topic)
		})
	}
	var cmd tea.Cmd
	a.topicInput, cmd = a.topicInput.Update(msg)
	return cmd
}

func (a *ArenaScreen) handlePracticeKey(msg tea.KeyPressMsg) tea.Cmd {
	pf := a.view.Practice()
	loading := a.view.Loading.Question

	switch msg.String() {
	case "n":
		if !loading && (pf.Question == nil || pf.Graded()) {
			return a.do(a.machine.RequestNextQuestion)
		}
		return nil
	case "s":
		if pf.Question != nil && !pf.Graded() {
			return a.do(a.machine.RevealAnswer)
		}
		return nil
	case "tab":
		next := a.view.Difficulty.Next()
		return a.do(func(ctx context.Context) error {
			return a.machine.SelectDifficulty(ctx, next)
		})
	case "x":
		return a.do(a.machine.StartExam)
	case "p":
		return tea.Batch(a.do(a.machine.EnterPapers), a.search.Init())
	case "t":
		a.editTopic = true
		return a.topicInput.Init()
	}

	if pf.Question == nil {
		return nil
	}
	if pf.Graded() {
		if msg.String() == "e" && pf.Elaboration == "" && !a.view.Loading.Elaboration {
			return a.do(a.machine.RequestElaboration)
		}
		return nil
	}

	var picked int
	a.choice, picked = a.choice.Update(msg)
	if picked < 0 {
		return nil
	}
	option := pf.Question.Options[picked]
	return a.do(func(ctx context.Context) error {
		return a.machine.SubmitAnswer(ctx, option)
	})
}

func (a *ArenaScreen) handleExamKey(msg tea.KeyPressMsg) tea.Cmd {
	ex := a.view.Exam()
	key := msg.String()

	if a.view.Loading.Exam {
		return nil
	}

	if !ex.Loaded() {
		switch key {
		case "x":
			return a.do(a.machine.StartExam)
		case "b":
			return a.do(a.machine.BackToPractice)
		}
		return nil
	}

	if ex.Submitted {
		switch key {
		case "v":
			report := summary.New(ex)
			return func() tea.Msg { return router.PushScreenMsg{Screen: report} }
		case "x":
			return a.do(a.machine.StartExam)
		case "b":
			return a.do(a.machine.BackToPractice)
		case "h":
			m := a.machine
			return func() tea.Msg {
				m.ReturnToHub(context.Background())
				return router.PopToRootMsg{}
			}
		}
		return nil
	}

	switch key {
	case "left", "h":
		return a.navigate(-1)
	case "right", "l":
		return a.navigate(1)
	case "s":
		return a.doInOrder(a.machine.SubmitExam)
	}

	var picked int
	a.choice, picked = a.choice.Update(msg)
	if picked < 0 {
		return nil
	}
	index, option := ex.Index, ex.Current().Options[picked]
	return a.doInOrder(func(ctx context.Context) error {
		return a.machine.RecordExamAnswer(ctx, index, option)
	})
}

func (a *ArenaScreen) navigate(delta int) tea.Cmd {
	return a.doInOrder(func(ctx context.Context) error {
		return a.machine.NavigateExam(ctx, delta)
	})
}

func (a *ArenaScreen) handlePaperKey(msg tea.KeyPressMsg) tea.Cmd {
	pf := a.view.Paper()
	key := msg.String()

	if pf.Selected != nil {
		switch key {
		case "esc":
			a.scroll = 0
			return a.do(a.machine.ClosePaper)
		case "up", "k":
			if a.scroll > 0 {
				a.scroll--
			}
		case "down", "j":
			a.scroll++
		case "r":
			if pf.Content == nil && !a.view.Loading.Paper {
				return a.selectPaper(pf.Selected.ID)
			}
		}
		return nil
	}

	matches := curriculum.FilterPapers(a.search.Value())
	switch key {
	case "ctrl+b":
		return a.do(a.machine.BackToPractice)
	case "up":
		if a.paperIdx > 0 {
			a.paperIdx--
		}
		return nil
	case "down":
		if a.paperIdx < len(matches)-1 {
			a.paperIdx++
		}
		return nil
	case "enter":
		if a.paperIdx < len(matches) {
			return a.selectPaper(matches[a.paperIdx].ID)
		}
		return nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	a.paperIdx = 0
	return cmd
}

func (a *ArenaScreen) selectPaper(id string) tea.Cmd {
	a.scroll = 0
	return a.do(func(ctx context.Context) error {
		return a.machine.SelectMockPaper(ctx, id)
	})
}

func (a *ArenaScreen) KeyHints() []layout.KeyHint {
	if !a.opened {
		return nil
	}
	if a.view.ResumePending {
		return []layout.KeyHint{
			{Key: "R", Description: "Resume"},
			{Key: "F", Description: "Start fresh"},
			{Key: "Esc", Description: "Hub"},
		}
	}
	if a.editTopic {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Set topic"},
			{Key: "Esc", Description: "Cancel"},
		}
	}

	switch a.view.Mode() {
	case session.ModeExam:
		ex := a.view.Exam()
		if ex.Submitted {
			return []layout.KeyHint{
				{Key: "V", Description: "Report"},
				{Key: "X", Description: "New exam"},
				{Key: "B", Description: "Practice"},
				{Key: "H", Description: "Finish"},
			}
		}
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "←→", Description: "Question"},
			{Key: "S", Description: "Submit"},
			{Key: "Esc", Description: "Pause"},
		}
	case session.ModePaper:
		if a.view.Paper().Selected != nil {
			return []layout.KeyHint{
				{Key: "↑↓", Description: "Scroll"},
				{Key: "Esc", Description: "Catalog"},
			}
		}
		return []layout.KeyHint{
			{Key: "Type", Description: "Search"},
			{Key: "Enter", Description: "Generate"},
			{Key: "Ctrl+B", Description: "Practice"},
			{Key: "Esc", Description: "Hub"},
		}
	}

	pf := a.view.Practice()
	if pf.Graded() {
		return []layout.KeyHint{
			{Key: "N", Description: "Next"},
			{Key: "E", Description: "Explain"},
			{Key: "Tab", Description: "Difficulty"},
			{Key: "X", Description: "Exam"},
			{Key: "Esc", Description: "Hub"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "S", Description: "Show answer"},
		{Key: "T", Description: "Topic"},
		{Key: "Tab", Description: "Difficulty"},
		{Key: "X", Description: "Exam"},
		{Key: "P", Description: "Papers"},
	}
}
