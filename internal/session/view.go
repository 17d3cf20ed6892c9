package session

// View is a point-in-time copy of the machine's state for rendering.
type View struct {
	Snapshot

	// ResumePending is true while a saved session awaits Resume or Start
	// Fresh. Every other intent is refused until then.
	ResumePending bool
	Loading       Loading

	// Topic is what the next practice question or exam will be about.
	Topic string
}

// Practice returns the practice flow, or nil in another mode.
func (v View) Practice() *PracticeFlow {
	pf, _ := v.Flow.(*PracticeFlow)
	return pf
}

// Exam returns the exam flow, or nil in another mode.
func (v View) Exam() *ExamFlow {
	ef, _ := v.Flow.(*ExamFlow)
	return ef
}

// Paper returns the paper flow, or nil in another mode.
func (v View) Paper() *PaperFlow {
	pf, _ := v.Flow.(*PaperFlow)
	return pf
}
