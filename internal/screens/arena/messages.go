package arena

// ChangedMsg tells the arena that the session machine changed state
// outside of an intent it issued, e.g. a countdown tick.
type ChangedMsg struct{}

// openedMsg is sent once the machine has been activated.
type openedMsg struct {
	ResumePending bool
}

// intentDoneMsg is sent when an intent issued to the machine returns.
type intentDoneMsg struct {
	Err error
}
