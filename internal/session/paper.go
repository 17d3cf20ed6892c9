package session

import (
	"context"
	"fmt"

	"github.com/abhisek/eliteprep/internal/curriculum"
)

// EnterPapers switches to mock-paper mode.
func (m *Machine) EnterPapers(ctx context.Context) error {
	defer m.notify()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.resumePending {
		return ErrResumePending
	}
	if m.snap.Mode() == ModePaper {
		return nil
	}
	m.invalidateLocked()
	m.snap.Flow = &PaperFlow{}
	m.persistLocked(ctx)
	return nil
}

// SelectMockPaper generates a mock paper modelled on the catalog entry id.
// The paper is for reading and printing; it is never graded.
func (m *Machine) SelectMockPaper(ctx context.Context, id string) error {
	paper, ok := curriculum.FindPaper(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPaper, id)
	}

	m.mu.Lock()
	if err := m.checkModeLocked(ModePaper); err != nil {
		m.mu.Unlock()
		return err
	}
	if m.loading.Paper {
		m.mu.Unlock()
		return ErrBusy
	}
	pf := m.snap.Flow.(*PaperFlow)
	pf.Selected = &paper
	pf.Content = nil
	m.loading.Paper = true
	m.persistLocked(ctx)
	job := m.jobLocked()
	m.mu.Unlock()
	m.notify()

	cctx, cancel := callContext(ctx, job.flowCtx)
	defer cancel()
	content, err := m.gen.MockPaper(cctx, paper.Title)

	defer m.notify()
	m.mu.Lock()
	defer m.mu.Unlock()

	if job.epoch != m.epoch {
		return ErrStale
	}
	m.loading.Paper = false
	if err != nil {
		m.log.Warn("mock paper generation failed", "paper", paper.ID, "error", err)
		return fmt.Errorf("generate mock paper: %w", err)
	}
	m.snap.Flow.(*PaperFlow).Content = content
	m.persistLocked(ctx)
	return nil
}

// ClosePaper returns to the paper list, abandoning any generation.
func (m *Machine) ClosePaper(ctx context.Context) error {
	defer m.notify()
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkModeLocked(ModePaper); err != nil {
		return err
	}
	m.invalidateLocked()
	m.snap.Flow = &PaperFlow{}
	m.persistLocked(ctx)
	return nil
}
