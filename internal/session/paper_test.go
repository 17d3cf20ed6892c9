package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/eliteprep/internal/problemgen"
)

func TestMockPaperFlow(t *testing.T) {
	h := newHarness(t, testConfig())
	ctx := context.Background()
	h.gen.paper = []problemgen.PaperQuestion{
		{Number: 1, Text: "Solve 2^x = 5", Marks: 3, Parts: []problemgen.PaperPart{}},
	}
	require.NoError(t, h.m.Start(ctx, "Surds"))

	assert.ErrorIs(t, h.m.SelectMockPaper(ctx, "jan24_p1"), ErrWrongMode)

	require.NoError(t, h.m.EnterPapers(ctx))
	assert.ErrorIs(t, h.m.SelectMockPaper(ctx, "nope"), ErrUnknownPaper)

	require.NoError(t, h.m.SelectMockPaper(ctx, "jan24_p1"))
	pf := h.m.View().Paper()
	require.NotNil(t, pf.Selected)
	assert.Equal(t, "Jan 2024 - Pure Math 1", pf.Selected.Title)
	assert.Len(t, pf.Content, 1)
	assert.Equal(t, "paper Jan 2024 - Pure Math 1", h.gen.Calls()[1])
	assert.Empty(t, h.mistakes.List())

	snap, _ := h.stored(t)
	assert.Equal(t, h.m.View().Snapshot, snap)

	require.NoError(t, h.m.ClosePaper(ctx))
	pf = h.m.View().Paper()
	assert.Nil(t, pf.Selected)
	assert.Nil(t, pf.Content)
}

func TestMockPaper_FailureKeepsSelection(t *testing.T) {
	h := newHarness(t, testConfig())
	ctx := context.Background()
	require.NoError(t, h.m.Start(ctx, "Surds"))
	require.NoError(t, h.m.EnterPapers(ctx))
	h.gen.setErr(errors.New("timeout"))

	require.Error(t, h.m.SelectMockPaper(ctx, "jun23_s1"))

	v := h.m.View()
	assert.False(t, v.Loading.Paper)
	assert.Equal(t, "jun23_s1", v.Paper().Selected.ID)
	assert.Nil(t, v.Paper().Content)
}

func TestBackToPractice(t *testing.T) {
	h := newHarness(t, testConfig())
	ctx := context.Background()
	require.NoError(t, h.m.Start(ctx, "Surds"))
	require.NoError(t, h.m.EnterPapers(ctx))

	require.NoError(t, h.m.BackToPractice(ctx))

	v := h.m.View()
	assert.Equal(t, ModeTopic, v.Mode())
	assert.NotNil(t, v.Practice().Question)
	assert.Len(t, h.gen.Calls(), 2)

	require.NoError(t, h.m.BackToPractice(ctx))
	assert.Len(t, h.gen.Calls(), 2)
}
