package tutorchat

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/eliteprep/internal/gateway"
	"github.com/abhisek/eliteprep/internal/llm"
	"github.com/abhisek/eliteprep/internal/tutor"
)

func newChat(topic string, responses ...llm.MockResponse) (*ChatScreen, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	tu := tutor.New(gateway.New(mock, gateway.DefaultConfig()), nil)
	return New(tu, topic), mock
}

func typeText(c *ChatScreen, s string) {
	for _, r := range s {
		c.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter(c *ChatScreen) {
	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		c.Update(cmd())
	}
}

func TestSendAndReply(t *testing.T) {
	c, mock := newChat("Surds", llm.MockResponse{Text: "Multiply by the conjugate."})

	typeText(c, "how do I rationalise?")
	enter(c)

	turns := c.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, tutor.Turn{Role: tutor.RoleLearner, Text: "how do I rationalise?"}, turns[0])
	assert.Equal(t, tutor.Turn{Role: tutor.RoleTutor, Text: "Multiply by the conjugate."}, turns[1])
	assert.Empty(t, c.input.Value())

	call, ok := mock.LastCall()
	require.True(t, ok)
	assert.Contains(t, call.Messages[0].Content, `"Surds"`)
	assert.Contains(t, c.View(100, 30), "Multiply by the conjugate.")
}

func TestHistoryIsReplayed(t *testing.T) {
	c, mock := newChat("", llm.MockResponse{Text: "first"}, llm.MockResponse{Text: "second"})

	typeText(c, "hello")
	enter(c)
	typeText(c, "again")
	enter(c)

	assert.Len(t, c.Turns(), 4)
	prompt := mock.Calls[1].Messages[0].Content
	assert.Contains(t, prompt, "learner: hello")
	assert.Contains(t, prompt, "tutor: first")
	assert.Contains(t, prompt, GeneralTopic)
}

func TestEmptyMessageIgnored(t *testing.T) {
	c, mock := newChat("Surds")
	typeText(c, "   ")
	enter(c)
	assert.Empty(t, c.Turns())
	assert.Zero(t, mock.CallCount())
}

func TestReplyError(t *testing.T) {
	c, _ := newChat("Surds", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	typeText(c, "help")
	enter(c)

	assert.Len(t, c.Turns(), 1)
	assert.False(t, c.waiting)
	assert.Contains(t, c.View(100, 30), "Error:")
}
