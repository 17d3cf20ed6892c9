package problemgen

import (
	"fmt"
	"strings"
	"sync"
)

// history keeps the most recent question texts per topic so the next
// prompt can ask the model not to repeat them. A text asked again moves
// to the end instead of appearing twice.
type history struct {
	mu    sync.Mutex
	limit int
	texts map[string][]string
}

func newHistory(limit int) *history {
	return &history{limit: limit, texts: make(map[string][]string)}
}

func sameQuestion(a, b string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(a), " "), strings.Join(strings.Fields(b), " "))
}

func (h *history) add(topic string, texts ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := h.texts[topic]
	for _, t := range texts {
		kept := list[:0]
		for _, old := range list {
			if !sameQuestion(old, t) {
				kept = append(kept, old)
			}
		}
		list = append(kept, t)
	}
	if h.limit > 0 && len(list) > h.limit {
		list = list[len(list)-h.limit:]
	}
	h.texts[topic] = list
}

// prompt renders the topic's history as a numbered list, or "None".
func (h *history) prompt(topic string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := h.texts[topic]
	if len(list) == 0 {
		return "None"
	}
	lines := make([]string, len(list))
	for i, t := range list {
		lines[i] = fmt.Sprintf("%d. %s", i+1, t)
	}
	return strings.Join(lines, "\n")
}
