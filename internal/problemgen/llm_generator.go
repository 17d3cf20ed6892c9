package problemgen

import (
	"context"
	"fmt"

	"github.com/abhisek/eliteprep/internal/gateway"
	"github.com/abhisek/eliteprep/internal/llm"
)

// Purpose labels recorded with each generation request.
const (
	PurposeQuestion    = "question-gen"
	PurposeExamBatch   = "exam-batch"
	PurposeElaboration = "elaboration"
	PurposeMockPaper   = "mock-paper"
)

// LLMGenerator produces questions, explanations and mock papers through
// the generation gateway.
type LLMGenerator struct {
	gw      *gateway.Gateway
	config  Config
	history *history
}

// New creates a new LLMGenerator with the given gateway and config.
func New(gw *gateway.Gateway, cfg Config) *LLMGenerator {
	return &LLMGenerator{
		gw:      gw,
		config:  cfg,
		history: newHistory(cfg.MaxPriorQuestions),
	}
}

type questionBatch struct {
	Questions []Question `json:"questions"`
}

type paperOutput struct {
	Questions []PaperQuestion `json:"questions"`
}

// Question generates one sanitized, validated question tagged with topic.
func (g *LLMGenerator) Question(ctx context.Context, topic string, difficulty Difficulty) (*Question, error) {
	ctx = llm.WithPurpose(ctx, PurposeQuestion)

	var raw Question
	prompt := buildQuestionPrompt(topic, difficulty, g.history.prompt(topic))
	if err := g.gw.GenerateStructured(ctx, prompt, QuestionSchema, &raw); err != nil {
		return nil, err
	}

	q, err := g.finish(raw, topic, QuestionSchema)
	if err != nil {
		return nil, err
	}
	g.history.add(topic, q.Text)
	return q, nil
}

// Batch generates up to n questions for a timed exam. Every question is
// sanitized and validated; one bad question fails the whole batch.
func (g *LLMGenerator) Batch(ctx context.Context, topic string, difficulty Difficulty, n int) ([]Question, error) {
	if n < 1 {
		return nil, fmt.Errorf("batch size must be positive, got %d", n)
	}
	ctx = llm.WithPurpose(ctx, PurposeExamBatch)

	var raw questionBatch
	prompt := buildBatchPrompt(topic, difficulty, n, g.history.prompt(topic))
	if err := g.gw.GenerateStructured(ctx, prompt, QuestionBatchSchema, &raw); err != nil {
		return nil, err
	}

	if len(raw.Questions) > n {
		raw.Questions = raw.Questions[:n]
	}

	out := make([]Question, 0, len(raw.Questions))
	texts := make([]string, 0, len(raw.Questions))
	for _, r := range raw.Questions {
		q, err := g.finish(r, topic, QuestionBatchSchema)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
		texts = append(texts, q.Text)
	}
	g.history.add(topic, texts...)
	return out, nil
}

// Elaborate returns a sanitized step-by-step explanation of q.
func (g *LLMGenerator) Elaborate(ctx context.Context, q *Question) (string, error) {
	ctx = llm.WithPurpose(ctx, PurposeElaboration)

	text, err := g.gw.GenerateText(ctx, buildElaborationPrompt(q))
	if err != nil {
		return "", err
	}
	return Sanitize(text), nil
}

// MockPaper generates a written paper modelled on the past paper title.
func (g *LLMGenerator) MockPaper(ctx context.Context, title string) ([]PaperQuestion, error) {
	ctx = llm.WithPurpose(ctx, PurposeMockPaper)

	var raw paperOutput
	if err := g.gw.GenerateStructured(ctx, buildMockPaperPrompt(title), MockPaperSchema, &raw); err != nil {
		return nil, err
	}

	out := make([]PaperQuestion, len(raw.Questions))
	for i, pq := range raw.Questions {
		out[i] = pq.Sanitized()
	}
	return out, nil
}

// finish sanitizes a raw question, tags it and runs the validator chain.
func (g *LLMGenerator) finish(raw Question, topic string, schema *llm.Schema) (*Question, error) {
	q := raw.Sanitized()
	q.Topic = topic
	q.Origin = OriginAI

	if verr := runValidators(g.config.Validators, &q); verr != nil {
		return nil, &gateway.ValidationError{Schema: schema.Name, Err: verr}
	}
	return &q, nil
}
