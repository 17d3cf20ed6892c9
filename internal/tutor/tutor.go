// Package tutor produces the free-form study aids around the quiz: daily
// wisdom, study plans, topic notes, mistake diagnostics, chapter briefs
// and tutor chat.
package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/eliteprep/internal/curriculum"
	"github.com/abhisek/eliteprep/internal/gateway"
	"github.com/abhisek/eliteprep/internal/llm"
	"github.com/abhisek/eliteprep/internal/logger"
	"github.com/abhisek/eliteprep/internal/mistakes"
	"github.com/abhisek/eliteprep/internal/problemgen"
)

// Tutor generates study aids through the gateway.
type Tutor struct {
	gw  *gateway.Gateway
	log *logger.Logger
}

// New creates a Tutor.
func New(gw *gateway.Gateway, log *logger.Logger) *Tutor {
	return &Tutor{gw: gw, log: log}
}

// DailyWisdom returns one motivational sentence. It never fails: any
// gateway error yields FallbackWisdom.
func (t *Tutor) DailyWisdom(ctx context.Context) string {
	text, err := t.text(llm.WithPurpose(ctx, PurposeWisdom), wisdomPrompt)
	if err != nil {
		t.log.Warn("daily wisdom unavailable", "error", err)
		return FallbackWisdom
	}
	return text
}

// StudyPlan writes a short revision schedule for the given mock grades,
// e.g. "P1: B, P2: C, S1: A".
func (t *Tutor) StudyPlan(ctx context.Context, grades string) (string, error) {
	grades = strings.TrimSpace(grades)
	if grades == "" {
		return "", fmt.Errorf("grades are required")
	}
	return t.text(llm.WithPurpose(ctx, PurposeStudyPlan), buildStudyPlanPrompt(grades))
}

// TopicSummary writes a revision note for topic.
func (t *Tutor) TopicSummary(ctx context.Context, topic string) (string, error) {
	return t.text(llm.WithPurpose(ctx, PurposeSummary), buildSummaryPrompt(topic))
}

// DiagnosticReport analyses the most recent mistakes. list must be newest
// first, as returned by the ledger.
func (t *Tutor) DiagnosticReport(ctx context.Context, list []mistakes.Mistake) (string, error) {
	if len(list) == 0 {
		return "", fmt.Errorf("no mistakes to analyse")
	}
	if len(list) > DiagnosticWindow {
		list = list[:DiagnosticWindow]
	}
	return t.text(llm.WithPurpose(ctx, PurposeDiagnostic), buildDiagnosticPrompt(list))
}

// ChapterBrief returns a structured revision brief for ch.
func (t *Tutor) ChapterBrief(ctx context.Context, ch curriculum.Chapter) (*ChapterBrief, error) {
	ctx = llm.WithPurpose(ctx, PurposeBrief)

	var out ChapterBrief
	if err := t.gw.GenerateStructured(ctx, buildBriefPrompt(ch), ChapterBriefSchema, &out); err != nil {
		return nil, err
	}

	out.Synopsis = problemgen.Sanitize(out.Synopsis)
	out.KnowledgePoints = sanitizeAll(out.KnowledgePoints)
	out.ExaminerTips = sanitizeAll(out.ExaminerTips)
	out.FormulaVault = sanitizeAll(out.FormulaVault)
	return &out, nil
}

// Reply answers a learner's chat message about topic.
func (t *Tutor) Reply(ctx context.Context, topic string, history []Turn, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message is empty")
	}
	return t.text(llm.WithPurpose(ctx, PurposeChat), buildChatPrompt(topic, history, message))
}

func (t *Tutor) text(ctx context.Context, prompt string) (string, error) {
	out, err := t.gw.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	return problemgen.Sanitize(out), nil
}

func sanitizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = problemgen.Sanitize(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
