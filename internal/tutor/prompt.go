package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/eliteprep/internal/curriculum"
	"github.com/abhisek/eliteprep/internal/mistakes"
)

const plainText = "IMPORTANT: Use plain text only. Do not use Markdown such as **bold** or *italics*, and no LaTeX $ signs."

const wisdomPrompt = "Write one sentence of motivational wisdom for an A-Level maths student. No markdown."

func buildStudyPlanPrompt(grades string) string {
	var b strings.Builder
	b.WriteString("Act as a strict but encouraging admissions tutor.\n")
	fmt.Fprintf(&b, "Current performance: %s\n", grades)
	b.WriteString("Target: A*A*A* at A-Level.\n")
	b.WriteString("Create a high-yield 3-day revision schedule focused on fixing the weakest areas.\n")
	b.WriteString(plainText)
	b.WriteString("\nKeep it under 150 words.")
	return b.String()
}

func buildSummaryPrompt(topic string) string {
	return fmt.Sprintf("Write a one-page revision note for the A-Level maths topic %q: the key idea, the method, one short worked example and the most common exam trap.\n%s",
		topic, plainText)
}

func buildDiagnosticPrompt(recent []mistakes.Mistake) string {
	var b strings.Builder
	b.WriteString("Analyse these A-Level maths mistakes and write a root-cause report.\n")
	b.WriteString("Group them by underlying misconception, then give one concrete fix for each group.\n\n")
	b.WriteString("Mistakes:\n")
	for i, m := range recent {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, m.Topic, m.Question)
		fmt.Fprintf(&b, "   Learner answered: %s\n", m.YourAnswer)
		fmt.Fprintf(&b, "   Correct answer: %s\n", m.CorrectAnswer)
	}
	b.WriteString("\n")
	b.WriteString(plainText)
	return b.String()
}

func buildBriefPrompt(ch curriculum.Chapter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Prepare a revision brief for the chapter %q.\n", ch.Title)
	fmt.Fprintf(&b, "Topics: %s\n", strings.Join(ch.Topics, ", "))
	if ch.Details != nil && len(ch.Details.KeyPoints) > 0 {
		b.WriteString("Key points already covered in the notes:\n")
		for _, p := range ch.Details.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}
	b.WriteString("Give a short synopsis, the knowledge points a candidate must know, examiner tips and the formulae worth memorising.\n")
	b.WriteString(plainText)
	return b.String()
}

// maxHistory bounds how many earlier chat turns are replayed.
const maxHistory = 6

func buildChatPrompt(topic string, history []Turn, message string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are tutoring a student on the A-Level maths topic %q.\n", topic)
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, t := range history {
			fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Text)
		}
	}
	fmt.Fprintf(&b, "learner: %s\n", message)
	b.WriteString("Reply as the tutor in at most 120 words.\n")
	b.WriteString(plainText)
	return b.String()
}
