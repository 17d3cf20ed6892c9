package problemgen

import (
	"fmt"
	"strings"
)

const plainTextRule = "IMPORTANT: Use plain text only. No LaTeX symbols like '$' and no Markdown symbols like '*'."

// buildQuestionPrompt asks for one multiple-choice question on topic.
func buildQuestionPrompt(topic string, difficulty Difficulty, prior string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s difficulty multiple-choice A-Level Math question for Edexcel IAL on the topic: %q.\n", difficulty, topic)
	b.WriteString("Give four options. The 'answer' must be the full text of the correct option, copied exactly.\n")
	b.WriteString(plainTextRule)
	b.WriteString("\n\nAlready asked on this topic:\n")
	b.WriteString(prior)
	return b.String()
}

// buildBatchPrompt asks for n distinct questions for a timed exam.
func buildBatchPrompt(topic string, difficulty Difficulty, n int, prior string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate exactly %d different %s difficulty multiple-choice A-Level Math questions for Edexcel IAL on the topic: %q.\n", n, difficulty, topic)
	b.WriteString("Each question has four options. Each 'answer' must be the full text of its correct option, copied exactly.\n")
	b.WriteString(plainTextRule)
	b.WriteString("\n\nAlready asked on this topic:\n")
	b.WriteString(prior)
	return b.String()
}

// buildElaborationPrompt asks for a step-by-step explanation of a graded
// question.
func buildElaborationPrompt(q *Question) string {
	return fmt.Sprintf("Explain this A-Level Math question step by step: %q.\nCorrect answer: %q.\nShow the logic an examiner expects, then name the most common trap.\n%s",
		q.Text, q.Answer, plainTextRule)
}

// buildMockPaperPrompt asks for a full paper modelled on a past paper.
func buildMockPaperPrompt(title string) string {
	return fmt.Sprintf("Write a mock exam paper in the style of %q.\nNumber the questions from 1, give marks for every question and for every labelled sub-part, and use an empty parts list when a question has no sub-parts.\n%s",
		title, plainTextRule)
}
