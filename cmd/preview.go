package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/eliteprep/internal/curriculum"
	"github.com/abhisek/eliteprep/internal/gateway"
	"github.com/abhisek/eliteprep/internal/llm"
	"github.com/abhisek/eliteprep/internal/problemgen"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated questions for a topic (no database)",
	Long: `Generate and interactively answer questions for one syllabus topic.

This is a stateless developer tool: nothing is saved, no mistakes are
recorded and no LLM events are logged. Useful for judging question quality.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("topic", "", "Syllabus topic, e.g. \"Surds\" (required)")
	previewCmd.Flags().String("difficulty", "Medium", "Easy, Medium or Hard")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
	_ = previewCmd.MarkFlagRequired("topic")
}

func runPreview(cmd *cobra.Command, args []string) error {
	topicVal, _ := cmd.Flags().GetString("topic")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")

	topic := topicVal
	if ref, ok := curriculum.FindTopic(topicVal); ok {
		topic = ref.Topic
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: %q is not in the syllabus, generating anyway\n", topicVal)
	}
	difficulty, err := problemgen.ParseDifficulty(diffVal)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	lc, ok := cfg.LLM.Resolve()
	if !ok {
		return errNoAI
	}
	ctx := commandContext(cmd)
	provider, err := llm.NewProvider(ctx, lc, llm.Deps{})
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	gen := problemgen.New(gateway.New(provider, gateway.DefaultConfig()), problemgen.DefaultConfig())

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintf(out, "Topic: %s (%s)\n", topic, difficulty)
	fmt.Fprintf(out, "Generating %d questions...\n\n", count)

	var correct, asked int
	for i := 1; i <= count; i++ {
		q, err := gen.Question(ctx, topic, difficulty)
		if err != nil {
			fmt.Fprintf(out, "Question %d: generation failed: %v\n\n", i, err)
			continue
		}
		asked++

		fmt.Fprintf(out, "── Question %d/%d ──\n", i, count)
		fmt.Fprintln(out, q.Text)
		for j, o := range q.Options {
			fmt.Fprintf(out, "  %c) %s\n", 'a'+j, o)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		choice, ok := parseChoice(scanner.Text(), q.Options)
		if !ok {
			fmt.Fprintf(out, "(skipped) Answer: %s\n\n", q.Answer)
			continue
		}

		if problemgen.CheckAnswer(choice, q) {
			correct++
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Answer)
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, asked)
	return nil
}

// parseChoice maps a typed answer to option text. It accepts a letter,
// a 1-based number or the option text itself.
func parseChoice(input string, options []string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if len(input) == 1 {
		if i := int(strings.ToLower(input)[0] - 'a'); i >= 0 && i < len(options) {
			return options[i], true
		}
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], true
	}
	for _, o := range options {
		if strings.EqualFold(o, input) {
			return o, true
		}
	}
	return "", false
}
