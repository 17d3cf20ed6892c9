package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/eliteprep/internal/mistakes"
	"github.com/abhisek/eliteprep/internal/tutor"
	"github.com/spf13/cobra"
)

var mistakesCmd = &cobra.Command{
	Use:   "mistakes",
	Short: "Review the mistake ledger",
}

var mistakesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded mistakes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		topic, _ := cmd.Flags().GetString("topic")

		svc, cleanup, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		out := cmd.OutOrStdout()
		t := newTable("ID", "Date", "Topic", "Your answer", "Correct")
		var shown int
		for _, m := range svc.Mistakes.List() {
			if topic != "" && !strings.EqualFold(m.Topic, topic) {
				continue
			}
			if limit > 0 && shown == limit {
				break
			}
			t.Row(m.ID, m.Date, truncate(m.Topic, 28), truncate(answerLabel(m), 14), m.CorrectAnswer)
			shown++
		}
		if shown == 0 {
			fmt.Fprintln(out, "No mistakes recorded. Keep practising!")
			return nil
		}
		printTable(out, t)
		fmt.Fprintf(out, "\n%d of %d mistakes\n", shown, svc.Mistakes.Len())
		return nil
	},
}

var mistakesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one mistake with its worked solution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		m, ok := svc.Mistakes.Get(args[0])
		if !ok {
			return fmt.Errorf("mistake %s not found", args[0])
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Topic:     %s\n", m.Topic)
		fmt.Fprintf(out, "Date:      %s\n", m.Date)
		fmt.Fprintf(out, "Question:  %s\n", m.Question)
		fmt.Fprintf(out, "You said:  %s\n", answerLabel(m))
		fmt.Fprintf(out, "Correct:   %s\n", m.CorrectAnswer)
		if m.Explanation != "" {
			fmt.Fprintf(out, "\n%s\n", m.Explanation)
		}
		return nil
	},
}

var mistakesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a mistake from the ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if _, ok := svc.Mistakes.Get(args[0]); !ok {
			return fmt.Errorf("mistake %s not found", args[0])
		}
		if err := svc.Mistakes.Delete(commandContext(cmd), args[0]); err != nil {
			return fmt.Errorf("delete mistake: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s. %d mistakes left.\n", args[0], svc.Mistakes.Len())
		return nil
	},
}

var mistakesReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Ask the tutor to diagnose your most recent mistakes",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if svc.Tutor == nil {
			return errNoAI
		}
		recent := svc.Mistakes.Recent(tutor.DiagnosticWindow)
		if len(recent) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No mistakes to analyse yet.")
			return nil
		}
		report, err := svc.Tutor.DiagnosticReport(commandContext(cmd), recent)
		if err != nil {
			return fmt.Errorf("diagnostic report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Based on your last %d mistakes:\n\n%s\n", len(recent), report)
		return nil
	},
}

func init() {
	mistakesListCmd.Flags().IntP("limit", "n", 0, "Show at most this many mistakes (0 for all)")
	mistakesListCmd.Flags().StringP("topic", "t", "", "Only show mistakes for this topic")

	mistakesCmd.AddCommand(mistakesListCmd)
	mistakesCmd.AddCommand(mistakesShowCmd)
	mistakesCmd.AddCommand(mistakesDeleteCmd)
	mistakesCmd.AddCommand(mistakesReportCmd)
}

// answerLabel renders the sentinel for skipped questions readably.
func answerLabel(m mistakes.Mistake) string {
	if m.Unanswered() {
		return "(skipped)"
	}
	return m.YourAnswer
}
