package cmd

import (
	"fmt"
	"io"

	"github.com/abhisek/eliteprep/internal/session"
	"github.com/abhisek/eliteprep/internal/store"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or discard the saved session",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Describe the session that would be offered for resume",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		out := cmd.OutOrStdout()
		data, ok, err := svc.KV.Get(commandContext(cmd), store.KeySession)
		if err != nil {
			return fmt.Errorf("read session: %w", err)
		}
		if !ok {
			fmt.Fprintln(out, "No saved session.")
			return nil
		}
		snap, err := session.Decode(data)
		if err != nil {
			return fmt.Errorf("saved session is unreadable (run 'eliteprep session clear'): %w", err)
		}
		describeSnapshot(out, snap)
		return nil
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := svc.KV.Remove(commandContext(cmd), store.KeySession); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved session cleared.")
		return nil
	},
}

func describeSnapshot(out io.Writer, snap session.Snapshot) {
	fmt.Fprintf(out, "Mode:        %s\n", snap.Mode())
	fmt.Fprintf(out, "Difficulty:  %s\n", snap.Difficulty)
	if snap.IsEmpty() {
		fmt.Fprintln(out, "Nothing in progress.")
		return
	}

	switch f := snap.Flow.(type) {
	case *session.PracticeFlow:
		fmt.Fprintf(out, "Topic:       %s\n", f.Question.Topic)
		fmt.Fprintf(out, "Question:    %s\n", f.Question.Text)
		switch {
		case f.Selected == nil:
			fmt.Fprintln(out, "Status:      awaiting an answer")
		case f.Feedback == session.FeedbackCorrect:
			fmt.Fprintf(out, "Status:      answered %s (correct)\n", *f.Selected)
		default:
			fmt.Fprintf(out, "Status:      answered %s (wrong)\n", *f.Selected)
		}
	case *session.ExamFlow:
		fmt.Fprintf(out, "Topic:       %s\n", f.Topic)
		fmt.Fprintf(out, "Answered:    %d of %d\n", f.Answered(), len(f.Questions))
		if f.Submitted {
			fmt.Fprintf(out, "Score:       %d/%d\n", f.Score(), len(f.Questions))
		} else {
			fmt.Fprintf(out, "Time left:   %d:%02d\n", f.Remaining/60, f.Remaining%60)
		}
	case *session.PaperFlow:
		fmt.Fprintf(out, "Paper:       %s\n", f.Selected.Title)
		fmt.Fprintf(out, "Questions:   %d\n", len(f.Content))
	}
}

func init() {
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionClearCmd)
}
