package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/eliteprep/internal/curriculum"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Browse the syllabus and completed topics",
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chapters and topics (optionally for one subject)",
	RunE: func(cmd *cobra.Command, args []string) error {
		code, _ := cmd.Flags().GetString("subject")

		subjects := curriculum.Subjects()
		if code != "" {
			s, err := curriculum.SubjectByCode(code)
			if err != nil {
				return err
			}
			subjects = []curriculum.Subject{s}
		}

		svc, cleanup, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		out := cmd.OutOrStdout()
		for _, s := range subjects {
			fmt.Fprintf(out, "%s  %s\n", s.Code, s.Title)
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, ch := range s.Chapters {
				done, total := curriculum.ChapterProgress(ch, svc.Topics.Has)
				fmt.Fprintf(out, "  %-44s  %d/%d\n", ch.Title, done, total)
				for _, t := range ch.Topics {
					mark := " "
					if svc.Topics.Has(t) {
						mark = "✓"
					}
					fmt.Fprintf(out, "    %s %s\n", mark, t)
				}
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%d of %d topics completed\n", svc.Topics.Len(), len(curriculum.AllTopics()))
		return nil
	},
}

var topicsToggleCmd = &cobra.Command{
	Use:   "toggle <topic>",
	Short: "Mark a topic completed, or clear the mark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, ok := curriculum.FindTopic(args[0])
		if !ok {
			return fmt.Errorf("unknown topic %q", args[0])
		}

		svc, cleanup, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		done, err := svc.Topics.Toggle(commandContext(cmd), ref.Topic)
		if err != nil {
			return fmt.Errorf("toggle topic: %w", err)
		}
		state := "not completed"
		if done {
			state = "completed"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s.\n", ref.Topic, state)
		return nil
	},
}

var topicsSummaryCmd = &cobra.Command{
	Use:   "summary <topic>",
	Short: "Ask the tutor for revision notes on a topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := args[0]
		if ref, ok := curriculum.FindTopic(topic); ok {
			topic = ref.Topic
		}

		svc, cleanup, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if svc.Tutor == nil {
			return errNoAI
		}
		notes, err := svc.Tutor.TopicSummary(commandContext(cmd), topic)
		if err != nil {
			return fmt.Errorf("topic summary: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", topic, notes)
		return nil
	},
}

func init() {
	topicsListCmd.Flags().StringP("subject", "s", "", "Subject code: P1, P2 or S1")

	topicsCmd.AddCommand(topicsListCmd)
	topicsCmd.AddCommand(topicsToggleCmd)
	topicsCmd.AddCommand(topicsSummaryCmd)
}
