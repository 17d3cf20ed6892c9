package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/eliteprep/internal/curriculum"
	"github.com/abhisek/eliteprep/internal/problemgen"
	"github.com/spf13/cobra"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Search past papers and generate mock papers",
}

var papersSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "List past papers whose title, year or season matches term",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var term string
		if len(args) == 1 {
			term = args[0]
		}
		papers := curriculum.FilterPapers(term)

		out := cmd.OutOrStdout()
		if len(papers) == 0 {
			fmt.Fprintf(out, "No papers match %q.\n", term)
			return nil
		}
		t := newTable("ID", "Title", "Difficulty")
		for _, p := range papers {
			t.Row(p.ID, p.Title, p.Difficulty)
		}
		printTable(out, t)
		return nil
	},
}

var papersGenerateCmd = &cobra.Command{
	Use:   "generate <id>",
	Short: "Generate a mock paper modelled on a past paper",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paper, ok := curriculum.FindPaper(args[0])
		if !ok {
			return fmt.Errorf("unknown paper %q (see 'eliteprep papers search')", args[0])
		}

		svc, cleanup, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if svc.Generator == nil {
			return errNoAI
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Generating a mock of %s...\n", paper.Title)
		questions, err := svc.Generator.MockPaper(commandContext(cmd), paper.Title)
		if err != nil {
			return fmt.Errorf("generate paper: %w", err)
		}
		printPaper(cmd, paper, questions)
		return nil
	},
}

func printPaper(cmd *cobra.Command, paper curriculum.PastPaper, questions []problemgen.PaperQuestion) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  (%s, %d marks)\n", paper.Title, paper.Difficulty, problemgen.TotalMarks(questions))
	fmt.Fprintln(out, strings.Repeat("═", 60))
	for _, q := range questions {
		fmt.Fprintf(out, "\n%d. %s  [%d]\n", q.Number, q.Text, q.Marks)
		for _, p := range q.Parts {
			fmt.Fprintf(out, "   %s %s  [%d]\n", p.Label, p.Text, p.Marks)
		}
	}
}

func init() {
	papersCmd.AddCommand(papersSearchCmd)
	papersCmd.AddCommand(papersGenerateCmd)
}
