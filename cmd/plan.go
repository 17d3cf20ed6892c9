package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a study plan from your mock grades",
	RunE: func(cmd *cobra.Command, args []string) error {
		grades, _ := cmd.Flags().GetString("grades")

		svc, cleanup, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if svc.Tutor == nil {
			return errNoAI
		}
		plan, err := svc.Tutor.StudyPlan(commandContext(cmd), grades)
		if err != nil {
			return fmt.Errorf("study plan: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), plan)
		return nil
	},
}

func init() {
	planCmd.Flags().String("grades", "", `Recent mock grades, e.g. "P1: B, S1: C"`)
	_ = planCmd.MarkFlagRequired("grades")
}
