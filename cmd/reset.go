package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Forget completed lessons, cached generated lessons, and rewards.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this erases all progress; rerun with --yes to confirm")
		}

		e, err := openEngine(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.course.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Println("Progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
