package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/store"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show XP, words learned, and completed lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		t, err := e.course.Totals(cmd.Context())
		if err != nil {
			return fmt.Errorf("read rewards: %w", err)
		}
		ids := e.course.CompletedIDs()

		bold := color.New(color.Bold)
		bold.Printf("XP:             %d\n", t.XP)
		bold.Printf("Words learned:  %d\n", t.WordsLearned)
		fmt.Printf("Lessons:        %d of %d\n", len(ids), len(e.course.ListLessons(false)))
		if len(ids) > 0 {
			fmt.Printf("Completed:      %s\n", strings.Join(ids, ", "))
		}

		history, _ := cmd.Flags().GetInt("history")
		if history <= 0 {
			return nil
		}
		events, err := e.store.EventRepo().QueryRewards(cmd.Context(), store.QueryOpts{Limit: history})
		if err != nil {
			return fmt.Errorf("query rewards: %w", err)
		}
		fmt.Println()
		for _, ev := range events {
			fmt.Printf("%s  %-6s  %-22s  +%d XP", ev.Timestamp.Local().Format("2006-01-02 15:04"), ev.Kind, ev.LessonID, ev.XP)
			if ev.Words > 0 {
				fmt.Printf("  +%d words", ev.Words)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	progressCmd.Flags().Int("history", 0, "Also list the most recent N reward events")
}
