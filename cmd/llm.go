package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded lesson-generation requests",
}

// withEvents opens the database for read-only inspection commands.
func withEvents(cmd *cobra.Command, fn func(store.EventRepo) error) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s.EventRepo())
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		lessonID, _ := cmd.Flags().GetString("lesson")

		return withEvents(cmd, func(repo store.EventRepo) error {
			events, err := repo.QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			events = lo.Filter(events, func(e store.LLMEvent, _ int) bool {
				return (purpose == "" || e.Purpose == purpose) && (lessonID == "" || e.LessonID == lessonID)
			})
			if len(events) == 0 {
				fmt.Println("No LLM events found.")
				return nil
			}

			fmt.Printf("%-5s  %-19s  %-22s  %-28s  %-6s  %-6s  %-7s  %s\n",
				"ID", "Timestamp", "Lesson", "Model", "In", "Out", "Ms", "OK")
			fmt.Println(strings.Repeat("─", 108))

			bad := color.New(color.FgRed)
			for _, e := range events {
				line := fmt.Sprintf("%-5d  %-19s  %-22s  %-28s  %-6d  %-6d  %-7d",
					e.ID,
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					truncate(e.LessonID, 22),
					truncate(e.Model, 28),
					e.InputTokens,
					e.OutputTokens,
					e.LatencyMs,
				)
				if e.Success {
					fmt.Println(line, " ✓")
				} else {
					bad.Println(line, " ✗")
				}
			}
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		return withEvents(cmd, func(repo store.EventRepo) error {
			e, err := repo.GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			fmt.Printf("ID:        %d\n", e.ID)
			fmt.Printf("Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
			fmt.Printf("Provider:  %s\n", e.Provider)
			fmt.Printf("Model:     %s\n", e.Model)
			fmt.Printf("Purpose:   %s\n", e.Purpose)
			if e.LessonID != "" {
				fmt.Printf("Lesson:    %s\n", e.LessonID)
			}
			fmt.Printf("Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
			fmt.Printf("Latency:   %dms\n", e.LatencyMs)
			fmt.Printf("Success:   %v\n", e.Success)
			if e.ErrorMessage != "" {
				fmt.Printf("Error:     %s\n", e.ErrorMessage)
			}

			printSection("REQUEST", e.RequestBody)
			printSection("RESPONSE", e.ResponseBody)
			return nil
		})
	},
}

func printSection(name, body string) {
	sep := strings.Repeat("─", 60)
	fmt.Println(sep)
	fmt.Println(name)
	fmt.Println(sep)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(repo store.EventRepo) error {
			ctx := cmd.Context()
			byPurpose, err := repo.LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			if len(byPurpose) == 0 {
				fmt.Println("No LLM usage recorded yet.")
				return nil
			}

			rule := strings.Repeat("─", 72)
			fmt.Println("Usage by Purpose")
			fmt.Println(rule)
			fmt.Printf("%-16s  %6s  %10s  %10s  %10s  %8s\n",
				"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
			fmt.Println(rule)
			for _, u := range byPurpose {
				fmt.Printf("%-16s  %6d  %10d  %10d  %10d  %8d\n",
					u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
			}
			fmt.Println(rule)
			fmt.Printf("%-16s  %6d  %10d  %10d  %10d\n", "TOTAL",
				lo.SumBy(byPurpose, func(u store.PurposeUsage) int { return u.Calls }),
				lo.SumBy(byPurpose, func(u store.PurposeUsage) int { return u.InputTokens }),
				lo.SumBy(byPurpose, func(u store.PurposeUsage) int { return u.OutputTokens }),
				lo.SumBy(byPurpose, func(u store.PurposeUsage) int { return u.InputTokens + u.OutputTokens }),
			)

			byModel, err := repo.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			if len(byModel) == 0 {
				return nil
			}

			fmt.Println()
			fmt.Println("Estimated Cost (USD)")
			fmt.Println(rule)
			fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
			fmt.Println(rule)

			var total float64
			var unpriced []string
			for _, u := range byModel {
				cost := "?"
				if mc := llm.LookupCost(u.Model); mc != nil {
					c := mc.Cost(u.InputTokens, u.OutputTokens)
					total += c
					cost = formatCost(c)
				} else {
					unpriced = append(unpriced, u.Model)
				}
				fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
					truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
			}
			fmt.Println(rule)
			label := "TOTAL"
			if len(unpriced) > 0 {
				label = "TOTAL (partial)"
			}
			fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
			if len(unpriced) > 0 {
				fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
			}
			return nil
		})
	},
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. lesson-gen)")
	llmListCmd.Flags().StringP("lesson", "l", "", "Filter by lesson id")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
