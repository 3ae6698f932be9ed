package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lingua",
	Short: "AI language lessons in the terminal",
	Long:  "Lingua generates language lessons with an LLM, grades answers, and tracks progress through a fixed course.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; the process environment still applies.
		_ = godotenv.Load()
		return nil
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGUA_DB env var)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for progress storage (overrides LINGUA_REDIS_ADDR)")
	rootCmd.PersistentFlags().Bool("entitled", false, "Unlock every lesson (also LINGUA_ENTITLED=true)")
	rootCmd.PersistentFlags().String("log", "warn", "Log level (debug, info, warn, error) or prod for JSON")

	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LINGUA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func resolveRedisAddr(cmd *cobra.Command) string {
	if a, _ := cmd.Flags().GetString("redis"); a != "" {
		return a
	}
	return os.Getenv("LINGUA_REDIS_ADDR")
}

func resolveEntitled(cmd *cobra.Command) bool {
	if e, _ := cmd.Flags().GetBool("entitled"); e {
		return true
	}
	e, _ := strconv.ParseBool(os.Getenv("LINGUA_ENTITLED"))
	return e
}

func newLogger(cmd *cobra.Command) (*logger.Logger, error) {
	mode, _ := cmd.Flags().GetString("log")
	return logger.New(mode)
}
