package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/itchyny/json2yaml"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/lesson"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List the course with lock state and effective difficulty",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		locked := color.New(color.FgHiBlack)
		done := color.New(color.FgGreen)

		fmt.Printf("%-3s  %-22s  %-28s  %-12s  %-12s  %5s  %s\n",
			"#", "ID", "Title", "Base", "Effective", "XP", "State")
		fmt.Println(strings.Repeat("─", 100))

		for _, l := range e.course.ListLessons(e.course.Entitled()) {
			state, c := "open", color.New(color.Reset)
			switch {
			case l.IsCompleted:
				state, c = "done", done
			case l.IsLocked:
				state, c = "locked", locked
			}
			if _, ok := e.course.CachedLesson(l.ID); ok {
				state += " (cached)"
			}
			c.Printf("%-3d  %-22s  %-28s  %-12s  %-12s  %5d  %s\n",
				l.Order, l.ID, truncate(l.Title, 28), l.BaseDifficulty, l.EffectiveDifficulty, l.XPReward, state)
		}
		return nil
	},
}

var lessonsShowCmd = &cobra.Command{
	Use:   "show <lesson-id>",
	Short: "Print a generated lesson, answers included",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		generate, _ := cmd.Flags().GetBool("generate")
		asYAML, _ := cmd.Flags().GetBool("yaml")

		e, err := openEngine(cmd, generate)
		if err != nil {
			return err
		}
		defer e.Close()

		tmpl, err := catalog.GetLesson(args[0])
		if err != nil {
			return err
		}
		gl, ok := e.course.CachedLesson(tmpl.ID)
		if !ok {
			if !generate {
				return fmt.Errorf("lesson %q has not been generated yet (use --generate)", tmpl.ID)
			}
			// Locked lessons are refused unless --entitled is set.
			gl, err = e.course.PrepareLesson(cmd.Context(), tmpl.ID)
			if err != nil {
				return err
			}
		}
		return printLesson(gl, asYAML)
	},
}

var lessonsRegenerateCmd = &cobra.Command{
	Use:   "regenerate <lesson-id>",
	Short: "Drop a cached lesson so it is generated again next time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if e.course.Regenerate(cmd.Context(), args[0]) {
			fmt.Printf("Dropped cached lesson %s.\n", args[0])
		} else {
			fmt.Printf("Lesson %s was not cached.\n", args[0])
		}
		return nil
	},
}

func printLesson(gl lesson.GeneratedLesson, asYAML bool) error {
	data, err := json.MarshalIndent(gl, "", "  ")
	if err != nil {
		return err
	}
	if !asYAML {
		_, err = fmt.Println(string(data))
		return err
	}
	return json2yaml.Convert(os.Stdout, bytes.NewReader(data))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func init() {
	lessonsShowCmd.Flags().Bool("yaml", false, "Print as YAML instead of JSON")
	lessonsShowCmd.Flags().Bool("generate", false, "Generate the lesson if it is not cached")

	lessonsCmd.AddCommand(lessonsShowCmd)
	lessonsCmd.AddCommand(lessonsRegenerateCmd)
}
