package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/course"
	"github.com/abhisek/lingua/internal/session"
)

var practiceCmd = &cobra.Command{
	Use:   "practice <lesson-id>",
	Short: "Play a lesson in the terminal",
	Long: `Generate (or load from cache) a lesson and answer its exercises.

Type the number of an option or the answer itself. For word order, type
the words in order separated by spaces. For matching, type pairs as
"left=right, left=right". An empty line skips; q quits.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		delay, _ := cmd.Flags().GetDuration("feedback-delay")
		fmt.Println("Preparing lesson...")
		gl, err := e.course.StartLesson(cmd.Context(), args[0])
		var genErr *content.GenerationError
		switch {
		case errors.Is(err, course.ErrLessonLocked):
			return fmt.Errorf("%w: complete the previous lesson first", err)
		case errors.As(err, &genErr):
			return fmt.Errorf("could not generate lesson (%s), try again: %w", genErr.Cause, err)
		case err != nil:
			return err
		}

		title := color.New(color.Bold, color.FgHiCyan)
		title.Printf("\n%s  [%s]\n", gl.Title, gl.EffectiveDifficulty)
		fmt.Printf("%d exercises, about %d min, %d XP (+%d for a perfect run)\n",
			len(gl.Exercises), gl.EstimatedTimeMinutes, gl.XPReward, gl.PerfectBonus)

		host := &consoleHost{svc: e.course, in: bufio.NewScanner(os.Stdin), out: os.Stdout, delay: delay}
		return host.run(cmd)
	},
}

type consoleHost struct {
	svc   *course.Service
	in    *bufio.Scanner
	out   io.Writer
	delay time.Duration
}

func (h *consoleHost) run(cmd *cobra.Command) error {
	ctx := cmd.Context()
	prompt := color.New(color.FgYellow)

	for {
		st, err := h.svc.State()
		if err != nil {
			return err
		}
		if st.Status == session.StatusCompleted {
			break
		}

		ex := st.Exercise
		fmt.Fprintf(h.out, "\n(%d/%d) %s\n", st.Index+1, st.Total, ex.Question)
		for i, o := range ex.Options {
			fmt.Fprintf(h.out, "  %d. %s\n", i+1, o)
		}
		if len(ex.Words) > 0 {
			fmt.Fprintf(h.out, "  words: %s\n", strings.Join(ex.Words, " "))
		}
		if len(ex.Left) > 0 {
			fmt.Fprintf(h.out, "  match: %s  <->  %s\n", strings.Join(ex.Left, ", "), strings.Join(ex.Right, ", "))
		}
		prompt.Fprint(h.out, "> ")

		if !h.in.Scan() {
			return h.quit()
		}
		line := strings.TrimSpace(h.in.Text())
		if line == "q" {
			return h.quit()
		}

		var fb session.Feedback
		if line == "" {
			fb, err = h.svc.Skip(ctx)
		} else {
			fb, err = h.svc.SubmitAnswer(ctx, parseSubmission(ex, line))
		}
		if err != nil {
			return err
		}
		printFeedback(h.out, fb)

		time.Sleep(h.delay)
		if _, err := h.svc.Advance(); err != nil {
			return err
		}
	}

	c, err := h.svc.CompleteLesson(ctx)
	if err != nil {
		return err
	}
	printCompletion(h.out, c)
	return nil
}

func (h *consoleHost) quit() error {
	fmt.Fprintln(h.out, "\nLesson abandoned; nothing was recorded.")
	return h.svc.QuitLesson()
}

// parseSubmission turns one typed line into a submission for ex.
func parseSubmission(ex *course.ExerciseView, line string) session.Submission {
	switch {
	case ex.Type == catalog.TypeMatchPairs:
		pairs := make(map[string]string)
		for _, part := range strings.Split(line, ",") {
			l, r, ok := strings.Cut(part, "=")
			if ok {
				pairs[strings.TrimSpace(l)] = strings.TrimSpace(r)
			}
		}
		return session.Submission{Pairs: pairs}
	case ex.Type == catalog.TypeWordOrder:
		return session.Submission{Tokens: strings.Fields(line)}
	case len(ex.Options) > 0:
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(ex.Options) {
			return session.Submission{Choice: ex.Options[n-1]}
		}
	}
	return session.Submission{FreeText: line}
}

func printFeedback(w io.Writer, fb session.Feedback) {
	if fb.IsCorrect {
		color.New(color.FgGreen).Fprintf(w, "Correct! +%d XP\n", fb.XPAwarded)
	} else {
		color.New(color.FgRed).Fprintf(w, "Not quite. Answer: %s\n", fb.CorrectAnswer)
	}
	if fb.Explanation != "" {
		fmt.Fprintln(w, fb.Explanation)
	}
}

func printCompletion(w io.Writer, c session.Completion) {
	fmt.Fprintln(w)
	if c.Perfect {
		color.New(color.Bold, color.FgHiGreen).Fprintln(w, "Perfect lesson!")
	} else {
		color.New(color.Bold).Fprintln(w, "Lesson complete.")
	}
	fmt.Fprintf(w, "%d/%d correct, %d XP earned in %s\n",
		c.CorrectCount, c.Total, c.XPEarned, c.Duration.Round(time.Second))
}

func init() {
	practiceCmd.Flags().Duration("feedback-delay", session.DefaultConfig().FeedbackDelay, "Pause after each answer")
}
