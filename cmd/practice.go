package cmd

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pawsitive/mathcat/internal/practice"
	"github.com/pawsitive/mathcat/internal/standards"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Answer practice problems in the terminal, without the full app",
	Long: `Serve practice problems one at a time on stdin/stdout.

Answers are checked and recorded exactly like in the app: XP, streaks,
badges and mastery all update. A first wrong answer shows the hint.`,
	RunE: runPractice,
}

func init() {
	practiceCmd.Flags().String("standard", "", "Standard ID or code (e.g. 7-rp-1 or 7.RP.1)")
	practiceCmd.Flags().Int("count", 5, "Number of problems")
	practiceCmd.Flags().Bool("weak", false, "Pick problems from your weakest standards")
}

func runPractice(cmd *cobra.Command, args []string) error {
	stdVal, _ := cmd.Flags().GetString("standard")
	count, _ := cmd.Flags().GetInt("count")
	weak, _ := cmd.Flags().GetBool("weak")

	standardID := ""
	if stdVal != "" {
		std, err := resolveStandard(stdVal)
		if err != nil {
			return err
		}
		standardID = std.ID
	}

	rt, err := setup(cmd, setupOptions{logToFile: true, withLLM: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	svc := rt.practice

	sess, err := svc.StartSession(ctx, rt.userID)
	if err != nil {
		return err
	}
	var worked []string

	scanner := bufio.NewScanner(os.Stdin)
	var solved, correct int

problems:
	for i := 1; i <= count; i++ {
		p, err := svc.NextProblem(ctx, rt.userID, standardID, weak)
		if err != nil {
			fmt.Printf("Problem %d: %v\n\n", i, err)
			continue
		}

		label := p.StandardID
		if std, err := standards.Get(p.StandardID); err == nil {
			label = std.Code + " " + std.Title
		}
		fmt.Printf("── Problem %d/%d · %s · %s ──\n", i, count, label, p.Difficulty)
		fmt.Println(p.Question)

		attempt := svc.Begin(rt.userID, p)
		right := false
		for !attempt.Done() {
			fmt.Print("\nYour answer: ")
			if !scanner.Scan() {
				fmt.Println("\n(input closed)")
				break problems
			}
			fb, err := attempt.Answer(ctx, scanner.Text())
			if err != nil {
				fmt.Printf("Couldn't save that answer: %v\n", err)
				continue
			}
			switch {
			case fb.Ignored:
				continue
			case fb.Retry:
				fmt.Println("\033[33m🐾 Not quite. One more try!\033[0m")
				if fb.Hint != "" {
					fmt.Println("💡 Hint:", fb.Hint)
				}
			default:
				right = fb.Correct
				printOutcome(fb, p.CorrectAnswer)
			}
		}

		solved++
		if right {
			correct++
		}
		if !slices.Contains(worked, p.StandardID) {
			worked = append(worked, p.StandardID)
		}
		fmt.Println()
	}

	ended, rec, err := svc.EndSession(ctx, sess.ID, worked)
	if err != nil {
		return err
	}
	fmt.Printf("── %d/%d correct · %d min · %d XP total ──\n", correct, solved, ended.DurationMinutes, rec.XP)
	return nil
}

func printOutcome(fb practice.Feedback, answer string) {
	if fb.Correct {
		fmt.Println("\033[32m✓ Correct!\033[0m")
	} else {
		fmt.Printf("\033[31m✗ The answer was %s\033[0m\n", answer)
	}
	if out := fb.Outcome; out != nil {
		if out.Message != "" {
			fmt.Println(out.Message)
		}
		if out.Result.XPEarned > 0 {
			fmt.Printf("+%d XP (%s)\n", out.Result.XPEarned, strings.Join(out.Result.XPBreakdown, ", "))
		}
		if lvl := out.Result.LevelInfo; out.Result.NewLevel {
			fmt.Printf("🎉 Level up! You're now a %s %s\n", lvl.Title, lvl.Icon)
		}
	}
	if fb.Explanation != "" {
		fmt.Println("Explanation:", fb.Explanation)
	}
}

// resolveStandard finds a standard by ID first, then by display code.
func resolveStandard(val string) (standards.Standard, error) {
	if s, err := standards.Get(val); err == nil {
		return s, nil
	}
	for _, s := range standards.All() {
		if strings.EqualFold(s.Code, val) {
			return s, nil
		}
	}
	return standards.Standard{}, fmt.Errorf("no standard found for %q (see: mathcat standards)", val)
}
