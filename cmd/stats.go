package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pawsitive/mathcat/internal/rewards"
	"github.com/pawsitive/mathcat/internal/standards"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your level, streaks, goals and mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		p, err := rt.practice.Profile(cmd.Context(), rt.userID)
		if err != nil {
			return err
		}

		fmt.Printf("%s Level %d · %s\n", p.Level.Icon, p.Level.Level, p.Level.Title)
		if p.Level.Top() {
			fmt.Printf("%d XP · top level reached\n", p.Player.XP)
		} else {
			fmt.Printf("%d XP · %d/%d to the next level (%d%%)\n", p.Player.XP, p.XP.Current, p.XP.Needed, p.XP.Percentage)
		}
		fmt.Printf("Streak %d (best %d) · %d badges\n", p.Player.CurrentStreak, p.Player.BestStreak, len(p.Player.Badges))
		fmt.Printf("%d problems · %d correct · %d%% accuracy · %d standards mastered\n",
			p.Stats.TotalProblems, p.Stats.TotalCorrect, p.Stats.Accuracy, p.Stats.StandardsMastered)
		fmt.Printf("Study time: %d min total, %d min this week\n", p.Player.TotalStudyMinutes, p.Player.WeeklyStudyMinutes)

		fmt.Println("\nToday's goals")
		for _, g := range p.Goals {
			mark := "○"
			if g.Completed {
				mark = "✓"
			}
			fmt.Printf("  %s %-24s %d/%d  +%d XP\n", mark, g.Name, g.Current, g.Target, g.XPReward)
		}

		if len(p.Standards) > 0 {
			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STANDARD\tTITLE\tCORRECT\tMASTERY")
			for _, sp := range p.Standards {
				title := sp.StandardID
				if std, err := standards.Get(sp.StandardID); err == nil {
					title = std.Title
				}
				fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d%%\n", sp.StandardID, title, sp.Correct, sp.Attempted, sp.Mastery)
			}
			return w.Flush()
		}
		return nil
	},
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List unlocked and locked badges",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		p, err := rt.practice.Profile(cmd.Context(), rt.userID)
		if err != nil {
			return err
		}
		owned := p.Player.Badges
		fmt.Printf("%d of %d badges unlocked\n", len(rewards.Unlocked(owned)), len(rewards.Badges))

		for _, cat := range rewards.AllCategories() {
			fmt.Printf("\n%s\n", cat.DisplayName())
			for _, b := range rewards.Unlocked(owned) {
				if b.Category == cat {
					fmt.Printf("  %s %-16s %s\n", b.Icon, b.Name, b.Description)
				}
			}
			for _, b := range rewards.Locked(owned) {
				if b.Category == cat {
					fmt.Printf("  🔒 %-16s %s (+%d XP)\n", b.Name, b.Description, b.XPReward)
				}
			}
		}
		return nil
	},
}
