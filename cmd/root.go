package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pawsitive/mathcat/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathcat",
	Short: "7th grade math practice with a cat tutor",
	Long:  "MathCat: practice 7th grade math standards, earn XP and badges, and ask the cat tutor for help.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHCAT_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Player ID (overrides MATHCAT_USER env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(standardsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(badgesCmd)
	rootCmd.AddCommand(tutorCmd)
	rootCmd.AddCommand(homeworkCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the SQLite path using --db flag (highest priority),
// then MATHCAT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveUser returns the player ID from --user, then MATHCAT_USER, then
// fallback.
func resolveUser(cmd *cobra.Command, fallback string) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	if u := os.Getenv("MATHCAT_USER"); u != "" {
		return u
	}
	return fallback
}
