package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:     "play",
	Aliases: []string{"run"},
	Short:   "Open the MathCat terminal app",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}
