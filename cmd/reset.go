package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase a player's progress, attempts, sessions and chat",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		rt, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		if !yes {
			fmt.Printf("Erase all progress for player %q? Type the player ID to confirm: ", rt.userID)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(line) != rt.userID {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := rt.practice.Reset(cmd.Context(), rt.userID); err != nil {
			return err
		}
		fmt.Printf("Player %q reset.\n", rt.userID)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
