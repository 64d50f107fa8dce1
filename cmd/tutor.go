package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var tutorCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Chat with the cat tutor in the terminal",
	Long: `Ask about a topic ("how do I add negative numbers?") or ask for a
practice problem. Type /clear to start over and /quit to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, setupOptions{logToFile: true})
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		history, err := rt.chat.History(ctx, rt.userID)
		if err != nil {
			return err
		}
		// Only the latest tutor line; the full log is in the app.
		if n := len(history); n > 0 {
			fmt.Println("🐱", history[n-1].Content)
		}

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("\n> ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			text := strings.TrimSpace(scanner.Text())
			switch text {
			case "":
				continue
			case "/quit", "/exit":
				return nil
			case "/clear":
				if err := rt.chat.Clear(ctx, rt.userID); err != nil {
					return err
				}
				fmt.Println("(chat cleared)")
				continue
			}

			ex, err := rt.chat.Send(ctx, rt.userID, text)
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				continue
			}
			fmt.Println("🐱", ex.Tutor.Content)
			if ex.Problem != nil {
				fmt.Printf("\n(practice it with: mathcat practice --standard %s)\n", ex.Problem.StandardID)
			}
		}
	},
}
