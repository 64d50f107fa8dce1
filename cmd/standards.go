package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pawsitive/mathcat/internal/problemgen"
	"github.com/pawsitive/mathcat/internal/standards"
)

var standardsCmd = &cobra.Command{
	Use:   "standards",
	Short: "List the 7th grade standards (optionally one domain)",
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, _ := cmd.Flags().GetString("domain")

		stds := standards.All()
		if domain != "" {
			code := standards.DomainCode(strings.ToUpper(domain))
			stds = standards.ByDomain(code)
			if len(stds) == 0 {
				return fmt.Errorf("no standards found for domain %q (want RP, NS, EE, G or SP)", domain)
			}
			fmt.Printf("%s\n\n", standards.DomainName(code))
		}

		builtIn := make(map[string]bool)
		for _, id := range problemgen.Available() {
			builtIn[id] = true
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCODE\tDOMAIN\tTITLE\tDRILLS")
		for _, s := range stds {
			drills := "llm"
			if builtIn[s.ID] {
				drills = "built-in"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Code, s.DomainCode, s.Title, drills)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%d standards\n", len(stds))
		return nil
	},
}

func init() {
	standardsCmd.Flags().String("domain", "", "Filter by domain code (RP, NS, EE, G, SP)")
}
