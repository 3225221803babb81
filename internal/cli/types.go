package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sitegen_server/internal/extract"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the business types and their keywords",
		Args:  cobra.NoArgs,
		// Listing types needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tLABEL\tKEYWORDS")
			for _, t := range extract.AllTypes() {
				keywords := strings.Join(t.Keywords(), ", ")
				if keywords == "" {
					keywords = "(fallback)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", t, t.Label(), keywords)
			}
			return w.Flush()
		},
	}
}
