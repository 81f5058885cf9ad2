package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newTaxonomyCmd builds the read-only "genres" or "categories" command.
func newTaxonomyCmd(opts *rootOptions, kind, label string) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   kind,
		Short: fmt.Sprintf("List %s", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			page, err := c.ListTaxonomy(cmd.Context(), kind, search)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", kind, err)
			}

			out := cmd.OutOrStdout()
			if len(page.Data) == 0 {
				fmt.Fprintf(out, "No %s found.\n", kind)
				return nil
			}
			heading.Fprintf(out, "%s (%d total)\n", label, page.Total)
			for _, s := range page.Data {
				fmt.Fprintf(out, "%-20s %s\n", s.Slug, s.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Part of the name")
	return cmd
}
