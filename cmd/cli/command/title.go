package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"yamdb/cmd/cli/command/client"
	"yamdb/cmd/cli/dto"
)

func newTitlesCmd(opts *rootOptions) *cobra.Command {
	titlesCmd := &cobra.Command{
		Use:   "titles",
		Short: "Browse the catalogue",
	}

	var q client.TitleQuery
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List titles with their rating",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			page, err := c.ListTitles(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("failed to list titles: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(page.Data) == 0 {
				fmt.Fprintln(out, "No titles found.")
				return nil
			}
			heading.Fprintf(out, "Titles (page %d of %d, %d total)\n", page.Page, page.TotalPages, page.Total)
			for _, t := range page.Data {
				fmt.Fprintf(out, "%5d  %-40s %d  %s\n", t.ID, t.Name, t.Year, formatRating(t.Rating))
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&q.Genre, "genre", "", "Genre slug")
	listCmd.Flags().StringVar(&q.Category, "category", "", "Category slug")
	listCmd.Flags().StringVar(&q.Name, "name", "", "Part of the name")
	listCmd.Flags().IntVar(&q.Year, "year", 0, "Release year")
	listCmd.Flags().IntVar(&q.Page, "page", 1, "Page number")

	showCmd := &cobra.Command{
		Use:   "show [title-id]",
		Short: "Show one title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			t, err := c.GetTitle(cmd.Context(), ids[0])
			if err != nil {
				return fmt.Errorf("failed to get title: %w", err)
			}
			printTitle(cmd.OutOrStdout(), t)
			return nil
		},
	}

	titlesCmd.AddCommand(listCmd, showCmd)
	return titlesCmd
}

func formatRating(r *float64) string {
	if r == nil {
		return "no rating"
	}
	return fmt.Sprintf("★ %.1f", *r)
}

func printTitle(out io.Writer, t *dto.Title) {
	heading.Fprintf(out, "%s (%d)\n", t.Name, t.Year)
	fmt.Fprintf(out, "Rating:   %s\n", formatRating(t.Rating))
	if t.Category != nil {
		fmt.Fprintf(out, "Category: %s\n", t.Category.Name)
	}
	if len(t.Genre) > 0 {
		names := make([]string, 0, len(t.Genre))
		for _, g := range t.Genre {
			names = append(names, g.Name)
		}
		fmt.Fprintf(out, "Genres:   %s\n", strings.Join(names, ", "))
	}
	if t.Description != nil && *t.Description != "" {
		muted.Fprintln(out, *t.Description)
	}
}
