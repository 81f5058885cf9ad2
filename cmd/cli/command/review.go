package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newReviewsCmd(opts *rootOptions) *cobra.Command {
	reviewsCmd := &cobra.Command{
		Use:   "reviews",
		Short: "Read and write reviews of a title",
	}

	var page int
	listCmd := &cobra.Command{
		Use:   "list [title-id]",
		Short: "List reviews of a title",
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
			reviews, err := c.ListReviews(cmd.Context(), ids[0], page)
			if err != nil {
				return fmt.Errorf("failed to list reviews: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(reviews.Data) == 0 {
				fmt.Fprintln(out, "No reviews yet.")
				return nil
			}
			for _, r := range reviews.Data {
				heading.Fprintf(out, "#%d %s  %d/10\n", r.ID, r.Author, r.Score)
				fmt.Fprintln(out, r.Text)
				muted.Fprintln(out, r.PubDate.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "Page number")

	var score int
	addCmd := &cobra.Command{
		Use:   "add [title-id] [text...]",
		Short: "Review a title (one review per title)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args[:1])
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			review, err := c.CreateReview(cmd.Context(), ids[0], strings.Join(args[1:], " "), score)
			if err != nil {
				return fmt.Errorf("failed to add review: %w", err)
			}
			success.Fprintf(cmd.OutOrStdout(), "✓ Review #%d saved\n", review.ID)
			return nil
		},
	}
	addCmd.Flags().IntVarP(&score, "score", "s", 0, "Score from 1 to 10")
	_ = addCmd.MarkFlagRequired("score")

	deleteCmd := &cobra.Command{
		Use:   "delete [title-id] [review-id]",
		Short: "Delete a review",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			if err := c.DeleteReview(cmd.Context(), ids[0], ids[1]); err != nil {
				return fmt.Errorf("failed to delete review: %w", err)
			}
			success.Fprintln(cmd.OutOrStdout(), "✓ Review deleted")
			return nil
		},
	}

	reviewsCmd.AddCommand(listCmd, addCmd, deleteCmd)
	return reviewsCmd
}
