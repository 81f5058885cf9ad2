package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCommentsCmd(opts *rootOptions) *cobra.Command {
	commentsCmd := &cobra.Command{
		Use:   "comments",
		Short: "Discuss a review",
	}

	var page int
	listCmd := &cobra.Command{
		Use:   "list [title-id] [review-id]",
		Short: "List comments on a review",
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
			comments, err := c.ListComments(cmd.Context(), ids[0], ids[1], page)
			if err != nil {
				return fmt.Errorf("failed to list comments: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(comments.Data) == 0 {
				fmt.Fprintln(out, "No comments yet.")
				return nil
			}
			for _, cm := range comments.Data {
				heading.Fprintf(out, "#%d %s\n", cm.ID, cm.Author)
				fmt.Fprintln(out, cm.Text)
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "Page number")

	addCmd := &cobra.Command{
		Use:   "add [title-id] [review-id] [text...]",
		Short: "Comment on a review",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args[:2])
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			comment, err := c.CreateComment(cmd.Context(), ids[0], ids[1], strings.Join(args[2:], " "))
			if err != nil {
				return fmt.Errorf("failed to add comment: %w", err)
			}
			success.Fprintf(cmd.OutOrStdout(), "✓ Comment #%d saved\n", comment.ID)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [title-id] [review-id] [comment-id]",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			if err := c.DeleteComment(cmd.Context(), ids[0], ids[1], ids[2]); err != nil {
				return fmt.Errorf("failed to delete comment: %w", err)
			}
			success.Fprintln(cmd.OutOrStdout(), "✓ Comment deleted")
			return nil
		},
	}

	commentsCmd.AddCommand(listCmd, addCmd, deleteCmd)
	return commentsCmd
}
