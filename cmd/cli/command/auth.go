package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"yamdb/cmd/cli/authentication"
)

// auth.go holds signup, token exchange, logout and whoami.

func newAuthCmd(opts *rootOptions) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
		Long:  `Sign up with an email and username, then exchange the mailed confirmation code for a token.`,
	}

	var email, username string
	signupCmd := &cobra.Command{
		Use:   "signup",
		Short: "Request a confirmation code",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			resp, err := c.Signup(cmd.Context(), email, username)
			if err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}
			success.Fprintf(cmd.OutOrStdout(), "✓ Confirmation code sent to %s\n", resp.Email)
			fmt.Fprintf(cmd.OutOrStdout(), "Run: yamdb auth token --username %s --code <code>\n", resp.Username)
			return nil
		},
	}
	signupCmd.Flags().StringVarP(&email, "email", "e", "", "Email address")
	signupCmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("username")

	var code string
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Exchange a confirmation code for a token and store it in the keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			token, err := c.Token(cmd.Context(), username, code)
			if err != nil {
				return fmt.Errorf("token request failed: %w", err)
			}
			if err := authentication.StoreToken(&authentication.StoredCredentials{Token: token, Username: username}); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			success.Fprintf(cmd.OutOrStdout(), "✓ Logged in as %s\n", username)
			return nil
		},
	}
	tokenCmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	tokenCmd.Flags().StringVarP(&code, "code", "c", "", "Confirmation code from the email")
	_ = tokenCmd.MarkFlagRequired("username")
	_ = tokenCmd.MarkFlagRequired("code")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := authentication.DeleteToken(); err != nil {
				return err
			}
			success.Fprintln(cmd.OutOrStdout(), "✓ Logged out")
			return nil
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile of the logged in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			me, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			heading.Fprintln(out, me.Username)
			fmt.Fprintf(out, "Email: %s\nRole:  %s\n", me.Email, me.Role)
			if me.Bio != "" {
				muted.Fprintln(out, me.Bio)
			}
			return nil
		},
	}

	authCmd.AddCommand(signupCmd, tokenCmd, logoutCmd, whoamiCmd)
	return authCmd
}
