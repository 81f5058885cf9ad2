package command

// root.go defines the root command of the yamdb CLI and the global flags.

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"yamdb/cmd/cli/authentication"
	"yamdb/cmd/cli/command/client"
)

const defaultAPIURL = "http://localhost:8080/api/v1"

type rootOptions struct {
	apiURL string
}

var (
	success = color.New(color.FgGreen)
	heading = color.New(color.FgCyan, color.Bold)
	muted   = color.New(color.FgHiBlack)
)

// NewRootCmd builds the whole command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "yamdb",
		Short: "yamdb - YaMDb Command Line Interface",
		Long: `yamdb is a client for the YaMDb review API. Use it to:
- sign up and obtain a bearer token
- browse titles, genres and categories
- read, write and delete reviews and comments

Use "yamdb [command] --help" to see the flags of a command.`,
		SilenceUsage: true,
	}

	apiDefault := defaultAPIURL
	if env := os.Getenv("YAMDB_API"); env != "" {
		apiDefault = env
	}
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api", apiDefault, "API root URL")

	rootCmd.AddCommand(
		newAuthCmd(opts),
		newTitlesCmd(opts),
		newReviewsCmd(opts),
		newCommentsCmd(opts),
		newTaxonomyCmd(opts, "genres", "Genre"),
		newTaxonomyCmd(opts, "categories", "Category"),
	)
	return rootCmd
}

// Execute is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// client returns an API client carrying the stored token, if any.
func (o *rootOptions) client() (*client.HTTPClient, error) {
	c := client.NewHTTPClient(o.apiURL)
	creds, err := authentication.GetToken()
	if err != nil {
		return nil, fmt.Errorf("read stored token: %w", err)
	}
	if creds != nil {
		c.SetToken(creds.Token)
	}
	return c, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil || id < 1 {
			return nil, fmt.Errorf("invalid id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
