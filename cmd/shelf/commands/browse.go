package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/shelf/internal/app"
)

func (c *CLI) newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [query]",
		Short: "Browse a user's library",
		Long: "Browse a user's library as an interactive grid of cover artwork.\n" +
			"When stdout is not a terminal the library is printed as a plain list.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, _ := cmd.Flags().GetString("user")
			mode, _ := cmd.Flags().GetString("mode")
			sortKey, _ := cmd.Flags().GetString("sort")
			return c.app.Browse(cmd.Context(), app.BrowseOptions{
				User:  user,
				Mode:  mode,
				Sort:  sortKey,
				Query: strings.Join(args, " "),
			})
		},
	}
	cmd.Flags().StringP("user", "u", "", "Configured user to browse (defaults to current_user)")
	cmd.Flags().StringP("mode", "m", "auto", "Output mode: auto, tui or linear")
	cmd.Flags().StringP("sort", "s", "name", "Sort order: name, playtime or recent")
	return cmd
}
