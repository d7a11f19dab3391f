package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/shelf/internal/app"
)

func (c *CLI) newWarmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Store artwork for every item that has none yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, _ := cmd.Flags().GetString("user")
			return c.app.Warm(cmd.Context(), app.WarmOptions{User: user})
		},
	}
	cmd.Flags().StringP("user", "u", "", "Limit the warm-up to one configured user")
	return cmd
}
