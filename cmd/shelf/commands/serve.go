package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/shelf/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the library and artwork over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listen, _ := cmd.Flags().GetString("listen")
			return c.app.Serve(cmd.Context(), app.ServeOptions{Listen: listen})
		},
	}
	cmd.Flags().StringP("listen", "l", "", "Listen address (defaults to the configured address)")
	return cmd
}
