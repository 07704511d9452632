package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"grasp/internal/hand"
)

func newQuitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "quit",
		Short: "Ask an already-running hand controller server to shut down",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			// Never spawn a server just to shut it down.
			cfg.Hand.Attach = true

			return ctx.withController(cmd.Context(), func(runCtx context.Context, controller *hand.Controller) error {
				// Close sends QUIT on its way out.
				fmt.Fprintln(cmd.OutOrStdout(), "Shutdown requested")
				return nil
			})
		},
	}
}
