package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"grasp/internal/hand"
)

func newSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <angle>...",
		Short: "Send one joint-position command to the hand",
		Long: `Send one SET_JOINTS command and wait for its acknowledgment.

Exactly 16 joint angles are required, in radians: four fingers with four
joints each, the fourth finger slot being the thumb.`,
		Args: cobra.ExactArgs(hand.JointCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]float64, 0, len(args))
			for i, arg := range args {
				value, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("joint %d: invalid angle %q", i, arg)
				}
				values = append(values, value)
			}

			return ctx.withController(cmd.Context(), func(runCtx context.Context, controller *hand.Controller) error {
				ok, err := controller.SetJointPositions(runCtx, values)
				if err != nil {
					return err
				}
				if !ok {
					return errors.New("hand did not acknowledge the command")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "OK")
				return nil
			})
		},
	}
}
