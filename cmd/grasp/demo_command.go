package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"grasp/internal/hand"
)

// fistPose closes all four fingers and curls the thumb in.
var fistPose = []float64{
	1.2068, 1.0, 1.4042, -0.1194,
	1.2481, 1.4073, 0.8163, -0.0093,
	1.2712, 1.3881, 1.0122, 0.1116,
	0.2976, 0.9034, 0.7929, 0.6017,
}

func newDemoCommand(ctx *commandContext) *cobra.Command {
	var holdSeconds float64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the fist-then-open demonstration sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withController(cmd.Context(), func(runCtx context.Context, controller *hand.Controller) error {
				out := cmd.OutOrStdout()

				fmt.Fprintln(out, "Making a fist...")
				if ok, err := controller.SetJointPositions(runCtx, fistPose); err != nil {
					return err
				} else if !ok {
					return errors.New("hand did not acknowledge the fist pose")
				}

				hold := time.Duration(holdSeconds * float64(time.Second))
				select {
				case <-runCtx.Done():
					return runCtx.Err()
				case <-time.After(hold):
				}

				fmt.Fprintln(out, "Opening hand...")
				if ok, err := controller.SetJointPositions(runCtx, make([]float64, hand.JointCount)); err != nil {
					return err
				} else if !ok {
					return errors.New("hand did not acknowledge the open pose")
				}
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&holdSeconds, "hold", 2.0, "Seconds to hold the fist before opening")
	return cmd
}
