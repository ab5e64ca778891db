package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd создаёт корневую команду.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focuscam",
		Short: "Focus and brightness gated camera capture",
		Long: `focuscam watches a camera, estimates focus (variance of the Laplacian)
and brightness for every frame, allows a capture only when both are
acceptable and uploads the captured image to a remote endpoint.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "YAML file with estimator settings (overrides FOCUSCAM_CONFIG)")

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewBotCmd())
	cmd.AddCommand(NewAssessCmd())
	cmd.AddCommand(NewHistoryCmd())

	return cmd
}

// Execute запускает корневую команду.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
