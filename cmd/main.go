package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fxconvert/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "fxconvert",
		Short:        "Currency converter with cached, quota-limited remote rates",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.RunMenu(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "convert <amount> <from> <to>",
			Short: "Convert an amount between two supported currencies",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.RunConvert(cmd.Context(), args[0], args[1], args[2])
			},
		},
		&cobra.Command{
			Use:   "rates",
			Short: "List supported currencies and their current rates",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.RunRates(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "refresh",
			Short: "Fetch fresh rates from the remote service (max 2/day)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.RunRefresh(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "set <code> <rate>",
			Short: "Override one rate for this run",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.RunSetRate(cmd.Context(), args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the converter over HTTP with scheduled refreshes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.RunServe(cmd.Context())
			},
		},
	)
	return root
}
