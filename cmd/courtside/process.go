package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/courtside/internal/backend"
	"github.com/genricoloni/courtside/internal/progress"
	"github.com/genricoloni/courtside/internal/upload"
	"github.com/spf13/cobra"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "process <video>",
		Short: "Upload a match video and follow its processing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := args[0]
			logger := ctx.cliLogger()

			if err := upload.ValidateFile(path); err != nil {
				return err
			}

			client, err := backend.NewClient(logger, settings.BackendURL)
			if err != nil {
				return err
			}

			runCtx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			out := cmd.OutOrStdout()
			// The backend keys the job to the session cookie set by the upload
			fmt.Fprintf(out, "Uploading %s...\n", path)
			if err := client.Upload(runCtx, path); err != nil {
				return err
			}

			sink := progress.NewTerminalSink(out, client.BaseURL())
			reporter := progress.NewReporter(logger, client, sink, sink, progress.Options{
				Mode:     progress.Mode(settings.ProgressMode),
				Interval: settings.ProgressInterval.Std(),
			})
			return reporter.Start(runCtx)
		},
	}
}
