package main

import (
	"encoding/json"
	"fmt"

	"github.com/genricoloni/courtside/internal/backend"
	"github.com/genricoloni/courtside/internal/timefmt"
	"github.com/genricoloni/courtside/internal/timeline"
	"github.com/spf13/cobra"
)

func newEventsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the events detected in the processed video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			client, err := backend.NewClient(ctx.cliLogger(), settings.BackendURL)
			if err != nil {
				return err
			}

			events, fetchErr := client.FetchEvents(cmd.Context())
			listing := timeline.Describe(events, fetchErr)
			out := cmd.OutOrStdout()

			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(listing); err != nil {
					return err
				}
				return fetchErr
			}

			if listing.Status != timeline.ListingReady {
				fmt.Fprintln(out, listing.Message)
				return fetchErr
			}

			classifier := timeline.NewClassifier()
			for i, group := range listing.Groups {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, group.Title)

				rows := make([][]string, 0, len(group.Events))
				for _, ev := range group.Events {
					rows = append(rows, []string{
						timefmt.Clock(ev.Timestamp),
						ev.Subtype,
						string(classifier.Classify(ev.Type)),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Time", "Subtype", "Marker"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft},
				))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the listing as JSON")
	return cmd
}
