package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spcloud/urlship/internal/app"
	"github.com/spcloud/urlship/internal/domain"
)

func newPublishCmd(c *cli) *cobra.Command {
	var (
		userID    string
		loadoutID string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Run the pipeline once for a user and loadout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.load(cmd); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := c.portsLogger()
			pipeline, err := buildPipeline(ctx, &c.cfg, logger)
			if err != nil {
				return err
			}

			out, runErr := pipeline.Run(ctx, app.Request{UserID: userID, LoadoutID: loadoutID})
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(out); err != nil {
					return err
				}
			} else if out.Topic != "" {
				fmt.Fprintln(cmd.OutOrStdout(), renderOutcome(out))
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "user whose linked device receives the URLs")
	cmd.Flags().StringVar(&loadoutID, "loadout-id", "", "loadout whose files are published")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the outcome as JSON")
	return cmd
}

func renderOutcome(out domain.PublishOutcome) string {
	rows := [][]string{
		{"message", out.Message},
		{"prefix", out.Prefix},
		{"topic", out.Topic},
		{"enumerated", strconv.Itoa(out.TotalEnumerated)},
		{"signed", strconv.Itoa(out.TotalSigned)},
		{"published", strconv.Itoa(out.TotalPublished)},
		{"batches", strconv.Itoa(out.BatchesPublished)},
		{"dropped", strconv.Itoa(out.Dropped)},
	}
	return renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}
