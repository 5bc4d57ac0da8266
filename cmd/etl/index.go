package main

import (
	"fmt"
	"strconv"

	"cloud.google.com/go/pubsub"
	"github.com/spf13/cobra"

	"aptos-etl/core"
	"aptos-etl/orchestrator"
	"aptos-etl/pkg/config"
)

// indexSubscriptionCmd runs C8's orchestration loop against a named GCP
// Pub/Sub subscription, per spec §6.1's "orchestrated mode".
func indexSubscriptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index-subscription <subscription-name>",
		Short: "pull RangeRequest messages from a subscription and extract each range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}
			log := newLogger()
			defer log.Sync()

			ctx := cmd.Context()

			client := buildClient(settings, log)
			publisher, err := buildPublisher(ctx, settings)
			if err != nil {
				return err
			}
			defer publisher.Close()
			reg := buildMetrics()

			psClient, err := pubsub.NewClient(ctx, settings.PubSub.ProjectID)
			if err != nil {
				return fmt.Errorf("etl: pubsub client: %w", err)
			}
			defer psClient.Close()

			sub := orchestrator.NewPubSubSubscription(ctx, psClient.Subscription(args[0]))
			defer sub.Close()

			return orchestrator.SubscribeAndExtract(ctx, sub, client, publisher, reg, settings.TimestampFormat, nil, log)
		},
	}
}

// indexRangeCmd runs a single ExtractRange call over [start,end], per spec
// §6.1's single-range mode.
func indexRangeCmd() *cobra.Command {
	var reverse bool
	cmd := &cobra.Command{
		Use:   "index-range <start> [<end>]",
		Short: "extract a single version range and publish it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("etl: invalid start %q: %w", args[0], err)
			}

			hasEnd := len(args) == 2
			if reverse && start == 0 && !hasEnd {
				return fmt.Errorf("etl: cannot index backwards from genesis")
			}

			end := start
			if hasEnd {
				end, err = strconv.ParseUint(args[1], 10, 64)
				if err != nil {
					return fmt.Errorf("etl: invalid end %q: %w", args[1], err)
				}
			}
			// TODO: --reverse only validates the genesis guard today; the
			// hand-rolled gRPC client (codegen is out of scope) has no
			// reverse-streaming request shape to pull newest-first, so a
			// bare `index-range N --reverse` with no end still extracts
			// ascending [N,N].

			settings, err := config.Load()
			if err != nil {
				return err
			}
			log := newLogger()
			defer log.Sync()

			ctx := cmd.Context()

			client := buildClient(settings, log)
			publisher, err := buildPublisher(ctx, settings)
			if err != nil {
				return err
			}
			defer publisher.Close()
			reg := buildMetrics()

			err = core.ExtractRange(client, start, end, publisher, nil, settings.TimestampFormat, reg)
			if err != nil {
				return fmt.Errorf("etl: index-range failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reverse, "reverse", false, "reject a bare start of 0 with no end; extraction order stays ascending")
	return cmd
}
