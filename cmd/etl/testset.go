package main

import (
	"github.com/spf13/cobra"

	"aptos-etl/core"
	"aptos-etl/pkg/config"
	"aptos-etl/testharness"
)

// createTestSetCmd extracts a version range and writes both the raw
// transaction fixtures and their expected Records fixtures, per spec
// §6.1's create-test-set subcommand.
func createTestSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-test-set <start> <end> <name> [<dir>]",
		Short: "save a regression fixture set (raw transactions + expected records)",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}
			name := args[2]
			dir := "."
			if len(args) == 4 {
				dir = args[3]
			}

			settings, err := config.Load()
			if err != nil {
				return err
			}
			log := newLogger()
			defer log.Sync()

			client := buildClient(settings, log)
			txs, err := pullRawTransactions(client, start, end)
			if err != nil {
				return err
			}

			return testharness.CreateTestSet(dir, name, start, end, txs, core.DefaultTableOptions(), settings.TimestampFormat)
		},
	}
}
