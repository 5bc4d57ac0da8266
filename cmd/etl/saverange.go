package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"aptos-etl/pkg/config"
	"aptos-etl/testharness"
)

// saveRangeCmd extracts raw transactions only, writing one fixture file
// per version, per spec §6.1's save-range subcommand.
func saveRangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save-range <start> <end> <out-dir>",
		Short: "save raw transactions for a version range to disk",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}
			outDir := args[2]

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
			return testharness.SaveTransactions(outDir, "saved", start, end, txs)
		},
	}
}

func parseRange(startArg, endArg string) (uint64, uint64, error) {
	start, err := strconv.ParseUint(startArg, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("etl: invalid start %q: %w", startArg, err)
	}
	end, err := strconv.ParseUint(endArg, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("etl: invalid end %q: %w", endArg, err)
	}
	return start, end, nil
}
