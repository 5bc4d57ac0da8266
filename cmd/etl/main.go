// Command etl is the thin CLI front-end (spec §6.1): it parses flags,
// assembles a pkg/config.Settings, and calls into core/ingest/output/
// orchestrator. It is explicitly out of scope for business logic — every
// subcommand is a few lines of wiring, matching the teacher's
// cmd/synnergy/main.go root-command-plus-AddCommand shape. Operational
// command logging goes through logrus, same as the teacher's HTTP
// middleware (walletserver/middleware/logger.go); the ingest/orchestrator
// path underneath keeps logging through zap, per SPEC_FULL §2.1's split.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "etl",
		PersistentPreRunE: logCommandStart,
		PersistentPostRun: logCommandEnd,
	}
	rootCmd.AddCommand(indexSubscriptionCmd())
	rootCmd.AddCommand(indexRangeCmd())
	rootCmd.AddCommand(saveRangeCmd())
	rootCmd.AddCommand(createTestSetCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type commandStartKey struct{}

func logCommandStart(cmd *cobra.Command, args []string) error {
	cmd.SetContext(context.WithValue(cmd.Context(), commandStartKey{}, time.Now()))
	logrus.WithField("args", args).Infof("%s: starting", cmd.Name())
	return nil
}

func logCommandEnd(cmd *cobra.Command, args []string) {
	start, _ := cmd.Context().Value(commandStartKey{}).(time.Time)
	logrus.WithField("elapsed", time.Since(start)).Infof("%s: done", cmd.Name())
}

func newLogger() *zap.Logger {
	log, err := zap.NewProduction()
	if err != nil {
		log = zap.NewNop()
	}
	return log
}
