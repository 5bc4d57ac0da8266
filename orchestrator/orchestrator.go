// Package orchestrator implements C8, the orchestration loop that turns a
// stream of RangeRequest control messages into ExtractRange calls: spec
// §4.8.
package orchestrator

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"go.uber.org/zap"

	"aptos-etl/core"
)

// Message is one pulled control-plane message: a decoded RangeRequest plus
// ack/nack callbacks that settle its delivery.
type Message struct {
	Request core.RangeRequest
	Ack     func()
	Nack    func()
}

// RangeSubscription is the orchestrator's control-plane dependency,
// modeled abstractly per spec §1: "Pull" returns (nil, false, nil) on an
// empty, bounded-wait poll rather than blocking forever, so the shutdown
// flag can be checked between pulls.
type RangeSubscription interface {
	Pull(ctx context.Context) (*Message, bool, error)
}

// Extractor is the narrow slice of core.ExtractRange's signature the loop
// depends on, so tests can substitute a fake transformation engine.
type Extractor func(client core.StreamClient, start, end uint64, publisher core.Publisher, tables *core.TableOptions, layout string, metrics core.MetricsRecorder) error

// SubscribeAndExtract runs C8's main loop: while not terminated, pull one
// message (bounded wait; empty result continues), decode it as a
// RangeRequest, call extract. On error, nack and return the interruption.
// On success, ack and loop. A dedicated goroutine listens for SIGINT/
// SIGTERM and atomically sets the termination flag (release-store), the
// main loop acquire-loads it between pulls — the same shutdown-signal
// shape the teacher's node commands use (os/signal.Notify + a background
// goroutine), generalized from "stop the node" to "stop the loop". ctx
// cancellation is an additional, Go-idiomatic exit path callers can use
// instead of (or alongside) the OS signal, e.g. in tests.
func SubscribeAndExtract(
	ctx context.Context,
	sub RangeSubscription,
	client core.StreamClient,
	publisher core.Publisher,
	metrics core.MetricsRecorder,
	timestampLayout string,
	extract Extractor,
	log *zap.Logger,
) error {
	var terminated atomic.Bool

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sig:
			terminated.Store(true)
		case <-done:
		}
	}()

	if extract == nil {
		extract = core.ExtractRange
	}

	for !terminated.Load() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, ok, err := sub.Pull(ctx)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		req := msg.Request
		err = extract(client, req.Start, req.End, publisher, req.Tables, timestampLayout, metrics)
		if err != nil {
			msg.Nack()
			return err
		}
		msg.Ack()
		log.Debug("range extracted", zap.Uint64("start", req.Start), zap.Uint64("end", req.End))
	}
	return nil
}
