package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"aptos-etl/core"
)

type fakeMetrics struct{ requests, failures int }

func (m *fakeMetrics) RecordRequest()       { m.requests++ }
func (m *fakeMetrics) RecordFailedRequest() { m.failures++ }

type noopStreamClient struct{}

func (noopStreamClient) OpenStream(start, end uint64) (core.StreamHandle, error) {
	return nil, nil
}

type noopPublisher struct{}

func (noopPublisher) PublishBatch(family string, records []any, timestamps []core.UnixTimestamp) error {
	return nil
}

func TestSubscribeAndExtractProcessesEveryMessageThenExitsOnCancel(t *testing.T) {
	sub := NewMemorySubscription(4)
	var extracted []core.RangeRequest
	var acked, nacked int

	sub.Send(&Message{
		Request: core.RangeRequest{Start: 1, End: 5},
		Ack:     func() { acked++ },
		Nack:    func() { nacked++ },
	})
	sub.Send(&Message{
		Request: core.RangeRequest{Start: 6, End: 10},
		Ack:     func() { acked++ },
		Nack:    func() { nacked++ },
	})

	extract := func(client core.StreamClient, start, end uint64, publisher core.Publisher, tables *core.TableOptions, layout string, metrics core.MetricsRecorder) error {
		extracted = append(extracted, core.RangeRequest{Start: start, End: end})
		return nil
	}

	// Both buffered messages are consumed near-instantly; the short
	// deadline only needs to outlast that, then ends the otherwise
	// unbounded "pull, find nothing, continue" loop.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := SubscribeAndExtract(ctx, sub, noopStreamClient{}, noopPublisher{}, &fakeMetrics{}, "%Y-%m-%d", extract, zap.NewNop())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
	if len(extracted) != 2 {
		t.Fatalf("extracted = %d requests, want 2: %+v", len(extracted), extracted)
	}
	if extracted[0].Start != 1 || extracted[0].End != 5 || extracted[1].Start != 6 || extracted[1].End != 10 {
		t.Fatalf("extracted = %+v, want [{1 5} {6 10}]", extracted)
	}
	if acked != 2 || nacked != 0 {
		t.Fatalf("acked=%d nacked=%d, want 2/0", acked, nacked)
	}
}

func TestSubscribeAndExtractNacksAndReturnsOnFailure(t *testing.T) {
	sub := NewMemorySubscription(1)
	var acked, nacked int
	sub.Send(&Message{
		Request: core.RangeRequest{Start: 1, End: 2},
		Ack:     func() { acked++ },
		Nack:    func() { nacked++ },
	})

	wantErr := errors.New("boom")
	extract := func(client core.StreamClient, start, end uint64, publisher core.Publisher, tables *core.TableOptions, layout string, metrics core.MetricsRecorder) error {
		return wantErr
	}

	err := SubscribeAndExtract(context.Background(), sub, noopStreamClient{}, noopPublisher{}, nil, "%Y-%m-%d", extract, zap.NewNop())
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if acked != 0 || nacked != 1 {
		t.Fatalf("acked=%d nacked=%d, want 0/1", acked, nacked)
	}
}

func TestSubscribeAndExtractExitsImmediatelyOnAlreadyCancelledContext(t *testing.T) {
	sub := NewMemorySubscription(1)

	called := false
	extract := func(client core.StreamClient, start, end uint64, publisher core.Publisher, tables *core.TableOptions, layout string, metrics core.MetricsRecorder) error {
		called = true
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := SubscribeAndExtract(ctx, sub, noopStreamClient{}, noopPublisher{}, nil, "%Y-%m-%d", extract, zap.NewNop())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if called {
		t.Fatalf("extract should not have been called")
	}
}
