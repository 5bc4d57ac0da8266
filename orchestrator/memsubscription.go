package orchestrator

import "context"

// MemorySubscription is an in-memory, channel-backed RangeSubscription, for
// deterministic tests that do not need a real pub/sub broker.
type MemorySubscription struct {
	ch chan *Message
}

// NewMemorySubscription creates a subscription with the given buffer depth.
func NewMemorySubscription(buffer int) *MemorySubscription {
	return &MemorySubscription{ch: make(chan *Message, buffer)}
}

// Send enqueues a message for a future Pull.
func (m *MemorySubscription) Send(msg *Message) {
	m.ch <- msg
}

// Close signals that no further messages will be sent; a Pull against a
// closed, empty subscription returns (nil, false, nil) forever.
func (m *MemorySubscription) Close() {
	close(m.ch)
}

func (m *MemorySubscription) Pull(ctx context.Context) (*Message, bool, error) {
	select {
	case msg, ok := <-m.ch:
		if !ok {
			return nil, false, nil
		}
		return msg, true, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	default:
		return nil, false, nil
	}
}
