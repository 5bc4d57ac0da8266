package output

import (
	"fmt"

	"aptos-etl/core"
)

// Publisher is C3's family-routing contract, implementing core.Publisher so
// ExtractRange can publish directly to it.
type Publisher interface {
	core.Publisher
	Close() error
}

// SinglePublisher routes every family to the same Sink, per spec §4.9's
// single-publisher mode.
type SinglePublisher struct {
	sink Sink
}

// NewSinglePublisher wraps sink for single-publisher mode.
func NewSinglePublisher(sink Sink) *SinglePublisher {
	return &SinglePublisher{sink: sink}
}

func (p *SinglePublisher) PublishBatch(family string, records []any, timestamps []core.UnixTimestamp) error {
	return p.sink.PublishBatch(family, records, timestamps)
}

func (p *SinglePublisher) Close() error { return p.sink.Close() }

// SeparatePublisher routes each family to its own Sink, per spec §4.9's
// separate-publishers mode: a product of eight sink handles, one per
// family.
type SeparatePublisher struct {
	sinks map[string]Sink
}

// NewSeparatePublisher builds a fan-out over the given per-family sinks.
// Every family named in spec §3.1 must have an entry; sinks for families
// the caller disables at the TableOptions layer are simply never invoked.
func NewSeparatePublisher(sinks map[string]Sink) *SeparatePublisher {
	return &SeparatePublisher{sinks: sinks}
}

func (p *SeparatePublisher) PublishBatch(family string, records []any, timestamps []core.UnixTimestamp) error {
	sink, ok := p.sinks[family]
	if !ok {
		return fmt.Errorf("output: no sink configured for family %q", family)
	}
	return sink.PublishBatch(family, records, timestamps)
}

func (p *SeparatePublisher) Close() error {
	var firstErr error
	for _, sink := range p.sinks {
		if err := sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
