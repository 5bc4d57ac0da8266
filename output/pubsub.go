package output

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"aptos-etl/core"
)

// PubSubSink publishes to one GCP Pub/Sub topic per family, per spec §4.9's
// "GOOGLE_PUBSUB" feature, authenticating via GOOGLE_APPLICATION_CREDENTIALS
// (ambient auth) exactly as the environment variable table (spec §6.2)
// names it.
type PubSubSink struct {
	client    *pubsub.Client
	projectID string

	mu     sync.Mutex
	topics map[string]*pubsub.Topic
}

// NewPubSubSink opens a client for projectID, using ambient credentials
// unless credentialsFile is non-empty.
func NewPubSubSink(ctx context.Context, projectID, credentialsFile string) (*PubSubSink, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("output: pubsub client: %w", err)
	}
	return &PubSubSink{client: client, projectID: projectID, topics: map[string]*pubsub.Topic{}}, nil
}

func (s *PubSubSink) topicFor(name string) *pubsub.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.topics[name]; ok {
		return t
	}
	t := s.client.Topic(name)
	s.topics[name] = t
	return t
}

func (s *PubSubSink) Publish(family string, record any) error {
	return s.PublishBatch(family, []any{record}, nil)
}

func (s *PubSubSink) PublishBatch(family string, records []any, _ []core.UnixTimestamp) error {
	if len(records) == 0 {
		return nil
	}
	encoded, err := marshalAll(records)
	if err != nil {
		return err
	}

	ctx := context.Background()
	topic := s.topicFor(family)
	results := make([]*pubsub.PublishResult, len(encoded))
	for i, body := range encoded {
		results[i] = topic.Publish(ctx, &pubsub.Message{Data: body})
	}
	for _, r := range results {
		if _, err := r.Get(ctx); err != nil {
			return fmt.Errorf("output: pubsub publish: %w", err)
		}
	}
	return nil
}

func (s *PubSubSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.topics {
		t.Stop()
	}
	return s.client.Close()
}
