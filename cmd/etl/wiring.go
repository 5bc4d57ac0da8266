package main

import (
	"context"
	"fmt"

	"aptos-etl/ingest"
	"aptos-etl/metrics"
	"aptos-etl/output"
	"aptos-etl/pkg/config"
	"aptos-etl/rawtx"

	"go.uber.org/zap"
)

// buildClient constructs the gRPC stream client from settings.
func buildClient(settings *config.Settings, log *zap.Logger) *ingest.Client {
	return ingest.NewClient(settings, log)
}

// buildPublisher selects a sink from whichever backend settings configures,
// in single-publisher mode, and wraps it for C3 fan-out. Separate-publisher
// mode (one sink per family, keyed by settings.Queues) is left to the
// concrete backend's own topic/queue-per-family addressing, which every
// driver already does internally — this CLI layer never needs to build a
// per-family sink map itself.
func buildPublisher(ctx context.Context, settings *config.Settings) (output.Publisher, error) {
	switch {
	case settings.OutputDir != "":
		sink, err := output.NewLocalFileSink(settings.OutputDir, false)
		if err != nil {
			return nil, err
		}
		return output.NewSinglePublisher(sink), nil
	case settings.Kafka.Address != "":
		return output.NewSinglePublisher(output.NewKafkaSink(settings.Kafka.Address, settings.Kafka.Port)), nil
	case settings.RabbitMQ.Address != "":
		sink, err := output.NewRabbitMQSink(settings.RabbitMQ.Address, settings.RabbitMQ.Port, settings.RabbitMQ.User, settings.RabbitMQ.Password)
		if err != nil {
			return nil, err
		}
		return output.NewSinglePublisher(sink), nil
	case settings.PubSub.ProjectID != "":
		sink, err := output.NewPubSubSink(ctx, settings.PubSub.ProjectID, settings.GoogleApplicationCredentials)
		if err != nil {
			return nil, err
		}
		return output.NewSinglePublisher(sink), nil
	case settings.AzureBlob.ConnectionString != "":
		sink, err := output.NewAzureBlobSink(settings.AzureBlob.ConnectionString, settings.AzureBlob.ContainerName)
		if err != nil {
			return nil, err
		}
		return output.NewSinglePublisher(sink), nil
	default:
		return nil, fmt.Errorf("etl: no sink configured (set OUTPUT_DIR, KAFKA_ADDRESS, RABBITMQ_ADDRESS, GCP_PROJECT_ID, or AZURE_STORAGE_CONNECTION_STRING)")
	}
}

func buildMetrics() *metrics.Registry {
	return metrics.New()
}

// pullRawTransactions drains client's stream for [start,end] into a slice,
// for the save-range/create-test-set commands, which persist raw
// transactions rather than feeding them straight into the transformation
// engine.
func pullRawTransactions(client *ingest.Client, start, end uint64) ([]*rawtx.Transaction, error) {
	handle, err := client.OpenStream(start, end)
	if err != nil {
		return nil, fmt.Errorf("etl: open stream: %w", err)
	}
	defer handle.Close()

	var out []*rawtx.Transaction
	for {
		tx, ok, err := handle.Next()
		if err != nil {
			return nil, fmt.Errorf("etl: stream read: %w", err)
		}
		if !ok {
			break
		}
		out = append(out, tx)
		if tx.Version == end {
			break
		}
	}
	return out, nil
}
