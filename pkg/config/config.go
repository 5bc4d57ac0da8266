// Package config provides a reusable, process-wide loader for the settings
// named in the environment variable table: gRPC stream endpoints and auth,
// keepalive timing, timestamp formatting, sink routing, and broker
// credentials. It is versioned so that applications can depend on a stable
// API contract.
//
// Version: v0.1.0
package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"

	"aptos-etl/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// GRPCEndpoint bundles a gRPC stream address with its bearer auth token.
type GRPCEndpoint struct {
	Addr string
	Auth string
}

// QueueNames maps each of the eight record families to a sink-specific
// destination name (queue, topic, or bucket), read from the
// QUEUE_NAME_{FAMILY} environment variables.
type QueueNames struct {
	Blocks       string
	Transactions string
	Events       string
	Changes      string
	Modules      string
	Resources    string
	Signatures   string
	TableItems   string
}

// Settings is the unified, process-wide configuration assembled once from
// the environment variables recognized in spec §6.2.
type Settings struct {
	Primary  GRPCEndpoint
	Fallback *GRPCEndpoint // nil if APTOS_GRPC_ADDR_FALLBACK is unset

	PingInterval          int // seconds
	PingTimeout           int // seconds
	ConnectTimeoutSeconds int
	ProjectName           string

	TimestampFormat string

	OutputDir string

	GoogleApplicationCredentials string

	Queues QueueNames

	Kafka struct {
		Address string
		Port    string
	}
	RabbitMQ struct {
		Address  string
		Port     string
		User     string
		Password string
	}
	PubSub struct {
		ProjectID string
	}
	AzureBlob struct {
		ConnectionString string
		ContainerName    string
	}

	MetricsPort      string
	HealthChecksPort string
}

var (
	once    sync.Once
	cached  *Settings
	loadErr error
)

// Load reads, validates, and caches the process Settings. Subsequent calls
// return the cached value; initialization happens exactly once and is
// race-free (sync.Once), matching the "cached environment values,
// initialized on first read, never mutated" invariant.
//
// A ".env" file in the working directory is loaded first, if present,
// purely as a local-development convenience; its absence is not an error.
func Load() (*Settings, error) {
	once.Do(func() {
		_ = godotenv.Load() // optional, dev-only; silent no-op if absent

		primaryAddr := utils.EnvOrDefault("APTOS_GRPC_ADDR", "")
		if primaryAddr == "" {
			loadErr = fmt.Errorf("config: APTOS_GRPC_ADDR is required")
			return
		}
		primaryAuth := utils.EnvOrDefault("APTOS_GRPC_AUTH", "")

		s := &Settings{
			Primary: GRPCEndpoint{Addr: primaryAddr, Auth: primaryAuth},

			PingInterval:          utils.EnvOrDefaultInt("APTOS_GRPC_PING_INTERVAL", 10),
			PingTimeout:           utils.EnvOrDefaultInt("APTOS_GRPC_PING_TIMEOUT", 10),
			ConnectTimeoutSeconds: 5,
			ProjectName:           utils.EnvOrDefault("APTOS_GRPC_PROJECT_NAME", "CUSTOM"),

			TimestampFormat: utils.EnvOrDefault("APTOS_TIMESTAMP_OUTPUT", "%Y-%m-%d %T"),

			OutputDir: utils.EnvOrDefault("OUTPUT_DIR", ""),

			GoogleApplicationCredentials: utils.EnvOrDefault("GOOGLE_APPLICATION_CREDENTIALS", ""),

			MetricsPort:      utils.EnvOrDefault("METRICS_PORT", ""),
			HealthChecksPort: utils.EnvOrDefault("HEALTH_CHECKS_PORT", ""),
		}

		if fallbackAddr := utils.EnvOrDefault("APTOS_GRPC_ADDR_FALLBACK", ""); fallbackAddr != "" {
			s.Fallback = &GRPCEndpoint{
				Addr: fallbackAddr,
				Auth: utils.EnvOrDefault("APTOS_GRPC_AUTH_FALLBACK", ""),
			}
		}

		s.Queues = QueueNames{
			Blocks:       utils.EnvOrDefault("QUEUE_NAME_BLOCKS", ""),
			Transactions: utils.EnvOrDefault("QUEUE_NAME_TRANSACTIONS", ""),
			Events:       utils.EnvOrDefault("QUEUE_NAME_EVENTS", ""),
			Changes:      utils.EnvOrDefault("QUEUE_NAME_CHANGES", ""),
			Modules:      utils.EnvOrDefault("QUEUE_NAME_MODULES", ""),
			Resources:    utils.EnvOrDefault("QUEUE_NAME_RESOURCES", ""),
			Signatures:   utils.EnvOrDefault("QUEUE_NAME_SIGNATURES", ""),
			TableItems:   utils.EnvOrDefault("QUEUE_NAME_TABLE_ITEMS", ""),
		}

		s.Kafka.Address = utils.EnvOrDefault("KAFKA_ADDRESS", "")
		s.Kafka.Port = utils.EnvOrDefault("KAFKA_PORT", "")
		s.RabbitMQ.Address = utils.EnvOrDefault("RABBITMQ_ADDRESS", "")
		s.RabbitMQ.Port = utils.EnvOrDefault("RABBITMQ_PORT", "")
		s.RabbitMQ.User = utils.EnvOrDefault("RABBITMQ_USER", "")
		s.RabbitMQ.Password = utils.EnvOrDefault("RABBITMQ_PASSWORD", "")
		s.PubSub.ProjectID = utils.EnvOrDefault("GCP_PROJECT_ID", "")
		s.AzureBlob.ConnectionString = utils.EnvOrDefault("AZURE_STORAGE_CONNECTION_STRING", "")
		s.AzureBlob.ContainerName = utils.EnvOrDefault("AZURE_CONTAINER_NAME", "")

		cached = s
	})
	return cached, loadErr
}

// Reset clears the cached Settings. It exists only for tests, which need to
// reload configuration under different environment variables.
func Reset() {
	once = sync.Once{}
	cached = nil
	loadErr = nil
}
