package config

import (
	"errors"
	"fmt"
	"time"

	pkgconfig "github.com/narwhalmedia/catalog/pkg/config"
)

// ServiceName is the configuration namespace and env prefix (CATALOG_).
const ServiceName = "catalog"

// Storage backends.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
	StorageGCS   = "gcs"
)

// Broker backends.
const (
	BrokerMemory = "memory"
	BrokerNATS   = "nats"
	BrokerKafka  = "kafka"
)

// Config holds all configuration for the catalog service.
type Config struct {
	pkgconfig.BaseConfig `koanf:",squash"`

	Storage StorageConfig `koanf:"storage"`
	Broker  BrokerConfig  `koanf:"broker"`
}

// StorageConfig selects and configures the content store.
type StorageConfig struct {
	Type  string      `koanf:"type"` // local, s3, gcs
	Local LocalConfig `koanf:"local"`
	S3    S3Config    `koanf:"s3"`
	GCS   GCSConfig   `koanf:"gcs"`
}

// LocalConfig holds filesystem storage configuration.
type LocalConfig struct {
	Path string `koanf:"path"`
}

// S3Config holds S3 (or S3-compatible) configuration. Credentials come from
// the default AWS chain.
type S3Config struct {
	Bucket       string `koanf:"bucket"`
	Region       string `koanf:"region"`
	Endpoint     string `koanf:"endpoint"`
	Prefix       string `koanf:"prefix"`
	UsePathStyle bool   `koanf:"use_path_style"`
}

// GCSConfig holds Google Cloud Storage configuration.
type GCSConfig struct {
	Bucket string `koanf:"bucket"`
	Prefix string `koanf:"prefix"`
}

// BrokerConfig selects and configures the event broker.
type BrokerConfig struct {
	Type  string      `koanf:"type"` // memory, nats, kafka
	NATS  NATSConfig  `koanf:"nats"`
	Kafka KafkaConfig `koanf:"kafka"`
}

// NATSConfig holds NATS JetStream configuration.
type NATSConfig struct {
	URL            string        `koanf:"url"`
	Stream         string        `koanf:"stream"`
	ResultsSubject string        `koanf:"results_subject"`
	Durable        string        `koanf:"durable"`
	MaxReconnects  int           `koanf:"max_reconnects"`
	ReconnectWait  time.Duration `koanf:"reconnect_wait"`
	AckWait        time.Duration `koanf:"ack_wait"`
	MaxDeliver     int           `koanf:"max_deliver"`
}

// KafkaConfig holds Kafka configuration.
type KafkaConfig struct {
	Brokers      []string      `koanf:"brokers"`
	Topic        string        `koanf:"topic"`
	ResultsTopic string        `koanf:"results_topic"`
	ClientID     string        `koanf:"client_id"`
	MaxDeliver   int           `koanf:"max_deliver"`
	RetryBackoff time.Duration `koanf:"retry_backoff"`
}

// Default returns the configuration used before files and env are applied.
func Default() *Config {
	return &Config{
		BaseConfig: pkgconfig.Defaults(ServiceName),
		Storage: StorageConfig{
			Type:  StorageLocal,
			Local: LocalConfig{Path: "./data/media"},
			S3:    S3Config{Region: "us-east-1"},
		},
		Broker: BrokerConfig{
			Type: BrokerMemory,
			NATS: NATSConfig{
				URL:            "nats://localhost:4222",
				Stream:         "CATALOG",
				ResultsSubject: "encoder.results",
				Durable:        "catalog-encoder-results",
				MaxReconnects:  10,
				ReconnectWait:  2 * time.Second,
				AckWait:        30 * time.Second,
				MaxDeliver:     5,
			},
			Kafka: KafkaConfig{
				Brokers:      []string{"localhost:9092"},
				Topic:        "catalog.titles",
				ResultsTopic: "encoder.results",
				ClientID:     ServiceName,
				MaxDeliver:   5,
				RetryBackoff: 2 * time.Second,
			},
		},
	}
}

// Load reads the configuration from defaults, config files and CATALOG_
// environment variables.
func Load(paths ...string) (*Config, error) {
	var opts []pkgconfig.Option
	if len(paths) > 0 {
		opts = append(opts, pkgconfig.WithFiles(paths...))
	}

	cfg := Default()
	if err := pkgconfig.NewLoader(ServiceName, opts...).Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required values for the selected backends.
func (c *Config) Validate() error {
	if err := c.BaseConfig.Validate(); err != nil {
		return err
	}

	switch c.Storage.Type {
	case StorageLocal:
		if c.Storage.Local.Path == "" {
			return errors.New("storage.local.path is required")
		}
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			return errors.New("storage.s3.bucket is required")
		}
	case StorageGCS:
		if c.Storage.GCS.Bucket == "" {
			return errors.New("storage.gcs.bucket is required")
		}
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}

	switch c.Broker.Type {
	case BrokerMemory:
	case BrokerNATS:
		if c.Broker.NATS.URL == "" {
			return errors.New("broker.nats.url is required")
		}
		if c.Broker.NATS.Stream == "" {
			return errors.New("broker.nats.stream is required")
		}
	case BrokerKafka:
		if len(c.Broker.Kafka.Brokers) == 0 {
			return errors.New("broker.kafka.brokers is required")
		}
		if c.Broker.Kafka.Topic == "" {
			return errors.New("broker.kafka.topic is required")
		}
	default:
		return fmt.Errorf("unknown broker type %q", c.Broker.Type)
	}

	return nil
}
