package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/config"
)

// DeadLetterPrefix prefixes the subjects of messages that could not be processed.
const DeadLetterPrefix = "dlq.catalog"

// Client wraps NATS and JetStream connections
type Client struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	logger *zap.Logger
	config config.NATSConfig
}

// NewClient connects to NATS and makes sure the catalog streams exist
func NewClient(ctx context.Context, cfg config.NATSConfig, logger *zap.Logger) (*Client, func(), error) {
	opts := []nats.Option{
		nats.Name(config.ServiceName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			fields := []zap.Field{zap.Error(err)}
			if sub != nil {
				fields = append(fields, zap.String("subject", sub.Subject))
			}
			logger.Error("NATS async error", fields...)
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	client := &Client{
		nc:     nc,
		js:     js,
		logger: logger.Named("nats"),
		config: cfg,
	}

	if err := client.initializeStreams(ctx); err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to initialize streams: %w", err)
	}

	cleanup := func() {
		if err := nc.Drain(); err != nil {
			logger.Error("failed to drain NATS connection", zap.Error(err))
		}
	}

	logger.Info("NATS client initialized",
		zap.String("url", cfg.URL),
		zap.String("stream", cfg.Stream),
	)

	return client, cleanup, nil
}

// StreamConfigs returns the streams the catalog publishes to and consumes from.
func StreamConfigs(cfg config.NATSConfig) []jetstream.StreamConfig {
	return []jetstream.StreamConfig{
		{
			Name:        cfg.Stream,
			Description: "Catalog title events and encoder results",
			Subjects: []string{
				"title.>",
				cfg.ResultsSubject,
			},
			Retention:    jetstream.LimitsPolicy,
			MaxAge:       7 * 24 * time.Hour,
			MaxConsumers: -1,
			Replicas:     1,
			Storage:      jetstream.FileStorage,
			Discard:      jetstream.DiscardOld,
			MaxMsgs:      -1,
			MaxBytes:     -1,
			Duplicates:   2 * time.Minute,
		},
		{
			Name:         cfg.Stream + "_DLQ",
			Description:  "Dead letter queue for catalog messages",
			Subjects:     []string{DeadLetterPrefix + ".>"},
			Retention:    jetstream.LimitsPolicy,
			MaxAge:       30 * 24 * time.Hour,
			MaxConsumers: -1,
			Replicas:     1,
			Storage:      jetstream.FileStorage,
			Discard:      jetstream.DiscardOld,
			MaxMsgs:      -1,
			MaxBytes:     -1,
		},
	}
}

// initializeStreams creates or updates the catalog streams
func (c *Client) initializeStreams(ctx context.Context) error {
	for _, stream := range StreamConfigs(c.config) {
		if _, err := c.js.CreateOrUpdateStream(ctx, stream); err != nil {
			return fmt.Errorf("failed to create stream %s: %w", stream.Name, err)
		}
	}

	c.logger.Info("JetStream streams initialized")
	return nil
}

// Connection returns the underlying NATS connection
func (c *Client) Connection() *nats.Conn {
	return c.nc
}

// JetStream returns the JetStream context
func (c *Client) JetStream() jetstream.JetStream {
	return c.js
}

// IsConnected checks if the client is connected
func (c *Client) IsConnected() bool {
	return c.nc.IsConnected()
}

// Health checks the health of the NATS connection
func (c *Client) Health(ctx context.Context) error {
	if !c.IsConnected() {
		return errors.New("NATS client is not connected")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	info, err := c.js.AccountInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to get JetStream account info: %w", err)
	}

	c.logger.Debug("NATS health check passed",
		zap.Int("streams", info.Streams),
		zap.Int("consumers", info.Consumers),
	)
	return nil
}
