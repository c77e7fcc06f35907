package container

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/narwhalmedia/catalog/internal/application/reference"
	"github.com/narwhalmedia/catalog/internal/application/title"
	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/internal/infrastructure/events"
	"github.com/narwhalmedia/catalog/internal/infrastructure/events/kafka"
	"github.com/narwhalmedia/catalog/internal/infrastructure/events/nats"
	gormrepo "github.com/narwhalmedia/catalog/internal/infrastructure/persistence/gorm"
	"github.com/narwhalmedia/catalog/internal/infrastructure/storage"
	pkgevents "github.com/narwhalmedia/catalog/pkg/events"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
	pkglogger "github.com/narwhalmedia/catalog/pkg/logger"
)

// CatalogContainer holds all dependencies of the catalog service
type CatalogContainer struct {
	Config     *config.Config
	Logger     *zap.Logger
	DB         *gorm.DB
	Titles     *title.Service
	References *reference.Service
	Consumer   ResultsConsumer
}

// ResultsConsumer consumes encoder results until its context is cancelled
type ResultsConsumer interface {
	Start(ctx context.Context) error
}

// idleConsumer is used with the in-memory broker, which has no encoder feed.
type idleConsumer struct{}

func (idleConsumer) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Broker is the configured event backend.
type Broker struct {
	Publisher interfaces.EventPublisher
	nats      *nats.Client
}

func provideLogger(logger *zap.Logger) interfaces.Logger {
	return pkglogger.Wrap(logger)
}

func provideContentStore(cfg *config.Config, logger *zap.Logger) (title.ContentStore, func(), error) {
	return storage.New(context.Background(), cfg.Storage, logger)
}

func provideRelationValidator(
	categories *gormrepo.CategoryRepository,
	genres *gormrepo.GenreRepository,
	castMembers *gormrepo.CastMemberRepository,
) *title.RelationValidator {
	return title.NewRelationValidator(categories, genres, castMembers)
}

func provideBroker(cfg *config.Config, logger *zap.Logger, log interfaces.Logger) (*Broker, func(), error) {
	switch cfg.Broker.Type {
	case config.BrokerMemory:
		publisher := pkgevents.NewInMemoryPublisher(log)
		return &Broker{Publisher: publisher}, func() { _ = publisher.Close() }, nil

	case config.BrokerNATS:
		client, cleanup, err := nats.NewClient(context.Background(), cfg.Broker.NATS, logger)
		if err != nil {
			return nil, nil, err
		}
		return &Broker{Publisher: nats.NewPublisher(client.JetStream(), logger), nats: client}, cleanup, nil

	case config.BrokerKafka:
		publisher, err := kafka.NewPublisher(cfg.Broker.Kafka, logger)
		if err != nil {
			return nil, nil, err
		}
		return &Broker{Publisher: publisher}, func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("failed to close kafka publisher", zap.Error(err))
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown broker type %q", cfg.Broker.Type)
}

func providePublisher(broker *Broker) interfaces.EventPublisher {
	return broker.Publisher
}

func provideResultsConsumer(cfg *config.Config, broker *Broker, titles *title.Service, logger *zap.Logger) (ResultsConsumer, func(), error) {
	processor := events.NewResultProcessor(titles, logger)

	switch cfg.Broker.Type {
	case config.BrokerNATS:
		return nats.NewResultsConsumer(broker.nats, processor, logger), func() {}, nil
	case config.BrokerKafka:
		consumer, err := kafka.NewResultsConsumer(cfg.Broker.Kafka, processor, logger)
		if err != nil {
			return nil, nil, err
		}
		return consumer, func() { _ = consumer.Close() }, nil
	default:
		return idleConsumer{}, func() {}, nil
	}
}
