//go:build wireinject
// +build wireinject

package container

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/application/reference"
	"github.com/narwhalmedia/catalog/internal/application/title"
	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	gormrepo "github.com/narwhalmedia/catalog/internal/infrastructure/persistence/gorm"
)

// InitializeCatalog wires the catalog service with all dependencies
func InitializeCatalog(cfg *config.Config, logger *zap.Logger) (*CatalogContainer, func(), error) {
	wire.Build(
		provideLogger,

		// Database
		gormrepo.NewDB,
		gormrepo.NewUnitOfWork,
		wire.Bind(new(title.UnitOfWork), new(*gormrepo.UnitOfWork)),

		// Repositories
		gormrepo.NewTitleRepository,
		wire.Bind(new(catalog.TitleRepository), new(*gormrepo.TitleRepository)),
		gormrepo.NewCategoryRepository,
		wire.Bind(new(catalog.CategoryRepository), new(*gormrepo.CategoryRepository)),
		gormrepo.NewGenreRepository,
		wire.Bind(new(catalog.GenreRepository), new(*gormrepo.GenreRepository)),
		gormrepo.NewCastMemberRepository,
		wire.Bind(new(catalog.CastMemberRepository), new(*gormrepo.CastMemberRepository)),

		// Content store and broker
		provideContentStore,
		provideBroker,
		providePublisher,

		// Application
		provideRelationValidator,
		title.NewAssetUploader,
		title.NewCoordinator,
		title.NewService,
		reference.NewService,
		provideResultsConsumer,

		wire.Struct(new(CatalogContainer), "*"),
	)

	return nil, nil, nil
}
