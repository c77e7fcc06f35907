package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	pkgerrors "github.com/narwhalmedia/catalog/pkg/errors"
	"github.com/narwhalmedia/catalog/pkg/pagination"
	"github.com/narwhalmedia/catalog/pkg/repository"
)

// referenceRepository holds the gorm plumbing shared by the authority repositories.
type referenceRepository[M any, D any] struct {
	db       *gorm.DB
	notFound error
	toModel  func(*D) *M
	toDomain func(*M) *D
}

func (r *referenceRepository[M, D]) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return repository.ExistingIDs[M](ctx, conn(ctx, r.db), ids)
}

func (r *referenceRepository[M, D]) Insert(ctx context.Context, entity *D) error {
	return repository.Create(ctx, conn(ctx, r.db), r.toModel(entity))
}

func (r *referenceRepository[M, D]) Get(ctx context.Context, id uuid.UUID) (*D, error) {
	model, err := repository.FindByID[M](ctx, conn(ctx, r.db), id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, r.notFound
		}
		return nil, err
	}
	return r.toDomain(model), nil
}

func (r *referenceRepository[M, D]) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.Delete[M](ctx, conn(ctx, r.db), id)
	if pkgerrors.IsNotFound(err) {
		return r.notFound
	}
	return err
}

func (r *referenceRepository[M, D]) Search(ctx context.Context, input pagination.SearchInput) (pagination.SearchOutput[*D], error) {
	input = input.Bounded()
	models, total, err := repository.Search[M](ctx, conn(ctx, r.db), input, nameFilter("name", input.Search))
	if err != nil {
		return pagination.SearchOutput[*D]{}, err
	}

	items := make([]*D, len(models))
	for i, m := range models {
		items[i] = r.toDomain(m)
	}
	return pagination.SearchOutput[*D]{
		Items:       items,
		Total:       total,
		CurrentPage: input.Page,
		PerPage:     input.PerPage,
	}, nil
}

// CategoryRepository implements catalog.CategoryRepository
type CategoryRepository struct {
	referenceRepository[CategoryModel, catalog.Category]
}

// NewCategoryRepository creates a new GORM category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{referenceRepository[CategoryModel, catalog.Category]{
		db:       db,
		notFound: catalog.ErrCategoryNotFound,
		toModel: func(c *catalog.Category) *CategoryModel {
			m := &CategoryModel{}
			m.FromDomain(c)
			return m
		},
		toDomain: (*CategoryModel).ToDomain,
	}}
}

// GenreRepository implements catalog.GenreRepository
type GenreRepository struct {
	referenceRepository[GenreModel, catalog.Genre]
}

// NewGenreRepository creates a new GORM genre repository
func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{referenceRepository[GenreModel, catalog.Genre]{
		db:       db,
		notFound: catalog.ErrGenreNotFound,
		toModel: func(g *catalog.Genre) *GenreModel {
			m := &GenreModel{}
			m.FromDomain(g)
			return m
		},
		toDomain: (*GenreModel).ToDomain,
	}}
}

// CastMemberRepository implements catalog.CastMemberRepository
type CastMemberRepository struct {
	referenceRepository[CastMemberModel, catalog.CastMember]
}

// NewCastMemberRepository creates a new GORM cast member repository
func NewCastMemberRepository(db *gorm.DB) *CastMemberRepository {
	return &CastMemberRepository{referenceRepository[CastMemberModel, catalog.CastMember]{
		db:       db,
		notFound: catalog.ErrCastMemberNotFound,
		toModel: func(c *catalog.CastMember) *CastMemberModel {
			m := &CastMemberModel{}
			m.FromDomain(c)
			return m
		},
		toDomain: (*CastMemberModel).ToDomain,
	}}
}

var (
	_ catalog.TitleRepository      = (*TitleRepository)(nil)
	_ catalog.CategoryRepository   = (*CategoryRepository)(nil)
	_ catalog.GenreRepository      = (*GenreRepository)(nil)
	_ catalog.CastMemberRepository = (*CastMemberRepository)(nil)
)
