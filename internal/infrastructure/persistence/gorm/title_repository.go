package gorm

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	pkgerrors "github.com/narwhalmedia/catalog/pkg/errors"
	"github.com/narwhalmedia/catalog/pkg/pagination"
	"github.com/narwhalmedia/catalog/pkg/repository"
)

var titleRelations = []string{"Categories", "Genres", "CastMembers"}

// TitleRepository implements catalog.TitleRepository
type TitleRepository struct {
	db *gorm.DB
}

// NewTitleRepository creates a new GORM title repository
func NewTitleRepository(db *gorm.DB) *TitleRepository {
	return &TitleRepository{db: db}
}

// Insert stores a new title and its relation rows
func (r *TitleRepository) Insert(ctx context.Context, t *catalog.Title) error {
	model := &TitleModel{}
	model.FromDomain(t)

	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		if err := conn(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
			if repository.IsDuplicateKey(err) {
				return pkgerrors.Conflict("title already exists")
			}
			return err
		}
		return r.insertRelations(ctx, model)
	})
}

// Update stores every column of a title and replaces its relation rows
func (r *TitleRepository) Update(ctx context.Context, t *catalog.Title) error {
	model := &TitleModel{}
	model.FromDomain(t)

	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		result := db.Model(&TitleModel{}).Where("id = ?", model.ID).
			Select("*").Omit(clause.Associations, "id", "created_at").
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return catalog.ErrTitleNotFound
		}
		if err := r.deleteRelations(ctx, model.ID); err != nil {
			return err
		}
		return r.insertRelations(ctx, model)
	})
}

// Get finds a title by ID with its relation sets
func (r *TitleRepository) Get(ctx context.Context, id uuid.UUID) (*catalog.Title, error) {
	model, err := repository.FindByID[TitleModel](ctx, conn(ctx, r.db), id, titleRelations...)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, catalog.ErrTitleNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Delete removes a title and its relation rows
func (r *TitleRepository) Delete(ctx context.Context, t *catalog.Title) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		if err := r.deleteRelations(ctx, t.ID); err != nil {
			return err
		}
		err := repository.Delete[TitleModel](ctx, conn(ctx, r.db), t.ID)
		if pkgerrors.IsNotFound(err) {
			return catalog.ErrTitleNotFound
		}
		return err
	})
}

// Search lists titles whose name contains the search text, case-insensitively
func (r *TitleRepository) Search(ctx context.Context, input pagination.SearchInput) (pagination.SearchOutput[*catalog.Title], error) {
	input = input.Bounded()
	models, total, err := repository.Search[TitleModel](ctx, conn(ctx, r.db), input, nameFilter("title", input.Search), titleRelations...)
	if err != nil {
		return pagination.SearchOutput[*catalog.Title]{}, err
	}

	items := make([]*catalog.Title, len(models))
	for i, m := range models {
		items[i] = m.ToDomain()
	}
	return pagination.SearchOutput[*catalog.Title]{
		Items:       items,
		Total:       total,
		CurrentPage: input.Page,
		PerPage:     input.PerPage,
	}, nil
}

func (r *TitleRepository) insertRelations(ctx context.Context, model *TitleModel) error {
	db := conn(ctx, r.db)
	if len(model.Categories) > 0 {
		if err := db.Create(&model.Categories).Error; err != nil {
			return err
		}
	}
	if len(model.Genres) > 0 {
		if err := db.Create(&model.Genres).Error; err != nil {
			return err
		}
	}
	if len(model.CastMembers) > 0 {
		if err := db.Create(&model.CastMembers).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *TitleRepository) deleteRelations(ctx context.Context, titleID uuid.UUID) error {
	db := conn(ctx, r.db)
	for _, model := range []interface{}{&TitleCategoryModel{}, &TitleGenreModel{}, &TitleCastMemberModel{}} {
		if err := db.Where("title_id = ?", titleID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// nameFilter matches column against the search text; an empty search matches everything.
func nameFilter(column, search string) func(*gorm.DB) *gorm.DB {
	if search == "" {
		return nil
	}
	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

