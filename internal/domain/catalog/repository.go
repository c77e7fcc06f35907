package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/narwhalmedia/catalog/pkg/pagination"
)

// TitleRepository defines the persistence port for titles
type TitleRepository interface {
	// Insert stores a new title with its relation sets
	Insert(ctx context.Context, title *Title) error
	// Update stores a modified title, replacing its relation sets
	Update(ctx context.Context, title *Title) error
	// Get finds a title by ID, returning ErrTitleNotFound when absent
	Get(ctx context.Context, id uuid.UUID) (*Title, error)
	// Delete removes a title and its relation rows
	Delete(ctx context.Context, title *Title) error
	// Search lists titles for a 1-based page
	Search(ctx context.Context, input pagination.SearchInput) (pagination.SearchOutput[*Title], error)
}

// ExistenceChecker reports which of the given ids exist in an authority.
type ExistenceChecker interface {
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

// CategoryRepository defines the persistence port for categories
type CategoryRepository interface {
	ExistenceChecker
	Insert(ctx context.Context, category *Category) error
	Get(ctx context.Context, id uuid.UUID) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, input pagination.SearchInput) (pagination.SearchOutput[*Category], error)
}

// GenreRepository defines the persistence port for genres
type GenreRepository interface {
	ExistenceChecker
	Insert(ctx context.Context, genre *Genre) error
	Get(ctx context.Context, id uuid.UUID) (*Genre, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, input pagination.SearchInput) (pagination.SearchOutput[*Genre], error)
}

// CastMemberRepository defines the persistence port for cast members
type CastMemberRepository interface {
	ExistenceChecker
	Insert(ctx context.Context, member *CastMember) error
	Get(ctx context.Context, id uuid.UUID) (*CastMember, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, input pagination.SearchInput) (pagination.SearchOutput[*CastMember], error)
}
