package reference

import (
	"context"

	"github.com/google/uuid"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
	"github.com/narwhalmedia/catalog/pkg/pagination"
)

var nameSortFields = []string{"name", "created_at"}

// CreateCategoryCommand represents a command to create a category
type CreateCategoryCommand struct {
	Name        string
	Description string
	IsActive    bool
}

// CreateGenreCommand represents a command to create a genre
type CreateGenreCommand struct {
	Name     string
	IsActive bool
}

// CreateCastMemberCommand represents a command to create a cast member
type CreateCastMemberCommand struct {
	Name string
	Type catalog.CastMemberType
}

// Service manages the authorities titles relate to
type Service struct {
	categories  catalog.CategoryRepository
	genres      catalog.GenreRepository
	castMembers catalog.CastMemberRepository
	logger      interfaces.Logger
}

// NewService creates a new reference service
func NewService(
	categories catalog.CategoryRepository,
	genres catalog.GenreRepository,
	castMembers catalog.CastMemberRepository,
	logger interfaces.Logger,
) *Service {
	return &Service{
		categories:  categories,
		genres:      genres,
		castMembers: castMembers,
		logger:      logger,
	}
}

// CreateCategory creates a category
func (s *Service) CreateCategory(ctx context.Context, cmd CreateCategoryCommand) (*catalog.Category, error) {
	category, err := catalog.NewCategory(cmd.Name, cmd.Description, cmd.IsActive)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Insert(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("Category created", interfaces.String("category_id", category.ID.String()))
	return category, nil
}

// GetCategory returns a category
func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	return s.categories.Get(ctx, id)
}

// DeleteCategory deletes a category
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Category deleted", interfaces.String("category_id", id.String()))
	return nil
}

// ListCategories lists categories by name
func (s *Service) ListCategories(ctx context.Context, input pagination.SearchInput) (pagination.SearchOutput[*catalog.Category], error) {
	return s.categories.Search(ctx, input.Normalize("name", nameSortFields...))
}

// CreateGenre creates a genre
func (s *Service) CreateGenre(ctx context.Context, cmd CreateGenreCommand) (*catalog.Genre, error) {
	genre, err := catalog.NewGenre(cmd.Name, cmd.IsActive)
	if err != nil {
		return nil, err
	}
	if err := s.genres.Insert(ctx, genre); err != nil {
		return nil, err
	}
	s.logger.Info("Genre created", interfaces.String("genre_id", genre.ID.String()))
	return genre, nil
}

// GetGenre returns a genre
func (s *Service) GetGenre(ctx context.Context, id uuid.UUID) (*catalog.Genre, error) {
	return s.genres.Get(ctx, id)
}

// DeleteGenre deletes a genre
func (s *Service) DeleteGenre(ctx context.Context, id uuid.UUID) error {
	if err := s.genres.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Genre deleted", interfaces.String("genre_id", id.String()))
	return nil
}

// ListGenres lists genres by name
func (s *Service) ListGenres(ctx context.Context, input pagination.SearchInput) (pagination.SearchOutput[*catalog.Genre], error) {
	return s.genres.Search(ctx, input.Normalize("name", nameSortFields...))
}

// CreateCastMember creates a cast member
func (s *Service) CreateCastMember(ctx context.Context, cmd CreateCastMemberCommand) (*catalog.CastMember, error) {
	member, err := catalog.NewCastMember(cmd.Name, cmd.Type)
	if err != nil {
		return nil, err
	}
	if err := s.castMembers.Insert(ctx, member); err != nil {
		return nil, err
	}
	s.logger.Info("Cast member created", interfaces.String("cast_member_id", member.ID.String()))
	return member, nil
}

// GetCastMember returns a cast member
func (s *Service) GetCastMember(ctx context.Context, id uuid.UUID) (*catalog.CastMember, error) {
	return s.castMembers.Get(ctx, id)
}

// DeleteCastMember deletes a cast member
func (s *Service) DeleteCastMember(ctx context.Context, id uuid.UUID) error {
	if err := s.castMembers.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Cast member deleted", interfaces.String("cast_member_id", id.String()))
	return nil
}

// ListCastMembers lists cast members by name
func (s *Service) ListCastMembers(ctx context.Context, input pagination.SearchInput) (pagination.SearchOutput[*catalog.CastMember], error) {
	return s.castMembers.Search(ctx, input.Normalize("name", nameSortFields...))
}
