package title

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// RelationValidator checks candidate relation ids against their authorities.
type RelationValidator struct {
	categories  catalog.ExistenceChecker
	genres      catalog.ExistenceChecker
	castMembers catalog.ExistenceChecker
}

// NewRelationValidator creates a relation validator
func NewRelationValidator(categories, genres, castMembers catalog.ExistenceChecker) *RelationValidator {
	return &RelationValidator{
		categories:  categories,
		genres:      genres,
		castMembers: castMembers,
	}
}

// ValidateCategories fails with RelatedAggregateNotFoundError naming every unknown category.
func (v *RelationValidator) ValidateCategories(ctx context.Context, ids []uuid.UUID) error {
	return validateRelation(ctx, v.categories, catalog.RelationCategory, ids)
}

// ValidateGenres fails with RelatedAggregateNotFoundError naming every unknown genre.
func (v *RelationValidator) ValidateGenres(ctx context.Context, ids []uuid.UUID) error {
	return validateRelation(ctx, v.genres, catalog.RelationGenre, ids)
}

// ValidateCastMembers fails with RelatedAggregateNotFoundError naming every unknown cast member.
func (v *RelationValidator) ValidateCastMembers(ctx context.Context, ids []uuid.UUID) error {
	return validateRelation(ctx, v.castMembers, catalog.RelationCastMember, ids)
}

// Validate checks every supplied relation kind in category, genre, cast order.
func (v *RelationValidator) Validate(ctx context.Context, r Relations) error {
	if err := v.ValidateCategories(ctx, r.Categories); err != nil {
		return err
	}
	if err := v.ValidateGenres(ctx, r.Genres); err != nil {
		return err
	}
	return v.ValidateCastMembers(ctx, r.CastMembers)
}

// validateRelation skips the lookup entirely for an empty candidate list.
func validateRelation(ctx context.Context, authority catalog.ExistenceChecker, kind catalog.RelationKind, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	existing, err := authority.ExistingIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("lookup %s ids: %w", kind, err)
	}

	found := catalog.NewIDSet(existing...)
	seen := make(map[uuid.UUID]struct{}, len(ids))
	var missing []uuid.UUID
	for _, id := range ids {
		if found.Contains(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		return &catalog.RelatedAggregateNotFoundError{Kind: kind, IDs: missing}
	}
	return nil
}
