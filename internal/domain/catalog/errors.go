package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrTitleNotFound is returned when a title cannot be found
	ErrTitleNotFound = errors.New("title not found")

	// ErrCategoryNotFound is returned when a category cannot be found
	ErrCategoryNotFound = errors.New("category not found")

	// ErrGenreNotFound is returned when a genre cannot be found
	ErrGenreNotFound = errors.New("genre not found")

	// ErrCastMemberNotFound is returned when a cast member cannot be found
	ErrCastMemberNotFound = errors.New("cast member not found")

	// ErrNoMediaPresent is returned when a status transition is attempted on an empty media slot
	ErrNoMediaPresent = errors.New("there is no media")

	// ErrSlotNotEncodable is returned when an encoding transition targets an image slot
	ErrSlotNotEncodable = errors.New("slot does not hold encodable media")

	// ErrInvalidSlot is returned for an unknown slot kind
	ErrInvalidSlot = errors.New("invalid media slot")

	// ErrInvalidMediaStatus is returned for an unknown media status
	ErrInvalidMediaStatus = errors.New("invalid media status")
)

// ValidationError represents a single violated field rule
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// EntityValidationError aggregates every rule an entity violated.
type EntityValidationError struct {
	Entity string
	Errors []*ValidationError
}

func (e *EntityValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, v := range e.Errors {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("%s is invalid: %s", e.Entity, strings.Join(msgs, "; "))
}

// IsEntityValidationError checks if an error is an entity validation error
func IsEntityValidationError(err error) bool {
	var target *EntityValidationError
	return errors.As(err, &target)
}

// RelationKind names the authority a relation set is validated against.
type RelationKind string

const (
	RelationCategory   RelationKind = "category"
	RelationGenre      RelationKind = "genre"
	RelationCastMember RelationKind = "cast member"
)

// RelatedAggregateNotFoundError lists the foreign ids an authority did not know.
type RelatedAggregateNotFoundError struct {
	Kind RelationKind
	IDs  []uuid.UUID
}

func (e *RelatedAggregateNotFoundError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("related %s id(s) not found: %s", e.Kind, strings.Join(ids, ", "))
}

// IsRelatedAggregateNotFound checks if an error is a missing relation error
func IsRelatedAggregateNotFound(err error) bool {
	var target *RelatedAggregateNotFoundError
	return errors.As(err, &target)
}
