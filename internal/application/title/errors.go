package title

import (
	"errors"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	pkgerrors "github.com/narwhalmedia/catalog/pkg/errors"
)

// Classify maps an error returned by the service to its application error type.
func Classify(err error) pkgerrors.ErrorType {
	switch {
	case errors.Is(err, catalog.ErrTitleNotFound),
		errors.Is(err, catalog.ErrCategoryNotFound),
		errors.Is(err, catalog.ErrGenreNotFound),
		errors.Is(err, catalog.ErrCastMemberNotFound):
		return pkgerrors.ErrorTypeNotFound
	case catalog.IsEntityValidationError(err),
		catalog.IsRelatedAggregateNotFound(err),
		errors.Is(err, catalog.ErrNoMediaPresent),
		errors.Is(err, catalog.ErrSlotNotEncodable),
		errors.Is(err, catalog.ErrInvalidSlot),
		errors.Is(err, catalog.ErrInvalidMediaStatus):
		return pkgerrors.ErrorTypeBadRequest
	}
	return pkgerrors.TypeOf(err)
}
