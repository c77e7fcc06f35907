package catalog

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength        = 255
	maxDescriptionLength = 4000
)

// ValidationHandler collects rule violations without failing fast.
type ValidationHandler interface {
	Append(err *ValidationError)
	HasErrors() bool
	Errors() []*ValidationError
}

// Notification is the default ValidationHandler.
type Notification struct {
	errs []*ValidationError
}

// NewNotification creates an empty notification
func NewNotification() *Notification {
	return &Notification{}
}

// Append records a violation
func (n *Notification) Append(err *ValidationError) {
	n.errs = append(n.errs, err)
}

// HasErrors reports whether any violation was recorded
func (n *Notification) HasErrors() bool {
	return len(n.errs) > 0
}

// Errors returns the recorded violations in the order they were appended
func (n *Notification) Errors() []*ValidationError {
	out := make([]*ValidationError, len(n.errs))
	copy(out, n.errs)
	return out
}

// Err converts the notification into an EntityValidationError, or nil.
func (n *Notification) Err(entity string) error {
	if !n.HasErrors() {
		return nil
	}
	return &EntityValidationError{Entity: entity, Errors: n.Errors()}
}

// validateRequiredText appends the required and max-length rules for a text field.
func validateRequiredText(h ValidationHandler, field, value string, limit int) {
	if strings.TrimSpace(value) == "" {
		h.Append(NewValidationError(field, "is required"))
		return
	}
	validateMaxLength(h, field, value, limit)
}

func validateMaxLength(h ValidationHandler, field, value string, limit int) {
	if utf8.RuneCountInString(value) > limit {
		h.Append(NewValidationError(field, "should be less or equal "+strconv.Itoa(limit)+" characters long"))
	}
}
