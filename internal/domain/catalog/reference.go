package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Category is an authority for title categories.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

// NewCategory creates a validated category
func NewCategory(name, description string, isActive bool) (*Category, error) {
	c := &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		IsActive:    isActive,
		CreatedAt:   time.Now().UTC(),
	}
	n := NewNotification()
	validateRequiredText(n, "name", c.Name, maxNameLength)
	validateMaxLength(n, "description", c.Description, maxDescriptionLength)
	if err := n.Err("category"); err != nil {
		return nil, err
	}
	return c, nil
}

// Genre is an authority for title genres.
type Genre struct {
	ID        uuid.UUID
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

// NewGenre creates a validated genre
func NewGenre(name string, isActive bool) (*Genre, error) {
	g := &Genre{
		ID:        uuid.New(),
		Name:      name,
		IsActive:  isActive,
		CreatedAt: time.Now().UTC(),
	}
	n := NewNotification()
	validateRequiredText(n, "name", g.Name, maxNameLength)
	if err := n.Err("genre"); err != nil {
		return nil, err
	}
	return g, nil
}

// CastMemberType distinguishes directors from actors.
type CastMemberType string

const (
	CastMemberDirector CastMemberType = "director"
	CastMemberActor    CastMemberType = "actor"
)

// CastMember is an authority for the people attached to a title.
type CastMember struct {
	ID        uuid.UUID
	Name      string
	Type      CastMemberType
	CreatedAt time.Time
}

// NewCastMember creates a validated cast member
func NewCastMember(name string, memberType CastMemberType) (*CastMember, error) {
	m := &CastMember{
		ID:        uuid.New(),
		Name:      name,
		Type:      memberType,
		CreatedAt: time.Now().UTC(),
	}
	n := NewNotification()
	validateRequiredText(n, "name", m.Name, maxNameLength)
	if m.Type != CastMemberDirector && m.Type != CastMemberActor {
		n.Append(NewValidationError("type", "is invalid"))
	}
	if err := n.Err("cast member"); err != nil {
		return nil, err
	}
	return m, nil
}
