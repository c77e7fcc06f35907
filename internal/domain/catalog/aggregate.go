package catalog

import (
	"time"

	"github.com/google/uuid"
)

// BaseAggregate provides common fields for all catalog aggregates
type BaseAggregate struct {
	ID        uuid.UUID `json:"id"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the aggregate's ID
func (a BaseAggregate) GetID() uuid.UUID {
	return a.ID
}

// GetVersion returns the aggregate's version
func (a BaseAggregate) GetVersion() int {
	return a.Version
}

// NewBaseAggregate creates a new base aggregate with a new UUID and current timestamps
func NewBaseAggregate() BaseAggregate {
	now := time.Now().UTC()
	return BaseAggregate{
		ID:        uuid.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// touch increments the version and updates the timestamp
func (a *BaseAggregate) touch() {
	a.Version++
	a.UpdatedAt = time.Now().UTC()
}
