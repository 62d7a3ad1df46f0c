package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every domain object with its own identity.
// Mirror rows keep this local identity even though the marketplace has
// its own remote IDs for them.
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity carries the identity and timestamps shared by all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity assigns a fresh UUID and stamps both timestamps
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// GetID returns the local identity, stable across marketplace syncs
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns when the entity was first persisted
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns when the entity last changed
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}
