// Package entities implements the entity domain for catalog.
// It provides types, data access, and business logic for creating, querying,
// updating, and deleting the managed Entity records.
package entities

import (
	"fmt"
	"strings"
	"time"
)

// EntityType classifies an entity as one of the fixed category values.
type EntityType string

// The closed set of entity categories.
const (
	EntityTypeUser    EntityType = "USER"
	EntityTypeProduct EntityType = "PRODUCT"
	EntityTypeItem    EntityType = "ITEM"
)

// ParseEntityType validates membership in the category enumeration.
// Matching is case-sensitive; anything outside the set fails with
// ErrInvalidEntityType.
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(s) {
	case EntityTypeUser, EntityTypeProduct, EntityTypeItem:
		return EntityType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEntityType, s)
}

// Entity represents a stored catalog record. The id is server-assigned and
// immutable; created-at is set once while updated-at refreshes on every
// mutation, so created-at never exceeds updated-at.
type Entity struct {
	EntityID    int64      `json:"entityId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	EntityType  EntityType `json:"entityType"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

const maxFieldLength = 50

// CreateCommand carries the data needed to add a new entity.
type CreateCommand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	EntityType  string `json:"entityType"`
}

// Validate checks the command fields and returns the parsed entity type.
func (c CreateCommand) Validate() (EntityType, error) {
	return validateFields(c.Name, c.Description, c.EntityType)
}

// UpdateCommand carries the replacement data for an existing entity.
// Name, Description, and EntityType overwrite the stored values; the id and
// created-at timestamp are preserved.
type UpdateCommand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	EntityType  string `json:"entityType"`
}

// Validate checks the command fields and returns the parsed entity type.
func (c UpdateCommand) Validate() (EntityType, error) {
	return validateFields(c.Name, c.Description, c.EntityType)
}

func validateFields(name, description, entityType string) (EntityType, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: name cannot be blank", ErrValidation)
	}
	if len(name) > maxFieldLength {
		return "", fmt.Errorf("%w: name exceeds %d characters", ErrValidation, maxFieldLength)
	}
	if strings.TrimSpace(description) == "" {
		return "", fmt.Errorf("%w: description cannot be blank", ErrValidation)
	}
	if len(description) > maxFieldLength {
		return "", fmt.Errorf("%w: description exceeds %d characters", ErrValidation, maxFieldLength)
	}

	et, err := ParseEntityType(entityType)
	if err != nil {
		return "", err
	}
	return et, nil
}
