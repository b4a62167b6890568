// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// NormalizeCategoryName converts a raw category name to its canonical form:
// surrounding whitespace trimmed and all letters uppercased. Uniqueness per
// owner is enforced on the normalized form.
func NormalizeCategoryName(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Category represents a user-owned transaction category. Names are stored
// normalized; no two categories of the same owner share a name.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity. The caller is expected to pass
// an already-normalized name.
func NewCategory(userID uuid.UUID, name string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
