package repository

import (
	"context"
	"errors"
	"iter"

	"github.com/google/uuid"

	"ledger/internal/model"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict is returned when a write violates a unique constraint.
	ErrConflict = errors.New("repository: unique constraint violated")
)

// UserRepository defines data access for users.
// No business logic here; strictly persistence operations.
type UserRepository interface {
	// List returns one page of users, newest first. The query runs lazily when the sequence is ranged over.
	List(ctx context.Context, pq PageQuery) iter.Seq2[model.User, error]

	// Find returns the user with the given UUID or ErrNotFound.
	Find(ctx context.Context, id uuid.UUID) (*model.User, error)

	// FindByEmail returns the user with the given email or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create inserts a user and returns the stored row, including database defaults.
	Create(ctx context.Context, u model.CreateUser) (*model.User, error)

	// Update writes the non-nil fields of u and returns the re-read row.
	Update(ctx context.Context, id uuid.UUID, u model.UpdateUser) (*model.User, error)

	// Delete removes a user. It reports whether a row was deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// IsUnique reports whether no user has the given UUID or email.
	IsUnique(ctx context.Context, id uuid.UUID, email string) (bool, error)
}

// PageQuery selects a page of a listing. Zero values fall back to the repository defaults.
type PageQuery struct {
	Page int
	Size int
}

// Paging holds the listing defaults of a repository.
type Paging struct {
	DefaultSize int
	MaxSize     int
	SortField   string
}

// Normalize clamps pq against p: a negative page becomes 0, a non-positive size becomes the default
// and sizes above the maximum are capped.
func (p Paging) Normalize(pq PageQuery) PageQuery {
	if pq.Page < 0 {
		pq.Page = 0
	}
	if pq.Size <= 0 {
		pq.Size = p.DefaultSize
	}
	if p.MaxSize > 0 && pq.Size > p.MaxSize {
		pq.Size = p.MaxSize
	}
	return pq
}

// Offset returns the number of rows skipped before the page.
func (pq PageQuery) Offset() int {
	return pq.Page * pq.Size
}
