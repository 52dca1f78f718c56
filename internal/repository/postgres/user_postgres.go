package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"slices"

	"github.com/google/uuid"

	"ledger/internal/model"
	"ledger/internal/repository"
)

const defaultSortField = "created_at"

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// Writes are built from model records; reads are scanned into records and rebuilt through model.UserSchema.
type UserPostgres struct {
	db      *sql.DB
	paging  repository.Paging
	columns []string
}

// NewUserPostgres creates a new UserPostgres repository.
// An empty or unknown sort field falls back to created_at.
func NewUserPostgres(db *sql.DB, paging repository.Paging) *UserPostgres {
	cols := model.UserSchema.Columns()
	if !slices.Contains(cols, paging.SortField) {
		paging.SortField = defaultSortField
	}
	return &UserPostgres{db: db, paging: paging, columns: cols}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// List returns a lazily evaluated page of users ordered by the sort field, newest first.
func (r *UserPostgres) List(ctx context.Context, pq repository.PageQuery) iter.Seq2[model.User, error] {
	pq = r.paging.Normalize(pq)
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s DESC, %s DESC LIMIT $1 OFFSET $2",
		identList(r.columns), ident(model.UsersTable), ident(r.paging.SortField), ident("uuid"))

	return func(yield func(model.User, error) bool) {
		rows, err := r.db.QueryContext(ctx, q, pq.Size, pq.Offset())
		if err != nil {
			yield(model.User{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			rec, err := scanRecord(rows)
			if err != nil {
				yield(model.User{}, err)
				return
			}
			u, err := model.UserSchema.ToObject(rec)
			if err != nil {
				yield(model.User{}, err)
				return
			}
			if !yield(u, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(model.User{}, err)
		}
	}
}

// Find fetches a single user by UUID.
func (r *UserPostgres) Find(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.findBy(ctx, "uuid", id)
}

// FindByEmail fetches a single user by email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email", email)
}

func (r *UserPostgres) findBy(ctx context.Context, col string, val any) (*model.User, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 LIMIT 1",
		identList(r.columns), ident(model.UsersTable), ident(col))
	return r.queryOne(ctx, q, val)
}

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u model.CreateUser) (*model.User, error) {
	q, args := buildInsert(model.UsersTable, model.CreateUserSchema.ToRecord(u), r.columns)
	out, err := r.queryOne(ctx, q, args...)
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// Update writes the set fields of u, then re-reads the row.
// An empty update only re-reads.
func (r *UserPostgres) Update(ctx context.Context, id uuid.UUID, u model.UpdateUser) (*model.User, error) {
	rec := model.UpdateUserSchema.ToRecord(u)
	if len(rec) > 0 {
		q, args := buildUpdate(model.UsersTable, rec, "uuid", id)
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			return nil, classify(err)
		}
	}
	return r.Find(ctx, id)
}

// Delete removes a user by UUID and reports whether a row existed.
func (r *UserPostgres) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	q := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", ident(model.UsersTable), ident("uuid"))
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsUnique reports whether no user matches either the UUID or the email.
func (r *UserPostgres) IsUnique(ctx context.Context, id uuid.UUID, email string) (bool, error) {
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1 OR %s = $2",
		ident(model.UsersTable), ident("uuid"), ident("email"))
	var count int64
	if err := r.db.QueryRowContext(ctx, q, id, email).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

// queryOne runs q and rebuilds the first row as a User. No row yields repository.ErrNotFound.
func (r *UserPostgres) queryOne(ctx context.Context, q string, args ...any) (*model.User, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, repository.ErrNotFound
	}
	rec, err := scanRecord(rows)
	if err != nil {
		return nil, err
	}
	u, err := model.UserSchema.ToObject(rec)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
