package userservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the persistent store the authentication pipeline depends on.
// Lookups miss with a not-found error; Register fails with a conflict when
// the email is already taken, without mutating the store.
type Users interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Register(ctx context.Context, user *User) (*User, error)
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository creates a Users repository backed by bun
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (a *users) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recordNotFound("id", id.String())
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "user lookup failed")
	}

	return record, nil
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recordNotFound("email", email)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "user lookup failed")
	}

	return record, nil
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	prepareUserDefaults(user)

	// The unique index on email is the real guard under concurrent
	// registration; this lookup only exists to fail early with a clean
	// conflict instead of a driver error.
	if _, err := a.GetByEmail(ctx, user.Email); err == nil {
		return nil, duplicateEmail(user.Email)
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	if _, err := a.db.NewInsert().Model(user).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateEmail(user.Email)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create user")
	}

	return user, nil
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = RoleMember
	}

	if record.ID == uuid.Nil {
		// Deterministic id derived from the email; falls back to a random
		// uuid when the hashid derivation cannot be computed.
		if id, err := hashid.NewUUID(record.Email); err == nil {
			record.ID = id
		} else {
			record.ID = uuid.New()
		}
	}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func recordNotFound(column, value string) *errors.Error {
	return errors.New("user not found", errors.CategoryNotFound).
		WithTextCode(TextCodeUserNotFound).
		WithMetadata(map[string]any{column: value})
}

func duplicateEmail(email string) *errors.Error {
	return errors.New("user already exists", errors.CategoryConflict).
		WithTextCode(TextCodeDuplicateEmail).
		WithMetadata(map[string]any{"email": email})
}
