package userservice

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Migrate creates the users table and its unique email index. The index is
// what makes a concurrent double registration lose cleanly instead of
// inserting a second record.
func Migrate(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create users table")
	}

	if _, err := db.NewCreateIndex().
		Model((*User)(nil)).
		Index("users_email_uq").
		Unique().
		Column("email").
		IfNotExists().
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create email index")
	}

	return nil
}
