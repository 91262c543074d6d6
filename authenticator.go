package userservice

import (
	"context"

	"github.com/goliatone/go-errors"
)

// Authenticator verifies email/password credentials and turns a successful
// check into a Principal plus a signed bearer token.
type Authenticator struct {
	users  Users
	tokens *TokenService
	logger Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(users Users, tokens *TokenService) *Authenticator {
	return &Authenticator{
		users:  users,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (a *Authenticator) WithLogger(logger Logger) *Authenticator {
	a.logger = logger
	return a
}

// Login checks the credentials against the store. An unknown email and a
// wrong password fail with the same error so callers cannot enumerate
// registered accounts. The plaintext password is never logged or stored.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*Principal, string, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			a.logger.Info("Login failed, unknown identifier", "email", email)
			return nil, "", ErrMismatchedHashAndPassword
		}
		a.logger.Error("Login lookup error", "error", err)
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		a.logger.Info("Login failed, password mismatch", "email", email)
		return nil, "", ErrMismatchedHashAndPassword
	}

	token, err := a.tokens.Issue(user.Email)
	if err != nil {
		a.logger.Error("Login token issuance error", "error", err)
		return nil, "", err
	}

	return NewPrincipal(user), token, nil
}
