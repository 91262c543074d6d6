package userservice

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenIssuer is the fixed issuer claim stamped on every token
const TokenIssuer = "UserService"

// TokenService issues and validates the signed bearer tokens that carry a
// user's identity between requests. It keeps no record of issued tokens:
// validity is a pure function of signature and expiry, which also means a
// token cannot be revoked before it expires.
type TokenService struct {
	signingKey []byte
	expiration time.Duration
	issuer     string
	logger     Logger
}

// NewTokenService creates a TokenService. Expiration is expressed in
// milliseconds to match the deployment configuration surface.
func NewTokenService(signingKey []byte, expirationMs int, issuer string, logger Logger) *TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	if issuer == "" {
		issuer = TokenIssuer
	}
	return &TokenService{
		signingKey: signingKey,
		expiration: time.Duration(expirationMs) * time.Millisecond,
		issuer:     issuer,
		logger:     logger,
	}
}

// Issue creates a signed token for the given subject email
func (ts *TokenService) Issue(subjectEmail string) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   subjectEmail,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate reports whether the token is well formed, carries a valid
// signature, and has not expired. The individual failure reasons are
// collapsed to a boolean; callers never need to distinguish them, so they
// are only logged here.
func (ts *TokenService) Validate(tokenString string) bool {
	_, err := ts.parse(tokenString)
	if err == nil {
		return true
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		ts.logger.Error("JWT token is expired: %v", err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		ts.logger.Error("Invalid JWT token: %v", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		ts.logger.Error("JWT token signature mismatch: %v", err)
	default:
		ts.logger.Error("JWT token is unsupported: %v", err)
	}

	return false
}

// Subject returns the email embedded in a previously validated token.
// Calling it with a token that does not validate is a programming error
// and fails with an internal invalid-state error.
func (ts *TokenService) Subject(tokenString string) (string, error) {
	claims, err := ts.parse(tokenString)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "token must be validated before reading its subject").
			WithTextCode(TextCodeInvalidState)
	}
	return claims.Subject(), nil
}

func (ts *TokenService) parse(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, jwt.WithIssuer(ts.issuer))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("unable to decode token claims", errors.CategoryAuth)
	}

	return claims, nil
}
