package identityserver

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenMint issues and validates the bearer tokens the session client
// treats as opaque.
type TokenMint struct {
	signingKey      []byte
	tokenExpiration time.Duration
	issuer          string
}

func NewTokenMint(signingKey []byte, expiration time.Duration, issuer string) *TokenMint {
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &TokenMint{
		signingKey:      signingKey,
		tokenExpiration: expiration,
		issuer:          issuer,
	}
}

// Mint signs a bearer token for the user.
func (t *TokenMint) Mint(user *User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    t.issuer,
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.tokenExpiration)),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(t.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign token")
	}
	return signed, nil
}

// Validate parses a bearer token and returns the subject user id. Expired
// and malformed tokens both map to ErrTokenInvalid: the caller answers 401
// either way.
func (t *TokenMint) Validate(raw string) (string, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return t.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
