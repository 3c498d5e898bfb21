package identityserver_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-session/identityserver"
)

func TestTokenMintRoundTrip(t *testing.T) {
	mint := identityserver.NewTokenMint([]byte("test-secret"), time.Hour, "test-issuer")

	user := &identityserver.User{
		ID:    uuid.New(),
		Email: "a@x.com",
		Name:  "A",
	}

	token, err := mint.Mint(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := mint.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), subject)
}

func TestTokenMintRejectsForeignKey(t *testing.T) {
	mint := identityserver.NewTokenMint([]byte("test-secret"), time.Hour, "test-issuer")
	other := identityserver.NewTokenMint([]byte("other-secret"), time.Hour, "test-issuer")

	token, err := mint.Mint(&identityserver.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, identityserver.ErrTokenInvalid)
}

func TestTokenMintRejectsExpiredToken(t *testing.T) {
	mint := identityserver.NewTokenMint([]byte("test-secret"), time.Nanosecond, "test-issuer")

	token, err := mint.Mint(&identityserver.User{ID: uuid.New()})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = mint.Validate(token)
	assert.ErrorIs(t, err, identityserver.ErrTokenInvalid)
}

func TestTokenMintRejectsGarbage(t *testing.T) {
	mint := identityserver.NewTokenMint([]byte("test-secret"), time.Hour, "test-issuer")

	_, err := mint.Validate("not.a.token")
	assert.ErrorIs(t, err, identityserver.ErrTokenInvalid)

	_, err = mint.Validate("")
	assert.ErrorIs(t, err, identityserver.ErrTokenInvalid)
}
