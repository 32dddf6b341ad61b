package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store/memory"
)

func TestStoreProviderAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, s.Users().Create(ctx, &models.User{ID: "u1", Email: "chief@example.com", Password: hash, Role: models.RoleAdmin}))

	p := NewStoreProvider(s)

	u, err := p.Authenticate(ctx, " Chief@Example.com ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = p.Authenticate(ctx, "chief@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = p.Authenticate(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = p.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestActorFrom(t *testing.T) {
	assert.Equal(t, SystemActor, ActorFrom(context.Background()))

	ctx := WithIdentity(context.Background(), Identity{UserID: "u1", Email: "a@example.com"})
	assert.Equal(t, "a@example.com", ActorFrom(ctx))

	ctx = WithIdentity(context.Background(), Identity{UserID: "u1", Email: "a@example.com", Name: "Sarah Taylor"})
	assert.Equal(t, "Sarah Taylor", ActorFrom(ctx))
}

func TestIdentityFromToken(t *testing.T) {
	tok := &jwt.Token{Claims: jwt.MapClaims{"sub": "u1", "email": "a@example.com", "role": "officer", "name": "A"}}
	id, err := IdentityFromToken(tok)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "u1", Email: "a@example.com", Role: "officer", Name: "A"}, id)

	_, err = IdentityFromToken(&jwt.Token{Claims: jwt.MapClaims{"email": "a@example.com"}})
	assert.Error(t, err)
	_, err = IdentityFromToken(nil)
	assert.Error(t, err)
}
