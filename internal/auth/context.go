package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SystemActor labels activity rows written without an authenticated caller
// (seeding, bootstrap).
const SystemActor = "System"

// Identity is the authenticated caller as carried in access-token claims.
type Identity struct {
	UserID string
	Email  string
	Role   string
	Name   string
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// ActorFrom returns the label recorded as the actor of a mutation.
func ActorFrom(ctx context.Context) string {
	id, ok := IdentityFrom(ctx)
	switch {
	case !ok:
		return SystemActor
	case id.Name != "":
		return id.Name
	case id.Email != "":
		return id.Email
	}
	return SystemActor
}

// IdentityFromToken reads the claims written by the auth service.
func IdentityFromToken(token *jwt.Token) (Identity, error) {
	if token == nil {
		return Identity{}, errors.New("missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Identity{}, errors.New("missing sub claim")
	}
	id := Identity{UserID: sub}
	id.Email, _ = claims["email"].(string)
	id.Role, _ = claims["role"].(string)
	id.Name, _ = claims["name"].(string)
	return id, nil
}

// GetIdentity extracts the caller from the JWT stored in Fiber locals.
func GetIdentity(c *fiber.Ctx) (Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return Identity{}, errors.New("invalid token in context")
	}
	return IdentityFromToken(token)
}

// GetUserID extracts the user id from JWT claims in context.
func GetUserID(c *fiber.Ctx) (string, error) {
	id, err := GetIdentity(c)
	if err != nil {
		return "", err
	}
	return id.UserID, nil
}
