package services

import (
	"context"
	"errors"
	"testing"

	"github.com/arzan03/LandMarket/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_SelfOrAdmin(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	alice := e.signup(t, "alice@example.com")
	bob := e.signup(t, "bob@example.com")
	admin := e.admin(t)

	_, err := e.user.GetUser(ctx, alice, alice.UserID)
	assert.NoError(t, err)

	_, err = e.user.GetUser(ctx, bob, alice.UserID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = e.user.GetUser(ctx, admin, alice.UserID)
	assert.NoError(t, err)

	_, err = e.user.GetUser(ctx, admin, "000000000000000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_UpdateUser(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	alice := e.signup(t, "alice@example.com")
	e.signup(t, "bob@example.com")

	name := "Alice Perera"
	user, err := e.user.UpdateUser(ctx, alice, alice.UserID, models.UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, user.Name)
	assert.Equal(t, models.RoleUser, user.Role)

	taken := "bob@example.com"
	_, err = e.user.UpdateUser(ctx, alice, alice.UserID, models.UserUpdate{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)

	bad := "nope"
	_, err = e.user.UpdateUser(ctx, alice, alice.UserID, models.UserUpdate{Email: &bad})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestUserService_UpdateUserRole(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	alice := e.signup(t, "alice@example.com")

	user, err := e.user.UpdateUserRole(ctx, alice.UserID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	_, err = e.user.UpdateUserRole(ctx, alice.UserID, "SUPERUSER")
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestUserService_DeleteUserCascades(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	alice := e.signup(t, "alice@example.com")
	bob := e.signup(t, "bob@example.com")

	aliceLand, err := e.land.CreateLand(ctx, alice, landInput(alice.UserID), files("a.jpg", "b.jpg"))
	require.NoError(t, err)
	_, err = e.land.CreateLand(ctx, alice, landInput(alice.UserID), files("c.jpg"))
	require.NoError(t, err)
	bobLand, err := e.land.CreateLand(ctx, bob, landInput(bob.UserID), files("d.jpg"))
	require.NoError(t, err)

	_, err = e.wishlist.Add(ctx, alice.UserID, bobLand.ID.Hex())
	require.NoError(t, err)
	_, err = e.wishlist.Add(ctx, bob.UserID, aliceLand.ID.Hex())
	require.NoError(t, err)

	_, _, err = e.user.DeleteUser(ctx, bob, alice.UserID)
	assert.ErrorIs(t, err, ErrForbidden)

	deleted, removed, err := e.user.DeleteUser(ctx, alice, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, deleted.ID.Hex())
	assert.Equal(t, 2, removed)

	lands, err := e.land.GetLandsByUserID(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Empty(t, lands)
	assert.Equal(t, 1, e.images.hostedCount(), "only bob's image should remain")

	aliceWishlist, err := e.wishlist.Get(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Empty(t, aliceWishlist)

	bobWishlist, err := e.wishlist.Get(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Empty(t, bobWishlist, "deleted ads are pulled from other wishlists")

	_, err = e.user.GetUser(ctx, alice, alice.UserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUser_NormalizesEmail(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	u := e.signup(t, "old@example.com")

	email := "  Fresh@Example.COM "
	updated, err := e.user.UpdateUser(ctx, u, u.UserID, models.UserUpdate{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "fresh@example.com", updated.Email)

	_, _, err = e.auth.Login(ctx, "FRESH@example.com", "password123")
	assert.NoError(t, err)
}
