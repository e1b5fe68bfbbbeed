package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/arzan03/LandMarket/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	user, err := e.auth.Signup(ctx, SignupInput{
		Name:        "Nimal",
		Email:       " Nimal@Example.com ",
		Address:     "12 Temple Rd",
		Password:    "password123",
		PhoneNumber: "0771234567",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "nimal@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)

	_, err = e.auth.Signup(ctx, SignupInput{Name: "Other", Email: "nimal@example.com", Password: "password456"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignup_Validation(t *testing.T) {
	e := newEnv()

	_, err := e.auth.Signup(context.Background(), SignupInput{Email: "not-an-email", Password: "123"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Msg
	}
	assert.Equal(t, "required", fields["name"])
	assert.Equal(t, "must be a valid email", fields["email"])
	assert.Contains(t, fields["password"], "at least 6")
}

func TestSignup_PasswordByteLimit(t *testing.T) {
	e := newEnv()

	// 30 runes pass the character rule but take 90 bytes.
	_, err := e.auth.Signup(context.Background(), SignupInput{
		Name:     "Wide",
		Email:    "wide@example.com",
		Password: strings.Repeat("ක", 30),
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "password", verr.Fields[0].Field)
}

func TestLogin(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	actor := e.signup(t, "kamal@example.com")

	token, user, err := e.auth.Login(ctx, "kamal@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, actor.UserID, user.ID.Hex())
	assert.Equal(t, "token-"+actor.UserID+"-USER", token)

	_, _, errWrongPassword := e.auth.Login(ctx, "kamal@example.com", "nope")
	_, _, errUnknownEmail := e.auth.Login(ctx, "ghost@example.com", "password123")
	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}
