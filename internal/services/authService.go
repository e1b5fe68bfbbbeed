package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arzan03/LandMarket/internal/models"
	"github.com/arzan03/LandMarket/internal/repository"
)

// bcrypt only hashes the first 72 bytes and rejects longer input.
const maxPasswordBytes = 72

type SignupInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Address     string `json:"address"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	PhoneNumber string `json:"phoneNumber"`
}

type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
	log    *slog.Logger
}

func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenIssuer, log *slog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Signup registers a new account. Public signups always get the USER role.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, invalid("password", "must be at most 72 bytes")
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		Address:      in.Address,
		PasswordHash: hash,
		Role:         models.RoleUser,
		PhoneNumber:  in.PhoneNumber,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapRepoErr(err)
	}

	s.log.Info("user registered", "user_id", user.ID.Hex())
	return user, nil
}

// Login checks the credentials and returns a signed token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
