package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arzan03/LandMarket/internal/models"
)

type UserService struct {
	users     UserStore
	lands     LandStore
	wishlists WishlistStore
	landSvc   *LandService
	log       *slog.Logger
}

func NewUserService(users UserStore, lands LandStore, wishlists WishlistStore, landSvc *LandService, log *slog.Logger) *UserService {
	return &UserService{users: users, lands: lands, wishlists: wishlists, landSvc: landSvc, log: log}
}

func (s *UserService) GetUser(ctx context.Context, actor Actor, id string) (*models.User, error) {
	if !actor.CanAct(id) {
		return nil, ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// UpdateUser changes profile fields. The role cannot be changed here.
func (s *UserService) UpdateUser(ctx context.Context, actor Actor, id string, update models.UserUpdate) (*models.User, error) {
	if !actor.CanAct(id) {
		return nil, ErrForbidden
	}
	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		update.Email = &email
	}
	if err := validateStruct(update); err != nil {
		return nil, err
	}

	user, err := s.users.Update(ctx, id, update)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return user, nil
}

// UpdateUserRole is the admin path for changing a user's role.
func (s *UserService) UpdateUserRole(ctx context.Context, id, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, invalid("role", "must be one of USER ADMIN")
	}
	user, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.log.Info("user role changed", "user_id", id, "role", role)
	return user, nil
}

// DeleteUser removes the user's ads (with their images), their wishlist and the
// account. It returns the deleted user and how many ads went with it.
func (s *UserService) DeleteUser(ctx context.Context, actor Actor, id string) (*models.User, int, error) {
	if !actor.CanAct(id) {
		return nil, 0, ErrForbidden
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return nil, 0, mapRepoErr(err)
	}

	lands, err := s.lands.FindByUserID(ctx, id)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load user's land ads: %w", err)
	}

	owner := Actor{UserID: id, Role: actor.Role}
	removed := 0
	for _, land := range lands {
		if _, err := s.landSvc.DeleteLand(ctx, owner, land.ID.Hex()); err != nil {
			return nil, removed, fmt.Errorf("failed to delete land ad %s: %w", land.ID.Hex(), err)
		}
		removed++
	}

	if _, err := s.wishlists.DeleteByUser(ctx, id); err != nil {
		return nil, removed, err
	}

	user, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, removed, mapRepoErr(err)
	}

	s.log.Info("user deleted", "user_id", id, "land_ads_removed", removed, "by", actor.UserID)
	return user, removed, nil
}
