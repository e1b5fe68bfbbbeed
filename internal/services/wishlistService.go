package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arzan03/LandMarket/internal/models"
	"github.com/arzan03/LandMarket/internal/repository"
)

type WishlistService struct {
	wishlists WishlistStore
	lands     LandStore
	log       *slog.Logger
}

func NewWishlistService(wishlists WishlistStore, lands LandStore, log *slog.Logger) *WishlistService {
	return &WishlistService{wishlists: wishlists, lands: lands, log: log}
}

// Add puts landID in the user's wishlist. Adding the same ad twice is a no-op.
func (s *WishlistService) Add(ctx context.Context, userID, landID string) (*models.Wishlist, error) {
	if landID == "" {
		return nil, invalid("landId", "required")
	}
	if _, err := s.lands.FindByID(ctx, landID); err != nil {
		return nil, mapRepoErr(err)
	}
	return s.wishlists.AddLand(ctx, userID, landID)
}

// Remove drops landID from the wishlist. removed is true when the wishlist became
// empty and was deleted; the returned wishlist is nil in that case.
func (s *WishlistService) Remove(ctx context.Context, userID, landID string) (wishlist *models.Wishlist, removed bool, err error) {
	wishlist, err = s.wishlists.RemoveLand(ctx, userID, landID)
	if err != nil {
		return nil, false, mapRepoErr(err)
	}
	return wishlist, wishlist == nil, nil
}

// Get returns the ad ids in the user's wishlist, or an empty list when there is none.
func (s *WishlistService) Get(ctx context.Context, userID string) ([]string, error) {
	wishlist, err := s.wishlists.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	if wishlist.LandIDs == nil {
		return []string{}, nil
	}
	return wishlist.LandIDs, nil
}

// Clear deletes the user's wishlist and reports whether one existed.
func (s *WishlistService) Clear(ctx context.Context, userID string) (bool, error) {
	n, err := s.wishlists.DeleteByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
