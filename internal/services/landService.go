package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arzan03/LandMarket/internal/models"
	"github.com/arzan03/LandMarket/internal/repository"
	"github.com/arzan03/LandMarket/internal/storage"
)

type LandService struct {
	lands     LandStore
	users     UserStore
	wishlists WishlistStore
	images    ImageStore
	log       *slog.Logger
}

func NewLandService(lands LandStore, users UserStore, wishlists WishlistStore, images ImageStore, log *slog.Logger) *LandService {
	return &LandService{lands: lands, users: users, wishlists: wishlists, images: images, log: log}
}

// CreateLand uploads the images and then stores the ad, unapproved.
func (s *LandService) CreateLand(ctx context.Context, actor Actor, in models.LandInput, files []storage.ImageFile) (*models.LandAd, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := checkImageCount(files); err != nil {
		return nil, err
	}
	if !actor.CanAct(in.UserID) {
		return nil, ErrForbidden
	}
	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("userId", "unknown user")
		}
		return nil, err
	}

	urls, err := s.images.UploadImages(ctx, files)
	if err != nil {
		return nil, err
	}

	land := &models.LandAd{
		Title:       in.Title,
		Description: in.Description,
		District:    in.District,
		City:        in.City,
		Price:       in.Price,
		Size:        in.Size,
		Images:      urls,
		IsApproved:  false,
		UserID:      in.UserID,
	}
	if err := s.lands.Create(ctx, land); err != nil {
		s.cleanup(ctx, "create", urls)
		return nil, fmt.Errorf("failed to save land ad: %w", err)
	}

	s.log.Info("land ad created", "land_id", land.ID.Hex(), "user_id", land.UserID, "images", len(urls))
	return land, nil
}

func (s *LandService) GetAllLands(ctx context.Context, filter models.LandFilter) ([]models.LandAd, error) {
	return s.lands.List(ctx, filter)
}

func (s *LandService) GetLandsByUserID(ctx context.Context, userID string) ([]models.LandAd, error) {
	return s.lands.FindByUserID(ctx, userID)
}

func (s *LandService) GetLandByID(ctx context.Context, id string) (*models.LandAd, error) {
	land, err := s.lands.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return land, nil
}

// UpdateLand merges patch into the ad. When files are given they replace the ad's
// images: the new set is uploaded and stored before the old set is deleted.
func (s *LandService) UpdateLand(ctx context.Context, actor Actor, id string, patch models.LandPatch, files []storage.ImageFile) (*models.LandAd, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	if err := checkImageCount(files); err != nil {
		return nil, err
	}

	existing, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		updated, err := s.lands.Update(ctx, id, patch, nil)
		if err != nil {
			return nil, mapRepoErr(err)
		}
		return updated, nil
	}

	return s.replaceImages(ctx, existing, func(urls []string) (*models.LandAd, error) {
		return s.lands.Update(ctx, id, patch, urls)
	}, files)
}

// UpdateLandImages replaces only the ad's images.
func (s *LandService) UpdateLandImages(ctx context.Context, actor Actor, id string, files []storage.ImageFile) (*models.LandAd, error) {
	if len(files) == 0 {
		return nil, invalid("images", "required")
	}
	if err := checkImageCount(files); err != nil {
		return nil, err
	}

	existing, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	return s.replaceImages(ctx, existing, func(urls []string) (*models.LandAd, error) {
		return s.lands.SetImages(ctx, id, urls)
	}, files)
}

func (s *LandService) replaceImages(ctx context.Context, existing *models.LandAd, save func([]string) (*models.LandAd, error), files []storage.ImageFile) (*models.LandAd, error) {
	urls, err := s.images.UploadImages(ctx, files)
	if err != nil {
		return nil, err
	}

	updated, err := save(urls)
	if err != nil {
		s.cleanup(ctx, "update rollback", urls)
		return nil, mapRepoErr(err)
	}

	s.cleanup(ctx, "replace", existing.Images)
	return updated, nil
}

// RemoveImagesFromLand deletes the given images of the ad remotely and drops them from
// the stored list. URLs that do not belong to the ad are ignored.
func (s *LandService) RemoveImagesFromLand(ctx context.Context, actor Actor, id string, urls []string) (*models.LandAd, error) {
	if len(urls) == 0 {
		return nil, invalid("imageUrls", "required")
	}

	existing, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	requested := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		requested[u] = struct{}{}
	}

	var toRemove []string
	for _, u := range existing.Images {
		if _, ok := requested[u]; ok {
			toRemove = append(toRemove, u)
		}
	}
	if len(toRemove) == 0 {
		return existing, nil
	}

	s.cleanup(ctx, "remove", toRemove)

	// Pull only the removed URLs so images written since the read survive.
	updated, err := s.lands.PullImages(ctx, id, toRemove)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return updated, nil
}

// DeleteLand removes the ad's images (best effort), the ad and its wishlist entries.
func (s *LandService) DeleteLand(ctx context.Context, actor Actor, id string) (*models.LandAd, error) {
	existing, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	s.cleanup(ctx, "delete", existing.Images)

	deleted, err := s.lands.Delete(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	if err := s.wishlists.PullLandEverywhere(ctx, id); err != nil {
		s.log.Warn("failed to remove land from wishlists", "land_id", id, "err", err)
	}

	s.log.Info("land ad deleted", "land_id", id, "by", actor.UserID)
	return deleted, nil
}

func (s *LandService) SetApproval(ctx context.Context, id string, approved bool) (*models.LandAd, error) {
	land, err := s.lands.SetApproval(ctx, id, approved)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return land, nil
}

func (s *LandService) authorize(ctx context.Context, actor Actor, id string) (*models.LandAd, error) {
	land, err := s.lands.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if !actor.CanAct(land.UserID) {
		return nil, ErrForbidden
	}
	return land, nil
}

// cleanup deletes hosted images without failing the caller.
func (s *LandService) cleanup(ctx context.Context, reason string, urls []string) {
	if len(urls) == 0 {
		return
	}
	report := s.images.DeleteImagesByURLs(context.WithoutCancel(ctx), urls)
	if len(report.Failed) > 0 {
		s.log.Warn("image cleanup incomplete", "reason", reason, "failed", report.Failed)
	}
}

func checkImageCount(files []storage.ImageFile) error {
	if len(files) > models.MaxImagesPerAd {
		return invalid("images", fmt.Sprintf("at most %d images allowed", models.MaxImagesPerAd))
	}
	return nil
}
