package services

import (
	"context"

	"github.com/arzan03/LandMarket/internal/models"
	"github.com/arzan03/LandMarket/internal/storage"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error)
	UpdateRole(ctx context.Context, id, role string) (*models.User, error)
	Delete(ctx context.Context, id string) (*models.User, error)
}

type LandStore interface {
	Create(ctx context.Context, land *models.LandAd) error
	FindByID(ctx context.Context, id string) (*models.LandAd, error)
	List(ctx context.Context, filter models.LandFilter) ([]models.LandAd, error)
	FindByUserID(ctx context.Context, userID string) ([]models.LandAd, error)
	Update(ctx context.Context, id string, patch models.LandPatch, images []string) (*models.LandAd, error)
	SetImages(ctx context.Context, id string, images []string) (*models.LandAd, error)
	PullImages(ctx context.Context, id string, urls []string) (*models.LandAd, error)
	SetApproval(ctx context.Context, id string, approved bool) (*models.LandAd, error)
	Delete(ctx context.Context, id string) (*models.LandAd, error)
}

type WishlistStore interface {
	FindByUser(ctx context.Context, userID string) (*models.Wishlist, error)
	AddLand(ctx context.Context, userID, landID string) (*models.Wishlist, error)
	RemoveLand(ctx context.Context, userID, landID string) (*models.Wishlist, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	PullLandEverywhere(ctx context.Context, landID string) error
}

// ImageStore uploads and removes hosted ad images.
type ImageStore interface {
	UploadImages(ctx context.Context, files []storage.ImageFile) ([]string, error)
	DeleteImagesByURLs(ctx context.Context, urls []string) storage.DeleteReport
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

type TokenIssuer interface {
	Generate(userID, role string) (string, error)
}
