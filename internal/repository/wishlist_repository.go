package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/arzan03/LandMarket/internal/db"
	"github.com/arzan03/LandMarket/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WishlistRepository struct {
	collection *mongo.Collection
}

func NewWishlistRepository(database *mongo.Database) *WishlistRepository {
	return &WishlistRepository{collection: database.Collection(db.WishlistsCollection)}
}

func (r *WishlistRepository) FindByUser(ctx context.Context, userID string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&wishlist); err != nil {
		return nil, notFound(err)
	}
	return &wishlist, nil
}

// AddLand upserts the user's wishlist and adds landID to its set.
func (r *WishlistRepository) AddLand(ctx context.Context, userID, landID string) (*models.Wishlist, error) {
	now := time.Now().UTC()

	var wishlist models.Wishlist
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$addToSet":    bson.M{"land_ids": landID},
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&wishlist)
	if err != nil {
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return &wishlist, nil
}

// RemoveLand pulls landID from the user's wishlist. When the set becomes empty the
// document is deleted and (nil, nil) is returned.
func (r *WishlistRepository) RemoveLand(ctx context.Context, userID, landID string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"land_ids": landID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&wishlist)
	if err != nil {
		return nil, notFound(err)
	}

	if len(wishlist.LandIDs) > 0 {
		return &wishlist, nil
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "land_ids": bson.M{"$size": 0}}); err != nil {
		return nil, fmt.Errorf("failed to delete empty wishlist: %w", err)
	}
	return nil, nil
}

func (r *WishlistRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete wishlist: %w", err)
	}
	return result.DeletedCount, nil
}

// PullLandEverywhere removes a deleted ad from every wishlist and drops the ones left empty.
func (r *WishlistRepository) PullLandEverywhere(ctx context.Context, landID string) error {
	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"land_ids": landID},
		bson.M{"$pull": bson.M{"land_ids": landID}},
	)
	if err != nil {
		return fmt.Errorf("failed to pull land from wishlists: %w", err)
	}

	if _, err := r.collection.DeleteMany(ctx, bson.M{"land_ids": bson.M{"$size": 0}}); err != nil {
		return fmt.Errorf("failed to delete empty wishlists: %w", err)
	}
	return nil
}
