package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/arzan03/LandMarket/internal/db"
	"github.com/arzan03/LandMarket/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LandRepository struct {
	collection *mongo.Collection
}

func NewLandRepository(database *mongo.Database) *LandRepository {
	return &LandRepository{collection: database.Collection(db.LandsCollection)}
}

func (r *LandRepository) Create(ctx context.Context, land *models.LandAd) error {
	now := time.Now().UTC()
	if land.ID.IsZero() {
		land.ID = primitive.NewObjectID()
	}
	if land.Images == nil {
		land.Images = []string{}
	}
	land.CreatedAt = now
	land.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, land); err != nil {
		return fmt.Errorf("failed to insert land ad: %w", err)
	}
	return nil
}

func (r *LandRepository) FindByID(ctx context.Context, id string) (*models.LandAd, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var land models.LandAd
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&land); err != nil {
		return nil, notFound(err)
	}
	return &land, nil
}

func (r *LandRepository) List(ctx context.Context, filter models.LandFilter) ([]models.LandAd, error) {
	query := bson.M{}
	if filter.City != "" {
		query["city"] = filter.City
	}
	if filter.District != "" {
		query["district"] = filter.District
	}
	if filter.Approved != nil {
		query["is_approved"] = *filter.Approved
	}
	return r.find(ctx, query)
}

func (r *LandRepository) FindByUserID(ctx context.Context, userID string) ([]models.LandAd, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *LandRepository) find(ctx context.Context, query bson.M) ([]models.LandAd, error) {
	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve land ads: %w", err)
	}
	defer cursor.Close(ctx)

	lands := []models.LandAd{}
	if err := cursor.All(ctx, &lands); err != nil {
		return nil, fmt.Errorf("error decoding land ads: %w", err)
	}
	return lands, nil
}

// Update sets the non-nil patch fields. A non-nil images slice replaces the stored one.
func (r *LandRepository) Update(ctx context.Context, id string, patch models.LandPatch, images []string) (*models.LandAd, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.District != nil {
		set["district"] = *patch.District
	}
	if patch.City != nil {
		set["city"] = *patch.City
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Size != nil {
		set["size"] = *patch.Size
	}
	if images != nil {
		set["images"] = images
	}
	return r.updateOne(ctx, id, set)
}

func (r *LandRepository) SetImages(ctx context.Context, id string, images []string) (*models.LandAd, error) {
	if images == nil {
		images = []string{}
	}
	return r.Update(ctx, id, models.LandPatch{}, images)
}

func (r *LandRepository) SetApproval(ctx context.Context, id string, approved bool) (*models.LandAd, error) {
	return r.updateOne(ctx, id, bson.M{"is_approved": approved, "updated_at": time.Now().UTC()})
}

// PullImages removes urls from the stored image list without touching the others.
func (r *LandRepository) PullImages(ctx context.Context, id string, urls []string) (*models.LandAd, error) {
	return r.apply(ctx, id, bson.M{
		"$pull": bson.M{"images": bson.M{"$in": urls}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *LandRepository) updateOne(ctx context.Context, id string, set bson.M) (*models.LandAd, error) {
	return r.apply(ctx, id, bson.M{"$set": set})
}

func (r *LandRepository) apply(ctx context.Context, id string, update bson.M) (*models.LandAd, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var land models.LandAd
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&land)
	if err != nil {
		return nil, notFound(err)
	}
	return &land, nil
}

func (r *LandRepository) Delete(ctx context.Context, id string) (*models.LandAd, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var land models.LandAd
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&land); err != nil {
		return nil, notFound(err)
	}
	return &land, nil
}
