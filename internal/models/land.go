package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxImagesPerAd caps the images attached to a single request.
const MaxImagesPerAd = 10

type LandAd struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	District    string             `bson:"district" json:"district"`
	City        string             `bson:"city" json:"city"`
	Price       float64            `bson:"price" json:"price"`
	Size        float64            `bson:"size" json:"size"`
	Images      []string           `bson:"images" json:"images"`
	IsApproved  bool               `bson:"is_approved" json:"isApproved"`
	UserID      string             `bson:"user_id" json:"userId"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// LandInput carries the fields required to create an ad.
type LandInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	District    string  `json:"district" validate:"required"`
	City        string  `json:"city" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Size        float64 `json:"size" validate:"required,gt=0"`
	UserID      string  `json:"userId" validate:"required"`
}

// LandPatch is a partial update; nil fields keep their stored value.
type LandPatch struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	District    *string  `json:"district" validate:"omitempty,min=1"`
	City        *string  `json:"city" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Size        *float64 `json:"size" validate:"omitempty,gt=0"`
}

// LandFilter narrows listing queries. Empty fields match everything.
type LandFilter struct {
	City     string
	District string
	Approved *bool
}
