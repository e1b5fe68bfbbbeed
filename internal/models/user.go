package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Address      string             `bson:"address" json:"address"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	PhoneNumber  string             `bson:"phone_number" json:"phoneNumber"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}

// UserUpdate holds the profile fields a user may change. Nil fields are left untouched.
type UserUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phoneNumber"`
}

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
