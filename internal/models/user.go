package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is the application account. Login is OTP based, so there is no
// password; the refresh token is stored on the document and rotated on
// every successful verification.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Email        string               `bson:"email" json:"email"`
	Phone        string               `bson:"phone" json:"phone"`
	Role         string               `bson:"role" json:"role"`
	RefreshToken string               `bson:"refreshToken,omitempty" json:"-"`
	Addresses    []primitive.ObjectID `bson:"addresses" json:"addresses"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}
