package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address records are shareable: more than one user's addresses list may
// point at the same document. The user field only records who created it.
type Address struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Street      string             `bson:"street" json:"street"`
	City        string             `bson:"city" json:"city"`
	State       string             `bson:"state" json:"state"`
	ZipCode     string             `bson:"zipCode" json:"zipCode"`
	Country     string             `bson:"country" json:"country"`
	PhoneNumber string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	AddressType string             `bson:"addressType" json:"addressType"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var addressTypes = map[string]struct{}{
	"home":     {},
	"work":     {},
	"billing":  {},
	"shipping": {},
}

func ValidAddressType(t string) bool {
	_, ok := addressTypes[t]
	return ok
}
