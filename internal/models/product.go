package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Dimensions struct {
	Height float64 `bson:"height" json:"height"`
	Width  float64 `bson:"width" json:"width"`
	Weight float64 `bson:"weight" json:"weight"`
}

// Product holds the catalog entry plus reference lists to its child option
// documents. Children are created after the product so they can carry the
// product id; the lists are back-filled afterwards.
type Product struct {
	ID                    primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name                  string               `bson:"name" json:"name"`
	ProductCode           string               `bson:"productCode" json:"productCode"`
	Description           string               `bson:"description,omitempty" json:"description,omitempty"`
	Category              string               `bson:"category,omitempty" json:"category,omitempty"`
	BasePrice             float64              `bson:"basePrice" json:"basePrice"`
	Dimensions            Dimensions           `bson:"dimensions" json:"dimensions"`
	DefaultSize           string               `bson:"defaultSize,omitempty" json:"defaultSize,omitempty"`
	CreatedDate           time.Time            `bson:"createdDate" json:"createdDate"`
	Media                 []primitive.ObjectID `bson:"media" json:"media"`
	SizeOptions           []primitive.ObjectID `bson:"sizeOptions" json:"sizeOptions"`
	MetalOptions          []primitive.ObjectID `bson:"metalOptions" json:"metalOptions"`
	SolitaireOptions      []primitive.ObjectID `bson:"solitaireOptions" json:"solitaireOptions"`
	DiamondQualityOptions []primitive.ObjectID `bson:"diamondQualityOptions" json:"diamondQualityOptions"`
}
