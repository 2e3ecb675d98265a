package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MaterialGold      = "gold"
	MaterialDiamond   = "diamond"
	MaterialSolitaire = "solitaire"
)

// LivePrice holds the current per-unit price for one material type. One
// document per material, upserted by the price feed refresher.
type LivePrice struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MaterialType string             `bson:"materialType" json:"materialType"`
	PricePerUnit float64            `bson:"pricePerUnit" json:"pricePerUnit"`
	LastUpdated  time.Time          `bson:"lastUpdated" json:"lastUpdated"`
}
