package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type MetalOption struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Product              primitive.ObjectID `bson:"product" json:"product"`
	MetalType            string             `bson:"metalType" json:"metalType"`   // 14kt | 18kt
	MetalColor           string             `bson:"metalColor" json:"metalColor"` // yellow | white | rose
	MetalWeight          float64            `bson:"metalWeight" json:"metalWeight"`
	MetalPriceMultiplier float64            `bson:"metalPriceMultiplier" json:"metalPriceMultiplier"`
}
