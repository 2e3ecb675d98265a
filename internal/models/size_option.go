package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type SizeOption struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Product        primitive.ObjectID `bson:"product" json:"product"`
	Size           string             `bson:"size" json:"size"`
	SizeMultiplier float64            `bson:"sizeMultiplier" json:"sizeMultiplier"`
}
