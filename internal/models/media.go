package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Media struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Product      primitive.ObjectID `bson:"product" json:"product"`
	MediaType    string             `bson:"mediaType" json:"mediaType"` // image | video
	MediaURL     string             `bson:"mediaURL" json:"mediaURL"`
	DisplayOrder int                `bson:"displayOrder" json:"displayOrder"`
}
