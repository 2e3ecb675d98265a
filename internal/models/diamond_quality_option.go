package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type DiamondQualityOption struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Product                primitive.ObjectID `bson:"product" json:"product"`
	QualityGrade           string             `bson:"qualityGrade" json:"qualityGrade"`
	DiamondPriceMultiplier float64            `bson:"diamondPriceMultiplier" json:"diamondPriceMultiplier"`
}
