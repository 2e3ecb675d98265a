package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type SolitaireOption struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Product                  primitive.ObjectID `bson:"product" json:"product"`
	CaratSize                float64            `bson:"caratSize" json:"caratSize"`
	Shape                    string             `bson:"shape,omitempty" json:"shape,omitempty"`
	Clarity                  string             `bson:"clarity,omitempty" json:"clarity,omitempty"`
	Color                    string             `bson:"color,omitempty" json:"color,omitempty"`
	Cut                      string             `bson:"cut,omitempty" json:"cut,omitempty"`
	Polish                   string             `bson:"polish,omitempty" json:"polish,omitempty"`
	Symmetry                 string             `bson:"symmetry,omitempty" json:"symmetry,omitempty"`
	Fluorescence             string             `bson:"fluorescence,omitempty" json:"fluorescence,omitempty"`
	SolitairePriceMultiplier float64            `bson:"solitairePriceMultiplier" json:"solitairePriceMultiplier"`
}
