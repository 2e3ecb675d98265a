package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}
	phoneIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().
			SetName("phone_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique and phone_unique indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{emailIndex, phoneIndex})
	if err != nil {
		log.Println("EnsureUserIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	codeIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "productCode", Value: 1}},
		Options: options.Index().
			SetName("productCode_unique").
			SetUnique(true),
	}

	log.Println("EnsureProductIndexes: creating productCode_unique index")
	_, err := indexes.CreateOne(ctx, codeIndex)
	if err != nil {
		log.Println("EnsureProductIndexes: productCode index error:", err)
		return err
	}
	return nil
}

func EnsureCategoryIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("categories").Indexes()

	nameIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().
			SetName("name_unique").
			SetUnique(true),
	}

	log.Println("EnsureCategoryIndexes: creating name_unique index")
	_, err := indexes.CreateOne(ctx, nameIndex)
	if err != nil {
		log.Println("EnsureCategoryIndexes: name index error:", err)
		return err
	}
	return nil
}

func EnsureLivePriceIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("live_prices").Indexes()

	materialIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "materialType", Value: 1}},
		Options: options.Index().
			SetName("materialType_unique").
			SetUnique(true),
	}

	log.Println("EnsureLivePriceIndexes: creating materialType_unique index")
	_, err := indexes.CreateOne(ctx, materialIndex)
	if err != nil {
		log.Println("EnsureLivePriceIndexes: materialType index error:", err)
		return err
	}
	return nil
}
