package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tyagi221B/Ecommerce-backend/internal/models"
	"github.com/Tyagi221B/Ecommerce-backend/internal/utils"
)

// CreateCategory accepts multipart form data with a required name and photo.
// Names are stored lowercased so the unique index catches case variants.
func CreateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "CATEGORY")

		file, err := c.FormFile("photo")
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Please add Photo")
			return
		}

		name := strings.ToLower(strings.TrimSpace(c.PostForm("name")))
		if name == "" {
			utils.Fail(c, http.StatusBadRequest, "Category name is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("categories").CountDocuments(ctx, bson.M{"name": name})
		if err != nil {
			log.Println("[CATEGORY] [ERROR] duplicate check failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}
		if count > 0 {
			utils.Fail(c, http.StatusBadRequest, "Category already exists")
			return
		}

		photoPath, err := savePhoto(file)
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		now := time.Now()
		category := models.Category{
			Name:      name,
			Photo:     photoPath,
			Products:  []primitive.ObjectID{},
			CreatedAt: now,
			UpdatedAt: now,
		}

		res, err := db.Collection("categories").InsertOne(ctx, category)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				utils.Fail(c, http.StatusBadRequest, "Category already exists")
				return
			}
			log.Println("[CATEGORY] [ERROR] insert failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "Error creating category", err.Error())
			return
		}
		category.ID = res.InsertedID.(primitive.ObjectID)

		log.Println("[CATEGORY] [INFO] category created:", name)
		utils.Send(c, http.StatusCreated, category, "Category created successfully")
	}
}

func GetAllCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("categories").Find(ctx, bson.M{})
		if err != nil {
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}
		defer cursor.Close(ctx)

		categories := make([]models.Category, 0)
		if err := cursor.All(ctx, &categories); err != nil {
			utils.Fail(c, http.StatusInternalServerError, "decode error")
			return
		}

		utils.Send(c, http.StatusOK, categories, "Categories fetched successfully")
	}
}

func GetSingleCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid category ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var category models.Category
		if err := db.Collection("categories").FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category); err != nil {
			utils.Fail(c, http.StatusNotFound, "Category not found")
			return
		}

		utils.Send(c, http.StatusOK, category, "Category fetched successfully")
	}
}

// UpdateCategory takes an optional new name and an optional replacement
// photo. The old photo is removed best-effort after the document update.
func UpdateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "CATEGORY")

		categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid category ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Category
		if err := db.Collection("categories").FindOne(ctx, bson.M{"_id": categoryID}).Decode(&existing); err != nil {
			utils.Fail(c, http.StatusNotFound, "Category not found")
			return
		}

		update := bson.M{}
		if name := strings.ToLower(strings.TrimSpace(c.PostForm("name"))); name != "" && name != existing.Name {
			count, err := db.Collection("categories").CountDocuments(ctx, bson.M{"name": name})
			if err != nil {
				utils.Fail(c, http.StatusInternalServerError, "db error")
				return
			}
			if count > 0 {
				utils.Fail(c, http.StatusBadRequest, "Category already exists")
				return
			}
			update["name"] = name
		}

		oldPhoto := ""
		if file, err := c.FormFile("photo"); err == nil {
			photoPath, err := savePhoto(file)
			if err != nil {
				utils.Fail(c, http.StatusBadRequest, err.Error())
				return
			}
			update["photo"] = photoPath
			oldPhoto = existing.Photo
		}

		if len(update) == 0 {
			utils.Fail(c, http.StatusBadRequest, "Please provide a new name or photo")
			return
		}
		update["updatedAt"] = time.Now()

		var updated models.Category
		err = db.Collection("categories").FindOneAndUpdate(ctx,
			bson.M{"_id": categoryID},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			utils.Fail(c, http.StatusNotFound, "Category not found")
			return
		}

		if oldPhoto != "" {
			if err := deleteUploadedPhoto(oldPhoto); err != nil {
				log.Println("[CATEGORY] [WARN] old photo cleanup failed:", err)
			}
		}

		log.Println("[CATEGORY] [INFO] category updated:", categoryID.Hex())
		utils.Send(c, http.StatusOK, updated, "Category updated successfully")
	}
}
