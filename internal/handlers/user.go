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

	"github.com/Tyagi221B/Ecommerce-backend/internal/config"
	"github.com/Tyagi221B/Ecommerce-backend/internal/models"
	"github.com/Tyagi221B/Ecommerce-backend/internal/utils"
)

type registerUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

type editUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// RegisterUser creates an account after OTP verification. A phone that is
// already registered just gets a welcome-back response.
func RegisterUser(db *mongo.Database, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		phone := strings.TrimSpace(req.Phone)
		email := strings.ToLower(strings.TrimSpace(req.Email))
		name := strings.TrimSpace(req.Name)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"phone": phone}).Decode(&existing)
		if err == nil {
			utils.Send(c, http.StatusOK, existing, "Welcome again, "+existing.Name)
			return
		}
		if err != mongo.ErrNoDocuments {
			log.Println("[USER] [ERROR] register lookup failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "Error registering user", err.Error())
			return
		}

		now := time.Now()
		user := models.User{
			Name:      name,
			Email:     email,
			Phone:     phone,
			Role:      models.RoleUser,
			Addresses: []primitive.ObjectID{},
			CreatedAt: now,
			UpdatedAt: now,
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			log.Println("[USER] [ERROR] register insert failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "Error registering user", err.Error())
			return
		}
		user.ID = res.InsertedID.(primitive.ObjectID)

		if err := issueSession(c, db, &user, cfg); err != nil {
			return
		}

		log.Println("[USER] [INFO] user registered:", phone)
		utils.Send(c, http.StatusCreated, gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
		}, "User registered successfully")
	}
}

func GetAllUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("users").Find(ctx, bson.M{})
		if err != nil {
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		if err := cursor.All(ctx, &users); err != nil {
			utils.Fail(c, http.StatusInternalServerError, "decode error")
			return
		}

		utils.Send(c, http.StatusOK, users, "Users fetched successfully")
	}
}

// GetUser returns a user by id with the address list resolved.
func GetUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid user ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			utils.Fail(c, http.StatusNotFound, "User not found")
			return
		}

		respondUserWithAddresses(c, ctx, db, user)
	}
}

// GetUserByPhone mirrors GetUser for phone lookups.
func GetUserByPhone(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		phone := strings.TrimSpace(c.Param("phone"))
		if phone == "" {
			utils.Fail(c, http.StatusBadRequest, "Phone number is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"phone": phone}).Decode(&user); err != nil {
			utils.Fail(c, http.StatusNotFound, "User not found")
			return
		}

		respondUserWithAddresses(c, ctx, db, user)
	}
}

func respondUserWithAddresses(c *gin.Context, ctx context.Context, db *mongo.Database, user models.User) {
	addresses, err := resolveAddresses(ctx, db, user.Addresses)
	if err != nil {
		log.Println("[USER] [ERROR] address resolve failed:", err)
		utils.Fail(c, http.StatusInternalServerError, "db error")
		return
	}

	utils.Send(c, http.StatusOK, gin.H{
		"id":        user.ID.Hex(),
		"name":      user.Name,
		"email":     user.Email,
		"phone":     user.Phone,
		"role":      user.Role,
		"addresses": addresses,
		"createdAt": user.CreatedAt,
		"updatedAt": user.UpdatedAt,
	}, "User fetched successfully")
}

func resolveAddresses(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID) ([]models.Address, error) {
	addresses := make([]models.Address, 0, len(ids))
	if len(ids) == 0 {
		return addresses, nil
	}

	cursor, err := db.Collection("addresses").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// EditUserInfo patches the fields present in the payload.
func EditUserInfo(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var req editUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, "invalid body", err.Error())
			return
		}

		update := bson.M{}
		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			update["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
			update["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		if req.Phone != nil && strings.TrimSpace(*req.Phone) != "" {
			update["phone"] = strings.TrimSpace(*req.Phone)
		}
		if len(update) == 0 {
			utils.Fail(c, http.StatusBadRequest, "Please provide at least one field to update: name, email, or phone")
			return
		}
		update["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.User
		err = db.Collection("users").FindOneAndUpdate(ctx,
			bson.M{"_id": userID},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			utils.Fail(c, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			log.Println("[USER] [ERROR] edit failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "Error updating user information", err.Error())
			return
		}

		utils.Send(c, http.StatusOK, gin.H{
			"id":    updated.ID.Hex(),
			"name":  updated.Name,
			"email": updated.Email,
			"phone": updated.Phone,
		}, "User information updated successfully")
	}
}

// DeleteUser removes the user document. Their addresses stay behind for any
// other users still referencing them.
func DeleteUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid user ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("users").DeleteOne(ctx, bson.M{"_id": userID})
		if err != nil {
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}
		if res.DeletedCount == 0 {
			utils.Fail(c, http.StatusNotFound, "User not found")
			return
		}

		log.Println("[USER] [INFO] user deleted:", userID.Hex())
		utils.Send(c, http.StatusOK, nil, "User Deleted Successfully")
	}
}
