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

type addressCreateRequest struct {
	UserID      string `json:"userId" binding:"required"`
	Street      string `json:"street" binding:"required"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state" binding:"required"`
	ZipCode     string `json:"zipCode" binding:"required"`
	Country     string `json:"country" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	AddressType string `json:"addressType"`
}

type addressUpdateRequest struct {
	UserID      string `json:"userId" binding:"required"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phoneNumber"`
	AddressType string `json:"addressType"`
}

type addressDeleteRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// mergeAddressFields overlays the non-empty patch fields onto the existing
// record; empty patch fields keep their current values.
func mergeAddressFields(existing models.Address, patch addressUpdateRequest) models.Address {
	merged := existing
	if v := strings.TrimSpace(patch.Street); v != "" {
		merged.Street = v
	}
	if v := strings.TrimSpace(patch.City); v != "" {
		merged.City = v
	}
	if v := strings.TrimSpace(patch.State); v != "" {
		merged.State = v
	}
	if v := strings.TrimSpace(patch.ZipCode); v != "" {
		merged.ZipCode = v
	}
	if v := strings.TrimSpace(patch.Country); v != "" {
		merged.Country = v
	}
	if v := strings.TrimSpace(patch.PhoneNumber); v != "" {
		merged.PhoneNumber = v
	}
	if v := strings.TrimSpace(patch.AddressType); v != "" {
		merged.AddressType = v
	}
	return merged
}

// addressNeedsClone decides between mutating the record in place and cloning
// it for the acting user. Only a sole referrer may mutate; a shared or
// orphaned record gets a clone.
func addressNeedsClone(referenceCount int64) bool {
	return referenceCount != 1
}

// AddAddress creates an address and appends it to the owning user's list.
func AddAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addressCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.UserID))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid user ID")
			return
		}

		addressType := strings.TrimSpace(req.AddressType)
		if addressType == "" {
			addressType = "home"
		}
		if !models.ValidAddressType(addressType) {
			utils.Fail(c, http.StatusBadRequest, "Invalid address type")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			utils.Fail(c, http.StatusNotFound, "User not found")
			return
		}

		now := time.Now()
		address := models.Address{
			User:        userID,
			Street:      strings.TrimSpace(req.Street),
			City:        strings.TrimSpace(req.City),
			State:       strings.TrimSpace(req.State),
			ZipCode:     strings.TrimSpace(req.ZipCode),
			Country:     strings.TrimSpace(req.Country),
			PhoneNumber: strings.TrimSpace(req.PhoneNumber),
			AddressType: addressType,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		res, err := db.Collection("addresses").InsertOne(ctx, address)
		if err != nil {
			log.Println("[ADDRESS] [ERROR] insert failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}
		address.ID = res.InsertedID.(primitive.ObjectID)

		if _, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$push": bson.M{"addresses": address.ID},
			"$set":  bson.M{"updatedAt": now},
		}); err != nil {
			log.Println("[ADDRESS] [ERROR] user list update failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}

		log.Println("[ADDRESS] [INFO] address created:", address.ID.Hex())
		utils.Send(c, http.StatusCreated, address, "Address added successfully")
	}
}

// UpdateAddress mutates the record in place when the acting user is its only
// referrer; otherwise it detaches the shared record from that user and
// attaches a merged clone, preserving everyone else's view.
func UpdateAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		addressID, err := primitive.ObjectIDFromHex(c.Param("addressId"))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid address ID or user ID")
			return
		}

		var req addressUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.UserID))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid address ID or user ID")
			return
		}

		if t := strings.TrimSpace(req.AddressType); t != "" && !models.ValidAddressType(t) {
			utils.Fail(c, http.StatusBadRequest, "Invalid address type")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			utils.Fail(c, http.StatusNotFound, "User not found")
			return
		}

		var address models.Address
		if err := db.Collection("addresses").FindOne(ctx, bson.M{"_id": addressID}).Decode(&address); err != nil {
			utils.Fail(c, http.StatusNotFound, "Address not found")
			return
		}

		referenceCount, err := db.Collection("users").CountDocuments(ctx, bson.M{"addresses": addressID})
		if err != nil {
			log.Println("[ADDRESS] [ERROR] reference count failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}

		merged := mergeAddressFields(address, req)
		merged.UpdatedAt = time.Now()

		if !addressNeedsClone(referenceCount) {
			var updated models.Address
			err := db.Collection("addresses").FindOneAndUpdate(ctx,
				bson.M{"_id": addressID},
				bson.M{"$set": bson.M{
					"street":      merged.Street,
					"city":        merged.City,
					"state":       merged.State,
					"zipCode":     merged.ZipCode,
					"country":     merged.Country,
					"phoneNumber": merged.PhoneNumber,
					"addressType": merged.AddressType,
					"updatedAt":   merged.UpdatedAt,
				}},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).Decode(&updated)
			if err != nil {
				utils.Fail(c, http.StatusNotFound, "Address not found")
				return
			}

			log.Println("[ADDRESS] [INFO] address updated in place:", addressID.Hex())
			utils.Send(c, http.StatusOK, updated, "Address updated successfully (no cloning needed).")
			return
		}

		// Not the sole referrer: detach the record from this user, then
		// attach a clone.
		if _, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$pull": bson.M{"addresses": addressID},
			"$set":  bson.M{"updatedAt": merged.UpdatedAt},
		}); err != nil {
			log.Println("[ADDRESS] [ERROR] detach failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}

		clone := merged
		clone.ID = primitive.NilObjectID
		clone.User = userID
		clone.CreatedAt = merged.UpdatedAt

		res, err := db.Collection("addresses").InsertOne(ctx, clone)
		if err != nil {
			log.Println("[ADDRESS] [ERROR] clone insert failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}
		clone.ID = res.InsertedID.(primitive.ObjectID)

		if _, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$push": bson.M{"addresses": clone.ID},
		}); err != nil {
			log.Println("[ADDRESS] [ERROR] attach clone failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}

		log.Printf("[ADDRESS] [INFO] address %s cloned to %s", addressID.Hex(), clone.ID.Hex())
		utils.Send(c, http.StatusOK, clone, "Address cloned and updated successfully.")
	}
}

// DeleteAddress detaches the address from the user and physically deletes
// the record only when nobody references it anymore.
func DeleteAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		addressID, err := primitive.ObjectIDFromHex(c.Param("addressId"))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid address or user ID")
			return
		}

		var req addressDeleteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.UserID))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid address or user ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			utils.Fail(c, http.StatusNotFound, "User not found")
			return
		}

		if err := db.Collection("addresses").FindOne(ctx, bson.M{"_id": addressID}).Err(); err != nil {
			utils.Fail(c, http.StatusNotFound, "Address not found")
			return
		}

		if _, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$pull": bson.M{"addresses": addressID},
			"$set":  bson.M{"updatedAt": time.Now()},
		}); err != nil {
			log.Println("[ADDRESS] [ERROR] detach failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}

		remaining, err := db.Collection("users").CountDocuments(ctx, bson.M{"addresses": addressID})
		if err != nil {
			log.Println("[ADDRESS] [ERROR] reference count failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}

		if remaining == 0 {
			if _, err := db.Collection("addresses").DeleteOne(ctx, bson.M{"_id": addressID}); err != nil {
				log.Println("[ADDRESS] [ERROR] delete failed:", err)
				utils.Fail(c, http.StatusInternalServerError, "db error")
				return
			}
			log.Println("[ADDRESS] [INFO] address deleted:", addressID.Hex())
			utils.Send(c, http.StatusOK, nil, "Address deleted successfully from both user and database.")
			return
		}

		log.Println("[ADDRESS] [INFO] address detached, still shared:", addressID.Hex())
		utils.Send(c, http.StatusOK, nil, "Address deleted successfully from your profile, but other users are still using it.")
	}
}

// GetAddressesForUser lists every address in the user's list.
func GetAddressesForUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
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

		addresses, err := resolveAddresses(ctx, db, user.Addresses)
		if err != nil {
			log.Println("[ADDRESS] [ERROR] list failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}

		utils.Send(c, http.StatusOK, gin.H{"addresses": addresses}, "Addresses fetched successfully")
	}
}

func GetAddressByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		addressID, err := primitive.ObjectIDFromHex(c.Param("addressId"))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid address ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var address models.Address
		if err := db.Collection("addresses").FindOne(ctx, bson.M{"_id": addressID}).Decode(&address); err != nil {
			utils.Fail(c, http.StatusNotFound, "Address not found")
			return
		}

		utils.Send(c, http.StatusOK, gin.H{"address": address}, "Address fetched successfully")
	}
}
