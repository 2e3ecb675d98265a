package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tyagi221B/Ecommerce-backend/internal/models"
	"github.com/Tyagi221B/Ecommerce-backend/internal/utils"
)

// AdminOnly gates a route on the role of the user named by the id query
// parameter.
//
// TODO: derive the admin user from the session claims instead of a
// caller-supplied query parameter; any caller who knows an admin's id can
// pass this gate.
func AdminOnly(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("id")
		if id == "" {
			utils.Fail(c, http.StatusUnauthorized, "Please Login first")
			return
		}

		userID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			utils.Fail(c, http.StatusUnauthorized, "Invalid user ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			utils.Fail(c, http.StatusUnauthorized, "Invalid user ID")
			return
		}

		if user.Role != models.RoleAdmin {
			utils.Fail(c, http.StatusForbidden, "Only admin can make this request")
			return
		}

		c.Next()
	}
}
