package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Tyagi221B/Ecommerce-backend/internal/utils"
)

// RequireReAuth demands proof of a second OTP challenge within the current
// session. Must run after VerifyJWT; the re-auth token's subject has to
// match the authenticated user.
func RequireReAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("X-ReAuth-Token"))
		if token == "" {
			utils.Fail(c, http.StatusUnauthorized, "Re-authentication required")
			return
		}

		claims, err := utils.ParseToken(token, secret)
		if err != nil {
			utils.Fail(c, http.StatusUnauthorized, "Re-authentication required")
			return
		}

		userIDValue, ok := c.Get("userId")
		if !ok {
			utils.Fail(c, http.StatusUnauthorized, "You are not authorized to do this request")
			return
		}
		userID, ok := userIDValue.(primitive.ObjectID)
		if !ok {
			utils.Fail(c, http.StatusUnauthorized, "You are not authorized to do this request")
			return
		}

		if claims.UserID != userID.Hex() {
			utils.Fail(c, http.StatusUnauthorized, "Invalid re-authentication token")
			return
		}

		c.Next()
	}
}
