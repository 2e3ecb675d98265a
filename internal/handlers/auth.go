package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tyagi221B/Ecommerce-backend/internal/config"
	"github.com/Tyagi221B/Ecommerce-backend/internal/models"
	"github.com/Tyagi221B/Ecommerce-backend/internal/otp"
	"github.com/Tyagi221B/Ecommerce-backend/internal/utils"
)

type sendOtpRequest struct {
	Phone string `json:"phone"`
}

type verifyOtpRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

// SendOtp starts an SMS challenge for the given phone number.
func SendOtp(verifier otp.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sendOtpRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Phone) == "" {
			utils.Fail(c, http.StatusBadRequest, "Phone number is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		status, err := verifier.Send(ctx, strings.TrimSpace(req.Phone))
		if err != nil {
			log.Println("[AUTH] [ERROR] send otp failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "Error sending OTP", err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully", "status": status})
	}
}

// VerifyOtp confirms the challenge. A known phone gets a fresh token pair in
// cookies; an unknown phone gets a register flag and never a token.
func VerifyOtp(db *mongo.Database, verifier otp.Verifier, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyOtpRequest
		if err := c.ShouldBindJSON(&req); err != nil ||
			strings.TrimSpace(req.Phone) == "" || strings.TrimSpace(req.OTP) == "" {
			utils.Fail(c, http.StatusBadRequest, "Phone number and OTP are required")
			return
		}
		phone := strings.TrimSpace(req.Phone)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		approved, err := verifier.Check(ctx, phone, strings.TrimSpace(req.OTP))
		if err != nil {
			log.Println("[AUTH] [ERROR] verify otp failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "Error verifying OTP", err.Error())
			return
		}
		if !approved {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP", "status": "OTP_FAILED"})
			return
		}

		var user models.User
		err = db.Collection("users").FindOne(ctx, bson.M{"phone": phone}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, gin.H{
				"message":  "User verified successfully, but user not found. Please register.",
				"status":   "VERIFIED",
				"register": true,
			})
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] verify otp user lookup failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}

		if err := issueSession(c, db, &user, cfg); err != nil {
			return
		}

		log.Println("[AUTH] [INFO] user logged in:", phone)
		c.JSON(http.StatusOK, gin.H{
			"message": "User logged in successfully",
			"status":  "OK",
			"user":    user,
		})
	}
}

// SendReAuthOtp re-challenges the already-authenticated session user.
func SendReAuthOtp(verifier otp.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := sessionUser(c)
		if !ok {
			utils.Fail(c, http.StatusUnauthorized, "You are not authorized to do this request")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		status, err := verifier.Send(ctx, user.Phone)
		if err != nil {
			log.Println("[AUTH] [ERROR] send reauth otp failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "Error sending OTP", err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully", "status": status})
	}
}

// VerifyReAuthOtp confirms the second challenge and hands back a short-lived
// re-auth token for the sensitive action that required it.
func VerifyReAuthOtp(verifier otp.Verifier, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := sessionUser(c)
		if !ok {
			utils.Fail(c, http.StatusUnauthorized, "You are not authorized to do this request")
			return
		}

		var req struct {
			OTP string `json:"otp"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.OTP) == "" {
			utils.Fail(c, http.StatusBadRequest, "OTP is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		approved, err := verifier.Check(ctx, user.Phone, strings.TrimSpace(req.OTP))
		if err != nil {
			log.Println("[AUTH] [ERROR] verify reauth otp failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "Error verifying OTP", err.Error())
			return
		}
		if !approved {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP", "status": "OTP_FAILED"})
			return
		}

		reAuthToken, err := utils.GenerateScopedToken(user.ID.Hex(), cfg.ReAuthTokenSecret, cfg.ReAuthTokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] reauth token generation failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "token generation failed")
			return
		}

		c.Header("X-ReAuth-Token", reAuthToken)
		c.JSON(http.StatusOK, gin.H{
			"message":     "Re-authentication successful",
			"status":      "OK",
			"reAuthToken": reAuthToken,
		})
	}
}

// issueSession generates the access/refresh pair, persists the rotated
// refresh token on the user document and sets both cookies. On failure the
// error response has already been written.
func issueSession(c *gin.Context, db *mongo.Database, user *models.User, cfg config.Config) error {
	accessToken, err := utils.GenerateAccessToken(*user, cfg.AccessTokenSecret, cfg.AccessTokenTTL)
	if err != nil {
		log.Println("[AUTH] [ERROR] access token generation failed:", err)
		utils.Fail(c, http.StatusInternalServerError, "token generation failed")
		return err
	}

	refreshToken, err := utils.GenerateScopedToken(user.ID.Hex(), cfg.RefreshTokenSecret, cfg.RefreshTokenTTL)
	if err != nil {
		log.Println("[AUTH] [ERROR] refresh token generation failed:", err)
		utils.Fail(c, http.StatusInternalServerError, "token generation failed")
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user.RefreshToken = refreshToken
	user.UpdatedAt = time.Now()
	if _, err := db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
		"$set": bson.M{
			"refreshToken": refreshToken,
			"updatedAt":    user.UpdatedAt,
		},
	}); err != nil {
		log.Println("[AUTH] [ERROR] refresh token rotation failed:", err)
		utils.Fail(c, http.StatusInternalServerError, "db error")
		return err
	}

	setAuthCookies(c, accessToken, refreshToken, cfg)
	return nil
}

func setAuthCookies(c *gin.Context, accessToken, refreshToken string, cfg config.Config) {
	secure := gin.Mode() == gin.ReleaseMode
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("accessToken", accessToken, int(cfg.AccessTokenTTL.Seconds()), "/", "", secure, true)
	c.SetCookie("refreshToken", refreshToken, int(cfg.RefreshTokenTTL.Seconds()), "/", "", secure, true)
}

func sessionUser(c *gin.Context) (models.User, bool) {
	value, ok := c.Get("user")
	if !ok {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
