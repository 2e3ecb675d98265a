package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Tyagi221B/Ecommerce-backend/internal/utils"
)

const reAuthTestSecret = "reauth-secret"

func reAuthTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/v1/user/x", nil)
	return c, recorder
}

func TestRequireReAuthMissingToken(t *testing.T) {
	c, recorder := reAuthTestContext(t)

	RequireReAuth(reAuthTestSecret)(c)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestRequireReAuthInvalidToken(t *testing.T) {
	c, recorder := reAuthTestContext(t)
	c.Request.Header.Set("X-ReAuth-Token", "garbage")

	RequireReAuth(reAuthTestSecret)(c)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestRequireReAuthWrongUser(t *testing.T) {
	c, recorder := reAuthTestContext(t)

	token, err := utils.GenerateScopedToken(primitive.NewObjectID().Hex(), reAuthTestSecret, time.Minute)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	c.Request.Header.Set("X-ReAuth-Token", token)
	c.Set("userId", primitive.NewObjectID())

	RequireReAuth(reAuthTestSecret)(c)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for token of another user, got %d", recorder.Code)
	}
}

func TestRequireReAuthMatchingUserPasses(t *testing.T) {
	c, recorder := reAuthTestContext(t)

	userID := primitive.NewObjectID()
	token, err := utils.GenerateScopedToken(userID.Hex(), reAuthTestSecret, time.Minute)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	c.Request.Header.Set("X-ReAuth-Token", token)
	c.Set("userId", userID)

	RequireReAuth(reAuthTestSecret)(c)

	if c.IsAborted() {
		t.Fatal("expected request to pass through")
	}
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
}

func TestRequireReAuthRejectsWrongTypedContextValue(t *testing.T) {
	c, recorder := reAuthTestContext(t)

	userID := primitive.NewObjectID()
	token, err := utils.GenerateScopedToken(userID.Hex(), reAuthTestSecret, time.Minute)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	c.Request.Header.Set("X-ReAuth-Token", token)
	c.Set("userId", userID.Hex())

	RequireReAuth(reAuthTestSecret)(c)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-ObjectID context value, got %d", recorder.Code)
	}
}

func TestRequireReAuthRejectsAccessTokenSecretMismatch(t *testing.T) {
	c, recorder := reAuthTestContext(t)

	userID := primitive.NewObjectID()
	token, err := utils.GenerateScopedToken(userID.Hex(), "some-other-secret", time.Minute)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	c.Request.Header.Set("X-ReAuth-Token", token)
	c.Set("userId", userID)

	RequireReAuth(reAuthTestSecret)(c)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for token signed with another secret, got %d", recorder.Code)
	}
}
