package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func authTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/user/all", nil)
	return c, recorder
}

func TestVerifyJWTMissingToken(t *testing.T) {
	c, recorder := authTestContext(t)

	VerifyJWT(nil, "secret")(c)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestVerifyJWTMalformedToken(t *testing.T) {
	c, recorder := authTestContext(t)
	c.Request.Header.Set("Authorization", "Bearer not-a-jwt")

	VerifyJWT(nil, "secret")(c)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestTokenFromRequestPrefersCookie(t *testing.T) {
	c, _ := authTestContext(t)
	c.Request.AddCookie(&http.Cookie{Name: "accessToken", Value: "cookie-token"})
	c.Request.Header.Set("Authorization", "Bearer header-token")

	if got := tokenFromRequest(c); got != "cookie-token" {
		t.Fatalf("expected cookie token, got %q", got)
	}
}

func TestTokenFromRequestFallsBackToBearer(t *testing.T) {
	c, _ := authTestContext(t)
	c.Request.Header.Set("Authorization", "Bearer header-token")

	if got := tokenFromRequest(c); got != "header-token" {
		t.Fatalf("expected header token, got %q", got)
	}
}

func TestTokenFromRequestRejectsBadSchemes(t *testing.T) {
	c, _ := authTestContext(t)
	c.Request.Header.Set("Authorization", "Basic abc123")

	if got := tokenFromRequest(c); got != "" {
		t.Fatalf("expected empty token for non-bearer scheme, got %q", got)
	}
}

func TestTokenFromRequestEmptyRequest(t *testing.T) {
	c, _ := authTestContext(t)

	if got := tokenFromRequest(c); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}
