package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func adminTestContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, recorder
}

func TestAdminOnlyMissingID(t *testing.T) {
	c, recorder := adminTestContext(t, "/api/v1/user/all")

	AdminOnly(nil)(c)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without id query param, got %d", recorder.Code)
	}
	if !c.IsAborted() {
		t.Fatal("expected request to be aborted")
	}
}

func TestAdminOnlyMalformedID(t *testing.T) {
	c, recorder := adminTestContext(t, "/api/v1/user/all?id=not-a-hex-id")

	AdminOnly(nil)(c)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed id, got %d", recorder.Code)
	}
	if !c.IsAborted() {
		t.Fatal("expected request to be aborted")
	}
}
