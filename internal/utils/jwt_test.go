package utils

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Tyagi221B/Ecommerce-backend/internal/models"
)

func testUser() models.User {
	return models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Asha",
		Email: "asha@example.com",
		Phone: "+919999999999",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	user := testUser()

	token, err := GenerateAccessToken(user, "access-secret", time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	claims, err := ParseToken(token, "access-secret")
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if claims.UserID != user.ID.Hex() {
		t.Fatalf("expected user id %s, got %s", user.ID.Hex(), claims.UserID)
	}
	if claims.Email != user.Email || claims.Phone != user.Phone || claims.Name != user.Name {
		t.Fatalf("expected profile claims preserved, got %+v", claims)
	}
}

func TestScopedTokenCarriesOnlyID(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	token, err := GenerateScopedToken(id, "refresh-secret", time.Minute)
	if err != nil {
		t.Fatalf("GenerateScopedToken returned error: %v", err)
	}

	claims, err := ParseToken(token, "refresh-secret")
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if claims.UserID != id {
		t.Fatalf("expected user id %s, got %s", id, claims.UserID)
	}
	if claims.Email != "" || claims.Phone != "" || claims.Name != "" {
		t.Fatalf("expected no profile claims, got %+v", claims)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateScopedToken(primitive.NewObjectID().Hex(), "secret-a", time.Minute)
	if err != nil {
		t.Fatalf("GenerateScopedToken returned error: %v", err)
	}

	if _, err := ParseToken(token, "secret-b"); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestParseTokenRejectsExpiredToken(t *testing.T) {
	token, err := GenerateScopedToken(primitive.NewObjectID().Hex(), "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateScopedToken returned error: %v", err)
	}

	if _, err := ParseToken(token, "secret"); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-token", "secret"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
