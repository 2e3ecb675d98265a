package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/Tyagi221B/Ecommerce-backend/internal/models"
)

const localCodeTTL = 5 * time.Minute

// LocalVerifier stores bcrypt-hashed codes in the otps collection. The code
// is only logged, never sent anywhere; for development use.
type LocalVerifier struct {
	db *mongo.Database
}

func NewLocalVerifier(db *mongo.Database) *LocalVerifier {
	return &LocalVerifier{db: db}
}

func (v *LocalVerifier) Send(ctx context.Context, phone string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now()
	challenge := models.OTPChallenge{
		Phone:     phone,
		CodeHash:  string(hash),
		ExpiresAt: now.Add(localCodeTTL),
		CreatedAt: now,
	}

	// One live challenge per phone.
	opts := options.Replace().SetUpsert(true)
	if _, err := v.db.Collection("otps").ReplaceOne(ctx, bson.M{"phone": phone}, challenge, opts); err != nil {
		return "", err
	}

	log.Printf("[OTP] [DEBUG] local code for %s: %s", phone, code)
	return "pending", nil
}

func (v *LocalVerifier) Check(ctx context.Context, phone, code string) (bool, error) {
	var challenge models.OTPChallenge
	err := v.db.Collection("otps").FindOne(ctx, bson.M{"phone": phone, "used": false}).Decode(&challenge)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if time.Now().After(challenge.ExpiresAt) {
		return false, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(challenge.CodeHash), []byte(code)) != nil {
		return false, nil
	}

	_, err = v.db.Collection("otps").UpdateByID(ctx, challenge.ID, bson.M{"$set": bson.M{"used": true}})
	if err != nil {
		return false, err
	}
	return true, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
