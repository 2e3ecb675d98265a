// Package otp sends and checks one-time codes for phone login. The Twilio
// Verify API is used when credentials are configured; otherwise a local
// Mongo-backed verifier keeps development environments working.
package otp

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tyagi221B/Ecommerce-backend/internal/config"
)

type Verifier interface {
	// Send starts a challenge for the phone number and reports the provider
	// status (e.g. "pending").
	Send(ctx context.Context, phone string) (string, error)
	// Check confirms a code. A wrong or expired code is approved=false with
	// a nil error; errors mean the provider itself failed.
	Check(ctx context.Context, phone, code string) (bool, error)
}

// New picks the Twilio verifier when the account is configured and falls
// back to the local one otherwise.
func New(cfg config.Config, db *mongo.Database) Verifier {
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioVerifyServiceSID != "" {
		return NewTwilioVerifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioVerifyServiceSID)
	}
	log.Println("[OTP] [INFO] Twilio not configured, using local verifier")
	return NewLocalVerifier(db)
}
