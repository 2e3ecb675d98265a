package otp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testVerifier(server *httptest.Server) *TwilioVerifier {
	return &TwilioVerifier{
		accountSID: "AC123",
		authToken:  "token123",
		serviceSID: "VA456",
		baseURL:    server.URL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

func TestTwilioSendHitsVerificationsEndpoint(t *testing.T) {
	var gotPath, gotTo, gotChannel string
	var gotUser, gotPass string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Errorf("form parse failed: %v", err)
		}
		gotTo = r.PostFormValue("To")
		gotChannel = r.PostFormValue("Channel")
		w.Write([]byte(`{"status":"pending"}`))
	}))
	defer server.Close()

	status, err := testVerifier(server).Send(context.Background(), "+15551234567")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if status != "pending" {
		t.Fatalf("expected status pending, got %q", status)
	}
	if gotPath != "/Services/VA456/Verifications" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotTo != "+15551234567" || gotChannel != "sms" {
		t.Fatalf("unexpected form values To=%q Channel=%q", gotTo, gotChannel)
	}
	if gotUser != "AC123" || gotPass != "token123" {
		t.Fatalf("unexpected basic auth %q:%q", gotUser, gotPass)
	}
}

func TestTwilioCheckApproved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/VerificationCheck") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"status":"approved"}`))
	}))
	defer server.Close()

	ok, err := testVerifier(server).Check(context.Background(), "+15551234567", "123456")
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected approved check to pass")
	}
}

func TestTwilioCheckPendingIsNotApproved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"pending"}`))
	}))
	defer server.Close()

	ok, err := testVerifier(server).Check(context.Background(), "+15551234567", "000000")
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if ok {
		t.Fatal("expected pending check to fail")
	}
}

func TestTwilioCheckNotFoundIsFailureNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	ok, err := testVerifier(server).Check(context.Background(), "+15551234567", "123456")
	if err != nil {
		t.Fatalf("expected 404 to map to a failed check, got error: %v", err)
	}
	if ok {
		t.Fatal("expected failed check for 404")
	}
}

func TestTwilioServerErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"upstream broke"}`))
	}))
	defer server.Close()

	if _, err := testVerifier(server).Send(context.Background(), "+15551234567"); err == nil {
		t.Fatal("expected error for 500 response")
	}
	if _, err := testVerifier(server).Check(context.Background(), "+15551234567", "123456"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestTwilioSendRequiresStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	if _, err := testVerifier(server).Send(context.Background(), "+15551234567"); err == nil {
		t.Fatal("expected error when provider returns no status")
	}
}
