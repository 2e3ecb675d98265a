package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchPriceDecodesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"price": 5231.75}`))
	}))
	defer server.Close()

	price, err := fetchPrice(context.Background(), server.Client(), server.URL)
	if err != nil {
		t.Fatalf("fetchPrice returned error: %v", err)
	}
	if price != 5231.75 {
		t.Fatalf("expected 5231.75, got %v", price)
	}
}

func TestFetchPriceRejectsNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := fetchPrice(context.Background(), server.Client(), server.URL); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestFetchPriceRejectsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	if _, err := fetchPrice(context.Background(), server.Client(), server.URL); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestFetchPriceHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := fetchPrice(ctx, server.Client(), server.URL); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestConfiguredRequiresAllThreeURLs(t *testing.T) {
	if (&PriceFeed{goldURL: "a", diamondURL: "b", solitaireURL: "c"}).Configured() != true {
		t.Fatal("expected configured feed")
	}
	if (&PriceFeed{goldURL: "a", diamondURL: "b"}).Configured() {
		t.Fatal("expected unconfigured feed with a missing URL")
	}
	if (&PriceFeed{}).Configured() {
		t.Fatal("expected unconfigured feed with no URLs")
	}
}
