package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/Tyagi221B/Ecommerce-backend/internal/models"
)

// PriceFeed refreshes the live_prices collection from three external price
// endpoints, one per material.
type PriceFeed struct {
	db           *mongo.Database
	goldURL      string
	diamondURL   string
	solitaireURL string
	client       *http.Client
}

func NewPriceFeed(db *mongo.Database, goldURL, diamondURL, solitaireURL string) *PriceFeed {
	return &PriceFeed{
		db:           db,
		goldURL:      goldURL,
		diamondURL:   diamondURL,
		solitaireURL: solitaireURL,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether all three feed endpoints are set.
func (f *PriceFeed) Configured() bool {
	return f.goldURL != "" && f.diamondURL != "" && f.solitaireURL != ""
}

// Run refreshes on a fixed interval until the context is cancelled. Feed
// errors are logged and the next tick tries again.
func (f *PriceFeed) Run(ctx context.Context, interval time.Duration) {
	if err := f.RefreshOnce(ctx); err != nil {
		log.Println("[PRICE_FEED] [ERROR] initial refresh failed:", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := f.RefreshOnce(ctx); err != nil {
				log.Println("[PRICE_FEED] [ERROR] refresh failed:", err)
			}
		}
	}
}

// RefreshOnce fetches the three feeds in parallel and upserts one LivePrice
// document per material.
func (f *PriceFeed) RefreshOnce(ctx context.Context) error {
	var gold, diamond, solitaire float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		gold, err = fetchPrice(gctx, f.client, f.goldURL)
		return err
	})
	g.Go(func() error {
		var err error
		diamond, err = fetchPrice(gctx, f.client, f.diamondURL)
		return err
	})
	g.Go(func() error {
		var err error
		solitaire, err = fetchPrice(gctx, f.client, f.solitaireURL)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for material, price := range map[string]float64{
		models.MaterialGold:      gold,
		models.MaterialDiamond:   diamond,
		models.MaterialSolitaire: solitaire,
	} {
		if err := f.upsert(ctx, material, price); err != nil {
			return err
		}
	}

	log.Printf("[PRICE_FEED] [INFO] refreshed gold=%.2f diamond=%.2f solitaire=%.2f", gold, diamond, solitaire)
	return nil
}

type feedResponse struct {
	Price float64 `json:"price"`
}

func fetchPrice(ctx context.Context, client *http.Client, url string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("price feed %s responded %d", url, resp.StatusCode)
	}

	var body feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	return body.Price, nil
}

func (f *PriceFeed) upsert(ctx context.Context, materialType string, price float64) error {
	opts := options.Update().SetUpsert(true)
	_, err := f.db.Collection("live_prices").UpdateOne(ctx,
		bson.M{"materialType": materialType},
		bson.M{"$set": bson.M{
			"pricePerUnit": price,
			"lastUpdated":  time.Now(),
		}},
		opts,
	)
	return err
}
