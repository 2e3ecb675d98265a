package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/Tyagi221B/Ecommerce-backend/internal/models"
	"github.com/Tyagi221B/Ecommerce-backend/internal/utils"
)

const (
	makingChargeRate = 0.10
	gstRate          = 0.03
)

type calculatePriceRequest struct {
	ProductID       string `json:"productId" binding:"required"`
	SizeOption      string `json:"sizeOption" binding:"required"`
	MetalOption     string `json:"metalOption" binding:"required"`
	DiamondOption   string `json:"diamondOption" binding:"required"`
	SolitaireOption string `json:"solitaireOption" binding:"required"`
}

// PriceInputs carries everything the price formula needs: the selected
// option rows, the product's diamond weight and the live per-unit rates.
type PriceInputs struct {
	MetalWeight         float64
	MetalMultiplier     float64
	DiamondWeight       float64
	DiamondMultiplier   float64
	CaratSize           float64
	SolitaireMultiplier float64
	SizeMultiplier      float64
	GoldPricePerUnit    float64
	DiamondPricePerUnit float64
	SolitairePerUnit    float64
}

type PriceBreakdown struct {
	GoldCost      float64 `json:"goldCost"`
	DiamondCost   float64 `json:"diamondCost"`
	SolitaireCost float64 `json:"solitaireCost"`
	MakingCharges float64 `json:"makingCharges"`
	GST           float64 `json:"gst"`
	TotalPrice    float64 `json:"totalPrice"`
}

// computePrice applies the pricing formula: material costs from live rates
// and option multipliers, a making charge on top, the size multiplier on the
// subtotal and GST last.
func computePrice(in PriceInputs) PriceBreakdown {
	goldCost := in.MetalWeight * in.GoldPricePerUnit * in.MetalMultiplier
	diamondCost := in.DiamondWeight * in.DiamondPricePerUnit * in.DiamondMultiplier
	solitaireCost := in.CaratSize * in.SolitairePerUnit * in.SolitaireMultiplier

	materialCost := goldCost + diamondCost + solitaireCost
	makingCharges := makingChargeRate * materialCost
	subtotal := (materialCost + makingCharges) * in.SizeMultiplier
	gst := gstRate * subtotal

	return PriceBreakdown{
		GoldCost:      goldCost,
		DiamondCost:   diamondCost,
		SolitaireCost: solitaireCost,
		MakingCharges: makingCharges,
		GST:           gst,
		TotalPrice:    subtotal + gst,
	}
}

// CalculatePrice prices one product configuration. The option rows and the
// three live material rates are fetched in parallel; a missing option maps
// to 404, a missing rate to 500 since nothing can be priced without the
// feed.
func CalculatePrice(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "PRICE")

		var req calculatePriceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		productID, err1 := primitive.ObjectIDFromHex(req.ProductID)
		sizeID, err2 := primitive.ObjectIDFromHex(req.SizeOption)
		metalID, err3 := primitive.ObjectIDFromHex(req.MetalOption)
		diamondID, err4 := primitive.ObjectIDFromHex(req.DiamondOption)
		solitaireID, err5 := primitive.ObjectIDFromHex(req.SolitaireOption)
		for _, err := range []error{err1, err2, err3, err4, err5} {
			if err != nil {
				utils.Fail(c, http.StatusBadRequest, "Invalid product or option ID")
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var (
			product   models.Product
			size      models.SizeOption
			metal     models.MetalOption
			diamond   models.DiamondQualityOption
			solitaire models.SolitaireOption
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return db.Collection("products").FindOne(gctx, bson.M{"_id": productID}).Decode(&product)
		})
		g.Go(func() error {
			return db.Collection("size_options").FindOne(gctx, bson.M{"_id": sizeID}).Decode(&size)
		})
		g.Go(func() error {
			return db.Collection("metal_options").FindOne(gctx, bson.M{"_id": metalID}).Decode(&metal)
		})
		g.Go(func() error {
			return db.Collection("diamond_quality_options").FindOne(gctx, bson.M{"_id": diamondID}).Decode(&diamond)
		})
		g.Go(func() error {
			return db.Collection("solitaire_options").FindOne(gctx, bson.M{"_id": solitaireID}).Decode(&solitaire)
		})
		if err := g.Wait(); err != nil {
			utils.Fail(c, http.StatusNotFound, "Invalid product or options selected")
			return
		}

		var goldRate, diamondRate, solitaireRate models.LivePrice
		prices := db.Collection("live_prices")

		g, gctx = errgroup.WithContext(ctx)
		g.Go(func() error {
			return prices.FindOne(gctx, bson.M{"materialType": models.MaterialGold}).Decode(&goldRate)
		})
		g.Go(func() error {
			return prices.FindOne(gctx, bson.M{"materialType": models.MaterialDiamond}).Decode(&diamondRate)
		})
		g.Go(func() error {
			return prices.FindOne(gctx, bson.M{"materialType": models.MaterialSolitaire}).Decode(&solitaireRate)
		})
		if err := g.Wait(); err != nil {
			log.Println("[PRICE] [ERROR] live price lookup failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "Live prices not available")
			return
		}

		breakdown := computePrice(PriceInputs{
			MetalWeight:         metal.MetalWeight,
			MetalMultiplier:     metal.MetalPriceMultiplier,
			DiamondWeight:       product.Dimensions.Weight,
			DiamondMultiplier:   diamond.DiamondPriceMultiplier,
			CaratSize:           solitaire.CaratSize,
			SolitaireMultiplier: solitaire.SolitairePriceMultiplier,
			SizeMultiplier:      size.SizeMultiplier,
			GoldPricePerUnit:    goldRate.PricePerUnit,
			DiamondPricePerUnit: diamondRate.PricePerUnit,
			SolitairePerUnit:    solitaireRate.PricePerUnit,
		})

		utils.Send(c, http.StatusOK, breakdown, "Price calculated successfully")
	}
}
