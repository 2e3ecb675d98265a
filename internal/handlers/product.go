package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/Tyagi221B/Ecommerce-backend/internal/models"
	"github.com/Tyagi221B/Ecommerce-backend/internal/utils"
)

type mediaInput struct {
	MediaType    string `json:"mediaType"`
	MediaURL     string `json:"mediaURL" binding:"required"`
	DisplayOrder int    `json:"displayOrder"`
}

type sizeOptionInput struct {
	Size           string  `json:"size" binding:"required"`
	SizeMultiplier float64 `json:"sizeMultiplier" binding:"required"`
}

type metalOptionInput struct {
	MetalType            string  `json:"metalType" binding:"required"`
	MetalColor           string  `json:"metalColor" binding:"required"`
	MetalWeight          float64 `json:"metalWeight" binding:"required"`
	MetalPriceMultiplier float64 `json:"metalPriceMultiplier" binding:"required"`
}

type solitaireOptionInput struct {
	CaratSize                float64 `json:"caratSize" binding:"required"`
	Shape                    string  `json:"shape"`
	Clarity                  string  `json:"clarity"`
	Color                    string  `json:"color"`
	Cut                      string  `json:"cut"`
	Polish                   string  `json:"polish"`
	Symmetry                 string  `json:"symmetry"`
	Fluorescence             string  `json:"fluorescence"`
	SolitairePriceMultiplier float64 `json:"solitairePriceMultiplier" binding:"required"`
}

type diamondQualityOptionInput struct {
	QualityGrade           string  `json:"qualityGrade" binding:"required"`
	DiamondPriceMultiplier float64 `json:"diamondPriceMultiplier" binding:"required"`
}

type productCreateRequest struct {
	Name                  string                      `json:"name" binding:"required"`
	ProductCode           string                      `json:"productCode" binding:"required"`
	Description           string                      `json:"description"`
	Category              string                      `json:"category"`
	BasePrice             float64                     `json:"basePrice"`
	Dimensions            models.Dimensions           `json:"dimensions"`
	DefaultSize           string                      `json:"defaultSize"`
	Media                 []mediaInput                `json:"media"`
	SizeOptions           []sizeOptionInput           `json:"sizeOptions"`
	MetalOptions          []metalOptionInput          `json:"metalOptions"`
	SolitaireOptions      []solitaireOptionInput      `json:"solitaireOptions"`
	DiamondQualityOptions []diamondQualityOptionInput `json:"diamondQualityOptions"`
}

type productUpdateRequest struct {
	Name        *string            `json:"name"`
	ProductCode *string            `json:"productCode"`
	Description *string            `json:"description"`
	Category    *string            `json:"category"`
	BasePrice   *float64           `json:"basePrice"`
	Dimensions  *models.Dimensions `json:"dimensions"`
	DefaultSize *string            `json:"defaultSize"`
	Media       []mediaInput       `json:"media"`
}

// productDetail is the fully resolved read shape: the catalog entry with its
// child option documents inlined instead of id lists.
type productDetail struct {
	models.Product
	MediaItems           []models.Media                `json:"mediaItems"`
	SizeOptionItems      []models.SizeOption           `json:"sizeOptionItems"`
	MetalOptionItems     []models.MetalOption          `json:"metalOptionItems"`
	SolitaireOptionItems []models.SolitaireOption      `json:"solitaireOptionItems"`
	DiamondQualityItems  []models.DiamondQualityOption `json:"diamondQualityItems"`
}

// CreateProduct inserts the parent first so the children can carry its id,
// then back-fills the reference lists. The steps are not atomic; a failure
// mid-way leaves a partial product behind.
func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "PRODUCT")

		var req productCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		productCode := strings.TrimSpace(req.ProductCode)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		products := db.Collection("products")

		count, err := products.CountDocuments(ctx, bson.M{"productCode": productCode})
		if err != nil {
			log.Println("[PRODUCT] [ERROR] duplicate check failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}
		if count > 0 {
			utils.Fail(c, http.StatusBadRequest, "Product with code "+productCode+" already exists")
			return
		}

		product := models.Product{
			Name:                  strings.TrimSpace(req.Name),
			ProductCode:           productCode,
			Description:           strings.TrimSpace(req.Description),
			Category:              strings.TrimSpace(req.Category),
			BasePrice:             req.BasePrice,
			Dimensions:            req.Dimensions,
			DefaultSize:           strings.TrimSpace(req.DefaultSize),
			CreatedDate:           time.Now(),
			Media:                 []primitive.ObjectID{},
			SizeOptions:           []primitive.ObjectID{},
			MetalOptions:          []primitive.ObjectID{},
			SolitaireOptions:      []primitive.ObjectID{},
			DiamondQualityOptions: []primitive.ObjectID{},
		}

		res, err := products.InsertOne(ctx, product)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				utils.Fail(c, http.StatusBadRequest, "Product with code "+productCode+" already exists")
				return
			}
			log.Println("[PRODUCT] [ERROR] insert failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "Error creating product", err.Error())
			return
		}
		product.ID = res.InsertedID.(primitive.ObjectID)

		if len(req.Media) > 0 {
			docs := make([]interface{}, 0, len(req.Media))
			for _, m := range req.Media {
				mediaType := strings.TrimSpace(m.MediaType)
				if mediaType == "" {
					mediaType = "image"
				}
				docs = append(docs, models.Media{
					Product:      product.ID,
					MediaType:    mediaType,
					MediaURL:     strings.TrimSpace(m.MediaURL),
					DisplayOrder: m.DisplayOrder,
				})
			}
			ids, err := insertChildren(ctx, db.Collection("media"), docs)
			if err != nil {
				log.Println("[PRODUCT] [ERROR] media insert failed:", err)
				utils.Fail(c, http.StatusInternalServerError, "Error creating product", err.Error())
				return
			}
			product.Media = ids
		}

		if len(req.SizeOptions) > 0 {
			docs := make([]interface{}, 0, len(req.SizeOptions))
			for _, s := range req.SizeOptions {
				docs = append(docs, models.SizeOption{
					Product:        product.ID,
					Size:           strings.TrimSpace(s.Size),
					SizeMultiplier: s.SizeMultiplier,
				})
			}
			ids, err := insertChildren(ctx, db.Collection("size_options"), docs)
			if err != nil {
				log.Println("[PRODUCT] [ERROR] size option insert failed:", err)
				utils.Fail(c, http.StatusInternalServerError, "Error creating product", err.Error())
				return
			}
			product.SizeOptions = ids
		}

		if len(req.MetalOptions) > 0 {
			docs := make([]interface{}, 0, len(req.MetalOptions))
			for _, m := range req.MetalOptions {
				docs = append(docs, models.MetalOption{
					Product:              product.ID,
					MetalType:            strings.TrimSpace(m.MetalType),
					MetalColor:           strings.TrimSpace(m.MetalColor),
					MetalWeight:          m.MetalWeight,
					MetalPriceMultiplier: m.MetalPriceMultiplier,
				})
			}
			ids, err := insertChildren(ctx, db.Collection("metal_options"), docs)
			if err != nil {
				log.Println("[PRODUCT] [ERROR] metal option insert failed:", err)
				utils.Fail(c, http.StatusInternalServerError, "Error creating product", err.Error())
				return
			}
			product.MetalOptions = ids
		}

		if len(req.SolitaireOptions) > 0 {
			docs := make([]interface{}, 0, len(req.SolitaireOptions))
			for _, s := range req.SolitaireOptions {
				docs = append(docs, models.SolitaireOption{
					Product:                  product.ID,
					CaratSize:                s.CaratSize,
					Shape:                    strings.TrimSpace(s.Shape),
					Clarity:                  strings.TrimSpace(s.Clarity),
					Color:                    strings.TrimSpace(s.Color),
					Cut:                      strings.TrimSpace(s.Cut),
					Polish:                   strings.TrimSpace(s.Polish),
					Symmetry:                 strings.TrimSpace(s.Symmetry),
					Fluorescence:             strings.TrimSpace(s.Fluorescence),
					SolitairePriceMultiplier: s.SolitairePriceMultiplier,
				})
			}
			ids, err := insertChildren(ctx, db.Collection("solitaire_options"), docs)
			if err != nil {
				log.Println("[PRODUCT] [ERROR] solitaire option insert failed:", err)
				utils.Fail(c, http.StatusInternalServerError, "Error creating product", err.Error())
				return
			}
			product.SolitaireOptions = ids
		}

		if len(req.DiamondQualityOptions) > 0 {
			docs := make([]interface{}, 0, len(req.DiamondQualityOptions))
			for _, d := range req.DiamondQualityOptions {
				docs = append(docs, models.DiamondQualityOption{
					Product:                product.ID,
					QualityGrade:           strings.TrimSpace(d.QualityGrade),
					DiamondPriceMultiplier: d.DiamondPriceMultiplier,
				})
			}
			ids, err := insertChildren(ctx, db.Collection("diamond_quality_options"), docs)
			if err != nil {
				log.Println("[PRODUCT] [ERROR] diamond quality insert failed:", err)
				utils.Fail(c, http.StatusInternalServerError, "Error creating product", err.Error())
				return
			}
			product.DiamondQualityOptions = ids
		}

		if _, err := products.UpdateByID(ctx, product.ID, bson.M{"$set": bson.M{
			"media":                 product.Media,
			"sizeOptions":           product.SizeOptions,
			"metalOptions":          product.MetalOptions,
			"solitaireOptions":      product.SolitaireOptions,
			"diamondQualityOptions": product.DiamondQualityOptions,
		}}); err != nil {
			log.Println("[PRODUCT] [ERROR] reference back-fill failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "Error creating product", err.Error())
			return
		}

		log.Println("[PRODUCT] [INFO] product created:", productCode)
		utils.Send(c, http.StatusCreated, product, "Product created successfully")
	}
}

func insertChildren(ctx context.Context, coll *mongo.Collection, docs []interface{}) ([]primitive.ObjectID, error) {
	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, id.(primitive.ObjectID))
	}
	return ids, nil
}

// GetAllProducts lists products with their children resolved.
func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, bson.M{})
		if err != nil {
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			utils.Fail(c, http.StatusInternalServerError, "decode error")
			return
		}

		details := make([]productDetail, 0, len(products))
		for _, product := range products {
			detail, err := resolveProductDetail(ctx, db, product)
			if err != nil {
				log.Println("[PRODUCT] [ERROR] child resolve failed:", err)
				utils.Fail(c, http.StatusInternalServerError, "db error")
				return
			}
			details = append(details, detail)
		}

		utils.Send(c, http.StatusOK, details, "Products fetched successfully")
	}
}

// GetProductByID returns a single product with every child list resolved.
func GetProductByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid product ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			utils.Fail(c, http.StatusNotFound, "Product not found")
			return
		}

		detail, err := resolveProductDetail(ctx, db, product)
		if err != nil {
			log.Println("[PRODUCT] [ERROR] child resolve failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}

		utils.Send(c, http.StatusOK, detail, "Product fetched successfully")
	}
}

// resolveProductDetail fans out one query per child collection.
func resolveProductDetail(ctx context.Context, db *mongo.Database, product models.Product) (productDetail, error) {
	detail := productDetail{
		Product:              product,
		MediaItems:           []models.Media{},
		SizeOptionItems:      []models.SizeOption{},
		MetalOptionItems:     []models.MetalOption{},
		SolitaireOptionItems: []models.SolitaireOption{},
		DiamondQualityItems:  []models.DiamondQualityOption{},
	}

	g, gctx := errgroup.WithContext(ctx)
	filter := bson.M{"product": product.ID}

	g.Go(func() error {
		return findAllInto(gctx, db.Collection("media"), filter, &detail.MediaItems)
	})
	g.Go(func() error {
		return findAllInto(gctx, db.Collection("size_options"), filter, &detail.SizeOptionItems)
	})
	g.Go(func() error {
		return findAllInto(gctx, db.Collection("metal_options"), filter, &detail.MetalOptionItems)
	})
	g.Go(func() error {
		return findAllInto(gctx, db.Collection("solitaire_options"), filter, &detail.SolitaireOptionItems)
	})
	g.Go(func() error {
		return findAllInto(gctx, db.Collection("diamond_quality_options"), filter, &detail.DiamondQualityItems)
	})

	if err := g.Wait(); err != nil {
		return productDetail{}, err
	}
	return detail, nil
}

func findAllInto(ctx context.Context, coll *mongo.Collection, filter bson.M, out interface{}) error {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// UpdateProduct patches the scalar fields present in the payload. A media
// list in the payload replaces the existing media wholesale; the other
// option lists are managed through their own creation flow.
func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid product ID")
			return
		}

		var req productUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, "invalid body", err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			utils.Fail(c, http.StatusNotFound, "Product not found")
			return
		}

		update := bson.M{}
		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			update["name"] = strings.TrimSpace(*req.Name)
		}
		if req.ProductCode != nil && strings.TrimSpace(*req.ProductCode) != "" {
			update["productCode"] = strings.TrimSpace(*req.ProductCode)
		}
		if req.Description != nil {
			update["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Category != nil {
			update["category"] = strings.TrimSpace(*req.Category)
		}
		if req.BasePrice != nil {
			update["basePrice"] = *req.BasePrice
		}
		if req.Dimensions != nil {
			update["dimensions"] = *req.Dimensions
		}
		if req.DefaultSize != nil {
			update["defaultSize"] = strings.TrimSpace(*req.DefaultSize)
		}

		if req.Media != nil {
			if _, err := db.Collection("media").DeleteMany(ctx, bson.M{"product": productID}); err != nil {
				log.Println("[PRODUCT] [ERROR] media cleanup failed:", err)
				utils.Fail(c, http.StatusInternalServerError, "Error updating product", err.Error())
				return
			}
			mediaIDs := []primitive.ObjectID{}
			if len(req.Media) > 0 {
				docs := make([]interface{}, 0, len(req.Media))
				for _, m := range req.Media {
					mediaType := strings.TrimSpace(m.MediaType)
					if mediaType == "" {
						mediaType = "image"
					}
					docs = append(docs, models.Media{
						Product:      productID,
						MediaType:    mediaType,
						MediaURL:     strings.TrimSpace(m.MediaURL),
						DisplayOrder: m.DisplayOrder,
					})
				}
				mediaIDs, err = insertChildren(ctx, db.Collection("media"), docs)
				if err != nil {
					log.Println("[PRODUCT] [ERROR] media replace failed:", err)
					utils.Fail(c, http.StatusInternalServerError, "Error updating product", err.Error())
					return
				}
			}
			update["media"] = mediaIDs
		}

		if len(update) == 0 {
			utils.Fail(c, http.StatusBadRequest, "Please provide at least one field to update")
			return
		}

		if _, err := db.Collection("products").UpdateByID(ctx, productID, bson.M{"$set": update}); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				utils.Fail(c, http.StatusBadRequest, "Product with this code already exists")
				return
			}
			log.Println("[PRODUCT] [ERROR] update failed:", err)
			utils.Fail(c, http.StatusInternalServerError, "Error updating product", err.Error())
			return
		}

		var updated models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&updated); err != nil {
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}

		log.Println("[PRODUCT] [INFO] product updated:", productID.Hex())
		utils.Send(c, http.StatusOK, updated, "Product updated successfully")
	}
}

// DeleteProduct removes the product and every child document tagged with it.
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid product ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		res, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": productID})
		if err != nil {
			utils.Fail(c, http.StatusInternalServerError, "db error")
			return
		}
		if res.DeletedCount == 0 {
			utils.Fail(c, http.StatusNotFound, "Product not found")
			return
		}

		childFilter := bson.M{"product": productID}
		for _, name := range []string{"media", "size_options", "metal_options", "solitaire_options", "diamond_quality_options"} {
			if _, err := db.Collection(name).DeleteMany(ctx, childFilter); err != nil {
				log.Printf("[PRODUCT] [ERROR] %s cleanup failed: %v", name, err)
				utils.Fail(c, http.StatusInternalServerError, "Error deleting product", err.Error())
				return
			}
		}

		log.Println("[PRODUCT] [INFO] product deleted:", productID.Hex())
		utils.Send(c, http.StatusOK, nil, "Product deleted successfully")
	}
}
