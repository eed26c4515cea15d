package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/Kariqs/ecommerce-shop-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type ProductStore interface {
	SearchProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id uint, apply func(*models.Product) error) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) ([]models.ProductImage, error)
	AddImage(ctx context.Context, productID uint, path string) (*models.ProductImage, error)
	ReplaceImage(ctx context.Context, productID uint, path string) (*models.ProductImage, *models.ProductImage, error)
}

// ProductInput is accepted as JSON or as a multipart form. Attributes are JSON only.
type ProductInput struct {
	Name        *string         `json:"name" form:"name"`
	Price       *float64        `json:"price" form:"price" binding:"omitempty,gte=0"`
	Description *string         `json:"description" form:"description"`
	Stock       *int            `json:"stock" form:"stock" binding:"omitempty,gte=0"`
	IsActive    *bool           `json:"is_active" form:"is_active"`
	CategoryID  *uint           `json:"category_id" form:"category_id"`
	Attributes  json.RawMessage `json:"attributes" form:"-"`
}

type ProductController struct {
	products ProductStore
	images   utils.ImageStore
}

func NewProductController(products ProductStore, images utils.ImageStore) *ProductController {
	return &ProductController{products: products, images: images}
}

// GetProducts lists products one page at a time. The name, category_id, min_price and
// max_price query parameters narrow the result.
func (c *ProductController) GetProducts(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := (page - 1) * limit

	filters, err := productFiltersFromQuery(ctx)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	products, total, err := c.products.SearchProducts(ctx.Request.Context(), offset, limit, filters)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"products": resp,
		"metadata": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func productFiltersFromQuery(ctx *gin.Context) (models.ProductFilters, error) {
	filters := models.ProductFilters{Name: ctx.Query("name")}
	if filters.Name == "" {
		filters.Name = ctx.Query("search")
	}

	if raw := ctx.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return filters, fmt.Errorf("%w: category_id must be a positive integer", models.ErrValidation)
		}
		categoryID := uint(id)
		filters.CategoryID = &categoryID
	}

	for _, bound := range []struct {
		param string
		dst   **decimal.Decimal
	}{
		{"min_price", &filters.MinPrice},
		{"max_price", &filters.MaxPrice},
	} {
		raw := ctx.Query(bound.param)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return filters, fmt.Errorf("%w: %s must be a number", models.ErrValidation, bound.param)
		}
		*bound.dst = &value
	}
	return filters, nil
}

func (c *ProductController) GetProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	product, err := c.products.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, toProductResponse(*product))
}

func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var input ProductInput
	if err := ctx.ShouldBind(&input); err != nil {
		respondWithBindingError(ctx, err)
		return
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "name is required")
		return
	}
	if input.Price == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "price is required")
		return
	}

	file, err := optionalImage(ctx)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	product := models.Product{IsActive: true}
	if err := input.apply(&product); err != nil {
		respondWithError(ctx, err)
		return
	}
	if err := c.products.CreateProduct(ctx.Request.Context(), &product); err != nil {
		respondWithError(ctx, err)
		return
	}

	if file != nil {
		if _, err := c.storeImage(ctx.Request.Context(), product.ID, file, c.products.AddImage); err != nil {
			respondWithError(ctx, err)
			return
		}
	}

	c.respondWithProduct(ctx, http.StatusCreated, msgProductCreated, product.ID)
}

// UpdateProduct changes the fields present in the request. An uploaded image replaces
// the product's first image.
func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var input ProductInput
	if err := ctx.ShouldBind(&input); err != nil {
		respondWithBindingError(ctx, err)
		return
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "name must not be empty")
		return
	}

	file, err := optionalImage(ctx)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	if _, err := c.products.UpdateProduct(ctx.Request.Context(), id, input.apply); err != nil {
		respondWithError(ctx, err)
		return
	}

	if file != nil {
		var replaced *models.ProductImage
		_, err := c.storeImage(ctx.Request.Context(), id, file, func(ctx context.Context, productID uint, path string) (*models.ProductImage, error) {
			old, image, err := c.products.ReplaceImage(ctx, productID, path)
			replaced = old
			return image, err
		})
		if err != nil {
			respondWithError(ctx, err)
			return
		}
		if replaced != nil {
			c.removeImageFile(ctx.Request.Context(), replaced.ImagePath)
		}
	}

	c.respondWithProduct(ctx, http.StatusOK, msgProductUpdated, id)
}

func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	images, err := c.products.DeleteProduct(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	for _, img := range images {
		c.removeImageFile(ctx.Request.Context(), img.ImagePath)
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgProductDeleted})
}

func (c *ProductController) UploadProductImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgImageRequired)
		return
	}
	if _, err := utils.ImageExtension(file.Filename); err != nil {
		respondWithError(ctx, err)
		return
	}
	if _, err := c.products.GetByID(ctx.Request.Context(), id); err != nil {
		respondWithError(ctx, err)
		return
	}

	image, err := c.storeImage(ctx.Request.Context(), id, file, c.products.AddImage)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": msgImageUploaded,
		"image":   ProductImageResponse{ID: image.ID, ImagePath: image.ImagePath},
	})
}

func (in ProductInput) apply(p *models.Product) error {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		p.Price = decimal.NewFromFloat(*in.Price).Round(2)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.CategoryID != nil {
		if *in.CategoryID == 0 {
			p.CategoryID = nil
		} else {
			categoryID := *in.CategoryID
			p.CategoryID = &categoryID
		}
	}
	if len(in.Attributes) > 0 && string(in.Attributes) != "null" {
		if !json.Valid(in.Attributes) {
			return fmt.Errorf("%w: attributes must be valid JSON", models.ErrValidation)
		}
		p.Attributes = datatypes.JSON(in.Attributes)
	}
	return nil
}

// optionalImage returns the multipart "image" file if one was sent, after checking its type.
func optionalImage(ctx *gin.Context) (*multipart.FileHeader, error) {
	if !strings.HasPrefix(ctx.ContentType(), "multipart/") {
		return nil, nil
	}
	file, err := ctx.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	if _, err := utils.ImageExtension(file.Filename); err != nil {
		return nil, err
	}
	return file, nil
}

// storeImage writes the upload to the image store and records it with record. The stored
// file is removed again if recording fails.
func (c *ProductController) storeImage(
	ctx context.Context,
	productID uint,
	file *multipart.FileHeader,
	record func(ctx context.Context, productID uint, path string) (*models.ProductImage, error),
) (*models.ProductImage, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	path, err := c.images.Save(ctx, productID, file.Filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	image, err := record(ctx, productID, path)
	if err != nil {
		c.removeImageFile(ctx, path)
		return nil, err
	}
	return image, nil
}

func (c *ProductController) removeImageFile(ctx context.Context, path string) {
	if err := c.images.Remove(ctx, path); err != nil {
		log.Printf("Error removing image %s: %v", path, err)
	}
}

func (c *ProductController) respondWithProduct(ctx *gin.Context, status int, message string, id uint) {
	product, err := c.products.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, status, gin.H{
		"message": message,
		"product": toProductResponse(*product),
	})
}
