package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/gin-gonic/gin"
)

type CategoryStore interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, id uint, name string, isActive *bool) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type CategoryInput struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

type CategoryController struct {
	categories CategoryStore
}

func NewCategoryController(categories CategoryStore) *CategoryController {
	return &CategoryController{categories: categories}
}

func (c *CategoryController) GetCategories(ctx *gin.Context) {
	categories, err := c.categories.GetAllCategories(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	resp := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		resp[i] = toCategoryResponse(category)
	}
	sendJSONResponse(ctx, http.StatusOK, resp)
}

func (c *CategoryController) GetCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	category, err := c.categories.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, toCategoryResponse(*category))
}

func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var input CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithBindingError(ctx, err)
		return
	}

	category := models.Category{Name: strings.TrimSpace(input.Name), IsActive: true}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := c.categories.CreateCategory(ctx.Request.Context(), &category); err != nil {
		respondWithError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":  msgCategoryCreated,
		"category": toCategoryResponse(category),
	})
}

func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var input CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithBindingError(ctx, err)
		return
	}

	category, err := c.categories.UpdateCategory(ctx.Request.Context(), id, strings.TrimSpace(input.Name), input.IsActive)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":  msgCategoryUpdated,
		"category": toCategoryResponse(*category),
	})
}

// DeleteCategory removes the category; its products are kept without a category.
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.categories.DeleteCategory(ctx.Request.Context(), id); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgCategoryDeleted})
}
