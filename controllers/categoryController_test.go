package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Kariqs/ecommerce-shop-api/middlewares"
	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Repo ---

type MockCategoryRepo struct {
	Categories map[uint]*models.Category
	nextID     uint
}

func (m *MockCategoryRepo) GetAllCategories(_ context.Context) ([]models.Category, error) {
	var out []models.Category
	for id := uint(1); id <= m.nextID; id++ {
		if c, ok := m.Categories[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *MockCategoryRepo) GetByID(_ context.Context, id uint) (*models.Category, error) {
	c, ok := m.Categories[id]
	if !ok {
		return nil, models.ErrCategoryNotFound
	}
	return c, nil
}

func (m *MockCategoryRepo) CreateCategory(_ context.Context, category *models.Category) error {
	m.nextID++
	category.ID = m.nextID
	stored := *category
	m.Categories[category.ID] = &stored
	return nil
}

func (m *MockCategoryRepo) UpdateCategory(ctx context.Context, id uint, name string, isActive *bool) (*models.Category, error) {
	c, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	if isActive != nil {
		c.IsActive = *isActive
	}
	return c, nil
}

func (m *MockCategoryRepo) DeleteCategory(_ context.Context, id uint) error {
	if _, ok := m.Categories[id]; !ok {
		return models.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

func TestCategoryHandlers(t *testing.T) {
	repo := &MockCategoryRepo{Categories: map[uint]*models.Category{}}
	c := NewCategoryController(repo)
	router := gin.New()
	router.GET("/categories", c.GetCategories)
	router.GET("/categories/:id", c.GetCategory)
	admin := router.Group("/categories", authed(), middlewares.RequireAdmin())
	admin.POST("", c.CreateCategory)
	admin.PUT("/:id", c.UpdateCategory)
	admin.DELETE("/:id", c.DeleteCategory)

	admins := bearer(t, 1, true)

	rec := doJSON(router, http.MethodPost, "/categories", bearer(t, 2, false), gin.H{"name": "Office"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(router, http.MethodPost, "/categories", admins, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required", decodeMessage(t, rec))

	rec = doJSON(router, http.MethodPost, "/categories", admins, gin.H{"name": "Office"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, repo.Categories[1].IsActive)

	rec = doJSON(router, http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []CategoryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Office", list[0].Name)

	rec = doJSON(router, http.MethodPut, "/categories/1", admins, gin.H{"name": "Stationery", "is_active": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Stationery", repo.Categories[1].Name)
	assert.False(t, repo.Categories[1].IsActive)

	rec = doJSON(router, http.MethodDelete, "/categories/1", admins, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodGet, "/categories/1", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
