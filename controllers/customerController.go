package controllers

import (
	"context"
	"net/http"

	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/gin-gonic/gin"
)

type CustomerStore interface {
	ListCustomers(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

type CustomerStatusInput struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type CustomerController struct {
	customers CustomerStore
}

func NewCustomerController(customers CustomerStore) *CustomerController {
	return &CustomerController{customers: customers}
}

func (c *CustomerController) GetCustomers(ctx *gin.Context) {
	customers, err := c.customers.ListCustomers(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	resp := make([]UserResponse, len(customers))
	for i, u := range customers {
		resp[i] = toUserResponse(u)
	}
	sendJSONResponse(ctx, http.StatusOK, resp)
}

func (c *CustomerController) GetCustomer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	customer, err := c.customers.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, toUserResponse(*customer))
}

// SetCustomerStatus activates or deactivates an account. Deactivated users cannot log in.
func (c *CustomerController) SetCustomerStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var input CustomerStatusInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithBindingError(ctx, err)
		return
	}

	if err := c.customers.SetActive(ctx.Request.Context(), id, *input.IsActive); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgCustomerUpdated, "is_active": *input.IsActive})
}
