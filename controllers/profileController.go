package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/gin-gonic/gin"
)

type ProfileStore interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	UpdateProfile(ctx context.Context, id uint, changes models.ProfileChanges) (*models.User, error)
}

type AddressStore interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Address, error)
	Create(ctx context.Context, address *models.Address) error
	Update(ctx context.Context, userID, id uint, changes models.AddressChanges) (*models.Address, error)
	Delete(ctx context.Context, userID, id uint) error
}

type ProfileInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	PhoneNumber *string `json:"phone_number"`
}

type AddressInput struct {
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	ZipCode   string `json:"zip_code" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

type AddressUpdateInput struct {
	Street    *string `json:"street"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	ZipCode   *string `json:"zip_code"`
	IsDefault *bool   `json:"is_default"`
}

type ProfileController struct {
	users     ProfileStore
	addresses AddressStore
}

func NewProfileController(users ProfileStore, addresses AddressStore) *ProfileController {
	return &ProfileController{users: users, addresses: addresses}
}

func (c *ProfileController) GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	user, err := c.users.GetByID(ctx.Request.Context(), userID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, toUserResponse(*user))
}

func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var input ProfileInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithBindingError(ctx, err)
		return
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		input.Email = &email
	}

	user, err := c.users.UpdateProfile(ctx.Request.Context(), userID, models.ProfileChanges{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgProfileUpdated, "user": toUserResponse(*user)})
}

func (c *ProfileController) GetAddresses(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	addresses, err := c.addresses.ListByUser(ctx.Request.Context(), userID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	resp := make([]AddressResponse, len(addresses))
	for i, a := range addresses {
		resp[i] = toAddressResponse(a)
	}
	sendJSONResponse(ctx, http.StatusOK, resp)
}

func (c *ProfileController) CreateAddress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var input AddressInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithBindingError(ctx, err)
		return
	}

	address := models.Address{
		UserID:    userID,
		Street:    input.Street,
		City:      input.City,
		State:     input.State,
		ZipCode:   input.ZipCode,
		IsDefault: input.IsDefault,
	}
	if err := c.addresses.Create(ctx.Request.Context(), &address); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgAddressCreated, "address": toAddressResponse(address)})
}

// UpdateAddress changes an address owned by the caller. Other users' addresses are
// reported as not found.
func (c *ProfileController) UpdateAddress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var input AddressUpdateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithBindingError(ctx, err)
		return
	}

	address, err := c.addresses.Update(ctx.Request.Context(), userID, id, models.AddressChanges{
		Street:    input.Street,
		City:      input.City,
		State:     input.State,
		ZipCode:   input.ZipCode,
		IsDefault: input.IsDefault,
	})
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgAddressUpdated, "address": toAddressResponse(*address)})
}

func (c *ProfileController) DeleteAddress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.addresses.Delete(ctx.Request.Context(), userID, id); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgAddressDeleted})
}
