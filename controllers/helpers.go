package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/Kariqs/ecommerce-shop-api/middlewares"
	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/Kariqs/ecommerce-shop-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	// Standard response messages
	msgInvalidInput        = "invalid input"
	msgInvalidCredentials  = "invalid username or password"
	msgAccountDeactivated  = "account has been deactivated"
	msgInternalServerError = "Internal server error"
	msgUnauthorized        = "User not found in context"
	msgUserCreated         = "User registered successfully"
	msgAddedToCart         = "Product added to cart"
	msgCartUpdated         = "Cart updated"
	msgRemovedFromCart     = "Product removed from cart"
	msgOrderPlaced         = "Order placed successfully"
	msgOrderCancelled      = "Order cancelled successfully"
	msgCategoryCreated     = "Category created successfully"
	msgCategoryUpdated     = "Category updated successfully"
	msgCategoryDeleted     = "Category deleted successfully"
	msgProductCreated      = "Product created successfully"
	msgProductUpdated      = "Product updated successfully"
	msgProductDeleted      = "Product deleted successfully"
	msgImageUploaded       = "Image uploaded successfully"
	msgImageRequired       = "image file is required"
	msgCustomerUpdated     = "Customer status updated"
	msgProfileUpdated      = "Profile updated successfully"
	msgAddressCreated      = "Address created successfully"
	msgAddressUpdated      = "Address updated successfully"
	msgAddressDeleted      = "Address deleted successfully"
)

func init() {
	// report json field names in validation messages
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	}
}

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// respondWithError maps domain errors to their HTTP status. Anything unknown is logged
// and answered with a generic 500.
func respondWithError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrProductUnavailable),
		errors.Is(err, utils.ErrUnsupportedImage):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrDuplicateUsername),
		errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrProductInUse),
		errors.Is(err, models.ErrCartChanged),
		errors.Is(err, models.ErrOrderNotCancellable):
		sendErrorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrCategoryNotFound),
		errors.Is(err, models.ErrCartLineNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrAddressNotFound),
		errors.Is(err, models.ErrUserNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, err.Error())
	default:
		log.Printf("%s %s: %v", ctx.Request.Method, ctx.FullPath(), err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
	}
}

// respondWithBindingError answers 400 with a readable summary of validation failures.
func respondWithBindingError(ctx *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", fe.Field()))
		case "gte", "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "lte", "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	sendErrorResponse(ctx, http.StatusBadRequest, strings.Join(messages, "; "))
}

// currentUserID returns the caller's id or answers 401.
func currentUserID(ctx *gin.Context) (uint, bool) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgUnauthorized)
		return 0, false
	}
	return user.ID, true
}

// parseIDParam reads a positive integer path parameter or answers 400.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return uint(id), true
}
