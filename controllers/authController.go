package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/Kariqs/ecommerce-shop-api/utils"
	"github.com/gin-gonic/gin"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type TokenIssuer interface {
	Issue(userID uint, isAdmin bool) (string, error)
}

type RegisterInput struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	IsAdmin     bool   `json:"is_admin"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	users  UserStore
	tokens TokenIssuer
}

func NewAuthController(users UserStore, tokens TokenIssuer) *AuthController {
	return &AuthController{users: users, tokens: tokens}
}

func (c *AuthController) Register(ctx *gin.Context) {
	var input RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithBindingError(ctx, err)
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	user := models.User{
		Username:    strings.TrimSpace(input.Username),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Password:    hashedPassword,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		IsAdmin:     input.IsAdmin,
		IsActive:    true,
	}
	if err := c.users.Create(ctx.Request.Context(), &user); err != nil {
		respondWithError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated})
}

// Login exchanges a username and password for an access token.
func (c *AuthController) Login(ctx *gin.Context) {
	var input LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithBindingError(ctx, err)
		return
	}

	user, err := c.users.GetByUsername(ctx.Request.Context(), strings.TrimSpace(input.Username))
	if errors.Is(err, models.ErrUserNotFound) {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	if !utils.ComparePasswords(user.Password, input.Password) {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if !user.IsActive {
		sendErrorResponse(ctx, http.StatusForbidden, msgAccountDeactivated)
		return
	}

	token, err := c.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"access_token": token})
}
