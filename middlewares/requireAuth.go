package middlewares

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

const userContextKey = "user"

// AuthUser is the identity taken from a verified access token.
type AuthUser struct {
	ID      uint
	IsAdmin bool
}

type TokenParser interface {
	Parse(token string) (*utils.Claims, error)
}

// UserLookup loads the account a token was issued for.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// RequireAuth verifies the bearer token, checks that the account still exists and is
// active, and stores the caller as an AuthUser. Admin rights need both the token claim
// and the stored role.
func RequireAuth(tokens TokenParser, users UserLookup) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or malformed authorization header"})
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(tokenString))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		user, err := users.GetByID(ctx.Request.Context(), claims.UserID)
		if errors.Is(err, models.ErrUserNotFound) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User no longer exists"})
			return
		}
		if err != nil {
			log.Printf("Error loading user %d: %v", claims.UserID, err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		if !user.IsActive {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "account has been deactivated"})
			return
		}

		ctx.Set(userContextKey, AuthUser{ID: user.ID, IsAdmin: claims.IsAdmin && user.IsAdmin})
		ctx.Next()
	}
}

// CurrentUser returns the caller stored by RequireAuth.
func CurrentUser(ctx *gin.Context) (AuthUser, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return AuthUser{}, false
	}
	user, ok := value.(AuthUser)
	return user, ok
}
