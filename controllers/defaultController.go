package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the shop API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/api/auth/register" - Create user account
- POST "/api/auth/login" - Get an access token

PRODUCT
- GET "/api/products" - Search products (name, category_id, min_price, max_price, page, limit)
- GET "/api/products/:id" - Get product by ID
- POST "/api/products" - Create product (admin)
- PUT "/api/products/:id" - Update product (admin)
- DELETE "/api/products/:id" - Delete product (admin)
- POST "/api/products/:id/images" - Upload product image (admin)

CATEGORY
- GET "/api/admin/categories/categories" - List categories
- GET "/api/admin/categories/categories/:id" - Get category by ID
- POST, PUT, DELETE "/api/admin/categories/categories[/:id]" - Manage categories (admin)

CART
- POST "/api/admin/carts/cart" - Add product to cart
- PUT "/api/admin/carts/cart" - Set quantity of a cart line
- GET "/api/admin/carts/cart" - View cart
- DELETE "/api/admin/carts/cart/:product_id" - Remove product from cart
- POST "/api/admin/carts/checkout" - Place order from cart

ORDER
- POST "/api/admin/orders/orders" - Place order from cart
- GET "/api/admin/orders/orders" - Order history
- GET "/api/admin/orders/orders/:id" - Get order by ID
- POST "/api/admin/orders/orders/cancel" - Cancel order

PROFILE
- GET, PUT "/api/profile" - View or update profile
- GET, POST "/api/addresses" - List or add addresses
- PUT, DELETE "/api/addresses/:id" - Update or delete address

CUSTOMER (admin)
- GET "/api/admin/customers/customers" - List customers
- GET "/api/admin/customers/customers/:id" - Get customer by ID
- PUT "/api/admin/customers/customers/:id/status" - Activate or deactivate customer`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
