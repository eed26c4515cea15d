package routes

import (
	"github.com/Kariqs/ecommerce-shop-api/controllers"
	"github.com/Kariqs/ecommerce-shop-api/middlewares"
	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/Kariqs/ecommerce-shop-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handlers holds every controller and the middleware they are mounted with.
type Handlers struct {
	Auth      *controllers.AuthController
	Cart      *controllers.CartController
	Orders    *controllers.OrderController
	Products  *controllers.ProductController
	Category  *controllers.CategoryController
	Customers *controllers.CustomerController
	Profile   *controllers.ProfileController

	RequireAuth gin.HandlerFunc
	// LoginLimit is optional.
	LoginLimit gin.HandlerFunc
}

// NewHandlers wires the repositories over db into the controllers.
func NewHandlers(
	db *gorm.DB,
	tokens *utils.TokenIssuer,
	images utils.ImageStore,
	notifier utils.OrderNotifier,
	orderOpts ...models.OrdersOption,
) Handlers {
	users := models.NewUsersRepository(db)
	orders := models.NewOrdersRepository(db, orderOpts...)

	return Handlers{
		Auth:        controllers.NewAuthController(users, tokens),
		Cart:        controllers.NewCartController(models.NewCartRepository(db), orders, notifier),
		Orders:      controllers.NewOrderController(orders, notifier),
		Products:    controllers.NewProductController(models.NewProductsRepository(db), images),
		Category:    controllers.NewCategoryController(models.NewCategoriesRepository(db)),
		Customers:   controllers.NewCustomerController(users),
		Profile:     controllers.NewProfileController(users, models.NewAddressesRepository(db)),
		RequireAuth: middlewares.RequireAuth(tokens, users),
	}
}

func SetupRoutes(server *gin.Engine, h Handlers) {
	DefaultRoutes(server)

	api := server.Group("/api")
	AuthRoutes(api, h)
	ProductRoutes(api, h)
	CategoryRoutes(api, h)
	CartRoutes(api, h)
	OrderRoutes(api, h)
	CustomerRoutes(api, h)
	ProfileRoutes(api, h)
}

func adminOnly(h Handlers) []gin.HandlerFunc {
	return []gin.HandlerFunc{h.RequireAuth, middlewares.RequireAdmin()}
}
