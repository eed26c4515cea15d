package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/Kariqs/ecommerce-shop-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartRouter(cart *MockCartRepo, orders *MockOrderRepo, notifier utils.OrderNotifier) *gin.Engine {
	c := NewCartController(cart, orders, notifier)
	router := gin.New()
	group := router.Group("/cart", authed())
	group.POST("", c.AddToCart)
	group.PUT("", c.UpdateCart)
	group.GET("", c.ViewCart)
	group.DELETE("/:product_id", c.RemoveFromCart)
	router.POST("/checkout", authed(), c.Checkout)
	return router
}

func testOrder() *models.Order {
	return &models.Order{
		ID:         5,
		UserID:     1,
		TotalPrice: decimal.NewFromInt(20),
		Status:     models.OrderStatusPending,
		IsActive:   true,
		Items: []models.OrderItem{
			{ProductID: 3, ProductName: "Pen", Quantity: 2, Price: decimal.NewFromInt(10)},
		},
	}
}

func TestCartHandlers(t *testing.T) {
	testCases := []struct {
		name               string
		method             string
		url                string
		body               any
		noAuth             bool
		mockRepoSetup      func() *MockCartRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCalls     func(t *testing.T, repo *MockCartRepo)
	}{
		{
			name:               "Add to cart",
			method:             http.MethodPost,
			url:                "/cart",
			body:               gin.H{"product_id": 3, "quantity": 2},
			mockRepoSetup:      func() *MockCartRepo { return &MockCartRepo{} },
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockCartRepo) {
				assert.Equal(t, uint(1), repo.lastUserID)
				assert.Equal(t, uint(3), repo.lastProductID)
				assert.Equal(t, 2, repo.lastQuantity)
			},
		},
		{
			name:               "Zero quantity",
			method:             http.MethodPost,
			url:                "/cart",
			body:               gin.H{"product_id": 3, "quantity": 0},
			mockRepoSetup:      func() *MockCartRepo { return &MockCartRepo{} },
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "quantity must be at least 1", decodeMessage(t, rec))
			},
			checkRepoCalls: func(t *testing.T, repo *MockCartRepo) {
				assert.Zero(t, repo.lastQuantity)
			},
		},
		{
			name:               "Quantity above limit",
			method:             http.MethodPost,
			url:                "/cart",
			body:               gin.H{"product_id": 3, "quantity": models.MaxCartQuantity + 1},
			mockRepoSetup:      func() *MockCartRepo { return &MockCartRepo{} },
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "quantity must be at most 10000", decodeMessage(t, rec))
			},
			checkRepoCalls: func(t *testing.T, repo *MockCartRepo) {
				assert.Zero(t, repo.lastQuantity)
			},
		},
		{
			name:               "Update above limit",
			method:             http.MethodPut,
			url:                "/cart",
			body:               gin.H{"product_id": 3, "quantity": 1 << 40},
			mockRepoSetup:      func() *MockCartRepo { return &MockCartRepo{} },
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Missing quantity",
			method:             http.MethodPost,
			url:                "/cart",
			body:               gin.H{"product_id": 3},
			mockRepoSetup:      func() *MockCartRepo { return &MockCartRepo{} },
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Unknown product",
			method:             http.MethodPost,
			url:                "/cart",
			body:               gin.H{"product_id": 99, "quantity": 1},
			mockRepoSetup:      func() *MockCartRepo { return &MockCartRepo{Err: models.ErrProductNotFound} },
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "Without token",
			method:             http.MethodPost,
			url:                "/cart",
			body:               gin.H{"product_id": 3, "quantity": 1},
			noAuth:             true,
			mockRepoSetup:      func() *MockCartRepo { return &MockCartRepo{} },
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "Update missing line",
			method:             http.MethodPut,
			url:                "/cart",
			body:               gin.H{"product_id": 3, "quantity": 4},
			mockRepoSetup:      func() *MockCartRepo { return &MockCartRepo{Err: models.ErrCartLineNotFound} },
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:   "View cart",
			method: http.MethodGet,
			url:    "/cart",
			mockRepoSetup: func() *MockCartRepo {
				return &MockCartRepo{Lines: []models.CartLineView{
					{ProductID: 3, ProductName: "Pen", Quantity: 2, Price: decimal.NewFromInt(10), CreatedAt: time.Now()},
					{ProductID: 4, ProductName: "Ink", Quantity: 1, Price: decimal.NewFromFloat(2.5), CreatedAt: time.Now()},
				}}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var lines []CartLineResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&lines))
				require.Len(t, lines, 2)
				assert.Equal(t, "Pen", lines[0].ProductName)
				assert.Equal(t, 10.0, lines[0].Price)
				assert.Equal(t, 20.0, lines[0].LineTotal)
				assert.Equal(t, "22.50", rec.Header().Get("X-Cart-Total"))
			},
		},
		{
			name:               "Empty cart view is an empty array",
			method:             http.MethodGet,
			url:                "/cart",
			mockRepoSetup:      func() *MockCartRepo { return &MockCartRepo{} },
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, "[]", rec.Body.String())
			},
		},
		{
			name:               "Remove line",
			method:             http.MethodDelete,
			url:                "/cart/3",
			mockRepoSetup:      func() *MockCartRepo { return &MockCartRepo{} },
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockCartRepo) {
				assert.Equal(t, uint(3), repo.lastProductID)
			},
		},
		{
			name:               "Remove with bad id",
			method:             http.MethodDelete,
			url:                "/cart/abc",
			mockRepoSetup:      func() *MockCartRepo { return &MockCartRepo{} },
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Repository failure",
			method:             http.MethodGet,
			url:                "/cart",
			mockRepoSetup:      func() *MockCartRepo { return &MockCartRepo{Err: errors.New("db down")} },
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, msgInternalServerError, decodeMessage(t, rec))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := tc.mockRepoSetup()
			auth := ""
			if !tc.noAuth {
				auth = bearer(t, 1, false)
			}
			rec := doJSON(newCartRouter(repo, &MockOrderRepo{}, nil), tc.method, tc.url, auth, tc.body)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkRepoCalls != nil {
				tc.checkRepoCalls(t, repo)
			}
		})
	}
}

func TestCheckoutHandler(t *testing.T) {
	t.Run("Success notifies after commit", func(t *testing.T) {
		orders := &MockOrderRepo{Order: testOrder()}
		notifier := &recordingNotifier{err: errors.New("webhook down")}
		rec := doJSON(newCartRouter(&MockCartRepo{}, orders, notifier), http.MethodPost, "/checkout", bearer(t, 1, false), nil)

		require.Equal(t, http.StatusOK, rec.Code, "notifier failure must not change the response")
		var resp struct {
			Message string        `json:"message"`
			OrderID uint          `json:"order_id"`
			Order   OrderResponse `json:"order"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, uint(5), resp.OrderID)
		assert.Equal(t, 20.0, resp.Order.TotalPrice)
		assert.Equal(t, "pending", resp.Order.Status)
		assert.Nil(t, orders.lastAddressID)

		require.Len(t, notifier.events, 1)
		assert.Equal(t, utils.OrderPlaced, notifier.events[0].Type)
		assert.Equal(t, uint(5), notifier.events[0].OrderID)
	})

	t.Run("Address is forwarded", func(t *testing.T) {
		orders := &MockOrderRepo{Order: testOrder()}
		rec := doJSON(newCartRouter(&MockCartRepo{}, orders, nil), http.MethodPost, "/checkout", bearer(t, 1, false), gin.H{"address_id": 8})

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, orders.lastAddressID)
		assert.Equal(t, uint(8), *orders.lastAddressID)
	})

	errorCases := []struct {
		err        error
		wantStatus int
	}{
		{models.ErrEmptyCart, http.StatusBadRequest},
		{models.ErrProductUnavailable, http.StatusBadRequest},
		{models.ErrCartChanged, http.StatusConflict},
		{models.ErrAddressNotFound, http.StatusNotFound},
	}
	for _, tc := range errorCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			notifier := &recordingNotifier{}
			orders := &MockOrderRepo{Err: tc.err}
			rec := doJSON(newCartRouter(&MockCartRepo{}, orders, notifier), http.MethodPost, "/checkout", bearer(t, 1, false), nil)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Empty(t, notifier.events)
		})
	}
}
