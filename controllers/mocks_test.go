package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kariqs/ecommerce-shop-api/middlewares"
	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/Kariqs/ecommerce-shop-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock Repos ---

type MockUserRepo struct {
	Users     map[string]*models.User
	CreateErr error
	Err       error

	lastCreated *models.User
}

func (m *MockUserRepo) Create(_ context.Context, user *models.User) error {
	m.lastCreated = user
	if m.CreateErr != nil {
		return m.CreateErr
	}
	user.ID = uint(len(m.Users) + 1)
	if m.Users == nil {
		m.Users = map[string]*models.User{}
	}
	m.Users[user.Username] = user
	return nil
}

func (m *MockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	user, ok := m.Users[username]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

type MockCartRepo struct {
	Lines []models.CartLineView
	Err   error

	lastUserID    uint
	lastProductID uint
	lastQuantity  int
}

func (m *MockCartRepo) AddItem(_ context.Context, userID, productID uint, quantity int) (*models.CartLine, error) {
	m.lastUserID, m.lastProductID, m.lastQuantity = userID, productID, quantity
	if m.Err != nil {
		return nil, m.Err
	}
	if quantity < 1 {
		return nil, models.ErrInvalidQuantity
	}
	return &models.CartLine{UserID: userID, ProductID: productID, Quantity: quantity}, nil
}

func (m *MockCartRepo) SetQuantity(_ context.Context, userID, productID uint, quantity int) (*models.CartLine, error) {
	m.lastUserID, m.lastProductID, m.lastQuantity = userID, productID, quantity
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.CartLine{UserID: userID, ProductID: productID, Quantity: quantity}, nil
}

func (m *MockCartRepo) RemoveItem(_ context.Context, userID, productID uint) error {
	m.lastUserID, m.lastProductID = userID, productID
	return m.Err
}

func (m *MockCartRepo) ListLines(_ context.Context, userID uint) ([]models.CartLineView, error) {
	m.lastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Lines, nil
}

type MockOrderRepo struct {
	Order  *models.Order
	Orders []models.Order
	Err    error

	lastUserID    uint
	lastOrderID   uint
	lastAddressID *uint
}

func (m *MockOrderRepo) Checkout(_ context.Context, userID uint, addressID *uint) (*models.Order, error) {
	m.lastUserID, m.lastAddressID = userID, addressID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Order, nil
}

func (m *MockOrderRepo) ListByUser(_ context.Context, userID uint) ([]models.Order, error) {
	m.lastUserID = userID
	return m.Orders, m.Err
}

func (m *MockOrderRepo) GetForUser(_ context.Context, userID, orderID uint) (*models.Order, error) {
	m.lastUserID, m.lastOrderID = userID, orderID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Order, nil
}

func (m *MockOrderRepo) Cancel(_ context.Context, userID, orderID uint) (*models.Order, error) {
	m.lastUserID, m.lastOrderID = userID, orderID
	if m.Err != nil {
		return nil, m.Err
	}
	cancelled := *m.Order
	cancelled.Status = models.OrderStatusCancelled
	return &cancelled, nil
}

type recordingNotifier struct {
	events []utils.OrderEvent
	err    error
}

func (n *recordingNotifier) NotifyOrder(_ context.Context, event utils.OrderEvent) error {
	n.events = append(n.events, event)
	return n.err
}

type memoryImageStore struct {
	saved   map[string]string
	removed []string
}

func newMemoryImageStore() *memoryImageStore {
	return &memoryImageStore{saved: map[string]string{}}
}

func (s *memoryImageStore) Save(_ context.Context, productID uint, filename string, body io.Reader, _ int64, _ string) (string, error) {
	if _, err := utils.ImageExtension(filename); err != nil {
		return "", err
	}
	content, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("/uploads/%d/%d-%s", productID, len(s.saved)+1, filename)
	s.saved[path] = string(content)
	return path, nil
}

func (s *memoryImageStore) Remove(_ context.Context, path string) error {
	s.removed = append(s.removed, path)
	delete(s.saved, path)
	return nil
}

// --- Helpers ---

var testTokens = utils.NewTokenIssuer("test-secret", time.Hour)

func bearer(t *testing.T, userID uint, isAdmin bool) string {
	t.Helper()
	token, err := testTokens.Issue(userID, isAdmin)
	require.NoError(t, err)
	return "Bearer " + token
}

// tokenUsers treats every token subject as an active account, leaving the role to the
// token claim.
type tokenUsers struct{}

func (tokenUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	return &models.User{Model: gorm.Model{ID: id}, IsActive: true, IsAdmin: true}, nil
}

func authed() gin.HandlerFunc {
	return middlewares.RequireAuth(testTokens, tokenUsers{})
}

func doJSON(router http.Handler, method, url, auth string, body any) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Message
}
