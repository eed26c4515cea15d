package controllers

import (
	"encoding/json"
	"time"

	"github.com/Kariqs/ecommerce-shop-api/models"
)

type UserResponse struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	IsAdmin     bool      `json:"is_admin"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type AddressResponse struct {
	ID        uint   `json:"id"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	IsDefault bool   `json:"is_default"`
}

type CategoryResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type ProductImageResponse struct {
	ID        uint   `json:"id"`
	ImagePath string `json:"image_path"`
}

type ProductResponse struct {
	ID          uint                   `json:"id"`
	Name        string                 `json:"name"`
	Price       float64                `json:"price"`
	Description string                 `json:"description"`
	Stock       int                    `json:"stock"`
	IsActive    bool                   `json:"is_active"`
	Attributes  json.RawMessage        `json:"attributes,omitempty"`
	CategoryID  *uint                  `json:"category_id"`
	Category    string                 `json:"category,omitempty"`
	Images      []ProductImageResponse `json:"images"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

type CartLineResponse struct {
	ProductID   uint      `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	LineTotal   float64   `json:"line_total"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderItemResponse struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	LineTotal   float64 `json:"line_total"`
}

type OrderResponse struct {
	ID              uint                `json:"id"`
	TotalPrice      float64             `json:"total_price"`
	Status          string              `json:"status"`
	IsActive        bool                `json:"is_active"`
	ShippingAddress json.RawMessage     `json:"shipping_address,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
}

func toUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		IsAdmin:     u.IsAdmin,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

func toAddressResponse(a models.Address) AddressResponse {
	return AddressResponse{
		ID:        a.ID,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		ZipCode:   a.ZipCode,
		IsDefault: a.IsDefault,
	}
}

func toCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, IsActive: c.IsActive}
}

func toProductResponse(p models.Product) ProductResponse {
	images := make([]ProductImageResponse, len(p.Images))
	for i, img := range p.Images {
		images[i] = ProductImageResponse{ID: img.ID, ImagePath: img.ImagePath}
	}
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.InexactFloat64(),
		Description: p.Description,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		CategoryID:  p.CategoryID,
		Images:      images,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if len(p.Attributes) > 0 {
		resp.Attributes = json.RawMessage(p.Attributes)
	}
	if p.Category != nil {
		resp.Category = p.Category.Name
	}
	return resp
}

func toCartLineResponse(l models.CartLineView) CartLineResponse {
	return CartLineResponse{
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		Quantity:    l.Quantity,
		Price:       l.Price.InexactFloat64(),
		LineTotal:   l.LineTotal().InexactFloat64(),
		CreatedAt:   l.CreatedAt,
	}
}

func toOrderResponse(o models.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price.InexactFloat64(),
			LineTotal:   item.LineTotal().InexactFloat64(),
		}
	}
	resp := OrderResponse{
		ID:         o.ID,
		TotalPrice: o.TotalPrice.InexactFloat64(),
		Status:     string(o.Status),
		IsActive:   o.IsActive,
		Items:      items,
		CreatedAt:  o.CreatedAt,
	}
	if len(o.ShippingAddress) > 0 {
		resp.ShippingAddress = json.RawMessage(o.ShippingAddress)
	}
	return resp
}
