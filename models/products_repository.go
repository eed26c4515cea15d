package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// likeEscaper makes %, _ and the escape character itself match literally in a LIKE
// pattern using ESCAPE '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ProductFilters narrows a product search. Zero values disable a filter.
type ProductFilters struct {
	Name       string
	CategoryID *uint
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// SearchProducts returns one page of products matching filters and the total match count.
// The name filter is a case-insensitive substring match.
func (r *ProductsRepository) SearchProducts(ctx context.Context, offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.WithContext(ctx).Model(&Product{})

	if name := strings.TrimSpace(filters.Name); name != "" {
		query = query.Where("LOWER(products.name) LIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(strings.ToLower(name))+"%")
	}
	if filters.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filters.CategoryID)
	}
	if filters.MinPrice != nil {
		query = query.Where("products.price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filters.MaxPrice)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("product_images.id") }).
		Order("products.id").
		Offset(offset).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	return findProduct(r.db.WithContext(ctx), id)
}

func (r *ProductsRepository) CreateProduct(ctx context.Context, product *Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategory(tx, product.CategoryID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(product).Error
	})
}

// UpdateProduct locks the product, lets apply change it and saves the result in the
// same transaction, so concurrent edits never write back a stale copy.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, id uint, apply func(*Product) error) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockingFor(tx)...).First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if err := apply(&product); err != nil {
			return err
		}
		product.ID = id
		if err := ensureCategory(tx, product.CategoryID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&product).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product together with its images and the cart lines pointing
// at it. Products that appear on an order are kept and ErrProductInUse is returned.
// The removed image rows are returned so the caller can delete the stored files.
func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uint) ([]ProductImage, error) {
	var images []ProductImage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findProduct(tx.Clauses(lockingFor(tx)...), id); err != nil {
			return err
		}

		var ordered int64
		if err := tx.Model(&OrderItem{}).Where("product_id = ?", id).Count(&ordered).Error; err != nil {
			return err
		}
		if ordered > 0 {
			return ErrProductInUse
		}

		if err := tx.Where("product_id = ?", id).Find(&images).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&ProductImage{}).Error; err != nil {
			return fmt.Errorf("delete images of product %d: %w", id, err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&CartLine{}).Error; err != nil {
			return fmt.Errorf("delete cart lines of product %d: %w", id, err)
		}
		return tx.Delete(&Product{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ProductsRepository) AddImage(ctx context.Context, productID uint, path string) (*ProductImage, error) {
	image := ProductImage{ProductID: productID, ImagePath: path}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrProductNotFound
		}
		return tx.Create(&image).Error
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// ReplaceImage swaps the product's first image for a new one and returns the replaced
// row, or nil if the product had no image yet.
func (r *ProductsRepository) ReplaceImage(ctx context.Context, productID uint, path string) (*ProductImage, *ProductImage, error) {
	var old *ProductImage
	image := ProductImage{ProductID: productID, ImagePath: path}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrProductNotFound
		}

		var first ProductImage
		err := tx.Where("product_id = ?", productID).Order("id").First(&first).Error
		switch {
		case err == nil:
			if err := tx.Delete(&first).Error; err != nil {
				return err
			}
			old = &first
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return tx.Create(&image).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return old, &image, nil
}

func findProduct(db *gorm.DB, id uint) (*Product, error) {
	var product Product
	if err := db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("product_images.id") }).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func ensureCategory(tx *gorm.DB, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	var count int64
	if err := tx.Model(&Category{}).Where("id = ?", *categoryID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
