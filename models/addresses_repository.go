package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAddressNotFound covers both a missing address and one owned by another user.
var ErrAddressNotFound = errors.New("address not found or unauthorized")

type AddressesRepository struct {
	db *gorm.DB
}

func NewAddressesRepository(db *gorm.DB) *AddressesRepository {
	return &AddressesRepository{db: db}
}

func (r *AddressesRepository) ListByUser(ctx context.Context, userID uint) ([]Address, error) {
	var addresses []Address
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *AddressesRepository) GetForUser(ctx context.Context, userID, id uint) (*Address, error) {
	return findAddress(r.db.WithContext(ctx), userID, id)
}

func (r *AddressesRepository) Create(ctx context.Context, address *Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefault(tx, address.UserID, 0); err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Create(address).Error
	})
}

func (r *AddressesRepository) Update(ctx context.Context, userID, id uint, changes AddressChanges) (*Address, error) {
	var address *Address
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if address, err = findAddress(tx, userID, id); err != nil {
			return err
		}

		updates := map[string]any{}
		if changes.Street != nil {
			updates["street"] = *changes.Street
		}
		if changes.City != nil {
			updates["city"] = *changes.City
		}
		if changes.State != nil {
			updates["state"] = *changes.State
		}
		if changes.ZipCode != nil {
			updates["zip_code"] = *changes.ZipCode
		}
		if changes.IsDefault != nil {
			if *changes.IsDefault {
				if err := clearDefault(tx, userID, id); err != nil {
					return err
				}
			}
			updates["is_default"] = *changes.IsDefault
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(address).Updates(updates).Error; err != nil {
			return err
		}
		address, err = findAddress(tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (r *AddressesRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func findAddress(db *gorm.DB, userID, id uint) (*Address, error) {
	var address Address
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return &address, nil
}

func clearDefault(tx *gorm.DB, userID, exceptID uint) error {
	return tx.Model(&Address{}).
		Where("user_id = ? AND id <> ? AND is_default = ?", userID, exceptID, true).
		Update("is_default", false).Error
}
