package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

type UsersRepository struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create stores a new user, rejecting a username or email that is already taken.
func (r *UsersRepository) Create(ctx context.Context, user *User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUsername
		}
		if err := tx.Model(&User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEmail
		}
		return tx.Create(user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost a race against a concurrent registration
		return r.duplicateUserError(ctx, user, err)
	}
	return err
}

// duplicateUserError finds out which unique column a rejected insert collided on.
func (r *UsersRepository) duplicateUserError(ctx context.Context, user *User, cause error) error {
	for _, check := range []struct {
		column string
		value  string
		err    error
	}{
		{"username", user.Username, ErrDuplicateUsername},
		{"email", user.Email, ErrDuplicateEmail},
	} {
		var count int64
		if err := r.db.WithContext(ctx).Unscoped().Model(&User{}).Where(check.column+" = ?", check.value).Count(&count).Error; err != nil {
			return fmt.Errorf("check duplicate %s: %w", check.column, err)
		}
		if count > 0 {
			return check.err
		}
	}
	return cause
}

func (r *UsersRepository) GetByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UsersRepository) UpdateProfile(ctx context.Context, id uint, changes ProfileChanges) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockingFor(tx)...).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		updates := map[string]any{}
		if changes.FirstName != nil {
			updates["first_name"] = *changes.FirstName
		}
		if changes.LastName != nil {
			updates["last_name"] = *changes.LastName
		}
		if changes.PhoneNumber != nil {
			updates["phone_number"] = *changes.PhoneNumber
		}
		if changes.Email != nil && *changes.Email != user.Email {
			var count int64
			if err := tx.Model(&User{}).Where("email = ? AND id <> ?", *changes.Email, id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateEmail
			}
			updates["email"] = *changes.Email
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&user).Updates(updates).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// ListCustomers returns every non-admin user.
func (r *UsersRepository) ListCustomers(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.WithContext(ctx).Where("is_admin = ?", false).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UsersRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := tx.Model(&user).Update("is_active", active).Error; err != nil {
			return fmt.Errorf("update status of user %d: %w", id, err)
		}
		return nil
	})
}

// lockingFor returns a FOR UPDATE clause on dialects that support row locks.
func lockingFor(tx *gorm.DB) []clause.Expression {
	if tx.Dialector.Name() == "sqlite" {
		return nil
	}
	return []clause.Expression{clause.Locking{Strength: "UPDATE"}}
}
