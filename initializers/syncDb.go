package initializers

import (
	"fmt"
	"log"

	"github.com/Kariqs/ecommerce-shop-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	if err := models.Migrate(db); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	log.Println("Database synced successfully.")
	return nil
}
