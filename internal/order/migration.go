package order

import "gorm.io/gorm"

// RunSchemaMigration expects the products table to exist already.
func RunSchemaMigration(db *gorm.DB) error {
	migrator := db.Migrator()

	if !migrator.HasTable(&Order{}) {
		if err := db.AutoMigrate(&Order{}); err != nil {
			return err
		}
	}

	if !migrator.HasTable(&OrderItem{}) {
		if err := db.AutoMigrate(&OrderItem{}); err != nil {
			return err
		}
	}

	return nil
}
