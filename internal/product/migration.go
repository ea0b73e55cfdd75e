package product

import "gorm.io/gorm"

// RunSchemaMigration expects categories and brands to exist already.
func RunSchemaMigration(db *gorm.DB) error {
	return db.AutoMigrate(&Product{})
}
