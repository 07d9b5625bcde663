package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Gallery 2 stores everything in prefixed tables; these are the logical
// names the export joins over.
var gallerySchemaTables = []string{
	"ChildEntity",
	"Entity",
	"Item",
	"FileSystemEntity",
	"PhotoItem",
	"DerivativeImage",
}

// TableExists checks whether a table is present in the connected schema.
func TableExists(db *gorm.DB, tableName string) (bool, error) {
	var count int64
	err := db.Raw(
		"SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?",
		tableName,
	).Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", tableName, err)
	}
	return count > 0, nil
}

// VerifyGallerySchema confirms all tables the export joins over exist
// under the given table prefix (normally "g2_"). It returns the list of
// missing tables; a non-empty list means the configured database is not
// a Gallery 2 schema and the export should abort before walking.
func VerifyGallerySchema(db *gorm.DB, tablePrefix string) ([]string, error) {
	var missing []string
	for _, table := range gallerySchemaTables {
		name := tablePrefix + table
		ok, err := TableExists(db, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
