package export

import (
	"fmt"
	"path"

	"gallery-manager/core/gallery"
	"gallery-manager/core/utils"

	"gorm.io/gorm"
)

// childrenQuery is the six-table LEFT JOIN that assembles everything the
// export needs about one album's direct children in a single round-trip.
// {0} is the column prefix (g_), {1} the table prefix (g2_).
const childrenQuery = `SELECT
    ce.%[1]sid AS id,
    e.%[1]sentityType AS entity_type,
    i.%[1]scanContainChildren AS can_contain_children,
    i.%[1]stitle AS title,
    i.%[1]sdescription AS description,
    fse.%[1]spathComponent AS path_component,
    i.%[1]soriginationTimestamp AS origination_timestamp,
    pi.%[1]swidth AS width,
    pi.%[1]sheight AS height,
    di.%[1]swidth AS thumb_width,
    di.%[1]sheight AS thumb_height
FROM %[2]sChildEntity ce
LEFT JOIN %[2]sEntity e ON e.%[1]sid = ce.%[1]sid
LEFT JOIN %[2]sItem i ON i.%[1]sid = ce.%[1]sid
LEFT JOIN %[2]sFileSystemEntity fse ON fse.%[1]sid = ce.%[1]sid
LEFT JOIN %[2]sPhotoItem pi ON pi.%[1]sid = ce.%[1]sid
LEFT JOIN %[2]sDerivativeImage di ON di.%[1]sid = ce.%[1]sid
WHERE ce.%[1]sparentId = ?`

// Entity type discriminators as stored in the Gallery 2 Entity table.
const (
	entityAlbum = "GalleryAlbumItem"
	entityPhoto = "GalleryPhotoItem"
)

// childRecord is one row of childrenQuery after type flattening.
type childRecord struct {
	ID            int64
	EntityType    string
	HasChildren   bool
	Title         string
	Description   string
	PathComponent string
	Timestamp     *int64
	Width         *int
	Height        *int
	ThumbWidth    *int
	ThumbHeight   *int
}

// isExportable reports whether the row is one of the two entity kinds the
// static gallery renders. Link items, movies, and albums flagged as
// childless are skipped, matching the legacy export.
func (r *childRecord) isExportable() bool {
	if r.EntityType == entityAlbum {
		return r.HasChildren
	}
	return r.EntityType == entityPhoto
}

// loadChildren fetches and flattens the direct children of parentID.
// Rows are scanned untyped because the MySQL driver surfaces legacy
// latin1 columns as []byte.
func loadChildren(db *gorm.DB, cfg *Config, parentID int64) ([]childRecord, error) {
	query := fmt.Sprintf(childrenQuery, cfg.ColumnPrefix, cfg.TablePrefix)

	var rows []map[string]any
	if err := db.Raw(query, parentID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load children of %d: %w", parentID, err)
	}

	records := make([]childRecord, 0, len(rows))
	for _, row := range rows {
		rec := childRecord{
			ID:            utils.ToInt64(row["id"]),
			EntityType:    utils.ToString(row["entity_type"]),
			HasChildren:   utils.ToBool(row["can_contain_children"]),
			Title:         utils.ToString(row["title"]),
			Description:   utils.ToString(row["description"]),
			PathComponent: utils.ToString(row["path_component"]),
		}
		if v, ok := row["origination_timestamp"]; ok && v != nil {
			ts := utils.ToInt64(v)
			rec.Timestamp = &ts
		}
		rec.Width = optionalInt(row, "width")
		rec.Height = optionalInt(row, "height")
		rec.ThumbWidth = optionalInt(row, "thumb_width")
		rec.ThumbHeight = optionalInt(row, "thumb_height")
		records = append(records, rec)
	}

	return records, nil
}

func optionalInt(row map[string]any, key string) *int {
	v, ok := row[key]
	if !ok || v == nil {
		return nil
	}
	n := utils.ToInt(v)
	return &n
}

// toNode converts a record into the tree node shape the runtime consumes.
// parentPath is the cleaned output path of the containing album.
func (r *childRecord) toNode(parentPath string) gallery.Node {
	nodeType := gallery.TypePhoto
	if r.EntityType == entityAlbum {
		nodeType = gallery.TypeAlbum
	}

	title := CleanTitle(r.Title)
	if title == "" {
		title = CleanTitle(r.PathComponent)
	}

	// Albums are addressed by their cleaned title; photos by the exact
	// filename the export writes, disambiguation marker and all
	component := title
	if nodeType == gallery.TypePhoto {
		component = LinkTarget(title, r.PathComponent)
	}

	return gallery.Node{
		ID:          r.ID,
		Type:        nodeType,
		HasChildren: r.HasChildren && nodeType == gallery.TypeAlbum,
		Title:       title,
		Description: r.Description,
		Path:        path.Join(parentPath, component),
		Timestamp:   r.Timestamp,
		Width:       r.Width,
		Height:      r.Height,
		ThumbWidth:  r.ThumbWidth,
		ThumbHeight: r.ThumbHeight,
	}
}
