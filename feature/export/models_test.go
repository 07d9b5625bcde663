package export

import (
	"testing"

	"gallery-manager/core/gallery"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func childColumns() []string {
	return []string{
		"id", "entity_type", "can_contain_children", "title", "description",
		"path_component", "origination_timestamp", "width", "height",
		"thumb_width", "thumb_height",
	}
}

func TestLoadChildren(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := &Config{TablePrefix: "g2_", ColumnPrefix: "g_"}

	rows := sqlmock.NewRows(childColumns()).
		AddRow(10, "GalleryAlbumItem", 1, "Summer", "", "summer", nil, nil, nil, nil, nil).
		AddRow(11, "GalleryPhotoItem", 0, "Beach", "at the shore", "img_001.jpg", int64(1246000000), 1024, 768, 150, 150).
		AddRow(12, "GalleryLinkItem", 0, "elsewhere", "", "link", nil, nil, nil, nil, nil)

	mock.ExpectQuery("FROM g2_ChildEntity ce").WithArgs(int64(7)).WillReturnRows(rows)

	records, err := loadChildren(db, cfg, 7)
	require.NoError(t, err)
	require.Len(t, records, 3)

	album := records[0]
	assert.True(t, album.isExportable())
	assert.True(t, album.HasChildren)
	assert.Equal(t, int64(10), album.ID)

	photo := records[1]
	assert.True(t, photo.isExportable())
	require.NotNil(t, photo.Timestamp)
	assert.Equal(t, int64(1246000000), *photo.Timestamp)
	require.NotNil(t, photo.Width)
	assert.Equal(t, 1024, *photo.Width)

	// Link items are not part of the static gallery
	assert.False(t, records[2].isExportable())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChildRecord_ToNode(t *testing.T) {
	ts := int64(1246000000)
	rec := childRecord{
		ID:            11,
		EntityType:    entityPhoto,
		Title:         "Beach Day",
		Description:   "at the shore",
		PathComponent: "img_001.jpg",
		Timestamp:     &ts,
	}

	node := rec.toNode("summer")
	assert.Equal(t, gallery.TypePhoto, node.Type)
	assert.False(t, node.HasChildren)
	assert.Equal(t, "beach_day", node.Title)
	assert.Equal(t, "summer/beach_day___img_001.jpg", node.Path)
	assert.Equal(t, "at the shore", node.Description)
}

func TestChildRecord_ToNode_TitleFallsBackToPathComponent(t *testing.T) {
	rec := childRecord{
		ID:            12,
		EntityType:    entityPhoto,
		Title:         "[only markup]",
		PathComponent: "img_002.jpg",
	}

	node := rec.toNode("")
	assert.Equal(t, "img_002.jpg", node.Title)
}
