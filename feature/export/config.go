package export

// Config holds configuration for the Gallery 2 export.
type Config struct {
	// SourcePath is the directory holding the full size originals
	// (normally g2data/albums).
	SourcePath string `mapstructure:"source_path" default:""`
	// OutputPath is the directory the static gallery tree is written to.
	OutputPath string `mapstructure:"output_path" default:"./export"`
	// RootAlbumID is the Gallery 2 id of the root album.
	RootAlbumID int64 `mapstructure:"root_album_id" default:"7"`
	// TablePrefix is the Gallery 2 table prefix.
	TablePrefix string `mapstructure:"table_prefix" default:"g2_"`
	// ColumnPrefix is the Gallery 2 column prefix.
	ColumnPrefix string `mapstructure:"column_prefix" default:"g_"`
	// ThumbPrefix is prepended to generated thumbnail filenames.
	ThumbPrefix string `mapstructure:"thumb_prefix" default:"t__"`
	// ThumbSize is the square thumbnail edge length in pixels.
	ThumbSize int `mapstructure:"thumb_size" default:"150"`
	// Upload enables pushing the exported tree to object storage.
	Upload bool `mapstructure:"upload" default:"false"`
}
