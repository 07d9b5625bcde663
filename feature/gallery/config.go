package gallery

// Config holds configuration for loading an exported gallery tree.
type Config struct {
	// Path is the root directory of the exported tree on local disk.
	Path string `mapstructure:"path" default:"./export"`
	// RootAlbumID is the id the tree root is addressed by.
	RootAlbumID int64 `mapstructure:"root_album_id" default:"7"`
	// CacheSize bounds the child-list cache in albums.
	CacheSize int `mapstructure:"cache_size" default:"50"`
	// FromStorage loads the tree from object storage instead of disk.
	FromStorage bool `mapstructure:"from_storage" default:"false"`
}
