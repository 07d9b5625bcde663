package repair

// Config holds configuration for the repair tooling.
type Config struct {
	// ListingPath is the newline-delimited reference file listing.
	ListingPath string `mapstructure:"listing_path" default:"./files.txt"`
	// ReportPath is the Markdown mismatch report to repair.
	ReportPath string `mapstructure:"report_path" default:"./mismatches.md"`
	// ArtifactPath is where the winning strategy artifact is written.
	ArtifactPath string `mapstructure:"artifact_path" default:"./best_strategy.json"`
	// GoldenPath is the hand-labeled golden set for training.
	GoldenPath string `mapstructure:"golden_path" default:"./golden.tsv"`
	// PathWeight, AlbumWeight and FileWeight tune the weighted scorer.
	PathWeight  float64 `mapstructure:"path_weight" default:"0.3"`
	AlbumWeight float64 `mapstructure:"album_weight" default:"0.3"`
	FileWeight  float64 `mapstructure:"file_weight" default:"0.4"`
}

// Options merges the configured weights into the default matching
// options. Non-positive configured weights keep the defaults.
func (c *Config) Options() Options {
	opts := DefaultOptions()
	if c.PathWeight > 0 && c.AlbumWeight > 0 && c.FileWeight > 0 {
		opts.PathWeight = c.PathWeight
		opts.AlbumWeight = c.AlbumWeight
		opts.FileWeight = c.FileWeight
	}
	return opts
}
