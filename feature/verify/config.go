package verify

// Config holds configuration for the integrity scan.
type Config struct {
	// Path is the root directory of the exported tree on local disk.
	Path string `mapstructure:"path" default:"./export"`
	// ReportPath is where the mismatch report is written.
	ReportPath string `mapstructure:"report_path" default:"./mismatches.md"`
	// BaseURL prefixes the URLs in the mismatch report.
	BaseURL string `mapstructure:"base_url" default:"http://gallery.local"`
	// ThumbPrefix is the thumbnail filename prefix the exporter used.
	ThumbPrefix string `mapstructure:"thumb_prefix" default:"t__"`
	// FromStorage scans the object storage bucket instead of local disk.
	FromStorage bool `mapstructure:"from_storage" default:"false"`
	// Orphans also lists bucket objects no album listing references.
	Orphans bool `mapstructure:"orphans" default:"false"`
}
