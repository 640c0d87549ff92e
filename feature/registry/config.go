package registry

import (
	"path/filepath"
	"time"
)

// Config holds configuration for registry lookups.
type Config struct {
	// DataDir is the directory holding the registry files.
	DataDir string `mapstructure:"data_dir" default:"./data"`
	// MasterFile is the master registry file name inside DataDir.
	MasterFile string `mapstructure:"master_file" default:"MASTER.txt"`
	// RefFile is the aircraft-type reference file name inside DataDir.
	RefFile string `mapstructure:"ref_file" default:"ACFTREF.txt"`
	// MaxScans caps simultaneous file scans. Minimum 1.
	MaxScans int `mapstructure:"max_scans" default:"4"`
	// CacheSize is the maximum number of cached lookups. Zero or less
	// disables the cache (coalescing stays active).
	CacheSize int `mapstructure:"cache_size" default:"1024"`
	// CacheTTLMinutes is how long a cached lookup stays valid.
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes" default:"1440"`
}

// MasterPath returns the full path of the master registry file.
func (c Config) MasterPath() string {
	return filepath.Join(c.DataDir, c.MasterFile)
}

// RefPath returns the full path of the reference file.
func (c Config) RefPath() string {
	return filepath.Join(c.DataDir, c.RefFile)
}

// CacheTTL returns the cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}
