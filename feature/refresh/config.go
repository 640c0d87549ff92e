package refresh

import "time"

// Config holds configuration for the dataset refresh pipeline.
type Config struct {
	// Enabled controls whether the refresh feature loads at all.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// ArchiveURL is the remote dataset archive.
	ArchiveURL string `mapstructure:"archive_url" default:"https://registry.faa.gov/database/ReleasableAircraft.zip"`
	// MasterEntry and RefEntry are the archive entries swapped into place.
	MasterEntry string `mapstructure:"master_entry" default:"MASTER.txt"`
	RefEntry    string `mapstructure:"ref_entry" default:"ACFTREF.txt"`
	// TimeoutSeconds bounds the whole download.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"300"`
	// MaxRedirects caps redirect following during the download.
	MaxRedirects int `mapstructure:"max_redirects" default:"5"`
	// IntervalMinutes is how often the scheduler checks dataset staleness.
	IntervalMinutes int `mapstructure:"interval_minutes" default:"360"`
	// MaxAgeHours is the staleness threshold that triggers a refresh.
	MaxAgeHours int `mapstructure:"max_age_hours" default:"168"`
	// Mirror enables pushing refreshed files to the object store.
	Mirror bool `mapstructure:"mirror" default:"false"`
	// MirrorKeep is how many mirrored generations to retain.
	MirrorKeep int `mapstructure:"mirror_keep" default:"3"`
}

// Timeout returns the download timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Interval returns the scheduler check interval as a duration.
func (c Config) Interval() time.Duration {
	if c.IntervalMinutes <= 0 {
		return 6 * time.Hour
	}
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// MaxAge returns the staleness threshold as a duration.
func (c Config) MaxAge() time.Duration {
	if c.MaxAgeHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.MaxAgeHours) * time.Hour
}
