// Package config handles objtool configuration loading and management.
package config

// Config holds all objtool settings.
type Config struct {
	Transform TransformConfig `yaml:"transform"`
	Split     SplitConfig     `yaml:"split"`
	Batch     BatchConfig     `yaml:"batch"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TransformConfig holds output formatting for center and rotate.
// A precision of -1 writes the shortest representation that round-trips.
type TransformConfig struct {
	CenterPrecision int `yaml:"center_precision"`
	RotatePrecision int `yaml:"rotate_precision"`
}

// SplitConfig controls where segments are written.
type SplitConfig struct {
	OutputDir   string `yaml:"output_dir"`
	NamePattern string `yaml:"name_pattern"` // fmt pattern: input base name, 1-based segment number
}

// BatchConfig holds settings for processing many files.
type BatchConfig struct {
	Workers  int  `yaml:"workers"` // 0 = one per CPU
	FailFast bool `yaml:"fail_fast"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	JSON       bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Transform: TransformConfig{
			CenterPrecision: -1,
			RotatePrecision: 6,
		},
		Split: SplitConfig{
			OutputDir:   ".",
			NamePattern: "%s_%03d.obj",
		},
		Batch: BatchConfig{
			Workers:  0,
			FailFast: false,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  20,
			MaxBackups: 5,
		},
	}
}
