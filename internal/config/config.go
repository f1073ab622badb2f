// Package config handles tool configuration loading and management.
package config

import "path/filepath"

// Config holds all tool settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig locates the game data on disk.
type DataConfig struct {
	Dir      string   `yaml:"dir"`      // Data Files directory
	Content  []string `yaml:"content"`  // content files (.esm/.esp), in load order
	Archives []string `yaml:"archives"` // BSA archives, in load order
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ContentPaths returns the configured content files resolved against the
// data directory. Entries that are already absolute are kept as given.
func (d DataConfig) ContentPaths() []string {
	return d.resolve(d.Content)
}

// ArchivePaths returns the configured archives resolved against the data
// directory.
func (d DataConfig) ArchivePaths() []string {
	return d.resolve(d.Archives)
}

func (d DataConfig) resolve(names []string) []string {
	paths := make([]string, 0, len(names))
	for _, n := range names {
		if filepath.IsAbs(n) {
			paths = append(paths, n)
		} else {
			paths = append(paths, filepath.Join(d.Dir, n))
		}
	}
	return paths
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:      "Data Files",
			Content:  []string{"Morrowind.esm"},
			Archives: []string{"Morrowind.bsa"},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
