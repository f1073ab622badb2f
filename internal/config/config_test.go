package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Data.Dir != "Data Files" {
		t.Errorf("expected data dir 'Data Files', got %s", cfg.Data.Dir)
	}
	if len(cfg.Data.Content) != 1 || cfg.Data.Content[0] != "Morrowind.esm" {
		t.Errorf("expected content [Morrowind.esm], got %v", cfg.Data.Content)
	}
	if len(cfg.Data.Archives) != 1 || cfg.Data.Archives[0] != "Morrowind.bsa" {
		t.Errorf("expected archives [Morrowind.bsa], got %v", cfg.Data.Archives)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestContentPaths(t *testing.T) {
	d := DataConfig{
		Dir:     "game/Data Files",
		Content: []string{"Morrowind.esm", "Tribunal.esm", "/abs/patch.esp"},
	}

	got := d.ContentPaths()
	want := []string{
		filepath.Join("game/Data Files", "Morrowind.esm"),
		filepath.Join("game/Data Files", "Tribunal.esm"),
		"/abs/patch.esp",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ContentPaths = %v, want %v", got, want)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "resdayn.yaml")

	yamlContent := `
data:
  dir: "/games/morrowind/Data Files"
  content:
    - Morrowind.esm
    - Tribunal.esm
    - Bloodmoon.esm
  archives:
    - Morrowind.bsa
    - Tribunal.bsa

logging:
  level: "debug"
  log_file: "resdayn.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Data.Dir != "/games/morrowind/Data Files" {
		t.Errorf("expected data dir '/games/morrowind/Data Files', got %s", cfg.Data.Dir)
	}
	if len(cfg.Data.Content) != 3 {
		t.Fatalf("expected 3 content files, got %v", cfg.Data.Content)
	}
	if cfg.Data.Content[2] != "Bloodmoon.esm" {
		t.Errorf("expected third content file Bloodmoon.esm, got %s", cfg.Data.Content[2])
	}
	if len(cfg.Data.Archives) != 2 {
		t.Fatalf("expected 2 archives, got %v", cfg.Data.Archives)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "resdayn.log" {
		t.Errorf("expected log file 'resdayn.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
data:
  dir: [not
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/resdayn.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create resdayn.yaml in current directory
	configPath := filepath.Join(tmpDir, "resdayn.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  level: warn\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find resdayn.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "data flag",
			setup: func() {
				*flagData = "/mnt/games/Data Files"
			},
			verify: func(cfg *Config) {
				if cfg.Data.Dir != "/mnt/games/Data Files" {
					t.Errorf("expected data dir '/mnt/games/Data Files', got %s", cfg.Data.Dir)
				}
			},
			teardown: func() {
				*flagData = ""
			},
		},
		{
			name: "content flag",
			setup: func() {
				*flagContent = "Morrowind.esm, Tribunal.esm,patch.esp"
			},
			verify: func(cfg *Config) {
				want := []string{"Morrowind.esm", "Tribunal.esm", "patch.esp"}
				if !reflect.DeepEqual(cfg.Data.Content, want) {
					t.Errorf("expected content %v, got %v", want, cfg.Data.Content)
				}
			},
			teardown: func() {
				*flagContent = ""
			},
		},
		{
			name: "logfile flag",
			setup: func() {
				*flagLogFile = "debug.log"
			},
			verify: func(cfg *Config) {
				if cfg.Logging.LogFile != "debug.log" {
					t.Errorf("expected log file 'debug.log', got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() {
				*flagLogFile = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "resdayn.yaml")

	yamlContent := `
data:
  dir: "/from/file"
  content:
    - FileOnly.esm
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagData = "/from/flag"
	defer func() {
		*flagConfig = ""
		*flagData = ""
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Dir should be from flag, not file
	if cfg.Data.Dir != "/from/flag" {
		t.Errorf("expected data dir '/from/flag' from flag, got %s", cfg.Data.Dir)
	}

	// Content should be from file since no flag override
	if len(cfg.Data.Content) != 1 || cfg.Data.Content[0] != "FileOnly.esm" {
		t.Errorf("expected content [FileOnly.esm] from file, got %v", cfg.Data.Content)
	}
}
