package config

import (
	"flag"
	"strings"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagData    = flag.String("data", "", "Data Files directory")
	flagContent = flag.String("content", "", "Comma-separated content files, in load order")
	flagLogFile = flag.String("logfile", "", "Write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagData != "" {
		cfg.Data.Dir = *flagData
	}
	if *flagContent != "" {
		parts := strings.Split(*flagContent, ",")
		cfg.Data.Content = cfg.Data.Content[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Data.Content = append(cfg.Data.Content, p)
			}
		}
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
