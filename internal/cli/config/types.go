// Package config provides configuration management for the tagger CLI.
//
// Configuration is layered with koanf. Precedence, highest to lowest:
// CLI flags > TAGGER_* environment variables > the settings file > defaults.
// The settings file lives at ~/.config/tagger/settings.yaml unless --config
// points elsewhere.
package config

// Config holds all CLI configuration options.
type Config struct {
	// Dirs are the search roots. Entries from the settings file may be
	// glob patterns; they are expanded at load time.
	Dirs []string `koanf:"dirs"`
	// Or selects union semantics; the default is intersection (AND).
	Or bool `koanf:"or"`
	// Verbose raises the log level to debug.
	Verbose bool `koanf:"verbose"`
	// OutputFormat is one of auto, yaml, json, table.
	OutputFormat string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultOutput = "auto" // auto-detect: TTY=table, piped=yaml

	// settingsFileRelPath is the settings file location under the user's
	// home directory.
	settingsFileRelPath = ".config/tagger/settings.yaml"
)
