package config

import "fmt"

// validOutputs are the accepted output format names.
var validOutputs = map[string]bool{
	"":      true, // resolved to auto by the renderer
	"auto":  true,
	"yaml":  true,
	"json":  true,
	"table": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (expected auto, yaml, json or table)", c.OutputFormat)
	}
	return nil
}

// ValidateDirs checks that at least one search root is available. A root
// that later turns out to be unreadable is skipped by the engine instead;
// only the no-roots-at-all case is rejected up front. Called by commands
// that actually search, so help and version keep working unconfigured.
func (c *Config) ValidateDirs() error {
	if len(c.Dirs) == 0 {
		return fmt.Errorf("no search roots: pass --dirs or list dirs in %s", settingsFileRelPath)
	}
	return nil
}
