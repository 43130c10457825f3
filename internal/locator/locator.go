// Package locator discovers sidecar declarations across a directory tree.
//
// It walks a root's full subtree, parses every recognized sidecar file, and
// associates each parsed declaration with the canonical (symlink-resolved)
// path of the directory that directly contains it. There is no ancestor
// inheritance: a directory without its own sidecar is undeclared, even when
// an ancestor carries one.
package locator

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/tagger/internal/rules"
)

// sidecarNames is the exact set of recognized sidecar filenames.
// Initialized once, never mutated.
var sidecarNames = map[string]struct{}{
	".tagger.yaml": {},
	"tagger.yaml":  {},
}

// IsSidecarName reports whether name is a recognized sidecar filename.
// Matching is case-exact.
func IsSidecarName(name string) bool {
	_, ok := sidecarNames[name]
	return ok
}

// Association maps a canonical directory path to its parsed declaration.
// Built once per root per run, read-only afterwards.
type Association map[string]*rules.Declaration

// Locate walks root and builds the directory-to-declaration association.
//
// Symbolic links are not followed (cycles, double-counting). A sidecar that
// cannot be read or parsed leaves its directory undeclared and is logged; a
// failure to canonicalize a sidecar's parent directory is a hard error for
// the whole tree. When both sidecar names exist in one directory, the one
// visited last wins.
func Locate(root string, logger *slog.Logger) (Association, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	assoc := Association{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}
		if d.IsDir() || !IsSidecarName(d.Name()) {
			return nil
		}

		parent, err := CanonicalDir(filepath.Dir(path))
		if err != nil {
			return fmt.Errorf("resolving parent of %s: %w", path, err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable sidecar", "path", path, "error", err)
			return nil
		}

		decl, warnings, err := rules.Parse(content)
		if err != nil {
			logger.Warn("skipping malformed sidecar", "path", path, "error", err)
			return nil
		}
		for _, w := range warnings {
			logger.Warn("dropping sidecar rule", "path", path, "rule", w.Index,
				"pattern", w.Pattern, "error", w.Err)
		}

		assoc[parent] = decl
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("located declarations", "root", root, "count", len(assoc))
	return assoc, nil
}

// CanonicalDir returns the absolute, symlink-resolved form of dir.
func CanonicalDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
