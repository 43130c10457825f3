package resolver

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/tagger/internal/locator"
)

// Resolve runs all queries over one root and returns its tag index.
//
// For every declared directory only its direct children are considered: a
// nested subdirectory's files answer to their own sidecar, never to the
// parent's. Sidecar files themselves are not taggable children. Failing to
// read a declared directory's children is a hard error for this root; the
// caller decides whether sibling roots continue.
func Resolve(root string, queries []Query, logger *slog.Logger) (TaggedFiles, error) {
	assoc, err := locator.Locate(root, logger)
	if err != nil {
		return nil, err
	}

	tagged := TaggedFiles{}
	for dir, decl := range assoc {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading children of %s: %w", dir, err)
		}
		for _, entry := range entries {
			if locator.IsSidecarName(entry.Name()) {
				continue
			}
			for _, query := range queries {
				for _, hit := range Evaluate(decl, dir, entry, query) {
					tagged.Add(hit.Label, hit.Path)
				}
			}
		}
	}
	return tagged, nil
}
