package resolver

import (
	"io/fs"
	"path/filepath"

	"github.com/leapstack-labs/tagger/internal/rules"
)

// Hit is one concrete (tag label, hit path) fact.
type Hit struct {
	Label string
	Path  string
}

// Evaluate runs every rule of decl against one direct child of dir and
// returns the hits the query produces. Rules are evaluated independently: a
// file-pattern rule that does not match the child never suppresses later
// rules. An empty result is a normal outcome, not an error.
//
// File-pattern rules hit the matched file itself and apply only to regular
// files. Directory-tag rules hit the declaration's own directory no matter
// which child triggered evaluation; iterating several children just produces
// duplicate facts, which collapse under set semantics downstream.
func Evaluate(decl *rules.Declaration, dir string, child fs.DirEntry, query Query) []Hit {
	var hits []Hit
	for _, rule := range decl.Rules {
		switch rule.Kind {
		case rules.KindFilePattern:
			if !child.Type().IsRegular() {
				continue
			}
			if !rule.Pattern.MatchString(child.Name()) {
				continue
			}
			path := filepath.Join(dir, child.Name())
			for _, label := range rule.Labels {
				if query.MatchLabel(label) {
					hits = append(hits, Hit{Label: label, Path: path})
				}
			}
		case rules.KindDirectoryTag:
			for _, label := range rule.Labels {
				if query.MatchLabel(label) {
					hits = append(hits, Hit{Label: label, Path: dir})
				}
			}
		}
	}
	return hits
}
