package resolver

import "sort"

// PathSet is a deduplicated set of hit paths.
type PathSet map[string]struct{}

// Add inserts a path into the set.
func (s PathSet) Add(path string) {
	s[path] = struct{}{}
}

// Contains reports set membership.
func (s PathSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Sorted returns the paths in lexical order. Always non-nil, so empty sets
// serialize as [] rather than null.
func (s PathSet) Sorted() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// TaggedFiles maps a declared tag label (the exact string as declared, not
// the query that matched it) to its hit paths.
type TaggedFiles map[string]PathSet

// Add records one hit.
func (tf TaggedFiles) Add(label, path string) {
	set, ok := tf[label]
	if !ok {
		set = PathSet{}
		tf[label] = set
	}
	set.Add(path)
}

// Labels returns all labels in lexical order.
func (tf TaggedFiles) Labels() []string {
	labels := make([]string, 0, len(tf))
	for l := range tf {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Merge unions per-root results into a single mapping. Inputs are treated as
// immutable; a fresh mapping is returned. Hits are (label, path) facts, so
// union is conflict-free.
func Merge(results ...TaggedFiles) TaggedFiles {
	merged := TaggedFiles{}
	for _, tf := range results {
		for label, set := range tf {
			for path := range set {
				merged.Add(label, path)
			}
		}
	}
	return merged
}
