// Package resolver evaluates tag queries against located declarations and
// combines the resulting hit sets.
package resolver

import (
	"fmt"
	"regexp"
)

// Query is a tag query: a regular expression matched against declared tag
// labels. Compiled once per query, reused across every evaluation.
//
// Note the asymmetry with file-pattern rules: there a declared pattern is
// matched against a literal filename, here a query pattern is matched
// against a literal label. The two directions are never conflated.
type Query struct {
	Raw string
	re  *regexp.Regexp
}

// CompileQuery compiles one tag query.
func CompileQuery(raw string) (Query, error) {
	re, err := regexp.Compile(raw)
	if err != nil {
		return Query{}, fmt.Errorf("invalid tag query %q: %w", raw, err)
	}
	return Query{Raw: raw, re: re}, nil
}

// CompileQueries compiles all queries eagerly. Any bad query fails the lot.
func CompileQueries(raws []string) ([]Query, error) {
	queries := make([]Query, 0, len(raws))
	for _, raw := range raws {
		q, err := CompileQuery(raw)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// MatchLabel reports whether the query matches a declared tag label.
func (q Query) MatchLabel(label string) bool {
	return q.re.MatchString(label)
}
