package resolver

import (
	"sort"
	"strings"
)

// Mode selects how hit sets of the matched labels are combined.
type Mode uint8

const (
	// ModeAnd intersects hit sets across all matched labels.
	ModeAnd Mode = iota
	// ModeOr reports each matched label's hit set separately.
	ModeOr
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeOr {
		return "or"
	}
	return "and"
}

// Report is the final serializable structure: label (or combined query
// description) to sorted hit paths. Rendering relies on the sorted Labels
// and Sorted path slices for reproducible output.
type Report map[string][]string

// Labels returns the report keys in lexical order.
func (r Report) Labels() []string {
	labels := make([]string, 0, len(r))
	for l := range r {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Combine turns the aggregated mapping into the reportable structure.
//
// OR passes the mapping through, one entry per matched label. AND answers
// "which paths carry every matched label simultaneously": it intersects the
// hit sets of all labels present, regardless of which query matched them,
// and reports the result under the human-readable join of the original
// query strings. An empty aggregate intersects to the empty set.
func Combine(aggregated TaggedFiles, mode Mode, queryStrings []string) Report {
	if mode == ModeOr {
		report := make(Report, len(aggregated))
		for label, set := range aggregated {
			report[label] = set.Sorted()
		}
		return report
	}

	return Report{
		strings.Join(queryStrings, ", "): intersectAll(aggregated).Sorted(),
	}
}

// intersectAll computes the intersection of every label's hit set.
func intersectAll(tf TaggedFiles) PathSet {
	if len(tf) == 0 {
		return PathSet{}
	}

	var inter PathSet
	for _, set := range tf {
		if inter == nil {
			inter = PathSet{}
			for p := range set {
				inter.Add(p)
			}
			continue
		}
		for p := range inter {
			if !set.Contains(p) {
				delete(inter, p)
			}
		}
	}
	return inter
}
