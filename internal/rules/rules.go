// Package rules defines the tag declaration data model and parses sidecar
// file contents into it.
//
// A sidecar file is a YAML sequence of tagged entries. Each entry is either
// a file pattern rule, tagging files whose names match a regular expression:
//
//	- !Tag ["readme\\.txt", [doc, readme]]
//
// or a directory tag rule, tagging the directory the sidecar lives in:
//
//	- !DirTag [urgent, project-x]
//
// Declarations are immutable after parsing.
package rules

import "regexp"

// RuleKind discriminates the two rule variants.
type RuleKind uint8

const (
	// KindFilePattern tags regular files whose name matches Pattern.
	KindFilePattern RuleKind = iota + 1
	// KindDirectoryTag tags the directory that owns the declaration.
	KindDirectoryTag
)

// String returns a human-readable rule kind name.
func (k RuleKind) String() string {
	switch k {
	case KindFilePattern:
		return "file-pattern"
	case KindDirectoryTag:
		return "dir-tag"
	default:
		return "unknown"
	}
}

// Rule is one parsed sidecar entry.
type Rule struct {
	Kind RuleKind
	// Pattern is the compiled filename pattern. Set only for KindFilePattern.
	Pattern *regexp.Regexp
	// RawPattern is the pattern source as written in the sidecar.
	RawPattern string
	// Labels are the tag labels this rule declares, in declaration order.
	Labels []string
}

// Declaration is the ordered rule set parsed from one sidecar file.
type Declaration struct {
	Rules []Rule
}

// Empty reports whether the declaration carries no usable rules.
func (d *Declaration) Empty() bool {
	return d == nil || len(d.Rules) == 0
}
