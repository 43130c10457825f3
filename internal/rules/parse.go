package rules

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// YAML tags recognized as rule entry shapes.
const (
	TagFilePattern  = "!Tag"
	TagDirectoryTag = "!DirTag"
)

// Parse parses one sidecar file's raw content into a Declaration.
//
// Structural problems (content is not a sequence of recognized entry shapes)
// are hard errors and reject the whole declaration. A rule whose filename
// pattern fails to compile is a soft failure: the rule is dropped, reported
// as a Warning, and parsing continues. One author's typo in one rule must
// not blind the whole declaration.
func Parse(content []byte) (*Declaration, []Warning, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, nil, &ParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}

	// Empty sidecar declares nothing.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &Declaration{}, nil, nil
	}

	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, nil, &ParseError{
			Message: "sidecar content must be a sequence of rule entries",
			Line:    seq.Line,
		}
	}

	decl := &Declaration{Rules: make([]Rule, 0, len(seq.Content))}
	var warnings []Warning

	for i, entry := range seq.Content {
		rule, err := parseEntry(entry)
		if err != nil {
			return nil, nil, err
		}

		if rule.Kind == KindFilePattern {
			compiled, err := regexp.Compile(rule.RawPattern)
			if err != nil {
				warnings = append(warnings, Warning{Index: i, Pattern: rule.RawPattern, Err: err})
				continue
			}
			rule.Pattern = compiled
		}

		decl.Rules = append(decl.Rules, rule)
	}

	return decl, warnings, nil
}

// parseEntry decodes one sequence entry into an uncompiled Rule.
func parseEntry(n *yaml.Node) (Rule, error) {
	switch n.Tag {
	case TagFilePattern:
		return parseFilePattern(n)
	case TagDirectoryTag:
		labels, err := scalarList(n)
		if err != nil {
			return Rule{}, err
		}
		return Rule{Kind: KindDirectoryTag, Labels: labels}, nil
	default:
		return Rule{}, &UnknownEntryError{Tag: n.Tag, Line: n.Line}
	}
}

// parseFilePattern decodes a !Tag entry: [filename-regex, [label, ...]].
func parseFilePattern(n *yaml.Node) (Rule, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) != 2 {
		return Rule{}, &ParseError{
			Message: fmt.Sprintf("%s entry must be a [pattern, [labels]] pair", TagFilePattern),
			Line:    n.Line,
		}
	}

	patternNode := n.Content[0]
	if patternNode.Kind != yaml.ScalarNode {
		return Rule{}, &ParseError{
			Message: fmt.Sprintf("%s pattern must be a string", TagFilePattern),
			Line:    patternNode.Line,
		}
	}

	labels, err := scalarList(n.Content[1])
	if err != nil {
		return Rule{}, err
	}

	return Rule{Kind: KindFilePattern, RawPattern: patternNode.Value, Labels: labels}, nil
}

// scalarList decodes a sequence node of scalar labels.
func scalarList(n *yaml.Node) ([]string, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, &ParseError{Message: "labels must be a sequence of strings", Line: n.Line}
	}
	labels := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		if c.Kind != yaml.ScalarNode {
			return nil, &ParseError{Message: "labels must be plain strings", Line: c.Line}
		}
		labels = append(labels, c.Value)
	}
	return labels, nil
}
