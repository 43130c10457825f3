package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/tagger/internal/locator"
	"github.com/leapstack-labs/tagger/internal/resolver"
	"github.com/leapstack-labs/tagger/internal/rules"
)

// reportTable renders one row per (tag, path) pair.
func (r *Renderer) reportTable(report resolver.Report) error {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Tag", "Path"})

	hits := 0
	for _, label := range report.Labels() {
		for _, path := range report[label] {
			t.AppendRow(table.Row{label, path})
			hits++
		}
	}
	t.Render()
	_, _ = fmt.Fprintf(r.out, "(%d hits)\n", hits)
	return nil
}

// DeclarationsTable renders every located declaration, one row per rule.
func (r *Renderer) DeclarationsTable(assoc locator.Association, dirs []string) error {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Directory", "Kind", "Pattern", "Labels"})

	for _, dir := range dirs {
		decl := assoc[dir]
		if decl == nil {
			continue
		}
		for _, rule := range decl.Rules {
			pattern := rule.RawPattern
			if rule.Kind == rules.KindDirectoryTag {
				pattern = "-"
			}
			t.AppendRow(table.Row{dir, rule.Kind.String(), pattern, strings.Join(rule.Labels, ", ")})
		}
	}
	t.Render()
	_, _ = fmt.Fprintf(r.out, "(%d directories)\n", len(dirs))
	return nil
}
