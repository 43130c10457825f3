package commands

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tagger/internal/cli/output"
	"github.com/leapstack-labs/tagger/internal/locator"
	"github.com/leapstack-labs/tagger/internal/rules"
)

// ruleInfo is the serializable form of one declared rule.
type ruleInfo struct {
	Kind    string   `yaml:"kind" json:"kind"`
	Pattern string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Labels  []string `yaml:"labels" json:"labels"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List every sidecar declaration under the configured roots",
		Long: `Walk the configured roots and show each discovered sidecar declaration:
the declaring directory, the rule kinds, filename patterns and tag labels.
Rules with unusable patterns are dropped and reported on stderr.`,
		Example: `  # Show all declarations
  tagger rules -d ~/work

  # Machine-readable listing
  tagger rules --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd)
		},
	}
}

func runRules(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	if err := cc.Cfg.ValidateDirs(); err != nil {
		return err
	}

	assoc, err := cc.Engine.Declarations(cmd.Context(), cc.Cfg.Dirs)
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(assoc))
	for dir := range assoc {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	if cc.Renderer.EffectiveMode() == output.ModeTable {
		return cc.Renderer.DeclarationsTable(assoc, dirs)
	}
	return cc.Renderer.Structured(declarationsInfo(assoc, dirs))
}

// declarationsInfo flattens the association into plain serializable data,
// keyed by directory, preserving rule order.
func declarationsInfo(assoc locator.Association, dirs []string) map[string][]ruleInfo {
	info := make(map[string][]ruleInfo, len(dirs))
	for _, dir := range dirs {
		decl := assoc[dir]
		if decl == nil {
			continue
		}
		list := make([]ruleInfo, 0, len(decl.Rules))
		for _, rule := range decl.Rules {
			ri := ruleInfo{Kind: rule.Kind.String(), Labels: rule.Labels}
			if rule.Kind == rules.KindFilePattern {
				ri.Pattern = rule.RawPattern
			}
			list = append(list, ri)
		}
		info[dir] = list
	}
	return info
}
