package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search [TAG_REGEX...]",
		Short: "Find files and directories carrying matching tags",
		Long: `Search the configured roots for entries tagged by sidecar files.

Each TAG_REGEX is a regular expression matched against declared tag labels.
By default hits must carry every matched label (AND); --or reports each
matched label separately (union).

When no tag patterns are given, search prompts for them interactively.`,
		Example: `  # Files tagged "doc" anywhere under the configured dirs
  tagger search '^doc$'

  # Entries tagged both project-x and urgent
  tagger search -d ~/work project-x urgent

  # Union across tag families, as JSON
  tagger search --or --output json 'proj-.*' urgent`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunSearch(cmd, args)
		},
	}
}

// RunSearch implements search. It also backs the bare `tagger TAG...`
// invocation on the root command.
func RunSearch(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)
	if err := cc.Cfg.ValidateDirs(); err != nil {
		return err
	}

	tags := args
	interactive := false
	if len(tags) == 0 {
		var err error
		tags, err = promptTags()
		if err != nil {
			return err
		}
		interactive = true
	}
	if len(tags) == 0 {
		return fmt.Errorf("no tag patterns given")
	}

	report, err := cc.Engine.Search(cmd.Context(), cc.Cfg.Dirs, tags, searchMode(cc.Cfg))
	if err != nil {
		return err
	}
	if err := cc.Renderer.Report(report); err != nil {
		return err
	}

	if interactive {
		waitForEnter(cmd)
	}
	return nil
}
