package commands

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tagger/internal/locator"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch TAG_REGEX...",
		Short: "Re-run a search whenever sidecar files change",
		Long: `Run a search, then keep watching the configured roots and re-run it
every time a sidecar file is created, changed or removed. Newly created
directories are picked up as they appear. Interrupt to stop.`,
		Example: `  tagger watch -d ~/work '^urgent$'`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args)
		},
	}
}

func runWatch(cmd *cobra.Command, tags []string) error {
	cc := NewCommandContext(cmd)
	if err := cc.Cfg.ValidateDirs(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runOnce := func() error {
		report, err := cc.Engine.Search(ctx, cc.Cfg.Dirs, tags, searchMode(cc.Cfg))
		if err != nil {
			return err
		}
		return cc.Renderer.Report(report)
	}

	if err := runOnce(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, root := range cc.Cfg.Dirs {
		if err := watchTree(watcher, root); err != nil {
			cc.Logger.Warn("not watching root", "root", root, "error", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories must be added to the watch set; their
			// sidecars would otherwise go unnoticed.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Lstat(event.Name); err == nil && info.IsDir() {
					_ = watchTree(watcher, event.Name)
				}
			}
			if !locator.IsSidecarName(filepath.Base(event.Name)) {
				continue
			}
			cc.Logger.Debug("sidecar changed", "path", event.Name, "op", event.Op.String())
			cc.Renderer.Println("---")
			if err := runOnce(); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cc.Logger.Warn("watch error", "error", err)
		}
	}
}

// watchTree registers root and every subdirectory with the watcher.
// fsnotify watches are not recursive.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
}
