// Package engine orchestrates tag resolution across multiple search roots.
//
// Roots are independent: each is resolved by its own worker with no shared
// mutable state, and the per-root results are merged read-only after all
// workers finish (fan-out/fan-in). A root that fails to resolve is logged
// and skipped; it never blocks or aborts its siblings.
package engine

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/tagger/internal/locator"
	"github.com/leapstack-labs/tagger/internal/resolver"
)

// Config configures the engine.
type Config struct {
	// Logger receives skip-and-continue diagnostics. Optional.
	Logger *slog.Logger
}

// Engine resolves tag queries over directory trees.
type Engine struct {
	logger *slog.Logger
}

// New creates an engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{logger: logger}
}

// Search resolves every query over every root and combines the results
// under the given mode.
//
// Queries are compiled eagerly; an invalid query regex fails the whole run
// before any filesystem work starts. Root-level failures (unresolvable
// path, unreadable tree) are soft: the root's contribution is dropped and
// logged. After compilation the only returned error is context
// cancellation.
func (e *Engine) Search(ctx context.Context, roots, queryStrings []string, mode resolver.Mode) (resolver.Report, error) {
	queries, err := resolver.CompileQueries(queryStrings)
	if err != nil {
		return nil, err
	}

	results := make([]resolver.TaggedFiles, len(roots))
	g, ctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			canonical, err := locator.CanonicalDir(root)
			if err != nil {
				e.logger.Warn("skipping unresolvable root", "root", root, "error", err)
				return nil
			}

			tagged, err := resolver.Resolve(canonical, queries, e.logger)
			if err != nil {
				e.logger.Warn("skipping root", "root", root, "error", err)
				return nil
			}

			e.logger.Debug("resolved root", "root", canonical, "labels", len(tagged))
			results[i] = tagged
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := resolver.Merge(results...)
	return resolver.Combine(merged, mode, queryStrings), nil
}

// Declarations locates every sidecar declaration under the given roots and
// returns the union keyed by canonical directory path. Unresolvable or
// unreadable roots are logged and skipped, matching Search semantics.
func (e *Engine) Declarations(ctx context.Context, roots []string) (locator.Association, error) {
	found := make([]locator.Association, len(roots))
	g, ctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			canonical, err := locator.CanonicalDir(root)
			if err != nil {
				e.logger.Warn("skipping unresolvable root", "root", root, "error", err)
				return nil
			}

			assoc, err := locator.Locate(canonical, e.logger)
			if err != nil {
				e.logger.Warn("skipping root", "root", root, "error", err)
				return nil
			}
			found[i] = assoc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := locator.Association{}
	for _, assoc := range found {
		for dir, decl := range assoc {
			merged[dir] = decl
		}
	}
	return merged, nil
}
