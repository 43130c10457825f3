package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tagger/internal/locator"
	"github.com/leapstack-labs/tagger/internal/resolver"
	"github.com/leapstack-labs/tagger/internal/testutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func canonical(t *testing.T, dir string) string {
	t.Helper()
	c, err := locator.CanonicalDir(dir)
	require.NoError(t, err)
	return c
}

func TestSearch_TwoRootsDisjointLabels(t *testing.T) {
	root1 := t.TempDir()
	root2 := t.TempDir()
	writeFile(t, filepath.Join(root1, "tagger.yaml"), `- !DirTag [alpha]`)
	writeFile(t, filepath.Join(root1, "keep"), "x")
	writeFile(t, filepath.Join(root2, "tagger.yaml"), `- !DirTag [beta]`)
	writeFile(t, filepath.Join(root2, "keep"), "x")

	eng := New(Config{Logger: testutil.NewTestLogger(t)})
	report, err := eng.Search(context.Background(), []string{root1, root2}, []string{".*"}, resolver.ModeOr)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta"}, report.Labels())
	assert.Equal(t, []string{canonical(t, root1)}, report["alpha"])
	assert.Equal(t, []string{canonical(t, root2)}, report["beta"])
}

func TestSearch_AndModeCombinedKey(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tagger.yaml"), `
- !Tag ["shared\\.txt", [x, y]]
- !Tag ["only-x\\.txt", [x]]
`)
	writeFile(t, filepath.Join(root, "shared.txt"), "both labels")
	writeFile(t, filepath.Join(root, "only-x.txt"), "one label")

	eng := New(Config{Logger: testutil.NewTestLogger(t)})
	report, err := eng.Search(context.Background(), []string{root}, []string{"^x$", "^y$"}, resolver.ModeAnd)
	require.NoError(t, err)

	require.Equal(t, []string{"^x$, ^y$"}, report.Labels())
	shared := filepath.Join(canonical(t, root), "shared.txt")
	assert.Equal(t, []string{shared}, report["^x$, ^y$"])
}

func TestSearch_FailedRootDoesNotAbortSiblings(t *testing.T) {
	good := t.TempDir()
	writeFile(t, filepath.Join(good, "tagger.yaml"), `- !DirTag [ok]`)
	writeFile(t, filepath.Join(good, "keep"), "x")
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	logger, logged := testutil.CaptureLogger()
	eng := New(Config{Logger: logger})
	report, err := eng.Search(context.Background(), []string{missing, good}, []string{"ok"}, resolver.ModeOr)
	require.NoError(t, err)

	assert.Equal(t, []string{canonical(t, good)}, report["ok"])
	assert.Contains(t, logged(), "skipping unresolvable root")
}

func TestSearch_BadQueryFailsRun(t *testing.T) {
	eng := New(Config{})
	_, err := eng.Search(context.Background(), []string{t.TempDir()}, []string{"("}, resolver.ModeOr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tag query")
}

func TestSearch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := New(Config{})
	_, err := eng.Search(ctx, []string{t.TempDir()}, []string{".*"}, resolver.ModeOr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch_NoRootsYieldsEmptyReport(t *testing.T) {
	eng := New(Config{})
	report, err := eng.Search(context.Background(), nil, []string{"x"}, resolver.ModeOr)
	require.NoError(t, err)
	assert.Empty(t, report)
}

func TestDeclarations_MergesAcrossRoots(t *testing.T) {
	root1 := t.TempDir()
	root2 := t.TempDir()
	writeFile(t, filepath.Join(root1, "a", "tagger.yaml"), `- !DirTag [one]`)
	writeFile(t, filepath.Join(root2, "b", ".tagger.yaml"), `- !DirTag [two]`)

	eng := New(Config{Logger: testutil.NewTestLogger(t)})
	assoc, err := eng.Declarations(context.Background(), []string{root1, root2})
	require.NoError(t, err)

	require.Len(t, assoc, 2)
	assert.Contains(t, assoc, canonical(t, filepath.Join(root1, "a")))
	assert.Contains(t, assoc, canonical(t, filepath.Join(root2, "b")))
}
