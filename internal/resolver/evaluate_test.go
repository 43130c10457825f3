package resolver

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/tagger/internal/rules"
)

// fakeEntry implements fs.DirEntry for evaluator tests without touching disk.
type fakeEntry struct {
	name string
	dir  bool
}

func (e fakeEntry) Name() string               { return e.name }
func (e fakeEntry) IsDir() bool                { return e.dir }
func (e fakeEntry) Info() (fs.FileInfo, error) { return nil, fs.ErrInvalid }

func (e fakeEntry) Type() fs.FileMode {
	if e.dir {
		return fs.ModeDir
	}
	return 0
}

func mustParse(t *testing.T, content string) *rules.Declaration {
	t.Helper()
	decl, warnings, err := rules.Parse([]byte(content))
	if err != nil {
		t.Fatalf("failed to parse declaration: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	return decl
}

func mustQuery(t *testing.T, raw string) Query {
	t.Helper()
	q, err := CompileQuery(raw)
	if err != nil {
		t.Fatalf("failed to compile query %q: %v", raw, err)
	}
	return q
}

func TestEvaluate_FilePatternHitsMatchingFile(t *testing.T) {
	decl := mustParse(t, `- !Tag ["readme\\.txt", [doc]]`)
	hits := Evaluate(decl, "/data/a", fakeEntry{name: "readme.txt"}, mustQuery(t, "^doc$"))

	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].Label != "doc" {
		t.Errorf("expected label 'doc', got %q", hits[0].Label)
	}
	if want := filepath.Join("/data/a", "readme.txt"); hits[0].Path != want {
		t.Errorf("expected path %s, got %s", want, hits[0].Path)
	}
}

func TestEvaluate_FilePatternSkipsDirectories(t *testing.T) {
	decl := mustParse(t, `- !Tag ["readme\\.txt", [doc]]`)
	hits := Evaluate(decl, "/data/a", fakeEntry{name: "readme.txt", dir: true}, mustQuery(t, "doc"))

	if len(hits) != 0 {
		t.Errorf("a directory child must never hit a file-pattern rule, got %v", hits)
	}
}

func TestEvaluate_DirectoryTagHitsOwningDir(t *testing.T) {
	decl := mustParse(t, `- !DirTag [urgent]`)

	for _, child := range []fakeEntry{
		{name: "anything.bin"},
		{name: "subdir", dir: true},
	} {
		hits := Evaluate(decl, "/data/b", child, mustQuery(t, "urgent"))
		if len(hits) != 1 {
			t.Fatalf("child %s: expected 1 hit, got %d", child.name, len(hits))
		}
		if hits[0].Path != "/data/b" {
			t.Errorf("dir-tag must hit the owning directory, got %s", hits[0].Path)
		}
	}
}

func TestEvaluate_QueryIsRegexNotSubstring(t *testing.T) {
	decl := mustParse(t, `- !DirTag [tag-extra]`)

	if hits := Evaluate(decl, "/d", fakeEntry{name: "f"}, mustQuery(t, "^tag$")); len(hits) != 0 {
		t.Errorf("anchored query must not match 'tag-extra', got %v", hits)
	}
	if hits := Evaluate(decl, "/d", fakeEntry{name: "f"}, mustQuery(t, "^tag")); len(hits) != 1 {
		t.Errorf("unanchored prefix query should match 'tag-extra', got %v", hits)
	}
}

func TestEvaluate_RulesAreIndependent(t *testing.T) {
	// The first rule not matching the child must not abort the rest.
	decl := mustParse(t, `
- !Tag ["\\.csv$", [data]]
- !DirTag [shared]
- !Tag ["\\.txt$", [text]]
`)
	hits := Evaluate(decl, "/d", fakeEntry{name: "notes.txt"}, mustQuery(t, ".*"))

	if len(hits) != 2 {
		t.Fatalf("expected hits from dir-tag and second file rule, got %v", hits)
	}
	labels := map[string]bool{}
	for _, h := range hits {
		labels[h.Label] = true
	}
	if !labels["shared"] || !labels["text"] {
		t.Errorf("expected labels shared and text, got %v", labels)
	}
}

func TestEvaluate_MultipleLabelsPerRule(t *testing.T) {
	decl := mustParse(t, `- !Tag ["\\.go$", [source, golang, code]]`)
	hits := Evaluate(decl, "/src", fakeEntry{name: "main.go"}, mustQuery(t, "^(source|code)$"))

	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %v", hits)
	}
}

func TestEvaluate_NoMatchesIsEmptyNotError(t *testing.T) {
	decl := mustParse(t, `- !DirTag [alpha]`)
	hits := Evaluate(decl, "/d", fakeEntry{name: "f"}, mustQuery(t, "zzz"))
	if hits != nil {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestCompileQueries_BadQueryFailsAll(t *testing.T) {
	if _, err := CompileQueries([]string{"good", "("}); err == nil {
		t.Fatal("expected an error for an invalid query regex")
	}
	queries, err := CompileQueries([]string{"^a$", "b+"})
	if err != nil {
		t.Fatalf("valid queries should compile: %v", err)
	}
	if len(queries) != 2 {
		t.Errorf("expected 2 compiled queries, got %d", len(queries))
	}
}
