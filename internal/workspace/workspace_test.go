package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptlab/promptlab/internal/logger"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	proj := filepath.Join(root, "demo")
	writeFile(t, filepath.Join(proj, "main.go"), "package main\n")
	writeFile(t, filepath.Join(proj, "docs", "readme.md"), "# hi\n")
	writeFile(t, filepath.Join(proj, "app.min.bin"), "binary")
	writeFile(t, filepath.Join(proj, "node_modules", "pkg", "index.js"), "x")
	writeFile(t, filepath.Join(proj, ".env"), "SECRET=1")
	writeFile(t, filepath.Join(proj, "assets", "logo.png"), "png")
	return NewService(root, []string{"demo"}, logger.NewNop()), root
}

func flatten(n *Node, out map[string]string) {
	if n == nil {
		return
	}
	out[n.Path] = n.Type
	for _, c := range n.Children {
		flatten(c, out)
	}
}

func TestListProjectsFiltersWhitelist(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "allowed"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "hidden"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	s := NewService(root, []string{"allowed", "missing-on-disk"}, logger.NewNop())
	got := s.ListProjects()
	if len(got) != 1 || got[0] != "allowed" {
		t.Fatalf("expected [allowed], got %v", got)
	}
}

func TestTreeFiltersExtensionsAndEmptyDirs(t *testing.T) {
	s, _ := newTestService(t)

	tree := s.Tree("demo")
	if tree == nil {
		t.Fatalf("expected tree for whitelisted project")
	}

	nodes := map[string]string{}
	flatten(tree, nodes)

	if _, ok := nodes["main.go"]; !ok {
		t.Fatalf("main.go missing from tree: %v", nodes)
	}
	if _, ok := nodes["docs/readme.md"]; !ok {
		t.Fatalf("docs/readme.md missing from tree: %v", nodes)
	}
	for _, banned := range []string{"app.min.bin", ".env", "node_modules", "assets", "assets/logo.png"} {
		for path := range nodes {
			if path == banned || strings.HasPrefix(path, banned+"/") {
				t.Fatalf("filtered path %q leaked into tree", path)
			}
		}
	}
}

func TestTreeUnknownProject(t *testing.T) {
	s, _ := newTestService(t)
	if s.Tree("other") != nil {
		t.Fatalf("expected nil tree for non-whitelisted project")
	}
}

func TestReadFileRejectsTraversal(t *testing.T) {
	s, root := newTestService(t)

	// a juicy target outside the project root
	writeFile(t, filepath.Join(root, "outside.md"), "secret")

	cases := []string{
		"../outside.md",
		"docs/../../outside.md",
		"docs/../../../etc/passwd",
		"..",
		"../../",
	}
	for _, rel := range cases {
		if content, ok := s.ReadFile("demo", rel); ok {
			t.Fatalf("traversal %q succeeded with content %q", rel, content)
		}
	}
}

func TestReadFileBlockedAndDisallowed(t *testing.T) {
	s, _ := newTestService(t)

	if _, ok := s.ReadFile("demo", ".env"); ok {
		t.Fatalf("blocked file served")
	}
	if _, ok := s.ReadFile("demo", "assets/logo.png"); ok {
		t.Fatalf("disallowed extension served")
	}
	if _, ok := s.ReadFile("demo", "missing.go"); ok {
		t.Fatalf("missing file served")
	}

	content, ok := s.ReadFile("demo", "main.go")
	if !ok || content != "package main\n" {
		t.Fatalf("expected file content, got ok=%v content=%q", ok, content)
	}
}

func TestReadFileOversizedPlaceholder(t *testing.T) {
	s, root := newTestService(t)

	big := strings.Repeat("a", maxFileBytes+1)
	writeFile(t, filepath.Join(root, "demo", "big.txt"), big)

	content, ok := s.ReadFile("demo", "big.txt")
	if !ok {
		t.Fatalf("oversized file must succeed with placeholder")
	}
	if content != oversizePlaceholder {
		t.Fatalf("expected placeholder, got %d bytes", len(content))
	}
}

func TestSearchMatchesAndCaps(t *testing.T) {
	s, root := newTestService(t)

	results := s.Search("demo", "MAIN")
	if len(results) != 1 || results[0].Path != "main.go" {
		t.Fatalf("expected case-insensitive match on main.go, got %v", results)
	}

	if got := s.Search("demo", ""); len(got) != 0 {
		t.Fatalf("empty query must return nothing")
	}
	if got := s.Search("nope", "main"); len(got) != 0 {
		t.Fatalf("unknown project must return nothing")
	}

	for i := 0; i < maxSearchResults+10; i++ {
		writeFile(t, filepath.Join(root, "demo", "many", fmt.Sprintf("match_%03d.go", i)), "x")
	}
	results = s.Search("demo", "match_")
	if len(results) != maxSearchResults {
		t.Fatalf("expected cap of %d, got %d", maxSearchResults, len(results))
	}
}
