package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/promptlab/promptlab/internal/logger"
)

const (
	maxFileBytes     = 256 * 1024
	maxSearchResults = 50

	oversizePlaceholder = "File too large to display (over 256 KB)."
)

// allowedExtensions is the closed set of file types the browser will surface.
var allowedExtensions = map[string]bool{
	".go": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".py": true, ".rb": true, ".java": true, ".c": true, ".cpp": true, ".h": true,
	".css": true, ".scss": true, ".html": true, ".vue": true, ".svelte": true,
	".json": true, ".md": true, ".txt": true, ".yml": true, ".yaml": true,
	".toml": true, ".xml": true, ".sql": true, ".sh": true, ".graphql": true,
}

// blockedNames match dependency dirs, build output and credential-looking
// files that must never leave the server, case-insensitively.
var blockedNames = []string{
	"node_modules", "vendor", "dist", "build", "target", "__pycache__",
	"credential", "secret", "id_rsa", ".pem", ".key", ".env",
}

type Node struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Type     string  `json:"type"` // "file" or "dir"
	Size     int64   `json:"size,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

type SearchResult struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Service exposes a read-only view over whitelisted project directories.
type Service struct {
	root      string
	whitelist map[string]bool
	log       *logger.Logger
}

func NewService(root string, whitelist []string, log *logger.Logger) *Service {
	wl := make(map[string]bool, len(whitelist))
	for _, p := range whitelist {
		wl[p] = true
	}
	return &Service{root: root, whitelist: wl, log: log}
}

func blocked(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	lower := strings.ToLower(name)
	for _, b := range blockedNames {
		if strings.Contains(lower, b) {
			return true
		}
	}
	return false
}

// projectRoot resolves a whitelisted project name to its absolute directory,
// or "" when the project is unknown or missing on disk.
func (s *Service) projectRoot(project string) string {
	if !s.whitelist[project] || blocked(project) {
		return ""
	}
	abs, err := filepath.Abs(filepath.Join(s.root, project))
	if err != nil {
		return ""
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return ""
	}
	return abs
}

// ListProjects returns whitelisted project names that exist on disk, sorted.
func (s *Service) ListProjects() []string {
	out := make([]string, 0, len(s.whitelist))
	for name := range s.whitelist {
		if s.projectRoot(name) != "" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Tree walks a project directory and returns its filtered tree, or nil when
// the project is unknown. Directories whose entire subtree is filtered out
// are omitted.
func (s *Service) Tree(project string) *Node {
	root := s.projectRoot(project)
	if root == "" {
		return nil
	}
	node := s.walk(root, project, "")
	if node == nil {
		node = &Node{Name: project, Path: "", Type: "dir"}
	}
	return node
}

func (s *Service) walk(abs, name, rel string) *Node {
	entries, err := os.ReadDir(abs)
	if err != nil {
		s.log.Warn("tree walk failed", "path", rel, "err", err)
		return nil
	}

	node := &Node{Name: name, Path: rel, Type: "dir"}
	for _, e := range entries {
		if blocked(e.Name()) {
			continue
		}
		childRel := filepath.ToSlash(filepath.Join(rel, e.Name()))
		childAbs := filepath.Join(abs, e.Name())
		if e.IsDir() {
			if child := s.walk(childAbs, e.Name(), childRel); child != nil {
				node.Children = append(node.Children, child)
			}
			continue
		}
		if !allowedExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		var size int64
		if info, err := e.Info(); err == nil {
			size = info.Size()
		}
		node.Children = append(node.Children, &Node{
			Name: e.Name(),
			Path: childRel,
			Type: "file",
			Size: size,
		})
	}
	if len(node.Children) == 0 && rel != "" {
		return nil
	}
	return node
}

// ReadFile returns a file's content after re-validating that the resolved
// path stays inside the project root. Traversal attempts and blocked paths
// yield ("", false) with no detail. Oversized files return a placeholder.
func (s *Service) ReadFile(project, rel string) (string, bool) {
	root := s.projectRoot(project)
	if root == "" {
		return "", false
	}

	abs := filepath.Clean(filepath.Join(root, filepath.FromSlash(rel)))
	if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return "", false
	}
	for _, part := range strings.Split(filepath.ToSlash(strings.TrimPrefix(abs, root)), "/") {
		if part != "" && blocked(part) {
			return "", false
		}
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(abs))] {
		return "", false
	}

	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", false
	}
	if info.Size() > maxFileBytes {
		return oversizePlaceholder, true
	}

	b, err := os.ReadFile(abs)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Search matches filenames by case-insensitive substring, capped at 50 hits.
func (s *Service) Search(project, query string) []SearchResult {
	root := s.projectRoot(project)
	if root == "" || strings.TrimSpace(query) == "" {
		return []SearchResult{}
	}
	q := strings.ToLower(query)

	results := []SearchResult{}
	errStop := errors.New("stop")
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		if blocked(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !allowedExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}
		if !strings.Contains(strings.ToLower(d.Name()), q) {
			return nil
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		results = append(results, SearchResult{
			Name: d.Name(),
			Path: filepath.ToSlash(relPath),
		})
		if len(results) >= maxSearchResults {
			return errStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		s.log.Warn("search walk failed", "project", project, "err", err)
	}
	return results
}
