package thread

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/promptlab/promptlab/internal/common"
	"github.com/promptlab/promptlab/internal/logger"
)

var ErrNotFound = errors.New("thread not found")

const threadDir = ".prompt-lab/threads"

// Thread ids double as filenames, so reject anything that could escape the
// thread directory.
var idPattern = regexp.MustCompile(`^thread_\d+_[0-9a-f]{6}$`)

// Store persists one JSON file per thread. Writes are read-modify-write with
// no locking; concurrent writers to the same id are last-write-wins. That is
// acceptable for a single user in a single tab and nothing more.
type Store struct {
	root string
	log  *logger.Logger
}

func NewStore(workspaceRoot string, log *logger.Logger) *Store {
	return &Store{root: workspaceRoot, log: log}
}

func (s *Store) dir(project string) string {
	return filepath.Join(s.root, project, filepath.FromSlash(threadDir))
}

func (s *Store) path(project, id string) string {
	return filepath.Join(s.dir(project), id+".json")
}

func (s *Store) write(t *Thread) error {
	if err := os.MkdirAll(s.dir(t.Project), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(t.Project, t.ID), b, 0o644)
}

type CreateInput struct {
	Title         string   `json:"title"`
	SystemPersona string   `json:"systemPersona"`
	UserTask      string   `json:"userTask"`
	ModelIDs      []string `json:"modelIds"`
}

func (s *Store) Create(project string, in CreateInput) (*Thread, error) {
	id, err := common.NewStampedID("thread")
	if err != nil {
		return nil, err
	}
	if in.ModelIDs == nil {
		in.ModelIDs = []string{}
	}
	now := time.Now().UTC()
	t := &Thread{
		ID:            id,
		Project:       project,
		Title:         in.Title,
		SystemPersona: in.SystemPersona,
		UserTask:      in.UserTask,
		ModelIDs:      in.ModelIDs,
		Iterations:    []Iteration{},
		Metadata:      Metadata{ModelCount: len(in.ModelIDs)},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.write(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns nil, nil when the thread does not exist.
func (s *Store) Get(project, id string) (*Thread, error) {
	if !idPattern.MatchString(id) {
		return nil, nil
	}
	b, err := os.ReadFile(s.path(project, id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var t Thread
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns thread summaries sorted by updatedAt descending. A corrupt
// file is skipped and logged; it must never fail the whole listing.
func (s *Store) List(project string) ([]Summary, error) {
	entries, err := os.ReadDir(s.dir(project))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Summary{}, nil
		}
		return nil, err
	}

	summaries := []Summary{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		b, err := os.ReadFile(filepath.Join(s.dir(project), e.Name()))
		if err != nil {
			s.log.Warn("skipping unreadable thread file", "project", project, "file", e.Name(), "err", err)
			continue
		}
		var t Thread
		if err := json.Unmarshal(b, &t); err != nil {
			s.log.Warn("skipping corrupt thread file", "project", project, "file", e.Name(), "err", err)
			continue
		}
		summaries = append(summaries, summarize(&t))
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

// Update merges the supplied fields over the stored object. id and project
// are preserved no matter what the caller sends; updatedAt is rewritten.
func (s *Store) Update(project, id string, fields map[string]any) (*Thread, error) {
	existing, err := s.Get(project, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	raw := map[string]any{}
	b, err := json.Marshal(existing)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}

	for k, v := range fields {
		if k == "id" || k == "project" {
			continue
		}
		raw[k] = v
	}
	raw["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)

	merged, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var t Thread
	if err := json.Unmarshal(merged, &t); err != nil {
		return nil, err
	}
	if err := s.write(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// AddIteration appends a caller-supplied payload. The store sets id and
// createdAt and validates nothing else about the shape.
func (s *Store) AddIteration(project, id string, payload Iteration) (Iteration, error) {
	t, err := s.Get(project, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}

	iterID, err := common.NewStampedID("iter")
	if err != nil {
		return nil, err
	}
	it := Iteration{}
	for k, v := range payload {
		it[k] = v
	}
	it["id"] = iterID
	it["createdAt"] = time.Now().UTC().Format(time.RFC3339Nano)

	t.Iterations = append(t.Iterations, it)
	t.UpdatedAt = time.Now().UTC()
	if err := s.write(t); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *Store) Delete(project, id string) error {
	if !idPattern.MatchString(id) {
		return ErrNotFound
	}
	err := os.Remove(s.path(project, id))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}
