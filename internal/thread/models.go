package thread

import "time"

// Iteration is one round of model responses. Payload shape is caller-supplied
// and stored as-is; only id and createdAt are set by the store.
type Iteration map[string]any

type Metadata struct {
	CostTotal   float64 `json:"costTotal"`
	ModelCount  int     `json:"modelCount"`
	WinnerCount int     `json:"winnerCount"`
}

// Thread is one saved multi-model prompt comparison, persisted as a single
// JSON file under <project>/.prompt-lab/threads/<id>.json.
type Thread struct {
	ID            string      `json:"id"`
	Project       string      `json:"project"`
	Title         string      `json:"title"`
	SystemPersona string      `json:"systemPersona"`
	UserTask      string      `json:"userTask"`
	ModelIDs      []string    `json:"modelIds"`
	Iterations    []Iteration `json:"iterations"`
	Metadata      Metadata    `json:"metadata"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// Summary is the listing view. Its aggregates are recomputed from iterations
// at read time; the stored record's metadata is only seeded at creation and
// may lag behind.
type Summary struct {
	ID            string    `json:"id"`
	Project       string    `json:"project"`
	Title         string    `json:"title"`
	SystemPersona string    `json:"systemPersona"`
	ModelIDs      []string  `json:"modelIds"`
	Iterations    int       `json:"iterations"`
	Metadata      Metadata  `json:"metadata"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// summarize derives listing aggregates from the full record. An iteration
// contributes its "cost" number to costTotal and counts toward winnerCount
// when it carries a non-empty "winner".
func summarize(t *Thread) Summary {
	meta := Metadata{ModelCount: len(t.ModelIDs)}
	for _, it := range t.Iterations {
		if c, ok := it["cost"].(float64); ok {
			meta.CostTotal += c
		}
		if w, ok := it["winner"].(string); ok && w != "" {
			meta.WinnerCount++
		}
	}
	return Summary{
		ID:            t.ID,
		Project:       t.Project,
		Title:         t.Title,
		SystemPersona: t.SystemPersona,
		ModelIDs:      t.ModelIDs,
		Iterations:    len(t.Iterations),
		Metadata:      meta,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
