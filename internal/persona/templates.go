package persona

// TemplateSlot pairs a persona with the model recommended to play it.
type TemplateSlot struct {
	PersonaID string `json:"personaId"`
	ModelID   string `json:"modelId"`
}

// Template is a canned workshop setup for an industry or task family,
// including how the individual outputs should be combined.
type Template struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Slots         []TemplateSlot `json:"slots"`
	SynthesisMode string         `json:"synthesisMode"` // consensus, debate, merge, best-of
}

const defaultTemplateID = "balanced-review"

var templates = map[string]Template{
	"balanced-review": {
		ID:          "balanced-review",
		Name:        "Balanced Review",
		Description: "A generalist answer challenged by a critic, merged into one take.",
		Slots: []TemplateSlot{
			{PersonaID: "generalist", ModelID: "claude-3-5-sonnet"},
			{PersonaID: "critic", ModelID: "gpt-4o"},
		},
		SynthesisMode: "merge",
	},
	"architecture-board": {
		ID:          "architecture-board",
		Name:        "Architecture Board",
		Description: "Design review with architect, security auditor and pragmatist seats.",
		Slots: []TemplateSlot{
			{PersonaID: "architect", ModelID: "claude-3-5-sonnet"},
			{PersonaID: "security-auditor", ModelID: "gpt-4o"},
			{PersonaID: "pragmatist", ModelID: "deepseek-chat"},
		},
		SynthesisMode: "consensus",
	},
	"startup-pitch": {
		ID:          "startup-pitch",
		Name:        "Startup Pitch Clinic",
		Description: "Optimist and critic argue the case; the debate is the output.",
		Slots: []TemplateSlot{
			{PersonaID: "optimist", ModelID: "gpt-4o"},
			{PersonaID: "critic", ModelID: "claude-3-5-sonnet"},
		},
		SynthesisMode: "debate",
	},
	"research-brief": {
		ID:          "research-brief",
		Name:        "Research Brief",
		Description: "Two analysts on different models, best answer wins.",
		Slots: []TemplateSlot{
			{PersonaID: "researcher", ModelID: "gemini-1.5-pro"},
			{PersonaID: "researcher", ModelID: "command-r-plus"},
		},
		SynthesisMode: "best-of",
	},
	"content-studio": {
		ID:          "content-studio",
		Name:        "Content Studio",
		Description: "Storyteller drafts, teacher makes it land, merged at the end.",
		Slots: []TemplateSlot{
			{PersonaID: "storyteller", ModelID: "gpt-4o"},
			{PersonaID: "teacher", ModelID: "mistral-large"},
		},
		SynthesisMode: "merge",
	},
}

// LookupTemplate falls back to the balanced review for unknown ids.
func LookupTemplate(id string) Template {
	if t, ok := templates[id]; ok {
		return t
	}
	return templates[defaultTemplateID]
}

func AllTemplates() []Template {
	ids := []string{
		"balanced-review", "architecture-board", "startup-pitch",
		"research-brief", "content-studio",
	}
	out := make([]Template, 0, len(ids))
	for _, id := range ids {
		out = append(out, templates[id])
	}
	return out
}
