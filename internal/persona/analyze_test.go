package persona

import "testing"

func TestAnalyzeTechnicalQuery(t *testing.T) {
	a := AnalyzeQuery("How should I refactor the database schema for our API backend?")

	found := false
	for _, c := range a.Categories {
		if c.Category == "technical" {
			found = true
			if c.Score <= 0 {
				t.Fatalf("technical score must be positive, got %v", c.Score)
			}
		}
	}
	if !found {
		t.Fatalf("expected technical category, got %v", a.Categories)
	}
	if len(a.SuggestedPersonas) == 0 || len(a.SuggestedPersonas) > 3 {
		t.Fatalf("expected 1-3 suggestions, got %v", a.SuggestedPersonas)
	}
	if a.Urgency != "normal" {
		t.Fatalf("expected normal urgency, got %q", a.Urgency)
	}
}

func TestAnalyzeUrgency(t *testing.T) {
	a := AnalyzeQuery("URGENT: the deploy is broken, need a fix asap")
	if a.Urgency != "urgent" {
		t.Fatalf("expected urgent, got %q", a.Urgency)
	}
}

func TestAnalyzeEmptyFallsBack(t *testing.T) {
	a := AnalyzeQuery("")
	if len(a.SuggestedPersonas) != 1 || a.SuggestedPersonas[0] != defaultPersonaID {
		t.Fatalf("expected fallback persona, got %v", a.SuggestedPersonas)
	}
	if a.Complexity != "simple" {
		t.Fatalf("expected simple complexity, got %q", a.Complexity)
	}
}

func TestAnalyzeConfidenceBounds(t *testing.T) {
	long := ""
	for i := 0; i < 300; i++ {
		long += "analyze the security of the api database architecture market strategy story "
	}
	a := AnalyzeQuery(long)
	if a.Confidence > 0.95 {
		t.Fatalf("confidence must cap at 0.95, got %v", a.Confidence)
	}
	if a.Complexity != "complex" {
		t.Fatalf("expected complex, got %q", a.Complexity)
	}

	b := AnalyzeQuery("hello there")
	if b.Confidence < 0 || b.Confidence >= a.Confidence {
		t.Fatalf("confidence ordering broken: %v vs %v", b.Confidence, a.Confidence)
	}
}

func TestLookupFallsBack(t *testing.T) {
	p := Lookup("does-not-exist")
	if p.ID != defaultPersonaID {
		t.Fatalf("expected fallback persona, got %q", p.ID)
	}
	if Lookup("critic").ID != "critic" {
		t.Fatalf("known persona lookup failed")
	}
}

func TestTemplateLookupFallsBack(t *testing.T) {
	tmpl := LookupTemplate("nope")
	if tmpl.ID != defaultTemplateID {
		t.Fatalf("expected fallback template, got %q", tmpl.ID)
	}
	if len(AllTemplates()) == 0 {
		t.Fatalf("expected templates")
	}
}

func TestPersonaTableConsistency(t *testing.T) {
	ids := map[string]bool{}
	for _, p := range All() {
		ids[p.ID] = true
	}
	for _, p := range All() {
		for _, ref := range append(append([]string{}, p.PairsWellWith...), p.Conflicts...) {
			if !ids[ref] {
				t.Fatalf("persona %q references unknown persona %q", p.ID, ref)
			}
		}
	}
	for _, tmpl := range AllTemplates() {
		for _, slot := range tmpl.Slots {
			if !ids[slot.PersonaID] {
				t.Fatalf("template %q references unknown persona %q", tmpl.ID, slot.PersonaID)
			}
		}
	}
}
