package persona

import (
	"regexp"
	"sort"
	"strings"
)

type category struct {
	name     string
	weight   float64
	patterns []*regexp.Regexp
	personas []string
}

func rx(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+e))
	}
	return out
}

var categories = []category{
	{
		name:   "technical",
		weight: 1.0,
		patterns: rx(
			`\b(api|database|schema|deploy|kubernetes|docker|latency|bug|refactor)\b`,
			`\b(architecture|microservice|scal(e|ing|ability)|backend|frontend)\b`,
			`\bcode\b`,
		),
		personas: []string{"architect", "pragmatist", "security-auditor"},
	},
	{
		name:   "security",
		weight: 1.2,
		patterns: rx(
			`\b(security|vulnerab|exploit|auth(entication|orization)?|encryption)\b`,
			`\b(pentest|injection|xss|csrf|leak)\b`,
		),
		personas: []string{"security-auditor", "critic"},
	},
	{
		name:   "business",
		weight: 0.9,
		patterns: rx(
			`\b(revenue|pricing|market|customer|growth|strategy|roi|churn)\b`,
			`\b(pitch|investor|funding|go.to.market)\b`,
		),
		personas: []string{"optimist", "critic", "pragmatist"},
	},
	{
		name:   "creative",
		weight: 0.8,
		patterns: rx(
			`\b(story|narrative|blog|copy|headline|brand|tone|creative)\b`,
			`\bwrite\b.*\b(post|article|script)\b`,
		),
		personas: []string{"storyteller", "optimist"},
	},
	{
		name:   "analysis",
		weight: 1.0,
		patterns: rx(
			`\b(analy(ze|sis)|compare|evaluate|assess|trade.?offs?|pros and cons)\b`,
			`\b(data|metric|benchmark|evidence)\b`,
		),
		personas: []string{"researcher", "critic"},
	},
	{
		name:   "explanation",
		weight: 0.8,
		patterns: rx(
			`\b(explain|teach|understand|beginner|learn|walk.?through|how does)\b`,
		),
		personas: []string{"teacher", "generalist"},
	},
}

var (
	urgentPattern  = regexp.MustCompile(`(?i)\b(urgent|asap|immediately|today|right now|deadline|emergency)\b`)
	complexPattern = regexp.MustCompile(`(?i)\b(end.to.end|migration|multi|distributed|enterprise|compliance|integrat)\b`)
)

type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

type Analysis struct {
	Categories        []CategoryScore `json:"categories"`
	SuggestedPersonas []string        `json:"suggestedPersonas"`
	Urgency           string          `json:"urgency"`    // normal or urgent
	Complexity        string          `json:"complexity"` // simple, moderate, complex
	Confidence        float64         `json:"confidence"`
}

// AnalyzeQuery scores a free-text query against the keyword categories and
// derives persona suggestions plus urgency/complexity/confidence heuristics.
// It is a pure function over static tables.
func AnalyzeQuery(text string) Analysis {
	words := len(strings.Fields(text))

	scores := []CategoryScore{}
	personaScore := map[string]float64{}
	for _, cat := range categories {
		var hits int
		for _, p := range cat.patterns {
			hits += len(p.FindAllString(text, -1))
		}
		if hits == 0 {
			continue
		}
		score := float64(hits) * cat.weight
		scores = append(scores, CategoryScore{Category: cat.name, Score: score})
		for _, id := range cat.personas {
			personaScore[id] += score
		}
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Category < scores[j].Category
	})

	suggested := make([]string, 0, len(personaScore))
	for id := range personaScore {
		suggested = append(suggested, id)
	}
	sort.Slice(suggested, func(i, j int) bool {
		if personaScore[suggested[i]] != personaScore[suggested[j]] {
			return personaScore[suggested[i]] > personaScore[suggested[j]]
		}
		return suggested[i] < suggested[j]
	})
	if len(suggested) > 3 {
		suggested = suggested[:3]
	}
	if len(suggested) == 0 {
		suggested = []string{defaultPersonaID}
	}

	urgency := "normal"
	if urgentPattern.MatchString(text) {
		urgency = "urgent"
	}

	complexity := "simple"
	switch {
	case complexPattern.MatchString(text) || len(scores) >= 3:
		complexity = "complex"
	case words > 30 || len(scores) == 2:
		complexity = "moderate"
	}

	// Naive confidence: more matched categories and more words to go on
	// mean a stronger recommendation, capped well below certainty.
	confidence := 0.3 + 0.15*float64(len(scores)) + 0.002*float64(words)
	if confidence > 0.95 {
		confidence = 0.95
	}

	return Analysis{
		Categories:        scores,
		SuggestedPersonas: suggested,
		Urgency:           urgency,
		Complexity:        complexity,
		Confidence:        confidence,
	}
}
