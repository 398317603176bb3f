package persona

// modelPrice is USD per million tokens.
type modelPrice struct {
	Input  float64
	Output float64
}

var prices = map[string]modelPrice{
	"gpt-4o":            {Input: 2.50, Output: 10.00},
	"gpt-4o-mini":       {Input: 0.15, Output: 0.60},
	"claude-3-5-sonnet": {Input: 3.00, Output: 15.00},
	"claude-3-haiku":    {Input: 0.25, Output: 1.25},
	"gemini-1.5-pro":    {Input: 1.25, Output: 5.00},
	"gemini-1.5-flash":  {Input: 0.075, Output: 0.30},
	"mistral-large":     {Input: 2.00, Output: 6.00},
	"deepseek-chat":     {Input: 0.14, Output: 0.28},
	"command-r-plus":    {Input: 2.50, Output: 10.00},
	"llama-3.1-70b":     {Input: 0.59, Output: 0.79},
	"openrouter/auto":   {Input: 2.00, Output: 8.00},
}

// Unknown models estimate against a mid-range default rather than failing.
var defaultPrice = modelPrice{Input: 2.00, Output: 8.00}

const (
	// chars-per-token approximation used across the app
	charsPerToken = 4
	// assumed response length per model call
	outputTokensPerCall = 800
	synthesisModelID    = "claude-3-5-sonnet"
)

type ModelCost struct {
	ModelID      string  `json:"modelId"`
	InputTokens  int     `json:"inputTokens"`
	OutputTokens int     `json:"outputTokens"`
	CostUSD      float64 `json:"costUsd"`
}

type CostEstimate struct {
	Models       []ModelCost `json:"models"`
	SynthesisUSD float64     `json:"synthesisUsd"`
	TotalUSD     float64     `json:"totalUsd"`
}

func priceFor(modelID string) modelPrice {
	if p, ok := prices[modelID]; ok {
		return p
	}
	return defaultPrice
}

func callCost(p modelPrice, inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*p.Input + float64(outputTokens)*p.Output) / 1_000_000
}

// EstimateWorkshopCost estimates the dollar cost of sending query to each
// model, plus an optional synthesis step that re-reads every model's output.
// Adding a model never decreases the total.
func EstimateWorkshopCost(modelIDs []string, query string, includeSynthesis bool) CostEstimate {
	inputTokens := (len(query) + charsPerToken - 1) / charsPerToken

	est := CostEstimate{Models: []ModelCost{}}
	for _, id := range modelIDs {
		p := priceFor(id)
		mc := ModelCost{
			ModelID:      id,
			InputTokens:  inputTokens,
			OutputTokens: outputTokensPerCall,
			CostUSD:      callCost(p, inputTokens, outputTokensPerCall),
		}
		est.Models = append(est.Models, mc)
		est.TotalUSD += mc.CostUSD
	}

	if includeSynthesis && len(modelIDs) > 0 {
		// synthesis input is the original query plus every model's output
		synthInput := inputTokens + len(modelIDs)*outputTokensPerCall
		est.SynthesisUSD = callCost(priceFor(synthesisModelID), synthInput, outputTokensPerCall)
		est.TotalUSD += est.SynthesisUSD
	}
	return est
}
