package classify

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/territory-cli/internal/taxonomy"
	"github.com/sells-group/territory-cli/pkg/anthropic"
)

const llmSystemPrompt = `You are a business classification expert. You must classify each category into the provided taxonomy. Return ONLY a JSON array where each element has the form:
{"category": "...", "sector": "...", "subsector": "...", "confidence": 0.0-1.0}`

const llmMaxTokens = 2048

// BatchClassifier resolves a batch of ambiguous categories externally.
// A nil error with a category missing from the mapping means the external
// call could not classify it; the caller must treat it as unclassified.
// A non-nil error degrades the entire batch — no partial credit.
type BatchClassifier interface {
	ClassifyBatch(ctx context.Context, categories []string) (map[string]Match, error)
}

// LLMClassifier classifies category batches with a single Anthropic message
// per batch, validating every returned item against the taxonomy. Calls are
// rate limited; batches are strictly sequential (the orchestrator never
// issues batch k+1 before k returns).
type LLMClassifier struct {
	client  anthropic.Client
	tax     *taxonomy.Taxonomy
	model   string
	limiter *rate.Limiter
}

// NewLLMClassifier builds the batch classifier. requestsPerMinute caps the
// external call rate; values <= 0 disable limiting.
func NewLLMClassifier(client anthropic.Client, tax *taxonomy.Taxonomy, model string, requestsPerMinute int) *LLMClassifier {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1)
	}
	return &LLMClassifier{
		client:  client,
		tax:     tax,
		model:   model,
		limiter: limiter,
	}
}

// llmItem mirrors one element of the model's JSON array response.
// Confidence is raw JSON because models emit it as a number or a string;
// either parses, and anything else defaults to 0.5.
type llmItem struct {
	Category   string          `json:"category"`
	Sector     string          `json:"sector"`
	Subsector  string          `json:"subsector"`
	Confidence json.RawMessage `json:"confidence"`
}

// ClassifyBatch sends one message covering all categories in the batch and
// returns the validated category → match mapping. Items failing validation
// are silently omitted. Any transport or parse failure fails the whole
// batch.
func (c *LLMClassifier) ClassifyBatch(ctx context.Context, categories []string) (map[string]Match, error) {
	if len(categories) == 0 {
		return map[string]Match{}, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "classify: rate limiter")
	}

	resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     c.model,
		MaxTokens: llmMaxTokens,
		System:    anthropic.BuildCachedSystemBlocks(llmSystemPrompt),
		Messages: []anthropic.Message{
			{Role: "user", Content: c.buildPrompt(categories)},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "classify: llm batch")
	}

	resp.Usage.LogCost(c.model, "classify")

	items, err := parseItems(extractText(resp))
	if err != nil {
		return nil, err
	}

	mapping := make(map[string]Match, len(items))
	for _, item := range items {
		category := strings.TrimSpace(item.Category)
		if category == "" {
			continue
		}
		if !c.tax.Contains(item.Sector, item.Subsector) {
			zap.L().Debug("classify: llm item rejected by taxonomy",
				zap.String("category", category),
				zap.String("sector", item.Sector),
				zap.String("subsector", item.Subsector),
			)
			continue
		}
		mapping[category] = Match{
			Sector:     item.Sector,
			Subsector:  item.Subsector,
			Confidence: parseConfidence(item.Confidence),
		}
	}
	return mapping, nil
}

func (c *LLMClassifier) buildPrompt(categories []string) string {
	encoded, _ := json.Marshal(categories)

	var b strings.Builder
	b.WriteString("Classify the following business categories into the taxonomy.\n\n")
	b.WriteString("The taxonomy is:\n")
	b.WriteString(c.tax.PromptDescription())
	b.WriteString("\n\nCategories (JSON):\n")
	b.Write(encoded)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- sector and subsector must come from the taxonomy.\n")
	b.WriteString("- confidence must be between 0.0 and 1.0.\n")
	b.WriteString("- If you cannot confidently classify a category, use:\n")
	b.WriteString(`  sector = "Other Services", subsector = "Miscellaneous", confidence = 0.5`)
	b.WriteString("\n\nReturn ONLY a JSON array as described.")
	return b.String()
}

// parseItems extracts the JSON array from the model's text output,
// tolerating markdown fences and surrounding prose.
func parseItems(text string) ([]llmItem, error) {
	text = cleanJSONArray(text)

	var items []llmItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, eris.Wrap(err, "classify: parse llm response")
	}
	return items, nil
}

func parseConfidence(raw json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0.5
}

// extractText concatenates the text blocks of a message response.
func extractText(resp *anthropic.MessageResponse) string {
	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "" || block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String()
}

// cleanJSONArray strips markdown code fences and surrounding prose,
// keeping the outermost JSON array.
func cleanJSONArray(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
