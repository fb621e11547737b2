package classify

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/territory-cli/internal/model"
)

// Standardizer orchestrates the hybrid classification of the unique
// category set: rules first, capped LLM batches for the ambiguous
// remainder, default fallback for everything left.
type Standardizer struct {
	rules *Rules
	// llm is nil when no API credential is configured; every ambiguous
	// category then falls through to the default classification.
	llm              BatchClassifier
	maxLLMCategories int
	batchSize        int
}

// NewStandardizer wires the orchestrator. Pass a nil llm to disable the
// external classifier. batchSize is floored at 1.
func NewStandardizer(rules *Rules, llm BatchClassifier, maxLLMCategories, batchSize int) *Standardizer {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Standardizer{
		rules:            rules,
		llm:              llm,
		maxLLMCategories: maxLLMCategories,
		batchSize:        batchSize,
	}
}

// ClassifyUnique classifies every distinct category value once and returns
// one Classification per unique input. Dedup preserves first-seen order;
// empty categories are treated as the literal "Unknown". The result always
// covers every unique input — never partially populated.
func (s *Standardizer) ClassifyUnique(ctx context.Context, categories []string) map[string]model.Classification {
	unique := dedupe(categories)
	mappings := make(map[string]model.Classification, len(unique))

	// First pass: rules.
	var ambiguous []string
	for _, category := range unique {
		match, ok := s.rules.Classify(category)
		if !ok {
			ambiguous = append(ambiguous, category)
			continue
		}
		mappings[category] = model.Classification{
			OriginalCategory: category,
			Sector:           match.Sector,
			Subsector:        match.Subsector,
			Confidence:       match.Confidence,
			Method:           model.MethodRuleBased,
		}
	}

	zap.L().Info("classify: rule pass complete",
		zap.Int("unique_categories", len(unique)),
		zap.Int("rule_based", len(mappings)),
		zap.Int("ambiguous", len(ambiguous)),
	)

	if s.llm == nil || s.maxLLMCategories <= 0 {
		for _, category := range ambiguous {
			mappings[category] = model.Unclassified(category)
		}
		return mappings
	}

	// Cost cap: categories beyond the ceiling never reach the LLM.
	targets := ambiguous
	if len(targets) > s.maxLLMCategories {
		targets = targets[:s.maxLLMCategories]
		skipped := ambiguous[s.maxLLMCategories:]
		zap.L().Info("classify: llm cap reached, skipping remainder",
			zap.Int("cap", s.maxLLMCategories),
			zap.Int("skipped", len(skipped)),
		)
		for _, category := range skipped {
			mappings[category] = model.Unclassified(category)
		}
	}

	// Fixed-size windows, strictly sequential. A failed window degrades
	// all its members to unclassified and never blocks later windows.
	for start := 0; start < len(targets); start += s.batchSize {
		end := min(start+s.batchSize, len(targets))
		batch := targets[start:end]

		results, err := s.llm.ClassifyBatch(ctx, batch)
		if err != nil {
			zap.L().Warn("classify: llm batch failed, degrading to unclassified",
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)),
				zap.Error(err),
			)
			results = nil
		}

		for _, category := range batch {
			match, ok := results[category]
			if !ok {
				mappings[category] = model.Unclassified(category)
				continue
			}
			mappings[category] = model.Classification{
				OriginalCategory: category,
				Sector:           match.Sector,
				Subsector:        match.Subsector,
				Confidence:       match.Confidence,
				Method:           model.MethodLLM,
			}
		}
	}

	return mappings
}

// dedupe keeps the first occurrence of each category, mapping empty values
// to "Unknown" before deduplication.
func dedupe(categories []string) []string {
	seen := make(map[string]bool, len(categories))
	var unique []string
	for _, category := range categories {
		if category == "" {
			category = "Unknown"
		}
		if seen[category] {
			continue
		}
		seen[category] = true
		unique = append(unique, category)
	}
	return unique
}
