package main

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/territory-cli/internal/classify"
	"github.com/sells-group/territory-cli/internal/fetcher"
	"github.com/sells-group/territory-cli/internal/model"
	"github.com/sells-group/territory-cli/internal/normalize"
	"github.com/sells-group/territory-cli/internal/taxonomy"
	"github.com/sells-group/territory-cli/pkg/anthropic"
)

var (
	standardizeInput  string
	standardizeOutput string
	standardizeReport string
)

// mappingReport is the report file written alongside the standardized data.
type mappingReport struct {
	RunID                string                          `json:"run_id"`
	GeneratedAt          time.Time                       `json:"generated_at"`
	Summary              reportSummary                   `json:"summary"`
	ClassificationReport classify.Report                 `json:"classification_report"`
	QualityReport        normalize.QualityReport         `json:"quality_report"`
	DetailedMappings     map[string]model.Classification `json:"detailed_mappings"`
}

type reportSummary struct {
	TotalRecords      int `json:"total_records"`
	UniqueCategories  int `json:"unique_categories"`
	DataQualityIssues int `json:"data_quality_issues"`
}

var standardizeCmd = &cobra.Command{
	Use:   "standardize",
	Short: "Clean records and standardize business categories",
	Long: `Reads raw business listings, validates and normalizes every record,
classifies each distinct category into the canonical taxonomy (rule-based
matching first, batched LLM fallback for ambiguous categories), and writes
the standardized records plus a mapping/quality report.

Records are never dropped: malformed fields degrade to nulls or defaults
and are tallied in the quality report.

Examples:
  # Rules only (no API key configured)
  territory-cli standardize --input businesses.json

  # With LLM fallback
  TERRITORY_ANTHROPIC_KEY=sk-... territory-cli standardize --input businesses.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		records, err := fetcher.LoadRawRecords(standardizeInput)
		if err != nil {
			return eris.Wrap(err, "standardize: load input")
		}
		if len(records) == 0 {
			return eris.New("standardize: no records loaded")
		}

		tax, err := loadTaxonomy()
		if err != nil {
			return err
		}

		// First pass: validate and normalize every record in input order.
		normalizer := normalize.New()
		normalized := make([]model.NormalizedRecord, 0, len(records))
		for i, raw := range records {
			if i > 0 && i%1000 == 0 {
				zap.L().Info("standardize: normalizing", zap.Int("done", i), zap.Int("total", len(records)))
			}
			normalized = append(normalized, normalizer.Normalize(raw, i))
		}

		categories := make([]string, len(normalized))
		for i, rec := range normalized {
			categories[i] = rec.Category
		}
		logCategoryDistribution(categories)

		// Classify once per distinct category.
		standardizer := classify.NewStandardizer(
			classify.NewRules(tax),
			buildLLMClassifier(tax),
			cfg.Classify.MaxLLMCategories,
			cfg.Classify.LLMBatchSize,
		)
		mappings := standardizer.ClassifyUnique(ctx, categories)

		// Second pass: attach the shared classification to every record.
		standardized := make([]model.StandardizedRecord, len(normalized))
		for i, rec := range normalized {
			c, ok := mappings[rec.Category]
			if !ok {
				c = model.Unclassified(rec.Category)
			}
			standardized[i] = model.Standardize(rec, c)
		}

		if err := fetcher.WriteJSON(standardizeOutput, standardized); err != nil {
			return eris.Wrap(err, "standardize: write output")
		}

		quality := normalizer.Report()
		report := mappingReport{
			RunID:       uuid.NewString(),
			GeneratedAt: time.Now().UTC(),
			Summary: reportSummary{
				TotalRecords:      len(standardized),
				UniqueCategories:  len(mappings),
				DataQualityIssues: quality.TotalIssues,
			},
			ClassificationReport: classify.BuildReport(mappings),
			QualityReport:        quality,
			DetailedMappings:     mappings,
		}

		reportPath := standardizeReport
		if reportPath == "" {
			reportPath = strings.TrimSuffix(standardizeOutput, ".json") + "_mapping_report.json"
		}
		if err := fetcher.WriteJSON(reportPath, report); err != nil {
			return eris.Wrap(err, "standardize: write report")
		}

		zap.L().Info("standardize: complete",
			zap.Int("records", len(standardized)),
			zap.Int("unique_categories", len(mappings)),
			zap.Int("rule_based", report.ClassificationReport.Methods.RuleBased),
			zap.Int("llm", report.ClassificationReport.Methods.LLM),
			zap.Int("unclassified", report.ClassificationReport.Methods.Unclassified),
			zap.Int("quality_issues", quality.TotalIssues),
			zap.String("output", standardizeOutput),
			zap.String("report", reportPath),
		)
		return nil
	},
}

func init() {
	standardizeCmd.Flags().StringVar(&standardizeInput, "input", "", "path to raw business JSON (required)")
	standardizeCmd.Flags().StringVar(&standardizeOutput, "output", "businesses_standardized.json", "standardized records output path")
	standardizeCmd.Flags().StringVar(&standardizeReport, "report", "", "mapping report path (default: <output>_mapping_report.json)")
	_ = standardizeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(standardizeCmd)
}

// loadTaxonomy returns the configured taxonomy file or the built-in default.
func loadTaxonomy() (*taxonomy.Taxonomy, error) {
	if cfg.Taxonomy.Path == "" {
		return taxonomy.Default(), nil
	}
	tax, err := taxonomy.LoadFile(cfg.Taxonomy.Path)
	if err != nil {
		return nil, eris.Wrap(err, "standardize: load taxonomy")
	}
	zap.L().Info("standardize: using taxonomy override", zap.String("path", cfg.Taxonomy.Path))
	return tax, nil
}

// buildLLMClassifier returns nil when no API key is configured; the
// standardizer then routes every ambiguous category to the default bucket.
func buildLLMClassifier(tax *taxonomy.Taxonomy) classify.BatchClassifier {
	if cfg.Anthropic.Key == "" {
		zap.L().Warn("standardize: no anthropic key configured, llm classification disabled")
		return nil
	}
	return classify.NewLLMClassifier(
		anthropic.NewClient(cfg.Anthropic.Key),
		tax,
		cfg.Anthropic.Model,
		cfg.Classify.LLMRequestsPerMinute,
	)
}

// logCategoryDistribution logs diagnostics about the raw category spread
// before classification starts.
func logCategoryDistribution(categories []string) {
	counts := make(map[string]int)
	for _, c := range categories {
		counts[c]++
	}

	type catCount struct {
		name  string
		count int
	}
	top := make([]catCount, 0, len(counts))
	for name, count := range counts {
		top = append(top, catCount{name, count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].count != top[j].count {
			return top[i].count > top[j].count
		}
		return top[i].name < top[j].name
	})
	if len(top) > 10 {
		top = top[:10]
	}

	fields := []zap.Field{zap.Int("unique_categories", len(counts))}
	for _, t := range top {
		fields = append(fields, zap.Int(t.name, t.count))
	}
	zap.L().Info("standardize: category distribution", fields...)
}
