package classify

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sells-group/territory-cli/internal/taxonomy"
	"github.com/sells-group/territory-cli/pkg/anthropic"
)

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}

func TestLLMClassifyBatch_Success(t *testing.T) {
	mockClient := new(mockAnthropicClient)
	mockClient.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`[
			{"category": "vape lounge", "sector": "Retail", "subsector": "Specialty Retail", "confidence": 0.85},
			{"category": "dog grooming", "sector": "Personal Services", "subsector": "Pet Services", "confidence": 0.9}
		]`), nil)

	classifier := NewLLMClassifier(mockClient, taxonomy.Default(), "claude-haiku-4-5-20251001", 0)
	mapping, err := classifier.ClassifyBatch(context.Background(), []string{"vape lounge", "dog grooming"})
	assert.NoError(t, err)
	assert.Len(t, mapping, 2)
	assert.Equal(t, "Specialty Retail", mapping["vape lounge"].Subsector)
	assert.Equal(t, 0.85, mapping["vape lounge"].Confidence)
	assert.Equal(t, "Pet Services", mapping["dog grooming"].Subsector)
	mockClient.AssertExpectations(t)
}

func TestLLMClassifyBatch_MarkdownFences(t *testing.T) {
	mockClient := new(mockAnthropicClient)
	mockClient.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse("```json\n[{\"category\": \"vape lounge\", \"sector\": \"Retail\", \"subsector\": \"Specialty Retail\", \"confidence\": 0.8}]\n```"), nil)

	classifier := NewLLMClassifier(mockClient, taxonomy.Default(), "claude-haiku-4-5-20251001", 0)
	mapping, err := classifier.ClassifyBatch(context.Background(), []string{"vape lounge"})
	assert.NoError(t, err)
	assert.Equal(t, "Retail", mapping["vape lounge"].Sector)
}

func TestLLMClassifyBatch_SurroundingProse(t *testing.T) {
	mockClient := new(mockAnthropicClient)
	mockClient.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`Here is the classification:
[{"category": "vape lounge", "sector": "Retail", "subsector": "Specialty Retail", "confidence": 0.8}]
Let me know if you need anything else.`), nil)

	classifier := NewLLMClassifier(mockClient, taxonomy.Default(), "claude-haiku-4-5-20251001", 0)
	mapping, err := classifier.ClassifyBatch(context.Background(), []string{"vape lounge"})
	assert.NoError(t, err)
	assert.Len(t, mapping, 1)
}

func TestLLMClassifyBatch_InvalidTaxonomyPairOmitted(t *testing.T) {
	mockClient := new(mockAnthropicClient)
	mockClient.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`[
			{"category": "vape lounge", "sector": "Retail", "subsector": "Not A Real Subsector", "confidence": 0.8},
			{"category": "dog grooming", "sector": "Personal Services", "subsector": "Pet Services", "confidence": 0.9}
		]`), nil)

	classifier := NewLLMClassifier(mockClient, taxonomy.Default(), "claude-haiku-4-5-20251001", 0)
	mapping, err := classifier.ClassifyBatch(context.Background(), []string{"vape lounge", "dog grooming"})
	assert.NoError(t, err)
	assert.Len(t, mapping, 1)
	assert.NotContains(t, mapping, "vape lounge")
	assert.Contains(t, mapping, "dog grooming")
}

func TestLLMClassifyBatch_EmptyCategoryOmitted(t *testing.T) {
	mockClient := new(mockAnthropicClient)
	mockClient.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`[{"category": "  ", "sector": "Retail", "subsector": "Specialty Retail", "confidence": 0.8}]`), nil)

	classifier := NewLLMClassifier(mockClient, taxonomy.Default(), "claude-haiku-4-5-20251001", 0)
	mapping, err := classifier.ClassifyBatch(context.Background(), []string{"something"})
	assert.NoError(t, err)
	assert.Empty(t, mapping)
}

func TestLLMClassifyBatch_StringConfidence(t *testing.T) {
	mockClient := new(mockAnthropicClient)
	mockClient.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`[
			{"category": "a", "sector": "Retail", "subsector": "Specialty Retail", "confidence": "0.75"},
			{"category": "b", "sector": "Retail", "subsector": "Specialty Retail", "confidence": "not a number"},
			{"category": "c", "sector": "Retail", "subsector": "Specialty Retail"}
		]`), nil)

	classifier := NewLLMClassifier(mockClient, taxonomy.Default(), "claude-haiku-4-5-20251001", 0)
	mapping, err := classifier.ClassifyBatch(context.Background(), []string{"a", "b", "c"})
	assert.NoError(t, err)
	assert.Equal(t, 0.75, mapping["a"].Confidence)
	assert.Equal(t, 0.5, mapping["b"].Confidence)
	assert.Equal(t, 0.5, mapping["c"].Confidence)
}

func TestLLMClassifyBatch_TransportError(t *testing.T) {
	mockClient := new(mockAnthropicClient)
	mockClient.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, eris.New("api: overloaded"))

	classifier := NewLLMClassifier(mockClient, taxonomy.Default(), "claude-haiku-4-5-20251001", 0)
	_, err := classifier.ClassifyBatch(context.Background(), []string{"vape lounge"})
	assert.Error(t, err)
}

func TestLLMClassifyBatch_MalformedJSON(t *testing.T) {
	mockClient := new(mockAnthropicClient)
	mockClient.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`I could not produce valid output.`), nil)

	classifier := NewLLMClassifier(mockClient, taxonomy.Default(), "claude-haiku-4-5-20251001", 0)
	_, err := classifier.ClassifyBatch(context.Background(), []string{"vape lounge"})
	assert.Error(t, err)
}

func TestLLMClassifyBatch_EmptyInput(t *testing.T) {
	mockClient := new(mockAnthropicClient)

	classifier := NewLLMClassifier(mockClient, taxonomy.Default(), "claude-haiku-4-5-20251001", 0)
	mapping, err := classifier.ClassifyBatch(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, mapping)
	mockClient.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestLLMClassifyBatch_PromptCarriesTaxonomyAndCategories(t *testing.T) {
	var captured anthropic.MessageRequest
	mockClient := new(mockAnthropicClient)
	mockClient.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		captured = req
		return true
	})).Return(textResponse(`[]`), nil)

	classifier := NewLLMClassifier(mockClient, taxonomy.Default(), "claude-haiku-4-5-20251001", 0)
	_, err := classifier.ClassifyBatch(context.Background(), []string{"vape lounge"})
	assert.NoError(t, err)

	assert.NotEmpty(t, captured.System)
	assert.NotNil(t, captured.System[len(captured.System)-1].CacheControl)
	assert.Len(t, captured.Messages, 1)
	assert.Contains(t, captured.Messages[0].Content, "Food & Beverage")
	assert.Contains(t, captured.Messages[0].Content, `"vape lounge"`)
}

func TestCleanJSONArray(t *testing.T) {
	assert.Equal(t, `[1,2]`, cleanJSONArray("```json\n[1,2]\n```"))
	assert.Equal(t, `[1,2]`, cleanJSONArray("```\n[1,2]\n```"))
	assert.Equal(t, `[{"a":"b"}]`, cleanJSONArray(`prefix [{"a":"b"}] suffix`))
	assert.Equal(t, `[]`, cleanJSONArray("[]"))
}
