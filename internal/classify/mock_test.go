package classify

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/territory-cli/pkg/anthropic"
)

// --- Anthropic Mock ---

type mockAnthropicClient struct {
	mock.Mock
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

// --- Batch Classifier Mock ---

type mockBatchClassifier struct {
	mock.Mock
}

func (m *mockBatchClassifier) ClassifyBatch(ctx context.Context, categories []string) (map[string]Match, error) {
	args := m.Called(ctx, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]Match), args.Error(1)
}
