// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.ModelCaller,
// and ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embedding, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockCaller := mock.NewMockModelCaller()
//	mockCaller.CallFunc = func(ctx context.Context, req ai.ModelRequest) (*ai.ModelResponse, error) {
//	    return &ai.ModelResponse{Content: "canned reply"}, nil
//	}
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockModelCaller: Echoes the combined user-role content back
//   - MockProvider: Aggregates mock embedder and model caller
package mock
