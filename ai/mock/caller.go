package mock

import (
	"context"

	"github.com/poiesic/rampart/ai"
)

// MockModelCaller is a test double for ai.ModelCaller.
// It allows custom behavior injection via function fields.
type MockModelCaller struct {
	// CallFunc is called by Call if set.
	// If nil, the caller echoes the last user message.
	CallFunc func(ctx context.Context, req ai.ModelRequest) (*ai.ModelResponse, error)

	callCount int
	lastReq   ai.ModelRequest
}

// NewMockModelCaller creates a mock model caller with default echo behavior.
func NewMockModelCaller() *MockModelCaller {
	return &MockModelCaller{}
}

// Call records the request and returns the injected or default response.
func (m *MockModelCaller) Call(ctx context.Context, req ai.ModelRequest) (*ai.ModelResponse, error) {
	m.callCount++
	m.lastReq = req

	if m.CallFunc != nil {
		return m.CallFunc(ctx, req)
	}

	return &ai.ModelResponse{Content: "mock response: " + req.UserContent()}, nil
}

// CallCount returns the number of times Call was invoked.
func (m *MockModelCaller) CallCount() int {
	return m.callCount
}

// LastRequest returns the most recent request passed to Call.
func (m *MockModelCaller) LastRequest() ai.ModelRequest {
	return m.lastReq
}

// Reset clears the call count and injected behavior.
func (m *MockModelCaller) Reset() {
	m.callCount = 0
	m.lastReq = ai.ModelRequest{}
	m.CallFunc = nil
}
