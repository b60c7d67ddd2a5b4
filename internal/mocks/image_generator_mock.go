package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"wiseowl-server/internal/bria"
	"wiseowl-server/internal/service"
)

// MockImageGenerator is a mock type for the ImageGenerator type
type MockImageGenerator struct {
	mock.Mock
}

// TranslateToScene provides a mock function with given fields: ctx, text, mode
func (_m *MockImageGenerator) TranslateToScene(ctx context.Context, text string, mode bria.Mode) json.RawMessage {
	ret := _m.Called(ctx, text, mode)

	var r0 json.RawMessage
	if rf, ok := ret.Get(0).(func(context.Context, string, bria.Mode) json.RawMessage); ok {
		r0 = rf(ctx, text, mode)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(json.RawMessage)
		}
	}

	return r0
}

// GenerateImage provides a mock function with given fields: ctx, jsonScene, prompt
func (_m *MockImageGenerator) GenerateImage(ctx context.Context, jsonScene json.RawMessage, prompt string) (string, error) {
	ret := _m.Called(ctx, jsonScene, prompt)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, json.RawMessage, string) string); ok {
		r0 = rf(ctx, jsonScene, prompt)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, json.RawMessage, string) error); ok {
		r1 = rf(ctx, jsonScene, prompt)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockImageGenerator creates a new instance of MockImageGenerator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockImageGenerator(t interface {
	mock.TestingT
	Helper()
}) *MockImageGenerator {
	m := &MockImageGenerator{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.ImageGenerator = (*MockImageGenerator)(nil)
