package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wiseowl-server/internal/model"
	"wiseowl-server/internal/service"
)

// MockNarrativeGenerator is a mock type for the NarrativeGenerator type
type MockNarrativeGenerator struct {
	mock.Mock
}

// GenerateScenes provides a mock function with given fields: ctx, topic, subjectType
func (_m *MockNarrativeGenerator) GenerateScenes(ctx context.Context, topic string, subjectType model.SubjectType) model.ScenesData {
	ret := _m.Called(ctx, topic, subjectType)

	var r0 model.ScenesData
	if rf, ok := ret.Get(0).(func(context.Context, string, model.SubjectType) model.ScenesData); ok {
		r0 = rf(ctx, topic, subjectType)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(model.ScenesData)
		}
	}

	return r0
}

// GenerateQuiz provides a mock function with given fields: ctx, topic, sceneDescription, sceneNumber
func (_m *MockNarrativeGenerator) GenerateQuiz(ctx context.Context, topic string, sceneDescription string, sceneNumber int) model.QuizData {
	ret := _m.Called(ctx, topic, sceneDescription, sceneNumber)

	var r0 model.QuizData
	if rf, ok := ret.Get(0).(func(context.Context, string, string, int) model.QuizData); ok {
		r0 = rf(ctx, topic, sceneDescription, sceneNumber)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(model.QuizData)
		}
	}

	return r0
}

// Chat provides a mock function with given fields: ctx, message, chatContext
func (_m *MockNarrativeGenerator) Chat(ctx context.Context, message string, chatContext string) string {
	ret := _m.Called(ctx, message, chatContext)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string, string) string); ok {
		r0 = rf(ctx, message, chatContext)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	return r0
}

// NewMockNarrativeGenerator creates a new instance of MockNarrativeGenerator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockNarrativeGenerator(t interface {
	mock.TestingT
	Helper()
}) *MockNarrativeGenerator {
	m := &MockNarrativeGenerator{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.NarrativeGenerator = (*MockNarrativeGenerator)(nil)
