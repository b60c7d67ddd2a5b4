package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wiseowl-server/internal/model"
	"wiseowl-server/internal/repository"
)

// MockSceneRepository is a mock type for the SceneRepository type
type MockSceneRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, scene
func (_m *MockSceneRepository) Create(ctx context.Context, scene model.Scene) (model.Scene, error) {
	ret := _m.Called(ctx, scene)

	var r0 model.Scene
	if rf, ok := ret.Get(0).(func(context.Context, model.Scene) model.Scene); ok {
		r0 = rf(ctx, scene)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(model.Scene)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, model.Scene) error); ok {
		r1 = rf(ctx, scene)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetByNumber provides a mock function with given fields: ctx, topicID, sceneNumber
func (_m *MockSceneRepository) GetByNumber(ctx context.Context, topicID uuid.UUID, sceneNumber int) (model.Scene, error) {
	ret := _m.Called(ctx, topicID, sceneNumber)

	var r0 model.Scene
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, int) model.Scene); ok {
		r0 = rf(ctx, topicID, sceneNumber)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(model.Scene)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, int) error); ok {
		r1 = rf(ctx, topicID, sceneNumber)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListByTopic provides a mock function with given fields: ctx, topicID
func (_m *MockSceneRepository) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]model.Scene, error) {
	ret := _m.Called(ctx, topicID)

	var r0 []model.Scene
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) []model.Scene); ok {
		r0 = rf(ctx, topicID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.Scene)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, topicID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Exists provides a mock function with given fields: ctx, topicID, sceneNumber
func (_m *MockSceneRepository) Exists(ctx context.Context, topicID uuid.UUID, sceneNumber int) (bool, error) {
	ret := _m.Called(ctx, topicID, sceneNumber)

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, int) bool); ok {
		r0 = rf(ctx, topicID, sceneNumber)
	} else {
		r0 = ret.Bool(0)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, int) error); ok {
		r1 = rf(ctx, topicID, sceneNumber)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdateGeneration provides a mock function with given fields: ctx, topicID, sceneNumber, jsonScene, imageURL, status
func (_m *MockSceneRepository) UpdateGeneration(ctx context.Context, topicID uuid.UUID, sceneNumber int, jsonScene json.RawMessage, imageURL *string, status model.GenerationStatus) error {
	ret := _m.Called(ctx, topicID, sceneNumber, jsonScene, imageURL, status)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, int, json.RawMessage, *string, model.GenerationStatus) error); ok {
		r0 = rf(ctx, topicID, sceneNumber, jsonScene, imageURL, status)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockSceneRepository creates a new instance of MockSceneRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockSceneRepository(t interface {
	mock.TestingT
	Helper()
}) *MockSceneRepository {
	m := &MockSceneRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.SceneRepository = (*MockSceneRepository)(nil)
