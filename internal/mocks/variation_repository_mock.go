package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wiseowl-server/internal/model"
	"wiseowl-server/internal/repository"
)

// MockSceneVariationRepository is a mock type for the SceneVariationRepository type
type MockSceneVariationRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, variation
func (_m *MockSceneVariationRepository) Create(ctx context.Context, variation model.SceneVariation) (model.SceneVariation, error) {
	ret := _m.Called(ctx, variation)

	var r0 model.SceneVariation
	if rf, ok := ret.Get(0).(func(context.Context, model.SceneVariation) model.SceneVariation); ok {
		r0 = rf(ctx, variation)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(model.SceneVariation)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, model.SceneVariation) error); ok {
		r1 = rf(ctx, variation)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListByTopic provides a mock function with given fields: ctx, topicID
func (_m *MockSceneVariationRepository) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]model.SceneVariation, error) {
	ret := _m.Called(ctx, topicID)

	var r0 []model.SceneVariation
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) []model.SceneVariation); ok {
		r0 = rf(ctx, topicID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.SceneVariation)
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

// NewMockSceneVariationRepository creates a new instance of MockSceneVariationRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockSceneVariationRepository(t interface {
	mock.TestingT
	Helper()
}) *MockSceneVariationRepository {
	m := &MockSceneVariationRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.SceneVariationRepository = (*MockSceneVariationRepository)(nil)
