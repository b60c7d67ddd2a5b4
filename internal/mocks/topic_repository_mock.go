package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wiseowl-server/internal/model"
	"wiseowl-server/internal/repository"
)

// MockTopicRepository is a mock type for the TopicRepository type
type MockTopicRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, topic
func (_m *MockTopicRepository) Create(ctx context.Context, topic model.Topic) (model.Topic, error) {
	ret := _m.Called(ctx, topic)

	var r0 model.Topic
	if rf, ok := ret.Get(0).(func(context.Context, model.Topic) model.Topic); ok {
		r0 = rf(ctx, topic)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(model.Topic)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, model.Topic) error); ok {
		r1 = rf(ctx, topic)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetByID provides a mock function with given fields: ctx, userID, id
func (_m *MockTopicRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (model.Topic, error) {
	ret := _m.Called(ctx, userID, id)

	var r0 model.Topic
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) model.Topic); ok {
		r0 = rf(ctx, userID, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(model.Topic)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, uuid.UUID) error); ok {
		r1 = rf(ctx, userID, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetByUserAndTitle provides a mock function with given fields: ctx, userID, title
func (_m *MockTopicRepository) GetByUserAndTitle(ctx context.Context, userID uuid.UUID, title string) (model.Topic, error) {
	ret := _m.Called(ctx, userID, title)

	var r0 model.Topic
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) model.Topic); ok {
		r0 = rf(ctx, userID, title)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(model.Topic)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, string) error); ok {
		r1 = rf(ctx, userID, title)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListByUser provides a mock function with given fields: ctx, userID
func (_m *MockTopicRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Topic, error) {
	ret := _m.Called(ctx, userID)

	var r0 []model.Topic
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) []model.Topic); ok {
		r0 = rf(ctx, userID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.Topic)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, userID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Update provides a mock function with given fields: ctx, topic
func (_m *MockTopicRepository) Update(ctx context.Context, topic model.Topic) (model.Topic, error) {
	ret := _m.Called(ctx, topic)

	var r0 model.Topic
	if rf, ok := ret.Get(0).(func(context.Context, model.Topic) model.Topic); ok {
		r0 = rf(ctx, topic)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(model.Topic)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, model.Topic) error); ok {
		r1 = rf(ctx, topic)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Delete provides a mock function with given fields: ctx, userID, id
func (_m *MockTopicRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	ret := _m.Called(ctx, userID, id)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) error); ok {
		r0 = rf(ctx, userID, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockTopicRepository creates a new instance of MockTopicRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockTopicRepository(t interface {
	mock.TestingT
	Helper()
}) *MockTopicRepository {
	m := &MockTopicRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.TopicRepository = (*MockTopicRepository)(nil)
