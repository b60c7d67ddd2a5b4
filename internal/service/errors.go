package service

import "errors"

var (
	ErrEmptyTopic          = errors.New("topic must not be empty")
	ErrInvalidSubjectType  = errors.New("unsupported subject type")
	ErrInvalidSceneNumber  = errors.New("scene number out of range")
	ErrMissingAnswers      = errors.New("answers must not be empty")
	ErrEmptyMessage        = errors.New("message must not be empty")
	ErrDemoNotFound        = errors.New("demo journey not found")
	ErrJourneyNotCompleted = errors.New("journey is not completed yet")
)
