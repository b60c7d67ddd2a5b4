package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"wiseowl-server/internal/model"
)

// TopicRepository определяет операции хранения учебных путешествий
type TopicRepository interface {
	Create(ctx context.Context, topic model.Topic) (model.Topic, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (model.Topic, error)
	GetByUserAndTitle(ctx context.Context, userID uuid.UUID, title string) (model.Topic, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Topic, error)
	Update(ctx context.Context, topic model.Topic) (model.Topic, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// SceneRepository определяет операции хранения сцен
type SceneRepository interface {
	Create(ctx context.Context, scene model.Scene) (model.Scene, error)
	GetByNumber(ctx context.Context, topicID uuid.UUID, sceneNumber int) (model.Scene, error)
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]model.Scene, error)
	Exists(ctx context.Context, topicID uuid.UUID, sceneNumber int) (bool, error)
	UpdateGeneration(ctx context.Context, topicID uuid.UUID, sceneNumber int, jsonScene json.RawMessage, imageURL *string, status model.GenerationStatus) error
}

// SceneVariationRepository определяет операции журнала перегенераций
type SceneVariationRepository interface {
	Create(ctx context.Context, variation model.SceneVariation) (model.SceneVariation, error)
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]model.SceneVariation, error)
}
