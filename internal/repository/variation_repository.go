package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Драйвер PostgreSQL для sqlx

	"wiseowl-server/internal/model"
)

// SceneVariationRepositorySqlx предоставляет доступ к журналу перегенераций.
// Журнал append-only: вариации создаются и читаются, но не изменяются.
type SceneVariationRepositorySqlx struct {
	db *sqlx.DB
}

// NewSceneVariationRepository создает новый экземпляр репозитория вариаций
func NewSceneVariationRepository(db *sqlx.DB) *SceneVariationRepositorySqlx {
	return &SceneVariationRepositorySqlx{
		db: db,
	}
}

// Create добавляет запись об успешной перегенерации сцены
func (r *SceneVariationRepositorySqlx) Create(ctx context.Context, variation model.SceneVariation) (model.SceneVariation, error) {
	query := `
		INSERT INTO scene_variations (id, topic_id, json_scene, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	// Если ID не указан, генерируем новый
	if variation.ID == uuid.Nil {
		variation.ID = uuid.New()
	}
	variation.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		variation.ID,
		variation.TopicID,
		[]byte(variation.JSONScene),
		variation.ImageURL,
		variation.CreatedAt,
	)
	if err != nil {
		return model.SceneVariation{}, fmt.Errorf("ошибка создания вариации сцены: %w", err)
	}

	return variation, nil
}

// ListByTopic возвращает вариации путешествия, новые первыми
func (r *SceneVariationRepositorySqlx) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]model.SceneVariation, error) {
	query := `
		SELECT id, topic_id, json_scene, image_url, created_at
		FROM scene_variations
		WHERE topic_id = $1
		ORDER BY created_at DESC
	`

	variations := make([]model.SceneVariation, 0)
	if err := r.db.SelectContext(ctx, &variations, query, topicID); err != nil {
		return nil, fmt.Errorf("ошибка получения вариаций: %w", err)
	}

	return variations, nil
}
