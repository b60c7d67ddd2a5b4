package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wiseowl-server/internal/model"
)

// SceneRepositoryPostgres предоставляет доступ к сценам в PostgreSQL
type SceneRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewSceneRepository создает новый экземпляр репозитория сцен
func NewSceneRepository(pool *pgxpool.Pool) *SceneRepositoryPostgres {
	return &SceneRepositoryPostgres{
		pool: pool,
	}
}

// Create создает новую сцену путешествия
func (r *SceneRepositoryPostgres) Create(ctx context.Context, scene model.Scene) (model.Scene, error) {
	query := `
		INSERT INTO scenes (topic_id, scene_number, title, description, narration, json_scene, image_url, generation_status, quiz_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	quizData, err := json.Marshal(scene.QuizData)
	if err != nil {
		return model.Scene{}, fmt.Errorf("ошибка маршалинга quiz_data: %w", err)
	}

	var jsonScene []byte
	if len(scene.JSONScene) > 0 {
		jsonScene = []byte(scene.JSONScene)
	}

	row := r.pool.QueryRow(ctx, query,
		scene.TopicID,
		scene.SceneNumber,
		scene.Title,
		scene.Description,
		scene.Narration,
		jsonScene,
		scene.ImageURL,
		string(scene.GenerationStatus),
		quizData,
		time.Now(),
	)

	if err := row.Scan(&scene.ID, &scene.CreatedAt); err != nil {
		return model.Scene{}, fmt.Errorf("ошибка создания сцены: %w", err)
	}

	return scene, nil
}

// GetByNumber получает сцену путешествия по номеру
func (r *SceneRepositoryPostgres) GetByNumber(ctx context.Context, topicID uuid.UUID, sceneNumber int) (model.Scene, error) {
	query := `
		SELECT id, topic_id, scene_number, title, description, narration, json_scene, image_url, generation_status, quiz_data, created_at
		FROM scenes
		WHERE topic_id = $1 AND scene_number = $2
	`

	row := r.pool.QueryRow(ctx, query, topicID, sceneNumber)

	scene, err := scanScene(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Scene{}, model.ErrNotFound
		}
		return model.Scene{}, fmt.Errorf("ошибка получения сцены: %w", err)
	}

	return scene, nil
}

// ListByTopic возвращает все сцены путешествия в порядке номеров
func (r *SceneRepositoryPostgres) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]model.Scene, error) {
	query := `
		SELECT id, topic_id, scene_number, title, description, narration, json_scene, image_url, generation_status, quiz_data, created_at
		FROM scenes
		WHERE topic_id = $1
		ORDER BY scene_number
	`

	rows, err := r.pool.Query(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сцен: %w", err)
	}
	defer rows.Close()

	scenes := make([]model.Scene, 0, model.SceneCount)
	for rows.Next() {
		scene, err := scanScene(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования сцены: %w", err)
		}
		scenes = append(scenes, scene)
	}

	return scenes, rows.Err()
}

// Exists проверяет, создана ли сцена с указанным номером
func (r *SceneRepositoryPostgres) Exists(ctx context.Context, topicID uuid.UUID, sceneNumber int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM scenes WHERE topic_id = $1 AND scene_number = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, topicID, sceneNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки существования сцены: %w", err)
	}

	return exists, nil
}

// UpdateGeneration обновляет результат визуализации сцены
func (r *SceneRepositoryPostgres) UpdateGeneration(ctx context.Context, topicID uuid.UUID, sceneNumber int, jsonScene json.RawMessage, imageURL *string, status model.GenerationStatus) error {
	query := `
		UPDATE scenes
		SET json_scene = $3, image_url = $4, generation_status = $5
		WHERE topic_id = $1 AND scene_number = $2
	`

	var jsonSceneBytes []byte
	if len(jsonScene) > 0 {
		jsonSceneBytes = []byte(jsonScene)
	}

	ct, err := r.pool.Exec(ctx, query, topicID, sceneNumber, jsonSceneBytes, imageURL, string(status))
	if err != nil {
		return fmt.Errorf("ошибка обновления сцены: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// scanScene читает сцену из строки результата; JSONB-колонки могут быть NULL
func scanScene(row pgx.Row) (model.Scene, error) {
	var scene model.Scene
	var jsonScene, quizData []byte
	var status string

	err := row.Scan(
		&scene.ID,
		&scene.TopicID,
		&scene.SceneNumber,
		&scene.Title,
		&scene.Description,
		&scene.Narration,
		&jsonScene,
		&scene.ImageURL,
		&status,
		&quizData,
		&scene.CreatedAt,
	)
	if err != nil {
		return model.Scene{}, err
	}

	scene.GenerationStatus = model.GenerationStatus(status)
	if len(jsonScene) > 0 {
		scene.JSONScene = json.RawMessage(jsonScene)
	}
	if len(quizData) > 0 {
		if err := json.Unmarshal(quizData, &scene.QuizData); err != nil {
			return model.Scene{}, fmt.Errorf("ошибка разбора quiz_data: %w", err)
		}
	}

	return scene, nil
}
