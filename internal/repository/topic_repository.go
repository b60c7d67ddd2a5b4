package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wiseowl-server/internal/model"
)

// TopicRepositoryPostgres предоставляет доступ к путешествиям в PostgreSQL
type TopicRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewTopicRepository создает новый экземпляр репозитория путешествий
func NewTopicRepository(pool *pgxpool.Pool) *TopicRepositoryPostgres {
	return &TopicRepositoryPostgres{
		pool: pool,
	}
}

// topicRow - строка таблицы topics; JSONB-колонки читаются как байты
type topicRow struct {
	ID             uuid.UUID `db:"id"`
	UserID         uuid.UUID `db:"user_id"`
	Topic          string    `db:"topic"`
	SubjectType    string    `db:"subject_type"`
	ScenesData     []byte    `db:"scenes_data"`
	CurrentScene   int       `db:"current_scene"`
	ScenesUnlocked []byte    `db:"scenes_unlocked"`
	QuizScores     []byte    `db:"quiz_scores"`
	TotalScore     int       `db:"total_score"`
	Completed      bool      `db:"completed"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// toModel разбирает JSONB-поля строки в доменную модель
func (row topicRow) toModel() (model.Topic, error) {
	topic := model.Topic{
		ID:             row.ID,
		UserID:         row.UserID,
		Topic:          row.Topic,
		SubjectType:    model.SubjectType(row.SubjectType),
		CurrentScene:   row.CurrentScene,
		TotalScore:     row.TotalScore,
		Completed:      row.Completed,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		ScenesUnlocked: []int{},
		QuizScores:     map[string]int{},
	}

	if len(row.ScenesData) > 0 {
		if err := json.Unmarshal(row.ScenesData, &topic.ScenesData); err != nil {
			return model.Topic{}, fmt.Errorf("ошибка разбора scenes_data: %w", err)
		}
	}
	if len(row.ScenesUnlocked) > 0 {
		if err := json.Unmarshal(row.ScenesUnlocked, &topic.ScenesUnlocked); err != nil {
			return model.Topic{}, fmt.Errorf("ошибка разбора scenes_unlocked: %w", err)
		}
	}
	if len(row.QuizScores) > 0 {
		if err := json.Unmarshal(row.QuizScores, &topic.QuizScores); err != nil {
			return model.Topic{}, fmt.Errorf("ошибка разбора quiz_scores: %w", err)
		}
	}

	return topic, nil
}

// marshalTopic готовит JSONB-поля модели к записи
func marshalTopic(topic model.Topic) (scenesData, scenesUnlocked, quizScores []byte, err error) {
	scenesData, err = json.Marshal(topic.ScenesData)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("ошибка маршалинга scenes_data: %w", err)
	}

	unlocked := topic.ScenesUnlocked
	if unlocked == nil {
		unlocked = []int{}
	}
	scenesUnlocked, err = json.Marshal(unlocked)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("ошибка маршалинга scenes_unlocked: %w", err)
	}

	scores := topic.QuizScores
	if scores == nil {
		scores = map[string]int{}
	}
	quizScores, err = json.Marshal(scores)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("ошибка маршалинга quiz_scores: %w", err)
	}

	return scenesData, scenesUnlocked, quizScores, nil
}

const topicColumns = `id, user_id, topic, subject_type, scenes_data, current_scene, scenes_unlocked, quiz_scores, total_score, completed, created_at, updated_at`

// Create создает новое путешествие в базе данных
func (r *TopicRepositoryPostgres) Create(ctx context.Context, topic model.Topic) (model.Topic, error) {
	query := `
		INSERT INTO topics (id, user_id, topic, subject_type, scenes_data, current_scene, scenes_unlocked, quiz_scores, total_score, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING ` + topicColumns

	// Если ID не указан, генерируем новый
	if topic.ID == uuid.Nil {
		topic.ID = uuid.New()
	}

	scenesData, scenesUnlocked, quizScores, err := marshalTopic(topic)
	if err != nil {
		return model.Topic{}, err
	}

	var row topicRow
	err = pgxscan.Get(ctx, r.pool, &row, query,
		topic.ID,
		topic.UserID,
		topic.Topic,
		string(topic.SubjectType),
		scenesData,
		topic.CurrentScene,
		scenesUnlocked,
		quizScores,
		topic.TotalScore,
		topic.Completed,
		time.Now(),
	)
	if err != nil {
		return model.Topic{}, fmt.Errorf("ошибка создания путешествия: %w", err)
	}

	return row.toModel()
}

// GetByID получает путешествие пользователя по ID
func (r *TopicRepositoryPostgres) GetByID(ctx context.Context, userID, id uuid.UUID) (model.Topic, error) {
	query := `
		SELECT ` + topicColumns + `
		FROM topics
		WHERE id = $1 AND user_id = $2
	`

	var row topicRow
	err := pgxscan.Get(ctx, r.pool, &row, query, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Topic{}, model.ErrNotFound
		}
		return model.Topic{}, fmt.Errorf("ошибка получения путешествия: %w", err)
	}

	return row.toModel()
}

// GetByUserAndTitle получает путешествие пользователя по точному названию темы.
// Используется для идемпотентной загрузки демо-путешествий.
func (r *TopicRepositoryPostgres) GetByUserAndTitle(ctx context.Context, userID uuid.UUID, title string) (model.Topic, error) {
	query := `
		SELECT ` + topicColumns + `
		FROM topics
		WHERE user_id = $1 AND topic = $2
		ORDER BY created_at
		LIMIT 1
	`

	var row topicRow
	err := pgxscan.Get(ctx, r.pool, &row, query, userID, title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Topic{}, model.ErrNotFound
		}
		return model.Topic{}, fmt.Errorf("ошибка поиска путешествия по теме: %w", err)
	}

	return row.toModel()
}

// ListByUser возвращает путешествия пользователя, новые первыми
func (r *TopicRepositoryPostgres) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Topic, error) {
	query := `
		SELECT ` + topicColumns + `
		FROM topics
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var rows []topicRow
	if err := pgxscan.Select(ctx, r.pool, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("ошибка получения списка путешествий: %w", err)
	}

	topics := make([]model.Topic, 0, len(rows))
	for _, row := range rows {
		topic, err := row.toModel()
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}

	return topics, nil
}

// Update сохраняет прогресс путешествия
func (r *TopicRepositoryPostgres) Update(ctx context.Context, topic model.Topic) (model.Topic, error) {
	query := `
		UPDATE topics
		SET scenes_data = $3, current_scene = $4, scenes_unlocked = $5, quiz_scores = $6, total_score = $7, completed = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2
		RETURNING ` + topicColumns

	scenesData, scenesUnlocked, quizScores, err := marshalTopic(topic)
	if err != nil {
		return model.Topic{}, err
	}

	var row topicRow
	err = pgxscan.Get(ctx, r.pool, &row, query,
		topic.ID,
		topic.UserID,
		scenesData,
		topic.CurrentScene,
		scenesUnlocked,
		quizScores,
		topic.TotalScore,
		topic.Completed,
		time.Now(),
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Topic{}, model.ErrNotFound
		}
		return model.Topic{}, fmt.Errorf("ошибка обновления путешествия: %w", err)
	}

	return row.toModel()
}

// Delete удаляет путешествие пользователя; сцены и вариации удаляются каскадно
func (r *TopicRepositoryPostgres) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM topics WHERE id = $1 AND user_id = $2`

	ct, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления путешествия: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
