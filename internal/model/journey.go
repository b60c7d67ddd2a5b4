package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound возвращается репозиториями, когда запись не найдена
var ErrNotFound = errors.New("запись не найдена")

// SceneCount - количество сцен в одном учебном путешествии
const SceneCount = 3

// SubjectType определяет предметную область темы
type SubjectType string

const (
	SubjectHistory   SubjectType = "history"
	SubjectGeography SubjectType = "geography"
)

// Valid проверяет, что тип предмета поддерживается
func (s SubjectType) Valid() bool {
	return s == SubjectHistory || s == SubjectGeography
}

// GenerationStatus - статус генерации изображения сцены
type GenerationStatus string

const (
	StatusPending   GenerationStatus = "pending"
	StatusCompleted GenerationStatus = "completed"
	StatusDemo      GenerationStatus = "demo"
)

// SceneInfo - текстовое описание одной сцены, сгенерированное нейросетью
type SceneInfo struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Narration   string `json:"narration"`
}

// ScenesData - полный набор сцен путешествия
type ScenesData struct {
	Scenes []SceneInfo `json:"scenes"`
}

// QuizQuestion - один вопрос викторины с четырьмя вариантами ответа
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

// QuizData - викторина сцены (два вопроса)
type QuizData struct {
	Questions []QuizQuestion `json:"questions"`
}

// Topic представляет учебное путешествие пользователя по одной теме
type Topic struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Topic       string      `json:"topic"`
	SubjectType SubjectType `json:"subject_type"`

	// Сгенерированный контент
	ScenesData ScenesData `json:"scenes_data"`

	// Прогресс пользователя
	CurrentScene   int            `json:"current_scene"`
	ScenesUnlocked []int          `json:"scenes_unlocked"`
	QuizScores     map[string]int `json:"quiz_scores"`
	TotalScore     int            `json:"total_score"`
	Completed      bool           `json:"completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuizScoreKey возвращает ключ результата викторины для номера сцены.
// Ключи имеют вид "scene_1", "scene_2", "scene_3".
func QuizScoreKey(sceneNumber int) string {
	return fmt.Sprintf("scene_%d", sceneNumber)
}

// SceneUnlocked проверяет, открыта ли сцена с указанным номером
func (t *Topic) SceneUnlocked(sceneNumber int) bool {
	for _, n := range t.ScenesUnlocked {
		if n == sceneNumber {
			return true
		}
	}
	return false
}

// Scene представляет одну визуализированную сцену путешествия
type Scene struct {
	ID          int64     `json:"id"`
	TopicID     uuid.UUID `json:"topic_id"`
	SceneNumber int       `json:"scene_number"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Narration   string    `json:"narration"`

	// Результат визуализации
	JSONScene        json.RawMessage  `json:"json_scene"`
	ImageURL         *string          `json:"image_url"`
	GenerationStatus GenerationStatus `json:"generation_status"`

	// Викторина этой сцены
	QuizData QuizData `json:"quiz_data"`

	CreatedAt time.Time `json:"created_at"`
}

// SceneVariation хранит вариант перегенерации сцены путешествия
type SceneVariation struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	TopicID   uuid.UUID       `json:"topic_id" db:"topic_id"`
	JSONScene json.RawMessage `json:"json_scene" db:"json_scene"`
	ImageURL  *string         `json:"image_url" db:"image_url"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
