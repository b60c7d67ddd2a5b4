package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wiseowl-server/internal/bria"
	"wiseowl-server/internal/model"
	"wiseowl-server/internal/repository"
)

// Порог открытия следующей сцены и цена одного правильного ответа
const (
	unlockThreshold  = 1
	pointsPerCorrect = 10
)

// NarrativeGenerator порождает учебный текстовый контент.
// Реализации не возвращают ошибок: деградация выражается резервным контентом.
type NarrativeGenerator interface {
	GenerateScenes(ctx context.Context, topic string, subjectType model.SubjectType) model.ScenesData
	GenerateQuiz(ctx context.Context, topic, sceneDescription string, sceneNumber int) model.QuizData
	Chat(ctx context.Context, message, chatContext string) string
}

// ImageGenerator визуализирует сцены: переводит текст в структурированную
// сцену и рендерит по ней изображение
type ImageGenerator interface {
	TranslateToScene(ctx context.Context, text string, mode bria.Mode) json.RawMessage
	GenerateImage(ctx context.Context, jsonScene json.RawMessage, prompt string) (string, error)
}

// JourneyStats - сводная статистика по путешествиям пользователя
type JourneyStats struct {
	TotalTopics int `json:"total_topics"`
	TotalScenes int `json:"total_scenes"`
	TotalScore  int `json:"total_score"`
	Completed   int `json:"completed"`
}

// QuizResult - результат отправки ответов викторины
type QuizResult struct {
	Correct         int   `json:"correct"`
	Total           int   `json:"total"`
	Score           int   `json:"score"`
	Unlocked        []int `json:"unlocked"`
	NextScene       int   `json:"next_scene"`
	JourneyComplete bool  `json:"journey_complete"`
}

// RegenerateRequest - запрос перегенерации сцены. Либо простая кастомизация
// через enhanced_prompt, либо продвинутое редактирование готовой JSON-сцены.
type RegenerateRequest struct {
	EnhancedPrompt string          `json:"enhanced_prompt"`
	GenerateDemo   bool            `json:"generate_demo"`
	JSONScene      json.RawMessage `json:"json_scene"`
}

// JourneyService - оркестратор учебных путешествий
type JourneyService struct {
	topics     repository.TopicRepository
	scenes     repository.SceneRepository
	variations repository.SceneVariationRepository
	narrative  NarrativeGenerator
	images     ImageGenerator
	locks      *topicLocks
}

// NewJourneyService создает новый экземпляр сервиса путешествий
func NewJourneyService(
	topics repository.TopicRepository,
	scenes repository.SceneRepository,
	variations repository.SceneVariationRepository,
	narrative NarrativeGenerator,
	images ImageGenerator,
) *JourneyService {
	return &JourneyService{
		topics:     topics,
		scenes:     scenes,
		variations: variations,
		narrative:  narrative,
		images:     images,
		locks:      newTopicLocks(),
	}
}

// CreateJourney создает путешествие по теме: генерирует три сцены,
// открывает первую и сразу строит её визуализацию и викторину.
// Сбой рендеринга изображения не срывает создание: сцена остается pending.
func (s *JourneyService) CreateJourney(ctx context.Context, userID uuid.UUID, topicText string, subjectType model.SubjectType) (model.Topic, model.Scene, error) {
	topicText = strings.TrimSpace(topicText)
	if topicText == "" {
		return model.Topic{}, model.Scene{}, ErrEmptyTopic
	}
	if subjectType == "" {
		subjectType = model.SubjectHistory
	}
	if !subjectType.Valid() {
		return model.Topic{}, model.Scene{}, ErrInvalidSubjectType
	}

	scenesData := s.narrative.GenerateScenes(ctx, topicText, subjectType)

	topic, err := s.topics.Create(ctx, model.Topic{
		UserID:         userID,
		Topic:          topicText,
		SubjectType:    subjectType,
		ScenesData:     scenesData,
		CurrentScene:   1,
		ScenesUnlocked: []int{1}, // Первая сцена открыта всегда
		QuizScores:     map[string]int{},
	})
	if err != nil {
		return model.Topic{}, model.Scene{}, err
	}

	scene, err := s.buildScene(ctx, topic, 1)
	if err != nil {
		return model.Topic{}, model.Scene{}, err
	}

	log.Info().Str("topicID", topic.ID.String()).Str("topic", topicText).Msg("journey created")

	return topic, scene, nil
}

// GetJourney возвращает путешествие пользователя со всеми созданными сценами
func (s *JourneyService) GetJourney(ctx context.Context, userID, topicID uuid.UUID) (model.Topic, []model.Scene, error) {
	topic, err := s.topics.GetByID(ctx, userID, topicID)
	if err != nil {
		return model.Topic{}, nil, err
	}

	scenes, err := s.scenes.ListByTopic(ctx, topicID)
	if err != nil {
		return model.Topic{}, nil, err
	}

	return topic, scenes, nil
}

// ListJourneys возвращает путешествия пользователя (новые первыми)
// и сводную статистику по ним
func (s *JourneyService) ListJourneys(ctx context.Context, userID uuid.UUID) ([]model.Topic, JourneyStats, error) {
	topics, err := s.topics.ListByUser(ctx, userID)
	if err != nil {
		return nil, JourneyStats{}, err
	}

	stats := JourneyStats{TotalTopics: len(topics)}
	for _, topic := range topics {
		stats.TotalScenes += len(topic.ScenesUnlocked)
		stats.TotalScore += topic.TotalScore
		if topic.Completed {
			stats.Completed++
		}
	}

	return topics, stats, nil
}

// SubmitQuiz принимает ответы викторины сцены, начисляет очки и при
// достаточном результате открывает следующую сцену. Открытие идемпотентно,
// повторная отправка лишь обновляет счет. Если следующая сцена еще не
// создана (например, предыдущая генерация сорвалась), она достраивается.
func (s *JourneyService) SubmitQuiz(ctx context.Context, userID, topicID uuid.UUID, sceneNumber int, answers []int) (QuizResult, error) {
	if sceneNumber < 1 || sceneNumber > model.SceneCount {
		return QuizResult{}, ErrInvalidSceneNumber
	}
	// Пустая отправка не засчитывается: иначе она обнулила бы
	// уже сохраненный результат по сцене
	if len(answers) == 0 {
		return QuizResult{}, ErrMissingAnswers
	}

	s.locks.lock(topicID)
	defer s.locks.unlock(topicID)

	topic, err := s.topics.GetByID(ctx, userID, topicID)
	if err != nil {
		return QuizResult{}, err
	}
	scene, err := s.scenes.GetByNumber(ctx, topicID, sceneNumber)
	if err != nil {
		return QuizResult{}, err
	}

	// Ответы сверяются позиционно; лишние ответы игнорируются
	questions := scene.QuizData.Questions
	correct := 0
	for i, answer := range answers {
		if i < len(questions) && answer == questions[i].Correct {
			correct++
		}
	}

	if topic.QuizScores == nil {
		topic.QuizScores = map[string]int{}
	}
	topic.QuizScores[model.QuizScoreKey(sceneNumber)] = correct
	topic.TotalScore += correct * pointsPerCorrect

	if correct >= unlockThreshold && sceneNumber < model.SceneCount {
		next := sceneNumber + 1
		if !topic.SceneUnlocked(next) {
			topic.ScenesUnlocked = append(topic.ScenesUnlocked, next)
			topic.CurrentScene = next
		}

		exists, err := s.scenes.Exists(ctx, topicID, next)
		if err != nil {
			return QuizResult{}, err
		}
		if !exists {
			// Сбой генерации не срывает отправку викторины: прогресс уже
			// засчитан, сцена достроится при следующей отправке
			if _, err := s.buildScene(ctx, topic, next); err != nil {
				log.Error().Err(err).Str("topicID", topicID.String()).Int("scene", next).Msg("next scene generation failed")
			}
		}
	}

	if sceneNumber == model.SceneCount && correct >= unlockThreshold {
		topic.Completed = true
	}

	topic, err = s.topics.Update(ctx, topic)
	if err != nil {
		return QuizResult{}, err
	}

	return QuizResult{
		Correct:         correct,
		Total:           len(questions),
		Score:           topic.TotalScore,
		Unlocked:        topic.ScenesUnlocked,
		NextScene:       topic.CurrentScene,
		JourneyComplete: topic.Completed && len(topic.ScenesUnlocked) == model.SceneCount,
	}, nil
}

// RegenerateScene перегенерирует изображение сцены. Если рендеринг не удался,
// сохраненная сцена остается нетронутой. Успешная перегенерация записывается
// в журнал вариаций.
func (s *JourneyService) RegenerateScene(ctx context.Context, userID, topicID uuid.UUID, sceneNumber int, req RegenerateRequest) (string, error) {
	if sceneNumber < 1 || sceneNumber > model.SceneCount {
		return "", ErrInvalidSceneNumber
	}

	s.locks.lock(topicID)
	defer s.locks.unlock(topicID)

	// Проверка владения путешествием
	if _, err := s.topics.GetByID(ctx, userID, topicID); err != nil {
		return "", err
	}
	scene, err := s.scenes.GetByNumber(ctx, topicID, sceneNumber)
	if err != nil {
		return "", err
	}

	var jsonScene json.RawMessage
	var prompt string

	if req.EnhancedPrompt != "" {
		// Простая кастомизация: текст ученика проходит через переводчик
		jsonScene = s.images.TranslateToScene(ctx, req.EnhancedPrompt, bria.ModeSingle)
		prompt = req.EnhancedPrompt
	} else {
		// Продвинутое редактирование готовой JSON-сцены
		jsonScene = req.JSONScene
		if len(jsonScene) == 0 {
			jsonScene = scene.JSONScene
		}
		prompt = scene.Description
	}
	if len(jsonScene) == 0 {
		jsonScene = json.RawMessage("{}")
	}

	imageURL, err := s.images.GenerateImage(ctx, jsonScene, prompt)
	if err != nil {
		return "", err
	}

	// Перегенерация с флагом generate_demo переводит сцену в completed
	status := scene.GenerationStatus
	if req.EnhancedPrompt != "" && req.GenerateDemo {
		status = model.StatusCompleted
	}

	if err := s.scenes.UpdateGeneration(ctx, topicID, sceneNumber, jsonScene, &imageURL, status); err != nil {
		return "", err
	}

	if _, err := s.variations.Create(ctx, model.SceneVariation{
		TopicID:   topicID,
		JSONScene: jsonScene,
		ImageURL:  &imageURL,
	}); err != nil {
		// Журнал вариаций вторичен, сцена уже обновлена
		log.Error().Err(err).Str("topicID", topicID.String()).Msg("failed to record scene variation")
	}

	return imageURL, nil
}

// ListVariations возвращает журнал перегенераций путешествия
func (s *JourneyService) ListVariations(ctx context.Context, userID, topicID uuid.UUID) ([]model.SceneVariation, error) {
	if _, err := s.topics.GetByID(ctx, userID, topicID); err != nil {
		return nil, err
	}
	return s.variations.ListByTopic(ctx, topicID)
}

// Chat отвечает на вопрос ученика от лица совы-наставника
func (s *JourneyService) Chat(ctx context.Context, message, chatContext string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	return s.narrative.Chat(ctx, message, chatContext), nil
}

// LoadDemoJourney загружает демо-путешествие по слагу. Все сцены открыты
// сразу и создаются без изображений, викторины генерируются как обычно.
// Повторная загрузка возвращает уже существующее путешествие пользователя.
func (s *JourneyService) LoadDemoJourney(ctx context.Context, userID uuid.UUID, slug string) (model.Topic, error) {
	demo, ok := demoJourneys[slug]
	if !ok {
		return model.Topic{}, ErrDemoNotFound
	}

	existing, err := s.topics.GetByUserAndTitle(ctx, userID, demo.Topic)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Topic{}, err
	}

	unlocked := make([]int, 0, model.SceneCount)
	for n := 1; n <= model.SceneCount; n++ {
		unlocked = append(unlocked, n)
	}

	topic, err := s.topics.Create(ctx, model.Topic{
		UserID:         userID,
		Topic:          demo.Topic,
		SubjectType:    demo.SubjectType,
		ScenesData:     demo.ScenesData,
		CurrentScene:   1,
		ScenesUnlocked: unlocked,
		QuizScores:     map[string]int{},
	})
	if err != nil {
		return model.Topic{}, err
	}

	for i, info := range demo.ScenesData.Scenes {
		quizData := s.narrative.GenerateQuiz(ctx, demo.Topic, info.Description, i+1)

		if _, err := s.scenes.Create(ctx, model.Scene{
			TopicID:          topic.ID,
			SceneNumber:      i + 1,
			Title:            info.Title,
			Description:      info.Description,
			Narration:        info.Narration,
			JSONScene:        json.RawMessage("{}"),
			GenerationStatus: model.StatusDemo,
			QuizData:         quizData,
		}); err != nil {
			return model.Topic{}, err
		}
	}

	log.Info().Str("topicID", topic.ID.String()).Str("slug", slug).Msg("demo journey loaded")

	return topic, nil
}

// Certificate возвращает данные для сертификата завершенного путешествия
func (s *JourneyService) Certificate(ctx context.Context, userID, topicID uuid.UUID) (model.Topic, error) {
	topic, err := s.topics.GetByID(ctx, userID, topicID)
	if err != nil {
		return model.Topic{}, err
	}
	if !topic.Completed {
		return model.Topic{}, ErrJourneyNotCompleted
	}
	return topic, nil
}

// DeleteJourney удаляет путешествие пользователя вместе со сценами и вариациями
func (s *JourneyService) DeleteJourney(ctx context.Context, userID, topicID uuid.UUID) error {
	return s.topics.Delete(ctx, userID, topicID)
}

// buildScene строит визуализацию и викторину сцены и сохраняет её.
// Если рендеринг изображения не удался, сцена создается со статусом pending.
func (s *JourneyService) buildScene(ctx context.Context, topic model.Topic, sceneNumber int) (model.Scene, error) {
	info := topic.ScenesData.Scenes[sceneNumber-1]

	jsonScene := s.images.TranslateToScene(ctx, info.Description, bria.ModeSingle)

	var imageURL *string
	status := model.StatusPending
	if url, err := s.images.GenerateImage(ctx, jsonScene, info.Description); err != nil {
		log.Warn().Err(err).Str("topicID", topic.ID.String()).Int("scene", sceneNumber).Msg("scene image generation failed, scene stays pending")
	} else {
		imageURL = &url
		status = model.StatusCompleted
	}

	quizData := s.narrative.GenerateQuiz(ctx, topic.Topic, info.Description, sceneNumber)

	return s.scenes.Create(ctx, model.Scene{
		TopicID:          topic.ID,
		SceneNumber:      sceneNumber,
		Title:            info.Title,
		Description:      info.Description,
		Narration:        info.Narration,
		JSONScene:        jsonScene,
		ImageURL:         imageURL,
		GenerationStatus: status,
		QuizData:         quizData,
	})
}
