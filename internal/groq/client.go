package groq

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"wiseowl-server/internal/model"
)

var log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

// Канонические ответы совы, когда нормальный ответ получить не удалось
const (
	chatFallbackShort   = "I'm here to help you learn! What would you like to know?"
	chatFallbackTimeout = "I'm thinking too hard! Please try asking again."
	chatFallbackError   = "I'm having trouble right now. Please try again!"
	chatFallbackAPI     = "I'm having trouble connecting right now. Please try again!"
)

var (
	narrativeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wiseowl_narrative_requests_total",
			Help: "Total number of requests to the narrative API.",
		},
		[]string{"operation", "status"},
	)
	narrativeRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wiseowl_narrative_request_duration_seconds",
			Help:    "Histogram of narrative API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Client предоставляет доступ к генерации учебного контента через Groq API.
// API совместим с OpenAI chat completions, поэтому используется go-openai.
type Client struct {
	client        *openai.Client
	model         string
	scenesTimeout time.Duration
	quizTimeout   time.Duration
	chatTimeout   time.Duration
	maxAttempts   int
	retryDelay    time.Duration
}

// Config содержит конфигурацию клиента Groq
type Config struct {
	APIKey        string
	BaseURL       string
	Model         string
	ScenesTimeout time.Duration
	QuizTimeout   time.Duration
	ChatTimeout   time.Duration
	MaxAttempts   int
	RetryDelay    time.Duration
}

// New создает новый экземпляр клиента Groq
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("не указан API ключ для Groq")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "llama-3.3-70b-versatile"
	}
	if cfg.ScenesTimeout <= 0 {
		cfg.ScenesTimeout = 45 * time.Second
	}
	if cfg.QuizTimeout <= 0 {
		cfg.QuizTimeout = 20 * time.Second
	}
	if cfg.ChatTimeout <= 0 {
		cfg.ChatTimeout = 20 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL

	return &Client{
		client:        openai.NewClientWithConfig(config),
		model:         cfg.Model,
		scenesTimeout: cfg.ScenesTimeout,
		quizTimeout:   cfg.QuizTimeout,
		chatTimeout:   cfg.ChatTimeout,
		maxAttempts:   cfg.MaxAttempts,
		retryDelay:    cfg.RetryDelay,
	}, nil
}

// GenerateScenes генерирует три учебные сцены по теме.
// Никогда не возвращает ошибку: при любом сбое используется резервный набор сцен.
func (c *Client) GenerateScenes(ctx context.Context, topic string, subjectType model.SubjectType) model.ScenesData {
	prompt := scenesPrompt(topic, subjectType)

	content, err := c.complete(ctx, "scenes", []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, 0.7, 1500, c.scenesTimeout)
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("scenes generation failed, using fallback")
		return FallbackScenes(topic)
	}

	raw, ok := extractJSON(content)
	if !ok {
		log.Warn().Str("topic", topic).Msg("no JSON object in scenes response, using fallback")
		return FallbackScenes(topic)
	}

	var data model.ScenesData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("invalid scenes JSON, using fallback")
		return FallbackScenes(topic)
	}
	if !scenesValid(data) {
		log.Warn().Str("topic", topic).Int("scenes", len(data.Scenes)).Msg("incomplete scenes payload, using fallback")
		return FallbackScenes(topic)
	}

	// Нумерация сцен приводится к порядку следования
	for i := range data.Scenes {
		data.Scenes[i].Number = i + 1
	}

	return data
}

// GenerateQuiz генерирует викторину из двух вопросов для конкретной сцены.
// Никогда не возвращает ошибку: при любом сбое используется резервная викторина.
func (c *Client) GenerateQuiz(ctx context.Context, topic, sceneDescription string, sceneNumber int) model.QuizData {
	prompt := quizPrompt(topic, sceneDescription, sceneNumber)

	content, err := c.complete(ctx, "quiz", []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, 0.6, 800, c.quizTimeout)
	if err != nil {
		log.Warn().Err(err).Int("scene", sceneNumber).Msg("quiz generation failed, using fallback")
		return FallbackQuiz(topic, sceneNumber)
	}

	raw, ok := extractJSON(content)
	if !ok {
		return FallbackQuiz(topic, sceneNumber)
	}

	var data model.QuizData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		log.Warn().Err(err).Int("scene", sceneNumber).Msg("invalid quiz JSON, using fallback")
		return FallbackQuiz(topic, sceneNumber)
	}
	if !quizValid(data) {
		log.Warn().Int("scene", sceneNumber).Int("questions", len(data.Questions)).Msg("incomplete quiz payload, using fallback")
		return FallbackQuiz(topic, sceneNumber)
	}

	return data
}

// Chat отвечает на вопрос ученика от лица совы-наставника.
// Никогда не возвращает ошибку: при сбое возвращается канонический ответ.
func (c *Client) Chat(ctx context.Context, message, chatContext string) string {
	content, err := c.complete(ctx, "chat", []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt(chatContext)},
		{Role: openai.ChatMessageRoleUser, Content: message},
	}, 0.7, 250, c.chatTimeout)
	if err != nil {
		log.Warn().Err(err).Msg("owl chat failed")
		var apiErr *openai.APIError
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return chatFallbackTimeout
		case errors.As(err, &apiErr):
			return chatFallbackAPI
		default:
			return chatFallbackError
		}
	}

	answer := strings.TrimSpace(content)
	// Слишком короткий ответ считаем неудачным
	if len(answer) <= 10 {
		return chatFallbackShort
	}
	return answer
}

// complete выполняет один chat completion запрос с повторами на сетевых сбоях.
// Ошибки API (не-2xx) не повторяются, как и истекший контекст.
func (c *Client) complete(ctx context.Context, operation string, messages []openai.ChatCompletionMessage, temperature float32, maxTokens int, timeout time.Duration) (string, error) {
	var lastErr error
	attempts := 0
	for attempts < c.maxAttempts {
		attempts++

		// Таймаут выделяется на каждую попытку отдельно
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)

		start := time.Now()
		resp, err := c.client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		})
		duration := time.Since(start)
		ctxErr := attemptCtx.Err()
		cancel()

		if err != nil {
			narrativeRequestsTotal.With(prometheus.Labels{"operation": operation, "status": "error"}).Inc()
			lastErr = err

			var apiErr *openai.APIError
			if errors.As(err, &apiErr) {
				// API ответил явной ошибкой, повторять бессмысленно
				return "", err
			}
			if ctxErr != nil {
				// Истекший таймаут попытки или отмена вызывающим не повторяются
				return "", ctxErr
			}
			if attempts < c.maxAttempts {
				log.Warn().Err(err).Str("operation", operation).Int("attempt", attempts).Msg("narrative request failed, retrying")
				time.Sleep(c.retryDelay)
				continue
			}
			return "", lastErr
		}

		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			narrativeRequestsTotal.With(prometheus.Labels{"operation": operation, "status": "error_empty_response"}).Inc()
			lastErr = errors.New("пустой ответ от API")
			if attempts < c.maxAttempts {
				time.Sleep(c.retryDelay)
				continue
			}
			return "", lastErr
		}

		narrativeRequestsTotal.With(prometheus.Labels{"operation": operation, "status": "success"}).Inc()
		narrativeRequestDuration.With(prometheus.Labels{"operation": operation}).Observe(duration.Seconds())

		return resp.Choices[0].Message.Content, nil
	}

	return "", lastErr
}

// extractJSON извлекает первый JSON-объект верхнего уровня из текста ответа:
// от первой '{' до последней '}'.
func extractJSON(content string) (string, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}

// scenesValid проверяет, что ответ содержит полный набор сцен
func scenesValid(data model.ScenesData) bool {
	if len(data.Scenes) != model.SceneCount {
		return false
	}
	for _, scene := range data.Scenes {
		if scene.Title == "" || scene.Description == "" {
			return false
		}
	}
	return true
}

// quizValid проверяет, что викторина содержит два полных вопроса
func quizValid(data model.QuizData) bool {
	if len(data.Questions) != 2 {
		return false
	}
	for _, q := range data.Questions {
		if q.Question == "" || len(q.Options) != 4 {
			return false
		}
		if q.Correct < 0 || q.Correct > 3 {
			return false
		}
	}
	return true
}
