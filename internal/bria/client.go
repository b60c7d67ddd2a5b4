package bria

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

// ErrImageGenerationFailed - ошибка при генерации изображения
var ErrImageGenerationFailed = errors.New("ошибка генерации изображения")

// Mode определяет режим визуализации темы
type Mode string

const (
	ModeSingle     Mode = "single"
	ModeTimeline   Mode = "timeline"
	ModeMap        Mode = "map"
	ModeQuiz       Mode = "quiz"
	ModeStoryboard Mode = "storyboard"
)

var (
	imageRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wiseowl_image_requests_total",
			Help: "Total number of requests to the Bria API.",
		},
		[]string{"endpoint", "status"},
	)
	imageRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wiseowl_image_request_duration_seconds",
			Help:    "Histogram of Bria API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// Client предоставляет доступ к Bria FIBO: переводу текста в структурированную
// сцену и рендерингу изображения по сцене
type Client struct {
	httpClient       *http.Client
	translatorURL    string
	generatorURL     string
	apiKey           string
	translateTimeout time.Duration
	renderTimeout    time.Duration
	maxAttempts      int
	retryDelay       time.Duration
}

// Config содержит конфигурацию клиента Bria
type Config struct {
	APIKey           string
	TranslatorURL    string
	GeneratorURL     string
	TranslateTimeout time.Duration
	RenderTimeout    time.Duration
	MaxAttempts      int
	RetryDelay       time.Duration
}

// New создает новый экземпляр клиента Bria
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("не указан API ключ для Bria")
	}

	if cfg.TranslatorURL == "" {
		cfg.TranslatorURL = "https://engine.prod.bria-api.com/v2/structured_prompt/generate"
	}
	if cfg.GeneratorURL == "" {
		cfg.GeneratorURL = "https://engine.prod.bria-api.com/v2/image/generate"
	}
	if cfg.TranslateTimeout <= 0 {
		cfg.TranslateTimeout = 60 * time.Second
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = 120 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	return &Client{
		httpClient:       &http.Client{},
		translatorURL:    cfg.TranslatorURL,
		generatorURL:     cfg.GeneratorURL,
		apiKey:           cfg.APIKey,
		translateTimeout: cfg.TranslateTimeout,
		renderTimeout:    cfg.RenderTimeout,
		maxAttempts:      cfg.MaxAttempts,
		retryDelay:       cfg.RetryDelay,
	}, nil
}

// briaResult - полезная нагрузка ответа Bria API
type briaResult struct {
	StructuredPrompt json.RawMessage `json:"structured_prompt"`
	ImageURL         string          `json:"image_url"`
}

// briaResponse - конверт ответа Bria API
type briaResponse struct {
	Result briaResult `json:"result"`
}

// TranslateToScene превращает текстовое описание в структурированную JSON-сцену.
// Никогда не возвращает ошибку: при любом сбое синтезируется локальная сцена.
func (c *Client) TranslateToScene(ctx context.Context, text string, mode Mode) json.RawMessage {
	payload := map[string]interface{}{
		"prompt": BuildEducationalPrompt(text, mode),
		"sync":   true,
	}

	body, status, err := c.post(ctx, "translate", c.translatorURL, payload, c.translateTimeout)
	if err != nil {
		log.Warn().Err(err).Str("mode", string(mode)).Msg("translator request failed, using mock scene")
		return MockScene(text, mode)
	}
	if status != http.StatusOK {
		log.Warn().Int("status", status).Str("body", string(body)).Msg("translator returned non-OK status, using mock scene")
		return MockScene(text, mode)
	}

	var resp briaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Warn().Err(err).Msg("invalid translator response, using mock scene")
		return MockScene(text, mode)
	}

	scene := resp.Result.StructuredPrompt
	if len(scene) == 0 {
		return MockScene(text, mode)
	}

	// structured_prompt может прийти как JSON-объект или как строка с JSON внутри
	var asString string
	if err := json.Unmarshal(scene, &asString); err == nil {
		scene = json.RawMessage(asString)
	}
	if !json.Valid(scene) {
		log.Warn().Msg("translator returned invalid structured_prompt, using mock scene")
		return MockScene(text, mode)
	}

	return scene
}

// GenerateImage рендерит изображение по структурированной сцене.
// В отличие от перевода, сбой рендеринга возвращается вызывающему как ошибка:
// у изображения нет осмысленной локальной замены.
func (c *Client) GenerateImage(ctx context.Context, jsonScene json.RawMessage, prompt string) (string, error) {
	structured := string(jsonScene)
	if structured == "" {
		structured = "{}"
	}

	payload := map[string]interface{}{
		"prompt":            prompt,
		"structured_prompt": structured,
		"aspect_ratio":      "16:9",
		"steps_num":         50,
		"guidance_scale":    5,
		"sync":              true,
	}

	body, status, err := c.post(ctx, "render", c.generatorURL, payload, c.renderTimeout)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageGenerationFailed, err)
	}
	if status != http.StatusOK {
		log.Warn().Int("status", status).Str("body", string(body)).Msg("generator returned non-OK status")
		return "", fmt.Errorf("%w: API вернул статус %d", ErrImageGenerationFailed, status)
	}

	var resp briaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: некорректный ответ API: %v", ErrImageGenerationFailed, err)
	}
	if resp.Result.ImageURL == "" {
		return "", fmt.Errorf("%w: пустой image_url в ответе", ErrImageGenerationFailed)
	}

	return resp.Result.ImageURL, nil
}

// post выполняет POST запрос с повторами на сетевых сбоях.
// Статусы отличные от 200 не повторяются: ответ API детерминирован.
func (c *Client) post(ctx context.Context, endpoint, url string, payload interface{}, timeout time.Duration) ([]byte, int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка маршалинга запроса: %w", err)
	}

	var lastErr error
	attempts := 0
	for attempts < c.maxAttempts {
		attempts++

		// Таймаут выделяется на каждую попытку отдельно
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)

		req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			cancel()
			return nil, 0, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("api_token", c.apiKey)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(start)

		if err != nil {
			ctxErr := attemptCtx.Err()
			cancel()
			imageRequestsTotal.With(prometheus.Labels{"endpoint": endpoint, "status": "error"}).Inc()
			lastErr = err
			if ctxErr != nil {
				// Истекший таймаут попытки или отмена вызывающим не повторяются
				return nil, 0, ctxErr
			}
			if attempts < c.maxAttempts {
				log.Warn().Err(err).Str("endpoint", endpoint).Int("attempt", attempts).Msg("bria request failed, retrying")
				time.Sleep(c.retryDelay)
				continue
			}
			return nil, 0, lastErr
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		cancel()
		if err != nil {
			return nil, 0, err
		}

		status := "success"
		if resp.StatusCode != http.StatusOK {
			status = fmt.Sprintf("error_%d", resp.StatusCode)
		}
		imageRequestsTotal.With(prometheus.Labels{"endpoint": endpoint, "status": status}).Inc()
		imageRequestDuration.With(prometheus.Labels{"endpoint": endpoint}).Observe(duration.Seconds())

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}
