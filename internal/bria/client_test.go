package bria

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient поднимает httptest-сервер и возвращает клиент,
// у которого оба эндпоинта направлены на него
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{
		APIKey:        "test-token",
		TranslatorURL: server.URL + "/translate",
		GeneratorURL:  server.URL + "/render",
		MaxAttempts:   2,
		RetryDelay:    time.Millisecond,
	})
	require.NoError(t, err)

	return client
}

func TestNew(t *testing.T) {
	t.Run("API key is required", func(t *testing.T) {
		_, err := New(Config{})
		assert.Error(t, err)
	})

	t.Run("Defaults are applied", func(t *testing.T) {
		client, err := New(Config{APIKey: "test-token"})
		require.NoError(t, err)
		assert.Equal(t, 60*time.Second, client.translateTimeout)
		assert.Equal(t, 120*time.Second, client.renderTimeout)
		assert.Equal(t, 3, client.maxAttempts)
	})
}

func TestTranslateToScene(t *testing.T) {
	ctx := context.Background()

	t.Run("Structured prompt as object", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-token", r.Header.Get("api_token"))

			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, true, payload["sync"])
			assert.Contains(t, payload["prompt"], "Ancient Egypt")

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"result":{"structured_prompt":{"topic":"Ancient Egypt"}}}`))
		})

		scene := client.TranslateToScene(ctx, "Ancient Egypt", ModeSingle)

		assert.JSONEq(t, `{"topic":"Ancient Egypt"}`, string(scene))
	})

	t.Run("Structured prompt as string with JSON inside", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":{"structured_prompt":"{\"topic\":\"Volcanoes\"}"}}`))
		})

		scene := client.TranslateToScene(ctx, "Volcanoes", ModeSingle)

		assert.JSONEq(t, `{"topic":"Volcanoes"}`, string(scene))
	})

	t.Run("Non-OK status yields mock scene", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		scene := client.TranslateToScene(ctx, "Ancient Egypt", ModeTimeline)

		var parsed map[string]interface{}
		require.NoError(t, json.Unmarshal(scene, &parsed))
		assert.Equal(t, "Ancient Egypt", parsed["topic"])
		assert.Equal(t, "timeline", parsed["mode"])
	})

	t.Run("Transport error yields mock scene", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // Сервер недоступен

		client, err := New(Config{
			APIKey:        "test-token",
			TranslatorURL: server.URL + "/translate",
			GeneratorURL:  server.URL + "/render",
			MaxAttempts:   2,
			RetryDelay:    time.Millisecond,
		})
		require.NoError(t, err)

		scene := client.TranslateToScene(ctx, "Ancient Egypt", ModeSingle)

		var parsed map[string]interface{}
		require.NoError(t, json.Unmarshal(scene, &parsed))
		assert.Equal(t, "Ancient Egypt", parsed["topic"])
	})

	t.Run("Invalid structured prompt yields mock scene", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":{"structured_prompt":"not json at all"}}`))
		})

		scene := client.TranslateToScene(ctx, "Ancient Egypt", ModeSingle)

		var parsed map[string]interface{}
		require.NoError(t, json.Unmarshal(scene, &parsed))
		assert.Equal(t, "Ancient Egypt", parsed["topic"])
	})

	t.Run("Empty structured prompt yields mock scene", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":{}}`))
		})

		scene := client.TranslateToScene(ctx, "Ancient Egypt", ModeSingle)

		var parsed map[string]interface{}
		require.NoError(t, json.Unmarshal(scene, &parsed))
		assert.Equal(t, "Ancient Egypt", parsed["topic"])
	})

	t.Run("Retry gets a fresh timeout budget", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				// Первый запрос обрывается на уровне соединения
				hj, ok := w.(http.Hijacker)
				require.True(t, ok)
				conn, _, err := hj.Hijack()
				require.NoError(t, err)
				conn.Close()
				return
			}
			w.Write([]byte(`{"result":{"structured_prompt":{"topic":"Ancient Egypt"}}}`))
		}))
		t.Cleanup(server.Close)

		client, err := New(Config{
			APIKey:           "test-token",
			TranslatorURL:    server.URL + "/translate",
			GeneratorURL:     server.URL + "/render",
			TranslateTimeout: 75 * time.Millisecond,
			MaxAttempts:      2,
			// Пауза перед повтором длиннее таймаута одной попытки
			RetryDelay: 150 * time.Millisecond,
		})
		require.NoError(t, err)

		scene := client.TranslateToScene(ctx, "Ancient Egypt", ModeSingle)

		assert.Equal(t, 2, calls)
		assert.JSONEq(t, `{"topic":"Ancient Egypt"}`, string(scene))
	})
}

func TestGenerateImage(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful render returns image URL", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/render", r.URL.Path)
			assert.Equal(t, "test-token", r.Header.Get("api_token"))

			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "16:9", payload["aspect_ratio"])
			assert.Equal(t, float64(50), payload["steps_num"])
			assert.Equal(t, float64(5), payload["guidance_scale"])
			assert.Equal(t, true, payload["sync"])
			// Структурированная сцена передается строкой
			assert.Equal(t, `{"topic":"x"}`, payload["structured_prompt"])

			w.Write([]byte(`{"result":{"image_url":"https://img.example/out.png"}}`))
		})

		url, err := client.GenerateImage(ctx, json.RawMessage(`{"topic":"x"}`), "a panoramic view")

		require.NoError(t, err)
		assert.Equal(t, "https://img.example/out.png", url)
	})

	t.Run("Empty scene is sent as empty object", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "{}", payload["structured_prompt"])

			w.Write([]byte(`{"result":{"image_url":"https://img.example/out.png"}}`))
		})

		_, err := client.GenerateImage(ctx, nil, "prompt")

		require.NoError(t, err)
	})

	t.Run("Non-OK status is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		})

		_, err := client.GenerateImage(ctx, json.RawMessage(`{}`), "prompt")

		assert.ErrorIs(t, err, ErrImageGenerationFailed)
	})

	t.Run("Empty image URL is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":{}}`))
		})

		_, err := client.GenerateImage(ctx, json.RawMessage(`{}`), "prompt")

		assert.ErrorIs(t, err, ErrImageGenerationFailed)
	})

	t.Run("Transport error is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client, err := New(Config{
			APIKey:       "test-token",
			GeneratorURL: server.URL + "/render",
			MaxAttempts:  2,
			RetryDelay:   time.Millisecond,
		})
		require.NoError(t, err)

		_, err = client.GenerateImage(ctx, json.RawMessage(`{}`), "prompt")

		assert.ErrorIs(t, err, ErrImageGenerationFailed)
	})
}

func TestBuildEducationalPrompt(t *testing.T) {
	t.Run("Single mode is panoramic", func(t *testing.T) {
		prompt := BuildEducationalPrompt("Ancient Egypt", ModeSingle)

		assert.Contains(t, prompt, "Ancient Egypt")
		assert.Contains(t, prompt, "360")
	})

	t.Run("Quiz mode is not panoramic", func(t *testing.T) {
		prompt := BuildEducationalPrompt("Ancient Egypt", ModeQuiz)

		assert.Contains(t, prompt, "Ancient Egypt")
		assert.NotContains(t, prompt, "360")
	})

	t.Run("Each mode produces a distinct prompt", func(t *testing.T) {
		modes := []Mode{ModeSingle, ModeTimeline, ModeMap, ModeQuiz, ModeStoryboard}
		seen := make(map[string]Mode, len(modes))
		for _, mode := range modes {
			prompt := BuildEducationalPrompt("Ancient Egypt", mode)
			previous, duplicated := seen[prompt]
			assert.Falsef(t, duplicated, "mode %s repeats prompt of mode %s", mode, previous)
			seen[prompt] = mode
		}
	})
}

func TestMockScene(t *testing.T) {
	t.Run("Base structure is always present", func(t *testing.T) {
		scene := MockScene("Ancient Egypt", ModeSingle)

		var parsed map[string]interface{}
		require.NoError(t, json.Unmarshal(scene, &parsed))
		assert.Equal(t, "Ancient Egypt", parsed["topic"])
		assert.Equal(t, "single", parsed["mode"])
		assert.Contains(t, parsed, "camera")
		assert.Contains(t, parsed, "lighting")
		assert.Contains(t, parsed, "color_palette")
		assert.Contains(t, parsed, "objects")
	})

	t.Run("Timeline mode adds stages", func(t *testing.T) {
		scene := MockScene("Ancient Egypt", ModeTimeline)

		assert.True(t, strings.Contains(string(scene), "timeline"))

		var parsed map[string]interface{}
		require.NoError(t, json.Unmarshal(scene, &parsed))
		assert.Contains(t, parsed, "timeline")
	})

	t.Run("Map mode adds terrain block", func(t *testing.T) {
		scene := MockScene("Amazon", ModeMap)

		var parsed map[string]interface{}
		require.NoError(t, json.Unmarshal(scene, &parsed))
		assert.Contains(t, parsed, "map")
	})
}
