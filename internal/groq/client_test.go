package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiseowl-server/internal/model"
)

// newTestClient поднимает httptest-сервер с заданным обработчиком
// chat completions и возвращает клиент, направленный на него
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{
		APIKey:      "test-key",
		BaseURL:     server.URL + "/v1",
		MaxAttempts: 2,
		RetryDelay:  time.Millisecond,
	})
	require.NoError(t, err)

	return client, server
}

// completionResponse формирует минимальный успешный ответ chat completions
func completionResponse(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	})
	require.NoError(t, err)
}

func TestNew(t *testing.T) {
	t.Run("API key is required", func(t *testing.T) {
		_, err := New(Config{})
		assert.Error(t, err)
	})

	t.Run("Defaults are applied", func(t *testing.T) {
		client, err := New(Config{APIKey: "test-key"})
		require.NoError(t, err)
		assert.Equal(t, "llama-3.3-70b-versatile", client.model)
		assert.Equal(t, 45*time.Second, client.scenesTimeout)
		assert.Equal(t, 3, client.maxAttempts)
	})
}

func TestGenerateScenes(t *testing.T) {
	ctx := context.Background()

	validScenes := `{"scenes":[
		{"number":3,"title":"One","description":"First","narration":"N1"},
		{"number":1,"title":"Two","description":"Second","narration":"N2"},
		{"number":2,"title":"Three","description":"Third","narration":"N3"}
	]}`

	t.Run("Valid response is renumbered in order", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			completionResponse(t, w, "Here are the scenes:\n"+validScenes)
		})

		data := client.GenerateScenes(ctx, "Ancient Egypt", model.SubjectHistory)

		require.Len(t, data.Scenes, 3)
		for i, scene := range data.Scenes {
			assert.Equal(t, i+1, scene.Number)
		}
		assert.Equal(t, "One", data.Scenes[0].Title)
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
			completionResponse(t, w, validScenes)
		}))
		t.Cleanup(server.Close)

		client, err := New(Config{
			APIKey:        "test-key",
			BaseURL:       server.URL + "/v1",
			ScenesTimeout: 75 * time.Millisecond,
			MaxAttempts:   2,
			// Пауза перед повтором длиннее таймаута одной попытки
			RetryDelay: 150 * time.Millisecond,
		})
		require.NoError(t, err)

		data := client.GenerateScenes(ctx, "Ancient Egypt", model.SubjectHistory)

		assert.Equal(t, 2, calls)
		require.Len(t, data.Scenes, 3)
		assert.Equal(t, "One", data.Scenes[0].Title)
	})

	t.Run("Malformed JSON falls back", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			completionResponse(t, w, "{not valid json}")
		})

		data := client.GenerateScenes(ctx, "Ancient Egypt", model.SubjectHistory)

		assert.Equal(t, FallbackScenes("Ancient Egypt"), data)
	})

	t.Run("Response without JSON object falls back", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			completionResponse(t, w, "Sorry, I cannot help with that.")
		})

		data := client.GenerateScenes(ctx, "Ancient Egypt", model.SubjectHistory)

		assert.Equal(t, FallbackScenes("Ancient Egypt"), data)
	})

	t.Run("Incomplete scene set falls back", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			completionResponse(t, w, `{"scenes":[{"number":1,"title":"Only","description":"one","narration":"n"}]}`)
		})

		data := client.GenerateScenes(ctx, "Ancient Egypt", model.SubjectHistory)

		assert.Equal(t, FallbackScenes("Ancient Egypt"), data)
	})

	t.Run("API error falls back without retries", func(t *testing.T) {
		calls := 0
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":{"message":"boom","type":"server_error"}}`)
		})

		data := client.GenerateScenes(ctx, "Ancient Egypt", model.SubjectHistory)

		assert.Equal(t, FallbackScenes("Ancient Egypt"), data)
		// Явная ошибка API не повторяется
		assert.Equal(t, 1, calls)
	})

	t.Run("Transport error is retried then falls back", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // Сервер недоступен, все попытки упадут на уровне транспорта

		client, err := New(Config{
			APIKey:      "test-key",
			BaseURL:     server.URL + "/v1",
			MaxAttempts: 2,
			RetryDelay:  time.Millisecond,
		})
		require.NoError(t, err)

		data := client.GenerateScenes(ctx, "Ancient Egypt", model.SubjectHistory)

		assert.Equal(t, FallbackScenes("Ancient Egypt"), data)
	})
}

func TestGenerateQuiz(t *testing.T) {
	ctx := context.Background()

	validQuiz := `{"questions":[
		{"question":"Q1?","options":["a","b","c","d"],"correct":1,"explanation":"E1"},
		{"question":"Q2?","options":["a","b","c","d"],"correct":3,"explanation":"E2"}
	]}`

	t.Run("Valid quiz is returned as is", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			completionResponse(t, w, validQuiz)
		})

		data := client.GenerateQuiz(ctx, "Ancient Egypt", "desc", 1)

		require.Len(t, data.Questions, 2)
		assert.Equal(t, 1, data.Questions[0].Correct)
		assert.Equal(t, 3, data.Questions[1].Correct)
	})

	t.Run("Wrong option count falls back", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			completionResponse(t, w, `{"questions":[
				{"question":"Q1?","options":["a","b"],"correct":0,"explanation":"E1"},
				{"question":"Q2?","options":["a","b","c","d"],"correct":0,"explanation":"E2"}
			]}`)
		})

		data := client.GenerateQuiz(ctx, "Ancient Egypt", "desc", 2)

		assert.Equal(t, FallbackQuiz("Ancient Egypt", 2), data)
	})

	t.Run("Correct index out of range falls back", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			completionResponse(t, w, `{"questions":[
				{"question":"Q1?","options":["a","b","c","d"],"correct":7,"explanation":"E1"},
				{"question":"Q2?","options":["a","b","c","d"],"correct":0,"explanation":"E2"}
			]}`)
		})

		data := client.GenerateQuiz(ctx, "Ancient Egypt", "desc", 3)

		assert.Equal(t, FallbackQuiz("Ancient Egypt", 3), data)
	})
}

func TestChat(t *testing.T) {
	ctx := context.Background()

	t.Run("Normal answer is returned trimmed", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			completionResponse(t, w, "  The pyramids were built as tombs for pharaohs!  ")
		})

		answer := client.Chat(ctx, "Why were pyramids built?", "Ancient Egypt")

		assert.Equal(t, "The pyramids were built as tombs for pharaohs!", answer)
	})

	t.Run("Too short answer is replaced", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			completionResponse(t, w, "Yes.")
		})

		answer := client.Chat(ctx, "Is history fun?", "")

		assert.Equal(t, chatFallbackShort, answer)
	})

	t.Run("API error returns connection message", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"message":"rate limited","type":"rate_limit_error"}}`)
		})

		answer := client.Chat(ctx, "Tell me about Rome", "")

		assert.Equal(t, chatFallbackAPI, answer)
	})

	t.Run("Timeout returns thinking message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			completionResponse(t, w, "too late")
		}))
		t.Cleanup(server.Close)

		client, err := New(Config{
			APIKey:      "test-key",
			BaseURL:     server.URL + "/v1",
			ChatTimeout: 10 * time.Millisecond,
			MaxAttempts: 2,
			RetryDelay:  time.Millisecond,
		})
		require.NoError(t, err)

		answer := client.Chat(ctx, "Tell me everything", "")

		assert.Equal(t, chatFallbackTimeout, answer)
	})

	t.Run("Transport error returns generic message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client, err := New(Config{
			APIKey:      "test-key",
			BaseURL:     server.URL + "/v1",
			MaxAttempts: 2,
			RetryDelay:  time.Millisecond,
		})
		require.NoError(t, err)

		answer := client.Chat(ctx, "Anyone home?", "")

		assert.Equal(t, chatFallbackError, answer)
	})
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"object inside prose", `Sure! {"a":1} Hope that helps.`, `{"a":1}`, true},
		{"nested objects", `{"a":{"b":2}}`, `{"a":{"b":2}}`, true},
		{"no object", "just some text", "", false},
		{"only opening brace", "text { more text", "", false},
		{"closing before opening", "} nope {", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSON(tt.content)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
