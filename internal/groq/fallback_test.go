package groq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiseowl-server/internal/model"
)

func TestFallbackScenes(t *testing.T) {
	data := FallbackScenes("The Great Wall")

	require.Len(t, data.Scenes, model.SceneCount)

	t.Run("Scenes are numbered sequentially", func(t *testing.T) {
		for i, scene := range data.Scenes {
			assert.Equal(t, i+1, scene.Number)
		}
	})

	t.Run("Topic is woven into every scene", func(t *testing.T) {
		for _, scene := range data.Scenes {
			assert.Contains(t, scene.Title, "The Great Wall")
			assert.Contains(t, scene.Description, "The Great Wall")
			assert.Contains(t, scene.Narration, "The Great Wall")
		}
	})

	t.Run("Scene titles follow the journey arc", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(data.Scenes[0].Title, "Discovering"))
		assert.True(t, strings.HasPrefix(data.Scenes[1].Title, "Inside"))
		assert.True(t, strings.HasPrefix(data.Scenes[2].Title, "Impact of"))
	})

	t.Run("Narrations are substantial", func(t *testing.T) {
		for _, scene := range data.Scenes {
			assert.Greater(t, len(scene.Narration), 500)
		}
	})
}

func TestFallbackQuiz(t *testing.T) {
	t.Run("Every scene gets two full questions", func(t *testing.T) {
		for sceneNumber := 1; sceneNumber <= model.SceneCount; sceneNumber++ {
			quiz := FallbackQuiz("The Great Wall", sceneNumber)

			require.Lenf(t, quiz.Questions, 2, "scene %d", sceneNumber)
			for _, q := range quiz.Questions {
				assert.NotEmpty(t, q.Question)
				assert.Len(t, q.Options, 4)
				assert.NotEmpty(t, q.Explanation)
				// Правильный ответ в резервной викторине всегда первый
				assert.Equal(t, 0, q.Correct)
			}
		}
	})

	t.Run("Questions differ between scenes", func(t *testing.T) {
		first := FallbackQuiz("The Great Wall", 1)
		second := FallbackQuiz("The Great Wall", 2)
		third := FallbackQuiz("The Great Wall", 3)

		assert.NotEqual(t, first.Questions[0].Question, second.Questions[0].Question)
		assert.NotEqual(t, second.Questions[0].Question, third.Questions[0].Question)
	})

	t.Run("Scene numbers beyond the journey reuse the final quiz", func(t *testing.T) {
		assert.Equal(t, FallbackQuiz("The Great Wall", 3), FallbackQuiz("The Great Wall", 7))
	})
}
