package bria

import "encoding/json"

// MockScene синтезирует структурированную сцену локально, когда переводчик
// недоступен. Форма повторяет ответ Bria: камера, свет, палитра, композиция,
// объекты и стиль, плюс блок, специфичный для режима.
func MockScene(text string, mode Mode) json.RawMessage {
	scene := map[string]interface{}{
		"topic": text,
		"mode":  string(mode),
		"camera": map[string]interface{}{
			"angle": 45,
			"fov":   60,
			"tilt":  0,
			"pan":   0,
		},
		"lighting": map[string]interface{}{
			"type":      "natural",
			"intensity": 0.8,
			"direction": "top-left",
			"ambient":   0.3,
		},
		"color_palette": map[string]interface{}{
			"primary":   "#1A2A52",
			"secondary": "#E4C77F",
			"accent":    "#F8F9FC",
			"mood":      "educational",
		},
		"composition": map[string]interface{}{
			"layout":      "centered",
			"depth":       "medium",
			"perspective": "isometric",
		},
		"objects": []map[string]interface{}{
			{
				"type":        "main_subject",
				"description": text,
				"position":    "center",
				"scale":       1.0,
			},
		},
		"style": map[string]interface{}{
			"type":         "educational",
			"detail_level": "high",
			"realism":      0.7,
		},
	}

	switch mode {
	case ModeTimeline:
		scene["timeline"] = map[string]interface{}{
			"stages":      5,
			"progression": "left-to-right",
		}
	case ModeMap:
		scene["map"] = map[string]interface{}{
			"projection": "3d",
			"terrain":    true,
			"labels":     true,
		}
	case ModeQuiz:
		scene["quiz"] = map[string]interface{}{
			"hint_level":        "medium",
			"reveal_percentage": 0.6,
		}
	case ModeStoryboard:
		scene["storyboard"] = map[string]interface{}{
			"panels": 4,
			"layout": "grid",
		}
	}

	data, err := json.Marshal(scene)
	if err != nil {
		// Недостижимо: сцена собрана из маршалируемых типов
		return json.RawMessage("{}")
	}
	return data
}
