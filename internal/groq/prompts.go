package groq

import (
	"fmt"

	"wiseowl-server/internal/model"
)

// scenesPrompt строит промт генерации трех сцен по теме
func scenesPrompt(topic string, subjectType model.SubjectType) string {
	return fmt.Sprintf(`You are WiseOwl, an educational AI guide. Create 3 DISTINCT progressive learning scenes for: %s

Subject: %s

IMPORTANT: Each scene must be COMPLETELY DIFFERENT with unique perspectives and details.

For each scene provide:
1. Scene title - Specific and descriptive (not generic)
2. Description - DETAILED 360° panoramic scene description (4-5 sentences) including:
   - Specific location/setting
   - What's in foreground, middle, and background
   - People/objects present
   - Lighting and atmosphere
   - Architectural or natural details
3. Educational narration - 4-5 paragraphs explaining:
   - What students are seeing
   - Historical/geographical significance
   - Interesting facts and details
   - Why this matters

Format as JSON:
{
  "scenes": [
    {
      "number": 1,
      "title": "Specific Scene Title",
      "description": "Detailed 360° panoramic description with foreground, middle ground, background, lighting, people, objects...",
      "narration": "Paragraph 1... Paragraph 2... Paragraph 3... Paragraph 4..."
    },
    ...
  ]
}

Make each scene VISUALLY DISTINCT and EDUCATIONALLY RICH. Think like a documentary filmmaker choosing 3 different camera positions.`, topic, subjectType)
}

// quizPrompt строит промт генерации двух вопросов для конкретной сцены
func quizPrompt(topic, sceneDescription string, sceneNumber int) string {
	return fmt.Sprintf(`Create 2 COMPLETELY UNIQUE multiple-choice questions ONLY about Scene %d:

Topic: %s
Scene %d: %s

CRITICAL RULES:
1. Questions MUST be about SPECIFIC details visible in THIS scene
2. Questions MUST be DIFFERENT from other scenes
3. Ask about what students SEE in this particular view
4. Reference specific objects, people, or features in the scene description
5. NO generic questions that could apply to any scene

Example good questions:
- "What architectural feature is visible in the foreground of this scene?"
- "Based on the lighting in this scene, what time of day is it?"
- "What activity are the people performing in this specific location?"

Format as JSON:
{
  "questions": [
    {
      "question": "Specific question about THIS scene only...",
      "options": ["A) ...", "B) ...", "C) ...", "D) ..."],
      "correct": 0,
      "explanation": "Explanation referencing specific scene details..."
    },
    {
      "question": "Another specific question about THIS scene only...",
      "options": ["A) ...", "B) ...", "C) ...", "D) ..."],
      "correct": 1,
      "explanation": "Explanation referencing specific scene details..."
    }
  ]
}

Remember: Scene %d questions must be UNIQUE and SPECIFIC to this scene's description!`, sceneNumber, topic, sceneNumber, sceneDescription, sceneNumber)
}

// chatSystemPrompt строит системный промт совы-наставника
func chatSystemPrompt(chatContext string) string {
	if chatContext != "" {
		return fmt.Sprintf("You are WiseOwl, a friendly and knowledgeable educational guide. The student is learning about: %s. Answer their questions clearly and helpfully in 2-3 sentences.", chatContext)
	}
	return "You are WiseOwl, a friendly and knowledgeable educational guide. Answer student questions clearly and helpfully in 2-3 sentences."
}
