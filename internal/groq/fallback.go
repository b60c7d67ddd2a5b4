package groq

import (
	"fmt"

	"wiseowl-server/internal/model"
)

// FallbackScenes возвращает детерминированный набор сцен, используемый
// при недоступности API. Содержимое осмысленное: ученик получает
// полноценное путешествие даже без нейросети.
func FallbackScenes(topic string) model.ScenesData {
	return model.ScenesData{
		Scenes: []model.SceneInfo{
			{
				Number:      1,
				Title:       fmt.Sprintf("Discovering %s", topic),
				Description: fmt.Sprintf("A detailed 360-degree panoramic view introducing %s. The scene shows the foundational elements in the foreground, with key features visible in the middle distance, and contextual environment in the background. Natural lighting illuminates the scene, creating depth and atmosphere.", topic),
				Narration: fmt.Sprintf(`Welcome to your immersive journey into %[1]s!

**What You're Seeing:**
• In the foreground, you'll notice the primary elements that define %[1]s
• The middle ground reveals the context and setting where this takes place
• The background shows the broader environment and atmosphere

**Why This Matters:**
This scene introduces you to the fundamental aspects of %[1]s. Understanding these basics is crucial because they form the foundation for everything that follows. Take your time to observe the details - each element tells part of the story.

**Key Points to Notice:**
• The spatial arrangement and how elements relate to each other
• The scale and proportions that give you a sense of the real environment
• The atmospheric conditions that set the mood and context

This is just the beginning of your exploration. As you progress through the scenes, you'll gain deeper insights into the significance and impact of %[1]s.`, topic),
			},
			{
				Number:      2,
				Title:       fmt.Sprintf("Inside %s", topic),
				Description: fmt.Sprintf("An immersive ground-level 360-degree view placing you directly within %s. Close-up details are visible in the immediate foreground, with active elements and interactions in the middle ground, and the surrounding environment providing context in the background. Dynamic lighting creates visual interest.", topic),
				Narration: fmt.Sprintf(`Now you're standing right in the heart of %[1]s!

**Your Perspective:**
• You're positioned at ground level, experiencing this from a human viewpoint
• Close-up details surround you, allowing you to see intricate features
• The environment extends in all directions, creating full immersion

**What Makes This Special:**
This scene reveals the inner workings and active elements of %[1]s. You're no longer just observing from outside - you're experiencing it from within. This perspective helps you understand how different components interact and function together.

**Important Details:**
• Notice the textures, materials, and construction methods used
• Observe how people or elements move and interact in this space
• Pay attention to the functional aspects and practical applications

**Educational Insight:**
Understanding %[1]s from this intimate perspective gives you appreciation for the complexity and ingenuity involved. The details you see here demonstrate the skill, knowledge, and effort that went into creating or maintaining this.`, topic),
			},
			{
				Number:      3,
				Title:       fmt.Sprintf("Impact of %s", topic),
				Description: fmt.Sprintf("A wide-angle 360-degree panoramic view showing the lasting influence and legacy of %s. The foreground displays modern connections, the middle ground shows historical progression, and the background reveals the broader impact on society and culture. Dramatic lighting emphasizes the significance.", topic),
				Narration: fmt.Sprintf(`This final scene reveals how %[1]s shaped our world!

**The Bigger Picture:**
• See how %[1]s influenced development and progress over time
• Understand the connections between past innovations and present reality
• Recognize the lasting impact on society, culture, and technology

**Legacy and Influence:**
What you're witnessing here is the remarkable legacy of %[1]s. The innovations, methods, and ideas developed here didn't just stay in one place or time - they spread, evolved, and influenced countless other developments. This is why studying %[1]s matters today.

**Modern Connections:**
• Many modern systems and technologies trace their roots back to these concepts
• The principles demonstrated here are still relevant and applied today
• Understanding this history helps us appreciate current achievements

**Why This Matters to You:**
By completing this journey through %[1]s, you've gained more than just historical knowledge. You've developed an understanding of how human ingenuity, problem-solving, and innovation work. These lessons apply to challenges we face today and will face in the future.

**Reflection:**
Take a moment to consider: How does understanding %[1]s change your perspective? What connections can you make to your own life and the world around you? This kind of deep, immersive learning helps create lasting understanding that goes beyond memorizing facts.`, topic),
			},
		},
	}
}

// FallbackQuiz возвращает детерминированную викторину для сцены.
// Вопросы различаются по номеру сцены; правильный ответ всегда первый.
func FallbackQuiz(topic string, sceneNumber int) model.QuizData {
	switch sceneNumber {
	case 1:
		// Сцена 1 - знакомство с темой
		return model.QuizData{
			Questions: []model.QuizQuestion{
				{
					Question: fmt.Sprintf("Based on the introductory scene, what is the primary purpose of %s?", topic),
					Options: []string{
						"A) To demonstrate foundational concepts and basic elements",
						"B) To show only modern applications",
						"C) To display unrelated historical artifacts",
						"D) To focus solely on aesthetic design",
					},
					Correct:     0,
					Explanation: fmt.Sprintf("The first scene introduces the foundational elements of %s, helping you understand the basic concepts before diving deeper.", topic),
				},
				{
					Question: "What perspective does this opening scene provide?",
					Options: []string{
						"A) An overview showing the context and setting",
						"B) A microscopic close-up view",
						"C) A view from inside looking out",
						"D) A purely abstract representation",
					},
					Correct:     0,
					Explanation: "The introductory scene provides an overview perspective, allowing you to see the broader context before exploring details.",
				},
			},
		}
	case 2:
		// Сцена 2 - взгляд изнутри
		return model.QuizData{
			Questions: []model.QuizQuestion{
				{
					Question: fmt.Sprintf("In this immersive scene, what can you observe about the inner workings of %s?", topic),
					Options: []string{
						"A) Detailed components and how they interact with each other",
						"B) Only the external appearance",
						"C) Nothing specific or detailed",
						"D) Just the surrounding landscape",
					},
					Correct:     0,
					Explanation: fmt.Sprintf("This scene places you inside %s, revealing the intricate details and interactions between components.", topic),
				},
				{
					Question: "What makes this ground-level perspective valuable for learning?",
					Options: []string{
						"A) It shows textures, materials, and functional details up close",
						"B) It only provides a distant view",
						"C) It hides important information",
						"D) It shows nothing new compared to the first scene",
					},
					Correct:     0,
					Explanation: "The ground-level perspective lets you see textures, materials, and functional details that aren't visible from a distance.",
				},
			},
		}
	default:
		// Сцена 3 - наследие и влияние
		return model.QuizData{
			Questions: []model.QuizQuestion{
				{
					Question: fmt.Sprintf("How does this final scene demonstrate the lasting impact of %s?", topic),
					Options: []string{
						"A) By showing connections between historical innovations and modern applications",
						"B) By only displaying ancient artifacts",
						"C) By ignoring any modern relevance",
						"D) By focusing solely on aesthetic beauty",
					},
					Correct:     0,
					Explanation: fmt.Sprintf("The final scene reveals how %s influenced modern developments, showing the lasting legacy and continued relevance.", topic),
				},
				{
					Question: "What is the main lesson from completing this three-scene journey?",
					Options: []string{
						"A) Understanding how innovation and problem-solving create lasting impact",
						"B) Memorizing dates and names",
						"C) Learning that history has no connection to today",
						"D) Recognizing that old methods are obsolete",
					},
					Correct:     0,
					Explanation: "The journey teaches you how human ingenuity and innovation create solutions that influence future generations.",
				},
			},
		}
	}
}
