package bria

import "fmt"

// Базовые элементы иммерсивного промта: полная 360-градусная панорама
// и многоплановая глубина сцены
const (
	immersiveBase = "Create a full 360-degree equirectangular panoramic scene, ultra-wide spherical view, complete immersive environment with rich depth"

	depthInstructions = "Include detailed foreground elements (2-5 meters away), middle ground features (10-30 meters), and distant background (50+ meters). Add atmospheric perspective with depth haze. Multiple layers of visual interest at different distances."
)

// BuildEducationalPrompt строит учебный промт для переводчика Bria
// в зависимости от режима визуализации
func BuildEducationalPrompt(text string, mode Mode) string {
	switch mode {
	case ModeTimeline:
		return fmt.Sprintf("%s. %s Historical scene showing %s. Photorealistic environment where a student feels transported to that era. Include period-accurate architecture in foreground, people in authentic clothing at various distances, atmospheric lighting with natural shadows. Rich historical details at multiple depth levels. Educational and meticulously accurate.", immersiveBase, depthInstructions, text)
	case ModeMap:
		return fmt.Sprintf("%s. %s Bird's eye view geographical visualization of %s. Show terrain with elevation changes, mountains in distance, rivers winding through landscape, cities with visible buildings, climate zones with vegetation. Multiple layers of geographical features from close to far. Educational with clear landmarks at various scales.", immersiveBase, depthInstructions, text)
	case ModeQuiz:
		// Режим викторины не панорамный: учебная диаграмма с подписями
		return fmt.Sprintf("Create an educational illustration for %s. Clean, labeled diagram style with depth. Show key components at different distances with visual hints. Multiple layers of information. Perfect for students to learn and identify parts in 3D space.", text)
	case ModeStoryboard:
		return fmt.Sprintf("%s. %s Scene depicting %s as if you are standing there. Ultra-wide angle with objects at varying distances, detailed environment with foreground, middle, and background elements, atmospheric depth, engaging composition. Educational visualization with spatial depth for students.", immersiveBase, depthInstructions, text)
	default:
		return fmt.Sprintf("%s. %s Immersive educational scene of %s. Full 360-degree spherical panorama as if student is standing in the center of the scene. Rich detail at multiple distances - close objects, medium distance features, far background. Atmospheric perspective, natural lighting, photorealistic. Make the student feel completely immersed with explorable depth in all directions.", immersiveBase, depthInstructions, text)
	}
}
