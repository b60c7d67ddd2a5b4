package service

import "wiseowl-server/internal/model"

// demoJourney - заранее подготовленное путешествие для мгновенного доступа
type demoJourney struct {
	Topic       string
	SubjectType model.SubjectType
	ScenesData  model.ScenesData
}

// demoJourneys - каталог демо-путешествий по слагам
var demoJourneys = map[string]demoJourney{
	"ancient-rome": {
		Topic:       "Ancient Rome - The Roman Forum",
		SubjectType: model.SubjectHistory,
		ScenesData: model.ScenesData{
			Scenes: []model.SceneInfo{
				{
					Number:      1,
					Title:       "The Heart of Rome",
					Description: "A wide panoramic view of the Roman Forum at its peak, showing the Temple of Saturn, Arch of Septimius Severus, and bustling marketplace with citizens in togas",
					Narration:   "Welcome to the Roman Forum, the beating heart of Ancient Rome! This was the center of political, commercial, and judicial life. Around you stand magnificent temples dedicated to the gods, government buildings where senators debated, and the Rostra where great orators like Cicero addressed the crowds. The Forum was more than just a marketplace - it was where democracy was born, where laws were made, and where the fate of an empire was decided. Notice the grand columns, the marble pavements worn smooth by countless footsteps, and imagine the voices of thousands of Romans echoing through these spaces.",
				},
				{
					Number:      2,
					Title:       "Daily Life in the Forum",
					Description: "Ground-level view showing Roman citizens trading goods, senators in discussion, and children playing near the fountains, with the Colosseum visible in the background",
					Narration:   "Now let's experience the Forum at ground level, as a Roman citizen would have seen it. The Forum was alive with activity from dawn to dusk. Merchants sold everything from exotic spices to fine pottery. Lawyers argued cases in the basilicas. Politicians campaigned for votes. Notice how the rich wore purple-trimmed togas while common citizens wore simple white. The Forum had public fountains providing fresh water from the aqueducts, and public latrines showing Roman engineering prowess. This wasn't just a place of power - it was where ordinary Romans lived their daily lives, gossiped, made deals, and felt connected to their great civilization.",
				},
				{
					Number:      3,
					Title:       "Legacy of the Forum",
					Description: "Sunset view of the Forum ruins as they appear today, with modern Rome visible in the background, showing the passage of time",
					Narration:   "As the sun sets over the Forum, we see how this ancient center of power has endured through the ages. Though now in ruins, these stones tell the story of one of history's greatest civilizations. The Roman Forum influenced architecture, law, and government systems that we still use today. The concept of a republic, the idea of citizenship, the structure of our legal systems - all have roots here. When you visit modern government buildings with their columns and domes, you're seeing Roman influence. The Forum reminds us that great civilizations leave lasting legacies, and that the past continues to shape our present.",
				},
			},
		},
	},
	"amazon-rainforest": {
		Topic:       "Amazon Rainforest - The Lungs of Earth",
		SubjectType: model.SubjectGeography,
		ScenesData: model.ScenesData{
			Scenes: []model.SceneInfo{
				{
					Number:      1,
					Title:       "The Canopy Layer",
					Description: "Aerial bird's eye view of the dense Amazon rainforest canopy, showing the vast green expanse with emergent trees, colorful macaws flying, and morning mist",
					Narration:   "Welcome to the Amazon Rainforest, often called the \"Lungs of Earth\"! From this aerial view, you can see why - the canopy stretches endlessly in every direction, a sea of green that produces 20% of the world's oxygen. The Amazon covers 5.5 million square kilometers across nine countries. What you're seeing is the canopy layer, about 30-45 meters high, where most of the rainforest's life exists. Notice the emergent trees that tower even higher, reaching for sunlight. The Amazon is home to 10% of all species on Earth - that's over 40,000 plant species, 1,300 bird species, and 2.5 million insect species! This incredible biodiversity makes it one of the most important ecosystems on our planet.",
				},
				{
					Number:      2,
					Title:       "The Forest Floor",
					Description: "Ground-level view showing massive tree trunks, hanging vines, colorful poison dart frogs, leafcutter ants, and filtered sunlight creating a mystical atmosphere",
					Narration:   "Now let's descend to the forest floor, a completely different world. Only about 2% of sunlight reaches here, creating a dim, humid environment. Despite the darkness, life thrives everywhere you look. See those leafcutter ants? They're farming! They cut leaves and use them to grow fungus for food. The colorful poison dart frogs warn predators with their bright colors. Notice the massive tree trunks - some are over 1,000 years old. The forest floor is covered in decomposing leaves that quickly break down in the heat and humidity, recycling nutrients back into the soil. Indigenous peoples have lived in harmony with this forest for over 11,000 years, developing deep knowledge of medicinal plants and sustainable living practices.",
				},
				{
					Number:      3,
					Title:       "The Amazon River",
					Description: "Wide view of the mighty Amazon River winding through the rainforest, with pink river dolphins, local communities in boats, and the meeting of waters where different colored rivers merge",
					Narration:   "The Amazon River is the lifeblood of the rainforest, the largest river by volume in the world. It discharges more water than the next seven largest rivers combined! The river and its 1,100 tributaries create a vast network that supports countless communities and species. See those pink river dolphins? They're unique to the Amazon. The river floods seasonally, rising up to 15 meters, which spreads nutrients across the forest floor. However, the Amazon faces serious threats - deforestation, climate change, and human activity are endangering this vital ecosystem. Scientists estimate we're losing an area the size of a football field every single minute. Protecting the Amazon isn't just about saving trees - it's about preserving Earth's climate, biodiversity, and the future of our planet.",
				},
			},
		},
	},
}
