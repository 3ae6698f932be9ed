package catalog

func init() {
	lessons := seedLessons()
	if err := validateLessons(lessons); err != nil {
		panic(err)
	}
	c = buildCatalog(lessons)
}

func ex(id string, t ExerciseType, concept string, difficulty, weight int) ExerciseTemplate {
	return ExerciseTemplate{ID: id, Type: t, Concept: concept, BaseDifficulty: difficulty, Weight: weight}
}

func seedLessons() []LessonTemplate {
	return []LessonTemplate{
		// Unit 1: First steps
		{
			ID:                   "greetings-basics",
			Title:                "Greetings",
			Description:          "Say hello, goodbye, and introduce yourself.",
			Category:             CategoryVocabulary,
			BaseDifficulty:       Beginner,
			Unit:                 1,
			Order:                1,
			XPReward:             20,
			PerfectBonus:         10,
			EstimatedTimeMinutes: 5,
			ExerciseTemplates: []ExerciseTemplate{
				ex("g1", TypeMultipleChoice, "hello and goodbye", 1, 1),
				ex("g2", TypeTranslate, "introducing yourself", 1, 2),
				ex("g3", TypeMatchPairs, "greeting words", 1, 1),
				ex("g4", TypeFillBlank, "good morning / good night", 1, 1),
				ex("g5", TypeListening, "recognizing greetings", 1, 1),
			},
		},
		{
			ID:                   "numbers-1-20",
			Title:                "Numbers 1-20",
			Description:          "Count, read, and write the numbers one through twenty.",
			Category:             CategoryVocabulary,
			BaseDifficulty:       Beginner,
			Unit:                 1,
			Order:                2,
			XPReward:             20,
			PerfectBonus:         10,
			EstimatedTimeMinutes: 6,
			Prerequisites:        []string{"greetings-basics"},
			ExerciseTemplates: []ExerciseTemplate{
				ex("n1", TypeMultipleChoice, "numbers 1-10", 1, 1),
				ex("n2", TypeTyping, "spelling numbers", 2, 2),
				ex("n3", TypeMatchPairs, "digits to words", 1, 1),
				ex("n4", TypeListening, "hearing numbers 11-20", 2, 1),
				ex("n5", TypeSelectMissing, "counting sequences", 1, 1),
			},
		},
		{
			ID:                   "sounds-vowels",
			Title:                "The Five Vowels",
			Description:          "Hear and produce the pure vowel sounds.",
			Category:             CategoryPronunciation,
			BaseDifficulty:       Beginner,
			Unit:                 1,
			Order:                3,
			XPReward:             15,
			PerfectBonus:         5,
			EstimatedTimeMinutes: 4,
			ExerciseTemplates: []ExerciseTemplate{
				ex("v1", TypeListening, "vowel sounds", 1, 1),
				ex("v2", TypeSpeaking, "repeating short words", 1, 2),
				ex("v3", TypeMultipleChoice, "which vowel do you hear", 1, 1),
				ex("v4", TypeSpeaking, "minimal pairs", 2, 1),
			},
		},

		// Unit 2: Everyday sentences
		{
			ID:                   "articles-gender",
			Title:                "Articles and Gender",
			Description:          "Use el, la, los, and las with common nouns.",
			Category:             CategoryGrammar,
			BaseDifficulty:       Intermediate,
			Unit:                 2,
			Order:                4,
			XPReward:             25,
			PerfectBonus:         10,
			EstimatedTimeMinutes: 7,
			Prerequisites:        []string{"numbers-1-20"},
			ExerciseTemplates: []ExerciseTemplate{
				ex("a1", TypeMultipleChoice, "definite articles", 2, 1),
				ex("a2", TypeFillBlank, "noun gender", 2, 2),
				ex("a3", TypeSelectMissing, "plural articles", 2, 1),
				ex("a4", TypeTranslate, "article + noun phrases", 2, 2),
				ex("a5", TypeWordOrder, "simple noun phrases", 2, 1),
			},
		},
		{
			ID:                   "ser-estar",
			Title:                "Ser vs. Estar",
			Description:          "Pick the right verb for identity, location, and state.",
			Category:             CategoryGrammar,
			BaseDifficulty:       Intermediate,
			Unit:                 2,
			Order:                5,
			XPReward:             30,
			PerfectBonus:         15,
			EstimatedTimeMinutes: 8,
			Prerequisites:        []string{"articles-gender"},
			ExerciseTemplates: []ExerciseTemplate{
				ex("s1", TypeMultipleChoice, "ser for identity", 2, 1),
				ex("s2", TypeFillBlank, "estar for location", 3, 2),
				ex("s3", TypeTranslate, "temporary states", 3, 2),
				ex("s4", TypeWordOrder, "descriptive sentences", 2, 1),
				ex("s5", TypeTyping, "conjugating ser and estar", 3, 1),
				ex("s6", TypeSelectMissing, "choosing the verb", 2, 1),
			},
		},
		{
			ID:                   "cafe-order",
			Title:                "At the Café",
			Description:          "Order food and drinks politely.",
			Category:             CategoryConversation,
			BaseDifficulty:       Beginner,
			Unit:                 2,
			Order:                6,
			XPReward:             20,
			PerfectBonus:         10,
			EstimatedTimeMinutes: 6,
			ExerciseTemplates: []ExerciseTemplate{
				ex("c1", TypeMultipleChoice, "menu vocabulary", 1, 1),
				ex("c2", TypeTranslate, "polite requests", 2, 2),
				ex("c3", TypeWordOrder, "ordering a coffee", 2, 1),
				ex("c4", TypeListening, "understanding the waiter", 2, 1),
			},
		},

		// Unit 3: Past and present
		{
			ID:                   "present-regular",
			Title:                "Regular Present Tense",
			Description:          "Conjugate -ar, -er, and -ir verbs in the present.",
			Category:             CategoryGrammar,
			BaseDifficulty:       Intermediate,
			Unit:                 3,
			Order:                7,
			XPReward:             30,
			PerfectBonus:         15,
			EstimatedTimeMinutes: 8,
			Prerequisites:        []string{"ser-estar"},
			ExerciseTemplates: []ExerciseTemplate{
				ex("p1", TypeFillBlank, "-ar endings", 2, 1),
				ex("p2", TypeFillBlank, "-er endings", 2, 1),
				ex("p3", TypeFillBlank, "-ir endings", 3, 1),
				ex("p4", TypeTyping, "conjugation drill", 3, 2),
				ex("p5", TypeTranslate, "daily routine sentences", 3, 2),
			},
		},
		{
			ID:                   "listening-directions",
			Title:                "Asking for Directions",
			Description:          "Follow spoken directions around town.",
			Category:             CategoryListening,
			BaseDifficulty:       Advanced,
			Unit:                 3,
			Order:                8,
			XPReward:             35,
			PerfectBonus:         15,
			EstimatedTimeMinutes: 9,
			ExerciseTemplates: []ExerciseTemplate{
				ex("d1", TypeListening, "left, right, straight", 3, 1),
				ex("d2", TypeMultipleChoice, "landmarks", 3, 1),
				ex("d3", TypeWordOrder, "giving directions", 3, 2),
				ex("d4", TypeListening, "distances and blocks", 4, 1),
			},
		},
		{
			ID:                   "preterite-intro",
			Title:                "The Preterite",
			Description:          "Talk about completed actions in the past.",
			Category:             CategoryGrammar,
			BaseDifficulty:       Advanced,
			Unit:                 3,
			Order:                9,
			XPReward:             40,
			PerfectBonus:         20,
			EstimatedTimeMinutes: 10,
			Prerequisites:        []string{"present-regular"},
			ExerciseTemplates: []ExerciseTemplate{
				ex("t1", TypeFillBlank, "regular preterite endings", 3, 1),
				ex("t2", TypeTranslate, "yesterday I...", 4, 2),
				ex("t3", TypeMultipleChoice, "irregular stems", 4, 1),
				ex("t4", TypeTyping, "preterite of ir and ser", 4, 1),
				ex("t5", TypeWordOrder, "past-tense narration", 3, 1),
			},
		},

		// Unit 4: Beyond the basics
		{
			ID:                   "email-writing",
			Title:                "Writing an Email",
			Description:          "Write a short formal email.",
			Category:             CategoryWriting,
			BaseDifficulty:       Expert,
			Unit:                 4,
			Order:                10,
			XPReward:             45,
			PerfectBonus:         20,
			EstimatedTimeMinutes: 12,
			Prerequisites:        []string{"preterite-intro"},
			ExerciseTemplates: []ExerciseTemplate{
				ex("e1", TypeMultipleChoice, "formal greetings and closings", 3, 1),
				ex("e2", TypeTranslate, "requesting information", 4, 2),
				ex("e3", TypeTyping, "usted forms", 4, 2),
				ex("e4", TypeWordOrder, "polite phrasing", 4, 1),
			},
		},
		{
			ID:                   "festivals-culture",
			Title:                "Festivals and Traditions",
			Description:          "Learn about festivals across the Spanish-speaking world.",
			Category:             CategoryCulture,
			BaseDifficulty:       Intermediate,
			Unit:                 4,
			Order:                11,
			XPReward:             25,
			PerfectBonus:         10,
			EstimatedTimeMinutes: 7,
			ExerciseTemplates: []ExerciseTemplate{
				ex("f1", TypeMultipleChoice, "famous festivals", 2, 1),
				ex("f2", TypeMatchPairs, "festival to country", 2, 1),
				ex("f3", TypeFillBlank, "holiday vocabulary", 2, 1),
				ex("f4", TypeTranslate, "describing a celebration", 3, 2),
			},
		},
		{
			ID:                   "subjunctive-wishes",
			Title:                "Wishes and the Subjunctive",
			Description:          "Express hopes and wishes with the present subjunctive.",
			Category:             CategoryGrammar,
			BaseDifficulty:       Professional,
			Unit:                 4,
			Order:                12,
			XPReward:             50,
			PerfectBonus:         25,
			EstimatedTimeMinutes: 12,
			Prerequisites:        []string{"preterite-intro", "email-writing"},
			ExerciseTemplates: []ExerciseTemplate{
				ex("w1", TypeFillBlank, "ojalá + subjunctive", 4, 1),
				ex("w2", TypeMultipleChoice, "indicative or subjunctive", 5, 1),
				ex("w3", TypeTranslate, "I hope that...", 5, 2),
				ex("w4", TypeTyping, "irregular subjunctive forms", 5, 2),
				ex("w5", TypeWordOrder, "querer que constructions", 4, 1),
			},
		},
	}
}
