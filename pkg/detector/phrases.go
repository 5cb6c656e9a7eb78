package detector

// PhraseConfig holds the pattern lists the detector scores against.
// They are configuration, not code: swap a list to retune a dimension
// without touching scoring logic.
type PhraseConfig struct {
	// AIIsms are phrases statistically overrepresented in LLM output,
	// sourced from detection literature and empirical observation.
	AIIsms []string

	// HedgeWords are qualifiers that soften and flatten voice.
	HedgeWords []string

	// FormalTransitions are connective phrases LLMs overuse.
	FormalTransitions []string

	// VagueQuantities are quantity phrases that signal fake specificity.
	VagueQuantities []string
}

// DefaultPhrases returns the stock pattern lists.
func DefaultPhrases() PhraseConfig {
	return PhraseConfig{
		AIIsms: []string{
			// Opening constructions
			"in the realm of", "in the world of", "in today's", "in an era of",
			"in a world where", "in the landscape of", "in the domain of",
			"navigating the complexities", "when it comes to",

			// Transition tells
			"furthermore", "moreover", "additionally", "in conclusion",
			"to summarize", "in summary", "it is worth noting", "it is important to note",
			"needless to say", "as mentioned", "as noted above", "it goes without saying",
			"last but not least",

			// Hedge constructions
			"it may be worth considering", "one might argue", "it could be said",
			"it is generally accepted", "it is widely recognized",
			"many experts believe", "studies suggest", "research indicates",
			"it is often said", "as many know",

			// Generic superlatives
			"world-class", "top-tier", "cutting-edge", "state-of-the-art",
			"industry-leading", "best-in-class", "unparalleled", "unmatched",
			"second to none", "bar none",

			// Fake-specificity trust signals
			"a wide range of", "a variety of", "a number of", "various options",
			"numerous benefits", "countless advantages", "many years of experience",
			"decades of experience",

			// Passion/mission language
			"passionate about", "committed to excellence", "dedicated to providing",
			"our mission is to", "we are dedicated to", "we pride ourselves",
			"we are proud to", "our goal is to", "we strive to",

			// CTA boilerplate
			"look no further", "don't hesitate to", "feel free to contact",
			"we would love to hear", "we look forward to",

			// Structural tells
			"in addition to the above", "as a result", "due to the fact that",
			"in order to", "with that in mind", "that being said",
			"on the other hand", "on one hand",
		},

		HedgeWords: []string{
			"perhaps", "maybe", "possibly", "potentially", "somewhat",
			"fairly", "rather", "quite", "a bit", "a little",
			"sort of", "kind of", "generally", "typically", "usually",
			"often", "sometimes", "in most cases", "in many cases",
			"it seems", "it appears", "it would seem", "it would appear",
		},

		FormalTransitions: []string{
			"furthermore", "moreover", "additionally", "consequently",
			"subsequently", "nevertheless", "nonetheless", "therefore",
			"thus", "hence", "accordingly", "as a result",
			"in conclusion", "to conclude", "in summary", "to summarize",
			"first and foremost", "last but not least", "in addition",
		},

		VagueQuantities: []string{
			"many", "various", "several", "numerous", "countless",
			"a lot of", "lots of", "tons of", "a wide range of",
			"a variety of", "a number of", "multiple",
		},
	}
}
