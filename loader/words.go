package loader

// Built-in word lists. The parser drops prepositions and determiners
// from input so "look at the dog" and "look dog" read the same, and
// recognizes movement phrases like "go south". A catalog may override
// any of these lists; most games keep the defaults.

func defaultPrepositions() []string {
	return []string{
		"aboard", "about", "above", "across", "after", "against", "along",
		"amid", "among", "around", "as", "at", "before", "behind", "below",
		"beneath", "beside", "between", "beyond", "but", "by", "concerning",
		"considering", "despite", "during", "except", "following", "for",
		"from", "in", "inside", "into", "like", "minus", "near", "next",
		"of", "off", "on", "onto", "opposite", "out", "outside", "over",
		"past", "per", "plus", "regarding", "round", "save", "since",
		"than", "through", "till", "to", "toward", "under", "underneath",
		"unlike", "until", "up", "upon", "versus", "via", "with", "within",
		"without",
	}
}

func defaultDeterminers() []string {
	return []string{
		"my", "our", "your", "his", "her", "its", "their", "first",
		"second", "third", "next", "last", "much", "some", "no", "any",
		"many", "enough", "several", "little", "all", "lot of",
		"plenty of", "another", "a", "an", "the", "each", "every",
		"neither", "either", "one", "two", "three", "ten", "fifty",
		"hundred", "thousand",
	}
}

func defaultMovements() []string {
	return []string{
		"go", "move", "run", "walk", "jog", "amble", "dart", "limp",
		"saunter", "scamper", "scurry", "stagger", "strut", "swagger",
		"tiptoe", "waltz", "sneak",
	}
}

func defaultDirections() []string {
	return []string{"north", "south", "east", "west", "up", "down", "left", "right"}
}

// applyWordDefaults fills in any word list the catalog left empty.
func applyWordDefaults(prepositions, determiners, movements, directions []string) ([]string, []string, []string, []string) {
	if len(prepositions) == 0 {
		prepositions = defaultPrepositions()
	}
	if len(determiners) == 0 {
		determiners = defaultDeterminers()
	}
	if len(movements) == 0 {
		movements = defaultMovements()
	}
	if len(directions) == 0 {
		directions = defaultDirections()
	}
	return prepositions, determiners, movements, directions
}
