package risk

// DefaultSets holds the built-in keyword sets, one per non-green level.
// The classifier scans red first, then orange, then yellow: any red-level
// phrase anywhere in a message dominates weaker matches. The sets are
// deliberately over-inclusive — false positives are accepted, missed
// escalations to red are not.
var DefaultSets = Sets{
	Red: []string{
		"kill myself",
		"end my life",
		"want to die",
		"want to end it",
		"end it all",
		"suicide",
		"suicidal",
		"no reason to live",
		"better off dead",
		"hurt myself",
		"harm myself",
		"self harm",
		"self-harm",
		"overdose",
		"can't keep living",
	},
	Orange: []string{
		"hopeless",
		"no way out",
		"can't go on",
		"cant go on",
		"worthless",
		"nothing matters",
		"hate myself",
		"give up on everything",
		"everyone would be fine without me",
		"no point anymore",
	},
	Yellow: []string{
		"anxious",
		"anxiety",
		"panic",
		"panicking",
		"overwhelmed",
		"depressed",
		"can't sleep",
		"cant sleep",
		"so stressed",
		"scared all the time",
		"lonely",
		"crying",
		"exhausted",
	},
}
