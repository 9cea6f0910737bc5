package prompt

// defaultFragments maps activity ids to their instructional fragment, the
// second section of an assembled prompt. Keyed by the same activity-id
// namespace as the contract registry.
var defaultFragments = map[string]string{
	"decision-helper": `Activity: decision-helper.
Lay out the options the user is weighing as a balanced analysis. Cover each option's upsides and downsides in comparable terms before noting any lean the user themselves expressed. Do not pick a winner.`,

	"thought-reframe": `Activity: thought-reframe.
Redraft the user's thought in gentler language. Keep every factual claim, soften absolutes, and separate what happened from what the user made it mean. Write it in their voice.`,

	"worry-plan": `Activity: worry-plan.
Turn the named worry into a short ordered plan. Smallest concrete step first; each step startable today with what the user already has.`,

	"mood-summary": `Activity: mood-summary.
Summarize what the user reported feeling, neutrally and in their own terms. Condense repetition, group related feelings, add nothing.`,

	"gratitude-ideas": `Activity: gratitude-ideas.
Offer a numbered list of small, specific things the user could notice or appreciate, each grounded in something they shared. No platitudes.`,

	"boundary-script": `Activity: boundary-script.
Write the literal words the user could say to set the boundary they described: the boundary, one consequence, and a short fallback line if pushed. First person throughout.`,

	"concept-explainer": `Activity: concept-explainer.
Explain the wellbeing concept the user asked about in plain language, with one everyday example. Expand any term a newcomer would not know.`,

	"sleep-checklist": `Activity: sleep-checklist.
Produce a checklist of evening habits ordered from afternoon to bedtime. Every item must be a yes/no tick, fitted to the schedule the user described.`,

	"coping-guide": `Activity: coping-guide.
Walk through one coping technique: when to reach for it, how to do it step by step, and what to expect while doing it. One technique only.`,

	"self-check-quiz": `Activity: self-check-quiz.
Write a few reflective questions about the topic the user raised, followed by an answer section explaining what each answer might suggest. No scoring, no screening language.`,

	"values-compass": `Activity: values-compass.
Analyze which values the user's recent choices express. Tie every named value to something they actually said; note tensions between values without resolving them.`,

	"journal-starter": `Activity: journal-starter.
Write an opening paragraph the user can continue journaling from, in second person, picking up threads from what they shared. End mid-thought.`,
}

// Fragment returns the instructional fragment for an activity. Activities
// without a dedicated fragment get a generic one naming the activity, so
// assembly stays total over the activity-id namespace.
func Fragment(activityID string) string {
	if f, ok := defaultFragments[activityID]; ok {
		return f
	}
	return "Activity: " + activityID + ".\nFollow the activity's contract as declared in its registry entry."
}

// HasFragment reports whether an activity has a dedicated fragment.
// The integrity checker uses this to flag contract entries without one.
func HasFragment(activityID string) bool {
	_, ok := defaultFragments[activityID]
	return ok
}
