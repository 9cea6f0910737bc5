package contract

import "github.com/dkarpele/havengate/internal/model"

// DefaultContracts is the built-in activity table. One entry per activity
// the assistant offers; an activity absent here is wholly unrunnable,
// whatever the other policy tables say.
var DefaultContracts = map[string]Contract{
	"decision-helper": {
		OutputType: model.OutAnalysis,
		Structure:  "A balanced analysis of the options the user is weighing, covering each option's upsides and downsides before any lean.",
		AllowedTransformations: []string{
			"restructure the user's options into comparable dimensions",
			"surface tradeoffs the user implied but did not name",
		},
		DisallowedBehaviors: []string{
			"making the decision for the user",
			"presenting one option as objectively correct",
		},
		CompletionCriteria: []string{
			"every option the user named is covered",
			"at least one consideration per option",
		},
	},
	"thought-reframe": {
		OutputType: model.OutDraft,
		Structure:  "A gentler rewording of the user's thought that keeps its factual content intact.",
		AllowedTransformations: []string{
			"soften absolute language",
			"separate facts from interpretations",
		},
		DisallowedBehaviors: []string{
			"dismissing or minimizing the user's feeling",
			"adding claims the user did not make",
		},
		CompletionCriteria: []string{
			"the original concern is still recognizable",
			"the reframe is phrased in the user's voice",
		},
	},
	"worry-plan": {
		OutputType: model.OutPlan,
		Structure:  "A short sequence of concrete, ordered steps for handling the named worry, smallest step first.",
		AllowedTransformations: []string{
			"break a vague worry into actionable parts",
			"order steps by effort",
		},
		DisallowedBehaviors: []string{
			"medical or legal advice",
			"promising outcomes",
		},
		CompletionCriteria: []string{
			"steps are concrete enough to start today",
			"no step depends on information the user does not have",
		},
	},
	"mood-summary": {
		OutputType: model.OutSummary,
		Structure:  "A brief neutral summary of what the user reported feeling, in their own terms.",
		AllowedTransformations: []string{
			"condense repeated statements",
			"group related feelings",
		},
		DisallowedBehaviors: []string{
			"diagnosing",
			"speculating about causes the user did not mention",
		},
		CompletionCriteria: []string{
			"every feeling the user named appears",
			"no evaluation of whether feelings are justified",
		},
	},
	"gratitude-ideas": {
		OutputType: model.OutIdeas,
		Structure:  "A numbered list of specific, small things the user could notice or appreciate, grounded in what they shared.",
		AllowedTransformations: []string{
			"personalize generic prompts with the user's context",
		},
		DisallowedBehaviors: []string{
			"toxic positivity",
			"implying the user should feel grateful",
		},
		CompletionCriteria: []string{
			"at least three distinct ideas",
			"each idea is specific, not a platitude",
		},
	},
	"boundary-script": {
		OutputType: model.OutScript,
		Structure:  "Literal words the user could say to set the boundary they described, with a short fallback if pushed.",
		AllowedTransformations: []string{
			"adjust register to the relationship the user described",
		},
		DisallowedBehaviors: []string{
			"escalatory or accusatory phrasing",
			"speaking for the other person",
		},
		CompletionCriteria: []string{
			"the script states the boundary and one consequence",
			"phrasing is first-person",
		},
	},
	"concept-explainer": {
		OutputType: model.OutExplanation,
		Structure:  "A plain-language explanation of the wellbeing concept the user asked about, with one everyday example.",
		AllowedTransformations: []string{
			"simplify clinical terminology",
		},
		DisallowedBehaviors: []string{
			"presenting contested theories as settled",
			"diagnosing the user with the concept",
		},
		CompletionCriteria: []string{
			"no unexplained jargon remains",
			"includes a concrete example",
		},
	},
	"sleep-checklist": {
		OutputType: model.OutChecklist,
		Structure:  "A checklist of evening habits the user can tick off, ordered from afternoon to bedtime.",
		AllowedTransformations: []string{
			"drop items that conflict with the user's stated constraints",
		},
		DisallowedBehaviors: []string{
			"medication suggestions",
			"rigid prescriptions",
		},
		CompletionCriteria: []string{
			"items are checkable yes/no",
			"fits the user's described schedule",
		},
	},
	"coping-guide": {
		OutputType: model.OutGuide,
		Structure:  "A walkthrough of one coping technique: when to use it, how to do it, what to expect.",
		AllowedTransformations: []string{
			"adapt pacing to the user's experience level",
		},
		DisallowedBehaviors: []string{
			"framing the technique as a treatment",
			"stacking multiple techniques into one guide",
		},
		CompletionCriteria: []string{
			"covers when, how, and what to expect",
			"technique is safe to try unsupervised",
		},
	},
	"self-check-quiz": {
		OutputType: model.OutQuiz,
		Structure:  "A few reflective questions with an answer key that explains what each answer might suggest.",
		AllowedTransformations: []string{
			"tailor questions to the topic the user raised",
		},
		DisallowedBehaviors: []string{
			"scoring the user",
			"clinical screening language",
		},
		CompletionCriteria: []string{
			"every question has an answer note",
			"no question presumes a problem exists",
		},
	},
	"values-compass": {
		OutputType: model.OutAnalysis,
		Structure:  "An analysis connecting the user's recent choices to the values those choices express.",
		AllowedTransformations: []string{
			"name values the user showed but did not state",
		},
		DisallowedBehaviors: []string{
			"ranking the user's values",
			"moral judgment of choices",
		},
		CompletionCriteria: []string{
			"each named value ties to something the user said",
			"tensions between values are noted, not resolved",
		},
	},
	"journal-starter": {
		OutputType: model.OutDraft,
		Structure:  "An opening paragraph the user can continue journaling from, written in second person.",
		AllowedTransformations: []string{
			"pick up threads from what the user shared",
		},
		DisallowedBehaviors: []string{
			"answering the prompt for the user",
			"leading questions that presume a feeling",
		},
		CompletionCriteria: []string{
			"ends mid-thought so the user continues",
			"neutral, invitational tone",
		},
	},
}
