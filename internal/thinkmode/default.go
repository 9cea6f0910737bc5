package thinkmode

import "github.com/dkarpele/havengate/internal/model"

// Known mode ids.
const (
	ModeProsCons      = "pros-cons"
	ModeStepByStep    = "step-by-step"
	ModeSocratic      = "socratic"
	ModeReflective    = "reflective"
	ModeRootCause     = "root-cause"
	ModePlainLanguage = "plain-language"
)

// DefaultTables returns the built-in thinking-mode policy. journal-starter
// deliberately has no entry: activities outside these tables run without a
// mode. Returned fresh on each call so loaded copies can be mutated during
// merge without touching the built-ins.
func DefaultTables() *Tables {
	return &Tables{
		Defaults: map[string]string{
			"decision-helper":   ModeProsCons,
			"thought-reframe":   ModeReflective,
			"worry-plan":        ModeStepByStep,
			"mood-summary":      NoMode,
			"gratitude-ideas":   ModeReflective,
			"boundary-script":   NoMode,
			"concept-explainer": ModePlainLanguage,
			"sleep-checklist":   ModeStepByStep,
			"coping-guide":      ModeStepByStep,
			"self-check-quiz":   ModeSocratic,
			"values-compass":    ModeSocratic,
		},
		Allowed: map[string][]string{
			"decision-helper":   {ModeProsCons, ModeStepByStep, ModeRootCause},
			"thought-reframe":   {ModeReflective, ModeSocratic},
			"worry-plan":        {ModeStepByStep, ModeRootCause},
			"mood-summary":      {ModeReflective},
			"gratitude-ideas":   {ModeReflective},
			"boundary-script":   {},
			"concept-explainer": {ModePlainLanguage, ModeStepByStep},
			"sleep-checklist":   {ModeStepByStep},
			"coping-guide":      {ModeStepByStep, ModePlainLanguage},
			"self-check-quiz":   {ModeSocratic},
			"values-compass":    {ModeSocratic, ModeReflective},
		},
		Overrides: map[string]Override{
			"decision-helper":   {Permitted: true, Whitelist: []string{ModeProsCons, ModeStepByStep}},
			"concept-explainer": {Permitted: true, Whitelist: []string{ModePlainLanguage, ModeStepByStep}},
			"values-compass":    {Permitted: true, Whitelist: []string{ModeReflective}},
			"worry-plan":        {Permitted: true, Whitelist: []string{ModeRootCause}},
		},
		Surfacing: map[string]model.Surfacing{
			"decision-helper":   model.SurfacingExplicit,
			"thought-reframe":   model.SurfacingHidden,
			"worry-plan":        model.SurfacingImplicit,
			"mood-summary":      model.SurfacingHidden,
			"gratitude-ideas":   model.SurfacingHidden,
			"boundary-script":   model.SurfacingHidden,
			"concept-explainer": model.SurfacingExplicit,
			"sleep-checklist":   model.SurfacingImplicit,
			"coping-guide":      model.SurfacingImplicit,
			"self-check-quiz":   model.SurfacingHidden,
			"values-compass":    model.SurfacingExplicit,
		},
	}
}
