// Package prompt deterministically assembles model prompts. Assembly is
// pure concatenation in a fixed order; the only decision it makes is
// whether the mode block is present. User input passes through verbatim.
package prompt

import "strings"

// Assemble builds the prompt for one pipeline run: the shared skeleton,
// the activity's instructional fragment, a delimited mode-announcement
// block when a mode was resolved (modeID non-empty), and the raw user
// input, in that order, separated by blank lines.
func Assemble(activityID, modeID, userInput string) string {
	sections := make([]string, 0, 4)
	sections = append(sections, Skeleton, Fragment(activityID))

	if modeID != "" {
		sections = append(sections, modeBlockHeader+"\n"+modeID+"\n"+modeBlockFooter)
	}

	sections = append(sections, userInput)
	return strings.Join(sections, "\n\n")
}
