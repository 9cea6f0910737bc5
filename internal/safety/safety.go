// Package safety is the last content gate before output delivery. It
// scans the user input and the model output together against four fixed
// pattern categories and returns the first category that matches.
package safety

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dkarpele/havengate/internal/model"
)

// Category names, in scan priority order (must not be changed):
//  1. minors    -> block
//  2. self-harm -> redirect
//  3. harm-others -> redirect
//  4. illegal   -> redirect
const (
	CategoryMinors     = "minors"
	CategorySelfHarm   = "self-harm"
	CategoryHarmOthers = "harm-others"
	CategoryIllegal    = "illegal"
)

// categoryOrder fixes the scan priority. The first matching category wins;
// later categories are never consulted.
var categoryOrder = []string{CategoryMinors, CategorySelfHarm, CategoryHarmOthers, CategoryIllegal}

// Result is the filter's verdict. Message is the redirect text shown to
// the user; empty for allow and for block.
type Result struct {
	Outcome  model.SafetyOutcome `json:"outcome"`
	Category string              `json:"category,omitempty"`
	Message  string              `json:"message,omitempty"`
}

// Filter holds compiled patterns per category. Immutable after
// construction; safe for concurrent use.
type Filter struct {
	patterns map[string][]*regexp.Regexp
}

// New compiles a raw pattern table into a Filter. Unknown category names
// and invalid patterns are rejected.
func New(raw map[string][]string) (*Filter, error) {
	compiled := make(map[string][]*regexp.Regexp, len(raw))
	for category, exprs := range raw {
		if !knownCategory(category) {
			return nil, fmt.Errorf("unknown safety category %q", category)
		}
		for _, expr := range exprs {
			re, err := regexp.Compile("(?i)" + expr)
			if err != nil {
				return nil, fmt.Errorf("category %s: pattern %q: %w", category, expr, err)
			}
			compiled[category] = append(compiled[category], re)
		}
	}
	return &Filter{patterns: compiled}, nil
}

// NewDefault builds a Filter from the built-in pattern table.
func NewDefault() *Filter {
	f, err := New(DefaultPatterns())
	if err != nil {
		panic("safety: built-in patterns do not compile: " + err.Error())
	}
	return f
}

// Check scans input and output as one text. Categories are tested in
// priority order and the first match decides the outcome: minors blocks,
// the other three redirect, no match allows. Pure function.
func (f *Filter) Check(inputText, outputText string) Result {
	text := strings.ToLower(inputText + "\n" + outputText)

	for _, category := range categoryOrder {
		for _, re := range f.patterns[category] {
			if re.MatchString(text) {
				if category == CategoryMinors {
					return Result{Outcome: model.SafetyBlock, Category: category}
				}
				return Result{
					Outcome:  model.SafetyRedirect,
					Category: category,
					Message:  redirectMessages[category],
				}
			}
		}
	}

	return Result{Outcome: model.SafetyAllow}
}

func knownCategory(name string) bool {
	for _, c := range categoryOrder {
		if c == name {
			return true
		}
	}
	return false
}
