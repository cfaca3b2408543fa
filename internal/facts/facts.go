// Package facts tracks what the user has told us about themselves.
//
// Facts are a projection of the conversation history: the extractor reads
// each user message and merges anything it recognizes into the current
// set. Nothing here calls the model — extraction is plain keyword
// matching, which is all the original vocabulary needs.
package facts

import (
	"slices"
	"strings"
)

// Fitness levels the extractor recognizes.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Defaults used at tool-argument time when nothing is known. These are
// never stored as facts — an empty Set stays empty until the user says
// something.
const (
	DefaultLevel = LevelIntermediate
	DefaultGoals = "general fitness"
)

// Set holds the persisted fitness facts for a session.
//
// Level is overwrite-on-new-evidence. Goals grow monotonically: a new
// goal is added alongside prior ones, never replacing them.
type Set struct {
	Level string
	Goals []string
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	return Set{Level: s.Level, Goals: slices.Clone(s.Goals)}
}

// Equal reports whether two fact sets hold identical facts.
func (s Set) Equal(o Set) bool {
	return s.Level == o.Level && slices.Equal(s.Goals, o.Goals)
}

// LevelOrDefault returns the known level, or the standing default.
func (s Set) LevelOrDefault() string {
	if s.Level == "" {
		return DefaultLevel
	}
	return s.Level
}

// GoalsOrDefault returns the known goals joined with commas, or the
// standing default.
func (s Set) GoalsOrDefault() string {
	if len(s.Goals) == 0 {
		return DefaultGoals
	}
	return strings.Join(s.Goals, ", ")
}

// goalRule maps trigger words to a canonical goal phrase.
type goalRule struct {
	triggers []string
	goal     string
}

var goalRules = []goalRule{
	{triggers: []string{"muscle", "strength"}, goal: "build muscle"},
	{triggers: []string{"lose", "weight", "fat"}, goal: "lose weight"},
	{triggers: []string{"endurance", "cardio"}, goal: "improve endurance"},
}

var levels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Extract merges facts found in one user message into cur and returns the
// result. It is pure and idempotent: re-running on the same message with
// already-current facts changes nothing, and unrecognized text leaves
// prior facts untouched.
func Extract(message string, cur Set) Set {
	next := cur.Clone()
	lower := strings.ToLower(message)

	for _, level := range levels {
		if strings.Contains(lower, level) {
			next.Level = level
			break
		}
	}

	for _, rule := range goalRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(lower, trigger) {
				if !slices.Contains(next.Goals, rule.goal) {
					next.Goals = append(next.Goals, rule.goal)
				}
				break
			}
		}
	}

	return next
}
