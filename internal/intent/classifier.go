// Package intent classifies user input into coarse request categories.
package intent

import (
	"strings"

	"github.com/fibank-ai/bankbot/internal/config"
)

// General is the intent returned when no pattern matches.
const General = "general"

// matchConfidence is the fixed score assigned to any pattern match. All
// matches score equal, so the earliest configured category that matches
// wins; later matches never overwrite it. This is intentional, keep it
// unless graduated scoring becomes a requirement.
const matchConfidence = 0.8

// Classifier matches input against ordered pattern groups.
type Classifier struct {
	groups []config.IntentGroup
}

// NewClassifier creates a classifier over the given ordered pattern groups.
func NewClassifier(groups []config.IntentGroup) *Classifier {
	return &Classifier{groups: groups}
}

// Classify returns the best intent and its confidence for the input text.
// Unmatched input yields ("general", 0.0).
func (c *Classifier) Classify(text string) (string, float64) {
	lower := strings.ToLower(text)

	bestIntent := General
	bestScore := 0.0

	for _, group := range c.groups {
		for _, pattern := range group.Patterns {
			if pattern.MatchString(lower) {
				if matchConfidence > bestScore {
					bestScore = matchConfidence
					bestIntent = group.Intent
				}
				break
			}
		}
	}

	return bestIntent, bestScore
}
