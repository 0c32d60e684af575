package assist

import "strings"

// Classifier maps free text to an intent from the fixed catalog.
// It is stateless and safe for concurrent use.
type Classifier struct{}

// NewClassifier creates a classifier over the built-in rule set.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify scores normalized input against every keyword rule and returns the
// best-matching intent.
//
// Rules, in order:
//  1. Emergency override: any emergency trigger substring returns the
//     emergency intent immediately, bypassing scoring.
//  2. Score per intent = number of its triggers contained in the input.
//  3. Strictly highest score wins; ties go to the first rule in declaration
//     order.
//  4. A best score of zero (including empty or whitespace-only input)
//     resolves to the default intent.
func (c *Classifier) Classify(text string) Intent {
	input := strings.ToLower(strings.TrimSpace(text))

	for _, trigger := range emergencyOverrides {
		if strings.Contains(input, trigger) {
			return Lookup(IntentEmergency)
		}
	}

	best := IntentDefault
	bestScore := 0

	for _, rule := range keywordRules {
		score := 0
		for _, trigger := range rule.triggers {
			if strings.Contains(input, trigger) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = rule.intent
		}
	}

	return Lookup(best)
}
