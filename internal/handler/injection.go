package handler

import "regexp"

// injectionPatterns covers the common ways a question tries to escape the
// analysis prompt: instruction override, role reassignment, prompt
// extraction, and delimiter injection.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+|the\s+)?(previous|prior|above)\s+(instructions?|prompts?)`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+|the\s+)?(previous|prior|above)\s+(instructions?|prompts?)`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+(a|an|the)\s`),
	regexp.MustCompile(`(?i)(reveal|show|print|repeat)\s+(your\s+)?(system\s+)?prompt`),
	regexp.MustCompile(`(?i)act\s+as\s+(if\s+you\s+)?(a|an)\s+different`),
	regexp.MustCompile(`(?i)(developer|debug)\s+mode`),
	regexp.MustCompile("```"),
}

// isInjectionAttempt checks the question against all injection patterns.
// A match blocks the question before it reaches the generation service.
func isInjectionAttempt(question string) bool {
	for _, pattern := range injectionPatterns {
		if pattern.MatchString(question) {
			return true
		}
	}
	return false
}
