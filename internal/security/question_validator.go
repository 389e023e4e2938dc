package security

import (
	"fmt"
	"regexp"
	"strings"
)

const MaxQuestionLength = 1000

// injectionPatterns catches attempts to steer the planner away from its
// instruction set. The question is forwarded verbatim into an LLM prompt,
// so this runs before any provider call.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)override\s+(all\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)new\s+context\s*:`),
	regexp.MustCompile(`(?i)\bsystem\s+prompt\b`),
	regexp.MustCompile(`(?i)instead\s+of\s+the\s+above`),
}

// QuestionValidator screens business questions before they reach the
// planner.
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidationResult contains validation outcome
type ValidationResult struct {
	Valid   bool
	Message string
}

// Validate checks length and injection patterns. Emptiness is the
// orchestrator's own precondition and is not re-checked here.
func (v *QuestionValidator) Validate(question string) ValidationResult {
	if len(question) > MaxQuestionLength {
		return ValidationResult{
			Valid:   false,
			Message: fmt.Sprintf("question too long: %d chars (max %d)", len(question), MaxQuestionLength),
		}
	}

	for _, pattern := range injectionPatterns {
		if pattern.MatchString(question) {
			return ValidationResult{
				Valid:   false,
				Message: "question contains a prompt-injection pattern",
			}
		}
	}

	if strings.TrimSpace(question) == "" {
		return ValidationResult{Valid: false, Message: "question cannot be empty"}
	}

	return ValidationResult{Valid: true, Message: "ok"}
}
