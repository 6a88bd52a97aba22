package flags

import (
	"errors"
	"fmt"
	"strings"
)

const (
	choiceSeparatorLiteral    = "|"
	choiceListSeparator       = ", "
	placeholderTemplate       = "`<%s>`"
	unsupportedChoiceTemplate = "%w: %q (expected one of %s)"
)

// ErrUnsupportedChoice indicates a value outside the allowed choices.
var ErrUnsupportedChoice = errors.New("unsupported choice")

// ParseChoice matches value against choices case-insensitively and returns the canonical choice.
func ParseChoice(value string, choices []string) (string, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(value))
	allowedChoices := uniqueChoices(choices)
	for _, choice := range allowedChoices {
		if strings.ToLower(choice) == normalizedValue {
			return choice, nil
		}
	}
	return "", fmt.Errorf(unsupportedChoiceTemplate, ErrUnsupportedChoice, value, strings.Join(allowedChoices, choiceListSeparator))
}

// FormatChoiceUsage renders "`<a|B|c>` description" with the default choice upper-cased.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	displayChoices := uniqueChoices(choices)
	for choiceIndex, choice := range displayChoices {
		if strings.ToLower(choice) == normalizedDefault {
			displayChoices[choiceIndex] = strings.ToUpper(choice)
		}
	}

	placeholder := fmt.Sprintf(placeholderTemplate, strings.Join(displayChoices, choiceSeparatorLiteral))
	if trimmedDescription := strings.TrimSpace(description); len(trimmedDescription) > 0 {
		return placeholder + " " + trimmedDescription
	}
	return placeholder
}

// uniqueChoices trims choices and drops blanks and case-insensitive duplicates, keeping first spellings.
func uniqueChoices(choices []string) []string {
	seen := make(map[string]struct{}, len(choices))
	unique := make([]string, 0, len(choices))
	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, duplicate := seen[normalizedChoice]; duplicate || len(trimmedChoice) == 0 {
			continue
		}
		seen[normalizedChoice] = struct{}{}
		unique = append(unique, trimmedChoice)
	}
	return unique
}
