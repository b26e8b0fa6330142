package enums

import "fmt"

// PromptVisibility controls where a prompt surfaces inside its team.
type PromptVisibility string

const (
	// PromptVisibilityTeam prompts appear in team listings.
	PromptVisibilityTeam PromptVisibility = "team"
	// PromptVisibilityUnlisted prompts are excluded from listings but remain
	// fetchable by ID for any active member.
	PromptVisibilityUnlisted PromptVisibility = "unlisted"
)

var validPromptVisibilities = []PromptVisibility{
	PromptVisibilityTeam,
	PromptVisibilityUnlisted,
}

// String implements fmt.Stringer.
func (v PromptVisibility) String() string {
	return string(v)
}

// IsValid reports whether the value matches a known PromptVisibility.
func (v PromptVisibility) IsValid() bool {
	for _, candidate := range validPromptVisibilities {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParsePromptVisibility converts raw input into a PromptVisibility.
func ParsePromptVisibility(value string) (PromptVisibility, error) {
	for _, candidate := range validPromptVisibilities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid prompt visibility %q", value)
}
