package utils

import "strings"

// SplitDisplayName splits a provider display name into first and last name.
// Everything after the first word becomes the last name.
func SplitDisplayName(displayName string) (firstName, lastName string) {
	names := strings.Fields(strings.TrimSpace(displayName))
	if len(names) == 0 {
		return "", ""
	}
	firstName = names[0]
	if len(names) > 1 {
		lastName = strings.Join(names[1:], " ")
	}
	return firstName, lastName
}
