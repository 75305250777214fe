package common

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidName is returned for blank or duplicate player names
var ErrInvalidName = errors.New("invalid name")

// ValidatePlayerNames checks that every name is non-blank and unique
// ignoring case.
func ValidatePlayerNames(names []string) error {
	seen := make(map[string]int, len(names))
	for i, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return fmt.Errorf("player %d: %w: blank", i, ErrInvalidName)
		}
		if j, dup := seen[key]; dup {
			return fmt.Errorf("player %d: %w: %q duplicates player %d", i, ErrInvalidName, name, j)
		}
		seen[key] = i
	}
	return nil
}
