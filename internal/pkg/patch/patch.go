package patch

import "strings"

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// NonEmpty returns s unless it is nil or blank after trimming spaces.
func NonEmpty(s *string, fallback string) string {
	v := Coalesce(s, "")
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
