// Package validation checks names, tags and numeric input coming from scene
// files, configuration and callers of the entity registry.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits applied to scene input
const (
	MaxSceneSize     = 4 * 1024 * 1024 // 4MB max scene document
	MaxEntityNameLen = 64
	MaxTagLen        = 32
	MaxTagsPerEntity = 16
)

var (
	// Names may contain letters, digits and a few separators but no spaces,
	// so they can be used as map keys and in terminal output unchanged.
	validNameChars = regexp.MustCompile(`^[\p{L}\p{N}_\-.:/#]+$`)
)

// ValidateEntityName trims and checks a registry name
func ValidateEntityName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("entity name cannot be empty")
	}

	if !utf8.ValidString(name) {
		return "", fmt.Errorf("entity name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("entity name cannot be only whitespace")
	}

	if n := utf8.RuneCountInString(trimmed); n > MaxEntityNameLen {
		return "", fmt.Errorf("entity name too long: %d characters (max %d)", n, MaxEntityNameLen)
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("entity name contains control characters")
		}
	}

	if !validNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("entity name %q contains invalid characters (letters, digits and _-.:/# allowed)", trimmed)
	}

	return trimmed, nil
}

// ValidateTag checks a single tag. Tags are free-form and compared
// exactly, so the tag is returned unchanged.
func ValidateTag(tag string) (string, error) {
	if tag == "" {
		return "", fmt.Errorf("tag cannot be empty")
	}
	if !utf8.ValidString(tag) {
		return "", fmt.Errorf("tag contains invalid UTF-8 characters")
	}
	if n := utf8.RuneCountInString(tag); n > MaxTagLen {
		return "", fmt.Errorf("tag too long: %d characters (max %d)", n, MaxTagLen)
	}
	for _, r := range tag {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("tag %q contains control characters", tag)
		}
	}
	return tag, nil
}

// ValidateTags checks a tag list and drops exact duplicates, keeping order
func ValidateTags(tags []string) ([]string, error) {
	if len(tags) > MaxTagsPerEntity {
		return nil, fmt.Errorf("too many tags: %d (max %d)", len(tags), MaxTagsPerEntity)
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, err := ValidateTag(tag); err != nil {
			return nil, err
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out, nil
}

// ValidateFinite rejects NaN and infinities
func ValidateFinite(field string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite, got %v", field, v)
		}
	}
	return nil
}

// ValidateNonNegative rejects negative or non-finite values
func ValidateNonNegative(field string, values ...float64) error {
	if err := ValidateFinite(field, values...); err != nil {
		return err
	}
	for _, v := range values {
		if v < 0 {
			return fmt.Errorf("%s cannot be negative: %v", field, v)
		}
	}
	return nil
}

// ValidateSceneSize checks a scene document against MaxSceneSize
func ValidateSceneSize(size int64) error {
	if size > MaxSceneSize {
		return fmt.Errorf("scene too large: %d bytes (max %d)", size, MaxSceneSize)
	}
	return nil
}
