package lib

import (
	"regexp"
	"strings"
)

const CommunityNameMaxLength = 50

var (
	slugInvalidCharacters = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace        = regexp.MustCompile(`\s+`)
	slugDashes            = regexp.MustCompile(`-+`)
	communityNamePattern  = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Slugify derives a URL-safe community name from a display name.
func Slugify(displayName string) string {
	slug := strings.ToLower(strings.TrimSpace(displayName))
	slug = slugInvalidCharacters.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugDashes.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// IsValidCommunityName reports whether name may appear in a community URL.
func IsValidCommunityName(name string) bool {
	return len(name) <= CommunityNameMaxLength && communityNamePattern.MatchString(name)
}
