package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateHexColor checks a branding color like "#3b82f6"
func ValidateHexColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return fmt.Errorf("invalid hex color: %s", color)
	}
	return nil
}

// SanitizeFilename strips characters that are unsafe in a download
// filename or a Content-Disposition header
func SanitizeFilename(name string) string {
	sanitized := regexp.MustCompile(`[\x00-\x1f\x7f/\\:*?"<>|]`).ReplaceAllString(name, "")
	return strings.TrimSpace(sanitized)
}
