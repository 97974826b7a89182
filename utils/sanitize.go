package utils

import "github.com/microcosm-cc/bluemonday"

// Todo text and display names are plain text; strip every tag rather than
// allowing a safe subset.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize removes HTML from user supplied text to prevent stored XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
