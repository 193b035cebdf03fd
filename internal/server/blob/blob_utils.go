package blob

import (
	"regexp"
	"unicode/utf8"
)

// Match: starts with one or more / OR contains \ OR contains ..
var regexForbiddenPatterns = regexp.MustCompile(`^/+|\\+|\.\.`)

// ValidKey reports whether key is usable as an S3 object key.
func ValidKey(key string) bool {
	// S3 keys must be between 1 and 1024 bytes long
	if len(key) == 0 || len(key) > 1024 {
		return false
	} else if key == "." || key == ".." {
		return false
	}

	if regexForbiddenPatterns.MatchString(key) {
		return false
	}

	// S3 keys must be valid UTF-8 strings
	return utf8.ValidString(key)
}
