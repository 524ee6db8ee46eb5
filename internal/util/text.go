package util

import "strings"

// SanitizePostgresText strips null bytes and invalid UTF-8 so extracted text
// can be stored in text columns without driver errors.
func SanitizePostgresText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.ReplaceAll(sanitized, "\x00", "")
}

// CollapseWhitespace squeezes runs of whitespace (including newlines) into
// single spaces. Model output for labels and descriptions often carries
// stray line breaks.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
