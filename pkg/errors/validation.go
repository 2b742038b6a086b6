package errors

import (
	"strings"
	"unicode"
)

// ValidateSheetName validates a worksheet name against the constraints of
// the xlsx format.
//
// The rules mirror what spreadsheet applications enforce:
//   - No empty names
//   - Maximum length of 31 characters
//   - None of the reserved characters : \ / ? * [ ]
//   - No leading or trailing apostrophe
func ValidateSheetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSheet, "sheet name cannot be empty")
	}

	if len(name) > 31 {
		return New(ErrCodeInvalidSheet, "sheet name too long (max 31 characters)")
	}

	if strings.ContainsAny(name, `:\/?*[]`) {
		return New(ErrCodeInvalidSheet, `sheet name cannot contain any of : \ / ? * [ ]`)
	}

	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return New(ErrCodeInvalidSheet, "sheet name cannot begin or end with an apostrophe")
	}

	return nil
}

// ValidateFilePath validates a user-supplied document path.
// Paths may be relative or absolute; the checks only reject values that can
// never name a real file.
func ValidateFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
