package util

import (
	"errors"
	"strings"
)

// ErrInvalidFileName is returned for empty names or traversal attempts.
var ErrInvalidFileName = errors.New("invalid file name")

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", "\x00", "")

// SanitizeFileName flattens path separators out of an uploaded file name
// and rejects names that could escape the storage namespace.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := fileNameReplacer.Replace(strings.TrimSpace(name))
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
