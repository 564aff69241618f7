package util

import (
	"errors"
	"strings"
)

var separatorReplacer = strings.NewReplacer("/", "_", "\\", "_")

// SanitizeFileName flattens path separators out of a client-supplied file
// name and rejects traversal sequences outright. Attachment and export names
// pass through here before touching the object store.
func SanitizeFileName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.Contains(trimmed, "..") {
		return "", errors.New("invalid file name")
	}
	return separatorReplacer.Replace(trimmed), nil
}
