package lib

import (
	"crypto/rand"
	"encoding/base64"
	"path/filepath"
	"regexp"
	"strings"
)

// RandomToken returns a URL-safe random string of n bytes of entropy, used
// for opaque user ids and verification tokens.
func RandomToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces a client-supplied filename to a safe basename:
// path separators stripped, anything outside [A-Za-z0-9_.-] replaced with
// underscores, leading dots removed so the result can never escape the
// uploads directory or hide as a dotfile.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "file"
	}
	return name
}

// SplitExt splits a filename into base and extension, extension included
// with its leading dot (empty when there is none).
func SplitExt(name string) (string, string) {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}
