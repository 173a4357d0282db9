// Package validation holds input validation and sanitization helpers.
package validation

import (
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Article length must be in (0, maxArticleLength].
const MaxArticleLength = 4000

// MaxPromptLength caps user prompts, in characters.
const MaxPromptLength = 1000

// MaxResumeSizeBytes caps uploaded resume PDFs at 5 MB.
const MaxResumeSizeBytes = 5 * 1024 * 1024

// MaxImageSizeBytes caps uploaded images at 10 MB.
const MaxImageSizeBytes = 10 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// SanitizePrompt strips angle brackets so stored prompts can never carry
// markup, and trims surrounding whitespace.
func SanitizePrompt(s string) string {
	return strings.TrimSpace(angleBrackets.Replace(s))
}

// ValidPromptLength reports whether the prompt fits within the accepted
// character count.
func ValidPromptLength(s string) bool {
	return utf8.RuneCountInString(s) <= MaxPromptLength
}

// ValidArticleLength reports whether the requested article length is in the
// accepted range. Zero and negative lengths are rejected.
func ValidArticleLength(length int) bool {
	return length > 0 && length <= MaxArticleLength
}

// AllowedImageFile reports whether an uploaded image is of an accepted type
// (JPEG, PNG or WebP). A specific declared content type wins; a missing or
// generic one falls back to the file extension.
func AllowedImageFile(filename, contentType string) bool {
	ct, _, err := mime.ParseMediaType(contentType)
	if err == nil && ct != "" && ct != "application/octet-stream" {
		return allowedImageTypes[ct]
	}
	return allowedImageExts[strings.ToLower(filepath.Ext(filename))]
}
