// Package sanitize prepares model output for storage in Notion: it strips
// inline image payloads the client may have embedded in a message body and
// splits long text into segments the Notion API will accept.
package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SegmentLimit is the maximum length of a single rich text element.
// Notion counts it in UTF-16 code units.
const SegmentLimit = 2000

// MaxPayloadRunes bounds the total text written to a page in one save.
const MaxPayloadRunes = 100000

// TruncationMarker is appended when CapText cuts a payload short.
const TruncationMarker = "\n...(Truncated)..."

// attachmentMarker is the placeholder the client inserts into a message
// body when the user sends an image instead of text.
const attachmentMarker = "[画像送信]"

var (
	markdownImagePattern = regexp.MustCompile(`(?s)!\[.*?\]\(data:image/.*?\)`)
	htmlImagePattern     = regexp.MustCompile(`(?s)<img[^>]+src=["']data:image/[^"']+["'][^>]*>`)
)

// StripEmbeddedImages removes base64 image payloads in both their markdown
// and HTML forms, drops the client's attachment marker, and trims the
// surrounding whitespace. Running it twice yields the same result.
func StripEmbeddedImages(s string) string {
	s = markdownImagePattern.ReplaceAllString(s, "")
	s = htmlImagePattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, attachmentMarker, "")
	return strings.TrimSpace(s)
}

// ChunkText splits s into segments of at most limit UTF-16 code units
// without ever splitting a rune. Concatenating the returned segments
// reproduces s exactly. Empty input yields no segments.
func ChunkText(s string, limit int) []string {
	if s == "" || limit <= 0 {
		return nil
	}
	var segments []string
	start := 0
	units := 0
	for i, r := range s {
		w := 1
		if r > 0xFFFF {
			w = 2 // encodes as a surrogate pair
		}
		if units+w > limit && i > start {
			segments = append(segments, s[start:i])
			start = i
			units = 0
		}
		units += w
	}
	return append(segments, s[start:])
}

// CapText truncates s to at most limit runes and appends TruncationMarker
// when anything was cut. The boolean reports whether truncation happened.
func CapText(s string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	seen := 0
	for i := range s {
		if seen == limit {
			return s[:i] + TruncationMarker, true
		}
		seen++
	}
	return s, false
}
