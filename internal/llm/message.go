package llm

import (
	"encoding/json"
	"fmt"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// NormalizeRole maps a client-supplied role string onto the set the
// completion API accepts. Anything unrecognized is treated as user input.
func NormalizeRole(s string) Role {
	switch Role(s) {
	case RoleSystem:
		return RoleSystem
	case RoleAssistant:
		return RoleAssistant
	default:
		return RoleUser
	}
}

// Message is a single chat turn in the provider wire format.
type Message struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}

// Content is either plain text or a list of typed parts (text plus image
// data URIs). It marshals to a JSON string in the first case and a JSON
// array in the second, which is what OpenAI-compatible endpoints expect.
type Content struct {
	text  string
	parts []ContentPart
}

// TextContent wraps plain text.
func TextContent(text string) Content {
	return Content{text: text}
}

// PartsContent wraps a multimodal part list.
func PartsContent(parts ...ContentPart) Content {
	return Content{parts: parts}
}

// IsMultimodal reports whether the content carries typed parts.
func (c Content) IsMultimodal() bool { return c.parts != nil }

// Parts returns the typed parts, or nil for plain text content.
func (c Content) Parts() []ContentPart { return c.parts }

// Text returns the plain text, or the concatenated text parts of
// multimodal content.
func (c Content) Text() string {
	if c.parts == nil {
		return c.text
	}
	var out string
	for _, p := range c.parts {
		if p.Type == ContentPartText {
			out += p.Text
		}
	}
	return out
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.parts != nil {
		return json.Marshal(c.parts)
	}
	return json.Marshal(c.text)
}

func (c *Content) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = Content{text: text}
		return nil
	}
	var parts []ContentPart
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("content is neither a string nor a part list: %w", err)
	}
	*c = Content{parts: parts}
	return nil
}

// Content part types understood by OpenAI-compatible chat endpoints.
const (
	ContentPartText     = "text"
	ContentPartImageURL = "image_url"
)

// ContentPart is one element of a multimodal message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries an image reference, typically a base64 data URI.
type ImageURL struct {
	URL string `json:"url"`
}

// TextPart builds a text part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: ContentPartText, Text: text}
}

// ImagePart builds an image part from a data URI or remote URL.
func ImagePart(url string) ContentPart {
	return ContentPart{Type: ContentPartImageURL, ImageURL: &ImageURL{URL: url}}
}
