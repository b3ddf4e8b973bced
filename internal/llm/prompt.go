package llm

import (
	"encoding/base64"
	"fmt"
	"log"

	"github.com/gabriel-vasile/mimetype"
)

// ImageAttachment is a base64-encoded image supplied by the client.
type ImageAttachment struct {
	Data     string // base64 payload without the data: prefix
	MIMEType string // optional; sniffed from the decoded bytes when empty
}

// BuildInput collects everything that goes into a completion request.
// Optional fields that are empty or malformed are left out of the result
// rather than failing the build.
type BuildInput struct {
	Instructions     string
	TimeContext      string
	ReferenceContext string
	History          []Message
	TaskText         string
	Image            *ImageAttachment
}

// BuildMessages assembles the message sequence for a completion request:
// a system turn carrying the current time and the instructions, an
// optional system turn with caller-provided reference material, the prior
// conversation in its original order, and the task itself as the final
// user turn. When a usable image is attached the final turn becomes a
// multimodal part list.
func BuildMessages(in BuildInput) []Message {
	msgs := make([]Message, 0, len(in.History)+3)

	system := in.Instructions
	if in.TimeContext != "" {
		system = fmt.Sprintf("Current Time: %s\n\n%s", in.TimeContext, in.Instructions)
	}
	msgs = append(msgs, Message{Role: RoleSystem, Content: TextContent(system)})

	if in.ReferenceContext != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: TextContent(in.ReferenceContext)})
	}

	for _, m := range in.History {
		if m.Content.Text() == "" && !m.Content.IsMultimodal() {
			continue
		}
		msgs = append(msgs, m)
	}

	if uri, ok := imageDataURI(in.Image); ok {
		var parts []ContentPart
		if in.TaskText != "" {
			parts = append(parts, TextPart(in.TaskText))
		}
		parts = append(parts, ImagePart(uri))
		return append(msgs, Message{Role: RoleUser, Content: PartsContent(parts...)})
	}

	return append(msgs, Message{Role: RoleUser, Content: TextContent(in.TaskText)})
}

// imageDataURI validates an attachment and packages it as a data URI. A
// payload that does not decode as base64 is dropped rather than sent to
// the provider.
func imageDataURI(img *ImageAttachment) (string, bool) {
	if img == nil || img.Data == "" {
		return "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		log.Printf("WARN [PromptBuilder] dropping image attachment, invalid base64: %v", err)
		return "", false
	}
	mime := img.MIMEType
	if mime == "" {
		mime = mimetype.Detect(decoded).String()
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, img.Data), true
}
