package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"memoai-backend/internal/models"
	"memoai-backend/internal/sanitize"
	"memoai-backend/internal/store"

	"github.com/google/uuid"
)

// SaveService defines the interface for persisting an approved memo.
type SaveService interface {
	Save(ctx context.Context, req models.SaveRequest) (*models.SaveResponse, error)
}

type saveService struct {
	store store.Store
}

// NewSaveService creates a new SaveService.
func NewSaveService(s store.Store) SaveService {
	return &saveService{store: s}
}

// Save performs exactly one external write: appending paragraph blocks to a
// page, or creating one row in a database. All text passes through the
// sanitizer first so no embedded image payloads or over-long segments reach
// the store.
func (s *saveService) Save(ctx context.Context, req models.SaveRequest) (*models.SaveResponse, error) {
	if req.TargetDBID == "" {
		return nil, fmt.Errorf("%w: target_db_id is required", ErrValidation)
	}

	reqID := uuid.New().String()[:8]
	if req.TargetType == models.TargetTypePage {
		return s.appendToPage(ctx, reqID, req)
	}
	return s.createDatabaseRecord(ctx, reqID, req)
}

// appendToPage writes the memo text to the end of a page. A failed append
// propagates; the client must know its save did not land.
func (s *saveService) appendToPage(ctx context.Context, reqID string, req models.SaveRequest) (*models.SaveResponse, error) {
	content := req.Text
	if content == "" {
		content = "No content"
	}
	// A Content property from the client wins over the raw text field.
	if raw, ok := req.Properties["Content"]; ok {
		if text := firstRichTextContent(raw); text != "" {
			content = text
		}
	}

	content = sanitize.StripEmbeddedImages(content)
	capped, truncated := sanitize.CapText(content, sanitize.MaxPayloadRunes)
	if truncated {
		log.Printf("WARN [SaveService] %s: content truncated to %d runes for page %s", reqID, sanitize.MaxPayloadRunes, req.TargetDBID)
	}

	segments := sanitize.ChunkText(capped, sanitize.SegmentLimit)
	if err := s.store.AppendParagraphs(ctx, req.TargetDBID, segments); err != nil {
		log.Printf("ERROR [SaveService] %s: append failed: %v", reqID, err)
		return nil, err
	}

	log.Printf("[SaveService] %s: appended %d segment(s) to page %s", reqID, len(segments), req.TargetDBID)
	// No single created object to point at for appends.
	return &models.SaveResponse{Status: "success", URL: ""}, nil
}

// createDatabaseRecord sanitizes the property bag and creates one row.
func (s *saveService) createDatabaseRecord(ctx context.Context, reqID string, req models.SaveRequest) (*models.SaveResponse, error) {
	if len(req.Properties) == 0 {
		return nil, fmt.Errorf("%w: properties are required for a database save", ErrValidation)
	}

	created, err := s.store.CreateRecord(ctx, req.TargetDBID, sanitizePropertyBag(req.Properties))
	if err != nil {
		log.Printf("ERROR [SaveService] %s: create record failed: %v", reqID, err)
		return nil, err
	}

	log.Printf("[SaveService] %s: created record %s in database %s", reqID, created.ID, req.TargetDBID)
	return &models.SaveResponse{Status: "success", URL: created.URL}, nil
}

// --- Helper Functions ---

// firstRichTextContent pulls the first rich text item's text content out of
// a property value, or "" when the shape does not match.
func firstRichTextContent(raw json.RawMessage) string {
	var val struct {
		RichText []struct {
			Text struct {
				Content string `json:"content"`
			} `json:"text"`
		} `json:"rich_text"`
	}
	if err := json.Unmarshal(raw, &val); err != nil || len(val.RichText) == 0 {
		return ""
	}
	return val.RichText[0].Text.Content
}

// sanitizePropertyBag rewrites title and rich_text arrays so every text
// item is stripped of embedded images and fits the segment limit; an
// over-long item becomes several consecutive items. Everything else in the
// bag passes through untouched.
func sanitizePropertyBag(props map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(props))
	for name, raw := range props {
		out[name] = sanitizePropertyValue(raw)
	}
	return out
}

func sanitizePropertyValue(raw json.RawMessage) json.RawMessage {
	var val map[string]json.RawMessage
	if err := json.Unmarshal(raw, &val); err != nil {
		return raw
	}
	changed := false
	for _, key := range []string{"rich_text", "title"} {
		arr, ok := val[key]
		if !ok {
			continue
		}
		if rewritten, ok := sanitizeRichTextArray(arr); ok {
			val[key] = rewritten
			changed = true
		}
	}
	if !changed {
		return raw
	}
	b, err := json.Marshal(val)
	if err != nil {
		return raw
	}
	return b
}

// sanitizeRichTextArray rewrites one rich text array. Items without the
// text/content shape pass through unchanged; the second return reports
// whether a rewrite happened.
func sanitizeRichTextArray(raw json.RawMessage) (json.RawMessage, bool) {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, false
	}

	out := make([]map[string]json.RawMessage, 0, len(items))
	for _, item := range items {
		textRaw, ok := item["text"]
		if !ok {
			out = append(out, item)
			continue
		}
		var text map[string]json.RawMessage
		if err := json.Unmarshal(textRaw, &text); err != nil {
			out = append(out, item)
			continue
		}
		var content string
		if err := json.Unmarshal(text["content"], &content); err != nil {
			out = append(out, item)
			continue
		}

		segments := sanitize.ChunkText(sanitize.StripEmbeddedImages(content), sanitize.SegmentLimit)
		if len(segments) == 0 {
			segments = []string{""}
		}
		for _, segment := range segments {
			out = append(out, cloneItemWithContent(item, text, segment))
		}
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, false
	}
	return b, true
}

// cloneItemWithContent copies a rich text item, replacing only the
// text.content value so annotations and links survive the split.
func cloneItemWithContent(item, text map[string]json.RawMessage, content string) map[string]json.RawMessage {
	newText := make(map[string]json.RawMessage, len(text))
	for k, v := range text {
		newText[k] = v
	}
	contentJSON, _ := json.Marshal(content)
	newText["content"] = contentJSON

	newItem := make(map[string]json.RawMessage, len(item))
	for k, v := range item {
		newItem[k] = v
	}
	textJSON, _ := json.Marshal(newText)
	newItem["text"] = textJSON
	return newItem
}
