package models

import "encoding/json"

// --- Request Structs ---

// AnalyzeRequest defines the body for the analyze endpoint.
type AnalyzeRequest struct {
	Text         string `json:"text"`
	TargetDBID   string `json:"target_db_id,omitempty"`
	SystemPrompt string `json:"system_prompt,omitempty"`
	Model        string `json:"model,omitempty"`
}

// ChatTurn is one prior turn of the conversation as the client stores it.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest defines the body for the chat endpoint. ImageData carries a
// base64-encoded attachment without a data URI prefix.
type ChatRequest struct {
	Text             string     `json:"text"`
	TargetID         string     `json:"target_id,omitempty"`
	SystemPrompt     string     `json:"system_prompt,omitempty"`
	SessionHistory   []ChatTurn `json:"session_history,omitempty"`
	ReferenceContext string     `json:"reference_context,omitempty"`
	ImageData        string     `json:"image_data,omitempty"`
	ImageMimeType    string     `json:"image_mime_type,omitempty"`
	Model            string     `json:"model,omitempty"`
}

// SaveRequest defines the body for the save endpoint. Properties carries
// Notion property values in wire format; the backend only touches them to
// enforce text length limits.
type SaveRequest struct {
	TargetDBID string                     `json:"target_db_id"`
	TargetType string                     `json:"target_type,omitempty"` // "database" (default) or "page"
	Properties map[string]json.RawMessage `json:"properties,omitempty"`
	Text       string                     `json:"text,omitempty"`
}

// CreatePageRequest defines the body for creating a page under the root page.
type CreatePageRequest struct {
	PageName string `json:"page_name"`
}

// --- Response Structs ---

// UsageInfo reports provider token counts for one completion.
type UsageInfo struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResponse defines the response of the analyze and chat
// endpoints. Content is the model's JSON answer as a string; the client
// parses it.
type CompletionResponse struct {
	Content string    `json:"content"`
	Usage   UsageInfo `json:"usage"`
	Cost    float64   `json:"cost"`
	Model   string    `json:"model"`
}

// SaveResponse defines the response of the save endpoint. URL stays empty
// for page appends, where no single created object exists to point at.
type SaveResponse struct {
	Status string `json:"status"`
	URL    string `json:"url"`
}

// Target types understood by the schema, save, and content flows.
const (
	TargetTypeDatabase = "database"
	TargetTypePage     = "page"
)

// TargetInfo describes one save/chat destination under the root page.
type TargetInfo struct {
	ID    string `json:"id"`
	Type  string `json:"type"` // "database" or "page"
	Title string `json:"title"`
}

// TargetsResponse defines the response of the targets endpoint.
type TargetsResponse struct {
	Targets []TargetInfo `json:"targets"`
}

// SchemaPropertyInfo is one column of a target schema.
type SchemaPropertyInfo struct {
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

// SchemaResponse defines the response of the schema endpoint. Pages get a
// fixed Title/Content pseudo schema; databases get their real columns.
type SchemaResponse struct {
	Type   string                        `json:"type"` // "database" or "page"
	Schema map[string]SchemaPropertyInfo `json:"schema"`
}

// CreatePageResponse defines the response of the page creation endpoint.
type CreatePageResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// BlockInfo is one content block of a page preview.
type BlockInfo struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// PageContentResponse defines the page variant of the content endpoint.
type PageContentResponse struct {
	Type   string      `json:"type"`
	Blocks []BlockInfo `json:"blocks"`
}

// DatabaseContentResponse defines the database variant of the content
// endpoint: column names plus recent rows flattened to display text.
type DatabaseContentResponse struct {
	Type    string              `json:"type"`
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// PresetInfo is one saved prompt preset from the configuration database.
type PresetInfo struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// ConfigResponse defines the response of the config endpoint.
type ConfigResponse struct {
	Configs []PresetInfo `json:"configs"`
}

// ModelInfo describes one selectable completion model.
type ModelInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Vision   bool   `json:"vision"`
}

// ModelDefaults names the models used when the client does not pick one.
type ModelDefaults struct {
	Text       string `json:"text"`
	Multimodal string `json:"multimodal"`
}

// ModelsResponse defines the response of the models endpoint.
type ModelsResponse struct {
	All           []ModelInfo   `json:"all"`
	TextOnly      []ModelInfo   `json:"text_only"`
	VisionCapable []ModelInfo   `json:"vision_capable"`
	Defaults      ModelDefaults `json:"defaults"`
}

// --- Error Structs ---

// ErrorResponse defines the standard structure for simple API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorDetail defines the structure for rich API errors where the client
// renders remediation guidance. Only Error is always present.
type ErrorDetail struct {
	Error         string   `json:"error"`
	Message       string   `json:"message,omitempty"`
	Type          string   `json:"type,omitempty"`
	TargetID      string   `json:"target_id,omitempty"`
	Attempted     []string `json:"attempted,omitempty"`
	DatabaseError string   `json:"database_error,omitempty"`
	PageError     string   `json:"page_error,omitempty"`
	Suggestions   []string `json:"suggestions,omitempty"`
}
