package llm

// Models used when a request does not name one and no override is
// configured. Flash handles both text and image input.
const (
	DefaultTextModel       = "gemini-2.0-flash"
	DefaultMultimodalModel = "gemini-2.0-flash"
)

// ModelInfo describes one selectable completion model.
type ModelInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Vision   bool   `json:"vision"`
}

// catalog lists the models the backend knows how to price and route. All
// of them are reachable through the OpenAI-compatible endpoint configured
// via LLM_BASE_URL.
var catalog = []ModelInfo{
	{ID: "gemini-2.0-flash", Name: "Gemini 2.0 Flash", Provider: "google", Vision: true},
	{ID: "gemini-2.0-flash-lite", Name: "Gemini 2.0 Flash Lite", Provider: "google", Vision: true},
	{ID: "gemini-1.5-flash", Name: "Gemini 1.5 Flash", Provider: "google", Vision: true},
	{ID: "gemini-1.5-pro", Name: "Gemini 1.5 Pro", Provider: "google", Vision: true},
	{ID: "gpt-4o", Name: "GPT-4o", Provider: "openai", Vision: true},
	{ID: "gpt-4o-mini", Name: "GPT-4o mini", Provider: "openai", Vision: true},
	{ID: "gpt-3.5-turbo", Name: "GPT-3.5 Turbo", Provider: "openai", Vision: false},
}

// AvailableModels returns the full model catalog.
func AvailableModels() []ModelInfo {
	out := make([]ModelInfo, len(catalog))
	copy(out, catalog)
	return out
}

// TextOnlyModels returns the models without image input support.
func TextOnlyModels() []ModelInfo {
	var out []ModelInfo
	for _, m := range catalog {
		if !m.Vision {
			out = append(out, m)
		}
	}
	return out
}

// VisionModels returns the models that accept image input.
func VisionModels() []ModelInfo {
	var out []ModelInfo
	for _, m := range catalog {
		if m.Vision {
			out = append(out, m)
		}
	}
	return out
}
