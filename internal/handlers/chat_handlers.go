package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"memoai-backend/internal/llm"
	"memoai-backend/internal/models"
	"memoai-backend/internal/services"
	"memoai-backend/pkg/httputil"
)

// ChatService defines the interface expected from the chat service.
type ChatService interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.CompletionResponse, error)
}

type ChatHandler struct {
	chatService ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: svc,
	}
}

// HandleChat handles POST /api/chat
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.chatService.Chat(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [ChatHandler] HandleChat: %v", err)
		h.respondChatError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// respondChatError maps service failures to the payloads the client
// branches on: a schema failure means the target itself is unusable, a
// timeout invites a retry, anything else points at the provider setup.
func (h *ChatHandler) respondChatError(w http.ResponseWriter, err error) {
	var lookupErr *services.SchemaLookupError
	var genErr *llm.GenerationError

	switch {
	case errors.Is(err, services.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())

	case errors.As(err, &lookupErr):
		httputil.RespondDetail(w, http.StatusBadRequest, models.ErrorDetail{
			Error:   "Schema fetch failed",
			Message: err.Error(),
			Suggestions: []string{
				"ターゲットIDが正しいか確認してください",
				"Notion APIキーの権限を確認してください",
			},
		})

	case llm.IsTimeout(err):
		httputil.RespondDetail(w, http.StatusGatewayTimeout, models.ErrorDetail{
			Error:   "AI timeout",
			Message: "AIの応答がタイムアウトしました。",
			Type:    "GenerationTimeoutError",
		})

	case errors.As(err, &genErr):
		httputil.RespondDetail(w, http.StatusInternalServerError, models.ErrorDetail{
			Error:   "Chat AI failed",
			Message: err.Error(),
			Type:    "GenerationProviderError",
			Suggestions: []string{
				"LLM_API_KEYが正しく設定されているか確認してください",
				"LLM APIの利用制限に達していないか確認してください",
			},
		})

	default:
		httputil.RespondDetail(w, http.StatusInternalServerError, models.ErrorDetail{
			Error:   "Unexpected error",
			Message: err.Error(),
			Type:    "UnexpectedError",
		})
	}
}
