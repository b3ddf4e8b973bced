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

// AnalyzeService defines the interface expected from the analyze service.
type AnalyzeService interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.CompletionResponse, error)
}

type AnalyzeHandler struct {
	analyzeService AnalyzeService
}

func NewAnalyzeHandler(svc AnalyzeService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzeService: svc,
	}
}

// HandleAnalyze handles POST /api/analyze
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.analyzeService.Analyze(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [AnalyzeHandler] HandleAnalyze: %v", err)
		switch {
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		case llm.IsTimeout(err):
			httputil.RespondDetail(w, http.StatusGatewayTimeout, models.ErrorDetail{
				Error:   "AI timeout",
				Message: "AIの応答がタイムアウトしました。しばらく待ってから再試行してください。",
				Type:    "GenerationTimeoutError",
				Suggestions: []string{
					"LLMプロバイダのステータスを確認してください",
					"しばらく待ってから再試行してください",
				},
			})
		default:
			httputil.RespondDetail(w, http.StatusInternalServerError, models.ErrorDetail{
				Error:   "AI analysis failed",
				Message: err.Error(),
				Type:    generationErrorType(err),
				Suggestions: []string{
					"LLM_API_KEYが正しく設定されているか確認してください",
					"LLM APIの利用制限に達していないか確認してください",
					"入力テキストが長すぎないか確認してください",
				},
			})
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// generationErrorType names the error class for client-side branching.
func generationErrorType(err error) string {
	var genErr *llm.GenerationError
	switch {
	case errors.As(err, &genErr) && genErr.Timeout:
		return "GenerationTimeoutError"
	case errors.As(err, &genErr):
		return "GenerationProviderError"
	default:
		return "UnexpectedError"
	}
}
