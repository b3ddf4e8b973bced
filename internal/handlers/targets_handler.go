package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"memoai-backend/internal/models"
	"memoai-backend/internal/services"
	"memoai-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
)

// rootPageMissingMessage tells the user how to fix an unset root page id.
const rootPageMissingMessage = "❌ NOTION_ROOT_PAGE_ID が設定されていません。.envファイルに NOTION_ROOT_PAGE_ID=your_page_id を追加してください。"

// TargetsService defines the interface expected from the targets service.
type TargetsService interface {
	List(ctx context.Context) (*models.TargetsResponse, error)
	Schema(ctx context.Context, targetID string) (*models.SchemaResponse, error)
	CreatePage(ctx context.Context, req models.CreatePageRequest) (*models.CreatePageResponse, error)
}

type TargetsHandler struct {
	targetsService TargetsService
}

func NewTargetsHandler(svc TargetsService) *TargetsHandler {
	return &TargetsHandler{
		targetsService: svc,
	}
}

// HandleListTargets handles GET /api/targets
func (h *TargetsHandler) HandleListTargets(w http.ResponseWriter, r *http.Request) {
	resp, err := h.targetsService.List(r.Context())
	if err != nil {
		log.Printf("ERROR [TargetsHandler] HandleListTargets: %v", err)
		if errors.Is(err, services.ErrRootPageNotConfigured) {
			httputil.RespondError(w, http.StatusInternalServerError, rootPageMissingMessage)
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch targets: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleGetSchema handles GET /api/schema/{targetID}
func (h *TargetsHandler) HandleGetSchema(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "targetID")

	resp, err := h.targetsService.Schema(r.Context(), targetID)
	if err != nil {
		log.Printf("ERROR [TargetsHandler] HandleGetSchema for %s: %v", targetID, err)
		var lookupErr *services.SchemaLookupError
		if errors.As(err, &lookupErr) {
			httputil.RespondDetail(w, http.StatusNotFound, models.ErrorDetail{
				Error:         "Schema fetch failed",
				TargetID:      lookupErr.TargetID,
				Attempted:     []string{"database", "page"},
				DatabaseError: lookupErrText(lookupErr.DatabaseErr),
				PageError:     lookupErrText(lookupErr.PageErr),
				Suggestions: []string{
					"Notion APIキーの権限を確認してください",
					"ターゲットIDが正しいか確認してください",
					"Notionでこのページ/DBが削除されていないか確認してください",
				},
			})
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch schema: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleCreatePage handles POST /api/pages/create
func (h *TargetsHandler) HandleCreatePage(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.targetsService.CreatePage(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [TargetsHandler] HandleCreatePage: %v", err)
		switch {
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, "ページ名が必要です")
		case errors.Is(err, services.ErrRootPageNotConfigured):
			httputil.RespondError(w, http.StatusInternalServerError, rootPageMissingMessage)
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "ページ作成に失敗しました: "+err.Error())
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

func lookupErrText(err error) string {
	if err == nil {
		return "Unknown"
	}
	return err.Error()
}
