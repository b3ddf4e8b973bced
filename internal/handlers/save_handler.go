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
)

// SaveService defines the interface expected from the save service.
type SaveService interface {
	Save(ctx context.Context, req models.SaveRequest) (*models.SaveResponse, error)
}

type SaveHandler struct {
	saveService SaveService
}

func NewSaveHandler(svc SaveService) *SaveHandler {
	return &SaveHandler{
		saveService: svc,
	}
}

// HandleSave handles POST /api/save
func (h *SaveHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req models.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.saveService.Save(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [SaveHandler] HandleSave for target %s: %v", req.TargetDBID, err)
		if errors.Is(err, services.ErrValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to save to Notion: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
