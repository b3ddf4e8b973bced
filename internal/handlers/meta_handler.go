package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"memoai-backend/internal/llm"
	"memoai-backend/internal/models"
	"memoai-backend/internal/services"
	"memoai-backend/pkg/httputil"
)

// ConfigService defines the interface expected from the config service.
type ConfigService interface {
	Presets(ctx context.Context) (*models.ConfigResponse, error)
}

// MetaHandler serves the config and model catalog endpoints.
type MetaHandler struct {
	configService ConfigService
	defaults      models.ModelDefaults
}

func NewMetaHandler(svc ConfigService, defaults models.ModelDefaults) *MetaHandler {
	return &MetaHandler{
		configService: svc,
		defaults:      defaults,
	}
}

// HandleGetConfig handles GET /api/config
func (h *MetaHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	resp, err := h.configService.Presets(r.Context())
	if err != nil {
		log.Printf("ERROR [MetaHandler] HandleGetConfig: %v", err)
		if errors.Is(err, services.ErrConfigDBNotFound) {
			httputil.RespondError(w, http.StatusInternalServerError, "Configuration Database ID not found (Setup failed?)")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch config: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleGetModels handles GET /api/models
func (h *MetaHandler) HandleGetModels(w http.ResponseWriter, _ *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, models.ModelsResponse{
		All:           toModelInfos(llm.AvailableModels()),
		TextOnly:      toModelInfos(llm.TextOnlyModels()),
		VisionCapable: toModelInfos(llm.VisionModels()),
		Defaults:      h.defaults,
	})
}

func toModelInfos(in []llm.ModelInfo) []models.ModelInfo {
	out := make([]models.ModelInfo, len(in))
	for i, m := range in {
		out[i] = models.ModelInfo{ID: m.ID, Name: m.Name, Provider: m.Provider, Vision: m.Vision}
	}
	return out
}
