package handlers

import (
	"context"
	"log"
	"net/http"

	"memoai-backend/internal/models"
	"memoai-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
)

// ContentService defines the interface expected from the content service.
type ContentService interface {
	PageContent(ctx context.Context, pageID string) (*models.PageContentResponse, error)
	DatabaseContent(ctx context.Context, databaseID string) (*models.DatabaseContentResponse, error)
}

type ContentHandler struct {
	contentService ContentService
}

func NewContentHandler(svc ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: svc,
	}
}

// HandlePageContent handles GET /api/content/page/{pageID}
func (h *ContentHandler) HandlePageContent(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")

	resp, err := h.contentService.PageContent(r.Context(), pageID)
	if err != nil {
		log.Printf("ERROR [ContentHandler] HandlePageContent for %s: %v", pageID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch page content: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleDatabaseContent handles GET /api/content/database/{databaseID}
func (h *ContentHandler) HandleDatabaseContent(w http.ResponseWriter, r *http.Request) {
	databaseID := chi.URLParam(r, "databaseID")

	resp, err := h.contentService.DatabaseContent(r.Context(), databaseID)
	if err != nil {
		log.Printf("ERROR [ContentHandler] HandleDatabaseContent for %s: %v", databaseID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch database content: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
