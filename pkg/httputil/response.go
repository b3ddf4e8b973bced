package httputil

import (
	"encoding/json"
	"log"
	"net/http"

	api_models "memoai-backend/internal/models"
)

// RespondJSON writes a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		log.Printf("Error encoding JSON response: %v", err)
		// Can't write header again here, just log the error
	}
}

// RespondError writes a JSON error response with the given status code and message.
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	resp := api_models.ErrorResponse{Error: message}
	RespondJSON(w, statusCode, resp)
}

// RespondDetail writes a rich JSON error response carrying remediation
// guidance for the client to render.
func RespondDetail(w http.ResponseWriter, statusCode int, detail api_models.ErrorDetail) {
	RespondJSON(w, statusCode, detail)
}
