package api

import (
	"log"
	"net/http"
	"time"

	"memoai-backend/internal/handlers"
	"memoai-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers.
type RouterDependencies struct {
	AnalyzeHandler *handlers.AnalyzeHandler
	ChatHandler    *handlers.ChatHandler
	SaveHandler    *handlers.SaveHandler
	TargetsHandler *handlers.TargetsHandler
	ContentHandler *handlers.ContentHandler
	MetaHandler    *handlers.MetaHandler
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)                 // Inject request ID into context
	r.Use(middleware.RealIP)                    // Use X-Forwarded-For or X-Real-IP
	r.Use(middleware.Logger)                    // Log requests (consider a structured logger)
	r.Use(middleware.Recoverer)                 // Recover from panics, return 500
	r.Use(middleware.Timeout(60 * time.Second)) // Set a request timeout

	// --- CORS Configuration ---
	// The client is a static page that may be served from anywhere, so the
	// API answers any origin. No cookies are involved.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		// --- Mount Meta Routes (config + models) ---
		if deps.MetaHandler != nil {
			r.Get("/config", deps.MetaHandler.HandleGetConfig)
			r.Get("/models", deps.MetaHandler.HandleGetModels)
		} else {
			log.Println("WARN: MetaHandler dependency is nil, skipping /api/config and /api/models routes.")
		}

		// --- Mount Target Routes ---
		if deps.TargetsHandler != nil {
			r.Get("/targets", deps.TargetsHandler.HandleListTargets)
			r.Get("/schema/{targetID}", deps.TargetsHandler.HandleGetSchema)
			r.Post("/pages/create", deps.TargetsHandler.HandleCreatePage)
		} else {
			log.Println("WARN: TargetsHandler dependency is nil, skipping /api/targets routes.")
		}

		// --- Mount AI Routes ---
		if deps.AnalyzeHandler != nil {
			r.Post("/analyze", deps.AnalyzeHandler.HandleAnalyze)
		} else {
			log.Println("WARN: AnalyzeHandler dependency is nil, skipping /api/analyze route.")
		}
		if deps.ChatHandler != nil {
			r.Post("/chat", deps.ChatHandler.HandleChat)
		} else {
			log.Println("WARN: ChatHandler dependency is nil, skipping /api/chat route.")
		}

		// --- Mount Save Route ---
		if deps.SaveHandler != nil {
			r.Post("/save", deps.SaveHandler.HandleSave)
		} else {
			log.Println("WARN: SaveHandler dependency is nil, skipping /api/save route.")
		}

		// --- Mount Content Routes ---
		if deps.ContentHandler != nil {
			r.Route("/content", func(r chi.Router) {
				r.Get("/page/{pageID}", deps.ContentHandler.HandlePageContent)
				r.Get("/database/{databaseID}", deps.ContentHandler.HandleDatabaseContent)
			})
		} else {
			log.Println("WARN: ContentHandler dependency is nil, skipping /api/content routes.")
		}
	})

	return r
}
