package router

import (
	"net/http"

	"menu-catalog/internal/handler"
	"menu-catalog/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(menuItemHandler *handler.MenuItemHandler, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Menu item handler function
	menuItemRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Collection routes: /api/menuitems and /api/menuitems/
		if r.URL.Path == "/api/menuitems" || r.URL.Path == "/api/menuitems/" {
			switch r.Method {
			case http.MethodGet:
				menuItemHandler.List(w, r)
			case http.MethodPost:
				menuItemHandler.Create(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		// Item routes: /api/menuitems/{id}
		switch r.Method {
		case http.MethodGet:
			menuItemHandler.GetByID(w, r)
		case http.MethodPut:
			menuItemHandler.Update(w, r)
		case http.MethodDelete:
			menuItemHandler.Delete(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	// Register menu item routes (both with and without trailing slash)
	mux.HandleFunc("/api/menuitems", menuItemRouteHandler)
	mux.HandleFunc("/api/menuitems/", menuItemRouteHandler)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
