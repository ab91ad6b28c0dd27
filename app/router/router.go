package router

import (
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"pokedex-web/app/controller"
	"pokedex-web/app/middleware"
	"pokedex-web/loader"
)

type Controllers struct {
	Pokemon *controller.PokemonController
	Export  *controller.ExportController
}

// Options configures the middleware chain
type Options struct {
	AllowedOrigins []string
	// Fetch backs the request-scoped response loader; nil disables it
	Fetch loader.FetchFunc
	// FetchConcurrency bounds the loader's parallel upstream GETs
	FetchConcurrency int
	Logger           *zap.Logger
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every route on mux
func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	mux.HandleFunc("GET /ping", pingHandler)

	// Listing, search redirect and filters
	mux.HandleFunc("GET /{$}", controllers.Pokemon.Welcome)
	mux.HandleFunc("POST /{$}", controllers.Pokemon.Welcome)

	mux.HandleFunc("GET /pokemon/{name}", controllers.Pokemon.PokemonDetails)
	mux.HandleFunc("GET /pokemon/{name}/sprite", controllers.Export.Sprite)
	mux.HandleFunc("GET /pokemon/{name}/card.png", controllers.Export.ExportDetailCard)

	mux.HandleFunc("GET /export/pokemons.pdf", controllers.Export.ExportListingPDF)
}

// NewRouter builds the full handler: routes wrapped in request id, logging,
// CORS and the request-scoped loader
func NewRouter(controllers *Controllers, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	SetupRoutes(mux, controllers)

	var handler http.Handler = mux
	if opts.Fetch != nil {
		handler = middleware.ResponseLoader(opts.Fetch, opts.FetchConcurrency)(handler)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	handler = corsHandler.Handler(handler)

	return middleware.RequestID(middleware.Logging(logger)(handler))
}
