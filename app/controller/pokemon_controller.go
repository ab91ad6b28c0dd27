package controller

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"pokedex-web/models"
	"pokedex-web/service"
)

// PokemonController handles the listing and detail pages
type PokemonController struct {
	catalogService service.CatalogServiceInterface
	renderService  *service.RenderService
	logger         *zap.Logger
}

// NewPokemonController creates a new PokemonController
func NewPokemonController(catalogService service.CatalogServiceInterface, renderService *service.RenderService, logger *zap.Logger) *PokemonController {
	return &PokemonController{
		catalogService: catalogService,
		renderService:  renderService,
		logger:         logger,
	}
}

// Welcome handles GET|POST /
// POST with a "name" form field redirects to the detail page; otherwise the
// listing is rendered, filtered by ?type=&weakness=&height= when any query is present.
func (c *PokemonController) Welcome(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if name := strings.TrimSpace(r.PostFormValue("name")); name != "" {
			http.Redirect(w, r, "/pokemon/"+url.PathEscape(name), http.StatusFound)
			return
		}
	}

	filter, filtered := models.ParseQueryFilter(r.URL.Query())
	if !filter.Height.Valid() {
		c.logger.Warn("unrecognized height filter, nothing will match", zap.String("height", string(filter.Height)))
	}
	entries, err := c.catalogService.ListPokemon(r.Context(), filter, filtered)
	if err != nil {
		c.logger.Error("listing failed", zap.Error(err))
		http.Error(w, "Failed to load pokemon", http.StatusInternalServerError)
		return
	}

	htmlContent, err := c.renderService.RenderListingHTML(models.ListingData{Pokemons: entries, Filter: filter})
	if err != nil {
		c.logger.Error("listing render failed", zap.Error(err))
		http.Error(w, "Failed to render listing", http.StatusInternalServerError)
		return
	}
	writeHTML(w, htmlContent, c.logger)
}

// PokemonDetails handles GET /pokemon/{name}
// Unknown names redirect to the listing.
func (c *PokemonController) PokemonDetails(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	detail, err := c.catalogService.GetPokemonDetail(r.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrPokemonNotFound) {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		c.logger.Error("detail failed", zap.String("name", name), zap.Error(err))
		http.Error(w, "Failed to load pokemon", http.StatusInternalServerError)
		return
	}

	htmlContent, err := c.renderService.RenderDetailHTML(detail)
	if err != nil {
		c.logger.Error("detail render failed", zap.String("name", name), zap.Error(err))
		http.Error(w, "Failed to render pokemon", http.StatusInternalServerError)
		return
	}
	writeHTML(w, htmlContent, c.logger)
}

func writeHTML(w http.ResponseWriter, htmlContent string, logger *zap.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(htmlContent)); err != nil {
		logger.Warn("writing HTML response failed", zap.Error(err))
	}
}
