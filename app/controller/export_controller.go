package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"pokedex-web/models"
	"pokedex-web/service"
	"pokedex-web/utils"
)

// ExportController handles PDF/PNG exports and sprite thumbnails
type ExportController struct {
	catalogService service.CatalogServiceInterface
	exportService  service.ExportServiceInterface
	spriteService  *service.SpriteService
	logger         *zap.Logger
}

// NewExportController creates a new ExportController
func NewExportController(
	catalogService service.CatalogServiceInterface,
	exportService service.ExportServiceInterface,
	spriteService *service.SpriteService,
	logger *zap.Logger,
) *ExportController {
	return &ExportController{
		catalogService: catalogService,
		exportService:  exportService,
		spriteService:  spriteService,
		logger:         logger,
	}
}

// ExportListingPDF handles GET /export/pokemons.pdf?type=&weakness=&height=
func (c *ExportController) ExportListingPDF(w http.ResponseWriter, r *http.Request) {
	filter, _ := models.ParseQueryFilter(r.URL.Query())

	pdfData, err := c.exportService.GenerateListingPDF(r.Context(), filter)
	if err != nil {
		c.logger.Error("listing PDF export failed", zap.Error(err))
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	writeBinary(w, "application/pdf", "pokemons.pdf", pdfData, c.logger)
}

// ExportDetailCard handles GET /pokemon/{name}/card.png
func (c *ExportController) ExportDetailCard(w http.ResponseWriter, r *http.Request) {
	name := utils.NormalizeName(r.PathValue("name"))

	// The detail page redirects for unknown names, which would leave the browser waiting
	if _, err := c.catalogService.GetPokemonRecord(r.Context(), name); err != nil {
		c.writeLookupError(w, name, err)
		return
	}

	pngData, err := c.exportService.GenerateDetailPNG(r.Context(), name)
	if err != nil {
		c.logger.Error("detail card export failed", zap.String("name", name), zap.Error(err))
		http.Error(w, fmt.Sprintf("Failed to generate PNG: %v", err), http.StatusInternalServerError)
		return
	}

	writeBinary(w, "image/png", name+".png", pngData, c.logger)
}

// Sprite handles GET /pokemon/{name}/sprite?size=thumb|medium
func (c *ExportController) Sprite(w http.ResponseWriter, r *http.Request) {
	name := utils.NormalizeName(r.PathValue("name"))
	size := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("size")))
	if size == "" {
		size = service.SpriteSizeThumb
	}
	if size != service.SpriteSizeThumb && size != service.SpriteSizeMedium {
		http.Error(w, "Invalid size. Valid sizes: thumb, medium", http.StatusBadRequest)
		return
	}

	data, err := c.spriteService.GetSprite(r.Context(), name, size)
	if err != nil {
		c.writeLookupError(w, name, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		c.logger.Warn("writing sprite failed", zap.String("name", name), zap.Error(err))
	}
}

func (c *ExportController) writeLookupError(w http.ResponseWriter, name string, err error) {
	switch {
	case errors.Is(err, service.ErrPokemonNotFound):
		http.Error(w, fmt.Sprintf("Pokemon %q not found", name), http.StatusNotFound)
	case errors.Is(err, service.ErrSpriteNotFound):
		http.Error(w, fmt.Sprintf("No sprite for %q", name), http.StatusNotFound)
	default:
		c.logger.Error("lookup failed", zap.String("name", name), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeBinary(w http.ResponseWriter, contentType, filename string, data []byte, logger *zap.Logger) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Warn("writing export failed", zap.String("filename", filename), zap.Error(err))
	}
}
