package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"pokedex-web/models"
	"pokedex-web/templates"
)

// ExportPath is where the listing PDF is served
const ExportPath = "/export/pokemons.pdf"

// RenderService renders the listing and detail pages
type RenderService struct {
	templates *template.Template
}

// NewRenderService parses the embedded page templates
func NewRenderService() (*RenderService, error) {
	tmpl, err := template.New("pages").
		Funcs(template.FuncMap{"lower": strings.ToLower}).
		ParseFS(templates.FS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &RenderService{templates: tmpl}, nil
}

// RenderListingHTML renders the listing page
func (s *RenderService) RenderListingHTML(data models.ListingData) (string, error) {
	exportURL := ExportPath
	if !data.Filter.IsEmpty() {
		exportURL += "?" + data.Filter.Values().Encode()
	}

	templateData := struct {
		models.ListingData
		ExportURL template.URL
	}{
		ListingData: data,
		ExportURL:   template.URL(exportURL),
	}
	return s.render(templates.Listing, templateData)
}

// RenderDetailHTML renders the detail page
func (s *RenderService) RenderDetailHTML(detail *models.PokemonDetail) (string, error) {
	return s.render(templates.Detail, detail)
}

func (s *RenderService) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
