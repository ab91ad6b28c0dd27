package service

import (
	"context"

	"pokedex-web/models"
)

// ExportServiceInterface defines the contract for browser-rendered exports
type ExportServiceInterface interface {
	GenerateListingPDF(ctx context.Context, filter models.QueryFilter) ([]byte, error)
	GenerateDetailPNG(ctx context.Context, name string) ([]byte, error)
}

// Ensure ExportService implements ExportServiceInterface
var _ ExportServiceInterface = (*ExportService)(nil)
