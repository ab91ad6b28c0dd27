package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"pokedex-web/catalogtest"
	"pokedex-web/loader"
	"pokedex-web/models"
	"pokedex-web/repository"
)

func newTestCatalog(t *testing.T, options CatalogOptions) (*CatalogService, *repository.CatalogRepository, *catalogtest.Server) {
	t.Helper()
	api := catalogtest.NewServer(t)
	repo := repository.NewCatalogRepository(api.BaseURL(), api.Client(), zap.NewNop())
	if options.ArtworkURLTemplate == "" {
		options.ArtworkURLTemplate = api.ArtworkTemplate()
	}
	return NewCatalogService(repo, options, zap.NewNop()), repo, api
}

// requestContext mimics the per-request loader attached by the HTTP middleware
func requestContext(repo *repository.CatalogRepository) context.Context {
	return loader.WithResponseLoader(context.Background(), loader.NewResponseLoader(repo.Fetch, DefaultFetchConcurrency))
}

func entryNames(entries []models.CatalogEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	return names
}
