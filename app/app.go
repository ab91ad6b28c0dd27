package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"pokedex-web/app/controller"
	"pokedex-web/app/router"
	"pokedex-web/config"
	"pokedex-web/loader"
	"pokedex-web/repository"
	"pokedex-web/service"
)

// App holds the constructed services and the HTTP handler
type App struct {
	Config     *config.Config
	Repository *repository.CatalogRepository
	Catalog    *service.CatalogService
	Handler    http.Handler
}

// Initialize builds the application from cfg. client may be nil to use the
// default HTTP client.
func Initialize(cfg *config.Config, client *http.Client, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Initialize repository
	catalogRepo := repository.NewCatalogRepository(cfg.CatalogAPI.BaseURL, client, logger.Named("catalog_api"))

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo, service.CatalogOptions{
		ArtworkURLTemplate: cfg.CatalogAPI.ArtworkURLTemplate,
		MaxEvolutionHops:   cfg.CatalogAPI.MaxEvolutionHops,
		FetchConcurrency:   cfg.CatalogAPI.FetchConcurrency,
	}, logger.Named("catalog"))

	renderService, err := service.NewRenderService()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize templates: %w", err)
	}

	exportService := service.NewExportService(cfg.Server.PublicBaseURL, cfg.Chrome.Path, logger.Named("export"))
	spriteService := service.NewSpriteService(catalogRepo, service.NewImageOptimizer(logger.Named("image")), logger.Named("sprite"))

	// Create controllers
	controllers := &router.Controllers{
		Pokemon: controller.NewPokemonController(catalogService, renderService, logger.Named("http")),
		Export:  controller.NewExportController(catalogService, exportService, spriteService, logger.Named("http")),
	}

	var fetch loader.FetchFunc
	if cfg.CatalogAPI.RequestMemo {
		fetch = catalogRepo.Fetch
	}

	handler := router.NewRouter(controllers, router.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		Fetch:            fetch,
		FetchConcurrency: cfg.CatalogAPI.FetchConcurrency,
		Logger:           logger.Named("http"),
	})

	return &App{
		Config:     cfg,
		Repository: catalogRepo,
		Catalog:    catalogService,
		Handler:    handler,
	}, nil
}

// RequestContext returns ctx carrying a fresh response loader when request
// memoization is enabled. Used by callers outside the HTTP stack (CLI).
func (a *App) RequestContext(ctx context.Context) context.Context {
	if !a.Config.CatalogAPI.RequestMemo {
		return ctx
	}
	return loader.WithResponseLoader(ctx, loader.NewResponseLoader(a.Repository.Fetch, a.Config.CatalogAPI.FetchConcurrency))
}
