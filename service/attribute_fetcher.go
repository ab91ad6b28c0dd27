package service

import (
	"context"

	"go.uber.org/zap"

	"pokedex-web/models"
	"pokedex-web/repository"
)

// AttributeFetcher resolves single pokemon attributes. Every lookup degrades to
// the zero value of its shape when the catalog API cannot serve it.
type AttributeFetcher struct {
	repository repository.CatalogRepositoryInterface
	logger     *zap.Logger
}

// NewAttributeFetcher creates a new AttributeFetcher
func NewAttributeFetcher(repo repository.CatalogRepositoryInterface, logger *zap.Logger) *AttributeFetcher {
	return &AttributeFetcher{repository: repo, logger: logger}
}

// Image returns the front sprite URL of the pokemon at url, or ""
func (f *AttributeFetcher) Image(ctx context.Context, url string) string {
	record, err := f.repository.GetPokemon(ctx, url)
	if err != nil {
		f.logger.Debug("image unavailable", zap.String("url", url), zap.Error(err))
		return ""
	}
	return record.Sprite
}

// Height returns the height of the pokemon at url, or 0
func (f *AttributeFetcher) Height(ctx context.Context, url string) int {
	record, err := f.repository.GetPokemon(ctx, url)
	if err != nil {
		f.logger.Debug("height unavailable", zap.String("url", url), zap.Error(err))
		return 0
	}
	return record.Height
}

// Types returns the lowercase type names of the pokemon at url in API order,
// or an empty slice
func (f *AttributeFetcher) Types(ctx context.Context, url string) []string {
	record, err := f.repository.GetPokemon(ctx, url)
	if err != nil {
		f.logger.Debug("types unavailable", zap.String("url", url), zap.Error(err))
		return []string{}
	}
	return record.Types
}

// Weaknesses returns the types that deal double damage to typeName, or an empty set
func (f *AttributeFetcher) Weaknesses(ctx context.Context, typeName string) models.TypeSet {
	names, err := f.repository.GetTypeWeaknesses(ctx, typeName)
	if err != nil {
		f.logger.Debug("weaknesses unavailable", zap.String("type", typeName), zap.Error(err))
		return models.NewTypeSet()
	}
	return models.NewTypeSet(names...)
}

// EntityWeaknesses returns the union of the weaknesses of every type in types
func (f *AttributeFetcher) EntityWeaknesses(ctx context.Context, types []string) models.TypeSet {
	weaknesses := models.NewTypeSet()
	for _, t := range types {
		weaknesses.Union(f.Weaknesses(ctx, t))
	}
	return weaknesses
}

// FilterAttributes fetches everything the filter engine needs for the pokemon at url
func (f *AttributeFetcher) FilterAttributes(ctx context.Context, url string) FilterAttributes {
	types := f.Types(ctx, url)
	return FilterAttributes{
		Types:      types,
		Weaknesses: f.EntityWeaknesses(ctx, types),
		Height:     f.Height(ctx, url),
	}
}
