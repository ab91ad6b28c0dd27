package service

import (
	"context"

	"pokedex-web/models"
)

// CatalogServiceInterface defines the contract for the listing and detail views
type CatalogServiceInterface interface {
	ListPokemon(ctx context.Context, filter models.QueryFilter, filtered bool) ([]models.CatalogEntry, error)
	GetPokemonDetail(ctx context.Context, name string) (*models.PokemonDetail, error)
	GetPokemonRecord(ctx context.Context, name string) (*models.PokemonRecord, error)
}
