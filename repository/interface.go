package repository

import (
	"context"

	"pokedex-web/models"
)

// CatalogRepositoryInterface defines the contract for catalog API read operations
type CatalogRepositoryInterface interface {
	ListPokemon(ctx context.Context) ([]models.NamedResource, error)
	GetPokemon(ctx context.Context, url string) (*models.PokemonRecord, error)
	GetPokemonByName(ctx context.Context, name string) (*models.PokemonRecord, error)
	GetTypeWeaknesses(ctx context.Context, typeName string) ([]string, error)
	GetSpecies(ctx context.Context, url string) (*models.SpeciesRecord, error)
	Download(ctx context.Context, url string) ([]byte, error)
}
