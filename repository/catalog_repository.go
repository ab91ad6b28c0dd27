package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"pokedex-web/loader"
	"pokedex-web/models"
)

// ErrUnavailable is returned for any upstream failure: transport error,
// non-200 status or a body that is not JSON. Callers treat it as missing data.
var ErrUnavailable = errors.New("catalog data unavailable")

// CatalogRepository reads pokemon, type and species data from the catalog API
type CatalogRepository struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewCatalogRepository creates a new CatalogRepository.
// baseURL is the API root, e.g. "https://pokeapi.co/api/v2".
func NewCatalogRepository(baseURL string, client *http.Client, logger *zap.Logger) *CatalogRepository {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// Fetch performs a GET against url and returns the raw JSON body.
// It never consults the request-scoped loader; use getJSON for that.
func (r *CatalogRepository) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := r.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		r.logger.Debug("catalog response is not valid JSON", zap.String("url", rawURL))
		return nil, fmt.Errorf("%w: malformed JSON from %s", ErrUnavailable, rawURL)
	}
	return body, nil
}

// Download performs a GET against url and returns the raw body without JSON validation
func (r *CatalogRepository) Download(ctx context.Context, rawURL string) ([]byte, error) {
	return r.get(ctx, rawURL)
}

func (r *CatalogRepository) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", ErrUnavailable, rawURL, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Debug("catalog request failed", zap.String("url", rawURL), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Debug("catalog request returned non-200",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUnavailable, rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body of %s: %v", ErrUnavailable, rawURL, err)
	}
	return body, nil
}

// getJSON goes through the request-scoped loader when one is attached to ctx
func (r *CatalogRepository) getJSON(ctx context.Context, rawURL string) ([]byte, error) {
	if l := loader.FromContext(ctx); l != nil {
		return l.Load(ctx, rawURL)
	}
	return r.Fetch(ctx, rawURL)
}

// ListPokemon returns the first page of the pokemon list, in API order
func (r *CatalogRepository) ListPokemon(ctx context.Context) ([]models.NamedResource, error) {
	body, err := r.getJSON(ctx, r.baseURL+"/pokemon")
	if err != nil {
		return nil, err
	}

	results := gjson.GetBytes(body, "results").Array()
	resources := make([]models.NamedResource, 0, len(results))
	for _, item := range results {
		name := item.Get("name").String()
		itemURL := item.Get("url").String()
		if name == "" || itemURL == "" {
			continue
		}
		resources = append(resources, models.NamedResource{Name: name, URL: itemURL})
	}
	return resources, nil
}

// GetPokemon fetches and decodes the pokemon record at url
func (r *CatalogRepository) GetPokemon(ctx context.Context, rawURL string) (*models.PokemonRecord, error) {
	body, err := r.getJSON(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return decodePokemon(body), nil
}

// GetPokemonByName fetches the pokemon record for name (case-insensitive)
func (r *CatalogRepository) GetPokemonByName(ctx context.Context, name string) (*models.PokemonRecord, error) {
	return r.GetPokemon(ctx, r.PokemonURL(name))
}

// PokemonURL returns the detail endpoint for name
func (r *CatalogRepository) PokemonURL(name string) string {
	return fmt.Sprintf("%s/pokemon/%s", r.baseURL, url.PathEscape(strings.ToLower(name)))
}

// GetTypeWeaknesses returns the names of the types that deal double damage to typeName
func (r *CatalogRepository) GetTypeWeaknesses(ctx context.Context, typeName string) ([]string, error) {
	typeURL := fmt.Sprintf("%s/type/%s", r.baseURL, url.PathEscape(typeName))
	body, err := r.getJSON(ctx, typeURL)
	if err != nil {
		return nil, err
	}
	return names(gjson.GetBytes(body, "damage_relations.double_damage_from.#.name")), nil
}

// GetSpecies fetches and decodes the species record at url
func (r *CatalogRepository) GetSpecies(ctx context.Context, rawURL string) (*models.SpeciesRecord, error) {
	body, err := r.getJSON(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return &models.SpeciesRecord{
		ID:             int(gjson.GetBytes(body, "id").Int()),
		Name:           gjson.GetBytes(body, "name").String(),
		EvolvesFromURL: gjson.GetBytes(body, "evolves_from_species.url").String(),
	}, nil
}

func decodePokemon(body []byte) *models.PokemonRecord {
	fields := gjson.GetManyBytes(body, "id", "name", "height", "weight", "sprites.front_default", "species.url")
	record := &models.PokemonRecord{
		ID:         int(fields[0].Int()),
		Name:       fields[1].String(),
		Height:     int(fields[2].Int()),
		Weight:     int(fields[3].Int()),
		Sprite:     fields[4].String(),
		SpeciesURL: fields[5].String(),
		Types:      names(gjson.GetBytes(body, "types.#.type.name")),
		Abilities:  names(gjson.GetBytes(body, "abilities.#.ability.name")),
	}

	gjson.GetBytes(body, "stats").ForEach(func(_, stat gjson.Result) bool {
		record.Stats = append(record.Stats, models.PokemonStat{
			Name:     stat.Get("stat.name").String(),
			BaseStat: int(stat.Get("base_stat").Int()),
		})
		return true
	})
	return record
}

// names flattens a gjson array of strings, lowercased, dropping empty entries
func names(result gjson.Result) []string {
	values := make([]string, 0)
	for _, item := range result.Array() {
		if name := strings.ToLower(item.String()); name != "" {
			values = append(values, name)
		}
	}
	return values
}
