package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pokedex-web/models"
	"pokedex-web/repository"
	"pokedex-web/utils"
)

// ErrPokemonNotFound is returned when the detail record cannot be fetched.
// Callers redirect to the listing page.
var ErrPokemonNotFound = errors.New("pokemon not found")

const (
	DefaultArtworkURLTemplate = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png"
	DefaultMaxEvolutionHops   = 16
	DefaultFetchConcurrency   = 4
)

// CatalogOptions tunes CatalogService. Zero values fall back to the defaults above.
type CatalogOptions struct {
	ArtworkURLTemplate string
	MaxEvolutionHops   int
	FetchConcurrency   int
}

// CatalogService assembles the listing and detail view models
type CatalogService struct {
	repository repository.CatalogRepositoryInterface
	fetcher    *AttributeFetcher
	options    CatalogOptions
	logger     *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(repo repository.CatalogRepositoryInterface, options CatalogOptions, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if options.ArtworkURLTemplate == "" {
		options.ArtworkURLTemplate = DefaultArtworkURLTemplate
	}
	if options.MaxEvolutionHops <= 0 {
		options.MaxEvolutionHops = DefaultMaxEvolutionHops
	}
	if options.FetchConcurrency <= 0 {
		options.FetchConcurrency = DefaultFetchConcurrency
	}
	return &CatalogService{
		repository: repo,
		fetcher:    NewAttributeFetcher(repo, logger),
		options:    options,
		logger:     logger,
	}
}

// Ensure CatalogService implements CatalogServiceInterface
var _ CatalogServiceInterface = (*CatalogService)(nil)

// ListPokemon returns the first catalog page enriched with image and height.
// When filtered is true every entry is evaluated against filter; order is always
// the catalog API order. An unavailable catalog yields an empty list.
func (s *CatalogService) ListPokemon(ctx context.Context, filter models.QueryFilter, filtered bool) ([]models.CatalogEntry, error) {
	resources, err := s.repository.ListPokemon(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrUnavailable) {
			s.logger.Warn("catalog page unavailable", zap.Error(err))
			return []models.CatalogEntry{}, nil
		}
		return nil, err
	}

	entries := make([]models.CatalogEntry, len(resources))
	keep := make([]bool, len(resources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.options.FetchConcurrency)
	for i, resource := range resources {
		g.Go(func() error {
			entries[i] = models.CatalogEntry{
				Name:   utils.Capitalize(resource.Name),
				URL:    resource.URL,
				Image:  s.fetcher.Image(gctx, resource.URL),
				Height: s.fetcher.Height(gctx, resource.URL),
			}
			keep[i] = !filtered || MatchesFilter(filter, s.fetcher.FilterAttributes(gctx, resource.URL))
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to assemble listing: %w", err)
	}

	result := make([]models.CatalogEntry, 0, len(entries))
	for i, entry := range entries {
		if keep[i] {
			result = append(result, entry)
		}
	}

	s.logger.Debug("listing assembled",
		zap.Int("catalog", len(resources)),
		zap.Int("kept", len(result)),
		zap.Bool("filtered", filtered),
	)
	return result, nil
}

// GetPokemonDetail assembles the detail view for name (case-insensitive).
// It returns ErrPokemonNotFound when the record cannot be fetched.
func (s *CatalogService) GetPokemonDetail(ctx context.Context, name string) (*models.PokemonDetail, error) {
	record, err := s.GetPokemonRecord(ctx, name)
	if err != nil {
		return nil, err
	}

	types := record.Types
	if types == nil {
		types = []string{}
	}

	detail := &models.PokemonDetail{
		Name:           utils.Capitalize(record.Name),
		Image:          record.Sprite,
		ID:             record.ID,
		Height:         record.Height,
		Weight:         record.Weight,
		Abilities:      strings.Join(record.Abilities, ", "),
		BaseStats:      formatStats(record.Stats),
		Types:          strings.Join(types, ", "),
		Weaknesses:     s.fetcher.EntityWeaknesses(ctx, types).Join(", "),
		EvolutionChain: s.evolutionChain(ctx, record.SpeciesURL),
	}
	return detail, nil
}

// GetPokemonRecord fetches only the base record for name, without types,
// weaknesses or evolution. It returns ErrPokemonNotFound when the record cannot be fetched.
func (s *CatalogService) GetPokemonRecord(ctx context.Context, name string) (*models.PokemonRecord, error) {
	normalized := utils.NormalizeName(name)
	if normalized == "" {
		return nil, ErrPokemonNotFound
	}

	record, err := s.repository.GetPokemonByName(ctx, normalized)
	if err != nil {
		s.logger.Info("pokemon lookup failed", zap.String("name", normalized), zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrPokemonNotFound, normalized)
	}
	return record, nil
}

// evolutionChain walks evolves_from_species links backward from speciesURL and
// returns the ancestors oldest first. The walk stops on a missing link, a failed
// fetch, a repeated URL or after MaxEvolutionHops ancestors.
func (s *CatalogService) evolutionChain(ctx context.Context, speciesURL string) []models.EvolutionStage {
	chain := []models.EvolutionStage{}
	if speciesURL == "" {
		return chain
	}

	species, err := s.repository.GetSpecies(ctx, speciesURL)
	if err != nil {
		s.logger.Debug("species unavailable", zap.String("url", speciesURL), zap.Error(err))
		return chain
	}

	visited := map[string]bool{speciesURL: true}
	current := species.EvolvesFromURL
	for current != "" {
		if visited[current] {
			s.logger.Warn("evolution chain cycle detected", zap.String("url", current))
			break
		}
		if len(chain) >= s.options.MaxEvolutionHops {
			s.logger.Warn("evolution chain truncated", zap.Int("hops", len(chain)))
			break
		}
		visited[current] = true

		ancestor, err := s.repository.GetSpecies(ctx, current)
		if err != nil {
			s.logger.Debug("ancestor species unavailable", zap.String("url", current), zap.Error(err))
			break
		}
		chain = append(chain, models.EvolutionStage{
			Name:  utils.Capitalize(ancestor.Name),
			Image: fmt.Sprintf(s.options.ArtworkURLTemplate, ancestor.ID),
		})
		current = ancestor.EvolvesFromURL
	}

	reverseStages(chain)
	return chain
}

func reverseStages(stages []models.EvolutionStage) {
	for i, j := 0, len(stages)-1; i < j; i, j = i+1, j-1 {
		stages[i], stages[j] = stages[j], stages[i]
	}
}

func formatStats(stats []models.PokemonStat) string {
	parts := make([]string, 0, len(stats))
	for _, stat := range stats {
		parts = append(parts, fmt.Sprintf("%s: %d", utils.Capitalize(stat.Name), stat.BaseStat))
	}
	return strings.Join(parts, ", ")
}
