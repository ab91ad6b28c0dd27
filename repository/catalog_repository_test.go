package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pokedex-web/catalogtest"
	"pokedex-web/loader"
)

func newTestRepository(t *testing.T) (*CatalogRepository, *catalogtest.Server) {
	t.Helper()
	api := catalogtest.NewServer(t)
	return NewCatalogRepository(api.BaseURL(), api.Client(), zap.NewNop()), api
}

func TestListPokemonKeepsAPIOrder(t *testing.T) {
	repo, _ := newTestRepository(t)

	resources, err := repo.ListPokemon(context.Background())
	require.NoError(t, err)

	var got []string
	for _, r := range resources {
		got = append(got, r.Name)
		assert.NotEmpty(t, r.URL)
	}
	assert.Equal(t, []string{"bulbasaur", "charmander", "charmeleon", "charizard", "squirtle", "ouroboros", "missingno"}, got)
}

func TestGetPokemonByNameDecodesRecord(t *testing.T) {
	repo, api := newTestRepository(t)

	record, err := repo.GetPokemonByName(context.Background(), "Charizard")
	require.NoError(t, err)

	assert.Equal(t, 6, record.ID)
	assert.Equal(t, "charizard", record.Name)
	assert.Equal(t, 17, record.Height)
	assert.Equal(t, 905, record.Weight)
	assert.Equal(t, api.URL+"/sprites/6.png", record.Sprite)
	assert.Equal(t, []string{"fire", "flying"}, record.Types)
	assert.Equal(t, []string{"blaze", "solar-power"}, record.Abilities)
	require.Len(t, record.Stats, 3)
	assert.Equal(t, "special-attack", record.Stats[2].Name)
	assert.Equal(t, 71, record.Stats[2].BaseStat)
	assert.Equal(t, api.BaseURL()+"/pokemon-species/6/", record.SpeciesURL)
}

func TestGetPokemonMissingSpriteIsEmpty(t *testing.T) {
	repo, _ := newTestRepository(t)

	record, err := repo.GetPokemonByName(context.Background(), "ouroboros")
	require.NoError(t, err)
	assert.Empty(t, record.Sprite)
}

func TestGetPokemonUnknownIsUnavailable(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.GetPokemonByName(context.Background(), "agumon")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestGetTypeWeaknesses(t *testing.T) {
	repo, _ := newTestRepository(t)

	weak, err := repo.GetTypeWeaknesses(context.Background(), "fire")
	require.NoError(t, err)
	assert.Equal(t, []string{"ground", "rock", "water"}, weak)

	_, err = repo.GetTypeWeaknesses(context.Background(), "dragon")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGetSpecies(t *testing.T) {
	repo, api := newTestRepository(t)

	sp, err := repo.GetSpecies(context.Background(), api.BaseURL()+"/pokemon-species/6/")
	require.NoError(t, err)
	assert.Equal(t, 6, sp.ID)
	assert.Equal(t, "charizard", sp.Name)
	assert.Equal(t, api.BaseURL()+"/pokemon-species/5/", sp.EvolvesFromURL)

	root, err := repo.GetSpecies(context.Background(), api.BaseURL()+"/pokemon-species/4/")
	require.NoError(t, err)
	assert.Empty(t, root.EvolvesFromURL)
}

func TestFetchRejectsMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	repo := NewCatalogRepository(srv.URL, srv.Client(), zap.NewNop())
	_, err := repo.Fetch(context.Background(), srv.URL+"/pokemon")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = repo.ListPokemon(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	repo := NewCatalogRepository(base, nil, nil)
	_, err := repo.Fetch(context.Background(), base+"/pokemon")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGetJSONUsesRequestLoader(t *testing.T) {
	repo, api := newTestRepository(t)
	ctx := loader.WithResponseLoader(context.Background(), loader.NewResponseLoader(repo.Fetch, 0))

	for i := 0; i < 3; i++ {
		_, err := repo.GetPokemonByName(ctx, "charizard")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, api.Hits("/api/v2/pokemon/charizard"))

	for i := 0; i < 2; i++ {
		_, err := repo.GetPokemonByName(context.Background(), "charizard")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, api.Hits("/api/v2/pokemon/charizard"))
}

func TestPokemonURLEscapesName(t *testing.T) {
	repo := NewCatalogRepository("https://example.test/api/v2/", nil, nil)
	assert.Equal(t, "https://example.test/api/v2/pokemon/mr-mime", repo.PokemonURL("Mr-Mime"))
	assert.Equal(t, "https://example.test/api/v2/pokemon/a%2Fb", repo.PokemonURL("a/b"))
}
