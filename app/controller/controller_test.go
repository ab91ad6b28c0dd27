package controller_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"pokedex-web/app/controller"
	"pokedex-web/app/router"
	"pokedex-web/catalogtest"
	"pokedex-web/models"
	"pokedex-web/repository"
	"pokedex-web/service"
)

type fakeExportService struct {
	filter models.QueryFilter
	name   string
	err    error
}

func (f *fakeExportService) GenerateListingPDF(ctx context.Context, filter models.QueryFilter) ([]byte, error) {
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func (f *fakeExportService) GenerateDetailPNG(ctx context.Context, name string) ([]byte, error) {
	f.name = name
	if f.err != nil {
		return nil, f.err
	}
	return []byte("\x89PNG fake"), nil
}

func newTestMux(t *testing.T, export *fakeExportService) *http.ServeMux {
	mux, _ := newTestMuxWithAPI(t, export)
	return mux
}

func newTestMuxWithAPI(t *testing.T, export *fakeExportService) (*http.ServeMux, *catalogtest.Server) {
	t.Helper()
	api := catalogtest.NewServer(t)
	repo := repository.NewCatalogRepository(api.BaseURL(), api.Client(), zap.NewNop())
	catalog := service.NewCatalogService(repo, service.CatalogOptions{ArtworkURLTemplate: api.ArtworkTemplate()}, zap.NewNop())
	renderer, err := service.NewRenderService()
	require.NoError(t, err)

	mux := http.NewServeMux()
	router.SetupRoutes(mux, &router.Controllers{
		Pokemon: controller.NewPokemonController(catalog, renderer, zap.NewNop()),
		Export:  controller.NewExportController(catalog, export, service.NewSpriteService(repo, service.NewImageOptimizer(nil), nil), zap.NewNop()),
	})
	return mux, api
}

func serve(mux http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestWelcomePostRedirectsToDetail(t *testing.T) {
	mux := newTestMux(t, &fakeExportService{})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"name": {"Pikachu"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(mux, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/pokemon/Pikachu", rec.Header().Get("Location"))
}

func TestWelcomePostWithoutNameRendersListing(t *testing.T) {
	mux := newTestMux(t, &fakeExportService{})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=+"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(mux, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Charizard")
}

func TestWelcomeFiltersByType(t *testing.T) {
	mux := newTestMux(t, &fakeExportService{})

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/?type=Fire", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "Charmander")
	assert.Contains(t, body, "Charizard")
	assert.NotContains(t, body, "Bulbasaur")
	assert.NotContains(t, body, "Squirtle")
}

func TestWelcomeWarnsOnUnknownHeight(t *testing.T) {
	api := catalogtest.NewServer(t)
	repo := repository.NewCatalogRepository(api.BaseURL(), api.Client(), zap.NewNop())
	catalog := service.NewCatalogService(repo, service.CatalogOptions{ArtworkURLTemplate: api.ArtworkTemplate()}, zap.NewNop())
	renderer, err := service.NewRenderService()
	require.NoError(t, err)

	core, logs := observer.New(zap.WarnLevel)
	pokemon := controller.NewPokemonController(catalog, renderer, zap.New(core))

	rec := httptest.NewRecorder()
	pokemon.Welcome(rec, httptest.NewRequest(http.MethodGet, "/?height=huge", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No pokemon found.")

	entries := logs.FilterField(zap.String("height", "huge")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "unrecognized height filter, nothing will match", entries[0].Message)
}

func TestPokemonDetailsUnknownRedirects(t *testing.T) {
	mux := newTestMux(t, &fakeExportService{})

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/pokemon/agumon", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestPokemonDetailsRenders(t *testing.T) {
	mux := newTestMux(t, &fakeExportService{})

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/pokemon/CHARIZARD", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<dd class="weaknesses">electric, ground, ice, rock, water</dd>`)
}

func TestExportListingPDF(t *testing.T) {
	export := &fakeExportService{}
	mux := newTestMux(t, export)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/export/pokemons.pdf?type=fire&height=large", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "pokemons.pdf")
	assert.Equal(t, models.QueryFilter{Type: "fire", Height: models.HeightLarge}, export.filter)
}

func TestExportListingPDFFailure(t *testing.T) {
	mux := newTestMux(t, &fakeExportService{err: errors.New("no chrome")})

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/export/pokemons.pdf", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestExportDetailCard(t *testing.T) {
	export := &fakeExportService{}
	mux, api := newTestMuxWithAPI(t, export)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/pokemon/Charizard/card.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "charizard", export.name)
	// existence check reads the record only; the browser loads the detail page itself
	assert.Equal(t, 1, api.TotalHits())
	assert.Equal(t, 1, api.Hits("/api/v2/pokemon/charizard"))

	rec = serve(mux, httptest.NewRequest(http.MethodGet, "/pokemon/agumon/card.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSprite(t *testing.T) {
	mux := newTestMux(t, &fakeExportService{})

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/pokemon/bulbasaur/sprite", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())

	rec = serve(mux, httptest.NewRequest(http.MethodGet, "/pokemon/bulbasaur/sprite?size=huge", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(mux, httptest.NewRequest(http.MethodGet, "/pokemon/ouroboros/sprite", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(mux, httptest.NewRequest(http.MethodGet, "/pokemon/agumon/sprite", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
