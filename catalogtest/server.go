// Package catalogtest serves a small, fixed copy of the catalog API for tests.
package catalogtest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// SpriteWidth and SpriteHeight are the dimensions of every served sprite
const (
	SpriteWidth  = 200
	SpriteHeight = 100
)

type pokemon struct {
	id        int
	name      string
	height    int
	weight    int
	types     []string
	abilities []string
	speciesID int
	noSprite  bool
}

type species struct {
	id          int
	name        string
	evolvesFrom int // 0 means no ancestor
}

// Catalog order of the listing endpoint
var pokemons = []pokemon{
	{id: 1, name: "bulbasaur", height: 7, weight: 69, types: []string{"grass", "poison"}, abilities: []string{"overgrow", "chlorophyll"}, speciesID: 1},
	{id: 4, name: "charmander", height: 6, weight: 85, types: []string{"fire"}, abilities: []string{"blaze", "solar-power"}, speciesID: 4},
	{id: 5, name: "charmeleon", height: 11, weight: 190, types: []string{"fire"}, abilities: []string{"blaze", "solar-power"}, speciesID: 5},
	{id: 6, name: "charizard", height: 17, weight: 905, types: []string{"fire", "flying"}, abilities: []string{"blaze", "solar-power"}, speciesID: 6},
	{id: 7, name: "squirtle", height: 5, weight: 90, types: []string{"water"}, abilities: []string{"torrent", "rain-dish"}, speciesID: 7},
	{id: 900, name: "ouroboros", height: 10, weight: 1, types: []string{"dragon"}, abilities: []string{"loop"}, speciesID: 900, noSprite: true},
}

var speciesByID = map[int]species{
	1:   {id: 1, name: "bulbasaur"},
	4:   {id: 4, name: "charmander"},
	5:   {id: 5, name: "charmeleon", evolvesFrom: 4},
	6:   {id: 6, name: "charizard", evolvesFrom: 5},
	7:   {id: 7, name: "squirtle"},
	900: {id: 900, name: "ouroboros", evolvesFrom: 901},
	901: {id: 901, name: "soroboruo", evolvesFrom: 900},
}

// Weaknesses lists double_damage_from per type. "dragon" is deliberately missing (404).
var Weaknesses = map[string][]string{
	"fire":   {"ground", "rock", "water"},
	"flying": {"electric", "ice", "rock"},
	"grass":  {"fire", "flying", "ice", "psychic"},
	"poison": {"ground", "psychic"},
	"water":  {"electric", "grass"},
}

// BrokenID is listed in the catalog but its record always fails with 500
const BrokenID = 999

// Server is a fake catalog API
type Server struct {
	*httptest.Server

	mu   sync.Mutex
	hits map[string]int
}

// NewServer starts a fake catalog API that is closed when the test ends
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{hits: make(map[string]int)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root to configure the app with
func (s *Server) BaseURL() string {
	return s.URL + "/api/v2"
}

// Hits returns how many times path was requested
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// TotalHits returns the number of requests served
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

// ArtworkTemplate is an artwork URL template pointing at this server
func (s *Server) ArtworkTemplate() string {
	return s.URL + "/artwork/%d.png"
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	s.mu.Unlock()

	path := strings.Trim(r.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case path == "api/v2/pokemon":
		s.writeList(w)
	case len(parts) == 4 && parts[2] == "pokemon":
		s.writePokemon(w, parts[3])
	case len(parts) == 4 && parts[2] == "type":
		s.writeType(w, parts[3])
	case len(parts) == 4 && parts[2] == "pokemon-species":
		s.writeSpecies(w, parts[3])
	case len(parts) == 2 && parts[0] == "sprites":
		writeSprite(w)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) writeList(w http.ResponseWriter) {
	results := make([]map[string]string, 0, len(pokemons)+1)
	for _, p := range pokemons {
		results = append(results, map[string]string{
			"name": p.name,
			"url":  fmt.Sprintf("%s/pokemon/%d/", s.BaseURL(), p.id),
		})
	}
	results = append(results, map[string]string{
		"name": "missingno",
		"url":  fmt.Sprintf("%s/pokemon/%d/", s.BaseURL(), BrokenID),
	})
	writeJSON(w, map[string]any{"count": len(results), "next": nil, "results": results})
}

func (s *Server) writePokemon(w http.ResponseWriter, key string) {
	if key == strconv.Itoa(BrokenID) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
		return
	}
	p, ok := findPokemon(key)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	types := make([]map[string]any, 0, len(p.types))
	for i, name := range p.types {
		types = append(types, map[string]any{"slot": i + 1, "type": map[string]string{"name": name, "url": s.BaseURL() + "/type/" + name}})
	}
	abilities := make([]map[string]any, 0, len(p.abilities))
	for _, name := range p.abilities {
		abilities = append(abilities, map[string]any{"ability": map[string]string{"name": name}})
	}
	stats := []map[string]any{
		{"base_stat": 45 + p.id, "stat": map[string]string{"name": "hp"}},
		{"base_stat": 49 + p.id, "stat": map[string]string{"name": "attack"}},
		{"base_stat": 65 + p.id, "stat": map[string]string{"name": "special-attack"}},
	}
	sprites := map[string]any{"front_default": nil}
	if !p.noSprite {
		sprites["front_default"] = fmt.Sprintf("%s/sprites/%d.png", s.URL, p.id)
	}

	writeJSON(w, map[string]any{
		"id":        p.id,
		"name":      p.name,
		"height":    p.height,
		"weight":    p.weight,
		"sprites":   sprites,
		"types":     types,
		"abilities": abilities,
		"stats":     stats,
		"species":   map[string]string{"name": p.name, "url": fmt.Sprintf("%s/pokemon-species/%d/", s.BaseURL(), p.speciesID)},
	})
}

func (s *Server) writeType(w http.ResponseWriter, name string) {
	weak, ok := Weaknesses[name]
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	from := make([]map[string]string, 0, len(weak))
	for _, t := range weak {
		from = append(from, map[string]string{"name": t, "url": s.BaseURL() + "/type/" + t})
	}
	writeJSON(w, map[string]any{
		"name":             name,
		"damage_relations": map[string]any{"double_damage_from": from},
	})
}

func (s *Server) writeSpecies(w http.ResponseWriter, key string) {
	id, err := strconv.Atoi(key)
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	sp, ok := speciesByID[id]
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	var from any
	if sp.evolvesFrom != 0 {
		prev := speciesByID[sp.evolvesFrom]
		from = map[string]string{"name": prev.name, "url": fmt.Sprintf("%s/pokemon-species/%d/", s.BaseURL(), prev.id)}
	}
	writeJSON(w, map[string]any{"id": sp.id, "name": sp.name, "evolves_from_species": from})
}

func findPokemon(key string) (pokemon, bool) {
	for _, p := range pokemons {
		if key == p.name || key == strconv.Itoa(p.id) {
			return p, true
		}
	}
	return pokemon{}, false
}

func writeSprite(w http.ResponseWriter) {
	img := image.NewNRGBA(image.Rect(0, 0, SpriteWidth, SpriteHeight))
	for x := 0; x < SpriteWidth; x++ {
		for y := 0; y < SpriteHeight; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
