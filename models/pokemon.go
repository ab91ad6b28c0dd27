package models

// CatalogEntry represents a single pokemon in the listing page
type CatalogEntry struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Image  string `json:"image"`
	Height int    `json:"height"`
}

// EvolutionStage is one ancestor in an evolution chain
type EvolutionStage struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// PokemonDetail represents the data passed to the detail template
type PokemonDetail struct {
	Name           string           `json:"name"`
	Image          string           `json:"image"`
	ID             int              `json:"id"`
	Height         int              `json:"height"`
	Weight         int              `json:"weight"`
	Abilities      string           `json:"abilities"`       // Comma-joined ability names
	BaseStats      string           `json:"base_stats"`      // Comma-joined "Name: value" pairs
	Types          string           `json:"types"`           // Comma-joined, API order
	Weaknesses     string           `json:"weaknesses"`      // Comma-joined, alphabetical
	EvolutionChain []EvolutionStage `json:"evolution_chain"` // Oldest ancestor first
}

// ListingData represents the data structure passed to the listing template
type ListingData struct {
	Pokemons []CatalogEntry `json:"pokemons"`
	Filter   QueryFilter    `json:"filter"`
}

// NamedResource is a {name, url} pair as returned by the catalog API
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PokemonStat is a single base stat of a pokemon
type PokemonStat struct {
	Name     string `json:"name"`
	BaseStat int    `json:"base_stat"`
}

// PokemonRecord is the decoded subset of a pokemon record that the app uses.
// Missing upstream fields decode to their zero value.
type PokemonRecord struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Height     int           `json:"height"`
	Weight     int           `json:"weight"`
	Sprite     string        `json:"sprite"`
	Types      []string      `json:"types"`
	Abilities  []string      `json:"abilities"`
	Stats      []PokemonStat `json:"stats"`
	SpeciesURL string        `json:"species_url"`
}

// SpeciesRecord is the decoded subset of a species record
type SpeciesRecord struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	EvolvesFromURL string `json:"evolves_from_url"` // Empty when the species has no ancestor
}
