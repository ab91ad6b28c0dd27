// Package templates holds the HTML pages rendered by the web front-end.
package templates

import "embed"

// FS contains every page template
//
//go:embed *.html
var FS embed.FS

const (
	Listing = "pokemons.html"
	Detail  = "poke_name.html"
)
