package service

import (
	"strings"

	"pokedex-web/models"
)

// FilterAttributes are the already-fetched attributes a filter is evaluated against
type FilterAttributes struct {
	Types      []string
	Weaknesses models.TypeSet
	Height     int
}

// CheckParam evaluates a single filter criterion. An empty value always passes;
// an unknown key never does.
func CheckParam(key, value string, attrs FilterAttributes) bool {
	if value == "" {
		return true
	}

	switch key {
	case models.FilterKeyType:
		want := strings.ToLower(value)
		for _, t := range attrs.Types {
			if strings.ToLower(t) == want {
				return true
			}
		}
		return false
	case models.FilterKeyWeakness:
		return attrs.Weaknesses.Has(strings.ToLower(value))
	case models.FilterKeyHeight:
		return models.HeightBucket(value).Contains(attrs.Height)
	default:
		return false
	}
}

// MatchesFilter reports whether attrs pass every criterion of filter
func MatchesFilter(filter models.QueryFilter, attrs FilterAttributes) bool {
	return CheckParam(models.FilterKeyType, filter.Type, attrs) &&
		CheckParam(models.FilterKeyWeakness, filter.Weakness, attrs) &&
		CheckParam(models.FilterKeyHeight, string(filter.Height), attrs)
}
