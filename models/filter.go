package models

import "net/url"

// HeightBucket is the height range selected in the listing filter
type HeightBucket string

const (
	HeightAny    HeightBucket = ""
	HeightSmall  HeightBucket = "small"  // height <= 5
	HeightMedium HeightBucket = "medium" // 5 < height <= 10
	HeightLarge  HeightBucket = "large"  // height > 10
)

// Filter keys accepted on the listing query string
const (
	FilterKeyType     = "type"
	FilterKeyWeakness = "weakness"
	FilterKeyHeight   = "height"
)

// Valid reports whether b is one of the known buckets (or empty)
func (b HeightBucket) Valid() bool {
	switch b {
	case HeightAny, HeightSmall, HeightMedium, HeightLarge:
		return true
	}
	return false
}

// Contains reports whether height falls in the bucket.
// An empty bucket contains every height; an unknown label contains none.
func (b HeightBucket) Contains(height int) bool {
	switch b {
	case HeightAny:
		return true
	case HeightSmall:
		return height <= 5
	case HeightMedium:
		return height > 5 && height <= 10
	case HeightLarge:
		return height > 10
	default:
		return false
	}
}

// QueryFilter represents the listing filter. Empty fields always pass.
type QueryFilter struct {
	Type     string       `json:"type"`
	Weakness string       `json:"weakness"`
	Height   HeightBucket `json:"height"`
}

// ParseQueryFilter builds a QueryFilter from the request query. Values are kept
// as sent, so "?type=%20fire" matches no type.
// The second return value reports whether the query carried any parameter at all.
func ParseQueryFilter(values url.Values) (QueryFilter, bool) {
	filter := QueryFilter{
		Type:     values.Get(FilterKeyType),
		Weakness: values.Get(FilterKeyWeakness),
		Height:   HeightBucket(values.Get(FilterKeyHeight)),
	}
	return filter, len(values) > 0
}

// IsEmpty reports whether every criterion is neutral
func (f QueryFilter) IsEmpty() bool {
	return f.Type == "" && f.Weakness == "" && f.Height == HeightAny
}

// Values converts the filter back to query parameters, omitting empty criteria
func (f QueryFilter) Values() url.Values {
	values := url.Values{}
	if f.Type != "" {
		values.Set(FilterKeyType, f.Type)
	}
	if f.Weakness != "" {
		values.Set(FilterKeyWeakness, f.Weakness)
	}
	if f.Height != HeightAny {
		values.Set(FilterKeyHeight, string(f.Height))
	}
	return values
}
