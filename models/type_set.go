package models

import (
	"sort"
	"strings"
)

// TypeSet is a set of type names
type TypeSet map[string]struct{}

// NewTypeSet creates a TypeSet holding names
func NewTypeSet(names ...string) TypeSet {
	set := make(TypeSet, len(names))
	for _, name := range names {
		set.Add(name)
	}
	return set
}

// Add inserts name into the set
func (s TypeSet) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is in the set
func (s TypeSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Union adds every member of other to s
func (s TypeSet) Union(other TypeSet) {
	for name := range other {
		s.Add(name)
	}
}

// Sorted returns the members in alphabetical order
func (s TypeSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Join returns the sorted members joined by sep
func (s TypeSet) Join(sep string) string {
	return strings.Join(s.Sorted(), sep)
}
