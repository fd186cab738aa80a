package model

import "sort"

// Notes maps a section identifier (for example "overview") to free text.
type Notes map[string]string

// Clone returns a deep copy of the notes map. A nil map clones to an empty map.
func (n Notes) Clone() Notes {
	out := make(Notes, len(n))
	for k, v := range n {
		out[k] = v
	}
	return out
}

// Keys returns the section identifiers in sorted order.
func (n Notes) Keys() []string {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether both maps hold the same entries.
func (n Notes) Equal(other Notes) bool {
	if len(n) != len(other) {
		return false
	}
	for k, v := range n {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Equal reports whether both maps hold the same entries.
func (r Ratings) Equal(other Ratings) bool {
	if len(r) != len(other) {
		return false
	}
	for k, v := range r {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
