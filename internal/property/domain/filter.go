package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// Filter is the set of optional search constraints. Zero values mean
// "no constraint"; all supplied constraints combine with logical AND.
type Filter struct {
	// City matches as a case-insensitive substring.
	City string
	// Type matches exactly against the property type enum.
	Type PropertyType
	// MinPrice and MaxPrice are inclusive bounds; zero means unbounded.
	MinPrice int64
	MaxPrice int64
	// Bedrooms is an "at least N" constraint, matching the 1+/2+/3+
	// buckets callers present to users.
	Bedrooms int
}

// FilterFromValues builds a Filter from request query parameters.
// Numeric parameters that fail to parse, or parse negative, are dropped
// rather than rejected; existing callers rely on that leniency.
func FilterFromValues(values url.Values) Filter {
	f := Filter{
		City: strings.TrimSpace(values.Get("city")),
	}
	if t := PropertyType(strings.TrimSpace(values.Get("type"))); ValidPropertyType(t) {
		f.Type = t
	}
	if v, err := strconv.ParseInt(values.Get("minPrice"), 10, 64); err == nil && v > 0 {
		f.MinPrice = v
	}
	if v, err := strconv.ParseInt(values.Get("maxPrice"), 10, 64); err == nil && v > 0 {
		f.MaxPrice = v
	}
	if v, err := strconv.Atoi(values.Get("bedrooms")); err == nil && v > 0 {
		f.Bedrooms = v
	}
	return f
}

// Matches reports whether p satisfies every supplied constraint. The
// storage layer translates Filter into a native query; Matches is the
// reference semantics used by tests and in-memory implementations.
func (f Filter) Matches(p *Property) bool {
	if f.City != "" && !strings.Contains(strings.ToLower(p.City), strings.ToLower(f.City)) {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.Bedrooms > 0 && p.Bedrooms < f.Bedrooms {
		return false
	}
	return true
}
