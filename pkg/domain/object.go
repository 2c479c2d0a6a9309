package domain

import "sync"

// ObjectKind distinguishes the flavors of UI element a state can own.
type ObjectKind string

const (
	KindImage    ObjectKind = "image"
	KindRegion   ObjectKind = "region"
	KindLocation ObjectKind = "location"
	KindString   ObjectKind = "string"
)

// ObjectMeta carries free-form descriptive data attached to an object in the
// configuration. It has no effect on matching or navigation.
type ObjectMeta struct {
	Description string   `mapstructure:"description"`
	Tags        []string `mapstructure:"tags"`
	Source      string   `mapstructure:"source"`
}

// StateObject is a UI element owned by a state: an image template, a named
// region, a fixed location or a string to type.
//
// The mutable part (cached search region, location, match history) is guarded
// by a mutex because the region resolver may update it from concurrent find
// pipelines. When two resolutions race on the same object the last writer
// wins; no merge is attempted.
type StateObject struct {
	Name       string
	OwnerState string
	Kind       ObjectKind
	Meta       ObjectMeta

	// FixedRegion is an explicit, user-configured search region. When set it
	// is authoritative: the resolver never overrides it.
	FixedRegion *Region

	// SearchRegionOn declares that this object's search region derives from
	// another object's match. Nil for independent objects.
	SearchRegionOn *SearchRegionOnObject

	mu         sync.Mutex
	cached     *Region
	location   Location
	lastMatch  *Match
	timesFound int
}

// HasFixedRegion reports whether a user-configured region is set.
func (o *StateObject) HasFixedRegion() bool {
	return o.FixedRegion != nil
}

// EffectiveRegion returns the region a find operation should search: the
// fixed region when configured, otherwise the resolver's cached region,
// otherwise nil (full screen).
func (o *StateObject) EffectiveRegion() *Region {
	if o.FixedRegion != nil {
		r := *o.FixedRegion
		return &r
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cached == nil {
		return nil
	}
	r := *o.cached
	return &r
}

// SetCachedRegion replaces the derived search region.
func (o *StateObject) SetCachedRegion(r Region) {
	o.mu.Lock()
	o.cached = &r
	o.mu.Unlock()
}

// CachedRegion returns the derived search region, or nil.
func (o *StateObject) CachedRegion() *Region {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cached == nil {
		return nil
	}
	r := *o.cached
	return &r
}

// SetLocation updates the object's point position (location-kind objects).
func (o *StateObject) SetLocation(l Location) {
	o.mu.Lock()
	o.location = l
	o.mu.Unlock()
}

// Location returns the object's point position.
func (o *StateObject) Location() Location {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.location
}

// RecordMatch stores a successful find result and bumps the found counter.
func (o *StateObject) RecordMatch(m Match) {
	o.mu.Lock()
	c := m
	o.lastMatch = &c
	o.timesFound++
	o.mu.Unlock()
}

// LastMatch returns the most recent recorded match, or nil if the object has
// never been found.
func (o *StateObject) LastMatch() *Match {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.lastMatch == nil {
		return nil
	}
	m := *o.lastMatch
	return &m
}

// TimesFound returns how often the object has been found so far.
func (o *StateObject) TimesFound() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.timesFound
}
