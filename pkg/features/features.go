/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: features.go
Description: Privative phonological feature catalogue and feature set type for the
phonolearn engine. Defines the fixed closed catalogue of 20 semantic features and
the set operations the grammar learner is built on.
*/

package features

import (
	"fmt"
	"sort"
	"strings"
)

// Feature is an atomic immutable symbol from the fixed feature catalogue.
// Features are privative: presence alone is meaningful, absence carries no
// constraint information.
type Feature string

// The curated catalogue of privative phonological features. This set is
// closed: any feature name outside it is a fatal configuration error.
const (
	Anterior           Feature = "Anterior"
	Back               Feature = "Back"
	Consonantal        Feature = "Consonantal"
	ConstrictedGlottis Feature = "ConstrictedGlottis"
	Continuant         Feature = "Continuant"
	Coronal            Feature = "Coronal"
	DelayedRelease     Feature = "DelayedRelease"
	Dorsal             Feature = "Dorsal"
	High               Feature = "High"
	Labial             Feature = "Labial"
	Lateral            Feature = "Lateral"
	Low                Feature = "Low"
	Nasal              Feature = "Nasal"
	Round              Feature = "Round"
	Sonorant           Feature = "Sonorant"
	SpreadGlottis      Feature = "SpreadGlottis"
	Strident           Feature = "Strident"
	Syllabic           Feature = "Syllabic"
	Tense              Feature = "Tense"
	Voice              Feature = "Voice"
)

// ErrInvalidFeatureName indicates a feature name outside the curated
// catalogue. This is a configuration error and is detected at startup when
// provider tables are validated.
var ErrInvalidFeatureName = fmt.Errorf("feature name outside catalogue")

// catalogue holds the closed feature catalogue in alphabetical order.
var catalogue = []Feature{
	Anterior, Back, Consonantal, ConstrictedGlottis, Continuant,
	Coronal, DelayedRelease, Dorsal, High, Labial,
	Lateral, Low, Nasal, Round, Sonorant,
	SpreadGlottis, Strident, Syllabic, Tense, Voice,
}

var catalogueIndex = func() map[Feature]struct{} {
	idx := make(map[Feature]struct{}, len(catalogue))
	for _, f := range catalogue {
		idx[f] = struct{}{}
	}
	return idx
}()

// Catalogue returns the full feature catalogue in alphabetical order.
// The returned slice is a copy and safe to mutate.
func Catalogue() []Feature {
	out := make([]Feature, len(catalogue))
	copy(out, catalogue)
	return out
}

// Valid reports whether f belongs to the catalogue.
func Valid(f Feature) bool {
	_, ok := catalogueIndex[f]
	return ok
}

// Parse resolves a feature name against the catalogue. Returns
// ErrInvalidFeatureName (wrapped with the offending name) for anything
// outside it.
func Parse(name string) (Feature, error) {
	f := Feature(name)
	if !Valid(f) {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidFeatureName)
	}
	return f, nil
}

// Set is a set of features representing one observed or candidate segment.
// The empty set is a valid segment. Set is not safe for concurrent use;
// each learning session owns its sets exclusively.
type Set map[Feature]struct{}

// NewSet builds a set from the given features.
func NewSet(fs ...Feature) Set {
	s := make(Set, len(fs))
	for _, f := range fs {
		s[f] = struct{}{}
	}
	return s
}

// ParseSet builds a set from feature names, validating each against the
// catalogue.
func ParseSet(names ...string) (Set, error) {
	s := make(Set, len(names))
	for _, name := range names {
		f, err := Parse(name)
		if err != nil {
			return nil, err
		}
		s[f] = struct{}{}
	}
	return s, nil
}

// Add inserts f into the set.
func (s Set) Add(f Feature) {
	s[f] = struct{}{}
}

// Has reports membership of f.
func (s Set) Has(f Feature) bool {
	_, ok := s[f]
	return ok
}

// Len returns the number of features in the set.
func (s Set) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for f := range s {
		out[f] = struct{}{}
	}
	return out
}

// Equal reports whether s and other contain exactly the same features.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for f := range s {
		if !other.Has(f) {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every feature of s is in other.
func (s Set) SubsetOf(other Set) bool {
	for f := range s {
		if !other.Has(f) {
			return false
		}
	}
	return true
}

// Intersects reports whether s and other share at least one feature.
func (s Set) Intersects(other Set) bool {
	for f := range s {
		if other.Has(f) {
			return true
		}
	}
	return false
}

// Sorted returns the features in alphabetical order. This is the canonical
// ordering used everywhere deterministic output is required.
func (s Set) Sorted() []Feature {
	out := make([]Feature, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Names returns the sorted feature names as plain strings.
func (s Set) Names() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, f := range sorted {
		out[i] = string(f)
	}
	return out
}

// String renders the set as {A, B, C} in alphabetical order.
func (s Set) String() string {
	return "{" + strings.Join(s.Names(), ", ") + "}"
}
