/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: store.go
Description: Grammar store for the phonolearn engine. Owns the mapping from known
features to their attract/reject constraint sets and each feature's observation
history. All mutators are idempotent and total; the store is exclusively owned by
one learning session and is not safe for concurrent use.
*/

package grammar

import (
	"github.com/kleascm/phonolearn/pkg/features"
)

// Entry is one row of the grammar table: a known feature and its current
// constraint sets, with features sorted alphabetically.
type Entry struct {
	Feature  features.Feature `json:"feature"`
	Attracts []string         `json:"attracts"`
	Rejects  []string         `json:"rejects"`
}

// Store owns the learned grammar state: per-feature attract and reject
// constraint sets plus the observation history the reject rule is computed
// from. A feature is present in the store iff it has been observed at least
// once. For any ordered pair (F,G), attract and reject are never
// simultaneously set.
type Store struct {
	attract map[features.Feature]features.Set
	reject  map[features.Feature]features.Set
	history map[features.Feature][]features.Set
}

// NewStore creates an empty grammar store.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset unconditionally clears all grammar and history state.
func (s *Store) Reset() {
	s.attract = make(map[features.Feature]features.Set)
	s.reject = make(map[features.Feature]features.Set)
	s.history = make(map[features.Feature][]features.Set)
}

// Knows reports whether f has been observed at least once.
func (s *Store) Knows(f features.Feature) bool {
	_, ok := s.attract[f]
	return ok
}

// AddFeature registers f with empty constraint sets. Idempotent: adding a
// known feature is a no-op.
func (s *Store) AddFeature(f features.Feature) {
	if s.Knows(f) {
		return
	}
	s.attract[f] = features.NewSet()
	s.reject[f] = features.NewSet()
}

// SetAttract records Attract(from, to): any segment containing from must
// contain to. Clears a conflicting Reject(from, to) to preserve the
// exclusivity invariant.
func (s *Store) SetAttract(from, to features.Feature) {
	s.AddFeature(from)
	s.attract[from].Add(to)
	if r, ok := s.reject[from]; ok {
		delete(r, to)
	}
}

// ClearAttract removes Attract(from, to) if present.
func (s *Store) ClearAttract(from, to features.Feature) {
	if a, ok := s.attract[from]; ok {
		delete(a, to)
	}
}

// SetReject records Reject(from, to): any segment containing from must not
// contain to. Clears a conflicting Attract(from, to).
func (s *Store) SetReject(from, to features.Feature) {
	s.AddFeature(from)
	s.reject[from].Add(to)
	if a, ok := s.attract[from]; ok {
		delete(a, to)
	}
}

// ClearReject removes Reject(from, to) if present.
func (s *Store) ClearReject(from, to features.Feature) {
	if r, ok := s.reject[from]; ok {
		delete(r, to)
	}
}

// RecordObservation appends one observed segment to f's history. The
// history grows monotonically until Reset.
func (s *Store) RecordObservation(f features.Feature, segment features.Set) {
	s.AddFeature(f)
	s.history[f] = append(s.history[f], segment.Clone())
}

// AttractSet returns a copy of f's attract constraint targets. Unknown
// features have an empty attract set.
func (s *Store) AttractSet(f features.Feature) features.Set {
	if a, ok := s.attract[f]; ok {
		return a.Clone()
	}
	return features.NewSet()
}

// RejectSet returns a copy of f's reject constraint targets.
func (s *Store) RejectSet(f features.Feature) features.Set {
	if r, ok := s.reject[f]; ok {
		return r.Clone()
	}
	return features.NewSet()
}

// History returns the segments f has been observed in, in observation order.
func (s *Store) History(f features.Feature) []features.Set {
	hist := s.history[f]
	out := make([]features.Set, len(hist))
	for i, seg := range hist {
		out[i] = seg.Clone()
	}
	return out
}

// ObservationCount returns how many segments f has been observed in.
func (s *Store) ObservationCount(f features.Feature) int {
	return len(s.history[f])
}

// ObservedWith reports whether g appears in at least one of f's recorded
// segments. This is the predicate the reject emergence rule is built on.
func (s *Store) ObservedWith(f, g features.Feature) bool {
	for _, seg := range s.history[f] {
		if seg.Has(g) {
			return true
		}
	}
	return false
}

// KnownFeatures returns all features observed so far, alphabetically.
func (s *Store) KnownFeatures() []features.Feature {
	known := features.NewSet()
	for f := range s.attract {
		known.Add(f)
	}
	return known.Sorted()
}

// Table returns the full grammar as sorted entries, one per known feature.
func (s *Store) Table() []Entry {
	known := s.KnownFeatures()
	out := make([]Entry, 0, len(known))
	for _, f := range known {
		out = append(out, Entry{
			Feature:  f,
			Attracts: s.attract[f].Names(),
			Rejects:  s.reject[f].Names(),
		})
	}
	return out
}
