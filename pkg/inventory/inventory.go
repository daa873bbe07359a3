/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inventory.go
Description: Inventory generation and segment validation for the phonolearn engine.
Enumerates candidate feature bundles against the learned grammar by brute-force
power-set search and resolves valid bundles to segment identifiers through the
FeatureProvider reverse lookup.
*/

package inventory

import (
	"github.com/kleascm/phonolearn/pkg/features"
	"github.com/kleascm/phonolearn/pkg/grammar"
	"github.com/kleascm/phonolearn/pkg/provider"
)

// Entry is one predicted inventory member: a valid feature bundle and the
// identifiers it resolves to. IsEmpty marks bundles the feature database
// has no identifier for.
type Entry struct {
	Identifiers []string `json:"identifiers"`
	Features    []string `json:"features"`
	IsEmpty     bool     `json:"is_empty"`
}

// Generator validates candidate segments against a grammar store and
// predicts the full segment inventory.
type Generator struct {
	store    *grammar.Store
	provider provider.FeatureProvider
}

// NewGenerator creates a generator over the given store and provider.
func NewGenerator(store *grammar.Store, p provider.FeatureProvider) *Generator {
	return &Generator{store: store, provider: p}
}

// ValidSegment reports whether s satisfies every constraint of every
// feature it contains: each attract target present, no reject target
// present. Features absent from s impose no constraint. The empty segment
// is trivially valid.
func (g *Generator) ValidSegment(s features.Set) bool {
	for f := range s {
		if !g.store.AttractSet(f).SubsetOf(s) {
			return false
		}
		if g.store.RejectSet(f).Intersects(s) {
			return false
		}
	}
	return true
}

// Predicted enumerates the power set of the known features, keeps the
// bundles ValidSegment accepts, and resolves each through the provider's
// reverse lookup. With basicOnly, diacritic-marked identifiers are
// excluded.
//
// The search space is 2^|knownFeatures|. That is tractable only because
// the feature catalogue is capped at 20; growing the catalogue makes this
// enumeration explode combinatorially and would force a constraint
// propagation rewrite.
//
// Output order is deterministic for unchanged grammar state: ascending
// bitmask over the alphabetically sorted known-feature list, so the empty
// bundle comes first and singleton bundles precede their supersets.
func (g *Generator) Predicted(basicOnly bool) []Entry {
	known := g.store.KnownFeatures()
	n := len(known)
	out := make([]Entry, 0)
	for mask := 0; mask < 1<<n; mask++ {
		candidate := features.NewSet()
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				candidate.Add(known[i])
			}
		}
		if !g.ValidSegment(candidate) {
			continue
		}
		ids := g.provider.IdentifiersOf(candidate, !basicOnly)
		out = append(out, Entry{
			Identifiers: ids,
			Features:    candidate.Names(),
			IsEmpty:     len(ids) == 0,
		})
	}
	return out
}
