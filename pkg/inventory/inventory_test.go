/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inventory_test.go
Description: Unit tests for segment validation and power-set inventory prediction.
Covers the validity definition, inventory soundness against the grammar,
deterministic enumeration order, and identifier resolution through the feature
database.
*/

package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/phonolearn/pkg/features"
	"github.com/kleascm/phonolearn/pkg/grammar"
	"github.com/kleascm/phonolearn/pkg/inventory"
	"github.com/kleascm/phonolearn/pkg/learner"
	"github.com/kleascm/phonolearn/pkg/provider"
)

// learnedStore builds a store that has seen an /s/-like and a /p/-like
// segment, the canonical two-observation grammar
func learnedStore(t *testing.T) *grammar.Store {
	t.Helper()
	store := grammar.NewStore()
	l := learner.New(store)
	l.Learn(features.NewSet(features.Anterior, features.Consonantal,
		features.Continuant, features.Coronal, features.Strident))
	l.Learn(features.NewSet(features.Anterior, features.Consonantal, features.Labial))
	return store
}

func newGenerator(t *testing.T) (*inventory.Generator, *grammar.Store) {
	t.Helper()
	store := learnedStore(t)
	p, err := provider.NewIPAProvider()
	require.NoError(t, err)
	return inventory.NewGenerator(store, p), store
}

// TestValidSegmentDefinition tests the validity predicate against the
// attract/reject definition
func TestValidSegmentDefinition(t *testing.T) {
	gen, store := newGenerator(t)

	// Coronal carries no constraints, so it rides along freely
	assert.True(t, gen.ValidSegment(features.NewSet(
		features.Anterior, features.Consonantal, features.Coronal)))

	// Labial alone misses its attract targets Anterior and Consonantal
	assert.False(t, gen.ValidSegment(features.NewSet(features.Labial)))

	// Empty segment is trivially valid
	assert.True(t, gen.ValidSegment(features.NewSet()))

	// Reject violation: force one and check
	store.SetReject(features.Coronal, features.Strident)
	assert.False(t, gen.ValidSegment(features.NewSet(features.Coronal, features.Strident)))
	assert.True(t, gen.ValidSegment(features.NewSet(features.Coronal)))
}

// TestValidityConsistency tests the predicate against a direct evaluation
// of the definition over every subset of the known features
func TestValidityConsistency(t *testing.T) {
	gen, store := newGenerator(t)
	known := store.KnownFeatures()
	require.Len(t, known, 6)

	for mask := 0; mask < 1<<len(known); mask++ {
		s := features.NewSet()
		for i, f := range known {
			if mask&(1<<i) != 0 {
				s.Add(f)
			}
		}
		expected := true
		for f := range s {
			if !store.AttractSet(f).SubsetOf(s) || store.RejectSet(f).Intersects(s) {
				expected = false
				break
			}
		}
		assert.Equal(t, expected, gen.ValidSegment(s), "subset %s", s)
	}
}

// TestPredictedInventorySoundness tests that every predicted entry
// satisfies ValidSegment
func TestPredictedInventorySoundness(t *testing.T) {
	gen, _ := newGenerator(t)
	entries := gen.Predicted(false)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		s, err := features.ParseSet(entry.Features...)
		require.NoError(t, err)
		assert.True(t, gen.ValidSegment(s), "inventory entry %v is not valid", entry.Features)
	}
}

// TestPredictedInventoryOrderAndResolution tests deterministic bitmask
// ordering and identifier resolution
func TestPredictedInventoryOrderAndResolution(t *testing.T) {
	gen, _ := newGenerator(t)
	entries := gen.Predicted(false)

	// Empty bundle enumerates first and resolves to nothing
	require.NotEmpty(t, entries)
	assert.Empty(t, entries[0].Features)
	assert.True(t, entries[0].IsEmpty)

	// Enumeration is stable for unchanged grammar state
	again := gen.Predicted(false)
	assert.Equal(t, entries, again)

	// The observed segments themselves are in the inventory
	var foundP, foundS bool
	for _, entry := range entries {
		switch {
		case equalNames(entry.Features, []string{"Anterior", "Consonantal", "Labial"}):
			foundP = true
			assert.Contains(t, entry.Identifiers, "p")
			assert.False(t, entry.IsEmpty)
		case equalNames(entry.Features, []string{"Anterior", "Consonantal", "Continuant", "Coronal", "Strident"}):
			foundS = true
			assert.Contains(t, entry.Identifiers, "s")
		}
	}
	assert.True(t, foundP, "expected the /p/ bundle in the inventory")
	assert.True(t, foundS, "expected the /s/ bundle in the inventory")
}

// TestPredictedInventoryBasicOnly tests that basicOnly excludes
// diacritic-marked identifiers
func TestPredictedInventoryBasicOnly(t *testing.T) {
	store := grammar.NewStore()
	l := learner.New(store)
	// The /i/ bundle: with diacritics it also resolves as lengthened /ɪ/
	l.Learn(features.NewSet(features.Continuant, features.High, features.Sonorant,
		features.Syllabic, features.Tense, features.Voice))

	p, err := provider.NewIPAProvider()
	require.NoError(t, err)
	gen := inventory.NewGenerator(store, p)

	find := func(entries []inventory.Entry, names []string) *inventory.Entry {
		for i := range entries {
			if equalNames(entries[i].Features, names) {
				return &entries[i]
			}
		}
		return nil
	}
	iBundle := []string{"Continuant", "High", "Sonorant", "Syllabic", "Tense", "Voice"}

	full := find(gen.Predicted(false), iBundle)
	require.NotNil(t, full)
	assert.Equal(t, []string{"i", "ɪː"}, full.Identifiers)

	basic := find(gen.Predicted(true), iBundle)
	require.NotNil(t, basic)
	assert.Equal(t, []string{"i"}, basic.Identifiers)
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
