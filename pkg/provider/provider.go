/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: provider.go
Description: FeatureProvider interface for the phonolearn engine. Isolates the
third-party feature-resolution concern (segment identifier to feature set, word
tokenization, reverse bundle-to-identifier lookup) behind a narrow interface so
the core never depends on the resource's internal representation.
*/

package provider

import (
	"fmt"

	"github.com/kleascm/phonolearn/pkg/features"
)

// ErrUnknownSegment indicates an identifier the feature database cannot
// resolve. It surfaces immediately to the caller; there is no recovery or
// retry at this layer.
var ErrUnknownSegment = fmt.Errorf("unknown segment")

// FeatureProvider resolves segment identifiers to feature sets and back.
// All calls are synchronous and blocking; the core delegates to them
// without retry policy.
type FeatureProvider interface {
	// FeaturesOf returns the feature set of one segment identifier.
	// Fails with ErrUnknownSegment if the identifier is unresolvable.
	FeaturesOf(segment string) (features.Set, error)

	// SegmentWord splits a word identifier into an ordered sequence of
	// segment identifiers.
	SegmentWord(word string) ([]string, error)

	// IdentifiersOf performs the reverse lookup: all identifiers whose
	// feature bundle equals s, sorted. With allowDiacritics, single
	// diacritic-marked variants of base segments are included. May return
	// zero identifiers.
	IdentifiersOf(s features.Set, allowDiacritics bool) []string
}
