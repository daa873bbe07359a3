/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: ipa.go
Description: Compiled-in IPA feature database implementing FeatureProvider.
Resolves base IPA segments and diacritic-marked variants to privative feature
bundles, tokenizes words by greedy longest match, and answers reverse
bundle-to-identifier queries. The raw table is validated against the feature
catalogue at construction; an unknown feature name is a fatal configuration error.
*/

package provider

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kleascm/phonolearn/pkg/features"
)

// rawSegments is the base segment table as it would arrive from an external
// feature database: plain names, validated at construction.
var rawSegments = map[string][]string{
	"p":  {"Anterior", "Consonantal", "Labial"},
	"b":  {"Anterior", "Consonantal", "Labial", "Voice"},
	"t":  {"Anterior", "Consonantal", "Coronal"},
	"d":  {"Anterior", "Consonantal", "Coronal", "Voice"},
	"k":  {"Consonantal", "Dorsal", "High"},
	"g":  {"Consonantal", "Dorsal", "High", "Voice"},
	"ʔ":  {"Consonantal", "ConstrictedGlottis"},
	"f":  {"Anterior", "Consonantal", "Continuant", "Labial", "Strident"},
	"v":  {"Anterior", "Consonantal", "Continuant", "Labial", "Strident", "Voice"},
	"θ":  {"Anterior", "Consonantal", "Continuant", "Coronal"},
	"ð":  {"Anterior", "Consonantal", "Continuant", "Coronal", "Voice"},
	"s":  {"Anterior", "Consonantal", "Continuant", "Coronal", "Strident"},
	"z":  {"Anterior", "Consonantal", "Continuant", "Coronal", "Strident", "Voice"},
	"ʃ":  {"Consonantal", "Continuant", "Coronal", "Strident"},
	"ʒ":  {"Consonantal", "Continuant", "Coronal", "Strident", "Voice"},
	"x":  {"Consonantal", "Continuant", "Dorsal", "High"},
	"h":  {"Consonantal", "Continuant", "SpreadGlottis"},
	"tʃ": {"Consonantal", "Coronal", "DelayedRelease", "Strident"},
	"dʒ": {"Consonantal", "Coronal", "DelayedRelease", "Strident", "Voice"},
	"m":  {"Anterior", "Consonantal", "Labial", "Nasal", "Sonorant", "Voice"},
	"n":  {"Anterior", "Consonantal", "Coronal", "Nasal", "Sonorant", "Voice"},
	"ŋ":  {"Consonantal", "Dorsal", "High", "Nasal", "Sonorant", "Voice"},
	"l":  {"Anterior", "Consonantal", "Continuant", "Coronal", "Lateral", "Sonorant", "Voice"},
	"r":  {"Anterior", "Consonantal", "Continuant", "Coronal", "Sonorant", "Voice"},
	"j":  {"Continuant", "High", "Sonorant", "Voice"},
	"w":  {"Continuant", "High", "Labial", "Round", "Sonorant", "Voice"},
	"i":  {"Continuant", "High", "Sonorant", "Syllabic", "Tense", "Voice"},
	"ɪ":  {"Continuant", "High", "Sonorant", "Syllabic", "Voice"},
	"e":  {"Continuant", "Sonorant", "Syllabic", "Tense", "Voice"},
	"ɛ":  {"Continuant", "Sonorant", "Syllabic", "Voice"},
	"a":  {"Back", "Continuant", "Low", "Sonorant", "Syllabic", "Voice"},
	"o":  {"Back", "Continuant", "Round", "Sonorant", "Syllabic", "Tense", "Voice"},
	"ɔ":  {"Back", "Continuant", "Round", "Sonorant", "Syllabic", "Voice"},
	"u":  {"Back", "Continuant", "High", "Round", "Sonorant", "Syllabic", "Tense", "Voice"},
	"ʊ":  {"Back", "Continuant", "High", "Round", "Sonorant", "Syllabic", "Voice"},
}

// rawDiacritics maps diacritic marks to the single feature each one adds.
// Diacritics are suffixed to a base segment identifier.
var rawDiacritics = map[string]string{
	"ʰ":      "SpreadGlottis", // aspiration
	"ʷ":      "Round",         // labialization
	"ː":      "Tense",         // length
	"̃": "Nasal",         // combining tilde, nasalization
}

// IPAProvider implements FeatureProvider over the compiled-in IPA table.
type IPAProvider struct {
	segments   map[string]features.Set
	diacritics map[string]features.Feature
	maxBaseLen int // longest base identifier, in runes
}

// NewIPAProvider builds the provider, validating every table entry against
// the feature catalogue. An unknown feature name anywhere in the table is a
// configuration error and fails construction.
func NewIPAProvider() (*IPAProvider, error) {
	p := &IPAProvider{
		segments:   make(map[string]features.Set, len(rawSegments)),
		diacritics: make(map[string]features.Feature, len(rawDiacritics)),
	}
	for id, names := range rawSegments {
		set, err := features.ParseSet(names...)
		if err != nil {
			return nil, fmt.Errorf("segment %q: %w", id, err)
		}
		p.segments[id] = set
		if n := len([]rune(id)); n > p.maxBaseLen {
			p.maxBaseLen = n
		}
	}
	for mark, name := range rawDiacritics {
		f, err := features.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("diacritic %q: %w", mark, err)
		}
		p.diacritics[mark] = f
	}
	return p, nil
}

// FeaturesOf resolves one segment identifier, base or diacritic-marked.
// The identifier must parse as a base segment followed by zero or more
// diacritic marks; anything else is ErrUnknownSegment.
func (p *IPAProvider) FeaturesOf(segment string) (features.Set, error) {
	runes := []rune(segment)
	if len(runes) == 0 {
		return nil, fmt.Errorf("empty identifier: %w", ErrUnknownSegment)
	}

	// Longest base prefix first so "tʃ" wins over "t".
	for n := min(p.maxBaseLen, len(runes)); n >= 1; n-- {
		base, ok := p.segments[string(runes[:n])]
		if !ok {
			continue
		}
		set := base.Clone()
		rest := runes[n:]
		valid := true
		for _, r := range rest {
			f, ok := p.diacritics[string(r)]
			if !ok {
				valid = false
				break
			}
			set.Add(f)
		}
		if valid {
			return set, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", segment, ErrUnknownSegment)
}

// SegmentWord tokenizes a word by greedy longest match: at each position
// the longest known base identifier is taken, then any trailing diacritic
// marks are absorbed into the same segment.
func (p *IPAProvider) SegmentWord(word string) ([]string, error) {
	word = strings.TrimSpace(strings.Trim(word, "/"))
	runes := []rune(word)
	var out []string
	for i := 0; i < len(runes); {
		matched := 0
		for n := min(p.maxBaseLen, len(runes)-i); n >= 1; n-- {
			if _, ok := p.segments[string(runes[i:i+n])]; ok {
				matched = n
				break
			}
		}
		if matched == 0 {
			return nil, fmt.Errorf("%q at position %d in %q: %w", string(runes[i]), i, word, ErrUnknownSegment)
		}
		end := i + matched
		for end < len(runes) {
			if _, ok := p.diacritics[string(runes[end])]; !ok {
				break
			}
			end++
		}
		out = append(out, string(runes[i:end]))
		i = end
	}
	return out, nil
}

// IdentifiersOf returns every identifier whose bundle equals s, sorted.
// Base segments always participate; with allowDiacritics, base plus one
// diacritic variants are considered as well. Multi-diacritic variants are
// not enumerated.
func (p *IPAProvider) IdentifiersOf(s features.Set, allowDiacritics bool) []string {
	var out []string
	for id, set := range p.segments {
		if set.Equal(s) {
			out = append(out, id)
		}
	}
	if allowDiacritics {
		for id, set := range p.segments {
			for mark, f := range p.diacritics {
				if set.Has(f) {
					continue // mark would be redundant on this base
				}
				variant := set.Clone()
				variant.Add(f)
				if variant.Equal(s) {
					out = append(out, id+mark)
				}
			}
		}
	}
	sort.Strings(out)
	return out
}
