/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: session_test.go
Description: Unit tests for the learning session surface. Covers segment and word
learning, per-segment atomicity on mid-word failures, empty-input no-ops, word
validation reports, inventory prediction, grammar table access, and reset
completeness.
*/

package session_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/phonolearn/pkg/features"
	"github.com/kleascm/phonolearn/pkg/learner"
	"github.com/kleascm/phonolearn/pkg/provider"
	"github.com/kleascm/phonolearn/pkg/session"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newIPASession(t *testing.T) *session.Session {
	t.Helper()
	p, err := provider.NewIPAProvider()
	require.NoError(t, err)
	return session.New(p, quietLogger())
}

// brokenProvider wraps the IPA provider but fails feature resolution for
// one designated segment, to exercise mid-word failure paths
type brokenProvider struct {
	inner   provider.FeatureProvider
	badSeg  string
	wordOut []string
}

func (b *brokenProvider) FeaturesOf(segment string) (features.Set, error) {
	if segment == b.badSeg {
		return nil, fmt.Errorf("%q: %w", segment, provider.ErrUnknownSegment)
	}
	return b.inner.FeaturesOf(segment)
}

func (b *brokenProvider) SegmentWord(word string) ([]string, error) {
	return b.wordOut, nil
}

func (b *brokenProvider) IdentifiersOf(s features.Set, allowDiacritics bool) []string {
	return b.inner.IdentifiersOf(s, allowDiacritics)
}

// TestLearnSegment tests single-segment learning through the session
func TestLearnSegment(t *testing.T) {
	sess := newIPASession(t)

	trace, err := sess.LearnSegment("s")
	require.NoError(t, err)
	assert.Len(t, trace.NewFeatures, 5)

	trace, err = sess.LearnSegment("p")
	require.NoError(t, err)
	assert.Equal(t, []features.Feature{features.Labial}, trace.NewFeatures)
	require.Len(t, trace.AttractsAdded, 2)
}

// TestLearnSegmentUnknownLeavesGrammarUntouched tests per-call atomicity
func TestLearnSegmentUnknownLeavesGrammarUntouched(t *testing.T) {
	sess := newIPASession(t)
	_, err := sess.LearnSegment("s")
	require.NoError(t, err)
	before := sess.GrammarTable()

	_, err = sess.LearnSegment("q")
	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrUnknownSegment))
	assert.Equal(t, before, sess.GrammarTable())
}

// TestLearnWord tests ordered multi-segment learning
func TestLearnWord(t *testing.T) {
	sess := newIPASession(t)

	traces, err := sess.LearnWord("pat")
	require.NoError(t, err)
	require.Len(t, traces, 3)

	// /p/ opens the word, so its three features arrive without context
	assert.Len(t, traces[0].NewFeatures, 3)
	assert.Empty(t, traces[0].AttractsAdded)

	// /a/ and /t/ hypothesize attraction to earlier co-occurring features
	assert.NotEmpty(t, traces[2].AttractsAdded)
}

// TestLearnWordPerSegmentAtomicity tests that a failure at segment k keeps
// the learning effects of segments before k
func TestLearnWordPerSegmentAtomicity(t *testing.T) {
	ipa, err := provider.NewIPAProvider()
	require.NoError(t, err)
	broken := &brokenProvider{inner: ipa, badSeg: "??", wordOut: []string{"p", "??", "t"}}
	sess := session.New(broken, quietLogger())

	traces, err := sess.LearnWord("p??t")
	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrUnknownSegment))

	// The /p/ segment before the failure stays committed
	require.Len(t, traces, 1)
	table := sess.GrammarTable()
	require.Len(t, table, 3)
	assert.Equal(t, features.Anterior, table[0].Feature)
}

// TestEmptyInputsAreNoOps tests the empty-input policy
func TestEmptyInputsAreNoOps(t *testing.T) {
	sess := newIPASession(t)

	trace, err := sess.LearnSegment("")
	require.NoError(t, err)
	assert.True(t, trace.Empty())

	traces, err := sess.LearnWord("")
	require.NoError(t, err)
	assert.Empty(t, traces)

	report, err := sess.CheckWord("")
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Segments)

	assert.Empty(t, sess.GrammarTable())
}

// TestValidSegmentAndCheckWord tests validation through the session surface
func TestValidSegmentAndCheckWord(t *testing.T) {
	sess := newIPASession(t)
	_, err := sess.LearnWord("sa")
	require.NoError(t, err)
	_, err = sess.LearnWord("pa")
	require.NoError(t, err)

	// /t/ = {Anterior, Consonantal, Coronal}: all constraint-free or
	// satisfied, so it validates against the learned grammar
	valid, err := sess.ValidSegment("t")
	require.NoError(t, err)
	assert.True(t, valid)

	report, err := sess.CheckWord("tas")
	require.NoError(t, err)
	require.Len(t, report.Segments, 3)
	assert.True(t, report.Valid)
	assert.Equal(t, "t", report.Segments[0].Identifier)

	_, err = sess.CheckWord("taq")
	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrUnknownSegment))
}

// TestPredictedInventorySoundness tests that the session's inventory only
// contains bundles its own validator accepts
func TestPredictedInventorySoundness(t *testing.T) {
	sess := newIPASession(t)
	_, err := sess.LearnSegment("s")
	require.NoError(t, err)
	_, err = sess.LearnSegment("p")
	require.NoError(t, err)

	entries := sess.PredictedInventory(true)
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		if entry.IsEmpty {
			assert.Empty(t, entry.Identifiers)
			continue
		}
		for _, id := range entry.Identifiers {
			valid, err := sess.ValidSegment(id)
			require.NoError(t, err)
			assert.True(t, valid, "inventory identifier %q should validate", id)
		}
	}
}

// TestResetCompleteness tests that reset returns the session to a blank
// grammar
func TestResetCompleteness(t *testing.T) {
	sess := newIPASession(t)
	_, err := sess.LearnWord("pat")
	require.NoError(t, err)
	require.NotEmpty(t, sess.GrammarTable())

	sess.Reset()
	assert.Empty(t, sess.GrammarTable())

	// Only the empty bundle remains enumerable
	entries := sess.PredictedInventory(true)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Features)
}

// TestSessionIndependence tests that concurrent learning streams own
// independent grammar state
func TestSessionIndependence(t *testing.T) {
	a := newIPASession(t)
	b := newIPASession(t)
	assert.NotEqual(t, a.ID(), b.ID())

	_, err := a.LearnSegment("s")
	require.NoError(t, err)
	assert.NotEmpty(t, a.GrammarTable())
	assert.Empty(t, b.GrammarTable(), "sessions must not share grammar state")
}

// recordingSink captures journal records for inspection
type recordingSink struct {
	records []string
}

func (r *recordingSink) Record(sessionID string, seq int, segment string, featureNames []string, trace learner.Trace) error {
	r.records = append(r.records, fmt.Sprintf("%d:%s", seq, segment))
	return nil
}

// TestRecorderReceivesCommittedSteps tests the journal hook ordering
func TestRecorderReceivesCommittedSteps(t *testing.T) {
	sess := newIPASession(t)
	sink := &recordingSink{}
	sess.SetRecorder(sink)

	_, err := sess.LearnWord("pat")
	require.NoError(t, err)
	assert.Equal(t, []string{"1:p", "2:a", "3:t"}, sink.records)
}
