/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: session.go
Description: Learning session for the phonolearn engine. Wires one exclusively-owned
GrammarStore, Learner, and InventoryGenerator behind the in-process call surface:
segment/word learning, segment/word validation, inventory prediction, grammar table
inspection, and reset. One Session per learning stream; never a process-wide
singleton.
*/

package session

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kleascm/phonolearn/pkg/features"
	"github.com/kleascm/phonolearn/pkg/grammar"
	"github.com/kleascm/phonolearn/pkg/inventory"
	"github.com/kleascm/phonolearn/pkg/learner"
	"github.com/kleascm/phonolearn/pkg/provider"
)

// Recorder receives one journal record per committed learn step. Optional;
// a nil recorder disables journaling. Recorder failures are logged, never
// propagated: the grammar mutation has already committed.
type Recorder interface {
	Record(sessionID string, seq int, segment string, featureNames []string, trace learner.Trace) error
}

// SegmentReport is the per-segment detail of a word validity check.
type SegmentReport struct {
	Identifier string   `json:"identifier"`
	Features   []string `json:"features"`
	Valid      bool     `json:"valid"`
}

// WordReport aggregates per-segment validity over one word.
type WordReport struct {
	Valid    bool            `json:"valid"`
	Segments []SegmentReport `json:"segments"`
}

// Session owns one grammar learning stream. Not safe for concurrent use;
// concurrent sessions must each own an independent Session.
type Session struct {
	id        string
	store     *grammar.Store
	learner   *learner.Learner
	generator *inventory.Generator
	provider  provider.FeatureProvider
	logger    logrus.FieldLogger
	recorder  Recorder
	steps     int
}

// New creates a session over the given provider. A nil logger falls back to
// the logrus standard logger.
func New(p provider.FeatureProvider, logger logrus.FieldLogger) *Session {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	store := grammar.NewStore()
	return &Session{
		id:        uuid.New().String(),
		store:     store,
		learner:   learner.New(store),
		generator: inventory.NewGenerator(store, p),
		provider:  p,
		logger:    logger,
	}
}

// NewWithID creates a session with a caller-chosen ID, used when resuming a
// journaled session.
func NewWithID(id string, p provider.FeatureProvider, logger logrus.FieldLogger) *Session {
	s := New(p, logger)
	s.id = id
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// SetRecorder attaches a journal recorder to the session.
func (s *Session) SetRecorder(r Recorder) {
	s.recorder = r
}

// LearnSegment resolves one segment identifier and applies it to the
// grammar. Resolution failure aborts the call before any mutation. An
// empty identifier is a no-op producing an empty trace.
func (s *Session) LearnSegment(identifier string) (learner.Trace, error) {
	if identifier == "" {
		return learner.Trace{}, nil
	}
	set, err := s.provider.FeaturesOf(identifier)
	if err != nil {
		return learner.Trace{}, fmt.Errorf("learn segment: %w", err)
	}
	return s.learnResolved(identifier, set), nil
}

// learnResolved commits one already-resolved segment. Journal failures are
// logged and swallowed; the grammar change has committed.
func (s *Session) learnResolved(identifier string, set features.Set) learner.Trace {
	trace := s.learner.Learn(set)
	s.steps++
	s.logger.WithFields(logrus.Fields{
		"session":  s.id,
		"segment":  identifier,
		"features": set.String(),
		"new":      len(trace.NewFeatures),
		"step":     s.steps,
	}).Info("Learned segment")

	if s.recorder != nil {
		if err := s.recorder.Record(s.id, s.steps, identifier, set.Names(), trace); err != nil {
			s.logger.WithError(err).WithField("segment", identifier).Warn("Journal record failed")
		}
	}
	return trace
}

// LearnWord segments a word and learns each segment in order. Atomicity is
// per segment, not per word: a resolution failure at segment k returns the
// traces already committed for segments before k alongside the error. An
// empty word is a no-op producing an empty trace sequence.
func (s *Session) LearnWord(identifier string) ([]learner.Trace, error) {
	if identifier == "" {
		return []learner.Trace{}, nil
	}
	segments, err := s.provider.SegmentWord(identifier)
	if err != nil {
		return []learner.Trace{}, fmt.Errorf("learn word: %w", err)
	}
	traces := make([]learner.Trace, 0, len(segments))
	for _, seg := range segments {
		set, err := s.provider.FeaturesOf(seg)
		if err != nil {
			return traces, fmt.Errorf("learn word: segment %q: %w", seg, err)
		}
		traces = append(traces, s.learnResolved(seg, set))
	}
	return traces, nil
}

// ValidSegment resolves a segment identifier and checks it against the
// learned grammar.
func (s *Session) ValidSegment(identifier string) (bool, error) {
	set, err := s.provider.FeaturesOf(identifier)
	if err != nil {
		return false, fmt.Errorf("validate segment: %w", err)
	}
	return s.generator.ValidSegment(set), nil
}

// CheckWord segments a word, validates every segment, and returns the
// aggregate validity with per-segment detail. Resolution failure aborts
// the whole check; no grammar state is touched either way.
func (s *Session) CheckWord(identifier string) (WordReport, error) {
	report := WordReport{Valid: true, Segments: []SegmentReport{}}
	if identifier == "" {
		return report, nil
	}
	segments, err := s.provider.SegmentWord(identifier)
	if err != nil {
		return WordReport{}, fmt.Errorf("check word: %w", err)
	}
	for _, seg := range segments {
		set, err := s.provider.FeaturesOf(seg)
		if err != nil {
			return WordReport{}, fmt.Errorf("check word: segment %q: %w", seg, err)
		}
		valid := s.generator.ValidSegment(set)
		report.Valid = report.Valid && valid
		report.Segments = append(report.Segments, SegmentReport{
			Identifier: seg,
			Features:   set.Names(),
			Valid:      valid,
		})
	}
	return report, nil
}

// PredictedInventory enumerates all feature bundles the grammar deems
// valid and resolves them to segment identifiers.
func (s *Session) PredictedInventory(basicOnly bool) []inventory.Entry {
	entries := s.generator.Predicted(basicOnly)
	s.logger.WithFields(logrus.Fields{
		"session": s.id,
		"known":   len(s.store.KnownFeatures()),
		"valid":   len(entries),
	}).Debug("Predicted inventory")
	return entries
}

// GrammarTable returns the current grammar as sorted per-feature entries.
func (s *Session) GrammarTable() []grammar.Entry {
	return s.store.Table()
}

// Reset clears all grammar and history state for this session.
func (s *Session) Reset() {
	s.store.Reset()
	s.steps = 0
	s.logger.WithField("session", s.id).Info("Grammar reset")
}
