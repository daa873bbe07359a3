/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: learner.go
Description: Per-segment constraint-update algorithm for the phonolearn engine.
Implements the fixed five-phase learning step: partition, attract pruning, attract
acquisition, history recording, and reject recomputation from accumulated history.
The final grammar state is a deterministic function of prior state and input,
independent of internal iteration order.
*/

package learner

import (
	"sort"

	"github.com/kleascm/phonolearn/pkg/features"
	"github.com/kleascm/phonolearn/pkg/grammar"
)

// Constraint is one directed typed relation between two features, recorded
// in a trace as it is added or removed.
type Constraint struct {
	From features.Feature `json:"from"`
	To   features.Feature `json:"to"`
}

// Trace records what one learn step changed: features seen for the first
// time and constraints added or removed. All slices are sorted by (From, To)
// so traces compare stably across runs.
type Trace struct {
	NewFeatures     []features.Feature `json:"new_features"`
	AttractsAdded   []Constraint       `json:"attracts_added"`
	AttractsRemoved []Constraint       `json:"attracts_removed"`
	RejectsAdded    []Constraint       `json:"rejects_added"`
	RejectsRemoved  []Constraint       `json:"rejects_removed"`
}

// Empty reports whether the step changed nothing.
func (t Trace) Empty() bool {
	return len(t.NewFeatures) == 0 &&
		len(t.AttractsAdded) == 0 && len(t.AttractsRemoved) == 0 &&
		len(t.RejectsAdded) == 0 && len(t.RejectsRemoved) == 0
}

func sortConstraints(cs []Constraint) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].From != cs[j].From {
			return cs[i].From < cs[j].From
		}
		return cs[i].To < cs[j].To
	})
}

// Learner mutates one exclusively-owned grammar store, one observed segment
// at a time. Not safe for concurrent use; each session owns its own
// Learner+Store pair.
type Learner struct {
	store *grammar.Store
}

// New creates a learner over the given store.
func New(store *grammar.Store) *Learner {
	return &Learner{store: store}
}

// Learn applies one observed segment to the grammar and returns the trace
// of changes. The empty set is a valid degenerate input and produces an
// empty trace without mutating anything.
//
// The algorithm is order-dependent across phases but its result does not
// depend on iteration order within a phase:
//  1. partition the segment into new vs known features against the
//     pre-call grammar;
//  2. prune: counter-evidence removes Attract(F,G) for known F when G is
//     absent from this segment;
//  3. acquire: each new feature attracts every pre-existing known feature
//     co-occurring in this segment (never another feature new in the same
//     call);
//  4. record the segment into every present feature's history;
//  5. recompute rejects for every known feature with at least two recorded
//     observations: Reject(F,G) holds iff G appears in none of F's
//     segments. Reject is a pure function of accumulated history.
func (l *Learner) Learn(segment features.Set) Trace {
	var trace Trace

	// Phase 1: partition against pre-mutation state.
	newFeats := make([]features.Feature, 0, segment.Len())
	knownFeats := make([]features.Feature, 0, segment.Len())
	for _, f := range segment.Sorted() {
		if l.store.Knows(f) {
			knownFeats = append(knownFeats, f)
		} else {
			newFeats = append(newFeats, f)
		}
	}
	trace.NewFeatures = newFeats

	// Phase 2: prune attract constraints contradicted by this segment.
	for _, f := range knownFeats {
		for _, g := range l.store.AttractSet(f).Sorted() {
			if !segment.Has(g) {
				l.store.ClearAttract(f, g)
				trace.AttractsRemoved = append(trace.AttractsRemoved, Constraint{From: f, To: g})
			}
		}
	}

	// Phase 3: acquisition. New features hypothesize attraction to every
	// pre-existing feature in this segment. Two features new in the same
	// call have no prior context to hypothesize against.
	for _, f := range newFeats {
		l.store.AddFeature(f)
		for _, g := range knownFeats {
			l.store.SetAttract(f, g)
			trace.AttractsAdded = append(trace.AttractsAdded, Constraint{From: f, To: g})
		}
	}

	// Phase 4: history update for every feature present in the segment.
	for _, f := range segment.Sorted() {
		l.store.RecordObservation(f, segment)
	}

	// Phase 5: reject recomputation over the full history. Runs across all
	// known features, not just this segment's: a feature that just became
	// known can be rejected by an old feature it never co-occurred with.
	known := l.store.KnownFeatures()
	for _, f := range known {
		if l.store.ObservationCount(f) < 2 {
			continue
		}
		rejects := l.store.RejectSet(f)
		for _, g := range known {
			if g == f {
				continue
			}
			if l.store.ObservedWith(f, g) {
				if rejects.Has(g) {
					l.store.ClearReject(f, g)
					trace.RejectsRemoved = append(trace.RejectsRemoved, Constraint{From: f, To: g})
				}
			} else {
				if !rejects.Has(g) {
					l.store.SetReject(f, g)
					trace.RejectsAdded = append(trace.RejectsAdded, Constraint{From: f, To: g})
				}
			}
		}
	}

	sortConstraints(trace.AttractsAdded)
	sortConstraints(trace.AttractsRemoved)
	sortConstraints(trace.RejectsAdded)
	sortConstraints(trace.RejectsRemoved)
	return trace
}
