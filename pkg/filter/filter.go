// Package filter composes the active tag filters, the stop-word and
// single-occurrence toggles, and the cross-dataset comparison mode into one
// inclusion predicate per dataset. State is global across datasets so
// side-by-side comparison always compares like with like. Recomputation is a
// full pass over every dataset; at the target scale (up to ~100k unique
// words) that stays comfortably inside one frame, which is why there is no
// incremental index.
package filter

import (
	"github.com/bastiangx/zipfview/pkg/corpus"
	"github.com/bastiangx/zipfview/pkg/tags"
)

// Mode is how an active tag filter treats its word set.
type Mode int

const (
	// Exclude hides every word in the tag. Freely combinable.
	Exclude Mode = iota
	// IncludeOnly hides everything outside the tag. At most one at a time.
	IncludeOnly
)

func (m Mode) String() string {
	if m == IncludeOnly {
		return "only"
	}
	return "excl"
}

// CrossMode filters words by their presence in the other loaded datasets.
type CrossMode int

const (
	CrossOff CrossMode = iota
	// CommonOnly keeps words present in every other dataset.
	CommonOnly
	// UniqueOnly keeps words present in no other dataset.
	UniqueOnly
)

func (c CrossMode) String() string {
	switch c {
	case CommonOnly:
		return "common"
	case UniqueOnly:
		return "unique"
	}
	return "off"
}

// State is the global filter configuration. One instance per session.
type State struct {
	TagFilters        map[tags.TagID]Mode
	StopwordsExcluded bool
	SinglesExcluded   bool
	CrossDataset      CrossMode
}

// NewState returns a state with nothing filtered.
func NewState() *State {
	return &State{TagFilters: make(map[tags.TagID]Mode)}
}

// SetTag activates a tag filter. An IncludeOnly request replaces every
// existing tag filter: stacking include-only conjunctions would mostly
// produce empty sets, so the newest one wins. Excludes just accumulate.
func (s *State) SetTag(id tags.TagID, mode Mode) {
	if mode == IncludeOnly {
		s.TagFilters = map[tags.TagID]Mode{id: IncludeOnly}
		return
	}
	if cur, ok := s.TagFilters[id]; ok && cur == IncludeOnly {
		delete(s.TagFilters, id)
	}
	s.TagFilters[id] = Exclude
}

// ClearTag removes the filter on one tag.
func (s *State) ClearTag(id tags.TagID) {
	delete(s.TagFilters, id)
}

// TagMode returns the active mode for a tag, if any.
func (s *State) TagMode(id tags.TagID) (Mode, bool) {
	m, ok := s.TagFilters[id]
	return m, ok
}

// IncludeTag returns the active IncludeOnly tag, if any.
func (s *State) IncludeTag() (tags.TagID, bool) {
	for id, m := range s.TagFilters {
		if m == IncludeOnly {
			return id, true
		}
	}
	return 0, false
}

// ToggleStopwords flips the stop-word exclusion.
func (s *State) ToggleStopwords() {
	s.StopwordsExcluded = !s.StopwordsExcluded
}

// ToggleSingles flips the single-occurrence exclusion.
func (s *State) ToggleSingles() {
	s.SinglesExcluded = !s.SinglesExcluded
}

// CycleCrossDataset advances Off -> CommonOnly -> UniqueOnly -> Off. With
// fewer than two datasets the mode pins to Off; there is nothing to compare.
func (s *State) CycleCrossDataset(datasetCount int) {
	if datasetCount < 2 {
		s.CrossDataset = CrossOff
		return
	}
	switch s.CrossDataset {
	case CrossOff:
		s.CrossDataset = CommonOnly
	case CommonOnly:
		s.CrossDataset = UniqueOnly
	default:
		s.CrossDataset = CrossOff
	}
}

// Reset clears every filter back to the identity state.
func (s *State) Reset() {
	s.TagFilters = make(map[tags.TagID]Mode)
	s.StopwordsExcluded = false
	s.SinglesExcluded = false
	s.CrossDataset = CrossOff
}

// Active reports whether any filter would change a VisibleSet.
func (s *State) Active() bool {
	return len(s.TagFilters) > 0 || s.StopwordsExcluded || s.SinglesExcluded || s.CrossDataset != CrossOff
}

// VisibleSet is the filtered view of one dataset. Entry order is the
// dataset's rank order; positions within Entries are the display ranks.
// Derived data: rebuilt on every state change, never stored.
type VisibleSet struct {
	Entries       []corpus.WordEntry
	TotalVisible  uint64
	UniqueVisible uint64
}

// VisibleRatio returns visible running words over the dataset total.
func (v *VisibleSet) VisibleRatio(total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(v.TotalVisible) / float64(total)
}

// UniqueRatio returns visible unique words over the dataset's unique count.
func (v *VisibleSet) UniqueRatio(unique int) float64 {
	if unique == 0 {
		return 0
	}
	return float64(v.UniqueVisible) / float64(unique)
}

// Apply recomputes the visible subset and impact statistics for every
// dataset under the current state. Pure: same inputs, same outputs. With no
// active filters each VisibleSet shares the dataset's entry slice, so the
// identity case costs nothing.
func Apply(datasets []*corpus.Dataset, state *State, catalog *tags.Catalog) map[int]*VisibleSet {
	out := make(map[int]*VisibleSet, len(datasets))

	if !state.Active() {
		for _, ds := range datasets {
			out[ds.ID] = &VisibleSet{
				Entries:       ds.Entries,
				TotalVisible:  ds.TotalWords,
				UniqueVisible: uint64(ds.Unique()),
			}
		}
		return out
	}

	excludes, include, stop := resolveTags(state, catalog)
	for _, ds := range datasets {
		vs := &VisibleSet{Entries: make([]corpus.WordEntry, 0, len(ds.Entries))}
		for _, entry := range ds.Entries {
			if !passes(entry, ds, datasets, state, excludes, include, stop) {
				continue
			}
			vs.Entries = append(vs.Entries, entry)
			vs.TotalVisible += entry.Count
			vs.UniqueVisible++
		}
		out[ds.ID] = vs
	}
	return out
}

// resolveTags looks the active tag ids up once so the per-word loop only
// does set membership.
func resolveTags(state *State, catalog *tags.Catalog) (excludes []*tags.Tag, include *tags.Tag, stop *tags.Tag) {
	if catalog == nil {
		return nil, nil, nil
	}
	for id, mode := range state.TagFilters {
		tag, ok := catalog.Get(id)
		if !ok {
			continue
		}
		if mode == IncludeOnly {
			include = tag
		} else {
			excludes = append(excludes, tag)
		}
	}
	if state.StopwordsExcluded {
		if id, ok := catalog.StopTag(); ok {
			stop, _ = catalog.Get(id)
		}
	}
	return excludes, include, stop
}

// passes is the conjunction of every active predicate for one word.
func passes(entry corpus.WordEntry, ds *corpus.Dataset, datasets []*corpus.Dataset, state *State, excludes []*tags.Tag, include, stop *tags.Tag) bool {
	for _, tag := range excludes {
		if tag.Has(entry.Word) {
			return false
		}
	}
	if include != nil && !include.Has(entry.Word) {
		return false
	}
	if stop != nil && stop.Has(entry.Word) {
		return false
	}
	if state.SinglesExcluded && entry.Count <= 1 {
		return false
	}
	switch state.CrossDataset {
	case CommonOnly:
		for _, other := range datasets {
			if other.ID == ds.ID {
				continue
			}
			if !other.Contains(entry.Word) {
				return false
			}
		}
	case UniqueOnly:
		for _, other := range datasets {
			if other.ID == ds.ID {
				continue
			}
			if other.Contains(entry.Word) {
				return false
			}
		}
	}
	return true
}
