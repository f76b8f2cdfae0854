package filter

import (
	"fmt"
	"testing"

	"github.com/bastiangx/zipfview/pkg/corpus"
	"github.com/bastiangx/zipfview/pkg/tags"
)

func scenarioDataset() *corpus.Dataset {
	return corpus.Analyze("scenario", []string{"the", "the", "fox", "fox", "fox", "dog"}, nil)
}

func words(vs *VisibleSet) []string {
	out := make([]string, len(vs.Entries))
	for i, e := range vs.Entries {
		out[i] = e.Word
	}
	return out
}

func sameEntries(a, b []corpus.WordEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Word != b[i].Word || a[i].Count != b[i].Count || a[i].Rank != b[i].Rank {
			return false
		}
	}
	return true
}

func TestApplyIdentity(t *testing.T) {
	ds := scenarioDataset()
	visible := Apply([]*corpus.Dataset{ds}, NewState(), nil)

	vs := visible[ds.ID]
	if !sameEntries(vs.Entries, ds.Entries) {
		t.Errorf("identity law broken: %v vs %v", words(vs), ds.Entries)
	}
	if vs.TotalVisible != ds.TotalWords {
		t.Errorf("TotalVisible = %d, expected %d", vs.TotalVisible, ds.TotalWords)
	}
	if vs.UniqueVisible != uint64(ds.Unique()) {
		t.Errorf("UniqueVisible = %d, expected %d", vs.UniqueVisible, ds.Unique())
	}
}

func TestSinglesExcluded(t *testing.T) {
	ds := scenarioDataset()
	state := NewState()
	state.ToggleSingles()

	vs := Apply([]*corpus.Dataset{ds}, state, nil)[ds.ID]
	got := words(vs)
	if len(got) != 2 || got[0] != "fox" || got[1] != "the" {
		t.Errorf("visible = %v, expected [fox the]", got)
	}
	if vs.UniqueVisible != 2 {
		t.Errorf("UniqueVisible = %d, expected 2", vs.UniqueVisible)
	}
	if vs.TotalVisible != 5 {
		t.Errorf("TotalVisible = %d, expected 5", vs.TotalVisible)
	}
}

func TestRoundTrip(t *testing.T) {
	catalog := tags.Build(
		tags.Def{Name: tags.StopTagName, Words: []string{"the"}},
		tags.Def{Name: "animals", Words: []string{"fox", "dog"}},
	)
	dsA := corpus.Analyze("a", []string{"the", "the", "fox", "fox", "fox", "dog"}, catalog)
	dsA.ID = 0
	dsB := corpus.Analyze("b", []string{"dog", "owl"}, catalog)
	dsB.ID = 1
	datasets := []*corpus.Dataset{dsA, dsB}

	baseline := Apply(datasets, NewState(), catalog)

	testCases := []struct {
		on          func(*State)
		off         func(*State)
		description string
	}{
		{
			on:          func(s *State) { s.ToggleSingles() },
			off:         func(s *State) { s.ToggleSingles() },
			description: "singles toggle",
		},
		{
			on:          func(s *State) { s.ToggleStopwords() },
			off:         func(s *State) { s.ToggleStopwords() },
			description: "stopwords toggle",
		},
		{
			on:          func(s *State) { s.SetTag(1, Exclude) },
			off:         func(s *State) { s.ClearTag(1) },
			description: "tag exclude",
		},
		{
			on:          func(s *State) { s.SetTag(1, IncludeOnly) },
			off:         func(s *State) { s.ClearTag(1) },
			description: "tag include-only",
		},
		{
			on:          func(s *State) { s.CycleCrossDataset(2) },
			off:         func(s *State) { s.CrossDataset = CrossOff },
			description: "cross-dataset mode",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			state := NewState()
			tc.on(state)
			during := Apply(datasets, state, catalog)
			tc.off(state)
			after := Apply(datasets, state, catalog)

			for _, ds := range datasets {
				if !sameEntries(after[ds.ID].Entries, baseline[ds.ID].Entries) {
					t.Errorf("dataset %s not restored after toggle off", ds.Name)
				}
			}
			// the toggle must have had an effect on at least one dataset,
			// otherwise the round trip proves nothing
			changed := false
			for _, ds := range datasets {
				if !sameEntries(during[ds.ID].Entries, baseline[ds.ID].Entries) {
					changed = true
				}
			}
			if !changed {
				t.Error("filter had no visible effect while active")
			}
		})
	}
}

func TestCrossDatasetPartition(t *testing.T) {
	dsA := corpus.Analyze("a", []string{"cat", "dog", "fox"}, nil)
	dsA.ID = 0
	dsB := corpus.Analyze("b", []string{"dog", "fox", "owl"}, nil)
	dsB.ID = 1
	datasets := []*corpus.Dataset{dsA, dsB}

	common := NewState()
	common.CycleCrossDataset(2)
	if common.CrossDataset != CommonOnly {
		t.Fatalf("first cycle = %v, expected CommonOnly", common.CrossDataset)
	}
	commonVis := Apply(datasets, common, nil)

	unique := NewState()
	unique.CrossDataset = UniqueOnly
	uniqueVis := Apply(datasets, unique, nil)

	wantCommon := map[string]bool{"dog": true, "fox": true}
	for _, ds := range datasets {
		for _, w := range words(commonVis[ds.ID]) {
			if !wantCommon[w] {
				t.Errorf("dataset %s: %q should not be common", ds.Name, w)
			}
		}
		if len(commonVis[ds.ID].Entries) != 2 {
			t.Errorf("dataset %s: expected 2 common words, got %v", ds.Name, words(commonVis[ds.ID]))
		}
	}
	if got := words(uniqueVis[dsA.ID]); len(got) != 1 || got[0] != "cat" {
		t.Errorf("dataset a unique = %v, expected [cat]", got)
	}
	if got := words(uniqueVis[dsB.ID]); len(got) != 1 || got[0] != "owl" {
		t.Errorf("dataset b unique = %v, expected [owl]", got)
	}

	// common and unique partition each dataset's words with no overlap
	for _, ds := range datasets {
		seen := make(map[string]int)
		for _, w := range words(commonVis[ds.ID]) {
			seen[w]++
		}
		for _, w := range words(uniqueVis[ds.ID]) {
			seen[w]++
		}
		if len(seen) != ds.Unique() {
			t.Errorf("dataset %s: partition covers %d of %d words", ds.Name, len(seen), ds.Unique())
		}
		for w, n := range seen {
			if n > 1 {
				t.Errorf("dataset %s: %q in both partitions", ds.Name, w)
			}
		}
	}
}

func TestIncludeOnlyReplaces(t *testing.T) {
	state := NewState()
	state.SetTag(0, Exclude)
	state.SetTag(1, Exclude)
	state.SetTag(2, IncludeOnly)

	if len(state.TagFilters) != 1 {
		t.Fatalf("expected include-only to replace all tag filters, have %v", state.TagFilters)
	}
	if m, ok := state.TagMode(2); !ok || m != IncludeOnly {
		t.Errorf("tag 2 mode = %v %v, expected IncludeOnly", m, ok)
	}

	state.SetTag(3, IncludeOnly)
	if _, ok := state.TagMode(2); ok {
		t.Error("previous include-only should be gone")
	}
	if id, ok := state.IncludeTag(); !ok || id != 3 {
		t.Errorf("IncludeTag = %v %v, expected 3", id, ok)
	}

	// excludes stack next to an active include-only
	state.SetTag(0, Exclude)
	if len(state.TagFilters) != 2 {
		t.Errorf("expected exclude to combine with include-only, have %v", state.TagFilters)
	}
}

func TestExcludeUnion(t *testing.T) {
	catalog := tags.Build(
		tags.Def{Name: "canines", Words: []string{"dog"}},
		tags.Def{Name: "vulpines", Words: []string{"fox"}},
	)
	ds := corpus.Analyze("u", []string{"the", "fox", "dog", "owl"}, catalog)
	state := NewState()
	state.SetTag(0, Exclude)
	state.SetTag(1, Exclude)

	vs := Apply([]*corpus.Dataset{ds}, state, catalog)[ds.ID]
	got := words(vs)
	if len(got) != 2 || got[0] != "the" || got[1] != "owl" {
		t.Errorf("visible = %v, expected [the owl]", got)
	}
}

func TestStopwordToggle(t *testing.T) {
	catalog := tags.Build(tags.Def{Name: tags.StopTagName, Words: []string{"the", "a"}})
	ds := corpus.Analyze("s", []string{"the", "the", "a", "fox"}, catalog)
	state := NewState()
	state.ToggleStopwords()

	vs := Apply([]*corpus.Dataset{ds}, state, catalog)[ds.ID]
	if got := words(vs); len(got) != 1 || got[0] != "fox" {
		t.Errorf("visible = %v, expected [fox]", got)
	}

	// no stop tag in the catalog: toggle is a no-op, not an error
	bare := tags.Build(tags.Def{Name: "animals", Words: []string{"fox"}})
	ds2 := corpus.Analyze("s2", []string{"the", "fox"}, bare)
	vs2 := Apply([]*corpus.Dataset{ds2}, state, bare)[ds2.ID]
	if len(vs2.Entries) != 2 {
		t.Errorf("expected stopword toggle without a stop tag to keep all words, got %v", words(vs2))
	}
}

func TestEmptyResult(t *testing.T) {
	catalog := tags.Build(tags.Def{Name: "ghosts", Words: []string{"phantom"}})
	ds := corpus.Analyze("e", []string{"fox", "dog"}, catalog)
	state := NewState()
	state.SetTag(0, IncludeOnly)

	vs := Apply([]*corpus.Dataset{ds}, state, catalog)[ds.ID]
	if len(vs.Entries) != 0 || vs.TotalVisible != 0 || vs.UniqueVisible != 0 {
		t.Errorf("expected empty visible set, got %v (%d/%d)", words(vs), vs.TotalVisible, vs.UniqueVisible)
	}
}

func TestCrossCycleGuard(t *testing.T) {
	state := NewState()
	state.CycleCrossDataset(1)
	if state.CrossDataset != CrossOff {
		t.Errorf("cross mode with one dataset = %v, expected Off", state.CrossDataset)
	}
}

func TestReset(t *testing.T) {
	state := NewState()
	state.SetTag(0, Exclude)
	state.ToggleSingles()
	state.ToggleStopwords()
	state.CrossDataset = CommonOnly
	state.Reset()

	if state.Active() {
		t.Errorf("state still active after reset: %+v", state)
	}
}

func BenchmarkApply(b *testing.B) {
	tokens := make([]string, 0, 120000)
	for i := 0; i < 12000; i++ {
		for j := 0; j <= i%9; j++ {
			tokens = append(tokens, fmt.Sprintf("word%d", i))
		}
	}
	catalog := benchCatalog()
	ds := corpus.Analyze("bench", tokens, catalog)
	state := NewState()
	state.ToggleSingles()
	state.ToggleStopwords()
	datasets := []*corpus.Dataset{ds}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Apply(datasets, state, catalog)
	}
}

func benchCatalog() *tags.Catalog {
	return tags.Build(tags.Def{Name: tags.StopTagName, Words: []string{"word1", "word2", "word3"}})
}
