package chart

import (
	"fmt"
	"math"
	"testing"

	"github.com/bastiangx/zipfview/pkg/corpus"
)

func rankedEntries(counts ...uint64) []corpus.WordEntry {
	entries := make([]corpus.WordEntry, len(counts))
	for i, c := range counts {
		entries[i] = corpus.WordEntry{
			Word:  fmt.Sprintf("w%d", i+1),
			Count: c,
			Rank:  uint32(i + 1),
		}
	}
	return entries
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScopeToggle(t *testing.T) {
	if ScopeVisible.Toggle() != ScopeAllData || ScopeAllData.Toggle() != ScopeVisible {
		t.Error("Toggle should flip between the two scopes")
	}
	if ScopeVisible.String() != "visible" || ScopeAllData.String() != "all" {
		t.Error("unexpected scope names")
	}
}

func TestZipfCycle(t *testing.T) {
	m := ZipfOff
	seq := []ZipfMode{m.Cycle(), m.Cycle().Cycle(), m.Cycle().Cycle().Cycle()}
	expected := []ZipfMode{ZipfPrimary, ZipfSecondary, ZipfOff}
	for i := range seq {
		if seq[i] != expected[i] {
			t.Errorf("cycle step %d = %v, expected %v", i, seq[i], expected[i])
		}
	}
}

func TestZipfLabels(t *testing.T) {
	testCases := []struct {
		mode        ZipfMode
		scope       Scope
		expected    string
		description string
	}{
		{ZipfOff, ScopeVisible, "", "off has no badge"},
		{ZipfPrimary, ScopeVisible, "ZIPF-ABS", "visible primary is absolute"},
		{ZipfSecondary, ScopeVisible, "ZIPF-REL", "visible secondary is relative"},
		{ZipfPrimary, ScopeAllData, "ZIPF-FILT", "all-data primary is filtered"},
		{ZipfSecondary, ScopeAllData, "ZIPF-RAW", "all-data secondary is unfiltered"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := tc.mode.Label(tc.scope); got != tc.expected {
				t.Errorf("Label = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestBuildVisibleWindow(t *testing.T) {
	entries := rankedEntries(100, 50, 33, 25, 20, 16, 14, 12, 11, 10)
	s := Build(entries, Params{
		Scope:       ScopeVisible,
		WindowStart: 2,
		WindowLen:   4,
		Cursor:      4,
	})

	if len(s.Points) != 4 {
		t.Fatalf("plotted %d points, expected 4", len(s.Points))
	}
	expectedRanks := []uint32{3, 4, 5, 6}
	expectedCounts := []uint64{33, 25, 20, 16}
	for i, pt := range s.Points {
		if pt.Rank != expectedRanks[i] || pt.Count != expectedCounts[i] {
			t.Errorf("point %d = (%d,%d), expected (%d,%d)",
				i, pt.Rank, pt.Count, expectedRanks[i], expectedCounts[i])
		}
	}
	if s.MinRank != 3 || s.MaxRank != 6 {
		t.Errorf("rank bounds = [%d,%d], expected [3,6]", s.MinRank, s.MaxRank)
	}
	if s.CursorIdx != 1 || s.CursorClamped {
		t.Errorf("cursor = idx %d clamped %v, expected idx 1 unclamped", s.CursorIdx, s.CursorClamped)
	}
	if s.Zipf != nil {
		t.Error("reference line should be absent when the mode is off")
	}
}

func TestZipfBases(t *testing.T) {
	entries := rankedEntries(100, 50, 33, 25, 20, 16, 14, 12, 11, 10)
	testCases := []struct {
		params      Params
		basis       float64
		description string
	}{
		{
			params:      Params{Scope: ScopeVisible, Mode: ZipfPrimary, WindowStart: 2, WindowLen: 4},
			basis:       100,
			description: "visible absolute anchors at the filtered rank-1 count",
		},
		{
			params:      Params{Scope: ScopeVisible, Mode: ZipfSecondary, WindowStart: 2, WindowLen: 4},
			basis:       99,
			description: "visible relative anchors through the first plotted point",
		},
		{
			params:      Params{Scope: ScopeAllData, Mode: ZipfPrimary, UnfilteredBasis: 120},
			basis:       100,
			description: "all-data filtered ignores the unfiltered basis",
		},
		{
			params:      Params{Scope: ScopeAllData, Mode: ZipfSecondary, UnfilteredBasis: 120},
			basis:       120,
			description: "all-data unfiltered uses the original rank-1 count",
		},
		{
			params:      Params{Scope: ScopeAllData, Mode: ZipfSecondary},
			basis:       100,
			description: "missing unfiltered basis falls back to filtered",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			s := Build(entries, tc.params)
			if !floatEq(s.Basis, tc.basis) {
				t.Errorf("basis = %v, expected %v", s.Basis, tc.basis)
			}
			if len(s.Zipf) != len(s.Points) {
				t.Fatalf("reference has %d values for %d points", len(s.Zipf), len(s.Points))
			}
			for i, pt := range s.Points {
				if !floatEq(s.Zipf[i], tc.basis/float64(pt.Rank)) {
					t.Errorf("reference at rank %d = %v, expected %v",
						pt.Rank, s.Zipf[i], tc.basis/float64(pt.Rank))
				}
			}
		})
	}
}

func TestRelativeLineThroughFirstPoint(t *testing.T) {
	entries := rankedEntries(100, 50, 33, 25, 20, 16)
	s := Build(entries, Params{Scope: ScopeVisible, Mode: ZipfSecondary, WindowStart: 2, WindowLen: 3})
	if len(s.Zipf) == 0 {
		t.Fatal("no reference line")
	}
	if !floatEq(s.Zipf[0], float64(s.Points[0].Count)) {
		t.Errorf("relative line starts at %v, expected the first plotted count %d",
			s.Zipf[0], s.Points[0].Count)
	}
}

func TestClassify(t *testing.T) {
	th := DefaultThresholds()
	testCases := []struct {
		actual      uint64
		predicted   float64
		class       FitClass
		under       bool
		description string
	}{
		{100, 100, FitPerfect, false, "exact match"},
		{110, 100, FitPerfect, true, "deviation at the perfect bound"},
		{111, 100, FitGood, true, "just past perfect"},
		{130, 100, FitGood, true, "deviation at the good bound"},
		{131, 100, FitExtreme, true, "past good is extreme"},
		{70, 100, FitGood, false, "below the line keeps its sign"},
		{50, 100, FitExtreme, false, "half the prediction is extreme"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			f := Classify(tc.actual, tc.predicted, th)
			if f.Class != tc.class {
				t.Errorf("class = %v, expected %v", f.Class, tc.class)
			}
			if f.UnderPredicted() != tc.under {
				t.Errorf("UnderPredicted = %v, expected %v", f.UnderPredicted(), tc.under)
			}
		})
	}
}

func TestClassifyMonotonic(t *testing.T) {
	th := DefaultThresholds()
	prev := FitPerfect
	for actual := uint64(100); actual <= 300; actual += 5 {
		f := Classify(actual, 100, th)
		if f.Class < prev {
			t.Fatalf("class went from %v back to %v at actual %d", prev, f.Class, actual)
		}
		prev = f.Class
	}
}

func TestFitAt(t *testing.T) {
	entries := rankedEntries(100, 50, 33, 25)
	s := Build(entries, Params{Scope: ScopeAllData, Mode: ZipfPrimary})

	f, ok := s.FitAt(2, 50)
	if !ok {
		t.Fatal("expected a fit with the line on")
	}
	if f.Class != FitPerfect || !floatEq(f.Deviation, 0) {
		t.Errorf("rank 2 fit = %+v, expected a perfect zero deviation", f)
	}

	off := Build(entries, Params{Scope: ScopeAllData, Mode: ZipfOff})
	if _, ok := off.FitAt(2, 50); ok {
		t.Error("fit should be unavailable with the line off")
	}
}

func TestAllDataDownsampling(t *testing.T) {
	counts := make([]uint64, 1000)
	for i := range counts {
		counts[i] = uint64(10000 / (i + 1))
	}
	entries := rankedEntries(counts...)

	for _, logScale := range []bool{false, true} {
		s := Build(entries, Params{Scope: ScopeAllData, LogScale: logScale, MaxPoints: 100})
		if len(s.Points) > 100 {
			t.Errorf("logScale=%v: %d points exceed the cap", logScale, len(s.Points))
		}
		if s.Points[0].Rank != 1 || s.Points[len(s.Points)-1].Rank != 1000 {
			t.Errorf("logScale=%v: endpoints [%d,%d], expected [1,1000]",
				logScale, s.Points[0].Rank, s.Points[len(s.Points)-1].Rank)
		}
		for i := 1; i < len(s.Points); i++ {
			if s.Points[i].Rank <= s.Points[i-1].Rank {
				t.Fatalf("logScale=%v: ranks not strictly ascending at %d", logScale, i)
			}
		}
	}

	lin := Build(entries, Params{Scope: ScopeAllData, MaxPoints: 100})
	log := Build(entries, Params{Scope: ScopeAllData, LogScale: true, MaxPoints: 100})
	linFirstGap := lin.Points[1].Rank - lin.Points[0].Rank
	logFirstGap := log.Points[1].Rank - log.Points[0].Rank
	if logFirstGap >= linFirstGap {
		t.Errorf("log sampling should be denser at low ranks: first gaps log %d vs lin %d",
			logFirstGap, linFirstGap)
	}
}

func TestCursorPlacement(t *testing.T) {
	entries := rankedEntries(100, 50, 33, 25, 20, 16, 14, 12, 11, 10)
	testCases := []struct {
		cursor      uint32
		idx         int
		clamped     bool
		description string
	}{
		{4, 1, false, "cursor inside the window"},
		{3, 0, false, "cursor on the first plotted rank"},
		{6, 3, false, "cursor on the last plotted rank"},
		{1, 0, true, "cursor before the window clamps to the left edge"},
		{9, 3, true, "cursor past the window clamps to the right edge"},
		{0, -1, false, "no selection leaves the cursor unplaced"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			s := Build(entries, Params{
				Scope:       ScopeVisible,
				WindowStart: 2,
				WindowLen:   4,
				Cursor:      tc.cursor,
			})
			if s.CursorIdx != tc.idx || s.CursorClamped != tc.clamped {
				t.Errorf("cursor = idx %d clamped %v, expected idx %d clamped %v",
					s.CursorIdx, s.CursorClamped, tc.idx, tc.clamped)
			}
		})
	}
}

func TestCursorSnapsToSample(t *testing.T) {
	counts := make([]uint64, 500)
	for i := range counts {
		counts[i] = uint64(5000 / (i + 1))
	}
	entries := rankedEntries(counts...)
	s := Build(entries, Params{Scope: ScopeAllData, MaxPoints: 40, Cursor: 242})

	if s.CursorIdx < 0 || s.CursorClamped {
		t.Fatalf("cursor = idx %d clamped %v, expected an unclamped snap", s.CursorIdx, s.CursorClamped)
	}
	best := s.Points[0].Rank
	for _, pt := range s.Points {
		if absDiff(pt.Rank, 242) < absDiff(best, 242) {
			best = pt.Rank
		}
	}
	if s.Points[s.CursorIdx].Rank != best {
		t.Errorf("snapped to rank %d, nearest sampled rank is %d", s.Points[s.CursorIdx].Rank, best)
	}
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestBuildEmpty(t *testing.T) {
	s := Build(nil, Params{Scope: ScopeVisible, Mode: ZipfPrimary, Cursor: 5})
	if !s.Empty() {
		t.Error("empty input should plot nothing")
	}
	if s.CursorIdx != -1 {
		t.Errorf("cursor idx = %d, expected -1", s.CursorIdx)
	}
	if _, ok := s.Predict(1); ok {
		t.Error("no reference line without points")
	}
	if out := Render(s, 40, 10, DefaultColors(true)); out != "" {
		t.Errorf("render of empty series = %q, expected empty", out)
	}
}

func TestRender(t *testing.T) {
	entries := rankedEntries(100, 50, 33, 25, 20, 16)
	s := Build(entries, Params{Scope: ScopeAllData, Mode: ZipfPrimary, Cursor: 3})
	out := Render(s, 30, 8, DefaultColors(true))
	if out == "" {
		t.Fatal("expected canvas output")
	}
}

func TestCursorColumn(t *testing.T) {
	entries := rankedEntries(100, 50, 33, 25, 20, 16, 14, 12, 11, 10)
	width := 40
	prev := -1
	for cursor := uint32(1); cursor <= 10; cursor++ {
		s := Build(entries, Params{Scope: ScopeVisible, Cursor: cursor})
		col := s.CursorColumn(width)
		if col < 0 || col >= width {
			t.Fatalf("cursor %d maps to column %d, outside [0,%d)", cursor, col, width)
		}
		if col < prev {
			t.Fatalf("column went backwards at cursor %d", cursor)
		}
		prev = col
	}
	if prev != width-1 {
		t.Errorf("last cursor maps to column %d, expected %d", prev, width-1)
	}

	empty := Build(nil, Params{})
	if empty.CursorColumn(width) != -1 {
		t.Error("unplaced cursor should map to no column")
	}
}

func TestMinMaxY(t *testing.T) {
	entries := rankedEntries(100, 50, 20)
	s := Build(entries, Params{Scope: ScopeAllData, Mode: ZipfSecondary, UnfilteredBasis: 150})
	if !floatEq(s.MaxY(), 150) {
		t.Errorf("MaxY = %v, expected the reference line peak 150", s.MaxY())
	}
	if !floatEq(s.MinY(), 20) {
		t.Errorf("MinY = %v, expected the actual tail 20", s.MinY())
	}
}

func BenchmarkBuild(b *testing.B) {
	counts := make([]uint64, 50000)
	for i := range counts {
		counts[i] = uint64(500000 / (i + 1))
	}
	entries := rankedEntries(counts...)
	params := Params{Scope: ScopeAllData, Mode: ZipfPrimary, LogScale: true, MaxPoints: 200, Cursor: 25000}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Build(entries, params)
	}
}
