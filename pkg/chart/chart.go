/*
Package chart computes the rank-frequency chart geometry: which display
ranks are plotted, the Zipf reference line for the active scope and basis,
and the per-entry goodness-of-fit classification against that line.

The chart has two scopes. Visible plots the ranks currently scrolled into
the list viewport; AllData plots the whole filtered sequence, downsampled
to the canvas resolution. One reference-line mode cycles Off and two
sub-modes whose meaning follows the scope: under Visible the sub-modes
anchor the line at the filtered rank-1 count (absolute) or through the
first plotted entry (relative); under AllData they anchor at the filtered
rank-1 count or the dataset's original unfiltered rank-1 count.

Everything here is pure computation over display ranks. Rendering to a
braille canvas lives in render.go; the caller owns scroll state and passes
the window in.
*/
package chart

import (
	"math"
	"sort"

	"github.com/bastiangx/zipfview/pkg/corpus"
)

// Scope selects the rank domain plotted.
type Scope int

const (
	// ScopeVisible plots the ranks scrolled into the list viewport.
	ScopeVisible Scope = iota
	// ScopeAllData plots the full filtered sequence, downsampled.
	ScopeAllData
)

// Toggle flips between the two scopes.
func (s Scope) Toggle() Scope {
	if s == ScopeVisible {
		return ScopeAllData
	}
	return ScopeVisible
}

func (s Scope) String() string {
	if s == ScopeAllData {
		return "all"
	}
	return "visible"
}

// ZipfMode is the reference-line position in its three-step cycle. The two
// active positions resolve to different bases depending on the scope, so
// the same key reads as absolute/relative under Visible and as
// filtered/unfiltered under AllData.
type ZipfMode int

const (
	ZipfOff ZipfMode = iota
	ZipfPrimary
	ZipfSecondary
)

// Cycle advances Off, Primary, Secondary and wraps back to Off.
func (m ZipfMode) Cycle() ZipfMode {
	switch m {
	case ZipfOff:
		return ZipfPrimary
	case ZipfPrimary:
		return ZipfSecondary
	default:
		return ZipfOff
	}
}

// Label returns the footer badge for the mode under the given scope, empty
// when the line is off.
func (m ZipfMode) Label(s Scope) string {
	switch m {
	case ZipfPrimary:
		if s == ScopeAllData {
			return "ZIPF-FILT"
		}
		return "ZIPF-ABS"
	case ZipfSecondary:
		if s == ScopeAllData {
			return "ZIPF-RAW"
		}
		return "ZIPF-REL"
	}
	return ""
}

// Thresholds bound the absolute deviation for the fit buckets.
type Thresholds struct {
	Perfect float64
	Good    float64
}

// DefaultThresholds classifies within 10% as perfect and within 30% as good.
func DefaultThresholds() Thresholds {
	return Thresholds{Perfect: 0.10, Good: 0.30}
}

// FitClass buckets an entry by how far its count sits from the reference
// line.
type FitClass int

const (
	FitPerfect FitClass = iota
	FitGood
	FitExtreme
)

func (c FitClass) String() string {
	switch c {
	case FitPerfect:
		return "perfect"
	case FitGood:
		return "good"
	}
	return "extreme"
}

// Fit is one entry's classification. Deviation keeps its sign: positive
// means the actual count sits above the line, negative below.
type Fit struct {
	Deviation float64
	Class     FitClass
}

// UnderPredicted reports whether the line predicted less than the actual
// count.
func (f Fit) UnderPredicted() bool {
	return f.Deviation > 0
}

// Classify buckets an actual count against a predicted one.
func Classify(actual uint64, predicted float64, t Thresholds) Fit {
	if predicted <= 0 {
		return Fit{Class: FitExtreme}
	}
	dev := (float64(actual) - predicted) / predicted
	f := Fit{Deviation: dev}
	switch abs := math.Abs(dev); {
	case abs <= t.Perfect:
		f.Class = FitPerfect
	case abs <= t.Good:
		f.Class = FitGood
	default:
		f.Class = FitExtreme
	}
	return f
}

// Point is one plotted entry. Rank is the 1-based position in the filtered
// sequence, not the entry's original rank.
type Point struct {
	Rank  uint32
	Count uint64
}

// Params drive one Build. Cursor is the display rank under the list
// cursor, zero when nothing is selected. WindowStart and WindowLen give
// the list viewport as a 0-based offset and height; they only matter under
// ScopeVisible. MaxPoints caps the AllData sample count, usually twice the
// canvas cell width. UnfilteredBasis is the dataset's original rank-1
// count, used by the ZipfSecondary basis under ScopeAllData.
type Params struct {
	Scope           Scope
	Mode            ZipfMode
	LogScale        bool
	Cursor          uint32
	WindowStart     int
	WindowLen       int
	MaxPoints       int
	UnfilteredBasis uint64
	Thresholds      Thresholds
}

// Series is the plotted frame: actual points in ascending display rank, an
// optional reference line with one predicted value per point, and the
// cursor's position among the points.
type Series struct {
	Points []Point
	Zipf   []float64

	// Basis is the constant b of the active reference line b/rank, zero
	// when the line is off.
	Basis float64

	Scope      Scope
	Mode       ZipfMode
	LogScale   bool
	Thresholds Thresholds

	// CursorIdx indexes Points, -1 when nothing is plotted or selected.
	// CursorClamped is set when the cursor rank lies outside the plotted
	// window and the index was pinned to the nearest edge.
	CursorIdx     int
	CursorClamped bool

	MinRank, MaxRank uint32
}

// Build computes the plotted series over a filtered entry sequence.
// Position i of entries carries display rank i+1. An empty sequence
// yields an empty series with no cursor.
func Build(entries []corpus.WordEntry, p Params) *Series {
	if p.Thresholds == (Thresholds{}) {
		p.Thresholds = DefaultThresholds()
	}
	s := &Series{
		Scope:      p.Scope,
		Mode:       p.Mode,
		LogScale:   p.LogScale,
		Thresholds: p.Thresholds,
		CursorIdx:  -1,
	}
	n := len(entries)
	if n == 0 {
		return s
	}

	var idxs []int
	if p.Scope == ScopeVisible {
		idxs = windowIndices(n, p.WindowStart, p.WindowLen)
	} else {
		idxs = sampleIndices(n, p.MaxPoints, p.LogScale)
	}

	s.Points = make([]Point, len(idxs))
	for i, idx := range idxs {
		s.Points[i] = Point{Rank: uint32(idx + 1), Count: entries[idx].Count}
	}
	s.MinRank = s.Points[0].Rank
	s.MaxRank = s.Points[len(s.Points)-1].Rank

	s.Basis = resolveBasis(entries, s.Points, p)
	if s.Basis > 0 {
		s.Zipf = make([]float64, len(s.Points))
		for i, pt := range s.Points {
			s.Zipf[i] = s.Basis / float64(pt.Rank)
		}
	}

	s.placeCursor(p.Cursor)
	return s
}

// Empty reports whether nothing is plotted.
func (s *Series) Empty() bool {
	return len(s.Points) == 0
}

// Predict returns the reference count at a display rank, false when the
// line is off.
func (s *Series) Predict(rank uint32) (float64, bool) {
	if s.Basis <= 0 || rank == 0 {
		return 0, false
	}
	return s.Basis / float64(rank), true
}

// FitAt classifies a display rank's actual count against the active line,
// false when the line is off.
func (s *Series) FitAt(rank uint32, count uint64) (Fit, bool) {
	predicted, ok := s.Predict(rank)
	if !ok {
		return Fit{}, false
	}
	return Classify(count, predicted, s.Thresholds), true
}

// MinY and MaxY bound the raw count domain across both plotted series, for
// axis labels.
func (s *Series) MinY() float64 {
	min := math.Inf(1)
	for _, pt := range s.Points {
		min = math.Min(min, float64(pt.Count))
	}
	for _, v := range s.Zipf {
		min = math.Min(min, v)
	}
	if math.IsInf(min, 1) {
		return 0
	}
	return min
}

func (s *Series) MaxY() float64 {
	max := 0.0
	for _, pt := range s.Points {
		max = math.Max(max, float64(pt.Count))
	}
	for _, v := range s.Zipf {
		max = math.Max(max, v)
	}
	return max
}

func resolveBasis(entries []corpus.WordEntry, points []Point, p Params) float64 {
	if p.Mode == ZipfOff || len(points) == 0 {
		return 0
	}
	filtered := float64(entries[0].Count)
	if p.Scope == ScopeAllData {
		if p.Mode == ZipfSecondary && p.UnfilteredBasis > 0 {
			return float64(p.UnfilteredBasis)
		}
		return filtered
	}
	if p.Mode == ZipfSecondary {
		// Anchor the line through the first plotted point.
		first := points[0]
		return float64(first.Count) * float64(first.Rank)
	}
	return filtered
}

func (s *Series) placeCursor(cursor uint32) {
	if cursor == 0 || len(s.Points) == 0 {
		return
	}
	if cursor < s.MinRank {
		s.CursorIdx = 0
		s.CursorClamped = true
		return
	}
	if cursor > s.MaxRank {
		s.CursorIdx = len(s.Points) - 1
		s.CursorClamped = true
		return
	}
	// Snap to the nearest sampled rank; contiguous windows hit exactly.
	i := sort.Search(len(s.Points), func(i int) bool {
		return s.Points[i].Rank >= cursor
	})
	if i > 0 && cursor-s.Points[i-1].Rank < s.Points[i].Rank-cursor {
		i--
	}
	s.CursorIdx = i
}

func windowIndices(n, start, length int) []int {
	if length <= 0 || length > n {
		length = n
	}
	if start < 0 {
		start = 0
	}
	if start > n-1 {
		start = n - 1
	}
	end := start + length
	if end > n {
		end = n
	}
	idxs := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		idxs = append(idxs, i)
	}
	return idxs
}

// sampleIndices spreads up to max indices over [0, n). Linear spacing for
// a linear axis; geometric spacing under log scale so equal x steps carry
// equal log-rank steps.
func sampleIndices(n, max int, logScale bool) []int {
	if max <= 0 || n <= max {
		idxs := make([]int, n)
		for i := range idxs {
			idxs[i] = i
		}
		return idxs
	}
	idxs := make([]int, 0, max)
	last := -1
	for i := 0; i < max; i++ {
		var idx int
		if logScale {
			// rank = n^(i/(max-1)), 1-based
			exp := float64(i) / float64(max-1)
			idx = int(math.Round(math.Pow(float64(n), exp))) - 1
		} else {
			idx = int(math.Round(float64(i) * float64(n-1) / float64(max-1)))
		}
		if idx <= last {
			idx = last + 1
		}
		if idx >= n {
			break
		}
		idxs = append(idxs, idx)
		last = idx
	}
	if last := len(idxs) - 1; idxs[last] != n-1 {
		if len(idxs) == max {
			idxs[last] = n - 1
		} else {
			idxs = append(idxs, n-1)
		}
	}
	return idxs
}
