// Package corpus builds the per-dataset word index: token stream in, ranked
// frequency table out. Datasets are immutable once built; every downstream
// view (filtering, search, charting) derives from them without copying.
package corpus

import (
	"sort"
	"time"

	"github.com/bastiangx/zipfview/pkg/tags"
)

// WordEntry is one row of the ranked table. Rank is 1-based, assigned by
// descending count with ties broken by first-seen order in the token stream.
type WordEntry struct {
	Word  string
	Count uint64
	Rank  uint32
	Tags  []tags.TagID
}

// Timing records how long loading and analysis took for one dataset.
type Timing struct {
	Parse   time.Duration
	Analyze time.Duration
	Total   time.Duration
}

// Dataset is the immutable result of analyzing one corpus file.
type Dataset struct {
	ID         int
	Name       string
	TotalWords uint64
	Entries    []WordEntry
	WordSet    map[string]struct{}
	Timing     Timing
}

// Unique returns the number of distinct words.
func (d *Dataset) Unique() int {
	return len(d.Entries)
}

// Contains reports whether word occurs anywhere in the dataset.
func (d *Dataset) Contains(word string) bool {
	_, ok := d.WordSet[word]
	return ok
}

// WordsPerSecond derives the end-to-end throughput for the header display.
func (d *Dataset) WordsPerSecond() float64 {
	secs := d.Timing.Total.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(d.TotalWords) / secs
}

// Analyze counts the token stream and produces the ranked table. Zero tokens
// is a valid result with zero entries; callers render "no data" rather than
// treating it as an error. The catalog annotates each entry with its tag ids
// and may be nil.
func Analyze(name string, tokens []string, catalog *tags.Catalog) *Dataset {
	counts := make(map[string]uint64, len(tokens)/2+1)
	firstSeen := make(map[string]int, len(tokens)/2+1)
	for i, tok := range tokens {
		if _, seen := counts[tok]; !seen {
			firstSeen[tok] = i
		}
		counts[tok]++
	}

	entries := make([]WordEntry, 0, len(counts))
	for word, count := range counts {
		entries = append(entries, WordEntry{Word: word, Count: count})
	}
	// Map iteration order is random; the comparator alone must produce the
	// final order. Descending count, then first occurrence in the stream.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Word] < firstSeen[entries[j].Word]
	})

	wordSet := make(map[string]struct{}, len(entries))
	for i := range entries {
		entries[i].Rank = uint32(i + 1)
		if catalog != nil {
			entries[i].Tags = catalog.ForWord(entries[i].Word)
		}
		wordSet[entries[i].Word] = struct{}{}
	}

	return &Dataset{
		Name:       name,
		TotalWords: uint64(len(tokens)),
		Entries:    entries,
		WordSet:    wordSet,
	}
}
