// Package search implements the fuzzy matcher over the currently visible
// word list. A pattern matches a word when its characters occur in order as
// a subsequence, case-insensitive. Matches come back as display ranks,
// ordered by match quality: exact prefix first, then contiguous substring,
// then plain subsequence, ties by ascending rank. The prefix tier is
// answered from a patricia trie over the visible words; the other tiers by
// a scan in rank order. The index is rebuilt whenever the visible set
// changes and queried on every keystroke.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/zipfview/pkg/corpus"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Index answers pattern queries against one visible set.
type Index struct {
	trie  *patricia.Trie
	words []string

	// last query memo; typing keystrokes and re-renders repeat patterns
	lastPattern string
	lastMatches []uint32
	lastValid   bool
}

// NewIndex builds the match index over visible entries. Position i holds
// display rank i+1.
func NewIndex(entries []corpus.WordEntry) *Index {
	ix := &Index{
		trie:  patricia.NewTrie(),
		words: make([]string, len(entries)),
	}
	for i, e := range entries {
		ix.words[i] = e.Word
		ix.trie.Insert(patricia.Prefix(e.Word), i+1)
	}
	return ix
}

// Len returns the number of indexed words.
func (ix *Index) Len() int {
	return len(ix.words)
}

// Query returns the display ranks matching pattern, best matches first.
// An empty pattern matches nothing.
func (ix *Index) Query(pattern string) []uint32 {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return nil
	}
	if ix.lastValid && pattern == ix.lastPattern {
		return ix.lastMatches
	}

	seen := make(map[uint32]struct{})
	var prefix, substring, subsequence []uint32

	// The trie visits by word, not by rank; collect then sort.
	ix.trie.VisitSubtree(patricia.Prefix(pattern), func(p patricia.Prefix, item patricia.Item) error {
		rank := uint32(item.(int))
		prefix = append(prefix, rank)
		seen[rank] = struct{}{}
		return nil
	})
	sort.Slice(prefix, func(i, j int) bool { return prefix[i] < prefix[j] })

	// Remaining tiers scan in rank order, so they come out pre-sorted.
	for i, word := range ix.words {
		rank := uint32(i + 1)
		if _, ok := seen[rank]; ok {
			continue
		}
		if strings.Contains(word, pattern) {
			substring = append(substring, rank)
		} else if isSubsequence(word, pattern) {
			subsequence = append(subsequence, rank)
		}
	}

	matches := make([]uint32, 0, len(prefix)+len(substring)+len(subsequence))
	matches = append(matches, prefix...)
	matches = append(matches, substring...)
	matches = append(matches, subsequence...)

	ix.lastPattern = pattern
	ix.lastMatches = matches
	ix.lastValid = true
	return matches
}

// isSubsequence reports whether every rune of pattern occurs in word in
// order. Both sides are already lowercase.
func isSubsequence(word, pattern string) bool {
	wi := 0
	for _, pr := range pattern {
		found := false
		for wi < len(word) {
			wr, size := utf8.DecodeRuneInString(word[wi:])
			wi += size
			if wr == pr {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// State tracks the live search session: the query, its matches, and the
// cursor within them. Rebuilt on every keystroke, cleared on exit.
type State struct {
	Query   string
	Matches []uint32
	Current int
}

// NewState returns an empty search state. Current of -1 means no match is
// selected yet; the first Next lands on the first match.
func NewState() *State {
	return &State{Current: -1}
}

// Set replaces the query and its matches, resetting the match cursor.
func (s *State) Set(query string, matches []uint32) {
	s.Query = query
	s.Matches = matches
	s.Current = -1
}

// Clear empties the state.
func (s *State) Clear() {
	s.Query = ""
	s.Matches = nil
	s.Current = -1
}

// HasMatches reports whether anything matched.
func (s *State) HasMatches() bool {
	return len(s.Matches) > 0
}

// Next advances cyclically and returns the selected display rank. Past the
// last match it wraps to the first.
func (s *State) Next() (uint32, bool) {
	if len(s.Matches) == 0 {
		return 0, false
	}
	s.Current = (s.Current + 1) % len(s.Matches)
	return s.Matches[s.Current], true
}

// Prev steps backwards cyclically, wrapping from the first to the last.
func (s *State) Prev() (uint32, bool) {
	if len(s.Matches) == 0 {
		return 0, false
	}
	if s.Current <= 0 {
		s.Current = len(s.Matches) - 1
	} else {
		s.Current--
	}
	return s.Matches[s.Current], true
}

// CurrentRank returns the selected match, if one is selected.
func (s *State) CurrentRank() (uint32, bool) {
	if s.Current < 0 || s.Current >= len(s.Matches) {
		return 0, false
	}
	return s.Matches[s.Current], true
}

// Position returns the 1-based match position and total for the footer
// ("3/17"). Zero position means nothing selected yet.
func (s *State) Position() (int, int) {
	if s.Current < 0 {
		return 0, len(s.Matches)
	}
	return s.Current + 1, len(s.Matches)
}
