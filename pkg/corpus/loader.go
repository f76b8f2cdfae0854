package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/zipfview/internal/logger"
	"github.com/bastiangx/zipfview/internal/tokenize"
	"github.com/bastiangx/zipfview/pkg/tags"
)

// LoadStats summarizes a multi-file load for the startup report.
type LoadStats struct {
	Requested   int
	Loaded      int
	Skipped     int
	TotalWords  uint64
	UniqueWords int
	Elapsed     time.Duration
}

// LoadFile reads and analyzes a single corpus file.
func LoadFile(name, path string, opts tokenize.Options, catalog *tags.Catalog) (*Dataset, error) {
	log := logger.New("corpus")
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}
	tokens := tokenize.Tokenize(string(data), opts)
	parseDur := time.Since(start)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no words found in %s", path)
	}

	analyzeStart := time.Now()
	ds := Analyze(name, tokens, catalog)
	ds.Timing = Timing{
		Parse:   parseDur,
		Analyze: time.Since(analyzeStart),
		Total:   time.Since(start),
	}
	log.Debugf("Loaded %s: %d tokens, %d unique, took %v", name, ds.TotalWords, ds.Unique(), ds.Timing.Total)
	return ds, nil
}

// LoadFiles reads and analyzes every corpus file concurrently, one goroutine
// per file. There is no shared state until the join, so this is the only
// parallel part of the program; everything after it is a single event loop.
// Unreadable or empty files are reported and skipped; the call fails only
// when nothing loads. Dataset IDs are assigned by position after the join.
func LoadFiles(paths, names []string, opts tokenize.Options, catalog *tags.Catalog) ([]*Dataset, LoadStats, error) {
	log := logger.New("corpus")
	start := time.Now()
	type slot struct {
		ds  *Dataset
		err error
	}
	slots := make([]slot, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			ds, err := LoadFile(datasetName(i, path, names), path, opts, catalog)
			slots[i] = slot{ds: ds, err: err}
		}(i, path)
	}
	wg.Wait()

	stats := LoadStats{Requested: len(paths)}
	datasets := make([]*Dataset, 0, len(paths))
	for i, s := range slots {
		if s.err != nil {
			log.Errorf("Skipping %s: %v", paths[i], s.err)
			stats.Skipped++
			continue
		}
		s.ds.ID = len(datasets)
		datasets = append(datasets, s.ds)
		stats.Loaded++
		stats.TotalWords += s.ds.TotalWords
		stats.UniqueWords += s.ds.Unique()
	}
	stats.Elapsed = time.Since(start)

	if len(datasets) == 0 {
		return nil, stats, fmt.Errorf("no loadable corpora among %d input file(s)", len(paths))
	}
	return datasets, stats, nil
}

// datasetName picks the display name: explicit override first, otherwise the
// file name without its extension.
func datasetName(i int, path string, names []string) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
