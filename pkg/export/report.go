/*
Package export renders analysis results for the non-interactive path.

One Report carries the filtered view of every loaded dataset and feeds all
output formats: an aligned text table for stdout, delimited rows for
spreadsheet work, and a compact msgpack binary for downstream tooling.

The binary layout uses short field names to keep reports small:

	{"at": ..., "ds": [{"n": "moby", "tw": 215864, "uw": 16858, "e": [{"w": "the", "c": 14431, "r": 1}, ...]}]}

Reports are written once at exit and never read back by this program;
ReadReport exists for external consumers.
*/
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/zipfview/pkg/corpus"
	"github.com/bastiangx/zipfview/pkg/filter"
	"github.com/bastiangx/zipfview/pkg/tags"
	"github.com/vmihailenco/msgpack/v5"
)

// Report - one exported analysis run
type Report struct {
	GeneratedAt time.Time       `msgpack:"at"`
	Datasets    []DatasetReport `msgpack:"ds"`
}

// DatasetReport - one dataset's filtered view
type DatasetReport struct {
	Name        string        `msgpack:"n"`
	TotalWords  uint64        `msgpack:"tw"`
	UniqueWords uint64        `msgpack:"uw"`
	ParseUs     int64         `msgpack:"pu"`
	AnalyzeUs   int64         `msgpack:"au"`
	TotalUs     int64         `msgpack:"du"`
	Entries     []EntryReport `msgpack:"e"`
}

// EntryReport - one ranked word
type EntryReport struct {
	Word  string   `msgpack:"w"`
	Count uint64   `msgpack:"c"`
	Rank  uint32   `msgpack:"r"`
	Tags  []string `msgpack:"g,omitempty"`
}

// BuildReport assembles a report from the loaded datasets and their
// current filtered views. Ranks are positions within the filtered
// sequence; tag ids resolve to names so readers need no catalog.
func BuildReport(datasets []*corpus.Dataset, visible map[int]*filter.VisibleSet, catalog *tags.Catalog) *Report {
	report := &Report{
		GeneratedAt: time.Now(),
		Datasets:    make([]DatasetReport, 0, len(datasets)),
	}
	for _, ds := range datasets {
		vs := visible[ds.ID]
		if vs == nil {
			continue
		}
		dr := DatasetReport{
			Name:        ds.Name,
			TotalWords:  vs.TotalVisible,
			UniqueWords: vs.UniqueVisible,
			ParseUs:     ds.Timing.Parse.Microseconds(),
			AnalyzeUs:   ds.Timing.Analyze.Microseconds(),
			TotalUs:     ds.Timing.Total.Microseconds(),
			Entries:     make([]EntryReport, len(vs.Entries)),
		}
		for i, e := range vs.Entries {
			er := EntryReport{
				Word:  e.Word,
				Count: e.Count,
				Rank:  uint32(i + 1),
			}
			for _, id := range e.Tags {
				if tag, ok := catalog.Get(id); ok {
					er.Tags = append(er.Tags, tag.Name)
				}
			}
			dr.Entries[i] = er
		}
		report.Datasets = append(report.Datasets, dr)
	}
	return report
}

// WriteBinary encodes the report as msgpack.
func WriteBinary(w io.Writer, r *Report) error {
	if err := msgpack.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// ReadReport decodes a msgpack report.
func ReadReport(rd io.Reader) (*Report, error) {
	var report Report
	if err := msgpack.NewDecoder(rd).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}
