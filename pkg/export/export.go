package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bastiangx/zipfview/internal/utils"
)

// WriteTable renders up to top ranked rows per dataset as an aligned text
// table. A non-positive top writes every row.
func WriteTable(w io.Writer, r *Report, top int) error {
	for i, ds := range r.Datasets {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		wps := wordsPerSecond(ds)
		header := fmt.Sprintf("%s: %s total, %s unique (%.0f words/sec)",
			ds.Name,
			utils.FormatWithCommas(ds.TotalWords),
			utils.FormatWithCommas(ds.UniqueWords),
			wps)
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}

		n := len(ds.Entries)
		if top > 0 && top < n {
			n = top
		}
		if _, err := fmt.Fprintf(w, "%5s  %-20s %10s\n", "rank", "word", "count"); err != nil {
			return err
		}
		for _, e := range ds.Entries[:n] {
			line := fmt.Sprintf("%5d  %-20s %10s",
				e.Rank,
				utils.Truncate(e.Word, 20),
				utils.FormatWithCommas(e.Count))
			if len(e.Tags) > 0 {
				line += "  [" + strings.Join(e.Tags, ",") + "]"
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteCSV writes one row per word. With more than one dataset a leading
// dataset column disambiguates the rows.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	multi := len(r.Datasets) > 1

	header := []string{"rank", "word", "count"}
	if multi {
		header = append([]string{"dataset"}, header...)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, ds := range r.Datasets {
		for _, e := range ds.Entries {
			row := []string{
				strconv.FormatUint(uint64(e.Rank), 10),
				e.Word,
				strconv.FormatUint(e.Count, 10),
			}
			if multi {
				row = append([]string{ds.Name}, row...)
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the report to path in a format picked by extension:
// .csv for delimited rows, .msgpack or .bin for the binary report, and an
// aligned table otherwise.
func WriteFile(path string, r *Report, top int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = WriteCSV(f, r)
	case ".msgpack", ".bin":
		err = WriteBinary(f, r)
	default:
		err = WriteTable(f, r, top)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func wordsPerSecond(ds DatasetReport) float64 {
	if ds.TotalUs <= 0 {
		return 0
	}
	return float64(ds.TotalWords) / (float64(ds.TotalUs) / 1e6)
}
