/*
Package main implements the zipfview corpus analyzer and interactive TUI.

Zipfview reads one or more text files, counts every word, ranks them by
frequency, and explores how closely the distribution follows Zipf's law. By
default it opens an interactive terminal session with a ranked word list and
a rank-frequency chart kept in permanent sync; with -no-interactive (or when
stdout is not a terminal) it prints a plain table instead.

# Usage

Analyze a single file interactively:

	zipfview moby-dick.txt

Compare corpora side by side:

	zipfview -names "moby,ulysses" moby-dick.txt ulysses.txt

Print the top 50 words and export everything as CSV:

	zipfview -no-interactive -top 50 -output ranks.csv moby-dick.txt

The export format follows the -output extension: .csv for delimited rows,
.msgpack or .bin for the compact binary report, anything else for the
aligned table.

# Interactive session

Inside the TUI: j/k move the cursor, Ctrl+d/u and Ctrl+f/b page, g/G jump
(with an optional numeric prefix, e.g. 42g), / searches fuzzily with n/N
cycling matches, t opens the tag filter menu, w toggles stop words, !
toggles single-occurrence words, c cycles the common/unique cross-dataset
filter, Tab switches dataset, v flips grid and chart layout, s flips chart
scope, L toggles log-log axes, Z cycles the Zipf reference line, p switches
counts to percentages, X clears every filter, and q quits.

# Configuration

Settings live in config.toml under the user config directory (created with
defaults on first run), tag definitions in tags.toml next to it. Both
degrade to built-in defaults when missing or malformed; a broken config
never blocks an analysis.

	[ui]
	default_top = 20
	page_size = 20

	[analysis]
	min_word_length = 1
	stemming = false

	[fit]
	perfect_threshold = 0.1
	good_threshold = 0.3

# Command Line Flags

	-top int
	    Rows per dataset in the non-interactive table (default from config)
	-no-interactive
	    Print the table and exit instead of opening the TUI
	-output string
	    Export path; format picked by extension
	-names string
	    Comma-separated dataset names overriding the file names
	-config string
	    Custom config.toml path
	-tags string
	    Custom tags.toml path
	-stem
	    Fold inflected forms with the snowball stemmer before counting
	-d  Enable debug logging
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/zipfview/internal/tokenize"
	"github.com/bastiangx/zipfview/internal/tui"
	"github.com/bastiangx/zipfview/pkg/config"
	"github.com/bastiangx/zipfview/pkg/corpus"
	"github.com/bastiangx/zipfview/pkg/export"
	"github.com/bastiangx/zipfview/pkg/filter"
	"github.com/bastiangx/zipfview/pkg/tags"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

const (
	Version = "0.3.0"
	AppName = "zipfview"
	gh      = "https://github.com/bastiangx/zipfview"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires the collaborators together and picks the interactive or plain
// path; the packages own all the logic.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	top := flag.Int("top", 0, "Rows per dataset in the non-interactive table (default from config)")
	noInteractive := flag.Bool("no-interactive", false, "Print the table and exit instead of opening the TUI")
	output := flag.String("output", "", "Export path; format picked by extension (.csv, .msgpack)")
	names := flag.String("names", "", "Comma-separated dataset names overriding the file names")
	configPath := flag.String("config", "", "Custom config.toml path")
	tagsPath := flag.String("tags", "", "Custom tags.toml path")
	stem := flag.Bool("stem", false, "Fold inflected forms with the snowball stemmer")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] FILE...\n", AppName)
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, cfgFile, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", cfgFile)

	catalogPath := *tagsPath
	if catalogPath == "" {
		catalogPath = cfg.Tags.Path
	}
	catalog, tagFile := tags.LoadCatalogWithPriority(catalogPath)
	log.Debugf("Tag catalog: %d tags from %s", catalog.Len(), tagFile)

	opts := tokenize.Options{
		MinLength: cfg.Analysis.MinWordLength,
		Stem:      cfg.Analysis.Stemming || *stem,
	}
	datasets, stats, err := corpus.LoadFiles(paths, splitNames(*names), opts, catalog)
	if err != nil {
		log.Fatalf("Failed to load corpora: %v", err)
	}
	log.Debugf("Loaded %d/%d corpora: %d words, %d unique, took %v",
		stats.Loaded, stats.Requested, stats.TotalWords, stats.UniqueWords, stats.Elapsed)

	interactive := !*noInteractive && isatty.IsTerminal(os.Stdout.Fd())
	if interactive {
		if err := tui.Run(tui.NewModel(datasets, catalog, cfg)); err != nil {
			log.Fatalf("Session error: %v", err)
		}
		return
	}

	visible := filter.Apply(datasets, filter.NewState(), catalog)
	report := export.BuildReport(datasets, visible, catalog)

	rows := *top
	if rows <= 0 {
		rows = cfg.UI.DefaultTop
	}
	if err := export.WriteTable(os.Stdout, report, rows); err != nil {
		log.Fatalf("Failed to write table: %v", err)
	}
	if *output != "" {
		if err := export.WriteFile(*output, report, 0); err != nil {
			log.Fatalf("Failed to export: %v", err)
		}
		log.Debugf("Exported report to %s", *output)
	}
}

// splitNames parses the -names override, trimming blanks.
func splitNames(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// printVersion displays the styled version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ zipfview ] Rank-frequency analysis for text corpora")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
