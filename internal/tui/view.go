package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bastiangx/zipfview/internal/utils"
	"github.com/bastiangx/zipfview/pkg/chart"
	"github.com/bastiangx/zipfview/pkg/corpus"
	"github.com/bastiangx/zipfview/pkg/filter"
	"github.com/bastiangx/zipfview/pkg/tags"
	"github.com/bastiangx/zipfview/pkg/view"
)

// listPaneRatio is the width share of the word list beside the chart.
const listPaneRatio = 0.34

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.tagMenu {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.renderTagMenu(), lipgloss.WithWhitespaceChars(" "))
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if m.ctrl.Mode() == view.ModeGrid {
		body = m.renderGrid(bodyHeight)
	} else {
		body = m.renderChartLayout(bodyHeight)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderHeader shows where the user is and what the filters left visible.
func (m *Model) renderHeader() string {
	ds := m.activeDataset()
	vs := m.activeVisible()

	title := ds.Name
	if len(m.datasets) > 1 {
		title = fmt.Sprintf("%s (%d/%d)", ds.Name, m.ctrl.Active()+1, len(m.datasets))
	}

	stats := fmt.Sprintf("%s words · %s unique",
		utils.FormatWithCommas(ds.TotalWords),
		utils.FormatWithCommas(uint64(ds.Unique())))
	if m.filters.Active() {
		stats += fmt.Sprintf("  |  visible %s words (%.0f%%) · %s unique (%.0f%%)",
			utils.FormatWithCommas(vs.TotalVisible),
			100*vs.VisibleRatio(ds.TotalWords),
			utils.FormatWithCommas(vs.UniqueVisible),
			100*vs.UniqueRatio(ds.Unique()))
	}
	timing := fmt.Sprintf("%v · %.0f words/sec", ds.Timing.Total.Round(timeUnit(ds)), ds.WordsPerSecond())

	line := headerStyle.Render(title) + "  " + headerDimStyle.Render(stats)
	return lipgloss.NewStyle().Width(m.width).Render(line) + "\n" +
		headerDimStyle.Render(timing)
}

// renderChartLayout is the single-dataset layout: word list beside the
// rank-frequency chart, both following the same cursor.
func (m *Model) renderChartLayout(bodyHeight int) string {
	listWidth := int(float64(m.width) * listPaneRatio)
	if listWidth < 24 {
		listWidth = 24
	}
	chartWidth := m.width - listWidth
	innerHeight := bodyHeight - 2

	chartInner := chartWidth - 4
	series := m.buildSeries(m.activeDataset(), 2*chartInner)

	list := m.renderList(series, listWidth-4, innerHeight)
	plotted := m.renderChartPane(series, chartInner, innerHeight)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		activePaneStyle.Width(listWidth-2).Height(innerHeight).Render(list),
		paneStyle.Width(chartWidth-2).Height(innerHeight).Render(plotted),
	)
}

// renderList draws the scrolled window of the visible sequence. The display
// rank leads each row; the dataset rank follows it in brackets when
// filtering has pulled them apart.
func (m *Model) renderList(series *chart.Series, width, height int) string {
	vs := m.activeVisible()
	if len(vs.Entries) == 0 {
		return noDataStyle.Render("no data — all words filtered out")
	}
	start, end := m.ctrl.Window()
	cursor := m.ctrl.Cursor()
	matchSet := make(map[uint32]struct{}, len(m.searchState.Matches))
	for _, r := range m.searchState.Matches {
		matchSet[r] = struct{}{}
	}

	var b strings.Builder
	for i := start; i < end && i-start < height; i++ {
		entry := vs.Entries[i]
		rank := uint32(i + 1)
		row := m.renderRow(entry, rank, width, series)
		switch {
		case rank == cursor:
			row = cursorRowStyle.Render(row)
		case hasRank(matchSet, rank):
			row = matchRowStyle.Render(row)
		}
		b.WriteString(row)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func hasRank(set map[uint32]struct{}, r uint32) bool {
	_, ok := set[r]
	return ok
}

func (m *Model) renderRow(entry corpus.WordEntry, rank uint32, width int, series *chart.Series) string {
	ds := m.activeDataset()

	count := utils.FormatWithCommas(entry.Count)
	if m.normalize && ds.TotalWords > 0 {
		count = fmt.Sprintf("%.2f%%", 100*float64(entry.Count)/float64(ds.TotalWords))
	}

	rankCol := fmt.Sprintf("%5d", rank)
	if entry.Rank != rank {
		rankCol = fmt.Sprintf("%5d[%d]", rank, entry.Rank)
	}

	fitCol := "  "
	if fit, ok := series.FitAt(rank, entry.Count); ok {
		fitCol = renderFitMarker(fit)
	}

	letters := ""
	for _, id := range entry.Tags {
		if tag, ok := m.catalog.Get(id); ok && tag.Letter != "" {
			letters += tag.Letter
		}
	}

	if len(letters) > 3 {
		letters = letters[:3]
	}
	wordWidth := width - len(rankCol) - lipgloss.Width(count) - len(letters) - 6
	if wordWidth < 4 {
		wordWidth = 4
	}
	return fmt.Sprintf("%s %s %-*s %s %s",
		rankColStyle.Render(rankCol), fitCol, wordWidth, utils.Truncate(entry.Word, wordWidth), count, letters)
}

// renderFitMarker colors a dot by fit class, filled above the line and
// hollow below it.
func renderFitMarker(fit chart.Fit) string {
	marker := "● "
	if !fit.UnderPredicted() {
		marker = "○ "
	}
	switch fit.Class {
	case chart.FitPerfect:
		return fitPerfectStyle.Render(marker)
	case chart.FitGood:
		return fitGoodStyle.Render(marker)
	}
	return fitExtremeStyle.Render(marker)
}

// renderChartPane draws the braille canvas plus a caret row for the cursor
// and the rank range labels.
func (m *Model) renderChartPane(series *chart.Series, width, height int) string {
	canvasHeight := height - 2
	if canvasHeight < 1 {
		canvasHeight = 1
	}
	if series.Empty() {
		return noDataStyle.Render("no data to plot")
	}
	canvas := chart.Render(series, width, canvasHeight, chart.DefaultColors(lipgloss.HasDarkBackground()))

	caret := strings.Repeat(" ", width)
	if col := series.CursorColumn(width); col >= 0 {
		marker := "▲"
		if series.CursorClamped {
			marker = "◀"
			if col > 0 {
				marker = "▶"
			}
		}
		caret = strings.Repeat(" ", col) + cursorRowStyle.Render(marker)
	}

	yLabel := utils.FormatWithCommas(uint64(series.MaxY()))
	if m.normalize {
		yLabel = fmt.Sprintf("%.2f%%", 100*series.MaxY()/float64(maxU64(m.activeDataset().TotalWords, 1)))
	}
	ranks := fmt.Sprintf("rank %d–%d", series.MinRank, series.MaxRank)
	axis := headerDimStyle.Render(fmt.Sprintf("%-*s%s", width-lipgloss.Width(ranks), "y max "+yLabel, ranks))

	return lipgloss.JoinVertical(lipgloss.Left, canvas, caret, axis)
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// renderGrid shows one mini pane per dataset, wrapping rows by width. Each
// pane gets a downsampled full-range spark of its visible distribution.
func (m *Model) renderGrid(bodyHeight int) string {
	perRow := m.width / 36
	if perRow < 1 {
		perRow = 1
	}
	if perRow > len(m.datasets) {
		perRow = len(m.datasets)
	}
	paneWidth := m.width/perRow - 2
	rows := (len(m.datasets) + perRow - 1) / perRow
	paneHeight := bodyHeight/rows - 2
	if paneHeight < 4 {
		paneHeight = 4
	}

	var rendered []string
	for i, ds := range m.datasets {
		pane := m.renderGridPane(ds, paneWidth-2, paneHeight)
		style := paneStyle
		if i == m.ctrl.Active() {
			style = activePaneStyle
		}
		rendered = append(rendered, style.Width(paneWidth).Height(paneHeight).Render(pane))
	}

	var lines []string
	for i := 0; i < len(rendered); i += perRow {
		end := i + perRow
		if end > len(rendered) {
			end = len(rendered)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, rendered[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderGridPane(ds *corpus.Dataset, width, height int) string {
	vs := m.visible[ds.ID]
	title := headerStyle.Render(utils.Truncate(ds.Name, width))
	stats := headerDimStyle.Render(fmt.Sprintf("%s words · %s visible",
		utils.FormatWithCommas(ds.TotalWords),
		utils.FormatWithCommas(vs.UniqueVisible)))

	sparkHeight := height - 3
	if sparkHeight < 1 {
		sparkHeight = 1
	}
	var unfiltered uint64
	if len(ds.Entries) > 0 {
		unfiltered = ds.Entries[0].Count
	}
	series := chart.Build(vs.Entries, chart.Params{
		Scope:           chart.ScopeAllData,
		Mode:            m.zipfMode,
		LogScale:        m.logScale,
		Cursor:          m.ctrl.CursorFor(ds.ID),
		MaxPoints:       2 * width,
		UnfilteredBasis: unfiltered,
		Thresholds:      m.thresholds,
	})
	spark := chart.Render(series, width, sparkHeight, chart.DefaultColors(lipgloss.HasDarkBackground()))
	if series.Empty() {
		spark = noDataStyle.Render("no data")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, stats, spark)
}

// renderFooter stacks the status badges over the key hints or the live
// search prompt.
func (m *Model) renderFooter() string {
	badges := m.renderBadges()
	if m.searching {
		return badges + "\n" + searchPromptStyle.Render(m.searchInput.View())
	}
	return badges + "\n" + m.help.View(m.keys)
}

func (m *Model) renderBadges() string {
	var parts []string
	add := func(active bool, label string) {
		if label == "" {
			return
		}
		if active {
			parts = append(parts, badgeActiveStyle.Render(label))
		} else {
			parts = append(parts, badgeStyle.Render(label))
		}
	}

	if m.logScale {
		add(true, "LOG")
	} else {
		add(false, "LIN")
	}
	add(m.zipfMode != chart.ZipfOff, m.zipfMode.Label(m.scope))
	add(m.scope == chart.ScopeAllData, strings.ToUpper(m.scope.String()))
	if m.normalize {
		add(true, "PCT")
	}
	if m.filters.CrossDataset != filter.CrossOff {
		add(true, strings.ToUpper(m.filters.CrossDataset.String()))
	}
	if m.filters.StopwordsExcluded {
		add(true, "-STOP")
	}
	if m.filters.SinglesExcluded {
		add(true, "-SINGLES")
	}
	// map order would jitter the badges frame to frame
	ids := make([]tags.TagID, 0, len(m.filters.TagFilters))
	for id := range m.filters.TagFilters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if tag, ok := m.catalog.Get(id); ok {
			add(true, fmt.Sprintf("%s:%s", tag.Name, m.filters.TagFilters[id]))
		}
	}
	if pending := m.ctrl.Pending(); pending != "" {
		add(true, pending+"…")
	}
	if m.searchState.Query != "" && !m.searching {
		pos, total := m.searchState.Position()
		add(true, fmt.Sprintf("/%s %d/%d", m.searchState.Query, pos, total))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderTagMenu is the two-step filter overlay: pick a tag by letter, then
// an action for it.
func (m *Model) renderTagMenu() string {
	var b strings.Builder
	if m.tagPicked == nil {
		b.WriteString(headerStyle.Render("Filter by tag") + "\n\n")
		for _, tag := range m.catalog.Tags() {
			letter := tag.Letter
			if letter == "" {
				letter = "-"
			}
			line := fmt.Sprintf("%s  %-12s %4d words", menuLetterStyle.Render(letter), tag.Name, tag.Size())
			if mode, ok := m.filters.TagMode(tag.ID); ok {
				line += "  [" + mode.String() + "]"
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n" + headerDimStyle.Render("letter to pick · esc to close"))
	} else {
		b.WriteString(headerStyle.Render(m.tagPicked.Name) + "\n")
		if m.tagPicked.Description != "" {
			b.WriteString(headerDimStyle.Render(m.tagPicked.Description) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(menuLetterStyle.Render("e") + "  exclude these words\n")
		b.WriteString(menuLetterStyle.Render("i") + "  show only these words\n")
		b.WriteString(menuLetterStyle.Render("x") + "  clear this filter\n")
		b.WriteString("\n" + headerDimStyle.Render("esc to go back"))
	}
	return menuStyle.Render(b.String())
}

// timeUnit picks a rounding unit so fast loads still show digits.
func timeUnit(ds *corpus.Dataset) time.Duration {
	if ds.Timing.Total < time.Second {
		return 100 * time.Microsecond
	}
	return 10 * time.Millisecond
}
