// Package tui is the bubbletea shell around the exploration engine. It owns
// no engine invariants: every keypress maps to one engine call, the engine
// recomputes, and View reads the derived state back out. The render loop is
// strictly sequential, so each frame reflects the full effect of the last
// input event.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/zipfview/pkg/chart"
	"github.com/bastiangx/zipfview/pkg/config"
	"github.com/bastiangx/zipfview/pkg/corpus"
	"github.com/bastiangx/zipfview/pkg/filter"
	"github.com/bastiangx/zipfview/pkg/search"
	"github.com/bastiangx/zipfview/pkg/tags"
	"github.com/bastiangx/zipfview/pkg/view"
)

// chrome rows around the list pane: header, footer, pane border.
const (
	headerRows = 2
	footerRows = 2
	paneRows   = 3
)

// Model wires the engine packages to the terminal.
type Model struct {
	datasets []*corpus.Dataset
	catalog  *tags.Catalog
	cfg      *config.Config

	filters *filter.State
	visible map[int]*filter.VisibleSet

	ctrl *view.Controller

	scope      chart.Scope
	zipfMode   chart.ZipfMode
	logScale   bool
	normalize  bool
	thresholds chart.Thresholds

	searchIdx   *search.Index
	searchState *search.State
	searchInput textinput.Model
	searching   bool

	tagMenu   bool
	tagPicked *tags.Tag

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel builds the session over already-loaded datasets. The catalog may
// be empty; tag filtering then simply has nothing to offer.
func NewModel(datasets []*corpus.Dataset, catalog *tags.Catalog, cfg *config.Config) *Model {
	input := textinput.New()
	input.Prompt = "/"
	input.CharLimit = 64

	m := &Model{
		datasets:    datasets,
		catalog:     catalog,
		cfg:         cfg,
		filters:     filter.NewState(),
		ctrl:        view.NewController(len(datasets), cfg.UI.PageSize),
		thresholds:  chart.Thresholds{Perfect: cfg.Fit.PerfectThreshold, Good: cfg.Fit.GoodThreshold},
		searchState: search.NewState(),
		searchInput: input,
		keys:        defaultKeyMap(),
		help:        help.New(),
	}
	m.applyFilters()
	return m
}

// Run starts the interactive session in the alternate screen.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive session: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. One message, one state transition.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ctrl.SetPageSize(m.listHeight())
		return m, nil
	case tea.KeyMsg:
		// plain q types into the search box; ctrl+c always quits
		if key.Matches(msg, m.keys.Quit) && (!m.searching || msg.String() == "ctrl+c") {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.tagMenu {
			return m.updateTagMenu(msg)
		}
		return m.updateMain(msg)
	}
	return m, nil
}

func (m *Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		m.ctrl.PushDigit(s[0])
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.ctrl.MoveBy(1)
	case key.Matches(msg, m.keys.Up):
		m.ctrl.MoveBy(-1)
	case key.Matches(msg, m.keys.HalfDown):
		m.ctrl.HalfPageDown()
	case key.Matches(msg, m.keys.HalfUp):
		m.ctrl.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.ctrl.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.ctrl.PageUp()
	case key.Matches(msg, m.keys.Top):
		m.ctrl.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.ctrl.GotoBottom()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.searchState.Query)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.NextMatch):
		if rank, ok := m.searchState.Next(); ok {
			m.ctrl.Goto(rank)
		}
	case key.Matches(msg, m.keys.PrevMatch):
		if rank, ok := m.searchState.Prev(); ok {
			m.ctrl.Goto(rank)
		}

	case key.Matches(msg, m.keys.TagMenu):
		if m.catalog.Len() > 0 {
			m.tagMenu = true
			m.tagPicked = nil
		}
	case key.Matches(msg, m.keys.Stopwords):
		m.filters.ToggleStopwords()
		m.applyFilters()
	case key.Matches(msg, m.keys.Singles):
		m.filters.ToggleSingles()
		m.applyFilters()
	case key.Matches(msg, m.keys.CrossDataset):
		m.filters.CycleCrossDataset(len(m.datasets))
		m.applyFilters()
	case key.Matches(msg, m.keys.ClearFilters):
		m.filters.Reset()
		m.applyFilters()

	case key.Matches(msg, m.keys.NextDataset):
		m.ctrl.CycleDataset(1)
		m.rebuildSearch()
	case key.Matches(msg, m.keys.PrevDataset):
		m.ctrl.CycleDataset(-1)
		m.rebuildSearch()
	case key.Matches(msg, m.keys.ToggleView):
		m.ctrl.ToggleMode()

	case key.Matches(msg, m.keys.ChartScope):
		m.scope = m.scope.Toggle()
	case key.Matches(msg, m.keys.LogScale):
		m.logScale = !m.logScale
	case key.Matches(msg, m.keys.ZipfLine):
		m.zipfMode = m.zipfMode.Cycle()
	case key.Matches(msg, m.keys.Normalize):
		m.normalize = !m.normalize

	case key.Matches(msg, m.keys.Escape):
		m.ctrl.ClearPending()
		m.searchState.Clear()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.ctrl.SetPageSize(m.listHeight())
	}
	return m, nil
}

// updateSearch owns the keypresses while the query line is focused. Every
// keystroke requeries the index; Enter commits the matches and jumps to the
// first one, Esc abandons the search entirely.
func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchState.Clear()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		if rank, ok := m.searchState.Next(); ok {
			m.ctrl.Goto(rank)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	query := m.searchInput.Value()
	if query != m.searchState.Query {
		m.searchState.Set(query, m.searchIdx.Query(query))
	}
	return m, cmd
}

// updateTagMenu drives the two-step filter menu: first a tag letter, then
// the action. Esc backs out one step at a time.
func (m *Model) updateTagMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape {
		if m.tagPicked != nil {
			m.tagPicked = nil
		} else {
			m.tagMenu = false
		}
		return m, nil
	}
	s := msg.String()
	if m.tagPicked == nil {
		if tag, ok := m.catalog.ByLetter(s); ok {
			m.tagPicked = tag
		}
		return m, nil
	}
	switch s {
	case "e":
		m.filters.SetTag(m.tagPicked.ID, filter.Exclude)
	case "i":
		m.filters.SetTag(m.tagPicked.ID, filter.IncludeOnly)
	case "x":
		m.filters.ClearTag(m.tagPicked.ID)
	default:
		return m, nil
	}
	m.tagMenu = false
	m.tagPicked = nil
	m.applyFilters()
	return m, nil
}

// applyFilters recomputes every dataset's visible subset, reclamps the
// navigation state against the new lengths, and rebuilds the search index.
// This is the one recompute path; every filter transition funnels through
// it.
func (m *Model) applyFilters() {
	m.visible = filter.Apply(m.datasets, m.filters, m.catalog)
	lengths := make([]int, len(m.datasets))
	for i, ds := range m.datasets {
		lengths[i] = len(m.visible[ds.ID].Entries)
	}
	m.ctrl.SetLengths(lengths)
	m.rebuildSearch()
}

// rebuildSearch reindexes the active dataset's visible words and replays
// the live query so the match list never refers to stale ranks.
func (m *Model) rebuildSearch() {
	vs := m.activeVisible()
	m.searchIdx = search.NewIndex(vs.Entries)
	if m.searchState.Query != "" {
		m.searchState.Set(m.searchState.Query, m.searchIdx.Query(m.searchState.Query))
	}
	log.Debugf("search index rebuilt: %d words", m.searchIdx.Len())
}

// activeDataset returns the dataset under the cursor.
func (m *Model) activeDataset() *corpus.Dataset {
	return m.datasets[m.ctrl.Active()]
}

// activeVisible returns the active dataset's filtered view.
func (m *Model) activeVisible() *filter.VisibleSet {
	return m.visible[m.activeDataset().ID]
}

// buildSeries computes the chart frame for one dataset from the current
// scroll window and toggles.
func (m *Model) buildSeries(ds *corpus.Dataset, maxPoints int) *chart.Series {
	vs := m.visible[ds.ID]
	start, end := m.ctrl.WindowFor(ds.ID)
	var unfiltered uint64
	if len(ds.Entries) > 0 {
		unfiltered = ds.Entries[0].Count
	}
	return chart.Build(vs.Entries, chart.Params{
		Scope:           m.scope,
		Mode:            m.zipfMode,
		LogScale:        m.logScale,
		Cursor:          m.ctrl.CursorFor(ds.ID),
		WindowStart:     start,
		WindowLen:       end - start,
		MaxPoints:       maxPoints,
		UnfilteredBasis: unfiltered,
		Thresholds:      m.thresholds,
	})
}

// listHeight is the row budget for the word list between header, footer and
// pane chrome.
func (m *Model) listHeight() int {
	h := m.height - headerRows - footerRows - paneRows
	if m.help.ShowAll {
		h -= 4
	}
	if h < 1 {
		if m.height == 0 {
			return m.cfg.UI.PageSize
		}
		h = 1
	}
	return h
}
