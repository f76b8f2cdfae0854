package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap binds every interactive command. Digits are handled outside the map
// because they buffer a numeric prefix instead of firing a command.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	Search    key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding

	TagMenu      key.Binding
	Stopwords    key.Binding
	Singles      key.Binding
	CrossDataset key.Binding
	ClearFilters key.Binding

	NextDataset key.Binding
	PrevDataset key.Binding
	ToggleView  key.Binding

	ChartScope key.Binding
	LogScale   key.Binding
	ZipfLine   key.Binding
	Normalize  key.Binding

	Escape key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("j/k", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u/d", "half page"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+b", "pgup"),
			key.WithHelp("ctrl+b/f", "page"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+f", "pgdown"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/G", "top/bottom"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n/N", "next/prev match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
		),
		TagMenu: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tag filter"),
		),
		Stopwords: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "stopwords"),
		),
		Singles: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "singles"),
		),
		CrossDataset: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "common/unique"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear filters"),
		),
		NextDataset: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "dataset"),
		),
		PrevDataset: key.NewBinding(
			key.WithKeys("shift+tab"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "grid/chart"),
		),
		ChartScope: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "scope"),
		),
		LogScale: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log-log"),
		),
		ZipfLine: key.NewBinding(
			key.WithKeys("Z"),
			key.WithHelp("Z", "zipf line"),
		),
		Normalize: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "percent"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp is the one-line footer hint row.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Search, k.TagMenu, k.ToggleView, k.ZipfLine, k.Help, k.Quit}
}

// FullHelp is the expanded help grid behind '?'.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.HalfUp, k.PageUp, k.Top},
		{k.Search, k.NextMatch, k.NextDataset, k.ToggleView},
		{k.TagMenu, k.Stopwords, k.Singles, k.CrossDataset, k.ClearFilters},
		{k.ChartScope, k.LogScale, k.ZipfLine, k.Normalize},
		{k.Escape, k.Help, k.Quit},
	}
}
