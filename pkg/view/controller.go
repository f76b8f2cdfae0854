// Package view owns the navigation state of the interactive session: which
// dataset is active, where the cursor and scroll sit inside each dataset's
// filtered sequence, the grid/chart view mode, and the numeric prefix
// buffer for count-prefixed jumps. All movement is clamped, so no command
// can leave the cursor outside [1, length]; an empty sequence parks the
// cursor in a "no selection" state until entries come back.
package view

import (
	"strconv"
)

// Mode is the main content layout.
type Mode int

const (
	// ModeChart shows the active dataset's list beside its chart.
	ModeChart Mode = iota
	// ModeGrid shows one mini pane per dataset for comparison.
	ModeGrid
)

func (m Mode) String() string {
	if m == ModeGrid {
		return "grid"
	}
	return "chart"
}

// maxPendingDigits bounds the numeric prefix so it always parses.
const maxPendingDigits = 9

// datasetView is one dataset's remembered position. The cursor is a
// 1-based display rank; scroll is the 0-based offset of the first listed
// row. Both survive dataset switches.
type datasetView struct {
	cursor uint32
	scroll int
}

// Controller mediates every navigation command of the session.
type Controller struct {
	mode     Mode
	active   int
	views    []datasetView
	lengths  []int
	pageSize int
	pending  string
}

// NewController sets up navigation over the given dataset count. With a
// single dataset the initial mode is chart, otherwise grid for comparison.
func NewController(datasetCount, pageSize int) *Controller {
	if datasetCount < 1 {
		datasetCount = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	c := &Controller{
		mode:     ModeChart,
		views:    make([]datasetView, datasetCount),
		lengths:  make([]int, datasetCount),
		pageSize: pageSize,
	}
	if datasetCount > 1 {
		c.mode = ModeGrid
	}
	for i := range c.views {
		c.views[i].cursor = 1
	}
	return c
}

// SetLengths installs the current filtered length per dataset and reclamps
// every remembered position. Call after every filter recompute. A zero
// length freezes that dataset's cursor; the stored position is kept so it
// comes back when entries reappear.
func (c *Controller) SetLengths(lengths []int) {
	for i := range c.views {
		n := 0
		if i < len(lengths) {
			n = lengths[i]
		}
		c.lengths[i] = n
		if n == 0 {
			c.views[i].scroll = 0
			continue
		}
		if c.views[i].cursor < 1 {
			c.views[i].cursor = 1
		}
		if c.views[i].cursor > uint32(n) {
			c.views[i].cursor = uint32(n)
		}
		c.clampScroll(i)
	}
}

// SetPageSize updates the list viewport height on terminal resize.
func (c *Controller) SetPageSize(h int) {
	if h < 1 {
		h = 1
	}
	c.pageSize = h
	for i := range c.views {
		c.clampScroll(i)
	}
}

// PageSize returns the list viewport height.
func (c *Controller) PageSize() int {
	return c.pageSize
}

// Mode returns the current layout.
func (c *Controller) Mode() Mode {
	return c.mode
}

// ToggleMode flips between the chart and grid layouts.
func (c *Controller) ToggleMode() {
	c.clearPending()
	if c.mode == ModeChart {
		c.mode = ModeGrid
	} else {
		c.mode = ModeChart
	}
}

// Active returns the active dataset index.
func (c *Controller) Active() int {
	return c.active
}

// DatasetCount returns how many datasets are under navigation.
func (c *Controller) DatasetCount() int {
	return len(c.views)
}

// Cursor returns the active dataset's cursor as a display rank, zero when
// its filtered sequence is empty.
func (c *Controller) Cursor() uint32 {
	return c.CursorFor(c.active)
}

// CursorFor returns a dataset's cursor rank, zero when it has no visible
// entries.
func (c *Controller) CursorFor(dataset int) uint32 {
	if dataset < 0 || dataset >= len(c.views) {
		return 0
	}
	if c.lengths[dataset] == 0 {
		return 0
	}
	return c.views[dataset].cursor
}

// Scroll returns the active dataset's scroll offset.
func (c *Controller) Scroll() int {
	return c.views[c.active].scroll
}

// Window returns the active dataset's listed row range as a half-open
// [start, end) over 0-based positions.
func (c *Controller) Window() (start, end int) {
	return c.WindowFor(c.active)
}

// WindowFor returns a dataset's listed row range.
func (c *Controller) WindowFor(dataset int) (start, end int) {
	if dataset < 0 || dataset >= len(c.views) {
		return 0, 0
	}
	start = c.views[dataset].scroll
	end = start + c.pageSize
	if n := c.lengths[dataset]; end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}

// MoveBy shifts the cursor by delta rows, clamped to the sequence.
func (c *Controller) MoveBy(delta int) {
	c.clearPending()
	c.moveTo(int(c.views[c.active].cursor) + delta)
}

// HalfPageDown and friends mirror the usual pager motions.
func (c *Controller) HalfPageDown() { c.MoveBy(max(1, c.pageSize/2)) }
func (c *Controller) HalfPageUp()   { c.MoveBy(-max(1, c.pageSize/2)) }
func (c *Controller) PageDown()     { c.MoveBy(c.pageSize) }
func (c *Controller) PageUp()       { c.MoveBy(-c.pageSize) }

// GotoTop jumps to rank 1, or to the buffered count when digits were typed
// first.
func (c *Controller) GotoTop() {
	if n, ok := c.takePending(); ok {
		c.moveTo(n)
		return
	}
	c.moveTo(1)
}

// GotoBottom jumps to the last rank, or to the buffered count.
func (c *Controller) GotoBottom() {
	if n, ok := c.takePending(); ok {
		c.moveTo(n)
		return
	}
	c.moveTo(c.lengths[c.active])
}

// Goto jumps to a display rank, clamped.
func (c *Controller) Goto(rank uint32) {
	c.clearPending()
	c.moveTo(int(rank))
}

// PushDigit appends one digit to the numeric prefix buffer. Non-digits are
// ignored.
func (c *Controller) PushDigit(d byte) {
	if d < '0' || d > '9' {
		return
	}
	if len(c.pending) >= maxPendingDigits {
		return
	}
	c.pending += string(d)
}

// Pending returns the buffered digits for the footer.
func (c *Controller) Pending() string {
	return c.pending
}

// ClearPending drops the buffered digits, as Esc does.
func (c *Controller) ClearPending() {
	c.clearPending()
}

// CycleDataset moves the active dataset by step, wrapping around. The
// outgoing dataset's cursor and scroll stay remembered and are restored
// when it becomes active again.
func (c *Controller) CycleDataset(step int) {
	c.clearPending()
	n := len(c.views)
	if n < 2 {
		return
	}
	c.active = ((c.active+step)%n + n) % n
}

// SetActive selects a dataset directly, ignoring out-of-range indexes.
func (c *Controller) SetActive(dataset int) {
	c.clearPending()
	if dataset < 0 || dataset >= len(c.views) {
		return
	}
	c.active = dataset
}

func (c *Controller) moveTo(rank int) {
	n := c.lengths[c.active]
	if n == 0 {
		return
	}
	if rank < 1 {
		rank = 1
	}
	if rank > n {
		rank = n
	}
	c.views[c.active].cursor = uint32(rank)
	c.ensureVisible(c.active)
}

// ensureVisible scrolls just far enough to keep the cursor inside the
// window, never re-centering.
func (c *Controller) ensureVisible(dataset int) {
	v := &c.views[dataset]
	idx := int(v.cursor) - 1
	if idx < v.scroll {
		v.scroll = idx
	} else if idx >= v.scroll+c.pageSize {
		v.scroll = idx - c.pageSize + 1
	}
}

func (c *Controller) clampScroll(dataset int) {
	v := &c.views[dataset]
	maxScroll := c.lengths[dataset] - c.pageSize
	if maxScroll < 0 {
		maxScroll = 0
	}
	if v.scroll > maxScroll {
		v.scroll = maxScroll
	}
	if v.scroll < 0 {
		v.scroll = 0
	}
	if c.lengths[dataset] > 0 {
		c.ensureVisible(dataset)
	}
}

func (c *Controller) takePending() (int, bool) {
	if c.pending == "" {
		return 0, false
	}
	n, err := strconv.Atoi(c.pending)
	c.pending = ""
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *Controller) clearPending() {
	c.pending = ""
}
