// Package mouse maps terminal mouse events onto named screen regions.
package mouse

import (
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	doubleClickWindow = 400 * time.Millisecond
	scrollDelta       = 3
)

// Rect is a screen rectangle in cells. The right and bottom edges are
// exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named clickable area with optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions of the last render. Later regions sit on top.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region.
func (h *HitMap) Add(id string, r Rect, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: r, Data: data})
}

// AddRect registers a region from its coordinates.
func (h *HitMap) AddRect(id string, x, y, w, ht int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: ht}, data)
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Clear removes all regions.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns a copy of the registered regions.
func (h *HitMap) Regions() []Region {
	return slices.Clone(h.regions)
}

// ActionType classifies a mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionScrollUp
	ActionScrollDown
	ActionHover
)

// Action is the interpreted form of a mouse event.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
	Delta  int // scroll amount, negative is up
}

// ClickResult describes a click against the hit map.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler interprets mouse events against a HitMap.
type Handler struct {
	HitMap *HitMap

	lastClickTime time.Time
	lastClick     *Region
	now           func() time.Time
}

// NewHandler creates a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

// HandleClick hit-tests a click and detects double clicks. Both clicks must
// land in the same region, matched by ID and rectangle, so regions sharing an
// ID (one per card) do not pair. A double click resets detection, so a third
// click is single.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	now := h.now()

	var double bool
	last := h.lastClick
	if region != nil && last != nil && region.ID == last.ID && region.Rect == last.Rect &&
		now.Sub(h.lastClickTime) < doubleClickWindow {
		double = true
		h.lastClick = nil
		h.lastClickTime = time.Time{}
	} else if region != nil {
		h.lastClick = region
		h.lastClickTime = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

// HandleMouse interprets a Bubble Tea mouse message.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return Action{Type: ActionScrollUp, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: -scrollDelta}
	case tea.MouseButtonWheelDown:
		return Action{Type: ActionScrollDown, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: scrollDelta}
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return Action{Type: ActionNone}
		}
		res := h.HandleClick(msg.X, msg.Y)
		if res.Region == nil {
			return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
		}
		typ := ActionClick
		if res.IsDoubleClick {
			typ = ActionDoubleClick
		}
		return Action{Type: typ, Region: res.Region, X: msg.X, Y: msg.Y}
	case tea.MouseActionMotion:
		return Action{Type: ActionHover, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y}
	}
	return Action{Type: ActionNone}
}

// Clear drops all regions, typically at the start of a render.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}
