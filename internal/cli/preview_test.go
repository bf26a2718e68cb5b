package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/padd/pkg/config"
	"github.com/matzehuels/padd/pkg/grid"
	"github.com/matzehuels/padd/pkg/overlay"
	"github.com/matzehuels/padd/pkg/window"
)

func newTestPreview(t *testing.T) *previewModel {
	t.Helper()
	s := config.Default()
	s.Window.Scheduler = config.SchedulerImmediate
	m, err := newPreviewModel(context.Background(), s, previewOpts{height: 400, pxPerCol: 8, plain: true})
	if err != nil {
		t.Fatalf("newPreviewModel() error: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

// nextRange receives the range published by the tracker and feeds it back.
func nextRange(t *testing.T, m *previewModel) window.Range {
	t.Helper()
	select {
	case msg := <-m.ranges:
		m.Update(msg)
		return msg.r
	default:
		t.Fatal("no range published")
	}
	return window.Range{}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewBeforeResize(t *testing.T) {
	m := newTestPreview(t)
	if want := (window.Range{Start: 0, End: 50}); m.visible != want {
		t.Errorf("visible = %+v, want %+v", m.visible, want)
	}
	if !strings.Contains(m.View(), "waiting for terminal size") {
		t.Error("View() before resize should wait for a size")
	}
}

func TestPreviewResizeAndScroll(t *testing.T) {
	m := newTestPreview(t)

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	// 10 lines at 4px per line is a 40px viewport; 20 buffer rows below.
	if got, want := nextRange(t, m), (window.Range{Start: 0, End: 25}); got != want {
		t.Errorf("range after resize = %+v, want %+v", got, want)
	}
	if m.scene == nil || m.scene.Width != 320 {
		t.Fatalf("scene after resize = %+v, want 320px wide", m.scene)
	}

	m.Update(keyMsg("pgdown"))
	if got := m.scroll(); got != 40 {
		t.Errorf("scroll after pgdown = %v, want 40", got)
	}
	if got, want := nextRange(t, m), (window.Range{Start: 0, End: 30}); got != want {
		t.Errorf("range after pgdown = %+v, want %+v", got, want)
	}

	m.Update(keyMsg("home"))
	if got := m.scroll(); got != 0 {
		t.Errorf("scroll after home = %v, want 0", got)
	}
}

func TestPreviewScrollClamped(t *testing.T) {
	m := newTestPreview(t)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	for range 20 {
		m.Update(keyMsg("f"))
	}
	if got := m.scroll(); got != 360 {
		t.Errorf("scroll = %v, want 360", got)
	}
	m.Update(keyMsg("k"))
	m.Update(keyMsg("b"))
	if got := m.scroll(); got != 312 {
		t.Errorf("scroll = %v, want 312", got)
	}
}

func TestPreviewKeys(t *testing.T) {
	m := newTestPreview(t)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})

	m.Update(keyMsg("x"))
	if m.layers.XGrid.Visibility != overlay.Hidden {
		t.Errorf("columns visibility = %v, want hidden", m.layers.XGrid.Visibility)
	}
	m.Update(keyMsg("x"))
	if m.layers.XGrid.Visibility != overlay.Visible {
		t.Errorf("columns visibility = %v, want visible", m.layers.XGrid.Visibility)
	}
	m.Update(keyMsg("y"))
	if m.layers.YGrid.Visibility != overlay.Hidden {
		t.Errorf("rows visibility = %v, want hidden", m.layers.YGrid.Visibility)
	}

	m.Update(keyMsg("a"))
	if m.layers.Grid.State.Align != grid.AlignEnd {
		t.Errorf("align = %v, want end", m.layers.Grid.State.Align)
	}

	m.Update(keyMsg("+"))
	if m.layers.Grid.State.Base != 9 || m.layers.YGrid.BaseUnit != 9 {
		t.Errorf("base = %v, ygrid base = %v, want 9", m.layers.Grid.State.Base, m.layers.YGrid.BaseUnit)
	}
	m.Update(keyMsg("-"))
	m.Update(keyMsg("-"))
	if m.layers.Grid.State.Base != 7 {
		t.Errorf("base = %v, want 7", m.layers.Grid.State.Base)
	}

	m.Update(keyMsg("?"))
	if !m.help.ShowAll {
		t.Error("? should expand help")
	}

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPreviewView(t *testing.T) {
	m := newTestPreview(t)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	nextRange(t, m)

	view := m.View()
	for _, want := range []string{"padd", "9 cols", "base 8px", "align center", "rows 0-25/50"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	// status line, 10 canvas lines, help bar
	if lines := strings.Count(view, "\n") + 1; lines != 12 {
		t.Errorf("View() lines = %d, want 12", lines)
	}
}

func TestNextAlign(t *testing.T) {
	tests := []struct {
		in, want grid.Align
	}{
		{grid.AlignStart, grid.AlignCenter},
		{grid.AlignCenter, grid.AlignEnd},
		{grid.AlignEnd, grid.AlignStart},
		{grid.Align("bogus"), grid.DefaultAlign},
	}
	for _, tt := range tests {
		if got := nextAlign(tt.in); got != tt.want {
			t.Errorf("nextAlign(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOffer(t *testing.T) {
	ch := make(chan rangeMsg, 1)
	offer(ch, rangeMsg{gen: 1, r: window.Range{Start: 0, End: 1}})
	offer(ch, rangeMsg{gen: 1, r: window.Range{Start: 2, End: 3}})
	if got := <-ch; got.r != (window.Range{Start: 2, End: 3}) {
		t.Errorf("offer kept %+v, want the latest range", got.r)
	}
}

func TestPreviewIgnoresReplacedTracker(t *testing.T) {
	m := newTestPreview(t)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	nextRange(t, m)

	m.Update(keyMsg("+"))
	before := m.visible
	_, cmd := m.Update(rangeMsg{gen: m.gen - 1, r: window.Range{Start: 0, End: 3}})
	if m.visible != before {
		t.Errorf("visible = %+v after a range from the replaced tracker, want %+v", m.visible, before)
	}
	if cmd == nil {
		t.Error("a stale range should keep waiting for ranges")
	}

	// 45 rows of 9px against a 45px canvas with 18 buffer rows.
	want := window.Range{Start: 0, End: 23}
	if got := nextRange(t, m); got != want {
		t.Errorf("range from new tracker = %+v, want %+v", got, want)
	}
	if m.visible != want {
		t.Errorf("visible = %+v, want %+v", m.visible, want)
	}
}
