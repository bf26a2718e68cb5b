package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/padd/pkg/config"
	"github.com/matzehuels/padd/pkg/grid"
	"github.com/matzehuels/padd/pkg/observe"
	"github.com/matzehuels/padd/pkg/overlay"
	"github.com/matzehuels/padd/pkg/overlay/sink"
	"github.com/matzehuels/padd/pkg/pipeline"
	"github.com/matzehuels/padd/pkg/schedule"
	"github.com/matzehuels/padd/pkg/units"
	"github.com/matzehuels/padd/pkg/window"
)

const (
	defaultPreviewHeight = 2400 // container height in px
	defaultPxPerCol      = 8
	chromeLines          = 2 // status line and help bar
)

type previewOpts struct {
	height   float64
	pxPerCol float64
	plain    bool
}

// previewCommand creates the preview command, an interactive terminal host
// for the overlays.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{height: defaultPreviewHeight, pxPerCol: defaultPxPerCol}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview overlays in the terminal with live resize and scroll",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.loadSettings(cmd.Context())
			if err != nil {
				return err
			}
			m, err := newPreviewModel(cmd.Context(), s, opts)
			if err != nil {
				return err
			}
			defer m.Close()

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "container height in px")
	cmd.Flags().Float64Var(&opts.pxPerCol, "px-per-col", opts.pxPerCol, "pixels per terminal column")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "disable colors")

	return cmd
}

// =============================================================================
// Key Bindings
// =============================================================================

type previewKeys struct {
	Up, Down, PageUp, PageDown, Top key.Binding
	Columns, Rows, Align        key.Binding
	BaseUp, BaseDown            key.Binding
	Help, Quit                  key.Binding
}

func defaultPreviewKeys() previewKeys {
	return previewKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Columns:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle columns")),
		Rows:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "toggle rows")),
		Align:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "cycle align")),
		BaseUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "base unit")),
		BaseDown: key.NewBinding(key.WithKeys("-")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k previewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Columns, k.Rows, k.Help, k.Quit}
}

func (k previewKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top},
		{k.Columns, k.Rows, k.Align, k.BaseUp},
		{k.Help, k.Quit},
	}
}

// =============================================================================
// Canvas
// =============================================================================

// canvas is the terminal area the overlay is drawn on. It is the observed
// element: its bounds are the cell size scaled to pixels.
type canvas struct {
	mu        sync.Mutex
	cols      int
	lines     int
	pxPerCol  float64
	pxPerLine float64
	scroll    float64
}

func (c *canvas) Bounds() observe.Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return observe.Rect{Width: float64(c.cols) * c.pxPerCol, Height: float64(c.lines) * c.pxPerLine}
}

func (c *canvas) resize(cols, lines int) {
	c.mu.Lock()
	c.cols, c.lines = max(cols, 0), max(lines, 0)
	c.mu.Unlock()
}

func (c *canvas) measurement(viewportHeight float64) window.Measurement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return window.Measurement{ContainerTop: -c.scroll, ViewportHeight: viewportHeight}
}

// =============================================================================
// Model
// =============================================================================

// rangeMsg delivers a visible range published by the tracker of generation
// gen. Ranges from a replaced tracker are ignored.
type rangeMsg struct {
	gen int
	r   window.Range
}

// previewModel hosts the overlays in a terminal. Terminal resizes reach the
// overlay through an observer on the canvas; scroll keys and resizes feed a
// window tracker whose published ranges come back as rangeMsg.
type previewModel struct {
	ctx    context.Context
	plain  bool
	keys   previewKeys
	help   help.Model
	height float64 // container height in px

	layers  overlay.Layers
	window  config.Window
	canvas  *canvas
	notify  *observe.Broadcast
	obs     *observe.Observer
	tracker *window.Tracker
	gen     int
	ranges  chan rangeMsg
	release []func()

	visible window.Range
	scene   *overlay.Scene
}

func newPreviewModel(ctx context.Context, s config.Settings, opts previewOpts) (*previewModel, error) {
	layers, err := pipeline.BuildLayers(s, loggerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	pxPerCol := opts.pxPerCol
	if pxPerCol <= 0 {
		pxPerCol = defaultPxPerCol
	}
	m := &previewModel{
		ctx:    ctx,
		plain:  opts.plain,
		keys:   defaultPreviewKeys(),
		help:   help.New(),
		height: opts.height,
		layers: layers,
		window: s.Window,
		canvas: &canvas{pxPerCol: pxPerCol, pxPerLine: max(layers.Grid.State.Base/2, 1)},
		notify: observe.NewBroadcast(),
		ranges: make(chan rangeMsg, 1),
	}
	if m.height <= 0 {
		m.height = defaultPreviewHeight
	}

	m.obs = observe.New(m.canvas, m.notify)
	m.release = append(m.release, m.obs.Subscribe(func(d observe.Dimensions) {
		m.tracker.Resize(m.canvas.measurement(float64(d.Height)))
	}), m.obs.Close)
	m.startTracker()
	return m, nil
}

// startTracker (re)creates the tracker for the current base unit.
func (m *previewModel) startTracker() {
	if m.tracker != nil {
		m.tracker.Close()
	}
	m.gen++
	gen := m.gen
	m.tracker = window.NewTracker(m.layers.Rows(m.height), m.layers.Grid.State.Base,
		window.WithBuffer(m.window.Buffer),
		window.WithScheduler(newScheduler(m.window)),
	)
	m.tracker.Subscribe(func(r window.Range) { offer(m.ranges, rangeMsg{gen: gen, r: r}) })
	m.visible = m.tracker.Range()
	if d := m.obs.Dimensions(); d.Height > 0 {
		m.tracker.Resize(m.canvas.measurement(float64(d.Height)))
	}
}

// newScheduler maps the window settings to a scheduler.
func newScheduler(w config.Window) schedule.Scheduler {
	switch w.Scheduler {
	case config.SchedulerImmediate:
		return schedule.NewImmediate()
	case config.SchedulerDebounce:
		return schedule.NewDebounce(w.Debounce)
	default:
		return schedule.NewFrameThrottle(schedule.NewTimerFrames(w.Throttle))
	}
}

// offer replaces any pending value in a one-slot channel with v.
func offer(ch chan rangeMsg, v rangeMsg) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// waitRange waits for the next published range.
func (m *previewModel) waitRange() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.ranges:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Close releases the tracker and observer.
func (m *previewModel) Close() {
	m.tracker.Close()
	for i := len(m.release) - 1; i >= 0; i-- {
		m.release[i]()
	}
	m.release = nil
}

func (m *previewModel) Init() tea.Cmd {
	return m.waitRange()
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.canvas.resize(msg.Width, msg.Height-chromeLines)
		m.notify.Fire()
		m.rebuild()

	case rangeMsg:
		if msg.gen == m.gen {
			m.visible = msg.r
			m.rebuild()
		}
		return m, m.waitRange()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Down):
			m.scrollBy(m.layers.Grid.State.Base)
		case key.Matches(msg, m.keys.Up):
			m.scrollBy(-m.layers.Grid.State.Base)
		case key.Matches(msg, m.keys.PageDown):
			m.scrollBy(m.canvas.Bounds().Height)
		case key.Matches(msg, m.keys.PageUp):
			m.scrollBy(-m.canvas.Bounds().Height)
		case key.Matches(msg, m.keys.Top):
			m.scrollBy(-m.scroll())
		case key.Matches(msg, m.keys.Columns):
			if m.layers.XGrid != nil {
				x := *m.layers.XGrid
				x.Visibility = toggle(x.Visibility)
				m.layers.XGrid = &x
			}
			m.rebuild()
		case key.Matches(msg, m.keys.Rows):
			if m.layers.YGrid != nil {
				y := *m.layers.YGrid
				y.Visibility = toggle(y.Visibility)
				m.layers.YGrid = &y
			}
			m.rebuild()
		case key.Matches(msg, m.keys.Align):
			next := nextAlign(m.layers.Grid.State.Align)
			m.dispatch(overlay.UpdateConfig{Align: &next})
		case key.Matches(msg, m.keys.BaseUp):
			base := m.layers.Grid.State.Base + 1
			m.dispatch(overlay.UpdateConfig{Base: &base})
		case key.Matches(msg, m.keys.BaseDown):
			base := m.layers.Grid.State.Base - 1
			m.dispatch(overlay.UpdateConfig{Base: &base})
		}
	}
	return m, nil
}

// dispatch applies a config update to the padded grid state. A base unit
// change re-windows the rows.
func (m *previewModel) dispatch(a overlay.UpdateConfig) {
	a = a.Validated()
	if !a.Changes(m.layers.Grid.State) {
		return
	}
	prev := m.layers.Grid.State.Base
	m.layers.Grid.State = overlay.Reduce(m.layers.Grid.State, a)
	base := m.layers.Grid.State.Base
	if base != prev {
		if m.layers.XGrid != nil {
			x := *m.layers.XGrid
			x.BaseUnit = base
			m.layers.XGrid = &x
		}
		if m.layers.YGrid != nil {
			y := *m.layers.YGrid
			y.BaseUnit = base
			m.layers.YGrid = &y
		}
		m.canvas.mu.Lock()
		m.canvas.pxPerLine = max(base/2, 1)
		m.canvas.mu.Unlock()
		m.notify.Fire()
		m.startTracker()
	}
	m.rebuild()
}

func (m *previewModel) scroll() float64 {
	m.canvas.mu.Lock()
	defer m.canvas.mu.Unlock()
	return m.canvas.scroll
}

// scrollBy moves the viewport by dy px, clamped to the container.
func (m *previewModel) scrollBy(dy float64) {
	viewport := m.canvas.Bounds().Height
	m.canvas.mu.Lock()
	m.canvas.scroll = min(max(m.canvas.scroll+dy, 0), max(m.height-viewport, 0))
	m.canvas.mu.Unlock()
	m.tracker.Scroll(m.canvas.measurement(viewport))
	m.rebuild()
}

func (m *previewModel) rebuild() {
	d := m.obs.Dimensions()
	if d.Width <= 0 {
		m.scene = nil
		return
	}
	m.scene = m.layers.Build(float64(d.Width), m.height, m.visible)
}

func (m *previewModel) View() string {
	m.canvas.mu.Lock()
	cols, lines := m.canvas.cols, m.canvas.lines
	pxPerCol, pxPerLine, scroll := m.canvas.pxPerCol, m.canvas.pxPerLine, m.canvas.scroll
	m.canvas.mu.Unlock()

	var b strings.Builder
	b.WriteString(m.status())
	b.WriteString("\n")
	if m.scene != nil && cols > 0 && lines > 0 {
		opts := []sink.TermOption{
			sink.WithTermSize(cols, lines),
			sink.WithTermScale(pxPerCol, pxPerLine),
			sink.WithTermScroll(scroll),
		}
		if m.plain {
			opts = append(opts, sink.WithPlain())
		}
		b.WriteString(sink.RenderTerm(m.scene, opts...))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// status summarizes the grid, the scroll position and the rendered rows.
func (m *previewModel) status() string {
	if m.scene == nil {
		return StyleDim.Render("waiting for terminal size…")
	}
	st := m.layers.Grid.State
	return fmt.Sprintf("%s %s  %s  base %s  align %s  scroll %s  rows %s",
		StyleTitle.Render("padd"),
		StyleNumber.Render(fmt.Sprintf("%d cols", m.scene.Columns.ColumnCount)),
		StyleDim.Render(m.scene.Columns.TemplateColumns),
		StyleValue.Render(units.FormatNumber(st.Base)+"px"),
		StyleValue.Render(string(st.Align)),
		StyleValue.Render(units.FormatNumber(m.scroll())+"px"),
		StyleValue.Render(fmt.Sprintf("%d-%d/%d", m.visible.Start, m.visible.End, m.scene.Rows)),
	)
}

// toggle flips between shown and hidden, keeping the overlay mounted.
func toggle(v overlay.Visibility) overlay.Visibility {
	if v.Shown() {
		return overlay.Hidden
	}
	return overlay.Visible
}

func nextAlign(a grid.Align) grid.Align {
	for i, x := range grid.Alignments {
		if x == a {
			return grid.Alignments[(i+1)%len(grid.Alignments)]
		}
	}
	return grid.DefaultAlign
}
