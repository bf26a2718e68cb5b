package sink

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/padd/pkg/overlay"
)

// Default terminal canvas.
const (
	DefaultTermCols  = 80
	DefaultTermLines = 24
)

type cell uint8

const (
	cellEmpty cell = iota
	cellSpacer
	cellColumn
	cellColumnLine
	cellRow
	cellCross
)

var cellRunes = map[cell]rune{
	cellEmpty:      ' ',
	cellSpacer:     '·',
	cellColumn:     '░',
	cellColumnLine: '│',
	cellRow:        '─',
	cellCross:      '┼',
}

// TermStyles colors each kind of terminal cell.
type TermStyles struct {
	Column lipgloss.Style
	Row    lipgloss.Style
	Cross  lipgloss.Style
	Spacer lipgloss.Style
}

// DefaultTermStyles matches the default palette on 256-color terminals.
var DefaultTermStyles = TermStyles{
	Column: lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
	Row:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	Cross:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	Spacer: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

// TermOption configures [RenderTerm].
type TermOption func(*termRenderer)

type termRenderer struct {
	cols, lines         int
	pxPerCol, pxPerLine float64
	scroll              float64
	styles              TermStyles
	plain               bool
}

// WithTermSize sets the canvas size in cells.
func WithTermSize(cols, lines int) TermOption {
	return func(r *termRenderer) { r.cols, r.lines = cols, lines }
}

// WithTermScale sets how many pixels one cell covers. Zero keeps the
// default: the scene width spread over the columns, and half a row pitch
// per line so that line rows alternate with blank lines.
func WithTermScale(pxPerCol, pxPerLine float64) TermOption {
	return func(r *termRenderer) { r.pxPerCol, r.pxPerLine = pxPerCol, pxPerLine }
}

// WithTermScroll offsets the canvas vertically by px.
func WithTermScroll(px float64) TermOption { return func(r *termRenderer) { r.scroll = px } }

// WithTermStyles overrides the cell colors.
func WithTermStyles(s TermStyles) TermOption { return func(r *termRenderer) { r.styles = s } }

// WithPlain renders without ANSI styling.
func WithPlain() TermOption { return func(r *termRenderer) { r.plain = true } }

// RenderTerm draws the scene on a character grid: │ for line columns, ░ for
// wide columns, ─ for rows, ┼ where they cross and · for spacers.
func RenderTerm(sc *overlay.Scene, opts ...TermOption) string {
	r := termRenderer{cols: DefaultTermCols, lines: DefaultTermLines, styles: DefaultTermStyles}
	for _, opt := range opts {
		opt(&r)
	}
	if r.cols <= 0 {
		r.cols = DefaultTermCols
	}
	if r.lines <= 0 {
		r.lines = DefaultTermLines
	}
	if sc == nil || sc.Root == nil || sc.Width <= 0 {
		return strings.TrimRight(strings.Repeat(strings.Repeat(" ", r.cols)+"\n", r.lines), "\n")
	}
	if r.pxPerCol <= 0 {
		r.pxPerCol = sc.Width / float64(r.cols)
	}
	if r.pxPerLine <= 0 {
		r.pxPerLine = defaultLineScale(sc, r.lines)
	}

	canvas := make([][]cell, r.lines)
	for i := range canvas {
		canvas[i] = make([]cell, r.cols)
	}
	walk(sc.Root, nil, func(n *overlay.Node, vars map[string]string) {
		r.paint(canvas, n, vars)
	})
	return r.render(canvas)
}

// defaultLineScale returns half the row pitch, or the height spread over the
// lines when there are fewer than two rows.
func defaultLineScale(sc *overlay.Scene, lines int) float64 {
	rows := sc.Root.Find(overlay.RoleRow)
	if len(rows) >= 2 && rows[0].Frame != nil && rows[1].Frame != nil {
		if pitch := rows[1].Frame.Y - rows[0].Frame.Y; pitch > 0 {
			return math.Max(pitch/2, 1)
		}
	}
	return math.Max(sc.Height/float64(lines), 1)
}

// span returns the half-open cell range covered by [from, from+size).
// Sub-cell spans cover the cell containing from.
func span(from, size, scale float64, limit int) (int, int) {
	lo := int(math.Floor(from / scale))
	hi := int(math.Ceil((from + size) / scale))
	if hi <= lo {
		hi = lo + 1
	}
	return max(lo, 0), min(hi, limit)
}

func (r termRenderer) paint(canvas [][]cell, n *overlay.Node, vars map[string]string) {
	if n.Frame == nil {
		return
	}
	f := n.Frame
	switch n.Role {
	case overlay.RoleColumn:
		x0, x1 := span(f.X, f.Width, r.pxPerCol, r.cols)
		kind := cellColumn
		if f.Width <= r.pxPerCol {
			kind, x1 = cellColumnLine, min(x0+1, r.cols)
		}
		y0, y1 := span(f.Y-r.scroll, f.Height, r.pxPerLine, r.lines)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				canvas[y][x] = merge(canvas[y][x], kind)
			}
		}

	case overlay.RoleRow:
		if o, err := strconv.ParseFloat(vars["--row-opacity"], 64); err == nil && o <= 0 {
			return
		}
		y0, y1 := span(f.Y-r.scroll, f.Height, r.pxPerLine, r.lines)
		x0, x1 := span(f.X, f.Width, r.pxPerCol, r.cols)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				canvas[y][x] = merge(canvas[y][x], cellRow)
			}
		}

	case overlay.RoleSpacer:
		y0, y1 := span(f.Y-r.scroll, f.Height, r.pxPerLine, r.lines)
		x0, x1 := span(f.X, f.Width, r.pxPerCol, r.cols)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				canvas[y][x] = merge(canvas[y][x], cellSpacer)
			}
		}
	}
}

// merge combines what is already drawn in a cell with a new layer.
func merge(have, add cell) cell {
	switch {
	case have == cellEmpty || have == cellSpacer:
		return add
	case add == cellSpacer:
		return have
	case have == cellCross || add == cellCross:
		return cellCross
	case have == cellRow && (add == cellColumn || add == cellColumnLine),
		add == cellRow && (have == cellColumn || have == cellColumnLine):
		return cellCross
	}
	return add
}

func (r termRenderer) style(c cell) (lipgloss.Style, bool) {
	if r.plain {
		return lipgloss.Style{}, false
	}
	switch c {
	case cellColumn, cellColumnLine:
		return r.styles.Column, true
	case cellRow:
		return r.styles.Row, true
	case cellCross:
		return r.styles.Cross, true
	case cellSpacer:
		return r.styles.Spacer, true
	}
	return lipgloss.Style{}, false
}

// render joins runs of equal cells so each run is styled once.
func (r termRenderer) render(canvas [][]cell) string {
	lines := make([]string, len(canvas))
	for i, row := range canvas {
		var b strings.Builder
		for x := 0; x < len(row); {
			end := x
			for end < len(row) && row[end] == row[x] {
				end++
			}
			run := strings.Repeat(string(cellRunes[row[x]]), end-x)
			if st, ok := r.style(row[x]); ok {
				run = st.Render(run)
			}
			b.WriteString(run)
			x = end
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
