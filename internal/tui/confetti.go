package tui

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/gymstreak/internal/confetti"
)

// A terminal cell stands in for a block of simulated pixels. Particle speeds
// are tuned for pixels, so the canvas keeps its own pixel space and only
// maps to cells when drawing.
const (
	cellW = 8
	cellH = 16

	confettiRows = 8
)

type dot struct {
	color confetti.Color
	alpha float64
}

// canvas is a confetti.Surface backed by a grid of terminal cells.
type canvas struct {
	cols, rows int
	dots       map[int]dot
}

func newCanvas(cols, rows int) *canvas {
	return &canvas{cols: cols, rows: rows, dots: make(map[int]dot)}
}

func (c *canvas) Clear() {
	clear(c.dots)
}

// FillCircle marks the cell under (x, y). When particles share a cell the
// brighter one wins.
func (c *canvas) FillCircle(x, y, _ float64, col confetti.Color, alpha float64) {
	cx := int(math.Floor(x / cellW))
	cy := int(math.Floor(y / cellH))
	if cx < 0 || cy < 0 || cx >= c.cols || cy >= c.rows {
		return
	}
	i := cy*c.cols + cx
	if cur, ok := c.dots[i]; ok && cur.alpha >= alpha {
		return
	}
	c.dots[i] = dot{color: col, alpha: alpha}
}

// Resize takes pixel dimensions.
func (c *canvas) Resize(width, height int) {
	c.cols = max(0, width/cellW)
	c.rows = max(0, height/cellH)
	c.Clear()
}

func (c *canvas) pixelSize() (float64, float64) {
	return float64(c.cols * cellW), float64(c.rows * cellH)
}

func glyph(alpha float64) string {
	switch {
	case alpha > 0.66:
		return "●"
	case alpha > 0.33:
		return "•"
	default:
		return "·"
	}
}

func (c *canvas) view() string {
	lines := make([]string, c.rows)
	var b strings.Builder
	for y := 0; y < c.rows; y++ {
		b.Reset()
		for x := 0; x < c.cols; x++ {
			d, ok := c.dots[y*c.cols+x]
			if !ok {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(d.color)).Render(glyph(d.alpha)))
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// frameScheduler records frame requests from the animator. The app turns a
// pending request into a single tea.Tick after each update.
type frameScheduler struct {
	pending  bool
	interval time.Duration
}

func (f *frameScheduler) ScheduleFrame() { f.pending = true }

func (f *frameScheduler) cmd() tea.Cmd {
	if !f.pending {
		return nil
	}
	f.pending = false
	return tea.Tick(f.interval, func(time.Time) tea.Msg {
		return confettiFrameMsg{}
	})
}

// celebration bundles the animator with the surface and scheduler it draws
// through. It is shared by pointer so value copies of the app model see the
// same animation.
type celebration struct {
	canvas   *canvas
	frames   *frameScheduler
	animator *confetti.Animator
	count    int
}

func newCelebration(count int, seed uint64, interval time.Duration) *celebration {
	cv := newCanvas(0, 0)
	fs := &frameScheduler{interval: interval}
	return &celebration{
		canvas:   cv,
		frames:   fs,
		animator: confetti.New(cv, fs, confetti.NewRand(seed)),
		count:    count,
	}
}

// resize fits the canvas to a strip cols cells wide.
func (c *celebration) resize(cols int) {
	c.animator.Resize(cols*cellW, confettiRows*cellH)
}

// burst fires from the middle of the strip, a little below center.
func (c *celebration) burst() tea.Cmd {
	if c.count <= 0 {
		return nil
	}
	w, h := c.canvas.pixelSize()
	c.animator.Burst(w/2, h*0.6, c.count)
	return c.frames.cmd()
}

func (c *celebration) frame() tea.Cmd {
	c.animator.OnFrame()
	return c.frames.cmd()
}

func (c *celebration) running() bool {
	return c.animator.State() == confetti.Running
}

func (c *celebration) view() string {
	return c.canvas.view()
}
