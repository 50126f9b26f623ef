// Package confetti is a small particle simulation for check-in bursts.
// It knows nothing about terminals: frames are drawn onto a Surface and the
// next frame is requested through a Scheduler supplied by the host.
package confetti

// Color is a hex RGB string such as "#818cf8".
type Color string

// Palette is the set of colors a burst draws from.
var Palette = []Color{
	"#818cf8", // indigo
	"#a855f7", // purple
	"#ec4899", // pink
	"#f59e0b", // amber
	"#10b981", // emerald
	"#3b82f6", // blue
}

// Physics and spawn parameters.
const (
	DefaultCount = 50
	Gravity      = 0.2
	UpwardBias   = 5.0

	minSpeed = 5.0
	maxSpeed = 13.0
	minSize  = 2.0
	maxSize  = 8.0
	minDecay = 0.015
	maxDecay = 0.03

	// MaxFrames bounds the life of any particle: ceil(1/minDecay).
	MaxFrames = 67
)

// Particle is one piece of confetti. Life starts at 1 and the particle is
// gone on the frame it reaches 0.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Color  Color
	Size   float64
	Life   float64
	Decay  float64
}

// Surface is anything confetti can be drawn on.
type Surface interface {
	Clear()
	FillCircle(x, y, radius float64, c Color, alpha float64)
	Resize(width, height int)
}

// Scheduler requests one future call to Animator.OnFrame.
type Scheduler interface {
	ScheduleFrame()
}

// advance integrates one frame of motion.
func (p *Particle) advance() {
	p.X += p.VX
	p.Y += p.VY
	p.VY += Gravity
	p.Life -= p.Decay
}

// Step is a single frame: it clears s, drops dead particles, moves and
// draws the rest, and returns the survivors. A particle whose life runs out
// during this frame is neither drawn nor returned. The input slice is
// reused.
func Step(particles []Particle, s Surface) []Particle {
	s.Clear()
	alive := particles[:0]
	for _, p := range particles {
		if p.Life <= 0 {
			continue
		}
		p.advance()
		if p.Life <= 0 {
			continue
		}
		s.FillCircle(p.X, p.Y, p.Size, p.Color, p.Life)
		alive = append(alive, p)
	}
	return alive
}
