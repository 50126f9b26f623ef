package confetti

import (
	"math"
	"math/rand/v2"
	"time"
)

// State of an Animator.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Animator owns the live particle set. It is driven from a single goroutine
// (the UI loop) and holds no locks.
//
// Exactly one frame is outstanding while particles remain; none once the
// set empties.
type Animator struct {
	surface   Surface
	scheduler Scheduler
	rng       *rand.Rand
	particles []Particle
	state     State
}

// New returns an idle animator. A nil rng is replaced by a time-seeded one.
func New(s Surface, sch Scheduler, rng *rand.Rand) *Animator {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Animator{surface: s, scheduler: sch, rng: rng}
}

// NewRand returns a PCG source for seed, or a time-based one when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Burst spawns count particles radiating from (x, y). Bursts add to any
// particles already in flight. count <= 0 does nothing.
func (a *Animator) Burst(x, y float64, count int) {
	if count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(count)
		speed := a.uniform(minSpeed, maxSpeed)
		a.particles = append(a.particles, Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle)*speed - UpwardBias,
			Color: Palette[a.rng.IntN(len(Palette))],
			Size:  a.uniform(minSize, maxSize),
			Life:  1,
			Decay: a.uniform(minDecay, maxDecay),
		})
	}
	if a.state == Idle {
		a.state = Running
		a.scheduler.ScheduleFrame()
	}
}

// OnFrame runs one scheduled frame and schedules the next if anything is
// still alive.
func (a *Animator) OnFrame() {
	if a.state == Idle {
		return
	}
	a.particles = Step(a.particles, a.surface)
	if len(a.particles) == 0 {
		a.particles = nil
		a.state = Idle
		return
	}
	a.scheduler.ScheduleFrame()
}

// Resize forwards new bounds to the surface. Particles are untouched.
func (a *Animator) Resize(width, height int) {
	a.surface.Resize(width, height)
}

func (a *Animator) State() State { return a.state }

// Len is the number of live particles.
func (a *Animator) Len() int { return len(a.particles) }

// Particles returns a copy of the live set.
func (a *Animator) Particles() []Particle {
	out := make([]Particle, len(a.particles))
	copy(out, a.particles)
	return out
}

func (a *Animator) uniform(lo, hi float64) float64 {
	return lo + a.rng.Float64()*(hi-lo)
}
