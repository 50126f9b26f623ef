package confetti_test

import (
	"math"
	"testing"

	"github.com/sadopc/gymstreak/internal/confetti"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type circle struct {
	x, y, r, alpha float64
	c              confetti.Color
}

type recordingSurface struct {
	clears        int
	circles       []circle
	width, height int
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
}

func (s *recordingSurface) FillCircle(x, y, r float64, c confetti.Color, alpha float64) {
	s.circles = append(s.circles, circle{x: x, y: y, r: r, alpha: alpha, c: c})
}

func (s *recordingSurface) Resize(w, h int) {
	s.width, s.height = w, h
}

// queueScheduler counts frames requested but not yet delivered.
type queueScheduler struct {
	pending int
	total   int
}

func (q *queueScheduler) ScheduleFrame() {
	q.pending++
	q.total++
}

// drain delivers frames until none are pending and returns how many ran.
func drain(t *testing.T, a *confetti.Animator, q *queueScheduler) int {
	t.Helper()
	frames := 0
	for q.pending > 0 {
		require.Equal(t, 1, q.pending, "more than one frame outstanding")
		q.pending--
		a.OnFrame()
		frames++
		require.LessOrEqual(t, frames, 10*confetti.MaxFrames, "animation never stopped")
	}
	return frames
}

func newAnimator(seed uint64) (*confetti.Animator, *recordingSurface, *queueScheduler) {
	s := &recordingSurface{}
	q := &queueScheduler{}
	return confetti.New(s, q, confetti.NewRand(seed)), s, q
}

func TestBurstTerminates(t *testing.T) {
	a, s, q := newAnimator(42)
	a.Burst(100, 100, confetti.DefaultCount)

	assert.Equal(t, confetti.Running, a.State())
	assert.Equal(t, confetti.DefaultCount, a.Len())
	assert.Equal(t, 1, q.pending)

	frames := drain(t, a, q)
	assert.LessOrEqual(t, frames, confetti.MaxFrames)
	assert.Equal(t, confetti.Idle, a.State())
	assert.Zero(t, a.Len())
	assert.Zero(t, q.pending)
	assert.Equal(t, frames, s.clears)
	assert.Empty(t, s.circles, "last frame should leave a cleared surface")
}

func TestBurstTerminatesForManySeeds(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		a, _, q := newAnimator(seed)
		a.Burst(0, 0, 200)
		frames := drain(t, a, q)
		require.LessOrEqual(t, frames, confetti.MaxFrames, "seed %d", seed)
		require.Equal(t, confetti.Idle, a.State())
	}
}

func TestBurstsCompose(t *testing.T) {
	a, _, q := newAnimator(7)
	a.Burst(10, 10, 50)
	a.Burst(20, 20, 30)

	assert.Equal(t, 80, a.Len())
	assert.Equal(t, 1, q.total, "second burst must not schedule another frame")

	// A burst mid-animation joins the running loop.
	q.pending--
	a.OnFrame()
	before := a.Len()
	a.Burst(5, 5, 10)
	assert.Equal(t, before+10, a.Len())
	assert.Equal(t, 1, q.pending)

	drain(t, a, q)
	assert.Equal(t, confetti.Idle, a.State())
}

func TestBurstNonPositiveCountIsNoop(t *testing.T) {
	a, s, q := newAnimator(1)
	a.Burst(0, 0, 0)
	a.Burst(0, 0, -5)

	assert.Equal(t, confetti.Idle, a.State())
	assert.Zero(t, a.Len())
	assert.Zero(t, q.total)
	assert.Zero(t, s.clears)
}

func TestOnFrameWhileIdleDoesNothing(t *testing.T) {
	a, s, q := newAnimator(1)
	a.OnFrame()
	assert.Zero(t, s.clears)
	assert.Zero(t, q.total)
}

func TestBurstParameters(t *testing.T) {
	a, _, _ := newAnimator(99)
	a.Burst(50, 60, 8)

	palette := make(map[confetti.Color]bool)
	for _, c := range confetti.Palette {
		palette[c] = true
	}

	for i, p := range a.Particles() {
		angle := 2 * math.Pi * float64(i) / 8
		speed := math.Hypot(p.VX, p.VY+confetti.UpwardBias)

		assert.Equal(t, 50.0, p.X)
		assert.Equal(t, 60.0, p.Y)
		assert.GreaterOrEqual(t, speed, 5.0-1e-9)
		assert.Less(t, speed, 13.0)
		assert.InDelta(t, math.Cos(angle)*speed, p.VX, 1e-9)
		assert.True(t, palette[p.Color], "color %q", p.Color)
		assert.GreaterOrEqual(t, p.Size, 2.0)
		assert.Less(t, p.Size, 8.0)
		assert.Equal(t, 1.0, p.Life)
		assert.GreaterOrEqual(t, p.Decay, 0.015)
		assert.Less(t, p.Decay, 0.03)
	}
}

func TestFixedSeedIsReproducible(t *testing.T) {
	a1, _, _ := newAnimator(12345)
	a2, _, _ := newAnimator(12345)
	a1.Burst(1, 2, 40)
	a2.Burst(1, 2, 40)
	assert.Equal(t, a1.Particles(), a2.Particles())

	a3, _, _ := newAnimator(54321)
	a3.Burst(1, 2, 40)
	assert.NotEqual(t, a1.Particles(), a3.Particles())
}

func TestResizeLeavesParticlesAlone(t *testing.T) {
	a, s, _ := newAnimator(3)
	a.Burst(10, 10, 20)
	before := a.Particles()

	a.Resize(640, 480)
	assert.Equal(t, 640, s.width)
	assert.Equal(t, 480, s.height)
	assert.Equal(t, before, a.Particles())
	assert.Equal(t, confetti.Running, a.State())
}

func TestStep(t *testing.T) {
	s := &recordingSurface{}
	in := []confetti.Particle{
		{X: 0, Y: 0, VX: 1, VY: -2, Color: "#818cf8", Size: 3, Life: 1, Decay: 0.25},
		{Life: 0, Decay: 0.1},              // already dead
		{Life: 0.01, Decay: 0.02, Size: 1}, // dies this frame
	}

	out := confetti.Step(in, s)
	require.Len(t, out, 1)
	p := out[0]
	assert.Equal(t, 1.0, p.X)
	assert.Equal(t, -2.0, p.Y)
	assert.InDelta(t, -1.8, p.VY, 1e-12)
	assert.Equal(t, 0.75, p.Life)

	assert.Equal(t, 1, s.clears)
	require.Len(t, s.circles, 1)
	assert.Equal(t, 0.75, s.circles[0].alpha)
	assert.Equal(t, 3.0, s.circles[0].r)
}
