package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// FrameDelta is the fixed step the harness feeds the simulation.
const FrameDelta = 1.0 / 60.0

// TestSim is a headless harness used by tests and the report command. It
// wraps a Sim with a fixed frame delta, staged construction and a scripted
// input source.
type TestSim struct {
	Sim    *Sim
	SimLog *SimLog
	Input  func(*TestSim) Input // per-tick input; nil means idle

	// Reporter samples pressure every reportIntervalTicks when set.
	Reporter *SimReporter

	tuning   Tuning
	simOpts  []Option
	spawns   []pendingSpawn
	start    bool
	diff     Difficulty
	setDiff  bool
	playerAt *mgl64.Vec3
	rotation *Rotation
}

type pendingSpawn struct {
	pos mgl64.Vec3
	a   Archetype
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // tuning, seed, verbose: applied before the Sim exists
	simOptState                       // difficulty, start: applied to the new Sim
	simOptEntity                      // player pose, enemies: applied after the match starts
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithTestSeed sets the RNG seed for deterministic runs.
func WithTestSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.simOpts = append(ts.simOpts, WithSeed(seed))
	}}
}

// WithTestVerbose enables per-tick verbose logging.
func WithTestVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.simOpts = append(ts.simOpts, WithVerbose(v))
	}}
}

// WithTestLogger routes component logs to l.
func WithTestLogger(l zerolog.Logger) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.simOpts = append(ts.simOpts, WithLogger(l))
	}}
}

// WithTestMeterProvider sends the simulation counters to mp.
func WithTestMeterProvider(mp metric.MeterProvider) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.simOpts = append(ts.simOpts, WithMeterProvider(mp))
	}}
}

// WithTuning edits the tuning before the Sim is built.
func WithTuning(edit func(*Tuning)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		edit(&ts.tuning)
	}}
}

// WithSpawner keeps ambient spawning on. Harness runs default to scripted
// enemies only.
func WithSpawner() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.tuning.Spawner.Enabled = true
	}}
}

// WithReporter attaches a pressure reporter with the given window.
func WithReporter(windowTicks int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Reporter = NewSimReporter(windowTicks)
	}}
}

// WithDifficulty selects a difficulty before the match starts.
func WithDifficulty(d Difficulty) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.diff = d
		ts.setDiff = true
	}}
}

// InMenu leaves the session in the menu instead of starting a match.
func InMenu() SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.start = false
	}}
}

// WithPlayerAt teleports the player once the match has started.
func WithPlayerAt(x, y, z float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		p := mgl64.Vec3{x, y, z}
		ts.playerAt = &p
	}}
}

// WithPlayerRotation orients the camera once the match has started.
func WithPlayerRotation(yaw, pitch float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.rotation = &Rotation{Yaw: yaw, Pitch: pitch}
	}}
}

// WithEnemy spawns an enemy once the match has started.
func WithEnemy(a Archetype, x, y, z float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.spawns = append(ts.spawns, pendingSpawn{pos: mgl64.Vec3{x, y, z}, a: a})
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (tuning, seed, verbose), then the Sim is built
//  2. Session state (difficulty, start)
//  3. Entities (player pose, enemies)
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{tuning: DefaultTuning(), start: true}
	ts.tuning.Spawner.Enabled = false
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Sim = New(ts.tuning, ts.simOpts...)
	ts.SimLog = ts.Sim.SimLog

	for _, o := range opts {
		if o.kind == simOptState {
			o.fn(ts)
		}
	}
	if ts.setDiff {
		ts.Sim.SetDifficulty(ts.diff)
	}
	if ts.start {
		ts.Sim.Start()
	}

	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	if ts.playerAt != nil {
		ts.Sim.Player.SetPosition(*ts.playerAt)
	}
	if ts.rotation != nil {
		ts.Sim.Player.SetRotation(*ts.rotation)
	}
	for _, sp := range ts.spawns {
		ts.Sim.SpawnEnemy(sp.pos, sp.a)
	}
	return ts
}

// Step advances one tick with an explicit input.
func (ts *TestSim) Step(in Input) {
	ts.step(in)
}

func (ts *TestSim) step(in Input) {
	before := ts.Sim.Tick()
	ts.Sim.Step(FrameDelta, in)
	tick := ts.Sim.Tick()
	if ts.Reporter == nil || tick == before {
		return
	}
	// A restart rewinds the tick; samples from the old match no longer apply.
	if last := ts.Reporter.Latest(); last != nil && tick < last.Tick {
		ts.Reporter.Reset()
	}
	if tick%reportIntervalTicks == 0 {
		ts.Reporter.Collect(tick, ts.Sim)
	}
}

// RunTicks advances the simulation n ticks using the scripted input.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.step(ts.nextInput())
	}
}

// RunSeconds advances by whole ticks covering at least sec seconds.
func (ts *TestSim) RunSeconds(sec float64) {
	ts.RunTicks(int(sec/FrameDelta + 0.5))
}

// RunUntil advances up to maxTicks, stopping early if predicate returns
// true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.step(ts.nextInput())
		if predicate(ts) {
			return ts.Sim.Tick()
		}
	}
	return -1
}

func (ts *TestSim) nextInput() Input {
	if ts.Input == nil {
		return Input{}
	}
	return ts.Input(ts)
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Sim.Tick()
}

// FirstEnemy returns the earliest spawned enemy still in the collection.
func (ts *TestSim) FirstEnemy() *Enemy {
	es := ts.Sim.Enemies.Enemies()
	if len(es) == 0 {
		return nil
	}
	return es[0]
}
