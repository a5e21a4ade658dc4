package game

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// Input is one frame of decoded host input.
type Input struct {
	Move   Intent
	LookDX float64 // raw mouse counts since the last frame
	LookDY float64
	Fire   bool
	Reload bool
	Slot   int // 1-based weapon slot to switch to; 0 keeps the current weapon
}

// Sim is the simulation context. It owns every component and the shared
// logical clock, and is the only writer of simulation state.
type Sim struct {
	Tuning    Tuning
	Scheduler *Scheduler
	Session   *Session
	Player    *Player
	Enemies   *EnemyManager
	Armory    *Armory
	Spawner   *Spawner
	SimLog    *SimLog

	tick   int
	seed   int64
	rng    *rand.Rand
	log    zerolog.Logger
	notify Notifier
}

type simConfig struct {
	seed     int64
	log      zerolog.Logger
	notify   Notifier
	verbose  bool
	noSpawns bool
	meter    metric.MeterProvider
}

// Option configures a Sim at construction.
type Option func(*simConfig)

// WithSeed seeds the simulation RNG. The same seed and input sequence
// replay the same match.
func WithSeed(seed int64) Option {
	return func(c *simConfig) { c.seed = seed }
}

// WithLogger sets the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *simConfig) { c.log = l }
}

// WithNotifier adds an external notification sink (audio, spectator, HUD).
func WithNotifier(n Notifier) Option {
	return func(c *simConfig) { c.notify = n }
}

// WithVerbose makes SimLog record per-tick entries too.
func WithVerbose(v bool) Option {
	return func(c *simConfig) { c.verbose = v }
}

// WithMeterProvider routes the simulation counters to mp instead of the
// global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *simConfig) { c.meter = mp }
}

// WithoutSpawner disables ambient spawning regardless of tuning.
func WithoutSpawner() Option {
	return func(c *simConfig) { c.noSpawns = true }
}

// New builds a simulation in the menu state.
func New(t Tuning, opts ...Option) *Sim {
	cfg := simConfig{seed: 1, log: zerolog.Nop()}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.noSpawns {
		t.Spawner.Enabled = false
	}

	s := &Sim{
		Tuning:    t,
		Scheduler: NewScheduler(),
		SimLog:    NewSimLog(cfg.verbose),
		seed:      cfg.seed,
		rng:       rand.New(rand.NewSource(cfg.seed)), // #nosec G404 -- game only
		log:       cfg.log.With().Str("component", "sim").Logger(),
	}
	s.notify = Notifiers{
		NotifierFunc(func(e Event) { s.SimLog.Record(s.tick, e) }),
		orNop(cfg.notify),
	}
	d := Deps{
		Log:       cfg.log,
		Notify:    s.notify,
		Scheduler: s.Scheduler,
		RNG:       s.rng,
		metrics:   newSimMetrics(cfg.meter),
	}

	s.Session = NewSession(d)
	s.Player = NewPlayer(t.Player, s.Session, d)
	s.Enemies = NewEnemyManager(t.Enemy, s.Player, d)
	s.Armory = NewArmory(t.Weapons, t.Projectile, d)
	s.Spawner = NewSpawner(t.Spawner, d)
	s.applyDifficulty()
	return s
}

// Tick is the number of steps taken since the last reset.
func (s *Sim) Tick() int { return s.tick }

// Seed returns the seed the simulation was built with.
func (s *Sim) Seed() int64 { return s.seed }

// Now is the logical clock.
func (s *Sim) Now() float64 { return s.Scheduler.Now() }

// SanitizeDelta maps a host frame delta into [0, max]. NaN, infinities and
// negative values become zero.
func SanitizeDelta(dt, max float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0
	}
	if max > 0 && dt > max {
		return max
	}
	return dt
}

// Step advances the simulation by one host frame. Nothing moves unless the
// session is playing; the logical clock is frozen while paused.
func (s *Sim) Step(dt float64, in Input) {
	dt = SanitizeDelta(dt, s.Tuning.MaxFrameDelta)
	if dt == 0 || !s.Session.Playing() {
		return
	}
	s.tick++

	// Deferred effects land before anything else reads state.
	s.Scheduler.Advance(dt)
	s.Scheduler.RunDue()
	if !s.Session.Playing() {
		return
	}
	now := s.Scheduler.Now()

	// --- Player ---
	if !s.Player.IsDead() {
		s.Player.Look(in.LookDX, in.LookDY)
		s.Player.Update(dt, in.Move, s.Player.Forward())
	}

	// --- Enemies ---
	s.Enemies.Update(dt, s.Player.Position(), now)

	// --- Weapons ---
	if !s.Player.IsDead() {
		if in.Slot >= 1 && in.Slot <= len(WeaponKinds) {
			s.Armory.Switch(WeaponKinds[in.Slot-1])
		}
		if in.Reload {
			s.Armory.Reload()
		}
		if in.Fire {
			s.Armory.Fire(s.Player.Position(), s.Player.Forward())
		}
	}
	s.Armory.UpdateProjectiles(dt, s.Enemies, s.Session)
	s.Armory.UnlockForKills(s.Enemies.Killed())

	// --- Spawning ---
	s.Spawner.Update(dt, s.Enemies)

	s.Session.Advance(dt)

	if s.SimLog.verbose {
		p := s.Player.Position()
		s.SimLog.AddVerbose(s.tick, "player", "move", "position",
			formatVec(p), s.Player.Health())
	}
}

// Start begins a match from the menu or after game over with a fresh world.
func (s *Sim) Start() bool {
	st := s.Session.State()
	if st != StateMenu && st != StateGameOver {
		return false
	}
	s.resetWorld()
	return s.Session.Start()
}

// Restart begins a fresh match after game over.
func (s *Sim) Restart() bool {
	if s.Session.State() != StateGameOver {
		return false
	}
	s.resetWorld()
	return s.Session.Restart()
}

// TogglePause flips between playing and paused.
func (s *Sim) TogglePause() bool { return s.Session.TogglePause() }

// End forces game over.
func (s *Sim) End() bool { return s.Session.End() }

// SetDifficulty selects a difficulty from the menu and rescales spawns.
func (s *Sim) SetDifficulty(d Difficulty) bool {
	if !s.Session.SetDifficulty(d) {
		return false
	}
	s.applyDifficulty()
	return true
}

// Reset returns to the menu with a fresh world. Every pending timer is
// discarded at once.
func (s *Sim) Reset() {
	s.resetWorld()
	s.Session.Reset()
}

func (s *Sim) resetWorld() {
	s.Player.Reset()
	s.Enemies.Reset()
	s.Armory.Reset()
	s.Scheduler.Reset()
	s.SimLog.Reset()
	s.applyDifficulty()
	s.tick = 0
	s.log.Debug().Msg("world reset")
}

func (s *Sim) applyDifficulty() {
	p := s.Tuning.Difficulty.Profile(s.Session.Difficulty())
	s.Enemies.SetProfile(p)
	s.Spawner.SetProfile(p)
}

// SpawnEnemy places an enemy directly, bypassing the spawner.
func (s *Sim) SpawnEnemy(pos mgl64.Vec3, a Archetype) *Enemy {
	return s.Enemies.Spawn(pos, a)
}
