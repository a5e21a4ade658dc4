package game

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EnemyState is the agent's behaviour state. Transitions only move toward
// EnemyDead.
type EnemyState int

const (
	EnemyPatrolling EnemyState = iota // wandering between random targets
	EnemyCharging                     // closing on the player
	EnemyDead                         // corpse awaiting removal
)

func (s EnemyState) String() string {
	switch s {
	case EnemyPatrolling:
		return "patrolling"
	case EnemyCharging:
		return "charging"
	case EnemyDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Archetype selects an enemy's base stats.
type Archetype int

const (
	ArchetypeBoar Archetype = iota
	ArchetypeTusker
)

func (a Archetype) String() string {
	switch a {
	case ArchetypeBoar:
		return "boar"
	case ArchetypeTusker:
		return "tusker"
	default:
		return "unknown"
	}
}

// Enemy is one spawned hostile. Fields are readable by renderers; mutate
// only through EnemyManager.
type Enemy struct {
	ID           string
	Archetype    Archetype
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Facing       float64 // radians, atan2(vx, vz)
	Health       float64
	MaxHealth    float64
	State        EnemyState
	Speed        float64
	Damage       float64
	LastAttack   float64 // logical time of the last contact hit
	PatrolTarget mgl64.Vec3
	AggroRange   float64
	AttackRange  float64

	attacked bool    // LastAttack is meaningful
	removal  TimerID // pending corpse removal
}

// Alive is true until the enemy enters EnemyDead.
func (e *Enemy) Alive() bool {
	return e.State != EnemyDead
}

// EnemyManager owns the live enemy collection and runs the agent model.
type EnemyManager struct {
	enemies []*Enemy
	killed  int
	spawned int

	tuning  EnemyTuning
	profile DifficultyProfile
	player  PlayerDamager
	sched   *Scheduler
	rng     *rand.Rand
	notify  Notifier
	log     zerolog.Logger
	metrics *simMetrics
}

// NewEnemyManager creates an empty manager. player receives contact damage.
func NewEnemyManager(t EnemyTuning, player PlayerDamager, d Deps) *EnemyManager {
	d = d.withDefaults()
	return &EnemyManager{
		tuning:  t,
		profile: DifficultyProfile{EnemyHealth: 1, EnemyDamage: 1, EnemySpeed: 1, SpawnRate: 1},
		player:  player,
		sched:   d.Scheduler,
		rng:     d.RNG,
		notify:  d.Notify,
		log:     d.Log.With().Str("component", "enemies").Logger(),
		metrics: d.metrics,
	}
}

// SetProfile scales the stats of enemies spawned from now on.
func (m *EnemyManager) SetProfile(p DifficultyProfile) {
	m.profile = p
}

// Enemies returns the live collection, dead bodies included. The slice is
// owned by the manager.
func (m *EnemyManager) Enemies() []*Enemy { return m.enemies }

// Killed is the number of enemies removed after death.
func (m *EnemyManager) Killed() int { return m.killed }

// Spawned counts every spawn since the last reset.
func (m *EnemyManager) Spawned() int { return m.spawned }

// Get looks an enemy up by id.
func (m *EnemyManager) Get(id string) (*Enemy, bool) {
	for _, e := range m.enemies {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Live counts enemies that are not dead.
func (m *EnemyManager) Live() int {
	n := 0
	for _, e := range m.enemies {
		if e.Alive() {
			n++
		}
	}
	return n
}

// Spawn inserts a new patrolling enemy with archetype-scaled stats.
func (m *EnemyManager) Spawn(pos mgl64.Vec3, a Archetype) *Enemy {
	if !finiteVec(pos) {
		m.log.Warn().Msg("spawn rejected: non-finite position")
		return nil
	}
	stats := m.tuning.Stats(a)
	health := stats.Health * m.profile.EnemyHealth
	id, err := uuid.NewRandomFromReader(m.rng)
	if err != nil {
		id = uuid.New()
	}
	e := &Enemy{
		ID:          id.String(),
		Archetype:   a,
		Position:    pos,
		Facing:      m.rng.Float64() * 2 * math.Pi,
		Health:      health,
		MaxHealth:   health,
		State:       EnemyPatrolling,
		Speed:       stats.Speed * m.profile.EnemySpeed,
		Damage:      stats.Damage * m.profile.EnemyDamage,
		AggroRange:  stats.AggroRange,
		AttackRange: m.tuning.AttackRange,
	}
	e.PatrolTarget = pos.Add(m.wanderOffset(m.tuning.SpawnWander))
	m.enemies = append(m.enemies, e)
	m.spawned++

	m.log.Debug().Str("id", e.ID).Stringer("archetype", a).
		Floats64("pos", pos[:]).Msg("enemy spawned")
	m.notify.Notify(Event{Kind: EventEnemySpawned, Time: m.sched.Now(), EnemyID: e.ID, Position: pos})
	return e
}

// wanderOffset returns a horizontal offset uniform in ±width/2.
func (m *EnemyManager) wanderOffset(width float64) mgl64.Vec3 {
	return mgl64.Vec3{
		(m.rng.Float64() - 0.5) * width,
		0,
		(m.rng.Float64() - 0.5) * width,
	}
}

// Update runs one frame of the agent model against the player's position.
// now is the logical clock; it times attacks and the charge oscillation.
func (m *EnemyManager) Update(dt float64, playerPos mgl64.Vec3, now float64) {
	if dt <= 0 {
		return
	}
	kept := m.enemies[:0]
	for _, e := range m.enemies {
		if !finiteVec(e.Position) {
			m.log.Warn().Str("id", e.ID).Msg("dropping enemy with non-finite position")
			m.metrics.drop("enemy")
			if e.removal != 0 {
				m.sched.Cancel(e.removal)
			}
			continue
		}
		kept = append(kept, e)
		if e.State == EnemyDead {
			continue
		}
		m.think(e, playerPos, now)
		e.Position = e.Position.Add(e.Velocity.Mul(dt))
		if e.Velocity.Len() > 0 {
			e.Facing = math.Atan2(e.Velocity[0], e.Velocity[2])
		}
	}
	for i := len(kept); i < len(m.enemies); i++ {
		m.enemies[i] = nil
	}
	m.enemies = kept
}

// think applies the state transition and sets the frame's velocity.
func (m *EnemyManager) think(e *Enemy, playerPos mgl64.Vec3, now float64) {
	dist := e.Position.Sub(playerPos).Len()

	if e.State == EnemyPatrolling && dist < e.AggroRange {
		m.charge(e, now)
	}

	switch e.State {
	case EnemyPatrolling:
		toTarget := e.PatrolTarget.Sub(e.Position)
		if toTarget.Len() < m.tuning.PatrolArrive {
			e.PatrolTarget = e.Position.Add(m.wanderOffset(m.tuning.PatrolWander))
			return
		}
		e.Velocity = normalizeOrZero(toTarget).Mul(e.Speed * m.tuning.PatrolSpeedFactor)

	case EnemyCharging:
		dir := normalizeOrZero(playerPos.Sub(e.Position))
		phase := now * m.tuning.ZigzagFrequency
		zig := normalizeOrZero(mgl64.Vec3{math.Sin(phase) * 2, 0, math.Cos(phase) * 2})
		dir = dir.Add(zig.Mul(m.tuning.ZigzagWeight))
		e.Velocity = normalizeOrZero(dir).Mul(e.Speed)

		if dist < e.AttackRange && (!e.attacked || now-e.LastAttack >= m.tuning.AttackCooldown) {
			e.attacked = true
			e.LastAttack = now
			m.log.Debug().Str("id", e.ID).Float64("damage", e.Damage).Msg("enemy attacks player")
			if m.player != nil {
				m.player.TakeDamage(e.Damage)
			}
		}
	}
}

func (m *EnemyManager) charge(e *Enemy, now float64) {
	e.State = EnemyCharging
	m.log.Debug().Str("id", e.ID).Msg("enemy charging")
	m.notify.Notify(Event{Kind: EventEnemyAggro, Time: now, EnemyID: e.ID, Position: e.Position})
}

// Damage reduces an enemy's health. Crossing zero kills it and schedules
// its removal; surviving damage provokes a patrolling enemy into charging.
// Unknown ids, dead enemies and non-positive amounts are ignored.
func (m *EnemyManager) Damage(id string, amount float64) bool {
	if amount <= 0 || !finite(amount) {
		return false
	}
	e, ok := m.Get(id)
	if !ok || e.State == EnemyDead {
		return false
	}
	e.Health = math.Max(0, e.Health-amount)
	m.log.Debug().Str("id", id).Float64("amount", amount).Float64("health", e.Health).Msg("enemy hit")

	if e.Health > 0 {
		if e.State == EnemyPatrolling {
			m.charge(e, m.sched.Now())
		}
		return true
	}

	e.State = EnemyDead
	e.Velocity = mgl64.Vec3{}
	m.log.Info().Str("id", id).Stringer("archetype", e.Archetype).Msg("enemy died")
	m.notify.Notify(Event{Kind: EventEnemyKilled, Time: m.sched.Now(), EnemyID: id, Position: e.Position})
	e.removal = m.sched.After(m.tuning.RemovalDelay, func() {
		e.removal = 0
		m.Remove(id)
	})
	return true
}

// Remove deletes a dead enemy and credits the kill. Live enemies are
// refused so premature cleanup cannot steal a body.
func (m *EnemyManager) Remove(id string) bool {
	for i, e := range m.enemies {
		if e.ID != id {
			continue
		}
		if e.State != EnemyDead {
			m.log.Debug().Str("id", id).Msg("remove refused: enemy alive")
			return false
		}
		if e.removal != 0 {
			m.sched.Cancel(e.removal)
			e.removal = 0
		}
		m.enemies = append(m.enemies[:i], m.enemies[i+1:]...)
		m.killed++
		m.metrics.kill(e.Archetype)
		m.notify.Notify(Event{Kind: EventEnemyRemoved, Time: m.sched.Now(), EnemyID: id, Count: m.killed})
		return true
	}
	return false
}

// Reset clears the collection, the counters and any pending removals.
func (m *EnemyManager) Reset() {
	for _, e := range m.enemies {
		if e.removal != 0 {
			m.sched.Cancel(e.removal)
		}
	}
	m.enemies = nil
	m.killed = 0
	m.spawned = 0
}
