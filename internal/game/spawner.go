package game

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

// Spawner drops new enemies into the ring around the homestead while a
// match is running.
type Spawner struct {
	tuning  SpawnerTuning
	profile DifficultyProfile
	rng     *rand.Rand
	log     zerolog.Logger
}

// NewSpawner returns a spawner at the normal profile.
func NewSpawner(t SpawnerTuning, d Deps) *Spawner {
	d = d.withDefaults()
	return &Spawner{
		tuning:  t,
		profile: DifficultyProfile{EnemyHealth: 1, EnemyDamage: 1, EnemySpeed: 1, SpawnRate: 1},
		rng:     d.RNG,
		log:     d.Log.With().Str("component", "spawner").Logger(),
	}
}

// SetProfile scales the spawn rate.
func (sp *Spawner) SetProfile(p DifficultyProfile) { sp.profile = p }

// Chance is the spawn probability for a frame of length dt.
func (sp *Spawner) Chance(dt float64) float64 {
	return clamp(sp.tuning.RatePerSec*sp.profile.SpawnRate*dt, 0, 1)
}

// Update rolls for one spawn this frame. Returns the new enemy, or nil.
func (sp *Spawner) Update(dt float64, m *EnemyManager) *Enemy {
	if !sp.tuning.Enabled || dt <= 0 || m == nil {
		return nil
	}
	if m.Live() >= sp.tuning.MaxLive {
		return nil
	}
	if sp.rng.Float64() >= sp.Chance(dt) {
		return nil
	}
	angle := sp.rng.Float64() * 2 * math.Pi
	dist := sp.tuning.MinDistance + sp.rng.Float64()*(sp.tuning.MaxDistance-sp.tuning.MinDistance)
	pos := mgl64.Vec3{math.Cos(angle) * dist, 0, math.Sin(angle) * dist}

	a := ArchetypeBoar
	if sp.rng.Float64() < sp.tuning.TuskerShare {
		a = ArchetypeTusker
	}
	sp.log.Debug().Stringer("archetype", a).Float64("distance", dist).Msg("ambient spawn")
	return m.Spawn(pos, a)
}
