package game

import "github.com/go-gl/mathgl/mgl64"

// Projectile is a round in flight. Direction is unit length; Life counts up
// from zero and the projectile expires once it reaches MaxLife.
type Projectile struct {
	ID        string
	Weapon    WeaponKind
	Position  mgl64.Vec3
	Direction mgl64.Vec3
	Speed     float64
	Damage    float64
	Life      float64
	MaxLife   float64
}

// Expired reports whether the projectile has outlived its range or fallen
// below ground level.
func (p *Projectile) Expired(groundLevel float64) bool {
	return p.Life >= p.MaxLife || p.Position[1] < groundLevel
}

func (p *Projectile) malformed() bool {
	return !finiteVec(p.Position) || !finiteVec(p.Direction) ||
		p.Direction.Len() == 0 || !finite(p.Speed) || !finite(p.Life)
}

// UpdateProjectiles advances every projectile, resolves hits and drops the
// spent ones. A projectile that reaches an enemy in the same frame it
// expires still scores: hits are resolved before expiry. Each projectile
// hits at most one enemy, the first live one within HitRadius in
// collection order.
func (a *Armory) UpdateProjectiles(dt float64, targets Targets, scorer Scorer) {
	if dt <= 0 || len(a.projectiles) == 0 {
		return
	}
	var enemies []*Enemy
	if targets != nil {
		enemies = targets.Enemies()
	}

	kept := a.projectiles[:0]
	for _, p := range a.projectiles {
		if p == nil || p.malformed() {
			a.log.Warn().Msg("dropping malformed projectile")
			a.metrics.drop("projectile")
			continue
		}
		p.Position = p.Position.Add(p.Direction.Mul(p.Speed * dt))
		p.Life += dt

		if e := a.firstHit(p, enemies); e != nil {
			targets.Damage(e.ID, p.Damage)
			if scorer != nil {
				scorer.AddScore(a.proj.HitScore)
			}
			a.metrics.hit(p.Weapon)
			a.notify.Notify(Event{
				Kind:     EventProjectileHit,
				Time:     a.sched.Now(),
				EnemyID:  e.ID,
				Weapon:   p.Weapon,
				Amount:   p.Damage,
				Position: p.Position,
			})
			continue
		}
		if p.Expired(a.proj.GroundLevel) {
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(a.projectiles); i++ {
		a.projectiles[i] = nil
	}
	a.projectiles = kept
}

func (a *Armory) firstHit(p *Projectile, enemies []*Enemy) *Enemy {
	for _, e := range enemies {
		if e == nil || !e.Alive() || !finiteVec(e.Position) {
			continue
		}
		if p.Position.Sub(e.Position).Len() < a.proj.HitRadius {
			return e
		}
	}
	return nil
}
