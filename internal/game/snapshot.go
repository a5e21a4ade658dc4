package game

import "github.com/go-gl/mathgl/mgl64"

// Snapshot is a read-only, JSON-friendly copy of the simulation state for
// renderers and spectators.
type Snapshot struct {
	Tick        int                  `json:"tick"`
	Time        float64              `json:"time"`
	State       string               `json:"state"`
	Difficulty  string               `json:"difficulty"`
	Score       int                  `json:"score"`
	Elapsed     float64              `json:"elapsed"`
	Kills       int                  `json:"kills"`
	Player      PlayerSnapshot       `json:"player"`
	Weapon      WeaponSnapshot       `json:"weapon"`
	Enemies     []EnemySnapshot      `json:"enemies"`
	Projectiles []ProjectileSnapshot `json:"projectiles"`
}

// PlayerSnapshot is the player's pose and health.
type PlayerSnapshot struct {
	Position  mgl64.Vec3 `json:"position"`
	Yaw       float64    `json:"yaw"`
	Pitch     float64    `json:"pitch"`
	Health    float64    `json:"health"`
	MaxHealth float64    `json:"maxHealth"`
}

// WeaponSnapshot is the active weapon as the HUD shows it.
type WeaponSnapshot struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Ammo      string `json:"ammo"`
	Reloading bool   `json:"reloading"`
}

// EnemySnapshot is one enemy.
type EnemySnapshot struct {
	ID        string     `json:"id"`
	Archetype string     `json:"archetype"`
	State     string     `json:"state"`
	Position  mgl64.Vec3 `json:"position"`
	Facing    float64    `json:"facing"`
	Health    float64    `json:"health"`
	MaxHealth float64    `json:"maxHealth"`
}

// ProjectileSnapshot is one projectile in flight.
type ProjectileSnapshot struct {
	ID       string     `json:"id"`
	Weapon   string     `json:"weapon"`
	Position mgl64.Vec3 `json:"position"`
}

// Snapshot copies the current state. The result shares nothing with the
// simulation.
func (s *Sim) Snapshot() Snapshot {
	rot := s.Player.Rotation()
	w := s.Armory.CurrentWeapon()
	snap := Snapshot{
		Tick:       s.tick,
		Time:       s.Scheduler.Now(),
		State:      s.Session.State().String(),
		Difficulty: s.Session.Difficulty().String(),
		Score:      s.Session.Score(),
		Elapsed:    s.Session.Elapsed(),
		Kills:      s.Enemies.Killed(),
		Player: PlayerSnapshot{
			Position:  s.Player.Position(),
			Yaw:       rot.Yaw,
			Pitch:     rot.Pitch,
			Health:    s.Player.Health(),
			MaxHealth: s.Player.MaxHealth(),
		},
		Weapon: WeaponSnapshot{
			Kind:      w.Kind.String(),
			Name:      w.Name,
			Ammo:      w.Ammo.String(),
			Reloading: w.Reloading,
		},
		Enemies:     make([]EnemySnapshot, 0, len(s.Enemies.Enemies())),
		Projectiles: make([]ProjectileSnapshot, 0, len(s.Armory.Projectiles())),
	}
	for _, e := range s.Enemies.Enemies() {
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			ID:        e.ID,
			Archetype: e.Archetype.String(),
			State:     e.State.String(),
			Position:  e.Position,
			Facing:    e.Facing,
			Health:    e.Health,
			MaxHealth: e.MaxHealth,
		})
	}
	for _, p := range s.Armory.Projectiles() {
		snap.Projectiles = append(snap.Projectiles, ProjectileSnapshot{
			ID:       p.ID,
			Weapon:   p.Weapon.String(),
			Position: p.Position,
		})
	}
	return snap
}
