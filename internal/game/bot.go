package game

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Boxes the bot backs off on overlap: a charging hog inside this space
// gets room made before the next shot.
var (
	botPersonalSpace = mgl64.Vec3{10, 6, 10}
	botHogBox        = mgl64.Vec3{1, 1, 1}
)

// Bot drives a Sim through its Input the way a player would: it turns toward
// the nearest live enemy with mouse deltas, picks a weapon for the range and
// paces its trigger by the weapon's fire interval. Used by the headless
// report and scenario tests.
type Bot struct {
	Jitter  float64 // aim noise in radians, uniform ±Jitter/2
	trigger Trigger
	rng     *rand.Rand
}

// NewBot returns a bot with its own seeded noise source.
func NewBot(seed int64, jitter float64) *Bot {
	return &Bot{
		Jitter: jitter,
		rng:    rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
	}
}

// Reset forgets trigger pacing between matches.
func (b *Bot) Reset() {
	b.trigger.Reset()
}

// Input decides the next frame's input for s.
func (b *Bot) Input(s *Sim) Input {
	var in Input
	if !s.Session.Playing() || s.Player.IsDead() {
		return in
	}
	target, dist := b.nearest(s)
	if target == nil {
		return in
	}

	pos := s.Player.Position()
	to := target.Position.Sub(pos)
	yaw := math.Atan2(-to[0], -to[2])
	pitch := 0.0
	if dist > 0 {
		pitch = math.Asin(clamp(to[1]/dist, -1, 1))
	}
	if b.Jitter > 0 {
		yaw += (b.rng.Float64() - 0.5) * b.Jitter
		pitch += (b.rng.Float64() - 0.5) * b.Jitter
	}
	sens := s.Player.MouseSensitivity()
	rot := s.Player.Rotation()
	in.LookDX = wrapAngle(rot.Yaw-yaw) / sens
	in.LookDY = (rot.Pitch - pitch) / sens

	in.Slot = b.pickSlot(s, target, dist)
	w := s.Armory.CurrentWeapon()
	if !w.Ammo.Available() && !w.Reloading {
		in.Reload = true
		return in
	}
	if target.State == EnemyCharging && CheckCollision(pos, botPersonalSpace, target.Position, botHogBox) {
		in.Move.Backward = true
	}

	// The step applies the look before firing, so the round leaves along
	// the jittered aim. Hold fire until that ray crosses the hit sphere.
	onTarget := aimCovers(pos, Rotation{Yaw: yaw, Pitch: pitch}, target.Position, s.Tuning.Projectile.HitRadius)

	now := s.Now()
	if onTarget && dist <= w.Range && b.trigger.Ready(now, w.FireInterval) && s.Armory.CanFire() {
		in.Fire = true
		b.trigger.Pull(now)
	}
	return in
}

func (b *Bot) nearest(s *Sim) (*Enemy, float64) {
	var best *Enemy
	bestDist := math.Inf(1)
	pos := s.Player.Position()
	for _, e := range s.Enemies.Enemies() {
		if !e.Alive() {
			continue
		}
		if d := e.Position.Sub(pos).Len(); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, bestDist
}

func (b *Bot) pickSlot(s *Sim, target *Enemy, dist float64) int {
	usable := func(k WeaponKind) bool {
		w := s.Armory.Weapon(k)
		return w.Unlocked && (w.Ammo.Available() || w.Reloading)
	}
	switch {
	case target.Archetype == ArchetypeTusker && dist < 40 && usable(WeaponExplosive):
		return 3
	case dist < 15 && usable(WeaponShotgun):
		return 2
	default:
		return 1
	}
}

// aimCovers reports whether a ray from origin along aim's facing passes
// within radius of center, ahead of the shooter.
func aimCovers(origin mgl64.Vec3, aim Rotation, center mgl64.Vec3, radius float64) bool {
	dir := aim.Forward()
	if center.Sub(origin).Dot(dir) <= 0 {
		return false
	}
	return RayIntersectsSphere(origin, dir, center, radius)
}

// wrapAngle maps a into (-π, π].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
