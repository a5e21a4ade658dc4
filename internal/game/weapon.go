package game

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WeaponKind is a weapon archetype.
type WeaponKind int

const (
	WeaponRifle     WeaponKind = iota // single precise round, unlimited ammo
	WeaponShotgun                     // spread of pellets
	WeaponExplosive                   // slow high-damage bundle
)

// WeaponKinds lists every archetype in slot order.
var WeaponKinds = [...]WeaponKind{WeaponRifle, WeaponShotgun, WeaponExplosive}

func (k WeaponKind) String() string {
	switch k {
	case WeaponRifle:
		return "rifle"
	case WeaponShotgun:
		return "shotgun"
	case WeaponExplosive:
		return "explosive"
	default:
		return "unknown"
	}
}

// ParseWeaponKind maps a name ("rifle", "shotgun", "explosive" or "tnt")
// to its kind.
func ParseWeaponKind(s string) (WeaponKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rifle":
		return WeaponRifle, true
	case "shotgun":
		return WeaponShotgun, true
	case "explosive", "tnt":
		return WeaponExplosive, true
	default:
		return 0, false
	}
}

// Ammo is either unlimited or a count bounded by a capacity.
type Ammo struct {
	unlimited bool
	count     int
	max       int
}

// UnlimitedAmmo never runs out.
func UnlimitedAmmo() Ammo { return Ammo{unlimited: true} }

// BoundedAmmo holds count rounds of max, clamped into [0, max].
func BoundedAmmo(count, max int) Ammo {
	if max < 0 {
		max = 0
	}
	if count < 0 {
		count = 0
	}
	if count > max {
		count = max
	}
	return Ammo{count: count, max: max}
}

func (a Ammo) Unlimited() bool { return a.unlimited }
func (a Ammo) Count() int      { return a.count }
func (a Ammo) Max() int        { return a.max }

// Available reports whether a round can be spent.
func (a Ammo) Available() bool { return a.unlimited || a.count > 0 }

// Full reports whether a reload would gain nothing.
func (a Ammo) Full() bool { return a.unlimited || a.count >= a.max }

func (a Ammo) spend() Ammo {
	if !a.unlimited && a.count > 0 {
		a.count--
	}
	return a
}

func (a Ammo) refill() Ammo {
	if !a.unlimited {
		a.count = a.max
	}
	return a
}

func (a Ammo) String() string {
	if a.unlimited {
		return "∞"
	}
	return fmt.Sprintf("%d/%d", a.count, a.max)
}

// Weapon is one entry of the armory. Renderers may read it; only the
// Armory mutates it.
type Weapon struct {
	Kind            WeaponKind
	Name            string
	Damage          float64
	Ammo            Ammo
	FireInterval    float64
	ReloadTime      float64
	Reloading       bool
	Unlocked        bool
	Range           float64
	ProjectileSpeed float64
	Pellets         int
	SpreadLateral   float64
	SpreadVertical  float64
	UnlockKills     int

	reload TimerID
}

func newWeapon(kind WeaponKind, t WeaponTuning) *Weapon {
	ammo := UnlimitedAmmo()
	if !t.Unlimited {
		ammo = BoundedAmmo(t.MaxAmmo, t.MaxAmmo)
	}
	pellets := t.Pellets
	if pellets < 1 {
		pellets = 1
	}
	return &Weapon{
		Kind:            kind,
		Name:            t.Name,
		Damage:          t.Damage,
		Ammo:            ammo,
		FireInterval:    t.FireInterval,
		ReloadTime:      t.ReloadTime,
		Unlocked:        t.Unlocked,
		Range:           t.Range,
		ProjectileSpeed: t.ProjectileSpeed,
		Pellets:         pellets,
		SpreadLateral:   t.SpreadLateral,
		SpreadVertical:  t.SpreadVertical,
		UnlockKills:     t.UnlockKills,
	}
}

// MaxLife is how long a projectile from this weapon lives: range ÷ speed.
func (w *Weapon) MaxLife() float64 {
	if w.ProjectileSpeed <= 0 {
		return 0
	}
	return w.Range / w.ProjectileSpeed
}

// MaxSpreadAngle is the widest angle, in radians, a pellet may deviate
// from the aim direction.
func (w *Weapon) MaxSpreadAngle() float64 {
	return math.Atan(math.Hypot(w.SpreadLateral/2, w.SpreadVertical/2))
}

// Armory holds the weapon table, the active weapon and the projectiles in
// flight.
type Armory struct {
	weapons     map[WeaponKind]*Weapon
	current     WeaponKind
	projectiles []*Projectile
	shotsFired  int

	tuning  WeaponsTuning
	proj    ProjectileTuning
	sched   *Scheduler
	rng     *rand.Rand
	notify  Notifier
	log     zerolog.Logger
	metrics *simMetrics
}

// NewArmory builds the weapon table from tuning with the rifle in hand.
func NewArmory(t WeaponsTuning, pt ProjectileTuning, d Deps) *Armory {
	d = d.withDefaults()
	a := &Armory{
		tuning:  t,
		proj:    pt,
		sched:   d.Scheduler,
		rng:     d.RNG,
		notify:  d.Notify,
		log:     d.Log.With().Str("component", "armory").Logger(),
		metrics: d.metrics,
	}
	a.rebuild()
	return a
}

func (a *Armory) rebuild() {
	a.weapons = make(map[WeaponKind]*Weapon, len(WeaponKinds))
	for _, k := range WeaponKinds {
		a.weapons[k] = newWeapon(k, a.tuning.Weapon(k))
	}
	a.current = WeaponRifle
	a.projectiles = nil
	a.shotsFired = 0
}

// Current returns the active weapon kind.
func (a *Armory) Current() WeaponKind { return a.current }

// CurrentWeapon returns the active weapon.
func (a *Armory) CurrentWeapon() *Weapon { return a.weapons[a.current] }

// Weapon returns the entry for kind, or nil for an unknown kind.
func (a *Armory) Weapon(kind WeaponKind) *Weapon { return a.weapons[kind] }

// ShotsFired counts accepted trigger pulls since the last reset.
func (a *Armory) ShotsFired() int { return a.shotsFired }

// Projectiles returns the projectiles in flight. The slice is owned by the
// armory.
func (a *Armory) Projectiles() []*Projectile { return a.projectiles }

// Switch makes kind the active weapon. Locked or unknown weapons are refused.
func (a *Armory) Switch(kind WeaponKind) bool {
	w, ok := a.weapons[kind]
	if !ok || !w.Unlocked {
		a.log.Debug().Stringer("weapon", kind).Msg("switch refused: locked")
		return false
	}
	if kind == a.current {
		return true
	}
	a.current = kind
	a.notify.Notify(Event{Kind: EventWeaponSwitched, Time: a.sched.Now(), Weapon: kind})
	return true
}

// Unlock makes kind available for the rest of the session. Returns true only
// when the weapon was locked before.
func (a *Armory) Unlock(kind WeaponKind) bool {
	w, ok := a.weapons[kind]
	if !ok || w.Unlocked {
		return false
	}
	w.Unlocked = true
	a.log.Info().Stringer("weapon", kind).Msg("weapon unlocked")
	a.notify.Notify(Event{Kind: EventWeaponUnlocked, Time: a.sched.Now(), Weapon: kind})
	return true
}

// UnlockForKills unlocks every weapon whose kill threshold has been met and
// returns the kinds that were newly unlocked.
func (a *Armory) UnlockForKills(kills int) []WeaponKind {
	var out []WeaponKind
	for _, k := range WeaponKinds {
		w := a.weapons[k]
		if w.UnlockKills > 0 && kills >= w.UnlockKills && a.Unlock(k) {
			out = append(out, k)
		}
	}
	return out
}

// CanFire reports whether a trigger pull would be accepted right now.
func (a *Armory) CanFire() bool {
	w := a.weapons[a.current]
	return w != nil && w.Unlocked && !w.Reloading && w.Ammo.Available()
}

// Fire pulls the trigger from origin along aim and returns how many
// projectiles were spawned. Rejected pulls spawn nothing and spend nothing.
func (a *Armory) Fire(origin, aim mgl64.Vec3) int {
	if !a.CanFire() {
		return 0
	}
	dir := normalizeOrZero(aim)
	if !finiteVec(origin) || dir.Len() == 0 {
		a.log.Warn().Msg("fire rejected: invalid origin or aim")
		return 0
	}

	w := a.weapons[a.current]
	spawned := 0
	if w.Pellets > 1 {
		right := normalizeOrZero(dir.Cross(worldUp))
		if right.Len() == 0 {
			right = mgl64.Vec3{1, 0, 0}
		}
		up := right.Cross(dir)
		for i := 0; i < w.Pellets; i++ {
			lateral := (a.rng.Float64() - 0.5) * w.SpreadLateral
			vertical := (a.rng.Float64() - 0.5) * w.SpreadVertical
			pd := normalizeOrZero(dir.Add(right.Mul(lateral)).Add(up.Mul(vertical)))
			a.spawnProjectile(w, origin, pd)
			spawned++
		}
	} else {
		a.spawnProjectile(w, origin, dir)
		spawned = 1
	}

	w.Ammo = w.Ammo.spend()
	a.shotsFired++
	a.metrics.shot(w.Kind, spawned)
	a.log.Debug().Stringer("weapon", w.Kind).Int("projectiles", spawned).Stringer("ammo", w.Ammo).Msg("fired")
	a.notify.Notify(Event{Kind: EventWeaponFired, Time: a.sched.Now(), Weapon: w.Kind, Count: spawned, Position: origin})
	return spawned
}

func (a *Armory) spawnProjectile(w *Weapon, origin, dir mgl64.Vec3) {
	id, err := uuid.NewRandomFromReader(a.rng)
	if err != nil {
		id = uuid.New()
	}
	a.projectiles = append(a.projectiles, &Projectile{
		ID:        id.String(),
		Weapon:    w.Kind,
		Position:  origin,
		Direction: dir,
		Speed:     w.ProjectileSpeed,
		Damage:    w.Damage,
		MaxLife:   w.MaxLife(),
	})
}

// Reload starts reloading the active weapon. Refused for unlimited or full
// magazines and while a reload is already running. The magazine refills
// ReloadTime seconds later on the logical clock, even if the player has
// switched weapons meanwhile.
func (a *Armory) Reload() bool {
	w := a.weapons[a.current]
	if w == nil || w.Ammo.Full() || w.Reloading {
		return false
	}
	w.Reloading = true
	a.log.Debug().Stringer("weapon", w.Kind).Float64("seconds", w.ReloadTime).Msg("reloading")
	a.notify.Notify(Event{Kind: EventReloadStarted, Time: a.sched.Now(), Weapon: w.Kind})
	w.reload = a.sched.After(w.ReloadTime, func() {
		w.reload = 0
		w.Reloading = false
		w.Ammo = w.Ammo.refill()
		a.notify.Notify(Event{Kind: EventReloadFinished, Time: a.sched.Now(), Weapon: w.Kind, Amount: float64(w.Ammo.Count())})
	})
	return true
}

// Reset restores the stock weapon table, cancels pending reloads and clears
// projectiles in flight.
func (a *Armory) Reset() {
	for _, w := range a.weapons {
		if w.reload != 0 {
			a.sched.Cancel(w.reload)
		}
	}
	a.rebuild()
}
