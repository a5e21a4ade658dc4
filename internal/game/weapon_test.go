package game_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cojovi/ReplitRanchDefense/internal/game"
)

type armoryFixture struct {
	a      *game.Armory
	sched  *game.Scheduler
	events []game.Event
}

func newArmoryFixture(t *testing.T) *armoryFixture {
	t.Helper()
	tun := game.DefaultTuning()
	f := &armoryFixture{sched: game.NewScheduler()}
	f.a = game.NewArmory(tun.Weapons, tun.Projectile, game.Deps{
		Log:       zerolog.Nop(),
		Scheduler: f.sched,
		RNG:       rand.New(rand.NewSource(3)),
		Notify:    game.NotifierFunc(func(e game.Event) { f.events = append(f.events, e) }),
	})
	return f
}

func (f *armoryFixture) count(kind game.EventKind) int {
	n := 0
	for _, e := range f.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (f *armoryFixture) tick(dt float64) {
	f.sched.Advance(dt)
	f.sched.RunDue()
}

var aimNorth = mgl64.Vec3{0, 0, -1}

func TestAmmo(t *testing.T) {
	inf := game.UnlimitedAmmo()
	assert.True(t, inf.Unlimited())
	assert.True(t, inf.Available())
	assert.True(t, inf.Full())
	assert.Equal(t, "∞", inf.String())

	a := game.BoundedAmmo(12, 8)
	assert.Equal(t, 8, a.Count(), "clamped to capacity")
	assert.Equal(t, "8/8", a.String())
	assert.False(t, game.BoundedAmmo(0, 3).Available())
	assert.Equal(t, 0, game.BoundedAmmo(-2, 3).Count())
}

func TestParseWeaponKind(t *testing.T) {
	k, ok := game.ParseWeaponKind(" TNT ")
	require.True(t, ok)
	assert.Equal(t, game.WeaponExplosive, k)
	_, ok = game.ParseWeaponKind("bow")
	assert.False(t, ok)
}

func TestArmoryStockTable(t *testing.T) {
	f := newArmoryFixture(t)
	rifle := f.a.Weapon(game.WeaponRifle)
	shotgun := f.a.Weapon(game.WeaponShotgun)
	tnt := f.a.Weapon(game.WeaponExplosive)

	assert.Equal(t, game.WeaponRifle, f.a.Current())
	assert.True(t, rifle.Unlocked)
	assert.True(t, rifle.Ammo.Unlimited())
	assert.Equal(t, 25.0, rifle.Damage)
	assert.InDelta(t, 1.0, rifle.MaxLife(), 1e-12)

	assert.False(t, shotgun.Unlocked)
	assert.Equal(t, 8, shotgun.Ammo.Count())
	assert.Equal(t, 8, shotgun.Pellets)
	assert.InDelta(t, 30.0/80.0, shotgun.MaxLife(), 1e-12)

	assert.False(t, tnt.Unlocked)
	assert.Equal(t, 3, tnt.Ammo.Max())
	assert.Equal(t, 100.0, tnt.Damage)
	assert.InDelta(t, 50.0/30.0, tnt.MaxLife(), 1e-12)
}

func TestArmoryRifleFire(t *testing.T) {
	f := newArmoryFixture(t)
	for i := 0; i < 20; i++ {
		require.Equal(t, 1, f.a.Fire(mgl64.Vec3{0, 1.7, 0}, aimNorth))
	}
	assert.True(t, f.a.CurrentWeapon().Ammo.Unlimited(), "unlimited ammo is never spent")
	assert.Equal(t, 20, f.a.ShotsFired())
	assert.Len(t, f.a.Projectiles(), 20)

	p := f.a.Projectiles()[0]
	assert.Equal(t, aimNorth, p.Direction)
	assert.Equal(t, 100.0, p.Speed)
	assert.Zero(t, p.Life)

	assert.False(t, f.a.Reload(), "unlimited weapons do not reload")
	assert.Zero(t, f.count(game.EventReloadStarted))
}

func TestArmoryFireRejectsBadAim(t *testing.T) {
	f := newArmoryFixture(t)
	assert.Zero(t, f.a.Fire(mgl64.Vec3{}, mgl64.Vec3{}))
	assert.Zero(t, f.a.Fire(mgl64.Vec3{math.NaN(), 0, 0}, aimNorth))
	assert.Zero(t, f.a.ShotsFired())
	assert.Empty(t, f.a.Projectiles())
}

func TestArmorySwitchAndUnlock(t *testing.T) {
	f := newArmoryFixture(t)
	assert.False(t, f.a.Switch(game.WeaponShotgun), "locked")
	assert.Equal(t, game.WeaponRifle, f.a.Current())

	assert.True(t, f.a.Unlock(game.WeaponShotgun))
	assert.False(t, f.a.Unlock(game.WeaponShotgun), "unlock reports only the first time")
	assert.True(t, f.a.Switch(game.WeaponShotgun))
	assert.Equal(t, game.WeaponShotgun, f.a.Current())
	assert.Equal(t, 1, f.count(game.EventWeaponUnlocked))
	assert.Equal(t, 1, f.count(game.EventWeaponSwitched))
}

func TestArmoryUnlockForKills(t *testing.T) {
	f := newArmoryFixture(t)
	assert.Empty(t, f.a.UnlockForKills(4))
	assert.Equal(t, []game.WeaponKind{game.WeaponShotgun}, f.a.UnlockForKills(5))
	assert.Empty(t, f.a.UnlockForKills(6))
	assert.Equal(t, []game.WeaponKind{game.WeaponExplosive}, f.a.UnlockForKills(15))
	assert.True(t, f.a.Weapon(game.WeaponShotgun).Unlocked, "unlocks are monotone")
}

func TestArmoryShotgunSpread(t *testing.T) {
	f := newArmoryFixture(t)
	f.a.Unlock(game.WeaponShotgun)
	f.a.Switch(game.WeaponShotgun)

	aim := game.Rotation{Yaw: 0.7, Pitch: 0.2}.Forward()
	require.Equal(t, 8, f.a.Fire(mgl64.Vec3{0, 1.7, 0}, aim))
	assert.Equal(t, 7, f.a.CurrentWeapon().Ammo.Count())
	assert.Equal(t, 1, f.a.ShotsFired(), "one trigger pull")

	maxAngle := f.a.CurrentWeapon().MaxSpreadAngle()
	spread := false
	for _, p := range f.a.Projectiles() {
		assert.InDelta(t, 1.0, p.Direction.Len(), 1e-9)
		angle := math.Acos(math.Min(1, p.Direction.Dot(aim)))
		assert.LessOrEqual(t, angle, maxAngle+1e-9)
		assert.InDelta(t, 0.375, p.MaxLife, 1e-12)
		assert.Equal(t, 15.0, p.Damage)
		if angle > 1e-6 {
			spread = true
		}
	}
	assert.True(t, spread, "pellets are perturbed")
}

func TestArmoryNoFireWithoutAmmo(t *testing.T) {
	f := newArmoryFixture(t)
	f.a.Unlock(game.WeaponShotgun)
	f.a.Switch(game.WeaponShotgun)

	for i := 0; i < 8; i++ {
		require.Equal(t, 8, f.a.Fire(mgl64.Vec3{0, 1.7, 0}, aimNorth))
	}
	assert.Zero(t, f.a.CurrentWeapon().Ammo.Count())
	assert.False(t, f.a.CanFire())

	before := len(f.a.Projectiles())
	assert.Zero(t, f.a.Fire(mgl64.Vec3{0, 1.7, 0}, aimNorth))
	assert.Len(t, f.a.Projectiles(), before)
	assert.Zero(t, f.a.CurrentWeapon().Ammo.Count(), "ammo never goes negative")
	assert.Equal(t, 8, f.a.ShotsFired())
}

func TestArmoryReloadCompletesOnce(t *testing.T) {
	f := newArmoryFixture(t)
	f.a.Unlock(game.WeaponShotgun)
	f.a.Switch(game.WeaponShotgun)
	assert.False(t, f.a.Reload(), "full magazine")

	f.a.Fire(mgl64.Vec3{0, 1.7, 0}, aimNorth)
	require.True(t, f.a.Reload())
	assert.False(t, f.a.Reload(), "already reloading")
	assert.False(t, f.a.CanFire())
	assert.Zero(t, f.a.Fire(mgl64.Vec3{0, 1.7, 0}, aimNorth))

	f.tick(2.5)
	assert.True(t, f.a.CurrentWeapon().Reloading)
	f.tick(0.5)
	assert.False(t, f.a.CurrentWeapon().Reloading)
	assert.Equal(t, 8, f.a.CurrentWeapon().Ammo.Count())
	assert.True(t, f.a.CanFire())

	f.tick(10)
	assert.Equal(t, 1, f.count(game.EventReloadStarted))
	assert.Equal(t, 1, f.count(game.EventReloadFinished))
}

func TestArmoryReloadFinishesAfterSwitchingAway(t *testing.T) {
	f := newArmoryFixture(t)
	f.a.Unlock(game.WeaponShotgun)
	f.a.Switch(game.WeaponShotgun)
	f.a.Fire(mgl64.Vec3{0, 1.7, 0}, aimNorth)
	f.a.Reload()
	f.a.Switch(game.WeaponRifle)

	f.tick(3)
	sg := f.a.Weapon(game.WeaponShotgun)
	assert.False(t, sg.Reloading)
	assert.Equal(t, 8, sg.Ammo.Count())
}

func TestArmoryInstantReload(t *testing.T) {
	f := newArmoryFixture(t)
	f.a.Unlock(game.WeaponExplosive)
	f.a.Switch(game.WeaponExplosive)
	f.a.Fire(mgl64.Vec3{0, 1.7, 0}, aimNorth)
	require.True(t, f.a.Reload())

	f.tick(0.016)
	assert.Equal(t, 3, f.a.CurrentWeapon().Ammo.Count())
}

func TestArmoryResetCancelsReload(t *testing.T) {
	f := newArmoryFixture(t)
	f.a.Unlock(game.WeaponShotgun)
	f.a.Switch(game.WeaponShotgun)
	f.a.Fire(mgl64.Vec3{0, 1.7, 0}, aimNorth)
	f.a.Reload()

	f.a.Reset()
	assert.Zero(t, f.sched.Pending())
	assert.Equal(t, game.WeaponRifle, f.a.Current())
	assert.False(t, f.a.Weapon(game.WeaponShotgun).Unlocked)
	assert.Empty(t, f.a.Projectiles())
	assert.Zero(t, f.a.ShotsFired())

	f.tick(5)
	assert.Zero(t, f.count(game.EventReloadFinished))
}
