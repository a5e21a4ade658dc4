package game

import "github.com/go-gl/mathgl/mgl64"

// EventKind names a notification raised by the simulation.
type EventKind int

const (
	EventWeaponFired EventKind = iota
	EventWeaponSwitched
	EventWeaponUnlocked
	EventReloadStarted
	EventReloadFinished
	EventProjectileHit
	EventEnemySpawned
	EventEnemyAggro
	EventEnemyKilled
	EventEnemyRemoved
	EventPlayerHit
	EventPlayerHealed
	EventPlayerDied
	EventSessionState
	EventGameOver
	EventMatchStarted
)

var eventKindNames = [...]string{
	EventWeaponFired:    "weapon_fired",
	EventWeaponSwitched: "weapon_switched",
	EventWeaponUnlocked: "weapon_unlocked",
	EventReloadStarted:  "reload_started",
	EventReloadFinished: "reload_finished",
	EventProjectileHit:  "projectile_hit",
	EventEnemySpawned:   "enemy_spawned",
	EventEnemyAggro:     "enemy_aggro",
	EventEnemyKilled:    "enemy_killed",
	EventEnemyRemoved:   "enemy_removed",
	EventPlayerHit:      "player_hit",
	EventPlayerHealed:   "player_healed",
	EventPlayerDied:     "player_died",
	EventSessionState:   "session_state",
	EventGameOver:       "game_over",
	EventMatchStarted:   "match_started",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is a fire-and-forget notification for audio, HUD and logging
// collaborators. Fields not relevant to Kind are left zero.
type Event struct {
	Kind     EventKind
	Time     float64 // logical clock at emission
	EnemyID  string
	Weapon   WeaponKind
	Amount   float64 // damage, heal, ammo or score depending on Kind
	Count    int     // projectiles spawned, kills so far, ...
	Position mgl64.Vec3
	State    LifecycleState
}

// Notifier receives simulation events. Implementations must return
// promptly; the simulation calls Notify inline during the frame step.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

// Notify calls f.
func (f NotifierFunc) Notify(e Event) { f(e) }

// Notifiers fans one event out to several notifiers in order.
type Notifiers []Notifier

// Notify forwards e to every non-nil notifier.
func (ns Notifiers) Notify(e Event) {
	for _, n := range ns {
		if n != nil {
			n.Notify(e)
		}
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}

func orNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
