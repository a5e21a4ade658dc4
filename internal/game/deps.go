package game

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// Deps bundles the ambient collaborators every component receives at
// construction: logging, notification, the shared logical clock and the
// seeded RNG. Components never reach for globals.
type Deps struct {
	Log       zerolog.Logger
	Notify    Notifier
	Scheduler *Scheduler
	RNG       *rand.Rand

	metrics *simMetrics
}

// withDefaults fills nil collaborators so a partially built Deps is usable.
func (d Deps) withDefaults() Deps {
	if d.Notify == nil {
		d.Notify = nopNotifier{}
	}
	if d.Scheduler == nil {
		d.Scheduler = NewScheduler()
	}
	if d.RNG == nil {
		d.RNG = rand.New(rand.NewSource(1)) // #nosec G404 -- game only
	}
	if d.metrics == nil {
		d.metrics = newSimMetrics(nil)
	}
	return d
}

// GameEnder ends the running session. Implemented by *Session.
type GameEnder interface {
	End() bool
}

// PlayerDamager is what enemies may do to the player.
type PlayerDamager interface {
	TakeDamage(amount float64)
}

// Targets is the enemy set projectiles resolve hits against.
type Targets interface {
	Enemies() []*Enemy
	Damage(id string, amount float64) bool
}

// Scorer accumulates points for confirmed hits. Implemented by *Session.
type Scorer interface {
	AddScore(points int) bool
}

//go:generate go tool mockgen -destination=./mocks/collaborators_mock.go -package=mocks . GameEnder,PlayerDamager,Targets,Scorer,Notifier
