package game

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/cojovi/ReplitRanchDefense/internal/game"

// Counter names. Hosts reading a MeterProvider look these up.
const (
	MetricShots        = "ranch.weapon.shots"
	MetricProjectiles  = "ranch.projectiles.spawned"
	MetricHits         = "ranch.projectiles.hits"
	MetricKills        = "ranch.enemies.killed"
	MetricPlayerDamage = "ranch.player.damage"
	MetricDropped      = "ranch.entities.dropped"
)

// simMetrics are the OTel counters the simulation feeds. They are no-ops
// unless a meter provider is passed in or installed globally.
type simMetrics struct {
	shots       metric.Int64Counter
	projectiles metric.Int64Counter
	hits        metric.Int64Counter
	kills       metric.Int64Counter
	playerHurt  metric.Float64Counter
	dropped     metric.Int64Counter
}

func meter(mp metric.MeterProvider) metric.Meter {
	if mp == nil {
		return otel.Meter(instrumentationName)
	}
	return mp.Meter(instrumentationName)
}

// newSimMetrics creates the counters on mp, or on the global provider when
// mp is nil. An instrument that fails to register is left nil and skipped.
func newSimMetrics(mp metric.MeterProvider) *simMetrics {
	m := meter(mp)
	sm := &simMetrics{}
	var err error
	if sm.shots, err = m.Int64Counter(MetricShots,
		metric.WithDescription("Accepted trigger pulls")); err != nil {
		sm.shots = nil
	}
	if sm.projectiles, err = m.Int64Counter(MetricProjectiles,
		metric.WithDescription("Projectiles created by fire")); err != nil {
		sm.projectiles = nil
	}
	if sm.hits, err = m.Int64Counter(MetricHits,
		metric.WithDescription("Projectile hits on enemies")); err != nil {
		sm.hits = nil
	}
	if sm.kills, err = m.Int64Counter(MetricKills,
		metric.WithDescription("Enemies credited as killed")); err != nil {
		sm.kills = nil
	}
	if sm.playerHurt, err = m.Float64Counter(MetricPlayerDamage,
		metric.WithDescription("Damage taken by the player")); err != nil {
		sm.playerHurt = nil
	}
	if sm.dropped, err = m.Int64Counter(MetricDropped,
		metric.WithDescription("Malformed entities discarded during the step")); err != nil {
		sm.dropped = nil
	}
	return sm
}

func (sm *simMetrics) shot(kind WeaponKind, pellets int) {
	if sm == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("weapon", kind.String()))
	if sm.shots != nil {
		sm.shots.Add(context.Background(), 1, attrs)
	}
	if sm.projectiles != nil {
		sm.projectiles.Add(context.Background(), int64(pellets), attrs)
	}
}

func (sm *simMetrics) hit(kind WeaponKind) {
	if sm == nil || sm.hits == nil {
		return
	}
	sm.hits.Add(context.Background(), 1, metric.WithAttributes(attribute.String("weapon", kind.String())))
}

func (sm *simMetrics) kill(a Archetype) {
	if sm == nil || sm.kills == nil {
		return
	}
	sm.kills.Add(context.Background(), 1, metric.WithAttributes(attribute.String("archetype", a.String())))
}

func (sm *simMetrics) hurt(amount float64) {
	if sm == nil || sm.playerHurt == nil {
		return
	}
	sm.playerHurt.Add(context.Background(), amount)
}

func (sm *simMetrics) drop(entity string) {
	if sm == nil || sm.dropped == nil {
		return
	}
	sm.dropped.Add(context.Background(), 1, metric.WithAttributes(attribute.String("entity", entity)))
}
