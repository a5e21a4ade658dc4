package game

import (
	"fmt"
	"math"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-pressure reports (~10s at 60TPS).
const reportWindowTicks = 600

// reportIntervalTicks is how often the harness samples (~1s at 60TPS).
const reportIntervalTicks = 60

// PressureReport is one sample of how hard the ranch is being pushed.
type PressureReport struct {
	Tick int

	Live       int // enemies not yet dead
	Charging   int
	Patrolling int
	Dead       int // corpses awaiting removal
	Boars      int // live boars
	Tuskers    int // live tuskers

	NearestEnemy float64 // distance to the closest live enemy; +Inf when none
	PlayerHealth float64
	Projectiles  int
	Score        int
	Kills        int
}

// SimReporter samples a Sim periodically and summarises sliding windows.
type SimReporter struct {
	history     []PressureReport
	windowTicks int
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{windowTicks: windowTicks}
}

// Collect records one sample of s at tick.
func (r *SimReporter) Collect(tick int, s *Sim) {
	rpt := PressureReport{
		Tick:         tick,
		NearestEnemy: math.Inf(1),
		PlayerHealth: s.Player.Health(),
		Projectiles:  len(s.Armory.Projectiles()),
		Score:        s.Session.Score(),
		Kills:        s.Enemies.Killed(),
	}
	pos := s.Player.Position()
	for _, e := range s.Enemies.Enemies() {
		switch e.State {
		case EnemyCharging:
			rpt.Charging++
		case EnemyPatrolling:
			rpt.Patrolling++
		case EnemyDead:
			rpt.Dead++
			continue
		}
		rpt.Live++
		if e.Archetype == ArchetypeTusker {
			rpt.Tuskers++
		} else {
			rpt.Boars++
		}
		if d := e.Position.Sub(pos).Len(); d < rpt.NearestEnemy {
			rpt.NearestEnemy = d
		}
	}
	r.history = append(r.history, rpt)
}

// Latest returns the most recent sample, or nil if none collected yet.
func (r *SimReporter) Latest() *PressureReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns every sample in order.
func (r *SimReporter) History() []PressureReport { return r.history }

// Reset drops all samples.
func (r *SimReporter) Reset() { r.history = r.history[:0] }

// WindowSummary averages the samples within windowTicks of the latest one.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []PressureReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}
	if len(window) == 0 {
		return nil
	}

	n := float64(len(window))
	newest, oldest := window[0], window[len(window)-1]
	wr := &WindowReport{
		FromTick:        oldest.Tick,
		ToTick:          newest.Tick,
		SampleCount:     len(window),
		MinPlayerHealth: math.Inf(1),
		KillsInWindow:   newest.Kills - oldest.Kills,
		ScoreInWindow:   newest.Score - oldest.Score,
	}
	nearestSamples := 0
	for _, rpt := range window {
		wr.AvgLive += float64(rpt.Live)
		wr.AvgCharging += float64(rpt.Charging)
		wr.AvgPatrolling += float64(rpt.Patrolling)
		wr.AvgTuskers += float64(rpt.Tuskers)
		wr.AvgProjectiles += float64(rpt.Projectiles)
		if !math.IsInf(rpt.NearestEnemy, 1) {
			wr.AvgNearestEnemy += rpt.NearestEnemy
			nearestSamples++
		}
		wr.MinPlayerHealth = math.Min(wr.MinPlayerHealth, rpt.PlayerHealth)
	}
	wr.AvgLive /= n
	wr.AvgCharging /= n
	wr.AvgPatrolling /= n
	wr.AvgTuskers /= n
	wr.AvgProjectiles /= n
	if nearestSamples > 0 {
		wr.AvgNearestEnemy /= float64(nearestSamples)
	} else {
		wr.AvgNearestEnemy = math.Inf(1)
	}
	return wr
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	AvgLive, AvgCharging, AvgPatrolling float64
	AvgTuskers                          float64
	AvgNearestEnemy                     float64 // +Inf when no enemy was ever live
	AvgProjectiles                      float64
	MinPlayerHealth                     float64

	KillsInWindow int
	ScoreInWindow int
}

// Pressure classifies the window from the player's point of view.
func (wr *WindowReport) Pressure() string {
	if wr == nil {
		return "quiet"
	}
	return pressureLabel(wr.AvgLive, wr.AvgCharging, wr.AvgNearestEnemy)
}

// Pressure classifies a single sample.
func (r PressureReport) Pressure() string {
	return pressureLabel(float64(r.Live), float64(r.Charging), r.NearestEnemy)
}

func pressureLabel(live, charging, nearest float64) string {
	switch {
	case live == 0:
		return "quiet"
	case charging >= 2 || nearest < 5:
		return "swarmed"
	case charging >= 0.5:
		return "engaged"
	default:
		return "watchful"
	}
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Pressure Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "  hogs:     live=%.1f charging=%.1f patrolling=%.1f tuskers=%.1f\n",
		wr.AvgLive, wr.AvgCharging, wr.AvgPatrolling, wr.AvgTuskers)
	nearest := "n/a"
	if !math.IsInf(wr.AvgNearestEnemy, 1) {
		nearest = fmt.Sprintf("%.1fm", wr.AvgNearestEnemy)
	}
	fmt.Fprintf(&sb, "  nearest:  %s  projectiles=%.1f\n", nearest, wr.AvgProjectiles)
	fmt.Fprintf(&sb, "  player:   min_health=%.0f  kills=%d  score=+%d\n",
		wr.MinPlayerHealth, wr.KillsInWindow, wr.ScoreInWindow)
	fmt.Fprintf(&sb, "  pressure: %s\n", wr.Pressure())
	return sb.String()
}
