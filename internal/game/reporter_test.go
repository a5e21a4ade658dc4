package game

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimReporterSamplesEverySecond(t *testing.T) {
	ts := NewTestSim(
		WithTestSeed(7),
		WithReporter(600),
		WithEnemy(ArchetypeBoar, 0, 0, 60),
		WithEnemy(ArchetypeTusker, 0, 0, 10),
	)
	ts.RunTicks(180)

	require.Len(t, ts.Reporter.History(), 3)
	latest := ts.Reporter.Latest()
	require.NotNil(t, latest)
	assert.Equal(t, 180, latest.Tick)
	assert.Equal(t, 2, latest.Live)
	assert.Equal(t, 1, latest.Tuskers)
	assert.GreaterOrEqual(t, latest.Charging, 1, "tusker inside aggro range charges")
	assert.Less(t, latest.NearestEnemy, 10.0)
	t.Logf("latest sample: %+v", *latest)
}

func TestSimReporterNoSamplesWhilePaused(t *testing.T) {
	ts := NewTestSim(WithReporter(600))
	ts.RunTicks(60)
	require.Len(t, ts.Reporter.History(), 1)

	ts.Sim.TogglePause()
	ts.RunTicks(120)
	assert.Len(t, ts.Reporter.History(), 1, "a frozen clock produces no samples")
}

func TestWindowSummaryAveragesRecentSamples(t *testing.T) {
	r := NewSimReporter(120)
	r.history = []PressureReport{
		{Tick: 60, Live: 9, NearestEnemy: 1, PlayerHealth: 10, Kills: 0},
		{Tick: 120, Live: 2, Charging: 1, NearestEnemy: 8, PlayerHealth: 90, Kills: 1, Score: 100},
		{Tick: 180, Live: 0, NearestEnemy: math.Inf(1), PlayerHealth: 80, Kills: 2, Score: 250},
		{Tick: 240, Live: 4, Charging: 2, NearestEnemy: 12, PlayerHealth: 70, Kills: 3, Score: 400},
	}

	wr := r.WindowSummary()
	require.NotNil(t, wr)
	assert.Equal(t, 120, wr.FromTick)
	assert.Equal(t, 240, wr.ToTick)
	assert.Equal(t, 3, wr.SampleCount)
	assert.InDelta(t, 2.0, wr.AvgLive, 1e-9)
	assert.InDelta(t, 1.0, wr.AvgCharging, 1e-9)
	assert.InDelta(t, 10.0, wr.AvgNearestEnemy, 1e-9, "empty samples are skipped")
	assert.Equal(t, 70.0, wr.MinPlayerHealth)
	assert.Equal(t, 2, wr.KillsInWindow)
	assert.Equal(t, 300, wr.ScoreInWindow)
	assert.Equal(t, "engaged", wr.Pressure())

	out := wr.Format()
	t.Log("\n" + out)
	assert.True(t, strings.Contains(out, "T=120..240"))
	assert.True(t, strings.Contains(out, "pressure: engaged"))
}

func TestWindowPressureLabels(t *testing.T) {
	cases := []struct {
		name string
		wr   *WindowReport
		want string
	}{
		{"nil", nil, "quiet"},
		{"empty", &WindowReport{AvgNearestEnemy: math.Inf(1)}, "quiet"},
		{"many charging", &WindowReport{AvgLive: 3, AvgCharging: 2.5, AvgNearestEnemy: 20}, "swarmed"},
		{"close contact", &WindowReport{AvgLive: 1, AvgNearestEnemy: 3}, "swarmed"},
		{"patrols only", &WindowReport{AvgLive: 2, AvgNearestEnemy: 30}, "watchful"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.wr.Pressure())
		})
	}
}

func TestWindowSummaryEmpty(t *testing.T) {
	r := NewSimReporter(0)
	assert.Nil(t, r.WindowSummary())
	assert.Nil(t, r.Latest())
	var wr *WindowReport
	assert.Equal(t, "No data collected yet.\n", wr.Format())
}

func TestPressureReportLabel(t *testing.T) {
	assert.Equal(t, "quiet", PressureReport{NearestEnemy: math.Inf(1)}.Pressure())
	assert.Equal(t, "engaged", PressureReport{Live: 1, Charging: 1, NearestEnemy: 15}.Pressure())
	assert.Equal(t, "watchful", PressureReport{Live: 1, Patrolling: 1, NearestEnemy: 40}.Pressure())
}
