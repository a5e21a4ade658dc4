package view

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cojovi/ReplitRanchDefense/internal/game"
)

func newTestView() *Game {
	return &Game{sim: game.New(game.DefaultTuning()), width: 960, height: 640}
}

func TestRadarPointFollowsYaw(t *testing.T) {
	g := newTestView()
	scale := 320.0 / radarRange
	origin := [3]float64{}

	cases := []struct {
		name   string
		pos    [3]float64
		yaw    float64
		wx, wy float64
	}{
		{"ahead at yaw 0", [3]float64{0, 0, -30}, 0, 480, 320 - 30*scale},
		{"right at yaw 0", [3]float64{30, 0, 0}, 0, 480 + 30*scale, 320},
		{"behind at yaw 0", [3]float64{0, 0, 30}, 0, 480, 320 + 30*scale},
		{"ahead after quarter turn", [3]float64{-30, 0, 0}, math.Pi / 2, 480, 320 - 30*scale},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y := g.radarPoint(c.pos, origin, c.yaw)
			assert.InDelta(t, c.wx, float64(x), 1e-3)
			assert.InDelta(t, c.wy, float64(y), 1e-3)
		})
	}
}

func TestRadarPointIsPlayerRelative(t *testing.T) {
	g := newTestView()
	x, y := g.radarPoint([3]float64{10, 0, 5}, [3]float64{10, 1.7, 5}, 1.3)
	assert.InDelta(t, 480, float64(x), 1e-3)
	assert.InDelta(t, 320, float64(y), 1e-3)
}

func TestSlotLineMarksCurrentAndLocked(t *testing.T) {
	g := newTestView()
	assert.Equal(t, ">1 rifle x2 shotgun x3 explosive", g.slotLine())

	g.sim.Armory.Unlock(game.WeaponShotgun)
	g.sim.Armory.Switch(game.WeaponShotgun)
	assert.Equal(t, "1 rifle >2 shotgun x3 explosive", g.slotLine())
}

func TestLayoutIsFixed(t *testing.T) {
	g := newTestView()
	w, h := g.Layout(1920, 1080)
	assert.Equal(t, 960, w)
	assert.Equal(t, 640, h)
}

func TestGameOverLinesShowRatingQuip(t *testing.T) {
	sim := game.New(game.DefaultTuning(), game.WithSeed(4), game.WithoutSpawner())
	sim.Start()
	sim.End()
	g := &Game{sim: sim, width: 960, height: 640}

	lines := g.gameOverLines()
	r := sim.Report()
	assert.Equal(t, "=== RANCH DEFENSE REPORT ===", lines[0])
	assert.Contains(t, lines, "Rating:       "+r.Rating)
	assert.Contains(t, lines, `"`+r.Quip+`"`)
	assert.Equal(t, "ENTER restart   C copy report   BACKSPACE menu", lines[len(lines)-1])
}
