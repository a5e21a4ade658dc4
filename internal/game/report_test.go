package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0, Accuracy(0, 0))
	assert.Equal(t, 0, Accuracy(5, 0))
	assert.Equal(t, 33, Accuracy(1, 3))
	assert.Equal(t, 67, Accuracy(2, 3))
	assert.Equal(t, 100, Accuracy(4, 4))
}

func TestRating(t *testing.T) {
	tests := []struct {
		acc, kills int
		want       string
	}{
		{90, 25, "LEGENDARY HUNTER"},
		{80, 20, "LEGENDARY HUNTER"},
		{90, 19, "SEASONED RANCHER"},
		{60, 15, "SEASONED RANCHER"},
		{45, 30, "DECENT SHOT"},
		{25, 5, "ROOKIE HUNTER"},
		{100, 4, "CITY SLICKER"},
		{10, 50, "CITY SLICKER"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rating(tt.acc, tt.kills), "acc=%d kills=%d", tt.acc, tt.kills)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "0:00", FormatClock(0))
	assert.Equal(t, "0:59", FormatClock(59.9))
	assert.Equal(t, "2:05", FormatClock(125.7))
	assert.Equal(t, "0:00", FormatClock(-3))
}

func TestFormatClockAfterSummedFrames(t *testing.T) {
	elapsed := 0.0
	for i := 0; i < 7200; i++ {
		elapsed += FrameDelta
	}
	t.Logf("7200 frames sum to %.12f", elapsed)
	assert.Equal(t, "2:00", FormatClock(elapsed))

	ts := NewTestSim(WithTestSeed(1))
	ts.RunSeconds(120)
	assert.Equal(t, "2:00", FormatClock(ts.Sim.Session.Elapsed()))
	assert.Contains(t, ts.Sim.Report().String(), "Time:         2:00")
}

func TestReportString(t *testing.T) {
	r := Report{Score: 120, Elapsed: 75, Kills: 6, Spawned: 9, ShotsFired: 12, Accuracy: 50, Rating: "ROOKIE HUNTER", Difficulty: DifficultyHard}
	out := r.String()
	assert.Contains(t, out, "Difficulty:   HARD")
	assert.Contains(t, out, "Time:         1:15")
	assert.Contains(t, out, "Kills:        6 of 9 spawned")
	assert.Contains(t, out, "Accuracy:     50%")
	assert.Contains(t, out, "Rating:       ROOKIE HUNTER")
}

func TestQuipMatchesRating(t *testing.T) {
	for _, rating := range []string{"LEGENDARY HUNTER", "SEASONED RANCHER", "DECENT SHOT", "ROOKIE HUNTER", "CITY SLICKER"} {
		for seed := int64(-4); seed <= 4; seed++ {
			q := Quip(rating, seed)
			assert.Contains(t, ratingQuips[rating], q, "rating %s seed %d", rating, seed)
			assert.Equal(t, q, Quip(rating, seed), "same seed, same line")
		}
	}
	assert.Contains(t, ratingQuips["CITY SLICKER"], Quip("MYSTERY", 3))
}

func TestReportCarriesQuip(t *testing.T) {
	ts := NewTestSim(WithTestSeed(2))
	r := ts.Sim.Report()
	assert.Equal(t, "CITY SLICKER", r.Rating)
	assert.Equal(t, "Time to head back to the city!", r.Quip)
	assert.Contains(t, r.String(), "\"Time to head back to the city!\"")
}
