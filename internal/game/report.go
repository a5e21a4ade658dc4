package game

import (
	"fmt"
	"math"
	"strings"
)

// Rating thresholds, best first. A tier needs both its accuracy and its
// kill count.
var ratingTiers = []struct {
	accuracy int
	kills    int
	title    string
}{
	{80, 20, "LEGENDARY HUNTER"},
	{60, 15, "SEASONED RANCHER"},
	{40, 10, "DECENT SHOT"},
	{20, 5, "ROOKIE HUNTER"},
}

const lowestRating = "CITY SLICKER"

// ratingQuips are the game-over one-liners for each rating.
var ratingQuips = map[string][]string{
	"LEGENDARY HUNTER": {
		"That'll do, pig! That'll do!",
		"Time to chew bubblegum and cull hogs... and I'm all outta gum!",
		"Groovy, baby!",
	},
	"SEASONED RANCHER": {
		"Not bad for a day's work!",
		"These hogs picked the wrong ranch!",
		"Yee-haw! That's how we do it in Texas!",
	},
	"DECENT SHOT": {
		"Could use some target practice!",
		"Better than nothin', I reckon.",
		"At least the cattle are safe!",
	},
	"ROOKIE HUNTER": {
		"Might want to stick to herdin' cattle.",
		"Those hogs ain't gonna fear you anytime soon.",
		"Better luck next time, partner.",
	},
	lowestRating: {
		"Maybe try a different profession?",
		"The hogs are laughing at you.",
		"Time to head back to the city!",
	},
}

// Quip picks the one-liner for rating. The pick is keyed on seed so a
// match's report reads the same every time it is drawn. Unknown ratings
// use the lowest tier's lines.
func Quip(rating string, seed int64) string {
	lines, ok := ratingQuips[rating]
	if !ok {
		lines = ratingQuips[lowestRating]
	}
	i := seed % int64(len(lines))
	if i < 0 {
		i += int64(len(lines))
	}
	return lines[i]
}

// Report is the end-of-session summary.
type Report struct {
	Score      int
	Elapsed    float64
	Kills      int
	Spawned    int
	ShotsFired int
	Accuracy   int // percent, kills per shot fired
	Rating     string
	Quip       string
	Difficulty Difficulty
	Seed       int64
}

// Accuracy returns kills per shot as a rounded percentage. No shots is 0.
func Accuracy(kills, shots int) int {
	if shots <= 0 {
		return 0
	}
	return int(math.Round(float64(kills) / float64(shots) * 100))
}

// Rating returns the performance title for an accuracy and kill count.
func Rating(accuracy, kills int) string {
	for _, t := range ratingTiers {
		if accuracy >= t.accuracy && kills >= t.kills {
			return t.title
		}
	}
	return lowestRating
}

// clockEpsilon absorbs the error summed frame deltas accumulate, so 7200
// steps of 1/60 s read as 2:00.
const clockEpsilon = 1e-6

// FormatClock renders seconds as m:ss, truncating to whole seconds.
func FormatClock(seconds float64) string {
	if seconds < 0 || !finite(seconds) {
		seconds = 0
	}
	total := int(math.Floor(seconds + clockEpsilon))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Report summarises the current session.
func (s *Sim) Report() Report {
	kills := s.Enemies.Killed()
	shots := s.Armory.ShotsFired()
	acc := Accuracy(kills, shots)
	rating := Rating(acc, kills)
	return Report{
		Score:      s.Session.Score(),
		Elapsed:    s.Session.Elapsed(),
		Kills:      kills,
		Spawned:    s.Enemies.Spawned(),
		ShotsFired: shots,
		Accuracy:   acc,
		Rating:     rating,
		Quip:       Quip(rating, s.seed),
		Difficulty: s.Session.Difficulty(),
		Seed:       s.seed,
	}
}

// String formats the report for the clipboard and the terminal.
func (r Report) String() string {
	var sb strings.Builder
	sb.WriteString("=== RANCH DEFENSE REPORT ===\n")
	fmt.Fprintf(&sb, "Difficulty:   %s\n", strings.ToUpper(r.Difficulty.String()))
	fmt.Fprintf(&sb, "Score:        %d\n", r.Score)
	fmt.Fprintf(&sb, "Time:         %s\n", FormatClock(r.Elapsed))
	fmt.Fprintf(&sb, "Kills:        %d of %d spawned\n", r.Kills, r.Spawned)
	fmt.Fprintf(&sb, "Shots fired:  %d\n", r.ShotsFired)
	fmt.Fprintf(&sb, "Accuracy:     %d%%\n", r.Accuracy)
	fmt.Fprintf(&sb, "Rating:       %s\n", r.Rating)
	if r.Quip != "" {
		fmt.Fprintf(&sb, "\"%s\"\n", r.Quip)
	}
	return sb.String()
}
