package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/cojovi/ReplitRanchDefense/internal/config"
	"github.com/cojovi/ReplitRanchDefense/internal/game"
	"github.com/cojovi/ReplitRanchDefense/internal/logging"
)

type runStats struct {
	runIndex   int
	seed       int64
	difficulty game.Difficulty

	firstShotTick     int
	firstHitTick      int
	firstKillTick     int
	firstPlayerHit    int
	firstUnlockTick   int
	deathTick         int
	gameOverTick      int
	ticks             int
	survived          bool
	shots             int
	hits              int
	kills             int
	spawned           int
	playerHits        int
	aggroEvents       int
	unlocks           []string
	damageTaken       float64
	report            game.Report
	pressure          *game.WindowReport
	pressureCounts    map[string]int
	weaponShots       map[string]int
	weaponHits        map[string]int
	finalHealth       float64
	finalHealthMax    float64
	finalWeapon       string
	projectilesInAir  int
	liveEnemiesAtStop int
	simLog            *game.SimLog
}

func main() {
	var runs int
	var seconds float64
	var seedBase int64
	var seedStep int64
	var difficulty string
	var jitter float64
	var configDir string
	var tailSeconds float64
	var logLevel string

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.Float64Var(&seconds, "seconds", 180, "simulated seconds per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&difficulty, "difficulty", "normal", "easy, normal or hard")
	flag.Float64Var(&jitter, "jitter", 0.04, "bot aim noise in radians")
	flag.StringVar(&configDir, "config", "", "directory holding ranch.{json,toml,yaml}; empty uses built-in tuning")
	flag.StringVar(&logLevel, "log-level", "warn", "log level for the simulation")
	flag.Float64Var(&tailSeconds, "tail", 0, "print the sim log for the final N simulated seconds of each run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if seconds <= 0 {
		fmt.Println("error: -seconds must be > 0")
		return
	}
	diff, ok := game.ParseDifficulty(difficulty)
	if !ok {
		fmt.Printf("error: unsupported difficulty %q (supported: easy, normal, hard)\n", difficulty)
		return
	}

	tuning := game.DefaultTuning()
	if configDir != "" {
		cfg, err := config.Load(configDir)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		tuning = cfg.Tuning
	}
	log := logging.New(os.Stderr, logLevel, "console")

	ticks := int(seconds/game.FrameDelta + 0.5)
	fmt.Printf("=== Headless Ranch Report ===\n")
	fmt.Printf("difficulty=%s runs=%d seconds=%.0f ticks=%d seed_base=%d seed_step=%d jitter=%.3f\n\n",
		diff, runs, seconds, ticks, seedBase, seedStep, jitter)

	ctx := context.Background()
	provider, reader := newMeter()
	defer func() { _ = provider.Shutdown(ctx) }()

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runMatch(i+1, seed, diff, tuning, ticks, jitter, log, provider)
		all = append(all, stats)
		printRun(stats, int(tailSeconds/game.FrameDelta+0.5))
	}

	totals, err := collectCounters(ctx, reader)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	printAggregate(all, totals)
}

func runMatch(runIndex int, seed int64, diff game.Difficulty, tuning game.Tuning, ticks int, jitter float64, log zerolog.Logger, mp metric.MeterProvider) runStats {
	ts := game.NewTestSim(
		game.WithTestSeed(seed),
		game.WithTestLogger(log),
		game.WithTestMeterProvider(mp),
		game.WithTuning(func(t *game.Tuning) { *t = tuning }),
		game.WithSpawner(),
		game.WithDifficulty(diff),
		game.WithReporter(600),
	)
	bot := game.NewBot(seed, jitter)
	ts.Input = func(ts *game.TestSim) game.Input { return bot.Input(ts.Sim) }

	ts.RunUntil(func(ts *game.TestSim) bool {
		return ts.Sim.Session.State() == game.StateGameOver
	}, ticks)

	return collect(runIndex, seed, diff, ts)
}

func collect(runIndex int, seed int64, diff game.Difficulty, ts *game.TestSim) runStats {
	sl := ts.SimLog
	entries := sl.Entries()

	rs := runStats{
		runIndex:          runIndex,
		seed:              seed,
		difficulty:        diff,
		firstShotTick:     firstTick(entries, "weapon", "weapon_fired", ""),
		firstHitTick:      firstTick(entries, "projectile", "projectile_hit", ""),
		firstKillTick:     firstTick(entries, "enemy", "enemy_killed", ""),
		firstPlayerHit:    firstTick(entries, "player", "player_hit", ""),
		firstUnlockTick:   firstTick(entries, "weapon", "weapon_unlocked", ""),
		deathTick:         firstTick(entries, "player", "player_died", ""),
		gameOverTick:      firstTick(entries, "session", "game_over", ""),
		ticks:             ts.CurrentTick(),
		survived:          !ts.Sim.Player.IsDead(),
		shots:             ts.Sim.Armory.ShotsFired(),
		hits:              sl.CountCategory("projectile", "projectile_hit"),
		kills:             ts.Sim.Enemies.Killed(),
		spawned:           ts.Sim.Enemies.Spawned(),
		playerHits:        sl.CountCategory("player", "player_hit"),
		aggroEvents:       sl.CountCategory("enemy", "enemy_aggro"),
		report:            ts.Sim.Report(),
		weaponShots:       map[string]int{},
		weaponHits:        map[string]int{},
		finalHealth:       ts.Sim.Player.Health(),
		finalHealthMax:    ts.Sim.Player.MaxHealth(),
		finalWeapon:       ts.Sim.Armory.Current().String(),
		projectilesInAir:  len(ts.Sim.Armory.Projectiles()),
		liveEnemiesAtStop: ts.Sim.Enemies.Live(),
		pressureCounts:    map[string]int{},
		simLog:            sl,
	}
	if ts.Reporter != nil {
		rs.pressure = ts.Reporter.WindowSummary()
		for _, rpt := range ts.Reporter.History() {
			rs.pressureCounts[rpt.Pressure()]++
		}
	}
	for _, e := range entries {
		switch e.Key {
		case "player_hit":
			rs.damageTaken += e.NumVal
		case "weapon_unlocked":
			rs.unlocks = append(rs.unlocks, e.Value)
		case "weapon_fired":
			rs.weaponShots[firstField(e.Value)]++
		case "projectile_hit":
			rs.weaponHits[firstField(e.Value)]++
		}
	}
	return rs
}

func firstField(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return s
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// outcome classifies a match for the aggregate table.
func outcome(rs runStats) (string, string) {
	switch {
	case !rs.survived:
		return "overrun", fmt.Sprintf("died at tick %d after %d kills", rs.deathTick, rs.kills)
	case rs.spawned == 0:
		return "quiet", "no hogs spawned"
	case rs.liveEnemiesAtStop == 0:
		return "cleared", fmt.Sprintf("all %d hogs down", rs.spawned)
	default:
		return "holding", fmt.Sprintf("%d hogs still live", rs.liveEnemiesAtStop)
	}
}

// logTail returns the log entries from the last tailTicks ticks of a run.
func logTail(rs runStats, tailTicks int) string {
	if rs.simLog == nil || tailTicks <= 0 {
		return ""
	}
	from := rs.ticks - tailTicks + 1
	if from < 0 {
		from = 0
	}
	return rs.simLog.FormatRange(from, rs.ticks)
}

func printRun(rs runStats, tailTicks int) {
	label, reason := outcome(rs)
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome: %s (%s)\n", label, reason)
	fmt.Printf("phase_markers: first_shot=%d first_hit=%d first_kill=%d first_player_hit=%d first_unlock=%d death=%d game_over=%d\n",
		rs.firstShotTick, rs.firstHitTick, rs.firstKillTick, rs.firstPlayerHit, rs.firstUnlockTick, rs.deathTick, rs.gameOverTick)
	fmt.Printf("event_totals: shots=%d hits=%d kills=%d spawned=%d aggro=%d player_hits=%d damage_taken=%.0f\n",
		rs.shots, rs.hits, rs.kills, rs.spawned, rs.aggroEvents, rs.playerHits, rs.damageTaken)
	fmt.Printf("weapons: shots=[%s] hits=[%s] unlocked=[%s] final=%s\n",
		joinCounts(rs.weaponShots), joinCounts(rs.weaponHits), joinList(rs.unlocks), rs.finalWeapon)
	fmt.Printf("end_state: tick=%d health=%.0f/%.0f live_enemies=%d projectiles=%d\n",
		rs.ticks, rs.finalHealth, rs.finalHealthMax, rs.liveEnemiesAtStop, rs.projectilesInAir)
	fmt.Printf("pressure_samples: [%s]\n", joinCounts(rs.pressureCounts))
	if rs.pressure != nil {
		fmt.Print(rs.pressure.Format())
	}
	fmt.Println(rs.report.String())
	if tail := logTail(rs, tailTicks); tail != "" {
		fmt.Printf("log_tail (last %d ticks):\n%s", tailTicks, tail)
	}
	fmt.Println()
}

// printAggregate prints cross-run totals. Shots, hits, kills and damage come
// from the OTel counters the simulation fed during every run.
func printAggregate(all []runStats, totals counterTotals) {
	totalSpawned := 0
	totalPlayerHits := 0
	totalScore := 0
	survivors := 0

	killTicks := make([]int, 0, len(all))
	deathTicks := make([]int, 0, len(all))
	unlockTicks := make([]int, 0, len(all))
	outcomes := map[string]int{}
	ratings := map[string]int{}

	for _, rs := range all {
		totalSpawned += rs.spawned
		totalPlayerHits += rs.playerHits
		totalScore += rs.report.Score
		if rs.survived {
			survivors++
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.deathTick >= 0 {
			deathTicks = append(deathTicks, rs.deathTick)
		}
		if rs.firstUnlockTick >= 0 {
			unlockTicks = append(unlockTicks, rs.firstUnlockTick)
		}
		label, _ := outcome(rs)
		outcomes[label]++
		ratings[rs.report.Rating]++
	}

	n := len(all)
	totalShots, totalHits, totalKills := int(totals.shots), int(totals.hits), int(totals.kills)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d survived=%d (%.0f%%)\n", n, survivors, pct(survivors, n))
	fmt.Printf("avg_per_run: score=%.1f shots=%.1f hits=%.1f kills=%.1f spawned=%.1f player_hits=%.1f damage_taken=%.1f\n",
		avg(totalScore, n), avg(totalShots, n), avg(totalHits, n), avg(totalKills, n), avg(totalSpawned, n), avg(totalPlayerHits, n), totals.playerDamage/float64(n))
	fmt.Printf("overall_accuracy=%d%% hit_rate=%.0f%%\n", game.Accuracy(totalKills, totalShots), pct(totalHits, totalShots))
	fmt.Printf("phase_marker_avg_ticks: first_kill=%s first_unlock=%s death=%s\n",
		avgTickString(killTicks), avgTickString(unlockTicks), avgTickString(deathTicks))
	fmt.Printf("outcomes: [%s]\n", joinCounts(outcomes))
	fmt.Printf("ratings: [%s]\n", joinCounts(ratings))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func pct(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, ",")
}

func joinList(vals []string) string {
	if len(vals) == 0 {
		return "none"
	}
	return strings.Join(vals, ",")
}
