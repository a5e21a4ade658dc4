package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// SimLogEntry is one recorded event during a simulation run.
type SimLogEntry struct {
	Tick     int
	Subject  string  // short enemy id, "player", or "--" for global events
	Category string  // weapon, projectile, enemy, player, session, move
	Key      string  // event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] 3f2a1c9e enemy     enemy_killed     boar at (4.1,1.6,-9.0)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-8s %-9s %-16s %s",
		e.Tick, e.Subject, e.Category, e.Key, e.Value)
}

// SimLog collects structured events from the simulation. It is unbounded
// and machine-readable; the headless report and the tests read it.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position entries
// are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, subject, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Subject:  subject,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, subject, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, subject, category, key, value, numVal)
}

// Record converts a simulation event into an entry.
func (sl *SimLog) Record(tick int, e Event) {
	subject := "--"
	if e.EnemyID != "" {
		subject = shortID(e.EnemyID)
	}
	var category, value string
	num := e.Amount
	switch e.Kind {
	case EventWeaponFired:
		category = "weapon"
		value = fmt.Sprintf("%s x%d from %s", e.Weapon, e.Count, formatVec(e.Position))
		num = float64(e.Count)
	case EventWeaponSwitched, EventWeaponUnlocked, EventReloadStarted:
		category = "weapon"
		value = e.Weapon.String()
	case EventReloadFinished:
		category = "weapon"
		value = fmt.Sprintf("%s ammo=%.0f", e.Weapon, e.Amount)
	case EventProjectileHit:
		category = "projectile"
		value = fmt.Sprintf("%s dmg=%.0f at %s", e.Weapon, e.Amount, formatVec(e.Position))
	case EventEnemySpawned, EventEnemyAggro, EventEnemyKilled:
		category = "enemy"
		value = "at " + formatVec(e.Position)
	case EventEnemyRemoved:
		category = "enemy"
		value = fmt.Sprintf("kills=%d", e.Count)
		num = float64(e.Count)
	case EventPlayerHit, EventPlayerHealed:
		subject = "player"
		category = "player"
		value = fmt.Sprintf("%.0f", e.Amount)
	case EventPlayerDied:
		subject = "player"
		category = "player"
		value = "at " + formatVec(e.Position)
	case EventSessionState:
		category = "session"
		value = e.State.String()
	case EventMatchStarted:
		category = "session"
		value = "new match"
	case EventGameOver:
		category = "session"
		value = fmt.Sprintf("score=%.0f", e.Amount)
	default:
		category = "other"
	}
	sl.Add(tick, subject, category, e.Kind.String(), value, num)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterSubject returns entries for one subject label.
func (sl *SimLog) FilterSubject(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Subject == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Reset drops every entry.
func (sl *SimLog) Reset() {
	sl.entries = nil
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the simulation state.
func (sl *SimLog) Summary(s *Sim) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d (%.1fs) ---\n", s.Tick(), s.Now())
	fmt.Fprintf(&sb, "Session: %s  score=%d  difficulty=%s\n",
		s.Session.State(), s.Session.Score(), s.Session.Difficulty())
	fmt.Fprintf(&sb, "Player: health=%.0f/%.0f at %s\n",
		s.Player.Health(), s.Player.MaxHealth(), formatVec(s.Player.Position()))

	byState := map[EnemyState]int{}
	for _, e := range s.Enemies.Enemies() {
		byState[e.State]++
	}
	fmt.Fprintf(&sb, "Enemies: patrolling=%d  charging=%d  dead=%d  killed=%d\n",
		byState[EnemyPatrolling], byState[EnemyCharging], byState[EnemyDead], s.Enemies.Killed())

	w := s.Armory.CurrentWeapon()
	fmt.Fprintf(&sb, "Weapon: %s ammo=%s reloading=%t  in flight=%d\n",
		w.Kind, w.Ammo, w.Reloading, len(s.Armory.Projectiles()))
	return sb.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.1f,%.1f,%.1f)", v[0], v[1], v[2])
}
