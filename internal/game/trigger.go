package game

// Trigger paces trigger pulls by the active weapon's fire interval on the
// logical clock. The armory itself accepts any pull; hosts pace.
type Trigger struct {
	last  float64
	fired bool
}

// Ready reports whether a pull at now respects interval.
func (t *Trigger) Ready(now, interval float64) bool {
	return !t.fired || now-t.last >= interval
}

// Pull records a pull at now.
func (t *Trigger) Pull(now float64) {
	t.fired = true
	t.last = now
}

// Reset forgets the last pull.
func (t *Trigger) Reset() {
	t.fired = false
	t.last = 0
}
