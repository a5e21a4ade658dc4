package audio

// KillStreak counts kills landing within Window seconds of each other. When
// the count reaches Threshold the streak fires once and starts over.
type KillStreak struct {
	Window    float64
	Threshold int

	count int
	last  float64
}

// NewKillStreak returns the stock tracker: 3 kills, each within 3 s of the
// previous one.
func NewKillStreak() *KillStreak {
	return &KillStreak{Window: 3, Threshold: 3}
}

// Kill records a kill at logical time now and reports whether it completed
// a streak.
func (k *KillStreak) Kill(now float64) bool {
	if k.count > 0 && now-k.last > k.Window {
		k.count = 0
	}
	k.count++
	k.last = now
	if k.count >= k.Threshold {
		k.count = 0
		return true
	}
	return false
}

// Count is the length of the running streak.
func (k *KillStreak) Count() int { return k.count }

// Reset forgets the running streak.
func (k *KillStreak) Reset() {
	k.count = 0
	k.last = 0
}
