package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/cojovi/ReplitRanchDefense/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)

	oneLinerDelay = 500 * time.Millisecond
)

// Sound identifies one synthesized effect.
type Sound int

const (
	SoundGunshot Sound = iota
	SoundShotgun
	SoundExplosion
	SoundHit
	SoundSqueal
	SoundHurt
	SoundChime
	SoundClick
	soundCount
)

var soundNames = [...]string{
	SoundGunshot:   "gunshot",
	SoundShotgun:   "shotgun",
	SoundExplosion: "explosion",
	SoundHit:       "hit",
	SoundSqueal:    "squeal",
	SoundHurt:      "hurt",
	SoundChime:     "chime",
	SoundClick:     "click",
}

func (s Sound) String() string {
	if s >= 0 && s < soundCount {
		return soundNames[s]
	}
	return "unknown"
}

// OneLiners are the lines the hunter shouts after a kill streak.
var OneLiners = []string{
	"That'll do, pig!",
	"Groovy, baby!",
	"Time to chew bubblegum and cull hogs!",
	"These hogs picked the wrong ranch!",
	"Yee-haw! That's Texas style!",
	"Come get some!",
	"Hail to the king, baby!",
	"Let's rock and roll!",
}

// SoundManager turns simulation events into sounds. It implements
// game.Notifier. Every method is safe before Initialize and after Cleanup;
// sounds are then counted but not played.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	volume      float64

	streak   *KillStreak
	rng      *rand.Rand
	played   [soundCount]int
	lastLine string
	log      zerolog.Logger
}

// NewSoundManager creates a sound manager at the given linear volume.
func NewSoundManager(volume float64, log zerolog.Logger) *SoundManager {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		streak: NewKillStreak(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- game only
		log:    log.With().Str("component", "audio").Logger(),
	}
}

// Initialize opens the speaker. Calling it twice is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Debug().Msg("speaker ready")
	return nil
}

// Cleanup silences everything. The speaker itself stays open; beep offers
// no way to close it.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted mutes or unmutes future sounds.
func (sm *SoundManager) SetMuted(m bool) {
	sm.mu.Lock()
	sm.muted = m
	sm.mu.Unlock()
}

// ToggleMute flips the mute flag and returns the new value.
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// Muted reports the mute flag.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Played counts how often s was requested, whether or not it was audible.
func (sm *SoundManager) Played(s Sound) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if s < 0 || s >= soundCount {
		return 0
	}
	return sm.played[s]
}

// LastLine is the most recent one-liner, for the HUD.
func (sm *SoundManager) LastLine() string {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.lastLine
}

// Notify maps a simulation event to a sound. It never blocks on audio
// output.
func (sm *SoundManager) Notify(e game.Event) {
	switch e.Kind {
	case game.EventWeaponFired:
		switch e.Weapon {
		case game.WeaponShotgun:
			sm.Play(SoundShotgun)
		case game.WeaponExplosive:
			sm.Play(SoundExplosion)
		default:
			sm.Play(SoundGunshot)
		}
	case game.EventReloadStarted, game.EventReloadFinished, game.EventWeaponSwitched:
		sm.Play(SoundClick)
	case game.EventProjectileHit:
		sm.Play(SoundHit)
	case game.EventEnemyAggro:
		sm.Play(SoundSqueal)
	case game.EventEnemyKilled:
		sm.Play(SoundSqueal)
		sm.onKill(e.Time)
	case game.EventPlayerHit:
		sm.Play(SoundHurt)
	case game.EventWeaponUnlocked:
		sm.Play(SoundChime)
	case game.EventMatchStarted:
		sm.resetStreak()
	}
}

func (sm *SoundManager) onKill(now float64) {
	sm.mu.Lock()
	fire := sm.streak.Kill(now)
	if !fire {
		sm.mu.Unlock()
		return
	}
	line := OneLiners[sm.rng.Intn(len(OneLiners))]
	sm.lastLine = line
	sm.mu.Unlock()

	sm.log.Info().Str("line", line).Msg("hunter says")
	sm.play(SoundChime, oneLinerDelay)
}

func (sm *SoundManager) resetStreak() {
	sm.mu.Lock()
	sm.streak.Reset()
	sm.mu.Unlock()
}

// Play queues s immediately.
func (sm *SoundManager) Play(s Sound) {
	sm.play(s, 0)
}

func (sm *SoundManager) play(s Sound, delay time.Duration) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if s < 0 || s >= soundCount {
		return
	}
	sm.played[s]++
	if !sm.initialized || sm.muted {
		return
	}

	gen, length := generatorFor(s)
	var streamer beep.Streamer = beep.Take(sampleRate.N(length), gen)
	if delay > 0 {
		streamer = beep.Seq(beep.Silence(sampleRate.N(delay)), streamer)
	}
	streamer = &effects.Gain{Streamer: streamer, Gain: sm.volume - 1}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

func generatorFor(s Sound) (beep.Streamer, time.Duration) {
	switch s {
	case SoundShotgun:
		return NewShotgunGenerator(sampleRate), 350 * time.Millisecond
	case SoundExplosion:
		return NewExplosionGenerator(sampleRate), 1200 * time.Millisecond
	case SoundHit:
		return NewHitGenerator(sampleRate), 120 * time.Millisecond
	case SoundSqueal:
		return NewSquealGenerator(sampleRate), 400 * time.Millisecond
	case SoundHurt:
		return NewHurtGenerator(sampleRate), 200 * time.Millisecond
	case SoundChime:
		return NewChimeGenerator(sampleRate), 600 * time.Millisecond
	case SoundClick:
		return NewClickGenerator(sampleRate), 40 * time.Millisecond
	default:
		return NewGunshotGenerator(sampleRate), 250 * time.Millisecond
	}
}
