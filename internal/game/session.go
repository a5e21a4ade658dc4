package game

import (
	"strings"

	"github.com/rs/zerolog"
)

// LifecycleState is the match state machine.
type LifecycleState int

const (
	StateMenu LifecycleState = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s LifecycleState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Difficulty selects a DifficultyProfile.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty maps "easy", "normal" or "hard" to a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, true
	case "normal", "":
		return DifficultyNormal, true
	case "hard":
		return DifficultyHard, true
	default:
		return DifficultyNormal, false
	}
}

// Session is the match clock, score and lifecycle. Paused is derived from
// the single state field so the two can never disagree.
type Session struct {
	state      LifecycleState
	difficulty Difficulty
	score      int
	elapsed    float64

	sched  *Scheduler
	notify Notifier
	log    zerolog.Logger
}

// NewSession returns a session in the menu at normal difficulty.
func NewSession(d Deps) *Session {
	d = d.withDefaults()
	return &Session{
		state:      StateMenu,
		difficulty: DifficultyNormal,
		sched:      d.Scheduler,
		notify:     d.Notify,
		log:        d.Log.With().Str("component", "session").Logger(),
	}
}

func (s *Session) State() LifecycleState  { return s.state }
func (s *Session) Difficulty() Difficulty { return s.difficulty }
func (s *Session) Score() int             { return s.score }
func (s *Session) Elapsed() float64       { return s.elapsed }
func (s *Session) Paused() bool           { return s.state == StatePaused }
func (s *Session) Playing() bool          { return s.state == StatePlaying }

func (s *Session) transition(to LifecycleState) {
	from := s.state
	s.state = to
	s.log.Debug().Stringer("from", from).Stringer("to", to).Msg("session transition")
	s.notify.Notify(Event{Kind: EventSessionState, Time: s.sched.Now(), State: to})
	if to == StateGameOver {
		s.notify.Notify(Event{Kind: EventGameOver, Time: s.sched.Now(), State: to, Amount: float64(s.score)})
	}
}

// Start begins a fresh match from the menu or the game-over screen. After
// the playing transition it raises EventMatchStarted, the one signal that a
// new match (not a resume) began.
func (s *Session) Start() bool {
	if s.state != StateMenu && s.state != StateGameOver {
		return false
	}
	s.score = 0
	s.elapsed = 0
	s.transition(StatePlaying)
	s.notify.Notify(Event{Kind: EventMatchStarted, Time: s.sched.Now(), State: StatePlaying})
	return true
}

// TogglePause flips between playing and paused.
func (s *Session) TogglePause() bool {
	switch s.state {
	case StatePlaying:
		return s.Pause()
	case StatePaused:
		return s.Resume()
	default:
		return false
	}
}

// Pause suspends a running match.
func (s *Session) Pause() bool {
	if s.state != StatePlaying {
		return false
	}
	s.transition(StatePaused)
	return true
}

// Resume continues a paused match.
func (s *Session) Resume() bool {
	if s.state != StatePaused {
		return false
	}
	s.transition(StatePlaying)
	return true
}

// End moves an active match to game over. It satisfies GameEnder.
func (s *Session) End() bool {
	if s.state != StatePlaying && s.state != StatePaused {
		return false
	}
	s.log.Info().Int("score", s.score).Float64("elapsed", s.elapsed).Msg("game over")
	s.transition(StateGameOver)
	return true
}

// Restart begins a fresh match after game over.
func (s *Session) Restart() bool {
	if s.state != StateGameOver {
		return false
	}
	return s.Start()
}

// SetDifficulty changes the profile. Only allowed from the menu.
func (s *Session) SetDifficulty(d Difficulty) bool {
	if s.state != StateMenu || d < DifficultyEasy || d > DifficultyHard {
		return false
	}
	s.difficulty = d
	s.log.Debug().Stringer("difficulty", d).Msg("difficulty selected")
	return true
}

// AddScore accumulates points. Non-positive amounts are ignored so the
// score never decreases. It satisfies Scorer.
func (s *Session) AddScore(points int) bool {
	if points <= 0 {
		return false
	}
	s.score += points
	return true
}

// Advance adds dt to the match clock while playing.
func (s *Session) Advance(dt float64) {
	if s.state != StatePlaying || dt <= 0 || !finite(dt) {
		return
	}
	s.elapsed += dt
}

// Reset returns to the menu, keeping the selected difficulty.
func (s *Session) Reset() {
	s.state = StateMenu
	s.score = 0
	s.elapsed = 0
}
