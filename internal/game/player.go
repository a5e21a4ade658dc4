package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

// Intent is one frame of decoded movement input.
type Intent struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool
	Sprint   bool
}

// Rotation is the camera orientation in radians. Yaw 0 looks down -Z.
type Rotation struct {
	Yaw   float64
	Pitch float64
}

// Forward returns the unit camera-facing direction.
func (r Rotation) Forward() mgl64.Vec3 {
	cp := math.Cos(r.Pitch)
	return mgl64.Vec3{-math.Sin(r.Yaw) * cp, math.Sin(r.Pitch), -math.Cos(r.Yaw) * cp}
}

// Player is the single first-person avatar. Health is kept in
// [0, maxHealth]; grounded is derived from the vertical velocity.
type Player struct {
	position mgl64.Vec3
	rotation Rotation
	velocity mgl64.Vec3

	health           float64
	maxHealth        float64
	moveSpeed        float64
	sprintSpeed      float64
	jumpPower        float64
	gravity          float64
	mouseSensitivity float64

	tuning   PlayerTuning
	ender    GameEnder
	gameOver TimerID // pending game-over after death, 0 when none
	sched    *Scheduler
	notify   Notifier
	log      zerolog.Logger
	metrics  *simMetrics
}

// NewPlayer creates a player at the tuning defaults. ender is told to end the
// session GameOverDelay seconds after health reaches zero; it may be nil.
func NewPlayer(t PlayerTuning, ender GameEnder, d Deps) *Player {
	d = d.withDefaults()
	p := &Player{
		tuning:  t,
		ender:   ender,
		sched:   d.Scheduler,
		notify:  d.Notify,
		log:     d.Log.With().Str("component", "player").Logger(),
		metrics: d.metrics,
	}
	p.applyDefaults()
	return p
}

func (p *Player) applyDefaults() {
	p.position = mgl64.Vec3{0, p.tuning.EyeHeight, 0}
	p.rotation = Rotation{}
	p.velocity = mgl64.Vec3{}
	p.health = p.tuning.MaxHealth
	p.maxHealth = p.tuning.MaxHealth
	p.moveSpeed = p.tuning.MoveSpeed
	p.sprintSpeed = p.tuning.SprintSpeed
	p.jumpPower = p.tuning.JumpPower
	p.gravity = p.tuning.Gravity
	p.mouseSensitivity = p.tuning.MouseSensitivity
}

func (p *Player) Position() mgl64.Vec3 { return p.position }
func (p *Player) Velocity() mgl64.Vec3 { return p.velocity }
func (p *Player) Rotation() Rotation   { return p.rotation }
func (p *Player) Health() float64      { return p.health }
func (p *Player) MaxHealth() float64   { return p.maxHealth }
func (p *Player) IsDead() bool         { return p.health <= 0 }

// MouseSensitivity returns radians of rotation per mouse count.
func (p *Player) MouseSensitivity() float64 { return p.mouseSensitivity }

// IsGrounded is true while the vertical velocity is exactly zero.
func (p *Player) IsGrounded() bool {
	return p.velocity[1] == 0
}

// Forward is the camera-facing direction used for movement and aim.
func (p *Player) Forward() mgl64.Vec3 {
	return p.rotation.Forward()
}

// SetPosition teleports the player. Non-finite positions are ignored.
func (p *Player) SetPosition(pos mgl64.Vec3) {
	if !finiteVec(pos) {
		return
	}
	p.position = pos
}

// SetVelocity overwrites the velocity. Non-finite values are ignored.
func (p *Player) SetVelocity(v mgl64.Vec3) {
	if !finiteVec(v) {
		return
	}
	p.velocity = v
}

// SetRotation overwrites the camera orientation, clamping pitch.
func (p *Player) SetRotation(r Rotation) {
	if !finite(r.Yaw) || !finite(r.Pitch) {
		return
	}
	r.Pitch = clamp(r.Pitch, -math.Pi/2, math.Pi/2)
	p.rotation = r
}

// Look applies raw mouse deltas scaled by the sensitivity.
func (p *Player) Look(dx, dy float64) {
	if !finite(dx) || !finite(dy) {
		return
	}
	p.SetRotation(Rotation{
		Yaw:   p.rotation.Yaw - dx*p.mouseSensitivity,
		Pitch: p.rotation.Pitch - dy*p.mouseSensitivity,
	})
}

// SetMouseSensitivity changes the look scale. Non-positive values are ignored.
func (p *Player) SetMouseSensitivity(s float64) {
	if s <= 0 || !finite(s) {
		return
	}
	p.mouseSensitivity = s
}

// Jump applies the jump impulse when grounded. Returns whether it did.
func (p *Player) Jump() bool {
	if !p.IsGrounded() {
		return false
	}
	p.velocity[1] = p.jumpPower
	p.log.Debug().Msg("jump")
	return true
}

// Update integrates one frame of movement. facing is the camera direction;
// only its horizontal part steers movement.
func (p *Player) Update(dt float64, in Intent, facing mgl64.Vec3) {
	if dt <= 0 {
		return
	}

	forward := normalizeOrZero(mgl64.Vec3{facing[0], 0, facing[2]})
	right := forward.Cross(worldUp)

	var move mgl64.Vec3
	if in.Forward {
		move = move.Add(forward)
	}
	if in.Backward {
		move = move.Sub(forward)
	}
	if in.Right {
		move = move.Add(right)
	}
	if in.Left {
		move = move.Sub(right)
	}
	speed := p.moveSpeed
	if in.Sprint {
		speed = p.sprintSpeed
	}
	move = normalizeOrZero(move).Mul(speed)

	vel := mgl64.Vec3{move[0], p.velocity[1] - p.gravity*dt, move[2]}
	if in.Jump && p.IsGrounded() {
		vel[1] = p.jumpPower
	}

	pos := p.position.Add(vel.Mul(dt))
	if pos[1] < p.tuning.EyeHeight {
		pos[1] = p.tuning.EyeHeight
		vel[1] = 0
	}
	p.position = pos
	p.velocity = vel
}

// TakeDamage subtracts health, clamping at zero. The transition to zero
// schedules the game-over; further damage to a dead player changes nothing.
func (p *Player) TakeDamage(amount float64) {
	if amount <= 0 || !finite(amount) || p.health <= 0 {
		return
	}
	prev := p.health
	p.health = math.Max(0, p.health-amount)
	p.metrics.hurt(prev - p.health)
	p.log.Debug().Float64("amount", amount).Float64("health", p.health).Msg("player hit")
	p.notify.Notify(Event{Kind: EventPlayerHit, Time: p.sched.Now(), Amount: amount, Position: p.position})

	if p.health > 0 {
		return
	}
	p.log.Info().Msg("player died")
	p.notify.Notify(Event{Kind: EventPlayerDied, Time: p.sched.Now(), Position: p.position})
	if p.ender != nil && p.gameOver == 0 {
		p.gameOver = p.sched.After(p.tuning.GameOverDelay, func() {
			p.gameOver = 0
			p.ender.End()
		})
	}
}

// Heal adds health up to the maximum. Negative or non-finite amounts and
// heals on a dead player are ignored.
func (p *Player) Heal(amount float64) {
	if amount <= 0 || !finite(amount) || p.health <= 0 {
		return
	}
	p.health = math.Min(p.maxHealth, p.health+amount)
	p.notify.Notify(Event{Kind: EventPlayerHealed, Time: p.sched.Now(), Amount: amount})
}

// Reset restores every default and cancels a pending game-over.
func (p *Player) Reset() {
	if p.gameOver != 0 {
		p.sched.Cancel(p.gameOver)
		p.gameOver = 0
	}
	p.applyDefaults()
}
