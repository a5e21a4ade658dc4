package view

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"

	"github.com/cojovi/ReplitRanchDefense/internal/game"
)

// hudScale is the integer upscale applied to debug-font HUD text.
const hudScale = 2

// radarRange is the world distance from the player to the radar edge.
const radarRange = 60.0

// Publisher receives a snapshot after every simulated frame.
type Publisher interface {
	Publish(game.Snapshot)
}

// Voice is the audio surface the HUD talks to.
type Voice interface {
	ToggleMute() bool
	LastLine() string
}

// Options wires the optional collaborators.
type Options struct {
	Width     int
	Height    int
	Publisher Publisher
	Voice     Voice
	Log       zerolog.Logger
	Done      <-chan struct{} // closing it ends the game loop
}

// Game is the ebiten host: it polls input, steps the simulation with the
// real frame delta and renders a top-down radar with a HUD.
type Game struct {
	sim     *game.Sim
	width   int
	height  int
	pub     Publisher
	voice   Voice
	done    <-chan struct{}
	log     zerolog.Logger
	face    text.Face
	trigger game.Trigger

	lastFrame  time.Time
	prevCursor [2]int
	captured   bool
	status     string // transient footer message, e.g. clipboard result
	statusTime time.Time

	hudBuf *ebiten.Image
}

// New builds the host around sim.
func New(sim *game.Sim, opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = 960
	}
	if opts.Height <= 0 {
		opts.Height = 640
	}
	return &Game{
		sim:    sim,
		width:  opts.Width,
		height: opts.Height,
		pub:    opts.Publisher,
		voice:  opts.Voice,
		done:   opts.Done,
		log:    opts.Log.With().Str("component", "view").Logger(),
		face:   text.NewGoXFace(basicfont.Face7x13),
		hudBuf: ebiten.NewImage(opts.Width/hudScale, opts.Height/hudScale),
	}
}

func (g *Game) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}

	now := time.Now()
	dt := 0.0
	if !g.lastFrame.IsZero() {
		dt = now.Sub(g.lastFrame).Seconds()
	}
	g.lastFrame = now

	g.handleLifecycle()
	in := g.pollInput()
	g.sim.Step(dt, in)

	if g.pub != nil && g.sim.Session.State() != game.StateMenu {
		g.pub.Publish(g.sim.Snapshot())
	}
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// handleLifecycle processes edge-triggered menu, pause and report keys.
func (g *Game) handleLifecycle() {
	st := g.sim.Session.State()

	switch st {
	case game.StateMenu:
		diffKeys := [...]ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}
		for i, k := range diffKeys {
			if inpututil.IsKeyJustPressed(k) {
				g.sim.SetDifficulty(game.Difficulty(i))
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.startMatch(g.sim.Start)
		}
	case game.StatePlaying, game.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.sim.TogglePause()
		}
	case game.StateGameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.startMatch(g.sim.Restart)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			g.copyReport()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			g.sim.Reset()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.voice != nil {
		if g.voice.ToggleMute() {
			g.setStatus("sound off")
		} else {
			g.setStatus("sound on")
		}
	}
	g.updateCursorMode()
}

func (g *Game) startMatch(start func() bool) {
	if start() {
		g.trigger.Reset()
		g.log.Info().Stringer("difficulty", g.sim.Session.Difficulty()).Msg("match started")
	}
}

// updateCursorMode captures the mouse only while a match is running.
func (g *Game) updateCursorMode() {
	want := g.sim.Session.Playing()
	if want == g.captured {
		return
	}
	g.captured = want
	if want {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		g.prevCursor[0], g.prevCursor[1] = ebiten.CursorPosition()
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

// pollInput decodes held keys and mouse motion into one frame of input.
func (g *Game) pollInput() game.Input {
	var in game.Input
	if !g.sim.Session.Playing() {
		return in
	}

	in.Move = game.Intent{
		Forward:  ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Backward: ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:     ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:    ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:     ebiten.IsKeyPressed(ebiten.KeySpace),
		Sprint:   ebiten.IsKeyPressed(ebiten.KeyShift),
	}

	mx, my := ebiten.CursorPosition()
	in.LookDX = float64(mx - g.prevCursor[0])
	in.LookDY = float64(my - g.prevCursor[1])
	g.prevCursor[0], g.prevCursor[1] = mx, my

	slotKeys := [...]ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}
	for i, k := range slotKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.Slot = i + 1
		}
	}
	in.Reload = inpututil.IsKeyJustPressed(ebiten.KeyR)

	// Holding the button autofires at the weapon's own rate.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		now := g.sim.Now()
		w := g.sim.Armory.CurrentWeapon()
		if g.trigger.Ready(now, w.FireInterval) && g.sim.Armory.CanFire() {
			in.Fire = true
			g.trigger.Pull(now)
		}
	}
	return in
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTime = time.Now()
}
