package view

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/cojovi/ReplitRanchDefense/internal/game"
)

var (
	colBackground = color.RGBA{R: 24, G: 20, B: 14, A: 255}
	colGround     = color.RGBA{R: 58, G: 48, B: 30, A: 255}
	colRing       = color.RGBA{R: 90, G: 76, B: 50, A: 160}
	colPlayer     = color.RGBA{R: 240, G: 220, B: 160, A: 255}
	colBoar       = color.RGBA{R: 170, G: 110, B: 70, A: 255}
	colTusker     = color.RGBA{R: 200, G: 60, B: 40, A: 255}
	colCharging   = color.RGBA{R: 255, G: 40, B: 40, A: 255}
	colCorpse     = color.RGBA{R: 80, G: 70, B: 60, A: 200}
	colProjectile = color.RGBA{R: 255, G: 240, B: 120, A: 255}
	colHealth     = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	colHealthBack = color.RGBA{R: 40, G: 10, B: 10, A: 220}
	colPanel      = color.RGBA{R: 10, G: 8, B: 6, A: 210}
	colPanelEdge  = color.RGBA{R: 140, G: 100, B: 50, A: 200}
	colTitle      = color.RGBA{R: 255, G: 170, B: 60, A: 255}
	colText       = color.RGBA{R: 230, G: 220, B: 200, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)

	switch g.sim.Session.State() {
	case game.StateMenu:
		g.drawMenu(screen)
	case game.StateGameOver:
		g.drawRadar(screen)
		g.drawGameOver(screen)
	default:
		g.drawRadar(screen)
		g.drawHUD(screen)
		if g.sim.Session.Paused() {
			g.drawCentered(screen, []string{"PAUSED", "", "Esc to resume"}, colTitle)
		}
	}

	if g.status != "" && time.Since(g.statusTime) < 3*time.Second {
		ebitenutil.DebugPrintAt(screen, g.status, 8, g.height-20)
	}
}

// radarPoint maps a world position to screen space. The player sits at the
// centre and looks up the screen.
func (g *Game) radarPoint(pos, player [3]float64, yaw float64) (float32, float32) {
	cx, cy := float64(g.width)/2, float64(g.height)/2
	scale := math.Min(cx, cy) / radarRange

	dx, dz := pos[0]-player[0], pos[2]-player[2]
	fwdX, fwdZ := -math.Sin(yaw), -math.Cos(yaw)
	rightX, rightZ := math.Cos(yaw), -math.Sin(yaw)

	along := dx*fwdX + dz*fwdZ
	across := dx*rightX + dz*rightZ
	return float32(cx + across*scale), float32(cy - along*scale)
}

func (g *Game) drawRadar(screen *ebiten.Image) {
	cx, cy := float32(g.width)/2, float32(g.height)/2
	radius := float32(math.Min(float64(cx), float64(cy)))
	scale := radius / radarRange

	vector.FillCircle(screen, cx, cy, radius, colGround, true)
	for _, r := range []float32{15, 30, 45} {
		vector.StrokeCircle(screen, cx, cy, r*scale, 1, colRing, true)
	}

	p := g.sim.Player
	pos := p.Position()
	yaw := p.Rotation().Yaw

	// Weapon range arc, straight ahead.
	w := g.sim.Armory.CurrentWeapon()
	reach := float32(math.Min(w.Range, radarRange)) * scale
	vector.StrokeLine(screen, cx, cy, cx, cy-reach, 1, colRing, true)

	for _, e := range g.sim.Enemies.Enemies() {
		x, y := g.radarPoint(e.Position, pos, yaw)
		size := float32(5)
		c := colBoar
		if e.Archetype == game.ArchetypeTusker {
			size = 7
			c = colTusker
		}
		switch {
		case !e.Alive():
			c = colCorpse
		case e.State == game.EnemyCharging:
			vector.StrokeCircle(screen, x, y, size+3, 1, colCharging, true)
		}
		vector.FillCircle(screen, x, y, size, c, true)
		if e.Alive() && e.Health < e.MaxHealth {
			frac := float32(e.Health / e.MaxHealth)
			vector.FillRect(screen, x-size, y-size-5, 2*size, 2, colHealthBack, false)
			vector.FillRect(screen, x-size, y-size-5, 2*size*frac, 2, colHealth, false)
		}
	}

	for _, pr := range g.sim.Armory.Projectiles() {
		x, y := g.radarPoint(pr.Position, pos, yaw)
		vector.FillRect(screen, x-1, y-1, 2, 2, colProjectile, false)
	}

	// Player marker: a chevron pointing up the screen.
	vector.StrokeLine(screen, cx-6, cy+6, cx, cy-8, 2, colPlayer, true)
	vector.StrokeLine(screen, cx+6, cy+6, cx, cy-8, 2, colPlayer, true)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.sim
	p := s.Player
	w := s.Armory.CurrentWeapon()

	// Health bar, bottom left.
	const barW, barH = 220, 14
	bx, by := float32(16), float32(g.height-40)
	frac := float32(0)
	if p.MaxHealth() > 0 {
		frac = float32(p.Health() / p.MaxHealth())
	}
	vector.FillRect(screen, bx, by, barW, barH, colHealthBack, false)
	vector.FillRect(screen, bx, by, barW*frac, barH, colHealth, false)
	vector.StrokeRect(screen, bx, by, barW, barH, 1, colPanelEdge, false)

	ammo := w.Ammo.String()
	if w.Reloading {
		ammo = "RELOADING"
	}
	lines := []string{
		fmt.Sprintf("SCORE %d  KILLS %d", s.Session.Score(), s.Enemies.Killed()),
		fmt.Sprintf("TIME  %s  %s", game.FormatClock(s.Session.Elapsed()), strings.ToUpper(s.Session.Difficulty().String())),
		fmt.Sprintf("HP    %.0f/%.0f", p.Health(), p.MaxHealth()),
		fmt.Sprintf("%s  %s", w.Name, ammo),
		g.slotLine(),
	}
	if g.voice != nil {
		if line := g.voice.LastLine(); line != "" {
			lines = append(lines, fmt.Sprintf("%q", line))
		}
	}

	const lineH, charW, padX, padY = 12, 6, 5, 4
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, 4, 4, boxW, boxH, colPanel, false)
	vector.StrokeRect(g.hudBuf, 4, 4, boxW, boxH, 1, colPanelEdge, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, 4+padX, 4+padY+i*lineH)
	}
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)

	// Crosshair.
	cx, cy := float32(g.width)/2, float32(g.height)/2
	vector.StrokeLine(screen, cx-4, cy-20, cx+4, cy-20, 1, colText, false)
}

func (g *Game) slotLine() string {
	var b strings.Builder
	for i, k := range game.WeaponKinds {
		w := g.sim.Armory.Weapon(k)
		mark := " "
		switch {
		case k == g.sim.Armory.Current():
			mark = ">"
		case !w.Unlocked:
			mark = "x"
		}
		fmt.Fprintf(&b, "%s%d %s ", mark, i+1, k)
	}
	return strings.TrimSpace(b.String())
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	d := g.sim.Session.Difficulty()
	pick := func(x game.Difficulty) string {
		if x == d {
			return ">"
		}
		return " "
	}
	g.drawCentered(screen, []string{
		"RANCH DEFENSE",
		"",
		"Feral hogs are overrunning the ranch.",
		"",
		fmt.Sprintf("%s1 EASY   %s2 NORMAL   %s3 HARD", pick(game.DifficultyEasy), pick(game.DifficultyNormal), pick(game.DifficultyHard)),
		"",
		"WASD move  SHIFT sprint  SPACE jump",
		"MOUSE aim  CLICK fire  R reload  1-3 weapons",
		"ESC pause  M mute",
		"",
		"ENTER to start",
	}, colText)
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	g.drawCentered(screen, g.gameOverLines(), colTitle)
}

// gameOverLines is the report panel: the report itself, quip included, and
// the key help.
func (g *Game) gameOverLines() []string {
	r := g.sim.Report()
	lines := strings.Split(strings.TrimRight(r.String(), "\n"), "\n")
	return append(lines, "", "ENTER restart   C copy report   BACKSPACE menu")
}

// drawCentered renders lines in a panel at the centre of the screen.
func (g *Game) drawCentered(screen *ebiten.Image, lines []string, head color.Color) {
	const lineH = 18.0
	maxW := 0.0
	for _, l := range lines {
		w, _ := text.Measure(l, g.face, lineH)
		maxW = math.Max(maxW, w)
	}
	boxW := maxW + 40
	boxH := float64(len(lines))*lineH + 30
	x0 := (float64(g.width) - boxW) / 2
	y0 := (float64(g.height) - boxH) / 2

	vector.FillRect(screen, float32(x0), float32(y0), float32(boxW), float32(boxH), colPanel, false)
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(boxW), float32(boxH), 2, colPanelEdge, false)

	for i, l := range lines {
		w, _ := text.Measure(l, g.face, lineH)
		op := &text.DrawOptions{}
		op.GeoM.Translate((float64(g.width)-w)/2, y0+15+float64(i)*lineH)
		if i == 0 {
			op.ColorScale.ScaleWithColor(head)
		} else {
			op.ColorScale.ScaleWithColor(colText)
		}
		text.Draw(screen, l, g.face, op)
	}
}
