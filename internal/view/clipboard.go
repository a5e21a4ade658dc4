package view

import "github.com/atotto/clipboard"

// copyReport puts the end-of-match report on the system clipboard.
func (g *Game) copyReport() {
	report := g.sim.Report().String()
	if err := clipboard.WriteAll(report); err != nil {
		g.log.Warn().Err(err).Msg("clipboard unavailable")
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("report copied")
}
