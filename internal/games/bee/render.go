package bee

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/clappy-bee/internal/core"
)

// Visual characters for rendering
const (
	BeeChar       = '●'
	WingChar      = 'ε'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}
	snap := g.sim.Snapshot()

	groundY := dst.Height() - 1
	dst.DrawHLine(0, groundY, dst.Width(), GroundChar, core.ColorOrange)

	for _, p := range snap.Pipes {
		g.drawPipe(dst, p, groundY)
	}
	g.drawBee(dst, snap)

	hud := fmt.Sprintf(" Score: %d  Best: %d ", snap.Score, snap.Best)
	dst.DrawTextColored(2, 0, hud, core.ColorBrightWhite)

	switch {
	case snap.Status == StatusIdle:
		drawCenteredMessage(dst, "CLAPPY BEE", "Space to start  |  Q to quit")
	case snap.Status == StatusOver:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Best: %d  |  R to restart", snap.Score, snap.Best))
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawPipe fills every play-field cell whose centre lies within the pipe
// columns and outside the gap.
func (g *Game) drawPipe(dst *core.Screen, p PipePair, groundY int) {
	cw, ch := g.cfg.Viewport.CellWidth, g.cfg.Viewport.CellHeight
	span := p.HSpan(g.sim.params.PipeWidth)
	gap := p.Gap(g.sim.params.GapSize)

	x0 := int(math.Floor(span.Min / cw))
	x1 := int(math.Ceil(span.Max / cw))
	for x := x0; x < x1; x++ {
		cx := (float64(x) + 0.5) * cw
		if cx < span.Min || cx > span.Max {
			continue
		}
		for y := 0; y < groundY; y++ {
			cy := (float64(y) + 0.5) * ch
			switch {
			case cy < gap.Min && (float64(y)+1.5)*ch >= gap.Min:
				dst.SetColored(x, y, PipeCapTop, core.ColorBrightGreen)
			case cy < gap.Min:
				dst.SetColored(x, y, PipeChar, core.ColorGreen)
			case cy > gap.Max && (float64(y)-0.5)*ch <= gap.Max:
				dst.SetColored(x, y, PipeCapBottom, core.ColorBrightGreen)
			case cy > gap.Max:
				dst.SetColored(x, y, PipeChar, core.ColorGreen)
			}
		}
	}
}

func (g *Game) drawBee(dst *core.Screen, snap Snapshot) {
	x := int(snap.Bee.X / g.cfg.Viewport.CellWidth)
	y := int(snap.Bee.Y / g.cfg.Viewport.CellHeight)
	body := core.ColorBrightYellow
	if snap.Status == StatusOver {
		body = core.ColorBrightRed
	}
	// The wing tucks behind a pipe instead of painting over it.
	if dst.Get(x-1, y) == ' ' {
		dst.SetColored(x-1, y, WingChar, core.ColorCyan)
	}
	dst.SetColored(x, y, BeeChar, body)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorDefault)
}
