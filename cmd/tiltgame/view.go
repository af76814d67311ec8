package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"sensordemos/game"
	"sensordemos/session"
)

const statusRows = 2

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTarget = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBall   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleWon    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

type cell struct{ X, Y int }

// board maps the 0..100 field onto the terminal area inside the border.
type board struct {
	w, h int // inner size in cells
}

func newBoard(screenW, screenH int) board {
	return board{w: max(screenW-2, 1), h: max(screenH-2-statusRows, 1)}
}

func (b board) cell(x, y float64) cell {
	return cell{X: 1 + scale(x, b.w), Y: 1 + scale(y, b.h)}
}

func scale(pct float64, size int) int {
	i := int(pct / 100 * float64(size))
	if i >= size {
		i = size - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// zone returns the cells whose centers fall inside the target circle.
func (b board) zone(z game.TargetZone) []cell {
	var out []cell
	for cy := 0; cy < b.h; cy++ {
		for cx := 0; cx < b.w; cx++ {
			x := (float64(cx) + 0.5) / float64(b.w) * 100
			y := (float64(cy) + 0.5) / float64(b.h) * 100
			if z.DistanceTo(x, y) < z.Radius {
				out = append(out, cell{X: 1 + cx, Y: 1 + cy})
			}
		}
	}
	return out
}

func status(snap session.Snapshot) string {
	if snap.Ball.Won {
		return "You reached the target!  r: play again  esc: quit"
	}
	return fmt.Sprintf("ball %.0f,%.0f  input: %s  arrows: tilt  r: restart  m: mute  esc: quit",
		snap.Ball.X, snap.Ball.Y, snap.TiltInput)
}

func draw(screen tcell.Screen, snap session.Snapshot) {
	w, h := screen.Size()
	b := newBoard(w, h)
	screen.Clear()

	right, bottom := b.w+1, b.h+1
	for x := 0; x <= right; x++ {
		screen.SetContent(x, 0, '─', nil, styleBorder)
		screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := 0; y <= bottom; y++ {
		screen.SetContent(0, y, '│', nil, styleBorder)
		screen.SetContent(right, y, '│', nil, styleBorder)
	}
	screen.SetContent(0, 0, '┌', nil, styleBorder)
	screen.SetContent(right, 0, '┐', nil, styleBorder)
	screen.SetContent(0, bottom, '└', nil, styleBorder)
	screen.SetContent(right, bottom, '┘', nil, styleBorder)

	for _, c := range b.zone(snap.Zone) {
		screen.SetContent(c.X, c.Y, '░', nil, styleTarget)
	}
	ball := b.cell(snap.Ball.X, snap.Ball.Y)
	ballStyle := styleBall
	if snap.Ball.Won {
		ballStyle = styleWon
	}
	screen.SetContent(ball.X, ball.Y, '●', nil, ballStyle)

	st := styleStatus
	if snap.Ball.Won {
		st = styleWon
	}
	for i, r := range []rune(status(snap)) {
		screen.SetContent(i, bottom+1, r, nil, st)
	}
	screen.Show()
}
