package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensordemos/game"
	"sensordemos/session"
)

func TestBoardCellsCoverTheField(t *testing.T) {
	b := newBoard(102, 54)
	require.Equal(t, 100, b.w)
	require.Equal(t, 50, b.h)

	assert.Equal(t, cell{X: 1, Y: 1}, b.cell(0, 0))
	assert.Equal(t, cell{X: 51, Y: 26}, b.cell(50, 50))
	// 100 would be one past the last cell
	assert.Equal(t, cell{X: 100, Y: 50}, b.cell(100, 100))
	assert.Equal(t, cell{X: 1, Y: 1}, b.cell(-3, -3))
}

func TestBoardSurvivesTinyScreens(t *testing.T) {
	b := newBoard(1, 1)
	assert.Equal(t, 1, b.w)
	assert.Equal(t, 1, b.h)
	assert.Equal(t, cell{X: 1, Y: 1}, b.cell(95, 95))
}

func TestZoneCellsAreInsideTheRadius(t *testing.T) {
	b := newBoard(102, 104)
	z := game.TargetZone{X: 30, Y: 70, Radius: 8}

	cells := b.zone(z)
	require.NotEmpty(t, cells)
	for _, c := range cells {
		x := float64(c.X-1) + 0.5
		y := float64(c.Y-1) + 0.5
		assert.Less(t, z.DistanceTo(x, y), z.Radius)
	}
	// roughly pi r^2 cells on a 1:1 grid
	assert.InDelta(t, 201, len(cells), 20)
}

func TestStatusLine(t *testing.T) {
	snap := session.Snapshot{Ball: game.Ball{X: 51, Y: 49}, TiltInput: session.TiltKeyboard}
	assert.Contains(t, status(snap), "ball 51,49")
	assert.Contains(t, status(snap), "keyboard")

	snap.Ball.Won = true
	assert.Contains(t, status(snap), "You reached the target!")
}

func TestDrawOnSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	assert.NotPanics(t, func() {
		draw(screen, session.Snapshot{
			Ball: game.Ball{X: 50, Y: 50},
			Zone: game.TargetZone{X: 20, Y: 80, Radius: 8},
		})
	})
}

func TestKeyAction(t *testing.T) {
	assert.Equal(t, actionQuit, keyAction(tcell.KeyEscape, 0))
	assert.Equal(t, actionQuit, keyAction(tcell.KeyCtrlC, 0))
	assert.Equal(t, actionQuit, keyAction(tcell.KeyRune, 'q'))
	assert.Equal(t, actionRestart, keyAction(tcell.KeyRune, 'r'))
	assert.Equal(t, actionMute, keyAction(tcell.KeyRune, 'm'))
	assert.Equal(t, actionNone, keyAction(tcell.KeyUp, 0))
	assert.Equal(t, actionNone, keyAction(tcell.KeyRune, 'x'))

	assert.Equal(t, actionRedraw, eventAction(tcell.NewEventResize(80, 24)))
}

func TestLogFilePath(t *testing.T) {
	t.Setenv("SENSORDEMOS_LOG_FILE", "")
	assert.Equal(t, "", logFilePath(""))

	t.Setenv("SENSORDEMOS_LOG_FILE", "/tmp/tilt.log")
	assert.Equal(t, "/tmp/tilt.log", logFilePath(""))
	assert.Equal(t, "game.log", logFilePath("game.log"))
}
