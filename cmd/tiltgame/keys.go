package main

import "github.com/gdamore/tcell/v2"

type action uint8

const (
	actionNone action = iota
	actionQuit
	actionRestart
	actionRedraw
	actionMute
)

func keyAction(key tcell.Key, r rune) action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyRune:
		switch r {
		case 'r', 'R':
			return actionRestart
		case 'q':
			return actionQuit
		case 'm', 'M':
			return actionMute
		}
	}
	return actionNone
}

func eventAction(ev tcell.Event) action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return keyAction(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		return actionRedraw
	}
	return actionNone
}
