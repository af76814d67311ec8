package source

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"sensordemos/game"
)

// Keyboard turns terminal key events into KeyPress samples. The screen has a
// single event queue, so the owner either calls Poll or forwards events to
// Handle from its own loop.
type Keyboard struct {
	*Feed[KeyPress]
	screen tcell.Screen
}

func NewKeyboard(screen tcell.Screen) *Keyboard {
	return &Keyboard{Feed: NewFeed[KeyPress](), screen: screen}
}

func (k *Keyboard) Subscribe(onSample func(KeyPress), onError func(error)) (Subscription, error) {
	if k.screen == nil {
		return nil, ErrUnavailable
	}
	return k.Feed.Subscribe(onSample, onError)
}

// Handle publishes ev if it is a key event and reports whether it did.
func (k *Keyboard) Handle(ev tcell.Event) bool {
	kev, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	k.Push(KeyPress{Key: mapKey(kev.Key())})
	return true
}

// Poll reads screen events until ctx ends or the screen is finalized. Events
// for which intercept returns true are not published.
func (k *Keyboard) Poll(ctx context.Context, intercept func(tcell.Event) bool) error {
	if k.screen == nil {
		return ErrUnavailable
	}
	for {
		ev := k.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if intercept != nil && intercept(ev) {
			continue
		}
		k.Handle(ev)
	}
}

func mapKey(key tcell.Key) game.Key {
	switch key {
	case tcell.KeyUp:
		return game.KeyUp
	case tcell.KeyDown:
		return game.KeyDown
	case tcell.KeyLeft:
		return game.KeyLeft
	case tcell.KeyRight:
		return game.KeyRight
	}
	return game.KeyOther
}
