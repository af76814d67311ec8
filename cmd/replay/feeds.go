package main

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"sensordemos/protocol"
	"sensordemos/session"
	"sensordemos/source"
)

// feeds stand in for the browser's sensors. Each one is pushed from the
// replayed lines and attached to the session like a live source.
type feeds struct {
	position *source.Feed[source.Fix]
	motion   *source.Feed[source.MotionSample]
	keys     *source.Feed[source.KeyPress]
	touch    *source.Feed[source.TouchEvent]

	subs []source.Subscription
}

func newFeeds() *feeds {
	return &feeds{
		position: source.NewFeed[source.Fix](),
		motion:   source.NewFeed[source.MotionSample](),
		keys:     source.NewFeed[source.KeyPress](),
		touch:    source.NewFeed[source.TouchEvent](),
	}
}

// attach subscribes s to every feed. With keysOnly the motion feed is left
// out so tilt falls back to the keyboard.
func (f *feeds) attach(ctx context.Context, s *session.Session, keysOnly bool) (session.TiltInput, error) {
	pos, err := s.AttachPosition(f.position)
	if err != nil {
		return session.TiltNone, err
	}
	f.subs = append(f.subs, pos)

	touch, err := s.AttachTouch(f.touch)
	if err != nil {
		return session.TiltNone, err
	}
	f.subs = append(f.subs, touch)

	var motion source.Source[source.MotionSample] = f.motion
	if keysOnly {
		motion = nil
	}
	tilt, input, err := s.AttachTilt(ctx, motion, f.keys)
	if err != nil {
		return session.TiltNone, err
	}
	f.subs = append(f.subs, tilt)
	return input, nil
}

func (f *feeds) close() {
	for _, sub := range f.subs {
		sub.Unsubscribe()
	}
	f.position.Close()
	f.motion.Close()
	f.keys.Close()
	f.touch.Close()
}

func (f *feeds) dispatch(s *session.Session, msg any) error {
	switch m := msg.(type) {
	case protocol.Position:
		f.position.Push(m.Fix())
	case protocol.PositionError:
		f.position.Fail(m.Err())
	case protocol.Motion:
		f.motion.Push(m.Sample())
	case protocol.Key:
		f.keys.Push(m.Press())
	case protocol.Touch:
		ev, err := m.Event()
		if err != nil {
			return err
		}
		f.touch.Push(ev)
	case protocol.Target:
		s.Post(session.SetTarget{Point: m.Point()})
	case protocol.ClearTarget:
		s.Post(session.ClearTarget{})
	case protocol.Restart:
		s.Post(session.RestartGame{})
	}
	return nil
}

// replay feeds every line of r to s. Malformed lines are logged and skipped.
func (f *feeds) replay(ctx context.Context, r io.Reader, s *session.Session, log *zap.Logger) (int, error) {
	rd := protocol.NewReader(r)
	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		msg, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		var le *protocol.LineError
		if errors.As(err, &le) {
			log.Warn("skipping feed line", zap.Int("line", le.Line), zap.Error(le.Err))
			continue
		}
		if err != nil {
			return n, err
		}
		if err := f.dispatch(s, msg); err != nil {
			log.Warn("skipping feed message", zap.Error(err))
			continue
		}
		n++
	}
}
