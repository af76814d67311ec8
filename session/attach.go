package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sensordemos/source"
)

type TiltInput uint8

const (
	TiltNone TiltInput = iota
	TiltMotion
	TiltKeyboard
)

func (t TiltInput) String() string {
	switch t {
	case TiltMotion:
		return "motion"
	case TiltKeyboard:
		return "keyboard"
	}
	return "none"
}

func (s *Session) failure(name string) func(error) {
	return func(err error) {
		s.Post(SourceFailure{Source: name, Err: err})
	}
}

// AttachPosition routes fixes and fix errors from src into the session.
func (s *Session) AttachPosition(src source.Source[source.Fix]) (source.Subscription, error) {
	sub, err := src.Subscribe(func(f source.Fix) { s.Post(Position{Fix: f}) }, s.failure("position"))
	if err != nil {
		return nil, fmt.Errorf("position source: %w", err)
	}
	return sub, nil
}

// AttachTouch routes touch events into the pinch gesture.
func (s *Session) AttachTouch(src source.Source[source.TouchEvent]) (source.Subscription, error) {
	sub, err := src.Subscribe(func(ev source.TouchEvent) { s.Post(Touch{Event: ev}) }, s.failure("touch"))
	if err != nil {
		return nil, fmt.Errorf("touch source: %w", err)
	}
	return sub, nil
}

// AttachTilt picks the tilt input once: motion when the device has it and the
// user allows it, the keyboard otherwise. Either source may be nil.
func (s *Session) AttachTilt(ctx context.Context, motion source.Source[source.MotionSample], keys source.Source[source.KeyPress]) (source.Subscription, TiltInput, error) {
	if motion != nil {
		sub, err := s.attachMotion(ctx, motion)
		if err == nil {
			s.Post(tiltSelected{input: TiltMotion})
			return sub, TiltMotion, nil
		}
		s.log.Info("motion input not usable, falling back to keyboard", zap.Error(err))
	}

	if keys == nil {
		return nil, TiltNone, fmt.Errorf("tilt input: %w", source.ErrUnavailable)
	}
	sub, err := keys.Subscribe(func(k source.KeyPress) { s.Post(Key{Key: k.Key}) }, s.failure("keyboard"))
	if err != nil {
		return nil, TiltNone, fmt.Errorf("tilt input: keyboard: %w", err)
	}
	s.Post(tiltSelected{input: TiltKeyboard})
	return sub, TiltKeyboard, nil
}

func (s *Session) attachMotion(ctx context.Context, motion source.Source[source.MotionSample]) (source.Subscription, error) {
	if p, ok := motion.(source.Permissioner); ok {
		granted, err := p.RequestPermission(ctx)
		if err != nil {
			return nil, fmt.Errorf("motion permission: %w", err)
		}
		if !granted {
			return nil, source.ErrPermissionDenied
		}
	}
	sub, err := motion.Subscribe(func(m source.MotionSample) { s.Post(Motion{Sample: m}) }, s.failure("motion"))
	if err != nil {
		if !errors.Is(err, source.ErrUnavailable) {
			err = fmt.Errorf("%w: %w", source.ErrUnavailable, err)
		}
		return nil, err
	}
	return sub, nil
}
