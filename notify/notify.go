// Package notify delivers the user-facing side of kernel events. The kernels
// only return events; sessions turn them into Notifications for a Sink.
package notify

import (
	"go.uber.org/zap"

	"sensordemos/game"
	"sensordemos/proximity"
)

type Kind uint8

const (
	KindAlert Kind = iota + 1
	KindArrival
)

func (k Kind) String() string {
	switch k {
	case KindAlert:
		return "alert"
	case KindArrival:
		return "arrival"
	}
	return "unknown"
}

type Notification struct {
	Kind  Kind
	Title string
	Body  string
}

type Sink interface {
	Notify(Notification)
}

type SinkFunc func(Notification)

func (f SinkFunc) Notify(n Notification) { f(n) }

func FromAlert(ev proximity.AlertEvent) Notification {
	return Notification{Kind: KindAlert, Title: "Near your destination!", Body: ev.Message()}
}

func FromArrival(game.ArrivalEvent) Notification {
	return Notification{Kind: KindArrival, Title: "Target reached", Body: "You reached the target!"}
}

// Fanout sends every notification to all sinks in order.
type Fanout []Sink

func (f Fanout) Notify(n Notification) {
	for _, s := range f {
		if s != nil {
			s.Notify(n)
		}
	}
}

// Permitted forwards to sink only while granted reports true. It models
// system notifications, which need the user's permission.
func Permitted(sink Sink, granted func() bool) Sink {
	return SinkFunc(func(n Notification) {
		if granted != nil && granted() {
			sink.Notify(n)
		}
	})
}

// Log is the in-app message sink; it is always shown.
type Log struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *Log {
	if log == nil {
		log = zap.NewNop()
	}
	return &Log{log: log}
}

func (l *Log) Notify(n Notification) {
	l.log.Info(n.Title, zap.Stringer("kind", n.Kind), zap.String("message", n.Body))
}
