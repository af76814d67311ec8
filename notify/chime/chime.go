// Package chime is the audible notification sink. It links the speaker
// backend, so only the commands import it.
package chime

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"sensordemos/notify"
)

const (
	chimeSampleRate = beep.SampleRate(44100)
	noteLength      = 120 * time.Millisecond
)

// Chime plays a short tone per notification: one note for alerts, a rising
// pair for arrivals.
type Chime struct {
	sr  beep.SampleRate
	log *zap.Logger
}

// New opens the speaker. Callers treat an error as "no sound" and carry on.
func New(log *zap.Logger) (*Chime, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Chime{sr: chimeSampleRate, log: log}, nil
}

func (c *Chime) Notify(n notify.Notification) {
	s, err := c.tone(n.Kind)
	if err != nil {
		c.log.Warn("chime tone", zap.Error(err))
		return
	}
	speaker.Play(s)
}

func (c *Chime) Close() {
	speaker.Close()
}

func (c *Chime) tone(k notify.Kind) (beep.Streamer, error) {
	switch k {
	case notify.KindArrival:
		low, err := c.note(660)
		if err != nil {
			return nil, err
		}
		high, err := c.note(880)
		if err != nil {
			return nil, err
		}
		return beep.Seq(low, high), nil
	default:
		return c.note(880)
	}
}

func (c *Chime) note(freq float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(c.sr, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(c.sr.N(noteLength), sine), nil
}
