package chime

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sensordemos/notify"
)

func TestTonesHaveExpectedLength(t *testing.T) {
	c := &Chime{sr: chimeSampleRate, log: zap.NewNop()}
	want := map[notify.Kind]int{
		notify.KindAlert:   chimeSampleRate.N(noteLength),
		notify.KindArrival: 2 * chimeSampleRate.N(noteLength),
	}
	for kind, n := range want {
		s, err := c.tone(kind)
		require.NoError(t, err)
		assert.Equal(t, n, drain(s), kind.String())
	}
}

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}
