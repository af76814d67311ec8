package protocol

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensordemos/game"
	"sensordemos/source"
)

func TestEncodeDecodePosition(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b, err := Encode(MsgPosition, Position{Lat: 40.4, Lon: -3.7, Accuracy: 12, Timestamp: ts})
	require.NoError(t, err)

	msg, err := Decode(b)
	require.NoError(t, err)
	p, ok := msg.(Position)
	require.True(t, ok, "got %T", msg)

	fix := p.Fix()
	assert.Equal(t, 40.4, fix.Point.Lat)
	assert.Equal(t, -3.7, fix.Point.Lon)
	assert.Equal(t, 12.0, fix.Accuracy)
	assert.True(t, ts.Equal(fix.Timestamp))
}

func TestEncodeRejectsEmptyTypeAndNilPayload(t *testing.T) {
	_, err := Encode("", Key{})
	assert.Error(t, err)
	_, err = Encode(MsgKey, nil)
	assert.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	for name, line := range map[string]string{
		"empty":        "",
		"not json":     "hello",
		"missing type": `{"p":{}}`,
		"unknown type": `{"t":"teleport","p":{}}`,
		"no payload":   `{"t":"key"}`,
		"bad payload":  `{"t":"key","p":{"key":5}}`,
	} {
		_, err := Decode([]byte(line))
		assert.Error(t, err, name)
	}
}

func TestDecodePayloadlessMessages(t *testing.T) {
	msg, err := Decode([]byte(`{"t":"clear_target"}`))
	require.NoError(t, err)
	assert.Equal(t, ClearTarget{}, msg)

	msg, err = Decode([]byte(`{"t":"restart"}`))
	require.NoError(t, err)
	assert.Equal(t, Restart{}, msg)
}

func TestMotionSample(t *testing.T) {
	msg, err := Decode([]byte(`{"t":"motion","p":{"accel":{"x":1,"y":-2,"z":9.8}}}`))
	require.NoError(t, err)
	s := msg.(Motion).Sample()
	require.NotNil(t, s.Accel)
	assert.Equal(t, game.Acceleration{X: 1, Y: -2, Z: 9.8}, *s.Accel)

	msg, err = Decode([]byte(`{"t":"motion","p":{}}`))
	require.NoError(t, err)
	assert.Nil(t, msg.(Motion).Sample().Accel)
}

func TestKeyPress(t *testing.T) {
	assert.Equal(t, game.KeyUp, Key{Key: "ArrowUp"}.Press().Key)
	assert.Equal(t, game.KeyRight, Key{Key: "right"}.Press().Key)
	assert.Equal(t, game.KeyOther, Key{Key: "a"}.Press().Key)
}

func TestTouchEvent(t *testing.T) {
	ev, err := Touch{
		Phase:   "end",
		Touches: []Contact{{ID: 1, X: 1, Y: 2}},
		Changed: []Contact{{ID: 2, X: 3, Y: 4}},
	}.Event()
	require.NoError(t, err)
	assert.Equal(t, source.TouchEnd, ev.Phase)
	p, ok := ev.Find(2)
	require.True(t, ok)
	assert.Equal(t, 3.0, p.X)

	_, err = Touch{Phase: "hover"}.Event()
	assert.Error(t, err)
}

func TestPositionErrorMapsToSourceErrors(t *testing.T) {
	assert.True(t, errors.Is(PositionError{Code: "timeout"}.Err(), source.ErrTimeout))
	assert.True(t, errors.Is(PositionError{Code: "unavailable", Message: "no gps"}.Err(), source.ErrUnavailable))
	assert.True(t, errors.Is(PositionError{Code: "denied"}.Err(), source.ErrPermissionDenied))
	assert.Error(t, PositionError{Code: "weird"}.Err())
}

func TestReaderSkipsCommentsAndReportsLine(t *testing.T) {
	feed := strings.Join([]string{
		"# walk to the square",
		`{"t":"target","p":{"lat":40.4,"lon":-3.7}}`,
		"",
		`{"t":"key","p":{"key":"up"}}`,
		`{"t":"bogus","p":{}}`,
	}, "\n")
	r := NewReader(strings.NewReader(feed))

	msg, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, Target{Lat: 40.4, Lon: -3.7}, msg)

	msg, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, Key{Key: "up"}, msg)

	_, err = r.Next()
	var le *LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 5, le.Line)
	assert.Contains(t, err.Error(), "line 5")

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}
