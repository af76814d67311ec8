package protocol

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("trying to encode envelope with empty type")
	}
	if payload == nil {
		return nil, fmt.Errorf("trying to encode nil payload for %q", t)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode envelope: empty input")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if e.T == "" {
		return Envelope{}, fmt.Errorf("decode envelope: missing type")
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	if err := json.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("decode %q payload: %w", env.T, err)
	}
	return out, nil
}

// Decode parses one line into its payload value (Position, Motion, ...).
// clear_target and restart need no payload.
func Decode(b []byte) (any, error) {
	env, err := DecodeEnvelope(b)
	if err != nil {
		return nil, err
	}
	switch env.T {
	case MsgPosition:
		return DecodePayload[Position](env)
	case MsgPositionError:
		return DecodePayload[PositionError](env)
	case MsgMotion:
		return DecodePayload[Motion](env)
	case MsgKey:
		return DecodePayload[Key](env)
	case MsgTouch:
		return DecodePayload[Touch](env)
	case MsgTarget:
		return DecodePayload[Target](env)
	case MsgClearTarget:
		return ClearTarget{}, nil
	case MsgRestart:
		return Restart{}, nil
	}
	return nil, fmt.Errorf("unknown message type %q", env.T)
}

// LineError is a feed line that could not be decoded. The reader can carry on
// past it.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }

// Reader yields decoded messages from a feed. Blank lines and lines starting
// with '#' are skipped.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &Reader{sc: sc}
}

// Next returns io.EOF once the feed is exhausted.
func (r *Reader) Next() (any, error) {
	for r.sc.Scan() {
		r.line++
		b := bytes.TrimSpace(r.sc.Bytes())
		if len(b) == 0 || b[0] == '#' {
			continue
		}
		msg, err := Decode(b)
		if err != nil {
			return nil, &LineError{Line: r.line, Err: err}
		}
		return msg, nil
	}
	if err := r.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}
