// Package protocol is the JSON-lines feed that drives a session without a
// browser: one envelope per line, {"t": type, "p": payload}.
package protocol

import (
	"encoding/json"
)

const (
	MsgPosition      = "position"
	MsgPositionError = "position_error"
	MsgMotion        = "motion"
	MsgKey           = "key"
	MsgTouch         = "touch"
	MsgTarget        = "target"
	MsgClearTarget   = "clear_target"
	MsgRestart       = "restart"
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"` // raw payload bytes
}
