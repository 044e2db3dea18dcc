package ws

import (
	"chat-router/errors"
	"encoding/json"
	"fmt"
)

// Frame is the envelope of every websocket message in both directions.
// A frame with an ID expects an acknowledgment frame (Ack set) carrying the same ID.
type Frame struct {
	Event string            `json:"event,omitempty"`
	Args  []json.RawMessage `json:"args,omitempty"`
	ID    uint64            `json:"id,omitempty"`
	Ack   bool              `json:"ack,omitempty"`
}

func (f Frame) WantsAck() bool {
	return f.ID != 0 && !f.Ack
}

// Arg decodes the i-th argument into v.
func (f Frame) Arg(i int, v any) error {
	if i >= len(f.Args) {
		return fmt.Errorf("%w: %s expects at least %d arguments", errors.ErrInvalidFrame, f.Event, i+1)
	}
	if err := json.Unmarshal(f.Args[i], v); err != nil {
		return fmt.Errorf("%w: %s argument %d: %v", errors.ErrInvalidFrame, f.Event, i, err)
	}
	return nil
}

func encodeFrame(f Frame, args ...any) ([]byte, error) {
	for _, arg := range args {
		raw, err := json.Marshal(arg)
		if err != nil {
			return nil, err
		}
		f.Args = append(f.Args, raw)
	}
	return json.Marshal(f)
}
