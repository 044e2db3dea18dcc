package ws

import (
	"chat-router/errors"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrame_Encoding(t *testing.T) {
	req := require.New(t)

	data, err := encodeFrame(Frame{Event: "status", ID: 4}, "assigned", 2)
	req.NoError(err)
	req.JSONEq(`{"event":"status","args":["assigned",2],"id":4}`, string(data))

	var f Frame
	req.NoError(json.Unmarshal(data, &f))
	req.True(f.WantsAck())

	var status string
	req.NoError(f.Arg(0, &status))
	req.Equal("assigned", status)

	var missing string
	req.ErrorIs(f.Arg(2, &missing), errors.ErrInvalidFrame)
	req.ErrorIs(f.Arg(1, &missing), errors.ErrInvalidFrame)
}

func TestFrame_AckNeverWantsAck(t *testing.T) {
	req := require.New(t)
	req.False(Frame{ID: 3, Ack: true}.WantsAck())
	req.False(Frame{Event: "typing"}.WantsAck())
}

func TestAccepted(t *testing.T) {
	req := require.New(t)
	raw := func(args ...string) []json.RawMessage {
		var out []json.RawMessage
		for _, a := range args {
			out = append(out, json.RawMessage(a))
		}
		return out
	}
	req.True(accepted(nil))
	req.True(accepted(raw("null")))
	req.True(accepted(raw("null", "true")))
	req.True(accepted(raw("true")))
	req.False(accepted(raw("false")))
	req.False(accepted(raw("null", "false")))
	req.False(accepted(raw(`"busy"`)))
}
