package broadcast

import (
	"chat-router/domain"
	"chat-router/errors"
	"chat-router/state"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGate_Admit(t *testing.T) {
	operator := &domain.Identity{ID: "op1"}

	tests := []struct {
		name     string
		identity *domain.Identity
		raw      string
		want     state.Action
		err      error
	}{
		{
			name:     "accepts customers",
			identity: operator,
			raw:      `{"type":"SET_SYSTEM_ACCEPTS_CUSTOMERS","accept":false}`,
			want:     state.SetAcceptsCustomers{OperatorID: "op1", Accepts: false},
		},
		{
			name:     "capacity as number",
			identity: operator,
			raw:      `{"type":"SET_OPERATOR_CAPACITY","capacity":3}`,
			want:     state.SetOperatorCapacity{OperatorID: "op1", Capacity: 3},
		},
		{
			name:     "capacity as string",
			identity: operator,
			raw:      `{"type":"SET_OPERATOR_CAPACITY","capacity":"4"}`,
			want:     state.SetOperatorCapacity{OperatorID: "op1", Capacity: 4},
		},
		{
			name:     "status",
			identity: operator,
			raw:      `{"type":"SET_OPERATOR_STATUS","status":"away"}`,
			want:     state.SetOperatorStatus{OperatorID: "op1", Status: "away"},
		},
		{
			name: "unauthenticated socket",
			raw:  `{"type":"SET_OPERATOR_STATUS","status":"away"}`,
			err:  errors.ErrSocketNotAuthorized,
		},
		{
			name:     "action outside the allow list",
			identity: operator,
			raw:      `{"type":"CLOSE_CHAT"}`,
			err:      errors.ErrRemoteDispatchNotAllowed,
		},
		{
			name:     "internal action",
			identity: operator,
			raw:      `{"type":"ASSIGN_NEXT_CHAT"}`,
			err:      errors.ErrRemoteDispatchNotAllowed,
		},
		{
			name:     "malformed json",
			identity: operator,
			raw:      `{"type":`,
			err:      errors.ErrInvalidCommand,
		},
		{
			name:     "missing accept flag",
			identity: operator,
			raw:      `{"type":"SET_SYSTEM_ACCEPTS_CUSTOMERS"}`,
			err:      errors.ErrInvalidCommand,
		},
		{
			name:     "negative capacity",
			identity: operator,
			raw:      `{"type":"SET_OPERATOR_CAPACITY","capacity":-1}`,
			err:      errors.ErrInvalidCommand,
		},
		{
			name:     "capacity not a number",
			identity: operator,
			raw:      `{"type":"SET_OPERATOR_CAPACITY","capacity":"many"}`,
			err:      errors.ErrInvalidCommand,
		},
		{
			name:     "unknown status",
			identity: operator,
			raw:      `{"type":"SET_OPERATOR_STATUS","status":"sleeping"}`,
			err:      errors.ErrInvalidCommand,
		},
		{
			name:     "missing status",
			identity: operator,
			raw:      `{"type":"SET_OPERATOR_STATUS"}`,
			err:      errors.ErrInvalidCommand,
		},
	}

	gate := NewGate()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			action, err := gate.Admit(tt.identity, json.RawMessage(tt.raw))
			if tt.err != nil {
				req.ErrorIs(err, tt.err)
				req.Nil(action)
				return
			}
			req.NoError(err)
			req.Equal(tt.want, action)
		})
	}
}
