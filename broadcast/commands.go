package broadcast

import (
	"chat-router/domain"
	"chat-router/errors"
	"chat-router/state"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	CommandSetAcceptsCustomers = "SET_SYSTEM_ACCEPTS_CUSTOMERS"
	CommandSetOperatorCapacity = "SET_OPERATOR_CAPACITY"
	CommandSetOperatorStatus   = "SET_OPERATOR_STATUS"
)

// allowed is the complete list of actions a dashboard may dispatch.
var allowed = map[string]struct{}{
	CommandSetAcceptsCustomers: {},
	CommandSetOperatorCapacity: {},
	CommandSetOperatorStatus:   {},
}

// RemoteCommand is the wire form of broadcast.dispatch.
type RemoteCommand struct {
	Type     string          `json:"type" validate:"required"`
	Accept   *bool           `json:"accept,omitempty"`
	Capacity json.RawMessage `json:"capacity,omitempty"`
	Status   string          `json:"status,omitempty" validate:"omitempty,oneof=available unavailable away"`
}

type Gate struct {
	validate *validator.Validate
}

func NewGate() *Gate {
	return &Gate{validate: validator.New()}
}

// Admit turns a dashboard command into an action on behalf of identity.
// Nothing reaches the coordinator unless the command is authenticated, allowed and well formed.
func (g *Gate) Admit(identity *domain.Identity, raw json.RawMessage) (state.Action, error) {
	if identity == nil {
		return nil, errors.ErrSocketNotAuthorized
	}
	var cmd RemoteCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	if _, ok := allowed[cmd.Type]; !ok {
		return nil, errors.ErrRemoteDispatchNotAllowed
	}
	if err := g.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}

	switch cmd.Type {
	case CommandSetAcceptsCustomers:
		if cmd.Accept == nil {
			return nil, fmt.Errorf("%w: accept is required", errors.ErrInvalidCommand)
		}
		return state.SetAcceptsCustomers{OperatorID: identity.ID, Accepts: *cmd.Accept}, nil
	case CommandSetOperatorCapacity:
		capacity, err := parseCapacity(cmd.Capacity)
		if err != nil {
			return nil, err
		}
		return state.SetOperatorCapacity{OperatorID: identity.ID, Capacity: capacity}, nil
	default:
		if cmd.Status == "" {
			return nil, fmt.Errorf("%w: status is required", errors.ErrInvalidCommand)
		}
		return state.SetOperatorStatus{OperatorID: identity.ID, Status: cmd.Status}, nil
	}
}

// parseCapacity accepts a JSON number or a numeric string.
func parseCapacity(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("%w: capacity is required", errors.ErrInvalidCommand)
	}
	text := strings.Trim(string(raw), `"`)
	capacity, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || capacity < 0 {
		return 0, fmt.Errorf("%w: capacity %s is not a natural number", errors.ErrInvalidCommand, raw)
	}
	return capacity, nil
}
