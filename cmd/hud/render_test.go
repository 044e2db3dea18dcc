package main

import (
	"bytes"
	"chat-router/broadcast"
	"chat-router/domain"
	"chat-router/state"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	req := require.New(t)
	color.Disable()

	// Given a projection with one assigned chat
	operator := domain.Identity{ID: "op-1", DisplayName: "Ripley"}
	p := broadcast.Projection{
		Chatlist: map[string]broadcast.ChatEntry{
			"chat-1": {ID: "chat-1", Status: domain.StatusAssigned, Customer: domain.Identity{ID: "c-1", DisplayName: "Dallas"}, Operator: &operator},
		},
		Operators: broadcast.OperatorsEntry{
			Identities: map[string]broadcast.OperatorEntry{
				"op-1": {Identity: operator, Capacity: 2, Load: 1, Presence: domain.PresenceOnline},
			},
			System: state.System{AcceptsCustomers: true},
		},
	}

	// When it is rendered
	var out bytes.Buffer
	Render(&out, "v1", p)

	// Then the chat and the operator load are listed
	req.Contains(out.String(), "chat-1")
	req.Contains(out.String(), "Dallas")
	req.Contains(out.String(), "1/2")
	req.Contains(out.String(), "accepting customers")
}
