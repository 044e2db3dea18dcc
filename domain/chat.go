// Package domain contains core concepts of the support chat router.
// This file defines Chat records and their lifecycle statuses.
// No runtime, network, or UI logic should be added here.
package domain

import "slices"

type ChatStatus string

const (
	StatusNew                ChatStatus = "new"
	StatusPending            ChatStatus = "pending"
	StatusAssigning          ChatStatus = "assigning"
	StatusAssigned           ChatStatus = "assigned"
	StatusMissed             ChatStatus = "missed"
	StatusCustomerDisconnect ChatStatus = "customer-disconnect"
	StatusAbandoned          ChatStatus = "abandoned"
	StatusClosed             ChatStatus = "closed"
)

// Statuses lists every chat status in lifecycle order.
var Statuses = []ChatStatus{
	StatusNew, StatusPending, StatusAssigning, StatusAssigned,
	StatusMissed, StatusCustomerDisconnect, StatusAbandoned, StatusClosed,
}

// DefaultGroup is the implicit group of operators without explicit group restriction.
const DefaultGroup = "__default"

// Identity is the snapshot of a customer, operator or agent captured at authentication.
type Identity struct {
	ID          string   `json:"id" cbor:"1,keyasint" validate:"required"`
	DisplayName string   `json:"displayName,omitempty" cbor:"2,keyasint,omitempty"`
	Username    string   `json:"username,omitempty" cbor:"3,keyasint,omitempty"`
	Picture     string   `json:"picture,omitempty" cbor:"4,keyasint,omitempty"`
	Locale      string   `json:"locale,omitempty" cbor:"5,keyasint,omitempty"`
	Groups      []string `json:"groups,omitempty" cbor:"6,keyasint,omitempty"`
}

// Public limits the identity to the fields other participants are allowed to see.
func (i Identity) Public() Identity {
	return Identity{ID: i.ID, DisplayName: i.DisplayName, Username: i.Username, Picture: i.Picture}
}

// ChatDescriptor is what a customer connection declares when joining.
type ChatDescriptor struct {
	ID       string   `json:"id" validate:"required"`
	Customer Identity `json:"customer"`
	Locale   string   `json:"locale,omitempty"`
	Groups   []string `json:"groups,omitempty"`
}

// Chat is one customer conversation tracked through its lifecycle.
// Operator may outlive the assignment (abandoned, closed) for recovery and reopening.
type Chat struct {
	ID           string     `cbor:"1,keyasint"`
	Status       ChatStatus `cbor:"2,keyasint"`
	LastStatus   ChatStatus `cbor:"3,keyasint,omitempty"`
	Customer     Identity   `cbor:"4,keyasint"`
	Operator     *Identity  `cbor:"5,keyasint,omitempty"`
	Locale       string     `cbor:"6,keyasint,omitempty"`
	Groups       []string   `cbor:"7,keyasint,omitempty"`
	Seq          uint64     `cbor:"8,keyasint"`
	MissedReason string     `cbor:"9,keyasint,omitempty"`
	Recovered    bool       `cbor:"10,keyasint,omitempty"`
}

func NewChat(desc ChatDescriptor, seq uint64) Chat {
	return Chat{
		ID:       desc.ID,
		Status:   StatusNew,
		Customer: desc.Customer,
		Locale:   desc.Locale,
		Groups:   slices.Clone(desc.Groups),
		Seq:      seq,
	}
}

// HasActiveOperator reports whether the chat currently obliges its operator.
func (c Chat) HasActiveOperator() bool {
	return c.Operator != nil && (c.Status == StatusAssigned || c.Status == StatusCustomerDisconnect)
}

// OperatorID returns the referenced operator id, active or not.
func (c Chat) OperatorID() string {
	if c.Operator == nil {
		return ""
	}
	return c.Operator.ID
}

func (c Chat) IsAssignable() bool {
	return c.Status == StatusPending || c.Status == StatusMissed
}

// WithStatus returns a copy moved to status, remembering the previous one.
func (c Chat) WithStatus(status ChatStatus) Chat {
	c.LastStatus = c.Status
	c.Status = status
	return c
}
