package domain

import (
	"maps"
	"slices"
)

// Presence is derived from live connections and the declared status, never sent by clients.
type Presence string

const (
	PresenceOnline  Presence = "online"
	PresenceAway    Presence = "away"
	PresenceOffline Presence = "offline"
)

// StatusAvailable is the declared status of an operator accepting new chats.
const StatusAvailable = "available"

type Operator struct {
	Identity
	Capacity    int                 `cbor:"20,keyasint"`
	Load        int                 `cbor:"21,keyasint"`
	Status      string              `cbor:"22,keyasint,omitempty"`
	Locales     []string            `cbor:"23,keyasint,omitempty"`
	Seq         uint64              `cbor:"24,keyasint"`
	Connections map[string]struct{} `cbor:"-"`
}

func (o Operator) Online() bool {
	return len(o.Connections) > 0
}

// Accepting is the per-operator accepting flag.
func (o Operator) Accepting() bool {
	return o.Status == StatusAvailable
}

func (o Operator) Presence() Presence {
	switch {
	case !o.Online():
		return PresenceOffline
	case o.Accepting():
		return PresenceOnline
	default:
		return PresenceAway
	}
}

// Clone copies the mutable parts so snapshots never alias directory state.
func (o Operator) Clone() Operator {
	o.Groups = slices.Clone(o.Groups)
	o.Locales = slices.Clone(o.Locales)
	o.Connections = maps.Clone(o.Connections)
	if o.Connections == nil {
		o.Connections = map[string]struct{}{}
	}
	return o
}
