// Package broadcast keeps dashboards in sync with the router state using
// versioned JSON patches over a filtered projection.
package broadcast

import (
	"chat-router/domain"
	"chat-router/state"
	"encoding/json"

	"github.com/samber/lo"
)

// Projection is the part of the state dashboards see: no new or closed chats,
// no connection data.
type Projection struct {
	Chatlist  map[string]ChatEntry `json:"chatlist"`
	Operators OperatorsEntry       `json:"operators"`
}

type ChatEntry struct {
	ID           string            `json:"id"`
	Status       domain.ChatStatus `json:"status"`
	LastStatus   domain.ChatStatus `json:"lastStatus,omitempty"`
	Customer     domain.Identity   `json:"customer"`
	Operator     *domain.Identity  `json:"operator,omitempty"`
	Locale       string            `json:"locale,omitempty"`
	Groups       []string          `json:"groups,omitempty"`
	MissedReason string            `json:"missedReason,omitempty"`
	Recovered    bool              `json:"recovered,omitempty"`
}

type OperatorsEntry struct {
	Identities map[string]OperatorEntry `json:"identities"`
	System     state.System             `json:"system"`
}

type OperatorEntry struct {
	domain.Identity
	Capacity int             `json:"capacity"`
	Load     int             `json:"load"`
	Status   string          `json:"status,omitempty"`
	Presence domain.Presence `json:"presence"`
	Locales  []string        `json:"locales,omitempty"`
}

func Project(view state.View) Projection {
	visible := lo.Filter(view.Chats, func(c domain.Chat, _ int) bool {
		return c.Status != domain.StatusNew && c.Status != domain.StatusClosed
	})
	return Projection{
		Chatlist: lo.SliceToMap(visible, func(c domain.Chat) (string, ChatEntry) {
			return c.ID, EntryOf(c)
		}),
		Operators: OperatorsEntry{
			Identities: lo.SliceToMap(view.Operators, func(op domain.Operator) (string, OperatorEntry) {
				return op.ID, OperatorEntry{
					Identity: op.Identity,
					Capacity: op.Capacity,
					Load:     op.Load,
					Status:   op.Status,
					Presence: op.Presence(),
					Locales:  op.Locales,
				}
			}),
			System: view.System,
		},
	}
}

// EntryOf is the wire form of a chat, shared by dashboards and operator sockets.
func EntryOf(c domain.Chat) ChatEntry {
	return ChatEntry{
		ID:           c.ID,
		Status:       c.Status,
		LastStatus:   c.LastStatus,
		Customer:     c.Customer,
		Operator:     c.Operator,
		Locale:       c.Locale,
		Groups:       c.Groups,
		MissedReason: c.MissedReason,
		Recovered:    c.Recovered,
	}
}

// Encode marshals the projection; encoding/json sorts map keys so equal projections encode equally.
func (p Projection) Encode() ([]byte, error) {
	return json.Marshal(p)
}
