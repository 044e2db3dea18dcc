package state

import (
	"chat-router/domain"
	"time"
)

// Effect is a side effect returned by the reducer and executed after the state commit.
type Effect interface {
	effect()
}

type OfferPurpose string

const (
	OfferAssign   OfferPurpose = "assign"
	OfferTransfer OfferPurpose = "transfer"
	OfferReopen   OfferPurpose = "reopen"
	OfferRecover  OfferPurpose = "recover"
	OfferReassign OfferPurpose = "reassign"
	OfferJoin     OfferPurpose = "join"
)

// Dispatch queues a follow-up action, processed before the next inbound action.
type Dispatch struct{ Action Action }

// Schedule arms a delayed action; a later Schedule with the same key replaces it.
type Schedule struct {
	Key    string
	Delay  time.Duration
	Action Action
}

type Cancel struct{ Key string }

// Offer asks the operator connections to open the chat, bounded by the offer timeout.
// ConnID restricts the offer to one connection.
type Offer struct {
	Purpose  OfferPurpose
	Chat     domain.Chat
	Operator domain.Identity
	From     *domain.Identity
	ConnID   string
}

// Relay delivers a message to the customer room, the chat operators and every agent.
type Relay struct {
	Message domain.Message
}

type CustomerAccept struct {
	ChatID string
	Accept bool
}

type CustomerStatus struct {
	ChatID string
	Status domain.ChatStatus
}

// CloseRoom notifies the chat operators and removes all of them from the chat room.
type CloseRoom struct {
	Chat domain.Chat
	By   *domain.Identity
}

// LeaveRoom removes one operator from the chat room.
type LeaveRoom struct {
	Chat       domain.Chat
	OperatorID string
}

// NotifyOperator emits a chat-scoped event to every connection of one operator.
type NotifyOperator struct {
	OperatorID string
	Event      string
	Chat       domain.Chat
}

type Publish struct {
	Event domain.LifecycleEvent
}

func (Dispatch) effect()       {}
func (Schedule) effect()       {}
func (Cancel) effect()         {}
func (Offer) effect()          {}
func (Relay) effect()          {}
func (CustomerAccept) effect() {}
func (CustomerStatus) effect() {}
func (CloseRoom) effect()      {}
func (LeaveRoom) effect()      {}
func (NotifyOperator) effect() {}
func (Publish) effect()        {}
