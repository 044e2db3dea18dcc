package state

import "chat-router/domain"

// Action is a tagged variant processed by the coordinator pipeline.
type Action interface {
	ActionType() string
}

// Customer gateway

type CustomerJoin struct {
	ConnID string
	Chat   domain.ChatDescriptor
}

type CustomerMessage struct {
	Chat    domain.ChatDescriptor
	Message domain.Message
	// DetectedLocale fills the chat locale when the customer declared none.
	DetectedLocale string
}

type CustomerDisconnect struct {
	ChatID string
}

// Operator gateway

type OperatorConnect struct {
	Operator domain.Identity
	ConnID   string
	Capacity *int
	Status   string
	Locales  []string
}

type OperatorReady struct {
	OperatorID string
	Capacity   *int
	Status     string
}

type OperatorDisconnect struct {
	OperatorID string
	ConnID     string
}

type RemoveOperator struct {
	OperatorID string
}

type OperatorMessage struct {
	ChatID   string
	Operator domain.Identity
	Message  domain.Message
}

type JoinChat struct {
	ChatID   string
	Operator domain.Identity
}

type LeaveChat struct {
	ChatID   string
	Operator domain.Identity
}

type CloseChat struct {
	ChatID   string
	Operator domain.Identity
}

type TransferChat struct {
	ChatID   string
	Operator domain.Identity
	TargetID string
}

// Agent gateway

type AgentMessage struct {
	ChatID  string
	Agent   domain.Identity
	Message domain.Message
}

// Dashboard commands

type SetAcceptsCustomers struct {
	OperatorID string
	Accepts    bool
}

type SetOperatorCapacity struct {
	OperatorID string
	Capacity   int
}

type SetOperatorStatus struct {
	OperatorID string
	Status     string
}

// Internal

// AssignNext scans the queue and starts at most one assignment.
type AssignNext struct{}

type AssignChat struct {
	ChatID string
}

// OfferResolved re-enters the pipeline once an offer has been accepted, rejected or timed out.
type OfferResolved struct {
	ChatID   string
	Purpose  OfferPurpose
	Operator domain.Identity
	From     *domain.Identity
	ConnID   string
	Err      error
}

type CustomerLeft struct {
	ChatID string
}

type Autoclose struct {
	ChatID string
}

// TimerFired wraps a delayed action; the coordinator drops it when the timer was canceled meanwhile.
type TimerFired struct {
	Key    string
	Seq    uint64
	Action Action
}

func (CustomerJoin) ActionType() string        { return "CUSTOMER_JOIN" }
func (CustomerMessage) ActionType() string     { return "CUSTOMER_INBOUND_MESSAGE" }
func (CustomerDisconnect) ActionType() string  { return "CUSTOMER_DISCONNECT" }
func (OperatorConnect) ActionType() string     { return "OPERATOR_CONNECT" }
func (OperatorReady) ActionType() string       { return "OPERATOR_READY" }
func (OperatorDisconnect) ActionType() string  { return "OPERATOR_DISCONNECT" }
func (RemoveOperator) ActionType() string      { return "REMOVE_OPERATOR" }
func (OperatorMessage) ActionType() string     { return "OPERATOR_INBOUND_MESSAGE" }
func (JoinChat) ActionType() string            { return "OPERATOR_CHAT_JOIN" }
func (LeaveChat) ActionType() string           { return "OPERATOR_CHAT_LEAVE" }
func (CloseChat) ActionType() string           { return "CLOSE_CHAT" }
func (TransferChat) ActionType() string        { return "OPERATOR_CHAT_TRANSFER" }
func (AgentMessage) ActionType() string        { return "AGENT_INBOUND_MESSAGE" }
func (SetAcceptsCustomers) ActionType() string { return "SET_SYSTEM_ACCEPTS_CUSTOMERS" }
func (SetOperatorCapacity) ActionType() string { return "SET_OPERATOR_CAPACITY" }
func (SetOperatorStatus) ActionType() string   { return "SET_OPERATOR_STATUS" }
func (AssignNext) ActionType() string          { return "ASSIGN_NEXT_CHAT" }
func (AssignChat) ActionType() string          { return "ASSIGN_CHAT" }
func (OfferResolved) ActionType() string       { return "OFFER_RESOLVED" }
func (CustomerLeft) ActionType() string        { return "CUSTOMER_LEFT" }
func (Autoclose) ActionType() string           { return "AUTOCLOSE_CHAT" }
func (TimerFired) ActionType() string          { return "TIMER_FIRED" }

// ChatIDOf extracts the chat an action is about, for logging.
func ChatIDOf(a Action) string {
	switch a := a.(type) {
	case CustomerJoin:
		return a.Chat.ID
	case CustomerMessage:
		return a.Chat.ID
	case CustomerDisconnect:
		return a.ChatID
	case OperatorMessage:
		return a.ChatID
	case JoinChat:
		return a.ChatID
	case LeaveChat:
		return a.ChatID
	case CloseChat:
		return a.ChatID
	case TransferChat:
		return a.ChatID
	case AgentMessage:
		return a.ChatID
	case AssignChat:
		return a.ChatID
	case OfferResolved:
		return a.ChatID
	case CustomerLeft:
		return a.ChatID
	case Autoclose:
		return a.ChatID
	case TimerFired:
		return ChatIDOf(a.Action)
	}
	return ""
}
