package state

import (
	"chat-router/assign"
	"chat-router/domain"
	"chat-router/errors"
	"fmt"
	"log/slog"
	"time"
)

type Config struct {
	CustomerLeftDelay time.Duration
	AutocloseDelay    time.Duration
	DefaultCapacity   int
}

func CustomerLeftKey(chatID string) string { return "customer-left/" + chatID }
func AutocloseKey(chatID string) string    { return "autoclose/" + chatID }

// Reducer evolves the state for one action and returns the effects to execute
// once the new state is committed. It never performs I/O.
type Reducer struct {
	log *slog.Logger
	cfg Config
	now func() time.Time
}

func NewReducer(log *slog.Logger, cfg Config) *Reducer {
	return &Reducer{log: log, cfg: cfg, now: time.Now}
}

func (r *Reducer) Reduce(s *State, action Action) []Effect {
	t := &txn{Reducer: r, s: s}
	switch a := action.(type) {
	case CustomerJoin:
		t.customerJoin(a)
	case CustomerMessage:
		t.customerMessage(a)
	case CustomerDisconnect:
		t.customerDisconnect(a)
	case CustomerLeft:
		t.customerLeft(a)
	case Autoclose:
		t.autoclose(a)
	case OperatorConnect:
		t.operatorConnect(a)
	case OperatorReady:
		t.operatorReady(a)
	case OperatorDisconnect:
		t.operatorDisconnect(a)
	case RemoveOperator:
		t.abandon(a.OperatorID)
		s.Operators.Remove(a.OperatorID)
	case OperatorMessage:
		t.forward(a.ChatID, a.Message, domain.SourceOperator, a.Operator)
	case AgentMessage:
		t.forward(a.ChatID, a.Message, domain.SourceAgent, a.Agent)
	case JoinChat:
		t.joinChat(a)
	case LeaveChat:
		t.leaveChat(a)
	case CloseChat:
		t.closeChat(a)
	case TransferChat:
		t.transferChat(a)
	case SetAcceptsCustomers:
		t.setAcceptsCustomers(a)
	case SetOperatorCapacity:
		if s.Operators.SetCapacity(a.OperatorID, a.Capacity) {
			t.dispatch(AssignNext{})
		}
	case SetOperatorStatus:
		t.setOperatorStatus(a.OperatorID, a.Status)
	case AssignNext:
		t.assignNext()
	case AssignChat:
		t.assignChat(a)
	case OfferResolved:
		t.offerResolved(a)
	default:
		r.log.Warn("Unknown action ignored", "type", fmt.Sprintf("%T", action))
	}
	syncLoads(s)
	return t.effects
}

// syncLoads recomputes every operator load from the chats it is obliged to.
func syncLoads(s *State) {
	s.Operators.SetLoads(assign.Loads(s.Chats.List()))
}

type txn struct {
	*Reducer
	s       *State
	effects []Effect
}

func (t *txn) emit(effects ...Effect) {
	t.effects = append(t.effects, effects...)
}

func (t *txn) dispatch(a Action) {
	t.emit(Dispatch{Action: a})
}

func (t *txn) relay(chatID, text, eventType string, meta map[string]any) {
	t.emit(Relay{Message: domain.NewEventMessage(chatID, text, eventType, meta)})
}

func (t *txn) publish(e domain.LifecycleEvent) {
	e.At = t.now()
	t.emit(Publish{Event: e})
}

// transition stores chat with its new status and reports it to the customer and the event stream.
func (t *txn) transition(chat domain.Chat, to domain.ChatStatus) domain.Chat {
	from := chat.Status
	chat = chat.WithStatus(to)
	t.s.Chats.Put(chat)
	if from == to {
		return chat
	}
	t.emit(CustomerStatus{ChatID: chat.ID, Status: to})
	t.publish(domain.LifecycleEvent{
		Kind:       domain.KindChatStatus,
		ChatID:     chat.ID,
		Status:     to,
		LastStatus: from,
		OperatorID: chat.OperatorID(),
		Reason:     chat.MissedReason,
	})
	switch {
	case to == domain.StatusMissed:
		t.publish(domain.LifecycleEvent{Kind: domain.KindChatMiss, ChatID: chat.ID, Reason: chat.MissedReason})
	case to == domain.StatusAssigned && from != domain.StatusCustomerDisconnect && from != domain.StatusAbandoned:
		t.publish(domain.LifecycleEvent{Kind: domain.KindChatFound, ChatID: chat.ID, OperatorID: chat.OperatorID()})
	}
	return chat
}

// miss records the failure cause. retry re-triggers the assignment scan when the chat newly became missed.
func (t *txn) miss(chat domain.Chat, cause error, retry bool) {
	chat.MissedReason = cause.Error()
	if chat.Status == domain.StatusMissed {
		t.s.Chats.Put(chat)
		return
	}
	t.transition(chat, domain.StatusMissed)
	if retry {
		t.dispatch(AssignNext{})
	}
}

func (t *txn) canAccept(chat domain.Chat) bool {
	switch chat.Status {
	case domain.StatusAssigning, domain.StatusAssigned, domain.StatusCustomerDisconnect:
		return true
	}
	return t.s.System.AcceptsCustomers &&
		assign.HaveCapacity(t.s.Operators.List(), assign.RequestFor(chat), true)
}

func (t *txn) customerJoin(a CustomerJoin) {
	chat, ok := t.s.Chats.Get(a.Chat.ID)
	if !ok {
		chat = t.s.Chats.Insert(a.Chat)
	} else {
		chat.Customer = a.Chat.Customer
		if a.Chat.Locale != "" {
			chat.Locale = a.Chat.Locale
		}
		if len(a.Chat.Groups) > 0 {
			chat.Groups = a.Chat.Groups
		}
		t.s.Chats.Put(chat)
	}

	t.emit(
		CustomerAccept{ChatID: chat.ID, Accept: t.canAccept(chat)},
		Cancel{Key: CustomerLeftKey(chat.ID)},
		Cancel{Key: AutocloseKey(chat.ID)},
	)
	if chat.Status == domain.StatusCustomerDisconnect && chat.Operator != nil {
		t.transition(chat, domain.StatusAssigned)
	}
}

func (t *txn) customerMessage(a CustomerMessage) {
	chat, ok := t.s.Chats.Get(a.Chat.ID)
	if !ok {
		chat = t.s.Chats.Insert(a.Chat)
	}
	if chat.Locale == "" && a.DetectedLocale != "" {
		chat.Locale = a.DetectedLocale
		t.s.Chats.Put(chat)
	}

	msg := a.Message
	msg.ChatID = chat.ID
	msg.Source = domain.SourceCustomer
	t.emit(Relay{Message: msg})

	switch {
	case chat.Status == domain.StatusClosed && chat.Operator != nil && t.operatorAccepting(chat.Operator.ID):
		chat = t.transition(chat, domain.StatusAssigning)
		t.emit(Offer{Purpose: OfferReopen, Chat: chat, Operator: *chat.Operator})
	case chat.Status == domain.StatusNew || chat.Status == domain.StatusClosed:
		t.transition(chat, domain.StatusPending)
		t.dispatch(AssignNext{})
	case chat.IsAssignable():
		t.dispatch(AssignNext{})
	}
}

func (t *txn) operatorAccepting(id string) bool {
	op, ok := t.s.Operators.Get(id)
	return ok && op.Online() && op.Accepting()
}

func (t *txn) operatorOnline(id string) bool {
	op, ok := t.s.Operators.Get(id)
	return ok && op.Online()
}

func (t *txn) customerDisconnect(a CustomerDisconnect) {
	chat, ok := t.s.Chats.Get(a.ChatID)
	if !ok {
		return
	}
	switch chat.Status {
	case domain.StatusNew:
		t.log.Debug("Customer disconnected without starting chat", "chat_id", chat.ID)
		t.s.Chats.Remove(chat.ID)
	case domain.StatusClosed, domain.StatusCustomerDisconnect:
	case domain.StatusAssigned:
		t.transition(chat, domain.StatusCustomerDisconnect)
		t.armDisconnectTimers(chat.ID, true)
	case domain.StatusAbandoned:
		t.armDisconnectTimers(chat.ID, true)
	default:
		// Nobody to notify yet, the chat only waits for autoclose.
		t.armDisconnectTimers(chat.ID, false)
	}
}

func (t *txn) armDisconnectTimers(chatID string, notice bool) {
	if notice {
		t.emit(Schedule{Key: CustomerLeftKey(chatID), Delay: t.cfg.CustomerLeftDelay, Action: CustomerLeft{ChatID: chatID}})
	}
	t.emit(Schedule{Key: AutocloseKey(chatID), Delay: t.cfg.AutocloseDelay, Action: Autoclose{ChatID: chatID}})
}

func (t *txn) customerLeft(a CustomerLeft) {
	chat, ok := t.s.Chats.Get(a.ChatID)
	if !ok || chat.Status == domain.StatusClosed {
		return
	}
	t.relay(chat.ID, "customer left", domain.EventCustomerLeave, nil)
}

func (t *txn) autoclose(a Autoclose) {
	chat, ok := t.s.Chats.Get(a.ChatID)
	if !ok || chat.Status == domain.StatusClosed {
		return
	}
	chat = t.transition(chat, domain.StatusClosed)
	t.emit(Cancel{Key: CustomerLeftKey(chat.ID)})
	t.relay(chat.ID, "chat closed after customer left", domain.EventClose, nil)
	t.emit(CloseRoom{Chat: chat})
	t.dispatch(AssignNext{})
}

func (t *txn) operatorConnect(a OperatorConnect) {
	id := a.Operator.ID
	t.s.Operators.Upsert(a.Operator, t.cfg.DefaultCapacity)
	if a.Capacity != nil {
		t.s.Operators.SetCapacity(id, *a.Capacity)
	}
	if a.Status != "" {
		t.s.Operators.SetStatus(id, a.Status)
	}
	if len(a.Locales) > 0 {
		t.s.Operators.SetLocales(id, a.Locales)
	}
	if t.s.Operators.Connect(id, a.ConnID) {
		t.publishPresence(id)
	}

	for _, chat := range t.s.Chats.ForOperator(id, domain.StatusAbandoned) {
		t.emit(Offer{Purpose: OfferRecover, Chat: chat, Operator: a.Operator})
	}
	for _, chat := range t.s.Chats.ForOperator(id, domain.StatusAssigned, domain.StatusCustomerDisconnect) {
		t.emit(Offer{Purpose: OfferReassign, Chat: chat, Operator: a.Operator, ConnID: a.ConnID})
	}
	t.dispatch(AssignNext{})
}

func (t *txn) operatorReady(a OperatorReady) {
	if a.Capacity != nil {
		t.s.Operators.SetCapacity(a.OperatorID, *a.Capacity)
	}
	if a.Status != "" {
		t.setOperatorStatus(a.OperatorID, a.Status)
		return
	}
	t.dispatch(AssignNext{})
}

func (t *txn) setOperatorStatus(id, status string) {
	if t.s.Operators.SetStatus(id, status) {
		t.publishPresence(id)
	}
	t.dispatch(AssignNext{})
}

func (t *txn) publishPresence(id string) {
	op, ok := t.s.Operators.Get(id)
	if !ok {
		return
	}
	t.publish(domain.LifecycleEvent{Kind: domain.KindOperatorStatus, OperatorID: id, Presence: op.Presence()})
}

func (t *txn) operatorDisconnect(a OperatorDisconnect) {
	if !t.s.Operators.Disconnect(a.OperatorID, a.ConnID) {
		return
	}
	t.abandon(a.OperatorID)
	t.publishPresence(a.OperatorID)
}

// abandon keeps the operator reference so a reconnect can recover the chats.
func (t *txn) abandon(operatorID string) {
	for _, chat := range t.s.Chats.ForOperator(operatorID, domain.StatusAssigned, domain.StatusCustomerDisconnect) {
		t.transition(chat, domain.StatusAbandoned)
	}
}

func (t *txn) forward(chatID string, msg domain.Message, source domain.MessageSource, user domain.Identity) {
	if _, ok := t.s.Chats.Get(chatID); !ok {
		t.log.Debug("Message for unknown chat ignored", "chat_id", chatID, "source", source)
		return
	}
	msg.ChatID = chatID
	msg.Source = source
	if msg.User == nil {
		public := user.Public()
		msg.User = &public
	}
	t.emit(Relay{Message: msg})
}

func (t *txn) joinChat(a JoinChat) {
	chat, ok := t.s.Chats.Get(a.ChatID)
	if !ok {
		t.log.Debug("chat.join without existing chat", "chat_id", a.ChatID)
		return
	}
	t.emit(Offer{Purpose: OfferJoin, Chat: chat, Operator: a.Operator})
}

func (t *txn) leaveChat(a LeaveChat) {
	chat, ok := t.s.Chats.Get(a.ChatID)
	if !ok {
		t.log.Debug("chat.leave without existing chat", "chat_id", a.ChatID)
		return
	}
	t.relay(chat.ID, "operator left", domain.EventLeave, map[string]any{"operator": a.Operator.Public()})
	t.emit(LeaveRoom{Chat: chat, OperatorID: a.Operator.ID})
}

func (t *txn) closeChat(a CloseChat) {
	chat, ok := t.s.Chats.Get(a.ChatID)
	if !ok || chat.Status == domain.StatusClosed {
		return
	}
	by := a.Operator.Public()
	chat = t.transition(chat, domain.StatusClosed)
	t.emit(Cancel{Key: CustomerLeftKey(chat.ID)}, Cancel{Key: AutocloseKey(chat.ID)})
	t.relay(chat.ID, "chat closed", domain.EventClose, map[string]any{"by": by})
	t.emit(CloseRoom{Chat: chat, By: &by})
	t.dispatch(AssignNext{})
}

func (t *txn) transferChat(a TransferChat) {
	chat, ok := t.s.Chats.Get(a.ChatID)
	if !ok || chat.Status != domain.StatusAssigned {
		t.log.Debug("Transfer of a chat not assigned ignored", "chat_id", a.ChatID)
		return
	}
	if chat.OperatorID() != a.Operator.ID {
		t.log.Debug("Transfer by an operator not holding the chat ignored", "chat_id", chat.ID, "operator_id", a.Operator.ID)
		return
	}
	target, ok := t.s.Operators.Get(a.TargetID)
	if !ok || !target.Online() {
		t.miss(chat, errors.ErrOperatorNotAvailable, true)
		return
	}
	from := a.Operator
	t.relay(chat.ID, "chat transferred", domain.EventTransfer, map[string]any{
		"from": from.Public(),
		"to":   target.Identity.Public(),
	})
	t.emit(Offer{Purpose: OfferTransfer, Chat: chat, Operator: target.Identity, From: &from})
}

func (t *txn) setAcceptsCustomers(a SetAcceptsCustomers) {
	t.s.System.AcceptsCustomers = a.Accepts
	for _, chat := range t.s.Chats.WithStatus(domain.StatusNew) {
		t.emit(CustomerAccept{ChatID: chat.ID, Accept: t.canAccept(chat)})
	}
	t.dispatch(AssignNext{})
}

// assignNext starts the oldest assignable chat some operator can take.
// Pending chats nobody can take are marked missed on the way.
func (t *txn) assignNext() {
	if t.s.Chats.IsAssigning() {
		t.log.Debug("Already assigning chat, wait until complete")
		return
	}
	operators := t.s.Operators.List()
	var next *domain.Chat
	for _, chat := range t.s.Chats.Assignable() {
		if assign.HaveCapacity(operators, assign.RequestFor(chat), t.s.System.AcceptsCustomers) {
			if next == nil {
				next = &chat
			}
			continue
		}
		if chat.Status == domain.StatusPending {
			t.miss(chat, errors.ErrNoOperatorsAvailable, false)
		}
	}
	if next != nil {
		t.dispatch(AssignChat{ChatID: next.ID})
	}
}

func (t *txn) assignChat(a AssignChat) {
	chat, ok := t.s.Chats.Get(a.ChatID)
	if !ok || !chat.IsAssignable() {
		return
	}
	op, err := assign.Select(t.s.Operators.List(), assign.RequestFor(chat), t.s.System.AcceptsCustomers)
	if err != nil {
		t.miss(chat, err, true)
		return
	}
	chat = t.transition(chat, domain.StatusAssigning)
	t.emit(Offer{Purpose: OfferAssign, Chat: chat, Operator: op.Identity})
}

func (t *txn) offerResolved(a OfferResolved) {
	chat, ok := t.s.Chats.Get(a.ChatID)
	if !ok {
		chat = domain.Chat{ID: a.ChatID}
	}
	switch a.Purpose {
	case OfferAssign:
		if !ok || chat.Status != domain.StatusAssigning {
			t.discard(chat, a)
			return
		}
		t.assignResolved(chat, a)
	case OfferReopen:
		if !ok || chat.Status != domain.StatusAssigning || chat.OperatorID() != a.Operator.ID {
			t.discard(chat, a)
			return
		}
		t.assignResolved(chat, a)
	case OfferTransfer:
		t.transferResolved(chat, ok, a)
	case OfferRecover:
		if !ok || chat.Status != domain.StatusAbandoned || chat.OperatorID() != a.Operator.ID {
			return
		}
		if a.Err != nil {
			t.log.Warn("Failed to recover chat for operator", "chat_id", chat.ID, "operator_id", a.Operator.ID, "error", a.Err)
			return
		}
		chat.Recovered = true
		chat = t.transition(chat, domain.StatusAssigned)
		t.emit(NotifyOperator{OperatorID: a.Operator.ID, Event: "chat.recover", Chat: chat})
	case OfferReassign:
		if a.Err != nil {
			t.log.Warn("Failed to reassign chat to operator connection", "chat_id", chat.ID, "conn_id", a.ConnID, "error", a.Err)
		}
	case OfferJoin:
		if a.Err != nil || !ok {
			t.log.Debug("Operator failed to join chat", "chat_id", chat.ID, "error", a.Err)
			return
		}
		t.relay(chat.ID, "operator joined", domain.EventJoin, map[string]any{"operator": a.Operator.Public()})
	}
}

// assignResolved settles an assign or reopen offer. An operator whose last
// connection dropped while the offer was pending cannot hold the chat.
func (t *txn) assignResolved(chat domain.Chat, a OfferResolved) {
	err := a.Err
	if err == nil && !t.operatorOnline(a.Operator.ID) {
		err = errors.ErrOperatorNotAvailable
	}
	if err != nil {
		t.release(chat, a.Operator.ID)
		t.miss(chat, err, true)
		return
	}
	t.assignTo(chat, a.Operator)
	t.dispatch(AssignNext{})
}

func (t *txn) transferResolved(chat domain.Chat, ok bool, a OfferResolved) {
	if !ok || a.From == nil || chat.Status != domain.StatusAssigned || chat.OperatorID() != a.From.ID {
		t.discard(chat, a)
		return
	}
	err := a.Err
	if err == nil && !t.operatorOnline(a.Operator.ID) {
		err = errors.ErrOperatorNotAvailable
	}
	if err != nil {
		t.log.Debug("Failed to transfer chat", "chat_id", chat.ID, "error", err)
		t.release(chat, a.Operator.ID)
		t.miss(chat, err, true)
		return
	}
	to := a.Operator
	chat.Operator = &to
	t.s.Chats.Put(chat)
	t.emit(
		NotifyOperator{OperatorID: a.From.ID, Event: "chat.transfer", Chat: chat},
		NotifyOperator{OperatorID: to.ID, Event: "chat.transfer", Chat: chat},
		LeaveRoom{Chat: chat, OperatorID: a.From.ID},
	)
	t.publish(domain.LifecycleEvent{Kind: domain.KindChatTransfer, ChatID: chat.ID, OperatorID: a.From.ID, TargetID: to.ID})
	t.dispatch(AssignNext{})
}

// discard drops an offer outcome that lost the race against another transition.
// An operator that nevertheless joined the room is taken out again.
func (t *txn) discard(chat domain.Chat, a OfferResolved) {
	t.log.Debug("Stale offer outcome ignored", "chat_id", chat.ID, "purpose", a.Purpose, "status", chat.Status)
	if a.Err == nil {
		t.release(chat, a.Operator.ID)
	}
}

// release takes an operator out of the chat room unless it currently holds the chat.
// A failed offer may still have joined a socket that answered past the deadline.
func (t *txn) release(chat domain.Chat, operatorID string) {
	if chat.HasActiveOperator() && chat.OperatorID() == operatorID {
		return
	}
	t.emit(LeaveRoom{Chat: chat, OperatorID: operatorID})
}

func (t *txn) assignTo(chat domain.Chat, operator domain.Identity) {
	chat.Operator = &operator
	chat.MissedReason = ""
	chat.Recovered = false
	chat = t.transition(chat, domain.StatusAssigned)
	t.relay(chat.ID, "operator assigned", domain.EventAssigned, map[string]any{"operator": operator.Public()})
}
