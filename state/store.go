package state

import (
	"chat-router/domain"
	"slices"

	"github.com/samber/lo"
)

// ChatStore is the authoritative mapping of chat id to lifecycle record.
// It is owned by the coordinator pipeline and is not safe for concurrent use.
type ChatStore struct {
	chats   map[string]domain.Chat
	nextSeq uint64
}

func NewChatStore() *ChatStore {
	return &ChatStore{chats: make(map[string]domain.Chat)}
}

func (s *ChatStore) Get(id string) (domain.Chat, bool) {
	c, ok := s.chats[id]
	return c, ok
}

// Insert stores a brand-new chat and stamps its enqueue order.
func (s *ChatStore) Insert(desc domain.ChatDescriptor) domain.Chat {
	s.nextSeq++
	chat := domain.NewChat(desc, s.nextSeq)
	s.chats[chat.ID] = chat
	return chat
}

func (s *ChatStore) Put(chat domain.Chat) {
	if chat.Seq > s.nextSeq {
		s.nextSeq = chat.Seq
	}
	s.chats[chat.ID] = chat
}

func (s *ChatStore) Remove(id string) {
	delete(s.chats, id)
}

func (s *ChatStore) Len() int { return len(s.chats) }

// List returns every chat ordered by enqueue order.
func (s *ChatStore) List() []domain.Chat {
	list := lo.Values(s.chats)
	slices.SortFunc(list, func(a, b domain.Chat) int { return cmpSeq(a.Seq, b.Seq) })
	return list
}

func (s *ChatStore) WithStatus(statuses ...domain.ChatStatus) []domain.Chat {
	return lo.Filter(s.List(), func(c domain.Chat, _ int) bool {
		return slices.Contains(statuses, c.Status)
	})
}

// ForOperator returns the chats referencing operatorID in one of the given statuses.
func (s *ChatStore) ForOperator(operatorID string, statuses ...domain.ChatStatus) []domain.Chat {
	return lo.Filter(s.WithStatus(statuses...), func(c domain.Chat, _ int) bool {
		return c.OperatorID() == operatorID
	})
}

// Assignable returns pending and missed chats, oldest first.
func (s *ChatStore) Assignable() []domain.Chat {
	return s.WithStatus(domain.StatusPending, domain.StatusMissed)
}

func (s *ChatStore) IsAssigning() bool {
	return lo.SomeBy(lo.Values(s.chats), func(c domain.Chat) bool {
		return c.Status == domain.StatusAssigning
	})
}

func cmpSeq(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
