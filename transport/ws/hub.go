package ws

import (
	"sync"

	"github.com/samber/lo"
)

type set map[string]struct{}

// Room names.
const (
	AuthorizedRoom = "authorized"
	AgentsRoom     = "agents"
)

func CustomerRoom(chatID string) string     { return "customers/" + chatID }
func ChatRoom(chatID string) string         { return "chat/" + chatID }
func OperatorRoom(operatorID string) string { return "operators/" + operatorID }

// Hub keeps sockets and the rooms they joined.
// A socket lives in the hub as long as it is a member of at least one room.
type Hub struct {
	mu          sync.RWMutex
	sockets     map[string]Socket
	rooms       map[string]set // room -> socket ids
	memberships map[string]set // socket id -> rooms
}

func NewHub() *Hub {
	return &Hub{
		sockets:     make(map[string]Socket),
		rooms:       make(map[string]set),
		memberships: make(map[string]set),
	}
}

// Join adds the socket to room, creating the room on the fly.
func (h *Hub) Join(room string, s Socket) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sockets[s.ID()] = s
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(set)
	}
	h.rooms[room][s.ID()] = struct{}{}
	if _, ok := h.memberships[s.ID()]; !ok {
		h.memberships[s.ID()] = make(set)
	}
	h.memberships[s.ID()][room] = struct{}{}
}

func (h *Hub) Leave(room string, s Socket) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leave(room, s.ID())
}

// LeaveAll empties room and returns its former members.
func (h *Hub) LeaveAll(room string) []Socket {
	h.mu.Lock()
	defer h.mu.Unlock()

	members := h.members(room)
	for _, s := range members {
		h.leave(room, s.ID())
	}
	return members
}

// Detach removes the socket from every room and returns the rooms it left.
func (h *Hub) Detach(s Socket) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	rooms := lo.Keys(h.memberships[s.ID()])
	for _, room := range rooms {
		h.leave(room, s.ID())
	}
	return rooms
}

func (h *Hub) Members(room string) []Socket {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.members(room)
}

func (h *Hub) Count(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) In(room string, s Socket) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[room][s.ID()]
	return ok
}

// Emit sends the event to every room member and returns how many accepted it.
// Sockets are written outside the lock; a slow socket closes itself.
func (h *Hub) Emit(room, event string, args ...any) int {
	delivered := 0
	for _, s := range h.Members(room) {
		if err := s.Emit(event, args...); err == nil {
			delivered++
		}
	}
	return delivered
}

func (h *Hub) members(room string) []Socket {
	ids := h.rooms[room]
	if len(ids) == 0 {
		return nil
	}
	members := make([]Socket, 0, len(ids))
	for id := range ids {
		if s, ok := h.sockets[id]; ok {
			members = append(members, s)
		}
	}
	return members
}

func (h *Hub) leave(room, socketID string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, socketID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	if rooms, ok := h.memberships[socketID]; ok {
		delete(rooms, room)
		if len(rooms) == 0 {
			delete(h.memberships, socketID)
			delete(h.sockets, socketID)
		}
	}
}
