package state

import (
	"chat-router/domain"
	"slices"

	"github.com/samber/lo"
)

// Directory tracks known operators, their connection set and declared capacity/status.
// Like ChatStore it is mutated only from the coordinator pipeline.
type Directory struct {
	operators map[string]*domain.Operator
	nextSeq   uint64
}

func NewDirectory() *Directory {
	return &Directory{operators: make(map[string]*domain.Operator)}
}

// Upsert registers the identity on first sight and refreshes the profile fields afterward.
// Registration order is stamped once and used as the final assignment tie-break.
func (d *Directory) Upsert(identity domain.Identity, defaultCapacity int) domain.Operator {
	op, ok := d.operators[identity.ID]
	if !ok {
		d.nextSeq++
		op = &domain.Operator{
			Capacity:    defaultCapacity,
			Seq:         d.nextSeq,
			Connections: make(map[string]struct{}),
		}
		d.operators[identity.ID] = op
	}
	op.Identity = identity
	return op.Clone()
}

// Restore puts back a persisted operator; connections never survive a restart.
func (d *Directory) Restore(op domain.Operator) {
	op = op.Clone()
	op.Connections = make(map[string]struct{})
	if op.Seq > d.nextSeq {
		d.nextSeq = op.Seq
	}
	d.operators[op.ID] = &op
}

func (d *Directory) Get(id string) (domain.Operator, bool) {
	op, ok := d.operators[id]
	if !ok {
		return domain.Operator{}, false
	}
	return op.Clone(), true
}

// Connect adds a live connection and reports whether it was the first one.
func (d *Directory) Connect(id, connID string) bool {
	op, ok := d.operators[id]
	if !ok {
		return false
	}
	first := len(op.Connections) == 0
	op.Connections[connID] = struct{}{}
	return first
}

// Disconnect removes a live connection and reports whether it was the last one.
func (d *Directory) Disconnect(id, connID string) bool {
	op, ok := d.operators[id]
	if !ok {
		return false
	}
	if _, known := op.Connections[connID]; !known {
		return false
	}
	delete(op.Connections, connID)
	return len(op.Connections) == 0
}

func (d *Directory) SetCapacity(id string, capacity int) bool {
	op, ok := d.operators[id]
	if !ok || capacity < 0 {
		return false
	}
	op.Capacity = capacity
	return true
}

func (d *Directory) SetStatus(id, status string) bool {
	op, ok := d.operators[id]
	if !ok {
		return false
	}
	op.Status = status
	return true
}

func (d *Directory) SetLocales(id string, locales []string) bool {
	op, ok := d.operators[id]
	if !ok {
		return false
	}
	op.Locales = slices.Clone(locales)
	return true
}

// SetLoads overwrites every operator load; operators absent from loads drop to zero.
func (d *Directory) SetLoads(loads map[string]int) {
	for id, op := range d.operators {
		op.Load = loads[id]
	}
}

func (d *Directory) Remove(id string) {
	delete(d.operators, id)
}

func (d *Directory) Len() int { return len(d.operators) }

// List returns operators in registration order.
func (d *Directory) List() []domain.Operator {
	list := lo.Map(lo.Values(d.operators), func(op *domain.Operator, _ int) domain.Operator {
		return op.Clone()
	})
	slices.SortFunc(list, func(a, b domain.Operator) int { return cmpSeq(a.Seq, b.Seq) })
	return list
}
