// Package assign picks the next operator for a chat.
//
// Selection is greedy water-filling: every call ranks the eligible operators
// by load/capacity against the loads applied so far, so repeated calls spread
// chats across operators proportionally to their capacity.
package assign

import (
	"chat-router/domain"
	"chat-router/errors"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Request carries the routing hints of a chat.
type Request struct {
	Locale string
	Groups []string
}

func RequestFor(chat domain.Chat) Request {
	return Request{Locale: chat.Locale, Groups: chat.Groups}
}

// Eligible reports whether op may be offered a chat with the given routing hints,
// ignoring its remaining capacity.
func Eligible(op domain.Operator, req Request, acceptsCustomers bool) bool {
	return acceptsCustomers &&
		op.Online() &&
		op.Accepting() &&
		matchLocale(op, req.Locale) &&
		matchGroups(op, req.Groups)
}

func HasCapacity(op domain.Operator) bool {
	return op.Load < op.Capacity
}

// Candidates returns the eligible operators with spare capacity, best first.
func Candidates(operators []domain.Operator, req Request, acceptsCustomers bool) []domain.Operator {
	list := lo.Filter(operators, func(op domain.Operator, _ int) bool {
		return Eligible(op, req, acceptsCustomers) && HasCapacity(op)
	})
	slices.SortStableFunc(list, compare)
	return list
}

// Select returns the operator to offer the chat to, or ErrNoOperatorsAvailable.
func Select(operators []domain.Operator, req Request, acceptsCustomers bool) (domain.Operator, error) {
	list := Candidates(operators, req, acceptsCustomers)
	if len(list) == 0 {
		return domain.Operator{}, errors.ErrNoOperatorsAvailable
	}
	return list[0], nil
}

// HaveCapacity reports whether any eligible operator could take one more chat.
func HaveCapacity(operators []domain.Operator, req Request, acceptsCustomers bool) bool {
	return lo.SomeBy(operators, func(op domain.Operator) bool {
		return Eligible(op, req, acceptsCustomers) && HasCapacity(op)
	})
}

// Loads counts the chats each operator is actively obliged to.
func Loads(chats []domain.Chat) map[string]int {
	loads := make(map[string]int)
	for _, c := range chats {
		if c.HasActiveOperator() {
			loads[c.Operator.ID]++
		}
	}
	return loads
}

// compare ranks by load/capacity ascending, then capacity descending, then registration order.
// Ratios are compared by cross multiplication; callers only pass operators with capacity > 0.
func compare(a, b domain.Operator) int {
	left, right := a.Load*b.Capacity, b.Load*a.Capacity
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	case a.Capacity > b.Capacity:
		return -1
	case a.Capacity < b.Capacity:
		return 1
	case a.Seq < b.Seq:
		return -1
	case a.Seq > b.Seq:
		return 1
	}
	return 0
}

// matchLocale accepts any operator for locale-less chats and operators without locale restriction.
// "fr-CA" is served by operators declaring either "fr-CA" or "fr".
func matchLocale(op domain.Operator, locale string) bool {
	if locale == "" || len(op.Locales) == 0 {
		return true
	}
	base, _, _ := strings.Cut(locale, "-")
	return lo.SomeBy(op.Locales, func(l string) bool {
		return strings.EqualFold(l, locale) || strings.EqualFold(l, base)
	})
}

// matchGroups accepts any operator for group-less chats; operators without groups
// belong to the implicit default group.
func matchGroups(op domain.Operator, groups []string) bool {
	if len(groups) == 0 {
		return true
	}
	if len(op.Groups) == 0 {
		return slices.Contains(groups, domain.DefaultGroup)
	}
	return lo.Some(op.Groups, groups)
}
