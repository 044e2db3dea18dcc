package main

import (
	"chat-router/broadcast"
	"chat-router/domain"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

var statusStyles = map[domain.ChatStatus]color.Color{
	domain.StatusPending:            color.Yellow,
	domain.StatusAssigning:          color.Cyan,
	domain.StatusAssigned:           color.Green,
	domain.StatusMissed:             color.Red,
	domain.StatusCustomerDisconnect: color.Gray,
	domain.StatusAbandoned:          color.Magenta,
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

// Render prints the chat list and the operator roster.
func Render(w io.Writer, version string, p broadcast.Projection) {
	accepts := color.Green.Render("accepting customers")
	if !p.Operators.System.AcceptsCustomers {
		accepts = color.Red.Render("not accepting customers")
	}
	_, _ = fmt.Fprintf(w, "%s  version %s\n\n", color.New(color.BgBlack, color.FgGreen).Render(" chat router "), version)
	_, _ = fmt.Fprintf(w, "System: %s\n\n", accepts)

	chats := lo.Values(p.Chatlist)
	slices.SortFunc(chats, func(a, b broadcast.ChatEntry) int { return strings.Compare(a.ID, b.ID) })
	chatTable := newTable(w, "Chat", "Status", "Customer", "Operator", "Locale", "Reason")
	for _, c := range chats {
		operator := "-"
		if c.Operator != nil {
			operator = c.Operator.DisplayName
		}
		status := string(c.Status)
		if style, ok := statusStyles[c.Status]; ok {
			status = style.Render(status)
		}
		chatTable.Append([]string{c.ID, status, c.Customer.DisplayName, operator, c.Locale, c.MissedReason})
	}
	chatTable.Render()
	_, _ = fmt.Fprintln(w)

	operators := lo.Values(p.Operators.Identities)
	slices.SortFunc(operators, func(a, b broadcast.OperatorEntry) int { return strings.Compare(a.ID, b.ID) })
	opTable := newTable(w, "Operator", "Name", "Presence", "Status", "Load", "Locales")
	for _, op := range operators {
		opTable.Append([]string{
			op.ID,
			op.DisplayName,
			string(op.Presence),
			op.Status,
			fmt.Sprintf("%d/%d", op.Load, op.Capacity),
			strings.Join(op.Locales, ","),
		})
	}
	opTable.Render()
}
