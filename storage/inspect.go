package storage

import (
	"chat-router/domain"
	"chat-router/state"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/mama165/sdk-go/database"
	"github.com/samber/lo"
)

// InspectMapper renders snapshot keys for the badger debug inspector.
func InspectMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	if !strings.HasPrefix(key, "snapshot:") {
		return row
	}

	var snapshot state.Snapshot
	if err := cbor.Unmarshal(val, &snapshot); err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}

	row.Type = "SNAPSHOT"
	if key == latestKey {
		row.Type = "LATEST"
	}
	row.Detail = fmt.Sprintf("%s chats=%d operators=%d accepts=%t",
		snapshot.TakenAt.Format("15:04:05"), len(snapshot.Chats), len(snapshot.Operators), snapshot.System.AcceptsCustomers)

	counts := lo.CountValuesBy(snapshot.Chats, func(c domain.Chat) domain.ChatStatus { return c.Status })
	statuses := ""
	for _, status := range domain.Statuses {
		if n := counts[status]; n > 0 {
			statuses += fmt.Sprintf("%s:%d ", status, n)
		}
	}
	row.Scores = statuses
	return row
}
