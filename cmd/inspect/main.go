package main

import (
	"chat-router/storage"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"
)

// inspect lists the snapshots archived by a router, newest first.
// It opens the database read-only so it can run next to a live router.
func main() {
	dbPath := pflag.String("db", "./data/badger", "Path to badger DB")
	limit := pflag.Int("limit", 20, "Number of snapshots to list")
	pflag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	repository, err := storage.NewSnapshotRepository(db, logs.GetLoggerFromLevel(slog.LevelWarn), 0)
	if err != nil {
		log.Fatal(err)
	}

	latest, ok, err := repository.Load()
	if err != nil {
		log.Fatal(err)
	}
	if ok {
		fmt.Printf("Latest snapshot: %s (%d chats, %d operators)\n\n",
			latest.TakenAt.Format("2006-01-02 15:04:05"), len(latest.Chats), len(latest.Operators))
	}

	entries, err := repository.History(*limit)
	if err != nil {
		log.Fatal(err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Taken at", "Chats", "Operators", "Accepts"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, e := range entries {
		table.Append([]string{
			e.Key,
			e.TakenAt.Format("2006-01-02 15:04:05"),
			strconv.Itoa(e.Chats),
			strconv.Itoa(e.Operators),
			strconv.FormatBool(e.Accepts),
		})
	}
	table.Render()
}
