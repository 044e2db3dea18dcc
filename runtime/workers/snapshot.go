package workers

import (
	"chat-router/contract"
	"context"
	"log/slog"
	"time"
)

// SnapshotWorker persists the committed view periodically and once more on shutdown.
type SnapshotWorker struct {
	log        *slog.Logger
	source     contract.StateSource
	repository contract.SnapshotRepository
	interval   time.Duration
}

func NewSnapshotWorker(log *slog.Logger, source contract.StateSource, repository contract.SnapshotRepository, interval time.Duration) *SnapshotWorker {
	return &SnapshotWorker{log: log, source: source, repository: repository, interval: interval}
}

func (w *SnapshotWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := w.Save(); err != nil {
				w.log.Error("Final snapshot failed", "error", err)
			}
			return nil
		case <-ticker.C:
			if err := w.Save(); err != nil {
				w.log.Warn("Snapshot failed", "error", err)
			}
		}
	}
}

func (w *SnapshotWorker) Save() error {
	view := w.source.View()
	if err := w.repository.Save(view.Snapshot(time.Now().UTC())); err != nil {
		return err
	}
	w.log.Debug("Snapshot saved", "chats", len(view.Chats), "operators", len(view.Operators))
	return nil
}
