package workers

import (
	"chat-router/contract"
	"context"
	"log/slog"
	"time"
)

// HeartbeatWorker probes the coordinator and mirrors its liveness in the health service.
type HeartbeatWorker struct {
	log      *slog.Logger
	probe    contract.LivenessProbe
	health   contract.HealthReporter
	interval time.Duration
	stall    time.Duration
	serving  bool
}

func NewHeartbeatWorker(log *slog.Logger, probe contract.LivenessProbe, health contract.HealthReporter, interval, stall time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, probe: probe, health: health, interval: interval, stall: stall, serving: true}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Beat()
		}
	}
}

// Beat checks the pipeline once; the health service is only touched on a change.
func (w *HeartbeatWorker) Beat() bool {
	serving := !w.probe.Stalled(w.stall)
	if serving == w.serving {
		return serving
	}
	if serving {
		w.log.Info("Coordinator recovered, serving again")
	} else {
		w.log.Error("Coordinator stalled, reporting not serving", "stall", w.stall)
	}
	w.health.SetServing(serving)
	w.serving = serving
	return serving
}
