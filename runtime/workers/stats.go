package workers

import (
	"chat-router/contract"
	"chat-router/domain"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/shirou/gopsutil/process"
)

// Stats is the periodic health summary of the router process.
type Stats struct {
	RSS             uint64
	CPUPercent      float64
	ProcessStatus   string
	Chats           map[domain.ChatStatus]int
	OperatorsOnline int
	TotalLoad       int
	TotalCapacity   int
}

// StatsWorker logs process metrics (CPU, RAM, status) next to the chat and operator counters.
type StatsWorker struct {
	log      *slog.Logger
	source   contract.StateSource
	interval time.Duration
	latest   func(Stats)
}

func NewStatsWorker(log *slog.Logger, source contract.StateSource, interval time.Duration) *StatsWorker {
	return &StatsWorker{log: log, source: source, interval: interval}
}

// OnCollect registers a callback receiving every collected sample.
func (w *StatsWorker) OnCollect(fn func(Stats)) *StatsWorker {
	w.latest = fn
	return w
}

func (w *StatsWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			stats, err := w.Collect(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			w.log.Info("Router stats",
				"rss", stats.RSS,
				"cpu", stats.CPUPercent,
				"status", stats.ProcessStatus,
				"chats", stats.Chats,
				"operators_online", stats.OperatorsOnline,
				"load", stats.TotalLoad,
				"capacity", stats.TotalCapacity,
			)
			if w.latest != nil {
				w.latest(stats)
			}
		}
	}
}

func (w *StatsWorker) Collect(p *process.Process) (Stats, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return Stats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return Stats{}, err
	}
	status, err := p.Status()
	if err != nil {
		return Stats{}, err
	}

	stats := Summarize(w.source)
	stats.RSS = memInfo.RSS
	stats.CPUPercent = cpuPercent
	stats.ProcessStatus = status
	return stats, nil
}

// Summarize computes the chat and operator counters of the current view.
func Summarize(source contract.StateSource) Stats {
	view := source.View()
	online := lo.Filter(view.Operators, func(op domain.Operator, _ int) bool { return op.Online() })
	return Stats{
		Chats:           lo.CountValuesBy(view.Chats, func(c domain.Chat) domain.ChatStatus { return c.Status }),
		OperatorsOnline: len(online),
		TotalLoad:       lo.SumBy(online, func(op domain.Operator) int { return op.Load }),
		TotalCapacity:   lo.SumBy(online, func(op domain.Operator) int { return op.Capacity }),
	}
}
