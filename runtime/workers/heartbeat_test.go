package workers

import (
	"chat-router/mocks"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHeartbeatWorker_Beat(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	probe := mocks.NewMockLivenessProbe(ctrl)
	health := mocks.NewMockHealthReporter(ctrl)
	w := NewHeartbeatWorker(log, probe, health, time.Second, 3*time.Second)

	gomock.InOrder(
		probe.EXPECT().Stalled(3*time.Second).Return(false),
		probe.EXPECT().Stalled(3*time.Second).Return(true),
		health.EXPECT().SetServing(false),
		probe.EXPECT().Stalled(3*time.Second).Return(true),
		probe.EXPECT().Stalled(3*time.Second).Return(false),
		health.EXPECT().SetServing(true),
	)

	// Healthy pipeline: nothing to report
	req.True(w.Beat())
	// Stall is reported once
	req.False(w.Beat())
	req.False(w.Beat())
	// Recovery is reported
	req.True(w.Beat())
}
