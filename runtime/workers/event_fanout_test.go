package workers

import (
	"chat-router/domain"
	"chat-router/mocks"
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEventFanout_Fanout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mocks.NewMockEventSink(ctrl)
	second := mocks.NewMockEventSink(ctrl)
	evt := domain.LifecycleEvent{Kind: domain.KindChatFound, ChatID: "chat1", OperatorID: "op1"}

	// Given two sinks consuming the same event
	first.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)
	second.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)

	fanout := NewEventFanout(log, nil, time.Second, first).Add(second)

	// When an event is fanned out
	start := time.Now()
	fanout.Fanout(context.Background(), evt)

	// Then both sinks received it
	req.Less(time.Since(start), time.Second)
}

func TestEventFanout_SinkTimeout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	slow := mocks.NewMockEventSink(ctrl)
	fast := mocks.NewMockEventSink(ctrl)

	// Given a sink that never answers next to a healthy one
	slow.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.LifecycleEvent) error {
			<-ctx.Done()     // Waiting for timeout to trigger cancellation
			return ctx.Err() // Sending back "context deadline exceeded"
		}).Times(1)
	fast.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	fanout := NewEventFanout(log, nil, 20*time.Millisecond, slow, fast)

	// When an event is fanned out
	start := time.Now()
	fanout.Fanout(context.Background(), domain.LifecycleEvent{Kind: domain.KindChatMiss, ChatID: "chat1"})

	// Then the slow sink is abandoned after the timeout
	req.Less(time.Since(start), 500*time.Millisecond)
}

func TestEventFanout_Run(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)

	sink := mocks.NewMockEventSink(ctrl)
	events := make(chan domain.LifecycleEvent, 4)

	var consumed atomic.Int32
	sink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.LifecycleEvent) error {
			consumed.Add(1)
			return nil
		}).Times(3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewEventFanout(log, events, time.Second, sink).Run(ctx) }()

	// When three events are published
	for i := 0; i < 3; i++ {
		events <- domain.LifecycleEvent{Kind: domain.KindChatStatus, ChatID: "chat1"}
	}

	// Then each one reaches the sink
	req.Eventually(func() bool { return consumed.Load() == 3 }, time.Second, 5*time.Millisecond)
	cancel()
	req.NoError(<-done)
}
