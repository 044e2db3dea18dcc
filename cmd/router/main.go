package main

import (
	"chat-router/auth"
	"chat-router/broadcast"
	"chat-router/contract"
	"chat-router/domain"
	"chat-router/events"
	"chat-router/internal"
	"chat-router/moderation"
	"chat-router/runtime"
	"chat-router/runtime/workers"
	"chat-router/state"
	"chat-router/storage"
	"chat-router/transport/admin"
	"chat-router/transport/ws"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Router terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a fatal error.
// Deferred cleanups (badger, amqp) run before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database (BadgerDB) & restored state
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if logger.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, storage.InspectMapper)
	}

	repository, err := storage.NewSnapshotRepository(db, logger, config.SnapshotHistoryTTL)
	if err != nil {
		return exitRuntime, err
	}
	st, err := restoreState(repository, config, logger)
	if err != nil {
		return exitRuntime, err
	}

	// 3. Coordinator
	reducer := state.NewReducer(logger, state.Config{
		CustomerLeftDelay: config.CustomerLeftDelay,
		AutocloseDelay:    config.AutocloseDelay,
		DefaultCapacity:   config.DefaultCapacity,
	})
	coordinator := runtime.NewCoordinator(logger, reducer, st, config.BufferSize, config.OfferTimeout)

	// 4. Gateways
	filter, err := buildFilter(config, charReplacement, logger)
	if err != nil {
		return exitConfig, err
	}
	customerHub, operatorHub, agentHub := ws.NewHub(), ws.NewHub(), ws.NewHub()
	customers := ws.NewCustomerGateway(logger, customerHub, operatorHub, coordinator, filter, moderation.LanguageDetector{})
	operators := ws.NewOperatorGateway(logger, operatorHub, customerHub, coordinator, coordinator, filter)
	agents := ws.NewAgentGateway(logger, agentHub, coordinator, coordinator)
	coordinator.WithGateways(runtime.Gateways{Customers: customers, Operators: operators, Agents: agents})

	// 5. Broadcast
	synchronizer, err := broadcast.NewSynchronizer(logger, coordinator, operators, config.BroadcastQuietPeriod, config.BroadcastMaxLatency)
	if err != nil {
		return exitRuntime, fmt.Errorf("broadcast init failed: %w", err)
	}
	operators.WithBroadcast(synchronizer)
	coordinator.Observe(synchronizer)

	// 6. Lifecycle events
	lifecycle := make(chan domain.LifecycleEvent, config.BufferSize)
	coordinator.WithEvents(lifecycle)
	fanout := workers.NewEventFanout(logger, lifecycle, config.SinkTimeout, events.NewLogSink(logger))
	if config.AMQPURL != "" {
		sink, err := events.NewAMQPSink(config.AMQPURL, config.AMQPExchange, logger)
		if err != nil {
			return exitRuntime, fmt.Errorf("amqp connection failed: %w", err)
		}
		defer func() { _ = sink.Close() }()
		fanout.Add(sink)
	}

	// 7. Servers & background workers
	issuer := auth.NewIssuer(config.JWTSecret, config.AuthTokenDuration)
	server := ws.NewServer(logger, config.Host, config.Port, config.ConnectionBufferSize, issuer, config.AgentKeyHash, customers, operators, agents)
	adminServer := admin.NewServer(logger, config.Host, config.AdminPort)
	stats := workers.NewStatsWorker(logger, coordinator, config.StatsInterval)
	snapshots := workers.NewSnapshotWorker(logger, coordinator, repository, config.SnapshotInterval)
	heartbeat := workers.NewHeartbeatWorker(logger, coordinator, adminServer, config.HeartbeatInterval, config.StallTimeout)

	supervisor := workers.NewSupervisor(logger, config.RestartInterval)
	supervisor.Add(coordinator, synchronizer, fanout, server, adminServer, stats, snapshots, heartbeat)

	// 8. Run until a signal arrives
	logger.Info("Starting chat router", "address", fmt.Sprintf("%s:%d", config.Host, config.Port))
	supervisor.Run(ctx)
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

func restoreState(repository contract.SnapshotRepository, config internal.Config, logger *slog.Logger) (*state.State, error) {
	snapshot, ok, err := repository.Load()
	if err != nil {
		return nil, err
	}
	if !ok {
		st := state.New()
		st.System.AcceptsCustomers = config.AcceptsCustomers
		return st, nil
	}
	logger.Info("Restoring snapshot", "taken_at", snapshot.TakenAt, "chats", len(snapshot.Chats), "operators", len(snapshot.Operators))
	return state.Restore(snapshot), nil
}

func buildFilter(config internal.Config, charReplacement rune, logger *slog.Logger) (contract.MessageFilter, error) {
	words := moderation.ParseWords(config.CensoredWords)
	if len(words) == 0 {
		return nil, nil
	}
	return moderation.NewModerator(words, charReplacement, logger)
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.WARNING)
}
