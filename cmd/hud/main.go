package main

import (
	"chat-router/broadcast"
	"chat-router/transport/ws"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
	ackTimeout  = 5 * time.Second
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hud: %v\n", err)
	}
	os.Exit(code)
}

type update struct {
	oldVersion, newVersion string
	patch                  []byte
}

func run() (int, error) {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		return exitConfig, err
	}
	if !cfg.Colours {
		color.Disable()
	}
	logger := logs.GetLoggerFromLevel(slog.LevelWarn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	target, err := url.Parse(cfg.Server)
	if err != nil {
		return exitConfig, err
	}
	header := http.Header{}
	if cfg.Token != "" {
		header.Set("Authorization", "Bearer "+cfg.Token)
	}
	socket, _, err := websocket.DefaultDialer.DialContext(ctx, target.String(), header)
	if err != nil {
		return exitRuntime, fmt.Errorf("dial %s: %w", target, err)
	}
	conn := ws.NewConn(socket, 64, logger)
	conn.Start()

	updates := make(chan update, 64)
	go func() {
		_ = conn.ReadLoop(func(f ws.Frame) {
			if f.Event != "broadcast.update" || len(f.Args) < 3 {
				return
			}
			var u update
			if f.Arg(0, &u.oldVersion) != nil || f.Arg(1, &u.newVersion) != nil {
				return
			}
			u.patch = f.Args[2]
			select {
			case updates <- u:
			default:
				// a dropped patch surfaces as a version gap and triggers a resync
			}
		})
	}()
	defer conn.Close(websocket.CloseNormalClosure, "bye")

	if cfg.Command != "" {
		return dispatch(ctx, conn, cfg.Command)
	}

	replica := broadcast.NewReplica()
	if err := resync(ctx, conn, replica); err != nil {
		return exitRuntime, err
	}
	render(replica)
	if cfg.Once {
		return exitOK, nil
	}

	ticker := time.NewTicker(cfg.Refresh)
	defer ticker.Stop()
	dirty := false
	for {
		select {
		case <-ctx.Done():
			return exitOK, nil
		case <-conn.Done():
			return exitRuntime, fmt.Errorf("connection closed by server")
		case u := <-updates:
			if err := replica.Apply(u.oldVersion, u.newVersion, u.patch); err != nil {
				if err := resync(ctx, conn, replica); err != nil {
					return exitRuntime, err
				}
			}
			dirty = true
		case <-ticker.C:
			if dirty {
				render(replica)
				dirty = false
			}
		}
	}
}

// resync replaces the replica with the server state.
func resync(ctx context.Context, conn *ws.Conn, replica *broadcast.Replica) error {
	ctx, cancel := context.WithTimeout(ctx, ackTimeout)
	defer cancel()
	resp, err := conn.EmitWithAck(ctx, "broadcast.state")
	if err != nil {
		return fmt.Errorf("broadcast.state: %w", err)
	}
	ack := ws.Frame{Event: "broadcast.state", Args: resp}
	if err := ackFailure(ack); err != nil {
		return err
	}
	var version string
	if err := ack.Arg(1, &version); err != nil {
		return err
	}
	if len(resp) < 3 {
		return fmt.Errorf("broadcast.state: missing document")
	}
	replica.Reset(version, resp[2])
	return nil
}

func dispatch(ctx context.Context, conn *ws.Conn, command string) (int, error) {
	if !json.Valid([]byte(command)) {
		return exitConfig, fmt.Errorf("command is not valid JSON")
	}
	ctx, cancel := context.WithTimeout(ctx, ackTimeout)
	defer cancel()
	resp, err := conn.EmitWithAck(ctx, "broadcast.dispatch", json.RawMessage(command))
	if err != nil {
		return exitRuntime, err
	}
	if err := ackFailure(ws.Frame{Event: "broadcast.dispatch", Args: resp}); err != nil {
		return exitRuntime, err
	}
	fmt.Println(color.Green.Render("dispatched"))
	return exitOK, nil
}

// ackFailure turns a non-null first acknowledgment argument into an error.
func ackFailure(ack ws.Frame) error {
	var reason *string
	if len(ack.Args) == 0 {
		return nil
	}
	if err := ack.Arg(0, &reason); err != nil {
		return err
	}
	if reason != nil {
		return fmt.Errorf("%s refused: %s", ack.Event, *reason)
	}
	return nil
}

func render(replica *broadcast.Replica) {
	p, err := replica.Projection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hud: %v\n", err)
		return
	}
	fmt.Print("\033[H\033[2J")
	Render(os.Stdout, replica.Version(), p)
}
