package transport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aerolens/camsync/pkg/log"
)

func TestPipeSendReceive(t *testing.T) {
	client, camera := Pipe(Config{SessionID: "client"}, Config{SessionID: "camera"})
	defer client.Close()
	defer camera.Close()

	go func() {
		client.Send([]byte("ping"))
	}()

	got, err := camera.Receive()
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	if string(got) != "ping" {
		t.Errorf("got %q, want ping", got)
	}
	if client.ID() != "client" || camera.ID() != "camera" {
		t.Errorf("IDs = %q, %q", client.ID(), camera.ID())
	}
}

func TestLinkGeneratesSessionID(t *testing.T) {
	a, b := Pipe(Config{}, Config{})
	defer a.Close()
	defer b.Close()

	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("expected distinct generated IDs, got %q and %q", a.ID(), b.ID())
	}
}

func TestLinkServeDeliversUntilPeerCloses(t *testing.T) {
	client, camera := Pipe(Config{}, Config{})
	defer camera.Close()

	received := make(chan string, 3)
	done := make(chan error, 1)
	go func() {
		done <- camera.Serve(context.Background(), func(msg []byte) {
			received <- string(msg)
		})
	}()

	for _, m := range []string{"a", "b", "c"} {
		if err := client.Send([]byte(m)); err != nil {
			t.Fatalf("Send failed: %v", err)
		}
	}
	client.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after peer close")
	}

	close(received)
	var got []string
	for m := range received {
		got = append(got, m)
	}
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Errorf("received %v", got)
	}
}

func TestLinkServeStopsOnContext(t *testing.T) {
	client, camera := Pipe(Config{}, Config{})
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- camera.Serve(ctx, func([]byte) {})
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	if err := camera.Send([]byte("late")); !errors.Is(err, ErrLinkClosed) {
		t.Errorf("Send after close: got %v, want ErrLinkClosed", err)
	}
}

func TestLinkCloseTwice(t *testing.T) {
	a, b := Pipe(Config{}, Config{})
	defer b.Close()

	if err := a.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestLinkLogsState(t *testing.T) {
	logger := &capturingLogger{}
	a, b := Pipe(Config{SessionID: "sess", Logger: logger}, Config{})
	defer b.Close()
	a.Close()

	var states []string
	for _, e := range logger.Events() {
		if e.StateChange != nil {
			if e.StateChange.Entity != log.StateEntityLink {
				t.Errorf("Entity = %v, want LINK", e.StateChange.Entity)
			}
			states = append(states, e.StateChange.NewState)
		}
	}
	if len(states) != 2 || states[0] != "CONNECTED" || states[1] != "CLOSED" {
		t.Errorf("states = %v, want [CONNECTED CLOSED]", states)
	}
}
