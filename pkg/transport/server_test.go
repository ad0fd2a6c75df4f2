package transport

import (
	"context"
	"testing"
	"time"
)

func startEchoServer(t *testing.T) *Server {
	t.Helper()
	server := NewServer(ServerConfig{
		Address: "127.0.0.1:0",
		OnMessage: func(link *Link, msg []byte) {
			link.Send(msg)
		},
	})
	if err := server.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { server.Stop() })
	return server
}

func TestServerEcho(t *testing.T) {
	server := startEchoServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	link, err := Dial(ctx, server.Addr().String(), Config{WriteTimeout: time.Second})
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer link.Close()

	if err := link.Send([]byte("hello")); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	got, err := link.Receive()
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("got %q, want hello", got)
	}
}

func TestServerTracksLinks(t *testing.T) {
	connected := make(chan *Link, 1)
	disconnected := make(chan *Link, 1)
	server := NewServer(ServerConfig{
		Address:      "127.0.0.1:0",
		OnConnect:    func(l *Link) { connected <- l },
		OnDisconnect: func(l *Link) { disconnected <- l },
	})
	if err := server.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer server.Stop()

	link, err := Dial(context.Background(), server.Addr().String(), Config{})
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("OnConnect not called")
	}
	if n := server.LinkCount(); n != 1 {
		t.Errorf("LinkCount = %d, want 1", n)
	}

	link.Close()
	select {
	case <-disconnected:
	case <-time.After(2 * time.Second):
		t.Fatal("OnDisconnect not called")
	}
	if n := server.LinkCount(); n != 0 {
		t.Errorf("LinkCount after close = %d, want 0", n)
	}
}

func TestServerStopClosesLinks(t *testing.T) {
	server := startEchoServer(t)

	link, err := Dial(context.Background(), server.Addr().String(), Config{})
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer link.Close()

	// Round trip so the server has registered the link.
	link.Send([]byte("x"))
	if _, err := link.Receive(); err != nil {
		t.Fatalf("Receive failed: %v", err)
	}

	server.Stop()
	if _, err := link.Receive(); err == nil {
		t.Error("expected error after server stop")
	}
	if err := server.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestServerStartTwice(t *testing.T) {
	server := startEchoServer(t)
	if err := server.Start(context.Background()); err == nil {
		t.Error("expected error starting a running server")
	}
}
