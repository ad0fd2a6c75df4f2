// Command camsim runs a simulated camera that clients reach over TCP.
//
// Every client link gets its own simulated camera, built from a profile
// and starting in the profile's initial state.
//
// Usage:
//
//	camsim [flags]
//
// Flags:
//
//	-address string       Listen address (default "127.0.0.1:7447")
//	-profile string       Embedded profile name (default "standard")
//	-profile-file string  Profile YAML file, overrides -profile
//	-latency duration     Override the profile latency (negative keeps it)
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-capture string       Append capture events to this .clog file
//	-trace                Log capture events to the console
//	-list-profiles        List the embedded profiles and exit
//
// Examples:
//
//	# Serve the standard camera on the default address
//	camsim
//
//	# Serve an unreliable camera and record the traffic
//	camsim -profile flaky -capture camsim.clog -log-level debug
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/aerolens/camsync/pkg/log"
	"github.com/aerolens/camsync/pkg/sim"
	"github.com/aerolens/camsync/pkg/transport"
)

// Config holds the simulator configuration.
type Config struct {
	Address      string
	Profile      string
	ProfileFile  string
	Latency      time.Duration
	LogLevel     string
	CaptureFile  string
	Trace        bool
	ListProfiles bool
}

var config Config

func init() {
	flag.StringVar(&config.Address, "address", transport.DefaultAddress, "Listen address")
	flag.StringVar(&config.Profile, "profile", sim.DefaultProfile, "Embedded profile name")
	flag.StringVar(&config.ProfileFile, "profile-file", "", "Profile YAML file, overrides -profile")
	flag.DurationVar(&config.Latency, "latency", -1, "Override the profile latency (negative keeps it)")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&config.CaptureFile, "capture", "", "Append capture events to this .clog file")
	flag.BoolVar(&config.Trace, "trace", false, "Log capture events to the console")
	flag.BoolVar(&config.ListProfiles, "list-profiles", false, "List the embedded profiles and exit")
}

func main() {
	flag.Parse()

	if config.ListProfiles {
		names, err := sim.AvailableProfiles()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(strings.Join(names, "\n"))
		return
	}

	logger := newLogger(config.LogLevel)
	if err := run(logger); err != nil {
		logger.Error("camsim failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func loadProfile() (*sim.Profile, error) {
	var (
		profile *sim.Profile
		err     error
	)
	if config.ProfileFile != "" {
		profile, err = sim.LoadProfileFile(config.ProfileFile)
	} else {
		profile, err = sim.LoadProfile(config.Profile)
	}
	if err != nil {
		return nil, err
	}
	if config.Latency >= 0 {
		profile = profile.WithLatency(config.Latency)
	}
	return profile, nil
}

func run(logger *slog.Logger) error {
	profile, err := loadProfile()
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	var sinks []log.Logger
	if config.Trace {
		sinks = append(sinks, log.NewSlogAdapter(logger))
	}
	if config.CaptureFile != "" {
		fl, err := log.NewFileLogger(config.CaptureFile)
		if err != nil {
			return fmt.Errorf("open capture file: %w", err)
		}
		defer fl.Close()
		sinks = append(sinks, fl)
	}
	capture := log.Tee(sinks...)

	cameras := newCameraSet(profile, logger, capture)
	server := transport.NewServer(transport.ServerConfig{
		Address:      config.Address,
		Logger:       capture,
		OnConnect:    cameras.connect,
		OnDisconnect: cameras.disconnect,
		OnMessage:    cameras.message,
		OnError: func(link *transport.Link, err error) {
			if link == nil {
				logger.Warn("server error", "error", err)
				return
			}
			logger.Debug("link error", "session", link.ID(), "error", err)
		},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := server.Start(ctx); err != nil {
		return err
	}
	logger.Info("camera simulator listening",
		"address", server.Addr().String(),
		"profile", profile.Name,
		"latency", profile.Latency,
	)

	<-ctx.Done()
	logger.Info("shutting down", "links", server.LinkCount())
	return server.Stop()
}

// cameraSet holds one simulated camera per client link.
type cameraSet struct {
	profile *sim.Profile
	logger  *slog.Logger
	capture log.Logger

	mu      sync.Mutex
	devices map[*transport.Link]*sim.Device
}

func newCameraSet(profile *sim.Profile, logger *slog.Logger, capture log.Logger) *cameraSet {
	return &cameraSet{
		profile: profile,
		logger:  logger,
		capture: capture,
		devices: make(map[*transport.Link]*sim.Device),
	}
}

func (s *cameraSet) connect(link *transport.Link) {
	logger := s.logger.With("session", link.ID())
	device, err := sim.NewDevice(s.profile, sim.Config{
		SessionID: link.ID(),
		Logger:    logger,
		Capture:   s.capture,
	})
	if err != nil {
		logger.Error("create camera", "error", err)
		link.Close()
		return
	}

	s.mu.Lock()
	s.devices[link] = device
	s.mu.Unlock()

	if err := device.Attach(link); err != nil {
		logger.Error("attach camera", "error", err)
		link.Close()
		return
	}
	logger.Info("client connected", "remote", link.RemoteAddr().String())
}

func (s *cameraSet) message(link *transport.Link, data []byte) {
	s.mu.Lock()
	device := s.devices[link]
	s.mu.Unlock()
	if device != nil {
		device.HandleMessage(link, data)
	}
}

func (s *cameraSet) disconnect(link *transport.Link) {
	s.mu.Lock()
	device := s.devices[link]
	delete(s.devices, link)
	s.mu.Unlock()
	if device != nil {
		device.Detach()
	}
	s.logger.Info("client disconnected", "session", link.ID())
}
