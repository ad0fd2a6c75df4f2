// Command camctl is an interactive client for a drone camera.
//
// camctl keeps a local copy of every camera setting. Changes are shown
// immediately and confirmed, or corrected, by the camera afterwards.
// Without -connect it runs against an in-process simulated camera.
//
// Usage:
//
//	camctl [flags]
//
// Flags:
//
//	-connect string       Camera address; empty runs an in-process simulator
//	-profile string       Simulator profile name (default "standard")
//	-profile-file string  Simulator profile YAML file, overrides -profile
//	-latency duration     Override the simulator latency (negative keeps it)
//	-queue int            Outbound request queue size (default 32)
//	-log-level string     Log level: debug, info, warn, error (default "warn")
//	-capture string       Append capture events to this .clog file
//	-trace                Log capture events to the console
//
// Examples:
//
//	# Drive the simulated camera
//	camctl
//
//	# Drive an unreliable simulated camera and record the session
//	camctl -profile flaky -capture session.clog
//
//	# Connect to a camsim instance
//	camctl -connect 127.0.0.1:7447
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/aerolens/camsync/cmd/camctl/interactive"
	"github.com/aerolens/camsync/pkg/interaction"
	"github.com/aerolens/camsync/pkg/log"
	"github.com/aerolens/camsync/pkg/sim"
	"github.com/aerolens/camsync/pkg/transport"
)

// Config holds the client configuration.
type Config struct {
	Connect     string
	Profile     string
	ProfileFile string
	Latency     time.Duration
	QueueSize   int
	LogLevel    string
	CaptureFile string
	Trace       bool
}

var config Config

func init() {
	flag.StringVar(&config.Connect, "connect", "", "Camera address; empty runs an in-process simulator")
	flag.StringVar(&config.Profile, "profile", sim.DefaultProfile, "Simulator profile name")
	flag.StringVar(&config.ProfileFile, "profile-file", "", "Simulator profile YAML file, overrides -profile")
	flag.DurationVar(&config.Latency, "latency", -1, "Override the simulator latency (negative keeps it)")
	flag.IntVar(&config.QueueSize, "queue", interaction.DefaultQueueSize, "Outbound request queue size")
	flag.StringVar(&config.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	flag.StringVar(&config.CaptureFile, "capture", "", "Append capture events to this .clog file")
	flag.BoolVar(&config.Trace, "trace", false, "Log capture events to the console")
}

func main() {
	flag.Parse()

	shell, err := interactive.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Redirect log output through readline to avoid interfering with input
	var level slog.Level
	if err := level.UnmarshalText([]byte(config.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(shell.Stderr(), &slog.HandlerOptions{Level: level}))

	if err := run(shell, logger); err != nil {
		logger.Error("camctl failed", "error", err)
		os.Exit(1)
	}
}

func run(shell *interactive.Shell, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sessionID := uuid.NewString()
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

	linkConfig := transport.Config{SessionID: sessionID, Logger: capture}
	var link transport.MessageLink
	if config.Connect != "" {
		dialCtx, dialCancel := context.WithTimeout(ctx, 5*time.Second)
		l, err := transport.Dial(dialCtx, config.Connect, linkConfig)
		dialCancel()
		if err != nil {
			return err
		}
		link = l
		logger.Info("connected", "address", config.Connect, "session", sessionID)
	} else {
		l, err := startSimulator(ctx, linkConfig, logger)
		if err != nil {
			return err
		}
		link = l
	}
	defer link.Close()

	session := interaction.NewSession(link, interaction.Config{
		SessionID: sessionID,
		QueueSize: config.QueueSize,
		Capture:   capture,
		Logger:    logger,
	})
	shell.Attach(session)

	go func() {
		if err := session.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("session ended", "error", err)
		}
	}()

	shell.Run(ctx, cancel)
	return nil
}

// startSimulator serves a simulated camera on one end of an in-memory
// link and returns the other end.
func startSimulator(ctx context.Context, linkConfig transport.Config, logger *slog.Logger) (*transport.Link, error) {
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
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if config.Latency >= 0 {
		profile = profile.WithLatency(config.Latency)
	}

	device, err := sim.NewDevice(profile, sim.Config{Logger: logger})
	if err != nil {
		return nil, err
	}

	client, cam := transport.Pipe(linkConfig, transport.Config{})
	go func() {
		defer cam.Close()
		if err := device.Serve(ctx, cam); err != nil && ctx.Err() == nil {
			logger.Warn("simulator stopped", "error", err)
		}
	}()
	logger.Info("simulated camera started", "profile", profile.Name, "latency", profile.Latency)
	return client, nil
}
