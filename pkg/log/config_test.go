package log_test

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aerolens/camsync/pkg/interaction"
	"github.com/aerolens/camsync/pkg/log"
	"github.com/aerolens/camsync/pkg/setting"
)

func TestCaptureThroughSessionConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.clog")
	file, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var console bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&console, nil))

	cfg := interaction.Config{
		Logger:  logger,
		Capture: log.Tee(log.NewSlogAdapter(logger), file),
	}
	cfg.Capture.Log(log.TransitionEventFor("sess", setting.Transition{
		Setting: "white_balance",
		Kind:    setting.KindRequest,
	}))

	if err := file.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if file.Written() != 1 {
		t.Errorf("Written() = %d, want 1", file.Written())
	}
	if !strings.Contains(console.String(), "white_balance") {
		t.Errorf("console output %q does not mention the setting", console.String())
	}
}
