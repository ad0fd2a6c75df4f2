package commands

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aerolens/camsync/pkg/log"
	"github.com/aerolens/camsync/pkg/wire"
)

func exportEvents() []log.Event {
	op := wire.OpWrite
	feature := wire.FeaturePhoto
	return []log.Event{
		{
			Timestamp: testTime,
			SessionID: "abc12345",
			Direction: log.DirectionOut,
			Layer:     log.LayerWire,
			Category:  log.CategoryMessage,
			Message: &log.MessageEvent{
				Type:      log.MessageTypeRequest,
				MessageID: 7,
				Operation: &op,
				Feature:   &feature,
			},
		},
		{
			Timestamp: testTime,
			SessionID: "abc12345",
			Direction: log.DirectionIn,
			Layer:     log.LayerSetting,
			Category:  log.CategoryTransition,
			Transition: &log.TransitionEvent{
				Setting: "photo",
				Kind:    "CONFIRM",
				From:    "SINGLE",
				To:      "BURST",
			},
		},
	}
}

func TestExportToJSONL(t *testing.T) {
	path := createTestLogFile(t, exportEvents())

	outPath := filepath.Join(t.TempDir(), "out.jsonl")
	if err := RunExport(path, "jsonl", outPath); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", len(lines), data)
	}

	var decoded log.Event
	if err := json.Unmarshal([]byte(lines[1]), &decoded); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
	if decoded.Transition == nil || decoded.Transition.To != "BURST" {
		t.Errorf("transition not exported: %+v", decoded)
	}
}

func TestExportToCSV(t *testing.T) {
	path := createTestLogFile(t, exportEvents())

	outPath := filepath.Join(t.TempDir(), "out.csv")
	if err := RunExport(path, "csv", outPath); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(csvHeader, ",") {
		t.Errorf("header = %v", records[0])
	}

	request := records[1]
	if request[5] != "REQUEST" || request[6] != "7" || request[7] != "Photo" {
		t.Errorf("request row = %v", request)
	}
	transition := records[2]
	if transition[5] != "CONFIRM" || transition[8] != "photo" || transition[9] != "SINGLE" || transition[10] != "BURST" {
		t.Errorf("transition row = %v", transition)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, exportEvents())
	err := RunExport(path, "xml", filepath.Join(t.TempDir(), "out.xml"))
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("RunExport(xml) error = %v, want unknown format", err)
	}
}
