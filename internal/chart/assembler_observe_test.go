package chart

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ssingla/astralyogi/internal/telemetry"
)

func TestBuildLogsAndEmits(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	path := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := telemetry.NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	a := newAssembler(fixtureTable(natalSamples()), WithLogger(zap.New(core)), WithTelemetry(em))
	ok, err := a.Build(context.Background(), birthRequest())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	bad := birthRequest()
	bad.City = "Atlantis"
	if _, err := a.Build(context.Background(), bad); err == nil {
		t.Fatal("expected failure")
	}
	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if n := logs.FilterMessage("chart built").Len(); n != 1 {
		t.Errorf("%d 'chart built' logs, want 1", n)
	}
	if n := logs.FilterMessage("chart build failed").Len(); n != 1 {
		t.Errorf("%d 'chart build failed' logs, want 1", n)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	events, err := telemetry.ReadEvents(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	var kinds []string
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	want := []string{
		telemetry.KindChartRequested, telemetry.KindChartBuilt,
		telemetry.KindChartRequested, telemetry.KindChartFailed,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("event kinds mismatch (-want +got):\n%s", diff)
	}
	if events[1].ChartID != ok.ID {
		t.Errorf("built event id = %s, chart id = %s", events[1].ChartID, ok.ID)
	}
}
