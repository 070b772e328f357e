package monitor

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/GefSum/internal/model"
)

func TestCounter(t *testing.T) {
	counter := NewCounter("test_counter")

	if counter.Get() != 0 {
		t.Errorf("Expected initial value 0, got %d", counter.Get())
	}

	counter.Inc()
	if counter.Get() != 1 {
		t.Errorf("Expected value 1 after Inc(), got %d", counter.Get())
	}

	counter.Add(5)
	if counter.Get() != 6 {
		t.Errorf("Expected value 6 after Add(5), got %d", counter.Get())
	}

	counter.Reset()
	if counter.Get() != 0 {
		t.Errorf("Expected value 0 after Reset(), got %d", counter.Get())
	}

	if counter.Name() != "test_counter" {
		t.Errorf("Expected name 'test_counter', got %s", counter.Name())
	}
}

func TestTimer(t *testing.T) {
	timer := NewTimer("test_timer")

	if timer.Count() != 0 {
		t.Errorf("Expected initial count 0, got %d", timer.Count())
	}

	if timer.TotalTime() != 0 {
		t.Errorf("Expected initial total time 0, got %v", timer.TotalTime())
	}

	// Record some durations
	timer.Record(100 * time.Millisecond)
	timer.Record(200 * time.Millisecond)
	timer.Record(150 * time.Millisecond)

	if timer.Count() != 3 {
		t.Errorf("Expected count 3, got %d", timer.Count())
	}

	expectedTotal := 450 * time.Millisecond
	if timer.TotalTime() != expectedTotal {
		t.Errorf("Expected total time %v, got %v", expectedTotal, timer.TotalTime())
	}

	expectedAvg := 150 * time.Millisecond
	if timer.AvgTime() != expectedAvg {
		t.Errorf("Expected avg time %v, got %v", expectedAvg, timer.AvgTime())
	}

	expectedMin := 100 * time.Millisecond
	if timer.MinTime() != expectedMin {
		t.Errorf("Expected min time %v, got %v", expectedMin, timer.MinTime())
	}

	expectedMax := 200 * time.Millisecond
	if timer.MaxTime() != expectedMax {
		t.Errorf("Expected max time %v, got %v", expectedMax, timer.MaxTime())
	}

	timer.Reset()
	if timer.Count() != 0 {
		t.Errorf("Expected count 0 after reset, got %d", timer.Count())
	}

	if timer.Name() != "test_timer" {
		t.Errorf("Expected name 'test_timer', got %s", timer.Name())
	}
}

func TestPercentileCalculation(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	// Test 50th percentile (median)
	p50 := percentile(values, 0.5)
	if p50 != 5.5 {
		t.Errorf("Expected P50 = 5.5, got %f", p50)
	}

	// Test 95th percentile
	p95 := percentile(values, 0.95)
	expected := 9.55 // Linear interpolation between 9 and 10
	if math.Abs(p95-expected) > 0.001 {
		t.Errorf("Expected P95 = %f, got %f", expected, p95)
	}

	// Test edge cases
	emptyValues := []float64{}
	p50Empty := percentile(emptyValues, 0.5)
	if p50Empty != 0 {
		t.Errorf("Expected P50 of empty slice = 0, got %f", p50Empty)
	}
}

func TestCollectMemory(t *testing.T) {
	metrics := CollectMemory()

	if metrics.CurrentAlloc == 0 {
		t.Error("Expected non-zero current allocation")
	}
	if metrics.TotalAlloc < metrics.CurrentAlloc {
		t.Errorf("Expected total allocation >= current, got %d < %d", metrics.TotalAlloc, metrics.CurrentAlloc)
	}
}

func TestParseStats(t *testing.T) {
	stats := NewParseStats()

	cpt := model.NewCPT(model.Header{Name: "CPT-01", ZTop: 1}, 0, []model.Sample{
		{Z: 1, QC: 1, FS: 0.01},
		{Z: 0.5, QC: 2, FS: 0.02},
	}, 3)
	borehole := model.NewBorehole(model.Header{Name: "B-17"}, []model.SoilLayer{
		{ZTop: 0, ZBottom: -1, SoilCode: "Z"},
	})

	stats.Record(cpt, 10*time.Millisecond)
	stats.Record(borehole, 30*time.Millisecond)

	record, err := stats.Track(func() (model.Record, error) {
		return nil, errors.New("malformed")
	})
	if err == nil || record != nil {
		t.Fatalf("Expected the parse error to pass through, got %v, %v", record, err)
	}

	snap := stats.Snapshot()
	if snap.Files() != 3 {
		t.Errorf("Expected 3 files, got %d", snap.Files())
	}
	if snap.CPTs != 1 || snap.Boreholes != 1 || snap.Failed != 1 {
		t.Errorf("Unexpected counts: %+v", snap)
	}
	if snap.Samples != 2 || snap.VoidedSamples != 3 {
		t.Errorf("Expected 2 samples and 3 voided, got %d and %d", snap.Samples, snap.VoidedSamples)
	}
	if snap.Layers != 1 {
		t.Errorf("Expected 1 layer, got %d", snap.Layers)
	}
	if snap.ParseTime.Count != 3 {
		t.Errorf("Expected 3 timings, got %d", snap.ParseTime.Count)
	}
	if snap.ParseTime.Max != 30*time.Millisecond {
		t.Errorf("Expected max 30ms, got %v", snap.ParseTime.Max)
	}
	if snap.ParseTime.P50 != 10*time.Millisecond {
		t.Errorf("Expected p50 10ms, got %v", snap.ParseTime.P50)
	}
}

func TestSnapshotReport(t *testing.T) {
	stats := NewParseStats()
	if report := stats.Snapshot().Report(); !strings.HasPrefix(report, "0 files (0 CPT, 0 borehole, 0 failed)") {
		t.Errorf("Unexpected empty report: %q", report)
	}

	cpt := model.NewCPT(model.Header{}, 0, []model.Sample{{Z: 0, QC: 1, FS: 0.01}}, 1)
	stats.Record(cpt, time.Millisecond)

	report := stats.Snapshot().Report()
	for _, want := range []string{"1 files (1 CPT, 0 borehole, 0 failed)", "samples: 1 (1 voided)", "parse time: avg 1ms"} {
		if !strings.Contains(report, want) {
			t.Errorf("Expected report to contain %q, got:\n%s", want, report)
		}
	}
	if strings.Contains(report, "layers:") {
		t.Errorf("Expected no layer line without boreholes, got:\n%s", report)
	}
}

func TestDurationWindow(t *testing.T) {
	stats := NewParseStats()
	for i := 0; i < maxDurations+5; i++ {
		stats.RecordFailure(time.Duration(i))
	}

	if got := len(stats.durations); got != maxDurations {
		t.Errorf("Expected %d kept durations, got %d", maxDurations, got)
	}
	if stats.durations[0] != 5 {
		t.Errorf("Expected the oldest durations to be dropped, first is %v", stats.durations[0])
	}
	if got := stats.Snapshot().Failed; got != maxDurations+5 {
		t.Errorf("Expected every failure counted, got %d", got)
	}
}
