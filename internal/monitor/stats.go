package monitor

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yildizm/GefSum/internal/model"
)

// maxDurations bounds the parse times kept for percentiles
const maxDurations = 10000

// ParseStats accumulates the outcome of parsing GEF files. It is safe for
// concurrent use.
type ParseStats struct {
	started   time.Time
	cpts      *Counter
	boreholes *Counter
	failed    *Counter
	samples   *Counter
	skipped   *Counter
	layers    *Counter
	timer     *Timer

	mu        sync.Mutex
	durations []time.Duration
}

// NewParseStats starts a new collection
func NewParseStats() *ParseStats {
	return &ParseStats{
		started:   time.Now(),
		cpts:      NewCounter("cpt_files"),
		boreholes: NewCounter("borehole_files"),
		failed:    NewCounter("failed_files"),
		samples:   NewCounter("samples"),
		skipped:   NewCounter("voided_samples"),
		layers:    NewCounter("layers"),
		timer:     NewTimer("parse"),
	}
}

// Track runs a parse and records its outcome and duration
func (s *ParseStats) Track(parse func() (model.Record, error)) (model.Record, error) {
	start := time.Now()
	record, err := parse()
	elapsed := time.Since(start)

	if err != nil {
		s.RecordFailure(elapsed)
		return nil, err
	}
	s.Record(record, elapsed)
	return record, nil
}

// Record counts a parsed record
func (s *ParseStats) Record(record model.Record, elapsed time.Duration) {
	switch r := record.(type) {
	case *model.CPT:
		s.cpts.Inc()
		s.samples.Add(int64(r.Len()))
		s.skipped.Add(int64(r.Skipped))
	case *model.Borehole:
		s.boreholes.Inc()
		s.layers.Add(int64(len(r.Layers)))
	}
	s.observe(elapsed)
}

// RecordFailure counts a file that could not be parsed
func (s *ParseStats) RecordFailure(elapsed time.Duration) {
	s.failed.Inc()
	s.observe(elapsed)
}

func (s *ParseStats) observe(elapsed time.Duration) {
	s.timer.Record(elapsed)

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.durations) == maxDurations {
		// keep the most recent window
		copy(s.durations, s.durations[1:])
		s.durations = s.durations[:maxDurations-1]
	}
	s.durations = append(s.durations, elapsed)
}

// Snapshot is a point-in-time copy of the collected statistics
type Snapshot struct {
	Elapsed        time.Duration `json:"elapsed"`
	CPTs           int64         `json:"cpts"`
	Boreholes      int64         `json:"boreholes"`
	Failed         int64         `json:"failed"`
	Samples        int64         `json:"samples"`
	VoidedSamples  int64         `json:"voided_samples"`
	Layers         int64         `json:"layers"`
	ParseTime      Aggregates    `json:"parse_time"`
	TotalParseTime time.Duration `json:"total_parse_time"`
}

// Aggregates summarises the per-file parse times
type Aggregates struct {
	Count int           `json:"count"`
	Min   time.Duration `json:"min"`
	Max   time.Duration `json:"max"`
	Avg   time.Duration `json:"avg"`
	P50   time.Duration `json:"p50"`
	P95   time.Duration `json:"p95"`
}

// Snapshot returns the statistics collected so far
func (s *ParseStats) Snapshot() Snapshot {
	s.mu.Lock()
	durations := append([]time.Duration(nil), s.durations...)
	s.mu.Unlock()

	return Snapshot{
		Elapsed:        time.Since(s.started),
		CPTs:           s.cpts.Get(),
		Boreholes:      s.boreholes.Get(),
		Failed:         s.failed.Get(),
		Samples:        s.samples.Get(),
		VoidedSamples:  s.skipped.Get(),
		Layers:         s.layers.Get(),
		ParseTime:      aggregate(durations, s.timer),
		TotalParseTime: s.timer.TotalTime(),
	}
}

// Files returns the number of files seen, parsed or not
func (s Snapshot) Files() int64 {
	return s.CPTs + s.Boreholes + s.Failed
}

// Summary describes the snapshot in one line
func (s Snapshot) Summary() string {
	return fmt.Sprintf("%d files (%d CPT, %d borehole, %d failed) in %v",
		s.Files(), s.CPTs, s.Boreholes, s.Failed, s.Elapsed.Round(time.Millisecond))
}

// Report renders the snapshot as an indented text block
func (s Snapshot) Report() string {
	var b strings.Builder
	b.WriteString(s.Summary() + "\n")
	if s.CPTs > 0 {
		fmt.Fprintf(&b, "  samples: %d (%d voided)\n", s.Samples, s.VoidedSamples)
	}
	if s.Boreholes > 0 {
		fmt.Fprintf(&b, "  layers: %d\n", s.Layers)
	}
	if s.ParseTime.Count > 0 {
		fmt.Fprintf(&b, "  parse time: avg %v, p50 %v, p95 %v, max %v\n",
			s.ParseTime.Avg, s.ParseTime.P50, s.ParseTime.P95, s.ParseTime.Max)
	}
	return b.String()
}

func aggregate(durations []time.Duration, timer *Timer) Aggregates {
	if len(durations) == 0 {
		return Aggregates{}
	}

	sorted := make([]float64, len(durations))
	for i, d := range durations {
		sorted[i] = float64(d)
	}
	sort.Float64s(sorted)

	return Aggregates{
		Count: int(timer.Count()),
		Min:   timer.MinTime(),
		Max:   timer.MaxTime(),
		Avg:   timer.AvgTime(),
		P50:   time.Duration(percentile(sorted, 0.50)),
		P95:   time.Duration(percentile(sorted, 0.95)),
	}
}

// percentile interpolates the p-th percentile of sorted values
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
