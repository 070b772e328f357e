package monitor

import (
	"math"
	"runtime"
	"sync/atomic"
	"time"
)

// MemoryMetrics holds the heap figures reported after a parse run
type MemoryMetrics struct {
	CurrentAlloc uint64 `json:"current_alloc"` // bytes currently allocated
	TotalAlloc   uint64 `json:"total_alloc"`   // total bytes allocated
	HeapInuse    uint64 `json:"heap_inuse"`    // bytes in in-use spans
	NumGC        uint32 `json:"num_gc"`
}

// Counter is a thread-safe counter metric
type Counter struct {
	value int64
	name  string
}

// NewCounter creates a new counter metric
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc increments the counter by 1
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Add adds the given value to the counter
func (c *Counter) Add(value int64) {
	atomic.AddInt64(&c.value, value)
}

// Get returns the current counter value
func (c *Counter) Get() int64 {
	return atomic.LoadInt64(&c.value)
}

// Reset resets the counter to 0
func (c *Counter) Reset() {
	atomic.StoreInt64(&c.value, 0)
}

// Name returns the counter name
func (c *Counter) Name() string {
	return c.name
}

// Timer is a thread-safe timer for measuring operation durations
type Timer struct {
	count     int64
	totalTime int64
	minTime   int64
	maxTime   int64
	name      string
}

// NewTimer creates a new timer metric
func NewTimer(name string) *Timer {
	return &Timer{
		name:    name,
		minTime: math.MaxInt64,
	}
}

// Record records a duration measurement
func (t *Timer) Record(duration time.Duration) {
	nanos := duration.Nanoseconds()

	atomic.AddInt64(&t.count, 1)
	atomic.AddInt64(&t.totalTime, nanos)

	// Update min time
	for {
		current := atomic.LoadInt64(&t.minTime)
		if nanos >= current {
			break
		}
		if atomic.CompareAndSwapInt64(&t.minTime, current, nanos) {
			break
		}
	}

	// Update max time
	for {
		current := atomic.LoadInt64(&t.maxTime)
		if nanos <= current {
			break
		}
		if atomic.CompareAndSwapInt64(&t.maxTime, current, nanos) {
			break
		}
	}
}

// Count returns the number of recorded measurements
func (t *Timer) Count() int64 {
	return atomic.LoadInt64(&t.count)
}

// TotalTime returns the total time of all measurements
func (t *Timer) TotalTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.totalTime))
}

// MinTime returns the minimum recorded time
func (t *Timer) MinTime() time.Duration {
	minTime := atomic.LoadInt64(&t.minTime)
	if minTime == math.MaxInt64 {
		return 0
	}
	return time.Duration(minTime)
}

// MaxTime returns the maximum recorded time
func (t *Timer) MaxTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.maxTime))
}

// AvgTime returns the average time of all measurements
func (t *Timer) AvgTime() time.Duration {
	count := atomic.LoadInt64(&t.count)
	if count == 0 {
		return 0
	}
	total := atomic.LoadInt64(&t.totalTime)
	return time.Duration(total / count)
}

// Reset resets all timer metrics
func (t *Timer) Reset() {
	atomic.StoreInt64(&t.count, 0)
	atomic.StoreInt64(&t.totalTime, 0)
	atomic.StoreInt64(&t.minTime, math.MaxInt64)
	atomic.StoreInt64(&t.maxTime, 0)
}

// Name returns the timer name
func (t *Timer) Name() string {
	return t.name
}

// CollectMemory reads the current heap figures. Call runtime.GC first for
// stable numbers.
func CollectMemory() MemoryMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return MemoryMetrics{
		CurrentAlloc: m.Alloc,
		TotalAlloc:   m.TotalAlloc,
		HeapInuse:    m.HeapInuse,
		NumGC:        m.NumGC,
	}
}
