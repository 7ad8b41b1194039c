// Package metrics keeps process-wide counters for provider calls and scrapes and
// exposes them in Prometheus text format.
package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	generateStartedTotal   atomic.Uint64
	generateCompletedTotal atomic.Uint64
	generateFailedTotal    atomic.Uint64
	scrapeCompletedTotal   atomic.Uint64
	scrapeFailedTotal      atomic.Uint64

	generateDuration = newHistogram([]float64{500, 1000, 2500, 5000, 10000, 30000, 60000, 120000})
)

// IncGenerateStarted counts a provider call that passed validation.
func IncGenerateStarted() {
	generateStartedTotal.Add(1)
}

// IncGenerateCompleted counts a provider call that returned text.
func IncGenerateCompleted() {
	generateCompletedTotal.Add(1)
}

// IncGenerateFailed counts a provider call that ended in an error.
func IncGenerateFailed() {
	generateFailedTotal.Add(1)
}

// ObserveGenerateDurationMs records how long a provider call took.
func ObserveGenerateDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	generateDuration.Observe(value)
}

// IncScrape counts a finished scrape, successful or not.
func IncScrape(ok bool) {
	if ok {
		scrapeCompletedTotal.Add(1)
		return
	}
	scrapeFailedTotal.Add(1)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "llm_generate_started_total", "Provider calls started", generateStartedTotal.Load())
	writeCounter(&buf, "llm_generate_completed_total", "Provider calls that returned text", generateCompletedTotal.Load())
	writeCounter(&buf, "llm_generate_failed_total", "Provider calls that failed", generateFailedTotal.Load())
	writeHistogram(&buf, "llm_generate_duration_ms", "Provider call duration in milliseconds", generateDuration.Snapshot())
	writeCounter(&buf, "scrape_completed_total", "Job posting scrapes that returned text", scrapeCompletedTotal.Load())
	writeCounter(&buf, "scrape_failed_total", "Job posting scrapes that failed", scrapeFailedTotal.Load())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe adds value to the first bucket whose bound covers it.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

// writeHistogram emits cumulative buckets; counts are stored per bucket.
func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
