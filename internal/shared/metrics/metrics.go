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
	correctionsSubmittedTotal atomic.Uint64
	firstPresentationsTotal   atomic.Uint64
	filesIngestedTotal        atomic.Uint64
	submissionsFailedTotal    atomic.Uint64
	auditAppendFailedTotal    atomic.Uint64

	submissionDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncCorrectionSubmitted increments the submitted-corrections counter.
func IncCorrectionSubmitted() {
	correctionsSubmittedTotal.Add(1)
}

// IncFirstPresentation increments the first-presentations counter.
func IncFirstPresentation() {
	firstPresentationsTotal.Add(1)
}

// AddFilesIngested adds to the ingested-files counter.
func AddFilesIngested(n int) {
	if n > 0 {
		filesIngestedTotal.Add(uint64(n))
	}
}

// IncSubmissionFailed increments the failed-submissions counter.
func IncSubmissionFailed() {
	submissionsFailedTotal.Add(1)
}

// IncAuditAppendFailed increments the failed audit append counter.
func IncAuditAppendFailed() {
	auditAppendFailedTotal.Add(1)
}

// ObserveSubmissionDurationMs records a submission duration in milliseconds.
func ObserveSubmissionDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	submissionDuration.Observe(value)
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
	writeCounter(&buf, "corrections_submitted_total", "Total corrections submitted", correctionsSubmittedTotal.Load())
	writeCounter(&buf, "first_presentations_total", "Total stage-16 first presentations completed", firstPresentationsTotal.Load())
	writeCounter(&buf, "files_ingested_total", "Total files ingested across submissions", filesIngestedTotal.Load())
	writeCounter(&buf, "submissions_failed_total", "Total submissions that aborted with an error", submissionsFailedTotal.Load())
	writeCounter(&buf, "audit_append_failed_total", "Total audit log appends that failed", auditAppendFailedTotal.Load())
	writeHistogram(&buf, "submission_duration_ms", "Submission duration in milliseconds", submissionDuration.Snapshot())
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

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
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
