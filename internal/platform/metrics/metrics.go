package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64

	generated      uint64
	generateFailed uint64
	rejected       uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordGeneration counts one payslip generation attempt.
func (c *Collector) RecordGeneration(err error) {
	if err != nil {
		atomic.AddUint64(&c.generateFailed, 1)
		return
	}
	atomic.AddUint64(&c.generated, 1)
}

// RecordRejected counts generation requests refused because one was in flight.
func (c *Collector) RecordRejected() {
	atomic.AddUint64(&c.rejected, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":       total,
		"errorsTotal":         atomic.LoadUint64(&c.errorRequests),
		"avgDurationMs":       avg,
		"totalDurationMs":     totalMs,
		"payslipsGenerated":   atomic.LoadUint64(&c.generated),
		"payslipsFailed":      atomic.LoadUint64(&c.generateFailed),
		"generationsRejected": atomic.LoadUint64(&c.rejected),
	}
}
