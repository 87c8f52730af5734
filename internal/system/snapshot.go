// Package system reports process and host health for the admin dashboard.
package system

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Health tiers.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
	StatusCritical = "critical"
)

// Uptime is the process uptime in seconds and as "Xd Yh Zm".
type Uptime struct {
	Seconds  int64  `json:"seconds"`
	Readable string `json:"readable"`
}

// Memory figures are whole mebibytes.
type Memory struct {
	ProcessRAMMB  int64 `json:"processRAM_MB"`
	HeapUsedMB    int64 `json:"heapUsedMB"`
	HeapTotalMB   int64 `json:"heapTotalMB"`
	TotalSystemMB int64 `json:"totalSystemRAM_MB"`
}

// Platform describes the runtime the server is on.
type Platform struct {
	OS        string `json:"platform"`
	GoVersion string `json:"goVersion"`
	CPUCores  int    `json:"cpuCores"`
}

// Snapshot is the health report served at /api/admin/system/status.
type Snapshot struct {
	Status        string   `json:"status"`
	HealthPercent int      `json:"healthPercent"`
	Environment   string   `json:"environment"`
	Uptime        Uptime   `json:"uptime"`
	Memory        Memory   `json:"memory"`
	System        Platform `json:"system"`
	ServerTime    string   `json:"serverTime"`
}

// Counters are the raw byte counts a snapshot is derived from.
type Counters struct {
	ProcessRSS uint64
	TotalRAM   uint64
	HeapAlloc  uint64
	HeapSys    uint64
	CPUCores   int
}

// Reader builds snapshots.  It holds no state besides the start time.
type Reader struct {
	env     string
	started time.Time
	now     func() time.Time
	read    func(ctx context.Context) (Counters, error)
}

// NewReader returns a reader that measures uptime from started.
func NewReader(env string, started time.Time) *Reader {
	return &Reader{env: env, started: started, now: time.Now, read: readCounters}
}

// WithCounters replaces the counter source, for tests.
func (r *Reader) WithCounters(read func(ctx context.Context) (Counters, error)) *Reader {
	r.read = read
	return r
}

// Snapshot samples the counters and derives the report.
func (r *Reader) Snapshot(ctx context.Context) (Snapshot, error) {
	c, err := r.read(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if c.TotalRAM == 0 {
		return Snapshot{}, errors.New("total system memory unavailable")
	}

	now := r.now()
	up := now.Sub(r.started)
	rssMB, totalMB := toMB(c.ProcessRSS), toMB(c.TotalRAM)
	pct := HealthPercent(rssMB, totalMB)

	return Snapshot{
		Status:        Tier(pct),
		HealthPercent: pct,
		Environment:   r.env,
		Uptime:        Uptime{Seconds: int64(up / time.Second), Readable: FormatUptime(up)},
		Memory: Memory{
			ProcessRAMMB:  rssMB,
			HeapUsedMB:    toMB(c.HeapAlloc),
			HeapTotalMB:   toMB(c.HeapSys),
			TotalSystemMB: totalMB,
		},
		System: Platform{
			OS:        runtime.GOOS,
			GoVersion: runtime.Version(),
			CPUCores:  c.CPUCores,
		},
		ServerTime: now.UTC().Format(time.RFC3339),
	}, nil
}

// HealthPercent is 100 minus the share of system RAM held by the process,
// rounded and clamped to [0, 100].
func HealthPercent(processMB, totalMB int64) int {
	if totalMB <= 0 {
		return 0
	}
	p := math.Round(100 - float64(processMB)/float64(totalMB)*100)
	return int(math.Max(0, math.Min(100, p)))
}

// Tier maps a health percent to a status: below 60 is critical, below 80
// degraded.
func Tier(pct int) string {
	switch {
	case pct < 60:
		return StatusCritical
	case pct < 80:
		return StatusDegraded
	default:
		return StatusHealthy
	}
}

// FormatUptime renders d as "Xd Yh Zm", dropping seconds.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Minute)
	days := total / (24 * 60)
	hours := total % (24 * 60) / 60
	minutes := total % 60
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}

func toMB(b uint64) int64 {
	return int64(math.Round(float64(b) / 1024 / 1024))
}

func readCounters(ctx context.Context) (Counters, error) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return Counters{}, fmt.Errorf("open process: %w", err)
	}
	pm, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return Counters{}, fmt.Errorf("process memory: %w", err)
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Counters{}, fmt.Errorf("system memory: %w", err)
	}
	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil || cores <= 0 {
		cores = runtime.NumCPU()
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return Counters{
		ProcessRSS: pm.RSS,
		TotalRAM:   vm.Total,
		HeapAlloc:  ms.HeapAlloc,
		HeapSys:    ms.HeapSys,
		CPUCores:   cores,
	}, nil
}
