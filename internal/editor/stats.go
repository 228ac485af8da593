package editor

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats собирает показатели процесса для строки состояния
type ProcessStats struct {
	StartTime time.Time
	proc      *process.Process
}

// NewProcessStats создает сборщик для текущего процесса
func NewProcessStats() *ProcessStats {
	ps := &ProcessStats{StartTime: time.Now()}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		ps.proc = proc
	}
	return ps
}

// Uptime возвращает время работы в виде 1ч 2м 3с
func (ps *ProcessStats) Uptime() string {
	uptime := time.Since(ps.StartTime)

	hours := int(uptime.Hours())
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	}
	return fmt.Sprintf("%dс", seconds)
}

// HeapKB возвращает размер кучи Go в КБ
func (ps *ProcessStats) HeapKB() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc / 1024
}

// RSSKB возвращает резидентную память процесса в КБ
func (ps *ProcessStats) RSSKB() (uint64, error) {
	if ps.proc == nil {
		return 0, fmt.Errorf("процесс недоступен")
	}
	info, err := ps.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return info.RSS / 1024, nil
}

// Summary - память процесса одной строкой
func (ps *ProcessStats) Summary() string {
	s := fmt.Sprintf("Heap: %d KB", ps.HeapKB())
	if rss, err := ps.RSSKB(); err == nil {
		s += fmt.Sprintf(" RSS: %d KB", rss)
	}
	return s
}
