// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"runtime"
)

// bytesPerMB converts byte counts from [runtime.MemStats] to megabytes.
const bytesPerMB = 1024 * 1024

// ResourceUsageData represents the runtime statistics reported by the status resource.
type ResourceUsageData struct {
	MemoryUsage map[string]any `json:"memory_usage"`
	GCStats     map[string]any `json:"gc_stats"`
	SystemInfo  map[string]any `json:"system_info"`
}

// CollectResourceUsage gathers current memory, garbage collector and goroutine statistics.
func CollectResourceUsage() *ResourceUsageData {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return &ResourceUsageData{
		MemoryUsage: map[string]any{
			"heap_alloc_mb":  float64(memStats.HeapAlloc) / bytesPerMB,
			"heap_sys_mb":    float64(memStats.HeapSys) / bytesPerMB,
			"heap_inuse_mb":  float64(memStats.HeapInuse) / bytesPerMB,
			"heap_objects":   memStats.HeapObjects,
			"stack_inuse_mb": float64(memStats.StackInuse) / bytesPerMB,
			"total_alloc_mb": float64(memStats.TotalAlloc) / bytesPerMB,
			"sys_mb":         float64(memStats.Sys) / bytesPerMB,
		},
		GCStats: map[string]any{
			"num_gc":          memStats.NumGC,
			"num_forced_gc":   memStats.NumForcedGC,
			"gc_cpu_fraction": memStats.GCCPUFraction,
			"pause_total_ns":  memStats.PauseTotalNs,
		},
		SystemInfo: map[string]any{
			"go_version":    runtime.Version(),
			"go_os":         runtime.GOOS,
			"go_arch":       runtime.GOARCH,
			"num_cpu":       runtime.NumCPU(),
			"num_goroutine": runtime.NumGoroutine(),
		},
	}
}
