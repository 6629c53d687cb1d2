// Package sysmon provides system and process resource sampling for the
// dashboard footer.
package sysmon

import (
	"os"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // system-wide, 0.0 .. 100.0
	MemPercent float64 // system-wide, 0.0 .. 100.0
	ProcessRSS uint64  // resident set of this process, bytes
}

// Sampler collects system-wide usage and the resident set of the current
// process. The process handle is resolved once at construction.
type Sampler struct {
	proc *process.Process
}

// NewSampler creates a Sampler bound to the current process. When the
// process handle cannot be resolved the sampler still reports system-wide
// stats and leaves ProcessRSS at zero.
func NewSampler() *Sampler {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		p = nil
	}
	return &Sampler{proc: p}
}

// Sample collects a single snapshot.
// CPU uses interval=0 (delta since last call). Fields stay zero on error.
func (s *Sampler) Sample() Stats {
	var st Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		st.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		st.MemPercent = vmem.UsedPercent
	}
	if s.proc != nil {
		if mi, err := s.proc.MemoryInfo(); err == nil && mi != nil {
			st.ProcessRSS = mi.RSS
		}
	}
	return st
}
