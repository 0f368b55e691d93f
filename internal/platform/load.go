package platform

import (
	"runtime"

	"github.com/prometheus/procfs"
	"github.com/prometheus/procfs/sysfs"
)

// DefaultProcfsRoot is where procfs is normally mounted.
const DefaultProcfsRoot = "/proc"

// LoadSampler reads point-in-time load figures. Each reading reports
// whether it was available; callers substitute their own defaults.
type LoadSampler struct {
	proc    procfs.FS
	sys     sysfs.FS
	hasProc bool
	hasSys  bool
	numCPU  int
}

// NewLoadSampler opens procfs and sysfs at the given roots. Unopenable
// roots only disable the corresponding readings.
func NewLoadSampler(procRoot, sysRoot string) *LoadSampler {
	if procRoot == "" {
		procRoot = DefaultProcfsRoot
	}
	if sysRoot == "" {
		sysRoot = DefaultSysfsRoot
	}
	s := &LoadSampler{numCPU: runtime.NumCPU()}
	if fs, err := procfs.NewFS(procRoot); err == nil {
		s.proc, s.hasProc = fs, true
	}
	if fs, err := sysfs.NewFS(sysRoot); err == nil {
		s.sys, s.hasSys = fs, true
	}
	return s
}

// CPUUsage approximates utilisation as the 1-minute load average divided by
// the CPU count, as a percentage clamped to [0,100].
func (s *LoadSampler) CPUUsage() (float64, bool) {
	if s == nil || !s.hasProc {
		return 0, false
	}
	la, err := s.proc.LoadAvg()
	if err != nil {
		return 0, false
	}
	n := s.numCPU
	if n < 1 {
		n = 1
	}
	pct := la.Load1 / float64(n) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct, true
}

// Temperature returns the hottest thermal zone in degrees Celsius.
func (s *LoadSampler) Temperature() (float64, bool) {
	if s == nil || !s.hasSys {
		return 0, false
	}
	zones, err := s.sys.ClassThermalZoneStats()
	if err != nil || len(zones) == 0 {
		return 0, false
	}
	hottest := zones[0].Temp
	for _, z := range zones[1:] {
		if z.Temp > hottest {
			hottest = z.Temp
		}
	}
	return float64(hottest) / 1000, true
}
