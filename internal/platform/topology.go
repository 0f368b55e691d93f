// Package platform reads host facts (CPU topology, load, temperature) from
// procfs and sysfs.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/prometheus/procfs/sysfs"
	"github.com/rs/zerolog"

	"auracore/internal/affinity"
)

// DefaultSysfsRoot is where sysfs is normally mounted.
const DefaultSysfsRoot = "/sys"

// SysfsTopology is an affinity.TopologySource backed by
// /sys/devices/system/cpu. cpuinfo_max_freq is used as the core tier.
type SysfsTopology struct {
	fs   sysfs.FS
	root string
	log  atomic.Pointer[zerolog.Logger]
}

// NewSysfsTopology opens sysfs at root (DefaultSysfsRoot when empty).
func NewSysfsTopology(root string) (*SysfsTopology, error) {
	if root == "" {
		root = DefaultSysfsRoot
	}
	fs, err := sysfs.NewFS(root)
	if err != nil {
		return nil, fmt.Errorf("platform: open sysfs %s: %w", root, err)
	}
	return &SysfsTopology{fs: fs, root: root}, nil
}

// SetLogger sets where tier read problems are reported. Safe to call while
// Topology runs.
func (s *SysfsTopology) SetLogger(l zerolog.Logger) { s.log.Store(&l) }

func (s *SysfsTopology) logger() *zerolog.Logger {
	if l := s.log.Load(); l != nil {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}

// Topology enumerates logical CPUs. Missing cpufreq data is not an error;
// cores are then returned without tiers.
func (s *SysfsTopology) Topology() (affinity.Topology, error) {
	cpus, err := s.fs.CPUs()
	if err != nil {
		return affinity.Topology{}, fmt.Errorf("platform: list cpus: %w", err)
	}
	if len(cpus) == 0 {
		return affinity.Topology{}, affinity.ErrNoCores
	}

	tiers, err := s.cpufreqTiers()
	if err != nil {
		// SystemCpufreq needs every cpufreq attribute and the offline list;
		// many kernels omit some, so read the one file tiers depend on.
		s.logger().Warn().Err(err).Msg("cpufreq stats unavailable, reading cpuinfo_max_freq per cpu")
		tiers = s.maxFreqTiers(cpus)
	}

	topo := affinity.Topology{Cores: make([]affinity.Core, 0, len(cpus))}
	for _, c := range cpus {
		id, err := strconv.Atoi(c.Number())
		if err != nil {
			continue
		}
		topo.Cores = append(topo.Cores, affinity.Core{ID: id, Tier: tiers[id]})
	}
	if len(topo.Cores) == 0 {
		return affinity.Topology{}, affinity.ErrNoCores
	}
	return topo, nil
}

func (s *SysfsTopology) cpufreqTiers() (map[int]uint64, error) {
	stats, err := s.fs.SystemCpufreq()
	if err != nil {
		return nil, err
	}
	tiers := make(map[int]uint64, len(stats))
	for _, st := range stats {
		if st.Name == "" || st.CpuinfoMaximumFrequency == nil {
			continue
		}
		id, err := strconv.Atoi(st.Name)
		if err != nil {
			continue
		}
		tiers[id] = *st.CpuinfoMaximumFrequency
	}
	return tiers, nil
}

func (s *SysfsTopology) maxFreqTiers(cpus []sysfs.CPU) map[int]uint64 {
	tiers := make(map[int]uint64, len(cpus))
	for _, c := range cpus {
		id, err := strconv.Atoi(c.Number())
		if err != nil {
			continue
		}
		p := filepath.Join(s.root, "devices/system/cpu", "cpu"+c.Number(), "cpufreq", "cpuinfo_max_freq")
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		khz, err := strconv.ParseUint(strings.TrimSpace(string(b)), 10, 64)
		if err != nil {
			s.logger().Warn().Err(err).Str("path", p).Msg("unparsable cpuinfo_max_freq")
			continue
		}
		tiers[id] = khz
	}
	return tiers
}

// TopologySource returns a source for root. If sysfs cannot be opened the
// returned source reports that error on every read, which the planner turns
// into its full-set fallback.
func TopologySource(root string) affinity.TopologySource {
	t, err := NewSysfsTopology(root)
	if err != nil {
		return failedSource{err: err}
	}
	return t
}

type failedSource struct{ err error }

func (f failedSource) Topology() (affinity.Topology, error) { return affinity.Topology{}, f.err }
