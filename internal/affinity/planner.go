// Package affinity selects the CPU cores inference should run on and pins
// threads to them.
//
// Selection is a pure function of a Topology. Reading the topology and
// applying a mask are separate capabilities (TopologySource, Binder) so
// platforms without either can plug in no-op implementations.
package affinity

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
)

// Core describes one logical CPU. Tier is a relative performance figure
// (higher is faster, e.g. cpuinfo_max_freq); zero means unknown.
type Core struct {
	ID   int
	Tier uint64
}

// Topology is the set of logical CPUs visible to the process.
type Topology struct {
	Cores []Core
}

// TopologySource reads the platform topology.
type TopologySource interface {
	Topology() (Topology, error)
}

// Source records how a plan's mask was chosen.
type Source string

const (
	// SourceTiered: heterogeneous tiers, highest tier group selected.
	SourceTiered Source = "tiered"
	// SourceHomogeneous: all cores share one tier, all selected.
	SourceHomogeneous Source = "homogeneous"
	// SourceHeuristic: no tier metadata, upper half of cores by index.
	// This follows the common big.LITTLE numbering but is not guaranteed
	// to pick the fast cores on every SoC.
	SourceHeuristic Source = "heuristic"
	// SourceFallback: topology unreadable, every core selected.
	SourceFallback Source = "fallback"
)

// ErrNoCores is returned by sources that found no CPUs.
var ErrNoCores = errors.New("affinity: no cpus in topology")

// Plan is the outcome of planning. Warning is set when the topology could
// not be read; the mask is still usable.
type Plan struct {
	Mask    Mask
	Source  Source
	Warning error
}

// SelectPerformanceCores returns the performance core set for t. The result
// is non-empty whenever t has at least one core.
func SelectPerformanceCores(t Topology) Mask {
	m, _ := selectCores(t)
	return m
}

func selectCores(t Topology) (Mask, Source) {
	if len(t.Cores) == 0 {
		return Mask{}, SourceFallback
	}
	cores := make([]Core, len(t.Cores))
	copy(cores, t.Cores)
	sort.Slice(cores, func(i, j int) bool { return cores[i].ID < cores[j].ID })

	var maxTier, minTier uint64
	tiered := true
	for i, c := range cores {
		if c.Tier == 0 {
			tiered = false
			break
		}
		if i == 0 || c.Tier > maxTier {
			maxTier = c.Tier
		}
		if i == 0 || c.Tier < minTier {
			minTier = c.Tier
		}
	}

	ids := make([]int, 0, len(cores))
	switch {
	case !tiered:
		for _, c := range cores[len(cores)/2:] {
			ids = append(ids, c.ID)
		}
		return NewMask(ids...), SourceHeuristic
	case maxTier == minTier:
		for _, c := range cores {
			ids = append(ids, c.ID)
		}
		return NewMask(ids...), SourceHomogeneous
	default:
		for _, c := range cores {
			if c.Tier == maxTier {
				ids = append(ids, c.ID)
			}
		}
		return NewMask(ids...), SourceTiered
	}
}

// Planner turns a TopologySource into a Plan.
type Planner struct {
	src    TopologySource
	numCPU func() int
}

// NewPlanner returns a planner reading from src. A nil src always falls back
// to the full core set.
func NewPlanner(src TopologySource) *Planner {
	return &Planner{src: src, numCPU: runtime.NumCPU}
}

// Plan computes the mask. It never fails: unreadable topology yields the
// full core set and a Warning.
func (p *Planner) Plan() Plan {
	if p.src == nil {
		return p.fallback(errors.New("affinity: no topology source"))
	}
	t, err := p.src.Topology()
	if err != nil {
		return p.fallback(fmt.Errorf("affinity: read topology: %w", err))
	}
	if len(t.Cores) == 0 {
		return p.fallback(ErrNoCores)
	}
	m, src := selectCores(t)
	return Plan{Mask: m, Source: src}
}

func (p *Planner) fallback(warn error) Plan {
	return Plan{Mask: FullMask(p.numCPU()), Source: SourceFallback, Warning: warn}
}
