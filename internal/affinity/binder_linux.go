//go:build linux

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// maxCPUs bounds CPUSet iteration; unix.CPUSet holds 1024 bits.
const maxCPUs = 1024

type schedBinder struct{}

// DefaultBinder returns the sched_setaffinity binder.
func DefaultBinder() Binder { return schedBinder{} }

func (schedBinder) Bind(m Mask) error {
	if m.IsEmpty() {
		return ErrEmptyMask
	}
	var set unix.CPUSet
	set.Zero()
	for _, c := range m.cpus {
		set.Set(c)
	}
	// pid 0 targets the calling thread only.
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity %s: %w", m, err)
	}
	return nil
}

// Current returns the affinity of the calling thread.
func Current() (Mask, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return Mask{}, fmt.Errorf("affinity: sched_getaffinity: %w", err)
	}
	cpus := make([]int, 0, set.Count())
	for i := 0; i < maxCPUs; i++ {
		if set.IsSet(i) {
			cpus = append(cpus, i)
		}
	}
	return NewMask(cpus...), nil
}
