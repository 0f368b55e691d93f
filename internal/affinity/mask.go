package affinity

import (
	"sort"
	"strconv"
	"strings"
)

// Mask is an immutable set of logical CPU indices. The zero value is empty.
type Mask struct {
	cpus []int
}

// NewMask builds a mask from CPU indices. Negative indices are dropped and
// duplicates collapsed; the stored order is ascending.
func NewMask(cpus ...int) Mask {
	seen := make(map[int]struct{}, len(cpus))
	out := make([]int, 0, len(cpus))
	for _, c := range cpus {
		if c < 0 {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Ints(out)
	return Mask{cpus: out}
}

// FullMask returns the mask {0..n-1}. n < 1 is treated as 1.
func FullMask(n int) Mask {
	if n < 1 {
		n = 1
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return Mask{cpus: out}
}

// CPUs returns a copy of the indices in ascending order.
func (m Mask) CPUs() []int {
	out := make([]int, len(m.cpus))
	copy(out, m.cpus)
	return out
}

func (m Mask) Len() int { return len(m.cpus) }

func (m Mask) IsEmpty() bool { return len(m.cpus) == 0 }

// Contains reports whether cpu is a member of the mask.
func (m Mask) Contains(cpu int) bool {
	i := sort.SearchInts(m.cpus, cpu)
	return i < len(m.cpus) && m.cpus[i] == cpu
}

// Equal reports whether both masks hold the same CPUs.
func (m Mask) Equal(o Mask) bool {
	if len(m.cpus) != len(o.cpus) {
		return false
	}
	for i := range m.cpus {
		if m.cpus[i] != o.cpus[i] {
			return false
		}
	}
	return true
}

// String renders the mask in the kernel's cpulist format, e.g. "0-3,6".
func (m Mask) String() string {
	if len(m.cpus) == 0 {
		return ""
	}
	var b strings.Builder
	start, prev := m.cpus[0], m.cpus[0]
	flush := func() {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(start))
		if prev != start {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(prev))
		}
	}
	for _, c := range m.cpus[1:] {
		if c == prev+1 {
			prev = c
			continue
		}
		flush()
		start, prev = c, c
	}
	flush()
	return b.String()
}
