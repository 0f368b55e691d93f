package manager

import (
	"time"

	"auracore/internal/affinity"
)

// State represents the lifecycle state of the session slot.
type State string

const (
	StateAbsent  State = "absent"
	StateReady   State = "ready"
	StateClosing State = "closing"
)

// Snapshot is a read-only projection of the current session.
type Snapshot struct {
	State          State
	SessionID      string
	ModelPath      string
	CreatedAt      time.Time
	Mask           affinity.Mask
	AffinitySource affinity.Source
	Pinned         bool
	Threads        int
	QueueLen       int
	Inflight       int
	MaxQueueDepth  int
}
