package manager

import (
	"time"

	"auracore/pkg/types"
)

// Snapshot returns a read-only view of the session slot.
func (m *Manager) Snapshot() Snapshot {
	s := m.cur.Load()
	if s == nil {
		return Snapshot{State: StateAbsent}
	}
	return Snapshot{
		State:          s.State(),
		SessionID:      s.id,
		ModelPath:      s.modelPath,
		CreatedAt:      s.createdAt,
		Mask:           s.plan.Mask,
		AffinitySource: s.plan.Source,
		Pinned:         s.pinned,
		Threads:        s.threads,
		QueueLen:       s.QueueLen(),
		Inflight:       s.Inflight(),
		MaxQueueDepth:  s.MaxQueueDepth(),
	}
}

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	snap := m.Snapshot()
	now := time.Now()
	resp := types.StatusResponse{
		SessionState:   string(snap.State),
		SessionID:      snap.SessionID,
		ModelPath:      snap.ModelPath,
		AffinitySource: string(snap.AffinitySource),
		Pinned:         snap.Pinned,
		QueueLen:       snap.QueueLen,
		Inflight:       snap.Inflight,
		MaxQueueDepth:  m.maxQueueDepth,
		LoadsTotal:     m.loads.Load(),
		UptimeSeconds:  int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix: now.Unix(),
		LastError:      m.LastError(),
	}
	if snap.State != StateAbsent {
		resp.AffinityMask = snap.Mask.String()
	}
	return resp
}
