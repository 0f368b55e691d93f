package manager

// Event represents a session lifecycle event.
// Minimal and stable: name, session, model path and optional fields.
type Event struct {
	Name      string
	SessionID string
	ModelPath string
	Fields    map[string]any
}

// Event names published by the Manager.
const (
	EventSessionReady     = "session_ready"
	EventLoadFailed       = "load_failed"
	EventAffinityDegraded = "affinity_degraded"
	EventModelPathIgnored = "model_path_ignored"
	EventUnloadStart      = "unload_start"
	EventUnloadDone       = "unload_done"
	EventDrainTimeout     = "drain_timeout"
)

// EventPublisher receives events from the manager. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
