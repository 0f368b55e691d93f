package manager

import "github.com/rs/zerolog"

// LogPublisher writes each event as a structured log line.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(l zerolog.Logger) *LogPublisher { return &LogPublisher{log: l} }

func (p *LogPublisher) Publish(e Event) {
	ev := p.log.Info()
	if e.Name == EventLoadFailed || e.Name == EventDrainTimeout || e.Name == EventAffinityDegraded {
		ev = p.log.Warn()
	}
	ev = ev.Str("event", e.Name).Str("session_id", e.SessionID).Str("model_path", e.ModelPath)
	if len(e.Fields) > 0 {
		ev = ev.Fields(e.Fields)
	}
	ev.Msg("session event")
}
