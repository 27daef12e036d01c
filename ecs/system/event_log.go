package system

import (
	"github.com/sirupsen/logrus"

	"github.com/RobeSantoro/avatar-controller/ecs"
)

// EventLogSystem drains the world's events at the end of a tick, logs them
// and keeps the most recent ones for the debug overlay.
type EventLogSystem struct {
	log    logrus.FieldLogger
	keep   int
	recent []ecs.Event
}

func NewEventLogSystem(log logrus.FieldLogger, keep int) *EventLogSystem {
	return &EventLogSystem{log: log, keep: keep}
}

func (s *EventLogSystem) Update(w *ecs.World, dt float64) {
	for _, evt := range w.Events().Drain() {
		fields := logrus.Fields{"entity": evt.Entity, "event": evt.Kind}
		switch d := evt.Data.(type) {
		case ecs.StateChanged:
			fields["from"] = d.From
			fields["to"] = d.To
		case string:
			fields["detail"] = d
		}
		s.log.WithFields(fields).Debug("event")

		if s.keep <= 0 {
			continue
		}
		s.recent = append(s.recent, evt)
		if n := len(s.recent); n > s.keep {
			s.recent = append(s.recent[:0], s.recent[n-s.keep:]...)
		}
	}
}

// Recent returns the newest events, oldest first.
func (s *EventLogSystem) Recent() []ecs.Event {
	return append([]ecs.Event(nil), s.recent...)
}
