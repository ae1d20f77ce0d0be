package pipeline

import "sync"

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent sends evt unless the channel is nil.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// NopSink drops every event.
type NopSink struct{}

// OnEvent does nothing.
func (NopSink) OnEvent(Event) {}

// RecordingSink keeps every event it receives. Safe for concurrent use.
type RecordingSink struct {
	mu     sync.Mutex
	events []Event
}

// OnEvent stores evt.
func (s *RecordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	s.events = append(s.events, evt)
	s.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (s *RecordingSink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Emit sends evt to sink when it is non-nil.
func Emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
