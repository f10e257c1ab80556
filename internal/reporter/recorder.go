package reporter

import (
	"fmt"
	"sync"
)

type EventKind string

const (
	GroupStart EventKind = "group"
	GroupEnd   EventKind = "endgroup"
	InfoLine   EventKind = "info"
	WarnLine   EventKind = "warning"
	ErrorLine  EventKind = "error"
	Output     EventKind = "output"
)

type Event struct {
	Kind    EventKind
	Message string
}

// Recorder keeps every call in order. Used by tests.
type Recorder struct {
	mu      sync.Mutex
	Events  []Event
	Outputs map[string]string
}

func NewRecorder() *Recorder {
	return &Recorder{Outputs: map[string]string{}}
}

func (r *Recorder) add(kind EventKind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Event{Kind: kind, Message: msg})
}

func (r *Recorder) Group(title string) { r.add(GroupStart, title) }

func (r *Recorder) EndGroup() { r.add(GroupEnd, "") }

func (r *Recorder) Info(format string, args ...any) { r.add(InfoLine, fmt.Sprintf(format, args...)) }

func (r *Recorder) Warn(format string, args ...any) { r.add(WarnLine, fmt.Sprintf(format, args...)) }

func (r *Recorder) Error(format string, args ...any) { r.add(ErrorLine, fmt.Sprintf(format, args...)) }

func (r *Recorder) SetOutput(key, value string) {
	r.mu.Lock()
	r.Outputs[key] = value
	r.mu.Unlock()
	r.add(Output, key+"="+value)
}

// Kinds returns the event kinds in order.
func (r *Recorder) Kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Kind
	}
	return out
}

// Messages returns the messages of every event of kind.
func (r *Recorder) Messages(kind EventKind) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.Events {
		if e.Kind == kind {
			out = append(out, e.Message)
		}
	}
	return out
}
