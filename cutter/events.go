package cutter

// EventKind identifies a pipeline progress event.
type EventKind int

const (
	EventFetchStarted EventKind = iota
	EventFetchProgress
	EventFetchDone
	EventTrimStarted
	EventDone
)

// Event is sent to an Observer as the pipeline advances.
type Event struct {
	Kind  EventKind
	URL   string
	Video *Video
	Range Range
	// Written and Total are byte counts for EventFetchProgress; Total may be 0.
	Written int64
	Total   int64
}

// Observer receives pipeline events.
type Observer interface {
	Event(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Event(e Event) { f(e) }
