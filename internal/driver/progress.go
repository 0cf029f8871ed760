package driver

import "time"

// EventKind classifies a batch progress event.
type EventKind uint8

const (
	// EventStart - файл взят воркером.
	EventStart EventKind = iota
	EventDone
	EventCached
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventDone:
		return "done"
	case EventCached:
		return "cached"
	case EventFailed:
		return "failed"
	}
	return "unknown"
}

// Event describes progress of one file in a batch run.
type Event struct {
	Kind    EventKind
	Path    string // относительный путь, слэши
	Index   int
	Total   int
	Elapsed time.Duration
	Err     error
}
