package types

import (
	"fmt"
	"image"
)

type EventKind uint8

const (
	EventInvalid EventKind = iota
	EventPointerMove
	EventPointerPress
	EventKey
	EventResize
	EventStop
)

var eventKindNames = [...]string{"Invalid", "PointerMove", "PointerPress", "Key", "Resize", "Stop"}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// PointerSample is one raw gesture input, classified and never stored.
type PointerSample struct {
	Pos    image.Point
	TimeMs int64
}

func (s PointerSample) String() string {
	return fmt.Sprintf("(%d,%d)@%d", s.Pos.X, s.Pos.Y, s.TimeMs)
}

type Key uint8

const (
	KeyNone Key = iota
	KeyOptions
	KeyLeft
	KeyRight
	KeyQuit
)

type Event struct {
	Pointer PointerSample
	Size    image.Point
	Source  string
	Kind    EventKind
	Key     Key
}

func (e *Event) String() string {
	inner := ""
	switch e.Kind {
	case EventPointerMove, EventPointerPress:
		inner = fmt.Sprintf(" source=%s at=%s", e.Source, e.Pointer.String())
	case EventKey:
		inner = fmt.Sprintf(" key=%d", e.Key)
	case EventResize:
		inner = fmt.Sprintf(" size=%s", e.Size.String())
	}
	return fmt.Sprintf("Event(%s%s)", e.Kind.String(), inner)
}
