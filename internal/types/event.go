package types

import "fmt"

type EventKind uint8

const (
	EventInvalid EventKind = iota
	EventInput
	EventTime
	EventService
	EventStop
)

func (k EventKind) String() string {
	switch k {
	case EventInvalid:
		return "Invalid"
	case EventInput:
		return "Input"
	case EventTime:
		return "Time"
	case EventService:
		return "Service"
	case EventStop:
		return "Stop"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

type Event struct {
	Input InputEvent
	Kind  EventKind
}

func (e *Event) String() string {
	inner := ""
	if e.Kind == EventInput {
		inner = fmt.Sprintf(" source=%s key=%v up=%t", e.Input.Source, e.Input.Key, e.Input.Up)
	}
	return fmt.Sprintf("Event(%s%s)", e.Kind.String(), inner)
}

type InputKey uint16

type InputEvent struct {
	Source string
	Key    InputKey
	Up     bool
}

func (e *InputEvent) IsZero() bool  { return e.Key == 0 }
func (e *InputEvent) IsDigit() bool { return e.Key >= '0' && e.Key <= '9' }
