// Event is the value handed to publishers and patch sources.
//
// Events are value types. Once created, Events should not be mutated. Use
// NewEvent for construction.
package primitives

// Event carries an event name and the arguments it was emitted with.
type Event struct {
	Type string
	Args []any
}

// NewEvent creates and returns a new Event.
func NewEvent(eventType string, args ...any) Event {
	return Event{
		Type: eventType,
		Args: args,
	}
}
